package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-graph-api/internal/graph"
)

func createUserViaAPI(t *testing.T, router *gin.Engine, name, email string) *graph.User {
	t.Helper()
	w := perform(router, "POST", "/api/users", gin.H{"name": name, "email": email})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user graph.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	return &user
}

func TestCreateUser_Validation(t *testing.T) {
	_, router := newTestRouter()

	cases := []struct {
		name string
		body gin.H
		want string
	}{
		{"missing fields", gin.H{}, "Missing name or email"},
		{"invalid email", gin.H{"name": "Alice Smith", "email": "not-an-email"}, "Invalid email format"},
		{"name too short", gin.H{"name": "Al", "email": "alice@example.com"}, "Name must be between 3 and 50 characters"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := perform(router, "POST", "/api/users", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.want, decodeBody(t, w)["error"])
		})
	}
}

func TestCreateUser_Success(t *testing.T) {
	_, router := newTestRouter()

	w := perform(router, "POST", "/api/users", gin.H{"name": "Alice Smith", "email": "alice@example.com"})

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, "Alice Smith", body["name"])
	assert.Equal(t, "alice@example.com", body["email"])
	assert.NotZero(t, body["created_at"])
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	_, router := newTestRouter()
	createUserViaAPI(t, router, "Alice Smith", "alice@example.com")

	w := perform(router, "POST", "/api/users", gin.H{"name": "Other Alice", "email": "alice@example.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already exists", decodeBody(t, w)["error"])
}

func TestGetUser(t *testing.T) {
	_, router := newTestRouter()
	user := createUserViaAPI(t, router, "Alice Smith", "alice@example.com")

	w := perform(router, "GET", "/api/users/"+user.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, user.ID, decodeBody(t, w)["id"])

	w = perform(router, "GET", "/api/users/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decodeBody(t, w)["error"])
}

func TestUpdateUser(t *testing.T) {
	_, router := newTestRouter()
	user := createUserViaAPI(t, router, "Alice Smith", "alice@example.com")

	w := perform(router, "PUT", "/api/users/"+user.ID, gin.H{"name": "Alice Jones"})
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Alice Jones", body["name"])
	assert.Equal(t, "alice@example.com", body["email"])
}

func TestUpdateUser_UnknownFieldRejected(t *testing.T) {
	_, router := newTestRouter()
	user := createUserViaAPI(t, router, "Alice Smith", "alice@example.com")

	// id and created_at are not writable, nor is anything off the allow-list.
	w := perform(router, "PUT", "/api/users/"+user.ID, gin.H{"created_at": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(router, "GET", "/api/users/"+user.ID, nil)
	assert.NotZero(t, decodeBody(t, w)["created_at"])
}

func TestUpdateUser_EmailConflict(t *testing.T) {
	_, router := newTestRouter()
	createUserViaAPI(t, router, "Alice Smith", "alice@example.com")
	bob := createUserViaAPI(t, router, "Bob Jones", "bob@example.com")

	w := perform(router, "PUT", "/api/users/"+bob.ID, gin.H{"email": "alice@example.com"})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already exists", decodeBody(t, w)["error"])
}

func TestDeleteUser(t *testing.T) {
	_, router := newTestRouter()
	user := createUserViaAPI(t, router, "Alice Smith", "alice@example.com")

	w := perform(router, "DELETE", "/api/users/"+user.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(router, "DELETE", "/api/users/"+user.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddFriend(t *testing.T) {
	_, router := newTestRouter()
	alice := createUserViaAPI(t, router, "Alice Smith", "alice@example.com")
	bob := createUserViaAPI(t, router, "Bob Jones", "bob@example.com")

	w := perform(router, "POST", "/api/users/"+alice.ID+"/friends", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing friend_id", decodeBody(t, w)["error"])

	w = perform(router, "POST", "/api/users/"+alice.ID+"/friends", gin.H{"friend_id": "no-such-id"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User or friend not found", decodeBody(t, w)["error"])

	w = perform(router, "POST", "/api/users/"+alice.ID+"/friends", gin.H{"friend_id": bob.ID})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = perform(router, "GET", "/api/users/"+alice.ID+"/friends/"+bob.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["are_friends"])
}

func TestRemoveFriend(t *testing.T) {
	_, router := newTestRouter()
	alice := createUserViaAPI(t, router, "Alice Smith", "alice@example.com")
	bob := createUserViaAPI(t, router, "Bob Jones", "bob@example.com")

	w := perform(router, "DELETE", "/api/users/"+alice.ID+"/friends/"+bob.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Friendship not found", decodeBody(t, w)["error"])

	perform(router, "POST", "/api/users/"+alice.ID+"/friends", gin.H{"friend_id": bob.ID})

	w = perform(router, "DELETE", "/api/users/"+alice.ID+"/friends/"+bob.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(router, "GET", "/api/users/"+alice.ID+"/friends/"+bob.ID, nil)
	assert.Equal(t, false, decodeBody(t, w)["are_friends"])
}

func TestMutualFriends(t *testing.T) {
	_, router := newTestRouter()
	x := createUserViaAPI(t, router, "User Exx", "x@example.com")
	y := createUserViaAPI(t, router, "User Why", "y@example.com")
	z := createUserViaAPI(t, router, "User Zed", "z@example.com")

	perform(router, "POST", "/api/users/"+x.ID+"/friends", gin.H{"friend_id": z.ID})
	perform(router, "POST", "/api/users/"+y.ID+"/friends", gin.H{"friend_id": z.ID})

	w := perform(router, "GET", "/api/users/"+x.ID+"/mutual-friends/"+y.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var mutual []graph.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mutual))
	require.Len(t, mutual, 1)
	assert.Equal(t, z.ID, mutual[0].ID)
}
