package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// ============================================================================
// User Operations
// ============================================================================

// CreateUser persists a new User node. Email uniqueness is enforced by the
// user_email_unique constraint; a duplicate comes back as *ConflictError.
func (r *Repository) CreateUser(ctx context.Context, name, email string) (*User, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	user := &User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().Unix(),
	}

	query := `
		CREATE (u:User {id: $id, name: $name, email: $email, created_at: $createdAt})
		RETURN u.id as id
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"createdAt": user.CreatedAt,
	})
	if err != nil {
		if isUniquenessViolation(err) {
			return nil, &ConflictError{Property: "email", Value: email}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if _, err := result.Single(ctx); err != nil {
		if isUniquenessViolation(err) {
			return nil, &ConflictError{Property: "email", Value: email}
		}
		return nil, fmt.Errorf("failed to verify user creation: %w", err)
	}

	r.logger.Info("User created", zap.String("user_id", user.ID))
	return user, nil
}

// FindUserByID looks up a user by id. Returns *NotFoundError if no match.
func (r *Repository) FindUserByID(ctx context.Context, userID string) (*User, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {id: $userID})
		RETURN u.id as id, u.name as name, u.email as email, u.created_at as created_at
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID": userID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		return nil, &NotFoundError{Label: "User", ID: userID}
	}

	return userFromRecord(result.Record()), nil
}

// ListUsers returns every User node
func (r *Repository) ListUsers(ctx context.Context) ([]*User, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (u:User)
		RETURN u.id as id, u.name as name, u.email as email, u.created_at as created_at
	`

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := []*User{}
	for result.Next(ctx) {
		users = append(users, userFromRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}

	return users, nil
}

// UpdateUser overwrites the allow-listed properties (name, email) on an
// existing user. Nil fields keep their current value; id and created_at are
// never touched. An email already used by another user returns *ConflictError.
func (r *Repository) UpdateUser(ctx context.Context, userID string, update UserUpdate) (*User, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	if update.Email != nil {
		taken, err := r.emailUsedByOther(ctx, *update.Email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &ConflictError{Property: "email", Value: *update.Email}
		}
	}

	query := `
		MATCH (u:User {id: $userID})
		SET u.name = coalesce($name, u.name),
		    u.email = coalesce($email, u.email)
		RETURN u.id as id, u.name as name, u.email as email, u.created_at as created_at
	`

	params := map[string]interface{}{
		"userID": userID,
		"name":   nil,
		"email":  nil,
	}
	if update.Name != nil {
		params["name"] = *update.Name
	}
	if update.Email != nil {
		params["email"] = *update.Email
	}

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			if isUniquenessViolation(err) {
				return nil, &ConflictError{Property: "email", Value: *update.Email}
			}
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		return nil, &NotFoundError{Label: "User", ID: userID}
	}

	r.logger.Info("User updated", zap.String("user_id", userID))
	return userFromRecord(result.Record()), nil
}

// emailUsedByOther checks whether any user other than userID holds the given
// email. Both values travel as query parameters.
func (r *Repository) emailUsedByOther(ctx context.Context, email, userID string) (bool, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (other:User {email: $email})
		WHERE other.id <> $userID
		RETURN count(other) > 0 as taken
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"email":  email,
		"userID": userID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}

	return getBoolFromRecord(record, "taken"), nil
}

// DeleteUser detach-deletes a user node. Returns true if a node was removed.
// Posts and comments created by the user are left in place.
func (r *Repository) DeleteUser(ctx context.Context, userID string) (bool, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {id: $userID})
		DETACH DELETE u
		RETURN count(u) as deleted
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID": userID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}

	deleted := getInt64FromRecord(record, "deleted") > 0
	if deleted {
		r.logger.Info("User deleted", zap.String("user_id", userID))
	}
	return deleted, nil
}

// ============================================================================
// Friendship Operations
// ============================================================================

// AddFriend creates a FRIENDS_WITH edge between two users. The undirected
// MERGE matches an existing edge in either direction, so calling it twice
// (or concurrently from both sides) yields exactly one edge and returns it.
func (r *Repository) AddFriend(ctx context.Context, userID, friendID string) (*Relationship, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {id: $userID}), (f:User {id: $friendID})
		MERGE (u)-[r:FRIENDS_WITH]-(f)
		ON CREATE SET r.created_at = $now
		RETURN startNode(r).id as from_id, endNode(r).id as to_id, r.created_at as created_at
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID":   userID,
		"friendID": friendID,
		"now":      time.Now().Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add friend: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		// No row means at least one endpoint is missing.
		return nil, r.missingUser(ctx, userID, friendID)
	}

	record := result.Record()
	rel := &Relationship{
		Type:      "FRIENDS_WITH",
		FromID:    getStringFromRecord(record, "from_id"),
		ToID:      getStringFromRecord(record, "to_id"),
		CreatedAt: getInt64FromRecord(record, "created_at"),
	}

	r.logger.Info("Friendship ensured",
		zap.String("user_id", userID),
		zap.String("friend_id", friendID),
	)
	return rel, nil
}

// RemoveFriend deletes at most one FRIENDS_WITH edge between the pair, in
// either direction. Returns true if an edge was removed.
func (r *Repository) RemoveFriend(ctx context.Context, userID, friendID string) (bool, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {id: $userID})-[r:FRIENDS_WITH]-(f:User {id: $friendID})
		WITH r LIMIT 1
		DELETE r
		RETURN count(r) as deleted
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID":   userID,
		"friendID": friendID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to remove friend: %w", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to remove friend: %w", err)
	}

	return getInt64FromRecord(record, "deleted") > 0, nil
}

// AreFriends checks for a FRIENDS_WITH edge between the pair, either direction
func (r *Repository) AreFriends(ctx context.Context, userID, friendID string) (bool, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (:User {id: $userID})-[r:FRIENDS_WITH]-(:User {id: $friendID})
		RETURN count(r) > 0 as are_friends
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID":   userID,
		"friendID": friendID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check friendship: %w", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check friendship: %w", err)
	}

	return getBoolFromRecord(record, "are_friends"), nil
}

// MutualFriends returns every user connected by FRIENDS_WITH to both given
// users. Order follows graph traversal and is not stable.
func (r *Repository) MutualFriends(ctx context.Context, userID, otherID string) ([]*User, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (u1:User {id: $userID})-[:FRIENDS_WITH]-(m:User)-[:FRIENDS_WITH]-(u2:User {id: $otherID})
		RETURN m.id as id, m.name as name, m.email as email, m.created_at as created_at
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID":  userID,
		"otherID": otherID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find mutual friends: %w", err)
	}

	friends := []*User{}
	for result.Next(ctx) {
		friends = append(friends, userFromRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}

	return friends, nil
}

// ListFriends returns all users connected to userID by FRIENDS_WITH
func (r *Repository) ListFriends(ctx context.Context, userID string) ([]*User, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {id: $userID})-[:FRIENDS_WITH]-(f:User)
		RETURN f.id as id, f.name as name, f.email as email, f.created_at as created_at
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID": userID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}

	friends := []*User{}
	for result.Next(ctx) {
		friends = append(friends, userFromRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}

	return friends, nil
}

// missingUser resolves which of the given ids has no User node, so
// relationship writes can report the missing endpoint precisely.
func (r *Repository) missingUser(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		if _, err := r.FindUserByID(ctx, id); err != nil {
			return err
		}
	}
	return &NotFoundError{Label: "User", ID: ids[0]}
}
