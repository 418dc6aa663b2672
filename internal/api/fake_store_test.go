package api

import (
	"context"
	"fmt"

	"social-graph-api/internal/graph"
)

// fakeStore is an in-memory Store used by the handler tests.
type fakeStore struct {
	seq      int
	users    map[string]*graph.User
	posts    map[string]*graph.Post
	comments map[string]*graph.Comment
	author   map[string]string          // post/comment id -> author user id
	postOf   map[string]string          // comment id -> post id
	friends  map[string]map[string]bool // symmetric adjacency
	likes    map[string]bool            // "userID|targetID"
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[string]*graph.User{},
		posts:    map[string]*graph.Post{},
		comments: map[string]*graph.Comment{},
		author:   map[string]string{},
		postOf:   map[string]string{},
		friends:  map[string]map[string]bool{},
		likes:    map[string]bool{},
	}
}

func (f *fakeStore) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func likeKey(userID, targetID string) string {
	return userID + "|" + targetID
}

// Users

func (f *fakeStore) CreateUser(_ context.Context, name, email string) (*graph.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return nil, &graph.ConflictError{Property: "email", Value: email}
		}
	}
	user := &graph.User{ID: f.nextID("user"), Name: name, Email: email, CreatedAt: 1700000000}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeStore) FindUserByID(_ context.Context, userID string) (*graph.User, error) {
	if u, ok := f.users[userID]; ok {
		return u, nil
	}
	return nil, &graph.NotFoundError{Label: "User", ID: userID}
}

func (f *fakeStore) ListUsers(_ context.Context) ([]*graph.User, error) {
	users := []*graph.User{}
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeStore) UpdateUser(_ context.Context, userID string, update graph.UserUpdate) (*graph.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, &graph.NotFoundError{Label: "User", ID: userID}
	}
	if update.Email != nil {
		for id, other := range f.users {
			if id != userID && other.Email == *update.Email {
				return nil, &graph.ConflictError{Property: "email", Value: *update.Email}
			}
		}
		u.Email = *update.Email
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	return u, nil
}

func (f *fakeStore) DeleteUser(_ context.Context, userID string) (bool, error) {
	if _, ok := f.users[userID]; !ok {
		return false, nil
	}
	delete(f.users, userID)
	delete(f.friends, userID)
	for _, adj := range f.friends {
		delete(adj, userID)
	}
	return true, nil
}

// Friendships

func (f *fakeStore) AddFriend(_ context.Context, userID, friendID string) (*graph.Relationship, error) {
	for _, id := range []string{userID, friendID} {
		if _, ok := f.users[id]; !ok {
			return nil, &graph.NotFoundError{Label: "User", ID: id}
		}
	}
	if f.friends[userID] == nil {
		f.friends[userID] = map[string]bool{}
	}
	if f.friends[friendID] == nil {
		f.friends[friendID] = map[string]bool{}
	}
	f.friends[userID][friendID] = true
	f.friends[friendID][userID] = true
	return &graph.Relationship{Type: "FRIENDS_WITH", FromID: userID, ToID: friendID, CreatedAt: 1700000000}, nil
}

func (f *fakeStore) RemoveFriend(_ context.Context, userID, friendID string) (bool, error) {
	if !f.friends[userID][friendID] {
		return false, nil
	}
	delete(f.friends[userID], friendID)
	delete(f.friends[friendID], userID)
	return true, nil
}

func (f *fakeStore) AreFriends(_ context.Context, userID, friendID string) (bool, error) {
	return f.friends[userID][friendID], nil
}

func (f *fakeStore) MutualFriends(_ context.Context, userID, otherID string) ([]*graph.User, error) {
	mutual := []*graph.User{}
	for id := range f.friends[userID] {
		if f.friends[otherID][id] {
			mutual = append(mutual, f.users[id])
		}
	}
	return mutual, nil
}

func (f *fakeStore) ListFriends(_ context.Context, userID string) ([]*graph.User, error) {
	friends := []*graph.User{}
	for id := range f.friends[userID] {
		friends = append(friends, f.users[id])
	}
	return friends, nil
}

// Posts

func (f *fakeStore) CreatePost(_ context.Context, title, content, authorID string) (*graph.Post, error) {
	if _, ok := f.users[authorID]; !ok {
		return nil, &graph.NotFoundError{Label: "User", ID: authorID}
	}
	post := &graph.Post{ID: f.nextID("post"), Title: title, Content: content, CreatedAt: 1700000000}
	f.posts[post.ID] = post
	f.author[post.ID] = authorID
	return post, nil
}

func (f *fakeStore) FindPostByID(_ context.Context, postID string) (*graph.Post, error) {
	if p, ok := f.posts[postID]; ok {
		return p, nil
	}
	return nil, &graph.NotFoundError{Label: "Post", ID: postID}
}

func (f *fakeStore) ListPosts(_ context.Context) ([]*graph.Post, error) {
	posts := []*graph.Post{}
	for _, p := range f.posts {
		posts = append(posts, p)
	}
	return posts, nil
}

func (f *fakeStore) UpdatePost(_ context.Context, postID string, update graph.PostUpdate) (*graph.Post, error) {
	p, ok := f.posts[postID]
	if !ok {
		return nil, &graph.NotFoundError{Label: "Post", ID: postID}
	}
	if update.Title != nil {
		p.Title = *update.Title
	}
	if update.Content != nil {
		p.Content = *update.Content
	}
	return p, nil
}

func (f *fakeStore) DeletePost(_ context.Context, postID string) (bool, error) {
	if _, ok := f.posts[postID]; !ok {
		return false, nil
	}
	delete(f.posts, postID)
	delete(f.author, postID)
	return true, nil
}

func (f *fakeStore) FindPostsByAuthor(_ context.Context, userID string) ([]*graph.Post, error) {
	posts := []*graph.Post{}
	for id, authorID := range f.author {
		if authorID == userID {
			if p, ok := f.posts[id]; ok {
				posts = append(posts, p)
			}
		}
	}
	return posts, nil
}

func (f *fakeStore) LikePost(_ context.Context, userID, postID string) (*graph.Relationship, error) {
	if _, ok := f.users[userID]; !ok {
		return nil, &graph.NotFoundError{Label: "User", ID: userID}
	}
	if _, ok := f.posts[postID]; !ok {
		return nil, &graph.NotFoundError{Label: "Post", ID: postID}
	}
	f.likes[likeKey(userID, postID)] = true
	return &graph.Relationship{Type: "LIKES", FromID: userID, ToID: postID, CreatedAt: 1700000000}, nil
}

func (f *fakeStore) UnlikePost(_ context.Context, userID, postID string) (bool, error) {
	key := likeKey(userID, postID)
	if !f.likes[key] {
		return false, nil
	}
	delete(f.likes, key)
	return true, nil
}

// Comments

func (f *fakeStore) CreateComment(_ context.Context, content, authorID, postID string) (*graph.Comment, error) {
	if _, ok := f.users[authorID]; !ok {
		return nil, &graph.NotFoundError{Label: "User", ID: authorID}
	}
	if _, ok := f.posts[postID]; !ok {
		return nil, &graph.NotFoundError{Label: "Post", ID: postID}
	}
	comment := &graph.Comment{ID: f.nextID("comment"), Content: content, CreatedAt: 1700000000}
	f.comments[comment.ID] = comment
	f.author[comment.ID] = authorID
	f.postOf[comment.ID] = postID
	return comment, nil
}

func (f *fakeStore) FindCommentByID(_ context.Context, commentID string) (*graph.Comment, error) {
	if c, ok := f.comments[commentID]; ok {
		return c, nil
	}
	return nil, &graph.NotFoundError{Label: "Comment", ID: commentID}
}

func (f *fakeStore) ListComments(_ context.Context) ([]*graph.Comment, error) {
	comments := []*graph.Comment{}
	for _, c := range f.comments {
		comments = append(comments, c)
	}
	return comments, nil
}

func (f *fakeStore) UpdateComment(_ context.Context, commentID string, update graph.CommentUpdate) (*graph.Comment, error) {
	c, ok := f.comments[commentID]
	if !ok {
		return nil, &graph.NotFoundError{Label: "Comment", ID: commentID}
	}
	if update.Content != nil {
		c.Content = *update.Content
	}
	return c, nil
}

func (f *fakeStore) DeleteComment(_ context.Context, commentID string) (bool, error) {
	if _, ok := f.comments[commentID]; !ok {
		return false, nil
	}
	delete(f.comments, commentID)
	delete(f.author, commentID)
	delete(f.postOf, commentID)
	return true, nil
}

func (f *fakeStore) FindCommentsByPost(_ context.Context, postID string) ([]*graph.Comment, error) {
	comments := []*graph.Comment{}
	for id, pid := range f.postOf {
		if pid == postID {
			if c, ok := f.comments[id]; ok {
				comments = append(comments, c)
			}
		}
	}
	return comments, nil
}

func (f *fakeStore) DeleteCommentFromPost(_ context.Context, postID, commentID string) (bool, error) {
	if f.postOf[commentID] != postID {
		return false, nil
	}
	delete(f.comments, commentID)
	delete(f.author, commentID)
	delete(f.postOf, commentID)
	return true, nil
}

func (f *fakeStore) LikeComment(_ context.Context, userID, commentID string) (*graph.Relationship, error) {
	if _, ok := f.users[userID]; !ok {
		return nil, &graph.NotFoundError{Label: "User", ID: userID}
	}
	if _, ok := f.comments[commentID]; !ok {
		return nil, &graph.NotFoundError{Label: "Comment", ID: commentID}
	}
	f.likes[likeKey(userID, commentID)] = true
	return &graph.Relationship{Type: "LIKES", FromID: userID, ToID: commentID, CreatedAt: 1700000000}, nil
}

func (f *fakeStore) UnlikeComment(_ context.Context, userID, commentID string) (bool, error) {
	key := likeKey(userID, commentID)
	if !f.likes[key] {
		return false, nil
	}
	delete(f.likes, key)
	return true, nil
}
