package api

import (
	"context"

	"social-graph-api/internal/graph"
)

// Store is the repository surface the HTTP handlers depend on.
// *graph.Repository satisfies it; tests substitute an in-memory fake.
type Store interface {
	CreateUser(ctx context.Context, name, email string) (*graph.User, error)
	FindUserByID(ctx context.Context, userID string) (*graph.User, error)
	ListUsers(ctx context.Context) ([]*graph.User, error)
	UpdateUser(ctx context.Context, userID string, update graph.UserUpdate) (*graph.User, error)
	DeleteUser(ctx context.Context, userID string) (bool, error)
	AddFriend(ctx context.Context, userID, friendID string) (*graph.Relationship, error)
	RemoveFriend(ctx context.Context, userID, friendID string) (bool, error)
	AreFriends(ctx context.Context, userID, friendID string) (bool, error)
	MutualFriends(ctx context.Context, userID, otherID string) ([]*graph.User, error)
	ListFriends(ctx context.Context, userID string) ([]*graph.User, error)

	CreatePost(ctx context.Context, title, content, authorID string) (*graph.Post, error)
	FindPostByID(ctx context.Context, postID string) (*graph.Post, error)
	ListPosts(ctx context.Context) ([]*graph.Post, error)
	UpdatePost(ctx context.Context, postID string, update graph.PostUpdate) (*graph.Post, error)
	DeletePost(ctx context.Context, postID string) (bool, error)
	FindPostsByAuthor(ctx context.Context, userID string) ([]*graph.Post, error)
	LikePost(ctx context.Context, userID, postID string) (*graph.Relationship, error)
	UnlikePost(ctx context.Context, userID, postID string) (bool, error)

	CreateComment(ctx context.Context, content, authorID, postID string) (*graph.Comment, error)
	FindCommentByID(ctx context.Context, commentID string) (*graph.Comment, error)
	ListComments(ctx context.Context) ([]*graph.Comment, error)
	UpdateComment(ctx context.Context, commentID string, update graph.CommentUpdate) (*graph.Comment, error)
	DeleteComment(ctx context.Context, commentID string) (bool, error)
	FindCommentsByPost(ctx context.Context, postID string) ([]*graph.Comment, error)
	DeleteCommentFromPost(ctx context.Context, postID, commentID string) (bool, error)
	LikeComment(ctx context.Context, userID, commentID string) (*graph.Relationship, error)
	UnlikeComment(ctx context.Context, userID, commentID string) (bool, error)
}
