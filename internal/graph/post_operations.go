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
// Post Operations
// ============================================================================

// CreatePost persists a new Post node and its CREATED edge from the author
// in a single statement, so the edge can never be missing. Returns
// *NotFoundError if the author does not exist.
func (r *Repository) CreatePost(ctx context.Context, title, content, authorID string) (*Post, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	post := &Post{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().Unix(),
	}

	query := `
		MATCH (u:User {id: $authorID})
		CREATE (p:Post {id: $id, title: $title, content: $content, created_at: $createdAt})
		CREATE (u)-[:CREATED]->(p)
		RETURN p.id as id
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"authorID":  authorID,
		"id":        post.ID,
		"title":     post.Title,
		"content":   post.Content,
		"createdAt": post.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		return nil, &NotFoundError{Label: "User", ID: authorID}
	}

	r.logger.Info("Post created",
		zap.String("post_id", post.ID),
		zap.String("author_id", authorID),
	)
	return post, nil
}

// FindPostByID looks up a post by id. Returns *NotFoundError if no match.
func (r *Repository) FindPostByID(ctx context.Context, postID string) (*Post, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (p:Post {id: $postID})
		RETURN p.id as id, p.title as title, p.content as content, p.created_at as created_at
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"postID": postID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		return nil, &NotFoundError{Label: "Post", ID: postID}
	}

	return postFromRecord(result.Record()), nil
}

// ListPosts returns every Post node
func (r *Repository) ListPosts(ctx context.Context) ([]*Post, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (p:Post)
		RETURN p.id as id, p.title as title, p.content as content, p.created_at as created_at
	`

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := []*Post{}
	for result.Next(ctx) {
		posts = append(posts, postFromRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}

	return posts, nil
}

// UpdatePost overwrites the allow-listed properties (title, content) on an
// existing post. Nil fields keep their current value.
func (r *Repository) UpdatePost(ctx context.Context, postID string, update PostUpdate) (*Post, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (p:Post {id: $postID})
		SET p.title = coalesce($title, p.title),
		    p.content = coalesce($content, p.content)
		RETURN p.id as id, p.title as title, p.content as content, p.created_at as created_at
	`

	params := map[string]interface{}{
		"postID":  postID,
		"title":   nil,
		"content": nil,
	}
	if update.Title != nil {
		params["title"] = *update.Title
	}
	if update.Content != nil {
		params["content"] = *update.Content
	}

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		return nil, &NotFoundError{Label: "Post", ID: postID}
	}

	r.logger.Info("Post updated", zap.String("post_id", postID))
	return postFromRecord(result.Record()), nil
}

// DeletePost detach-deletes a post node. Returns true if a node was removed.
// Comments attached via HAS_COMMENT are left in place.
func (r *Repository) DeletePost(ctx context.Context, postID string) (bool, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (p:Post {id: $postID})
		DETACH DELETE p
		RETURN count(p) as deleted
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"postID": postID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete post: %w", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to delete post: %w", err)
	}

	deleted := getInt64FromRecord(record, "deleted") > 0
	if deleted {
		r.logger.Info("Post deleted", zap.String("post_id", postID))
	}
	return deleted, nil
}

// FindPostsByAuthor returns all posts one CREATED edge away from the user.
// An unknown user yields an empty slice, not an error.
func (r *Repository) FindPostsByAuthor(ctx context.Context, userID string) ([]*Post, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {id: $userID})-[:CREATED]->(p:Post)
		RETURN p.id as id, p.title as title, p.content as content, p.created_at as created_at
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID": userID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find posts by author: %w", err)
	}

	posts := []*Post{}
	for result.Next(ctx) {
		posts = append(posts, postFromRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}

	return posts, nil
}

// LikePost creates a LIKES edge from the user to the post. MERGE keeps the
// edge unique per (user, post) pair, so repeated likes are idempotent.
func (r *Repository) LikePost(ctx context.Context, userID, postID string) (*Relationship, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {id: $userID}), (p:Post {id: $postID})
		MERGE (u)-[r:LIKES]->(p)
		ON CREATE SET r.created_at = $now
		RETURN r.created_at as created_at
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID": userID,
		"postID": postID,
		"now":    time.Now().Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to like post: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		if _, err := r.FindUserByID(ctx, userID); err != nil {
			return nil, err
		}
		return nil, &NotFoundError{Label: "Post", ID: postID}
	}

	return &Relationship{
		Type:      "LIKES",
		FromID:    userID,
		ToID:      postID,
		CreatedAt: getInt64FromRecord(result.Record(), "created_at"),
	}, nil
}

// UnlikePost removes the LIKES edge between the pair. Returns true if an
// edge was removed.
func (r *Repository) UnlikePost(ctx context.Context, userID, postID string) (bool, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {id: $userID})-[r:LIKES]->(p:Post {id: $postID})
		DELETE r
		RETURN count(r) as deleted
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID": userID,
		"postID": postID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to unlike post: %w", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to unlike post: %w", err)
	}

	return getInt64FromRecord(record, "deleted") > 0, nil
}
