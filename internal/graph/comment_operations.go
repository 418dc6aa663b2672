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
// Comment Operations
// ============================================================================

// CreateComment persists a new Comment node together with its CREATED edge
// from the author and HAS_COMMENT edge from the post. All three writes run
// in one statement, so a comment node without both edges is never observable.
// Returns *NotFoundError if the author or the post does not exist.
func (r *Repository) CreateComment(ctx context.Context, content, authorID, postID string) (*Comment, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	comment := &Comment{
		ID:        uuid.NewString(),
		Content:   content,
		CreatedAt: time.Now().Unix(),
	}

	query := `
		MATCH (u:User {id: $authorID}), (p:Post {id: $postID})
		CREATE (c:Comment {id: $id, content: $content, created_at: $createdAt})
		CREATE (u)-[:CREATED]->(c)
		CREATE (p)-[:HAS_COMMENT]->(c)
		RETURN c.id as id
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"authorID":  authorID,
		"postID":    postID,
		"id":        comment.ID,
		"content":   comment.Content,
		"createdAt": comment.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		if _, err := r.FindUserByID(ctx, authorID); err != nil {
			return nil, err
		}
		return nil, &NotFoundError{Label: "Post", ID: postID}
	}

	r.logger.Info("Comment created",
		zap.String("comment_id", comment.ID),
		zap.String("post_id", postID),
		zap.String("author_id", authorID),
	)
	return comment, nil
}

// FindCommentByID looks up a comment by id. Returns *NotFoundError if no match.
func (r *Repository) FindCommentByID(ctx context.Context, commentID string) (*Comment, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (c:Comment {id: $commentID})
		RETURN c.id as id, c.content as content, c.created_at as created_at
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"commentID": commentID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		return nil, &NotFoundError{Label: "Comment", ID: commentID}
	}

	return commentFromRecord(result.Record()), nil
}

// ListComments returns every Comment node
func (r *Repository) ListComments(ctx context.Context) ([]*Comment, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (c:Comment)
		RETURN c.id as id, c.content as content, c.created_at as created_at
	`

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	comments := []*Comment{}
	for result.Next(ctx) {
		comments = append(comments, commentFromRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}

	return comments, nil
}

// UpdateComment overwrites the allow-listed property (content) on an
// existing comment. A nil field keeps the current value.
func (r *Repository) UpdateComment(ctx context.Context, commentID string, update CommentUpdate) (*Comment, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (c:Comment {id: $commentID})
		SET c.content = coalesce($content, c.content)
		RETURN c.id as id, c.content as content, c.created_at as created_at
	`

	params := map[string]interface{}{
		"commentID": commentID,
		"content":   nil,
	}
	if update.Content != nil {
		params["content"] = *update.Content
	}

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		return nil, &NotFoundError{Label: "Comment", ID: commentID}
	}

	r.logger.Info("Comment updated", zap.String("comment_id", commentID))
	return commentFromRecord(result.Record()), nil
}

// DeleteComment detach-deletes a comment node. Returns true if a node was removed.
func (r *Repository) DeleteComment(ctx context.Context, commentID string) (bool, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (c:Comment {id: $commentID})
		DETACH DELETE c
		RETURN count(c) as deleted
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"commentID": commentID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete comment: %w", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to delete comment: %w", err)
	}

	deleted := getInt64FromRecord(record, "deleted") > 0
	if deleted {
		r.logger.Info("Comment deleted", zap.String("comment_id", commentID))
	}
	return deleted, nil
}

// FindCommentsByPost returns all comments reachable via HAS_COMMENT from the
// post. An unknown post yields an empty slice, not an error.
func (r *Repository) FindCommentsByPost(ctx context.Context, postID string) ([]*Comment, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (p:Post {id: $postID})-[:HAS_COMMENT]->(c:Comment)
		RETURN c.id as id, c.content as content, c.created_at as created_at
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"postID": postID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find comments by post: %w", err)
	}

	comments := []*Comment{}
	for result.Next(ctx) {
		comments = append(comments, commentFromRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}

	return comments, nil
}

// DeleteCommentFromPost deletes the comment only when it is linked to the
// given post via HAS_COMMENT. Returns false when the comment is missing or
// belongs to a different post; callers cannot tell those two apart from the
// boolean alone.
func (r *Repository) DeleteCommentFromPost(ctx context.Context, postID, commentID string) (bool, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (p:Post {id: $postID})-[:HAS_COMMENT]->(c:Comment {id: $commentID})
		DETACH DELETE c
		RETURN count(c) as deleted
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"postID":    postID,
		"commentID": commentID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete comment from post: %w", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to delete comment from post: %w", err)
	}

	deleted := getInt64FromRecord(record, "deleted") > 0
	if deleted {
		r.logger.Info("Comment deleted from post",
			zap.String("comment_id", commentID),
			zap.String("post_id", postID),
		)
	}
	return deleted, nil
}

// LikeComment creates a LIKES edge from the user to the comment. MERGE keeps
// the edge unique per (user, comment) pair.
func (r *Repository) LikeComment(ctx context.Context, userID, commentID string) (*Relationship, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {id: $userID}), (c:Comment {id: $commentID})
		MERGE (u)-[r:LIKES]->(c)
		ON CREATE SET r.created_at = $now
		RETURN r.created_at as created_at
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID":    userID,
		"commentID": commentID,
		"now":       time.Now().Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to like comment: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		if _, err := r.FindUserByID(ctx, userID); err != nil {
			return nil, err
		}
		return nil, &NotFoundError{Label: "Comment", ID: commentID}
	}

	return &Relationship{
		Type:      "LIKES",
		FromID:    userID,
		ToID:      commentID,
		CreatedAt: getInt64FromRecord(result.Record(), "created_at"),
	}, nil
}

// UnlikeComment removes the LIKES edge between the pair. Returns true if an
// edge was removed.
func (r *Repository) UnlikeComment(ctx context.Context, userID, commentID string) (bool, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (u:User {id: $userID})-[r:LIKES]->(c:Comment {id: $commentID})
		DELETE r
		RETURN count(r) as deleted
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"userID":    userID,
		"commentID": commentID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to unlike comment: %w", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to unlike comment: %w", err)
	}

	return getInt64FromRecord(record, "deleted") > 0, nil
}
