package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"social-graph-api/internal/graph"
)

// ============================================================================
// Comment Handlers
// ============================================================================

func (s *Server) listComments(c *gin.Context) {
	comments, err := s.store.ListComments(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to list comments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list comments"})
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (s *Server) getComment(c *gin.Context) {
	comment, err := s.store.FindCommentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		var notFound *graph.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		s.logger.Error("Failed to fetch comment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comment"})
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (s *Server) listPostComments(c *gin.Context) {
	comments, err := s.store.FindCommentsByPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.logger.Error("Failed to list post comments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list post comments"})
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (s *Server) createComment(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
		UserID  string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing content or user_id"})
		return
	}

	if !lengthBetween(req.Content, commentMinLen, commentMaxLen) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content must be between 5 and 1000 characters"})
		return
	}

	comment, err := s.store.CreateComment(c.Request.Context(), req.Content, req.UserID, c.Param("id"))
	if err != nil {
		var notFound *graph.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User or post not found"})
			return
		}
		s.logger.Error("Failed to create comment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (s *Server) updateComment(c *gin.Context) {
	var req struct {
		Content *string `json:"content"`
	}
	if err := decodeStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Content != nil && !lengthBetween(*req.Content, commentMinLen, commentMaxLen) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content must be between 5 and 1000 characters"})
		return
	}

	comment, err := s.store.UpdateComment(c.Request.Context(), c.Param("id"), graph.CommentUpdate{
		Content: req.Content,
	})
	if err != nil {
		var notFound *graph.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		s.logger.Error("Failed to update comment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (s *Server) deleteComment(c *gin.Context) {
	deleted, err := s.store.DeleteComment(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.logger.Error("Failed to delete comment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

func (s *Server) deletePostComment(c *gin.Context) {
	deleted, err := s.store.DeleteCommentFromPost(c.Request.Context(), c.Param("id"), c.Param("comment_id"))
	if err != nil {
		s.logger.Error("Failed to delete post comment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post comment"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found or doesn't belong to post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

func (s *Server) likeComment(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user_id"})
		return
	}

	if _, err := s.store.LikeComment(c.Request.Context(), req.UserID, c.Param("id")); err != nil {
		var notFound *graph.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User or comment not found"})
			return
		}
		s.logger.Error("Failed to like comment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like comment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Comment liked"})
}

func (s *Server) unlikeComment(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user_id"})
		return
	}

	removed, err := s.store.UnlikeComment(c.Request.Context(), req.UserID, c.Param("id"))
	if err != nil {
		s.logger.Error("Failed to unlike comment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlike comment"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Like not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Like removed"})
}
