package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"social-graph-api/internal/graph"
)

// ============================================================================
// Post Handlers
// ============================================================================

func (s *Server) listPosts(c *gin.Context) {
	posts, err := s.store.ListPosts(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to list posts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list posts"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (s *Server) getPost(c *gin.Context) {
	post, err := s.store.FindPostByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		var notFound *graph.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		s.logger.Error("Failed to fetch post", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}
	c.JSON(http.StatusOK, post)
}

func (s *Server) listUserPosts(c *gin.Context) {
	posts, err := s.store.FindPostsByAuthor(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.logger.Error("Failed to list user posts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list user posts"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (s *Server) createPost(c *gin.Context) {
	var req struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing title or content"})
		return
	}

	if !lengthBetween(req.Title, titleMinLen, titleMaxLen) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title must be between 5 and 100 characters"})
		return
	}
	if !lengthBetween(req.Content, postMinLen, postMaxLen) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content must be between 10 and 2000 characters"})
		return
	}

	post, err := s.store.CreatePost(c.Request.Context(), req.Title, req.Content, c.Param("id"))
	if err != nil {
		var notFound *graph.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		s.logger.Error("Failed to create post", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (s *Server) updatePost(c *gin.Context) {
	var req struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := decodeStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil && !lengthBetween(*req.Title, titleMinLen, titleMaxLen) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title must be between 5 and 100 characters"})
		return
	}
	if req.Content != nil && !lengthBetween(*req.Content, postMinLen, postMaxLen) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content must be between 10 and 2000 characters"})
		return
	}

	post, err := s.store.UpdatePost(c.Request.Context(), c.Param("id"), graph.PostUpdate{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		var notFound *graph.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		s.logger.Error("Failed to update post", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

func (s *Server) deletePost(c *gin.Context) {
	deleted, err := s.store.DeletePost(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.logger.Error("Failed to delete post", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func (s *Server) likePost(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user_id"})
		return
	}

	if _, err := s.store.LikePost(c.Request.Context(), req.UserID, c.Param("id")); err != nil {
		var notFound *graph.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User or post not found"})
			return
		}
		s.logger.Error("Failed to like post", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Post liked"})
}

func (s *Server) unlikePost(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user_id"})
		return
	}

	removed, err := s.store.UnlikePost(c.Request.Context(), req.UserID, c.Param("id"))
	if err != nil {
		s.logger.Error("Failed to unlike post", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlike post"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Like not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Like removed"})
}
