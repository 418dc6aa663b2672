package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"social-graph-api/internal/graph"
)

// ============================================================================
// User Handlers
// ============================================================================

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.store.ListUsers(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) createUser(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing name or email"})
		return
	}

	if !validEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}
	if !lengthBetween(req.Name, nameMinLen, nameMaxLen) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name must be between 3 and 50 characters"})
		return
	}

	user, err := s.store.CreateUser(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		var conflict *graph.ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
			return
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (s *Server) getUser(c *gin.Context) {
	user, err := s.store.FindUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		var notFound *graph.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		s.logger.Error("Failed to fetch user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) updateUser(c *gin.Context) {
	var req struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
	}
	if err := decodeStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Email != nil && !validEmail(*req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}
	if req.Name != nil && !lengthBetween(*req.Name, nameMinLen, nameMaxLen) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name must be between 3 and 50 characters"})
		return
	}

	user, err := s.store.UpdateUser(c.Request.Context(), c.Param("id"), graph.UserUpdate{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		var notFound *graph.NotFoundError
		var conflict *graph.ConflictError
		switch {
		case errors.As(err, &notFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.As(err, &conflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
		default:
			s.logger.Error("Failed to update user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

func (s *Server) deleteUser(c *gin.Context) {
	deleted, err := s.store.DeleteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.logger.Error("Failed to delete user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// ============================================================================
// Friendship Handlers
// ============================================================================

func (s *Server) listFriends(c *gin.Context) {
	friends, err := s.store.ListFriends(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.logger.Error("Failed to list friends", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list friends"})
		return
	}
	c.JSON(http.StatusOK, friends)
}

func (s *Server) addFriend(c *gin.Context) {
	var req struct {
		FriendID string `json:"friend_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing friend_id"})
		return
	}

	if _, err := s.store.AddFriend(c.Request.Context(), c.Param("id"), req.FriendID); err != nil {
		var notFound *graph.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User or friend not found"})
			return
		}
		s.logger.Error("Failed to add friend", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add friend"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Friend added"})
}

func (s *Server) checkFriends(c *gin.Context) {
	areFriends, err := s.store.AreFriends(c.Request.Context(), c.Param("id"), c.Param("friend_id"))
	if err != nil {
		s.logger.Error("Failed to check friendship", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check friendship"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"are_friends": areFriends})
}

func (s *Server) removeFriend(c *gin.Context) {
	removed, err := s.store.RemoveFriend(c.Request.Context(), c.Param("id"), c.Param("friend_id"))
	if err != nil {
		s.logger.Error("Failed to remove friend", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove friend"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Friendship not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friendship removed"})
}

func (s *Server) mutualFriends(c *gin.Context) {
	mutual, err := s.store.MutualFriends(c.Request.Context(), c.Param("id"), c.Param("other_id"))
	if err != nil {
		s.logger.Error("Failed to find mutual friends", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find mutual friends"})
		return
	}
	c.JSON(http.StatusOK, mutual)
}
