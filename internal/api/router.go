package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"social-graph-api/pkg/logger"
)

// Server holds the handler dependencies
type Server struct {
	store  Store
	logger *zap.Logger
}

// NewServer creates a new API server around the given store
func NewServer(store Store) *Server {
	return &Server{
		store:  store,
		logger: logger.Get(),
	}
}

// Router builds the gin engine with all routes and middleware registered
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(s.logger))
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		// Users
		api.GET("/users", s.listUsers)
		api.POST("/users", s.createUser)
		api.GET("/users/:id", s.getUser)
		api.PUT("/users/:id", s.updateUser)
		api.DELETE("/users/:id", s.deleteUser)

		// Friendships
		api.GET("/users/:id/friends", s.listFriends)
		api.POST("/users/:id/friends", s.addFriend)
		api.GET("/users/:id/friends/:friend_id", s.checkFriends)
		api.DELETE("/users/:id/friends/:friend_id", s.removeFriend)
		api.GET("/users/:id/mutual-friends/:other_id", s.mutualFriends)

		// Posts
		api.GET("/posts", s.listPosts)
		api.GET("/posts/:id", s.getPost)
		api.PUT("/posts/:id", s.updatePost)
		api.DELETE("/posts/:id", s.deletePost)
		api.GET("/users/:id/posts", s.listUserPosts)
		api.POST("/users/:id/posts", s.createPost)
		api.POST("/posts/:id/like", s.likePost)
		api.DELETE("/posts/:id/like", s.unlikePost)

		// Comments
		api.GET("/comments", s.listComments)
		api.GET("/comments/:id", s.getComment)
		api.PUT("/comments/:id", s.updateComment)
		api.DELETE("/comments/:id", s.deleteComment)
		api.GET("/posts/:id/comments", s.listPostComments)
		api.POST("/posts/:id/comments", s.createComment)
		api.DELETE("/posts/:id/comments/:comment_id", s.deletePostComment)
		api.POST("/comments/:id/like", s.likeComment)
		api.DELETE("/comments/:id/like", s.unlikeComment)
	}

	return router
}

// requestLogger is a custom logger middleware for Gin
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("HTTP Request",
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}

// corsMiddleware allows cross-origin requests
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
