package graph

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// These tests require a running Neo4j instance.
// Set NEO4J_URI, NEO4J_USER, NEO4J_PASSWORD environment variables.

func createTestDriver() (neo4j.DriverWithContext, error) {
	uri := os.Getenv("NEO4J_URI")
	if uri == "" {
		uri = "bolt://localhost:7687"
	}
	user := os.Getenv("NEO4J_USER")
	if user == "" {
		user = "neo4j"
	}
	password := os.Getenv("NEO4J_PASSWORD")
	if password == "" {
		password = "password"
	}
	return neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
}

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	driver, err := createTestDriver()
	if err != nil {
		t.Fatalf("Failed to create driver: %v", err)
	}
	t.Cleanup(func() {
		_ = driver.Close(context.Background())
	})

	repo := NewRepository(driver)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	return repo
}

func uniqueEmail(prefix string) string {
	prefix = strings.ReplaceAll(strings.ToLower(prefix), " ", ".")
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

func createTestUser(t *testing.T, repo *Repository, name string) *User {
	t.Helper()
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, name, uniqueEmail(name))
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	t.Cleanup(func() {
		_, _ = repo.DeleteUser(ctx, user.ID)
	})
	return user
}

func createTestPost(t *testing.T, repo *Repository, author *User, title, content string) *Post {
	t.Helper()
	ctx := context.Background()

	post, err := repo.CreatePost(ctx, title, content, author.ID)
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	t.Cleanup(func() {
		_, _ = repo.DeletePost(ctx, post.ID)
	})
	return post
}

func createTestComment(t *testing.T, repo *Repository, author *User, post *Post, content string) *Comment {
	t.Helper()
	ctx := context.Background()

	comment, err := repo.CreateComment(ctx, content, author.ID, post.ID)
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}
	t.Cleanup(func() {
		_, _ = repo.DeleteComment(ctx, comment.ID)
	})
	return comment
}
