package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
	"go.uber.org/zap"

	"social-graph-api/pkg/logger"
)

// Repository handles all Neo4j database operations
type Repository struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewRepository creates a new graph repository
func NewRepository(driver neo4j.DriverWithContext) *Repository {
	return &Repository{
		driver: driver,
		logger: logger.Get(),
	}
}

// Close closes the Neo4j driver connection
func (r *Repository) Close() error {
	return r.driver.Close(context.Background())
}

// schemaStatements hold the uniqueness constraints applied at startup.
// The email constraint is what makes CreateUser's check-and-write atomic:
// a duplicate email surfaces as a store-level constraint violation instead
// of racing an application-level existence check.
var schemaStatements = []string{
	`CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE`,
	`CREATE CONSTRAINT user_email_unique IF NOT EXISTS FOR (u:User) REQUIRE u.email IS UNIQUE`,
	`CREATE CONSTRAINT post_id_unique IF NOT EXISTS FOR (p:Post) REQUIRE p.id IS UNIQUE`,
	`CREATE CONSTRAINT comment_id_unique IF NOT EXISTS FOR (c:Comment) REQUIRE c.id IS UNIQUE`,
}

// EnsureSchema creates the uniqueness constraints (and their backing indexes)
func (r *Repository) EnsureSchema(ctx context.Context) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	for _, stmt := range schemaStatements {
		result, err := session.Run(ctx, stmt, nil)
		if err != nil {
			return fmt.Errorf("failed to apply schema constraint: %w", err)
		}
		if _, err := result.Consume(ctx); err != nil {
			return fmt.Errorf("failed to apply schema constraint: %w", err)
		}
	}

	r.logger.Info("Graph schema constraints ensured", zap.Int("constraints", len(schemaStatements)))
	return nil
}

// Errors

// NotFoundError is returned when a node lookup resolves nothing. Absence is
// ordinary control flow here, not a store failure.
type NotFoundError struct {
	Label string
	ID    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", strings.ToLower(e.Label), e.ID)
}

// ConflictError is returned when a write would violate a uniqueness rule,
// currently only User.email.
type ConflictError struct {
	Property string
	Value    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Property, e.Value)
}

// isUniquenessViolation reports whether err is a store-level uniqueness
// constraint violation. The driver may surface it on Run or when the
// result is consumed, so callers check both places.
func isUniquenessViolation(err error) bool {
	var neoErr *db.Neo4jError
	return errors.As(err, &neoErr) && neoErr.Code == "Neo.ClientError.Schema.ConstraintValidationFailed"
}
