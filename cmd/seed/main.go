package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"social-graph-api/internal/graph"
	"social-graph-api/pkg/config"
	"social-graph-api/pkg/logger"
)

func main() {
	wipe := flag.Bool("wipe", false, "Delete all User/Post/Comment nodes before seeding")
	flag.Parse()

	// Initialize logger
	if err := logger.Init("development"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting database seeding...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	defer driver.Close(ctx)

	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity", zap.Error(err))
	}

	if *wipe {
		if err := wipeGraph(ctx, driver); err != nil {
			log.Fatal("Failed to wipe graph", zap.Error(err))
		}
		log.Info("Graph wiped")
	}

	repo := graph.NewRepository(driver)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to ensure graph schema", zap.Error(err))
	}

	if err := seed(ctx, repo); err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}

	log.Info("Seeding complete")
}

func wipeGraph(ctx context.Context, driver neo4j.DriverWithContext) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (n)
		WHERE n:User OR n:Post OR n:Comment
		DETACH DELETE n
	`
	_, err := session.Run(ctx, query, nil)
	return err
}

func seed(ctx context.Context, repo *graph.Repository) error {
	alice, err := repo.CreateUser(ctx, "Alice Smith", "alice@example.com")
	if err != nil {
		return fmt.Errorf("create alice: %w", err)
	}
	bob, err := repo.CreateUser(ctx, "Bob Jones", "bob@example.com")
	if err != nil {
		return fmt.Errorf("create bob: %w", err)
	}
	carol, err := repo.CreateUser(ctx, "Carol White", "carol@example.com")
	if err != nil {
		return fmt.Errorf("create carol: %w", err)
	}

	if _, err := repo.AddFriend(ctx, alice.ID, bob.ID); err != nil {
		return fmt.Errorf("befriend alice/bob: %w", err)
	}
	if _, err := repo.AddFriend(ctx, bob.ID, carol.ID); err != nil {
		return fmt.Errorf("befriend bob/carol: %w", err)
	}

	post, err := repo.CreatePost(ctx, "Hello World!!", "This is my first post content.", alice.ID)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}

	if _, err := repo.LikePost(ctx, bob.ID, post.ID); err != nil {
		return fmt.Errorf("like post: %w", err)
	}

	comment, err := repo.CreateComment(ctx, "Nice post!", bob.ID, post.ID)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}

	if _, err := repo.LikeComment(ctx, carol.ID, comment.ID); err != nil {
		return fmt.Errorf("like comment: %w", err)
	}

	return nil
}
