// Package main seeds the items collection with synthetic catalog data
// and embeddings. It is a one-off script run before the server.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/furnish-labs/inventory-agent/internal/config"
	"github.com/furnish-labs/inventory-agent/internal/llm"
	"github.com/furnish-labs/inventory-agent/internal/seed"
	"github.com/furnish-labs/inventory-agent/internal/store"
	"github.com/furnish-labs/inventory-agent/pkg/logger"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("error seeding the database", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	if cfg.MongoURI == "" {
		return fmt.Errorf("MONGO_ATLAS_URI environment variable is required")
	}
	if cfg.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	// Embeddings are always computed with OpenAI so the vector space
	// matches the index the server queries.
	embedder, err := llm.NewOpenAIClient(cfg.OpenAIAPIKey)
	if err != nil {
		return err
	}

	// Item generation can use either chat provider.
	var generatorClient llm.Client = embedder
	if cfg.AnthropicAPIKey != "" {
		generatorClient, err = llm.NewClient(llm.ProviderAnthropic, cfg.AnthropicAPIKey)
		if err != nil {
			return err
		}
	}
	log.Info("using model provider for data generation", zap.String("provider", generatorClient.Name()))

	db, err := store.Connect(ctx, store.Config{
		URI:        cfg.MongoURI,
		Database:   cfg.MongoDatabase,
		Collection: cfg.MongoCollection,
		IndexName:  cfg.VectorIndexName,
		Dimensions: cfg.EmbeddingDimensions,
	}, log)
	if err != nil {
		return err
	}
	// The connection is closed on exit, success or failure.
	defer db.Close(ctx)

	if err := db.Ping(ctx); err != nil {
		return err
	}
	log.Info("successfully connected to MongoDB")

	seeder := seed.NewSeeder(db, seed.NewGenerator(generatorClient), embedder, log)
	return seeder.Run(ctx)
}
