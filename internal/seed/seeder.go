package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/furnish-labs/inventory-agent/internal/llm"
	"github.com/furnish-labs/inventory-agent/internal/model"
	"github.com/furnish-labs/inventory-agent/pkg/logger"
	"github.com/furnish-labs/inventory-agent/pkg/metrics"
)

// ItemStore is the subset of the document store the seeder needs.
type ItemStore interface {
	EnsureCollection(ctx context.Context) error
	RecreateVectorIndex(ctx context.Context) error
	DeleteAll(ctx context.Context) (int64, error)
	Insert(ctx context.Context, doc *model.IndexedDocument) error
}

// ItemGenerator produces one batch of catalog items.
type ItemGenerator interface {
	Generate(ctx context.Context) ([]model.CatalogItem, error)
}

// Seeder populates the items collection from scratch: it replaces all
// existing documents with a freshly generated batch, one embedded record
// at a time.
type Seeder struct {
	store     ItemStore
	generator ItemGenerator
	embedder  llm.Embedder
	logger    *logger.Logger
}

// NewSeeder creates a new seeder.
func NewSeeder(store ItemStore, generator ItemGenerator, embedder llm.Embedder, log *logger.Logger) *Seeder {
	return &Seeder{
		store:     store,
		generator: generator,
		embedder:  embedder,
		logger:    log,
	}
}

// Run executes a full seeding pass. Steps are strictly sequential; each
// is a precondition for the next. Index creation is the one soft failure:
// it is logged and swallowed, so the run can finish without a queryable
// vector index. Documents are inserted one at a time without rollback, so
// a mid-run failure leaves a partial collection.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.store.EnsureCollection(ctx); err != nil {
		return fmt.Errorf("collection setup failed: %w", err)
	}

	if err := s.store.RecreateVectorIndex(ctx); err != nil {
		// Seeding proceeds without a guaranteed index; vector search may
		// be degraded until the index is recreated.
		s.logger.Error("failed to create vector search index", zap.Error(err))
	}

	deleted, err := s.store.DeleteAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear existing data: %w", err)
	}
	s.logger.Info("cleared existing data from items collection", zap.Int64("deleted", deleted))

	s.logger.Info("generating synthetic data", zap.Int("batch_size", BatchSize))
	items, err := s.generator.Generate(ctx)
	if err != nil {
		return err
	}

	for _, item := range items {
		summary := item.Summary()

		vectors, err := s.embedder.Embed(ctx, []string{summary})
		if err != nil {
			return fmt.Errorf("failed to embed item %q: %w", item.ItemID, err)
		}
		if len(vectors) != 1 {
			return fmt.Errorf("expected one embedding for item %q, got %d", item.ItemID, len(vectors))
		}
		metrics.EmbeddingsTotal.Inc()

		doc := &model.IndexedDocument{
			CatalogItem:   item,
			EmbeddingText: summary,
			Embedding:     vectors[0],
		}
		if err := s.store.Insert(ctx, doc); err != nil {
			return err
		}
		metrics.DocumentsSeeded.Inc()

		s.logger.Info("successfully processed and saved record", zap.String("item_id", item.ItemID))
	}

	s.logger.Info("database seeding completed", zap.Int("documents", len(items)))
	return nil
}
