package seed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furnish-labs/inventory-agent/internal/model"
	"github.com/furnish-labs/inventory-agent/pkg/logger"
)

// fakeStore records the order of store operations.
type fakeStore struct {
	calls    []string
	docs     []*model.IndexedDocument
	indexErr error
	insertFn func(doc *model.IndexedDocument) error
}

func (f *fakeStore) EnsureCollection(ctx context.Context) error {
	f.calls = append(f.calls, "ensure")
	return nil
}

func (f *fakeStore) RecreateVectorIndex(ctx context.Context) error {
	f.calls = append(f.calls, "index")
	return f.indexErr
}

func (f *fakeStore) DeleteAll(ctx context.Context) (int64, error) {
	f.calls = append(f.calls, "delete")
	deleted := int64(len(f.docs))
	f.docs = nil
	return deleted, nil
}

func (f *fakeStore) Insert(ctx context.Context, doc *model.IndexedDocument) error {
	f.calls = append(f.calls, "insert")
	if f.insertFn != nil {
		if err := f.insertFn(doc); err != nil {
			return err
		}
	}
	f.docs = append(f.docs, doc)
	return nil
}

type fakeGenerator struct {
	items []model.CatalogItem
	err   error
}

func (f *fakeGenerator) Generate(ctx context.Context) ([]model.CatalogItem, error) {
	return f.items, f.err
}

type fakeEmbedder struct {
	embedFn func(input []string) ([][]float32, error)
	calls   int
}

func (f *fakeEmbedder) Embed(ctx context.Context, input []string) ([][]float32, error) {
	f.calls++
	if f.embedFn != nil {
		return f.embedFn(input)
	}
	vectors := make([][]float32, len(input))
	for i := range vectors {
		vectors[i] = []float32{0.1, 0.2, 0.3}
	}
	return vectors, nil
}

func (f *fakeEmbedder) Dimension() int { return 3 }

func testBatch(n int) []model.CatalogItem {
	items := make([]model.CatalogItem, n)
	for i := range items {
		items[i] = testItem(fmt.Sprintf("item-%03d", i))
	}
	return items
}

func TestSeeder_Run(t *testing.T) {
	store := &fakeStore{}
	embedder := &fakeEmbedder{}
	seeder := NewSeeder(store, &fakeGenerator{items: testBatch(BatchSize)}, embedder, logger.NewNop())

	require.NoError(t, seeder.Run(context.Background()))

	// Strict stage order: ensure, index, delete, then one insert per item.
	require.GreaterOrEqual(t, len(store.calls), 3)
	assert.Equal(t, []string{"ensure", "index", "delete"}, store.calls[:3])
	assert.Equal(t, BatchSize, len(store.calls)-3)

	assert.Len(t, store.docs, BatchSize)
	assert.Equal(t, BatchSize, embedder.calls)

	for _, doc := range store.docs {
		assert.NotEmpty(t, doc.EmbeddingText)
		assert.NotEmpty(t, doc.Embedding)
		assert.Equal(t, doc.CatalogItem.Summary(), doc.EmbeddingText)
	}
}

func TestSeeder_SecondRunReplacesContents(t *testing.T) {
	store := &fakeStore{}
	seeder := NewSeeder(store, &fakeGenerator{items: testBatch(BatchSize)}, &fakeEmbedder{}, logger.NewNop())

	require.NoError(t, seeder.Run(context.Background()))
	require.NoError(t, seeder.Run(context.Background()))

	// No duplication: the second run cleared the first run's documents.
	assert.Len(t, store.docs, BatchSize)
}

func TestSeeder_IndexFailureIsSoft(t *testing.T) {
	store := &fakeStore{indexErr: errors.New("index rejected")}
	seeder := NewSeeder(store, &fakeGenerator{items: testBatch(2)}, &fakeEmbedder{}, logger.NewNop())

	// Seeding proceeds even when index creation is rejected.
	require.NoError(t, seeder.Run(context.Background()))
	assert.Len(t, store.docs, 2)
}

func TestSeeder_GeneratorFailureAbortsBeforeInsert(t *testing.T) {
	store := &fakeStore{}
	seeder := NewSeeder(store, &fakeGenerator{err: &model.ValidationError{Detail: "bad batch"}}, &fakeEmbedder{}, logger.NewNop())

	err := seeder.Run(context.Background())
	require.Error(t, err)

	var vErr *model.ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.NotContains(t, store.calls, "insert")
}

func TestSeeder_EmbedFailureLeavesPartialCollection(t *testing.T) {
	store := &fakeStore{}
	embedder := &fakeEmbedder{}
	embedder.embedFn = func(input []string) ([][]float32, error) {
		if embedder.calls > 3 {
			return nil, errors.New("embedding provider down")
		}
		return [][]float32{{0.5}}, nil
	}

	seeder := NewSeeder(store, &fakeGenerator{items: testBatch(BatchSize)}, embedder, logger.NewNop())

	err := seeder.Run(context.Background())
	require.Error(t, err)

	// No rollback: records embedded before the failure stay inserted.
	assert.Len(t, store.docs, 3)
}

func TestSeeder_InsertFailureAborts(t *testing.T) {
	store := &fakeStore{}
	store.insertFn = func(doc *model.IndexedDocument) error {
		if len(store.docs) == 1 {
			return errors.New("connection reset")
		}
		return nil
	}

	seeder := NewSeeder(store, &fakeGenerator{items: testBatch(BatchSize)}, &fakeEmbedder{}, logger.NewNop())

	err := seeder.Run(context.Background())
	require.Error(t, err)
	assert.Len(t, store.docs, 1)
}
