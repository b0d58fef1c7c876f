package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furnish-labs/inventory-agent/internal/model"
)

type mockInventory struct {
	searchFn func(ctx context.Context, vector []float32, limit int) ([]model.SearchResult, error)
	findFn   func(ctx context.Context, itemID string) (*model.IndexedDocument, error)
}

func (m *mockInventory) VectorSearch(ctx context.Context, vector []float32, limit int) ([]model.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, vector, limit)
	}
	return nil, nil
}

func (m *mockInventory) FindByID(ctx context.Context, itemID string) (*model.IndexedDocument, error) {
	if m.findFn != nil {
		return m.findFn(ctx, itemID)
	}
	return nil, errors.New("not found")
}

type mockEmbedder struct {
	embedFn func(ctx context.Context, input []string) ([][]float32, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, input []string) ([][]float32, error) {
	if m.embedFn != nil {
		return m.embedFn(ctx, input)
	}
	return [][]float32{{0.1, 0.2}}, nil
}

func (m *mockEmbedder) Dimension() int { return 2 }

func searchResult(id, name string, score float64) model.SearchResult {
	return model.SearchResult{
		CatalogItem: model.CatalogItem{
			ItemID:     id,
			ItemName:   name,
			Brand:      "Oak & Iron",
			Prices:     model.Prices{FullPrice: 100, SalePrice: 80},
			Categories: []string{"Chairs"},
		},
		EmbeddingText: name + " summary",
		Score:         score,
	}
}

func TestSearchInventoryTool_Run(t *testing.T) {
	var gotLimit int
	store := &mockInventory{
		searchFn: func(ctx context.Context, vector []float32, limit int) ([]model.SearchResult, error) {
			gotLimit = limit
			return []model.SearchResult{
				searchResult("item-001", "Blue Sofa", 0.93),
				searchResult("item-002", "Navy Loveseat", 0.88),
			}, nil
		},
	}

	tool := &searchInventoryTool{store: store, embedder: &mockEmbedder{}}
	out, err := tool.Run(context.Background(), map[string]any{"query": "blue sofa", "limit": float64(3)})

	require.NoError(t, err)
	assert.Equal(t, 3, gotLimit)

	items, ok := out["items"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	assert.Equal(t, "item-001", items[0]["item_id"])
	assert.Equal(t, "Blue Sofa", items[0]["item_name"])
	assert.Equal(t, 0.93, items[0]["score"])
}

func TestSearchInventoryTool_RequiresQuery(t *testing.T) {
	tool := &searchInventoryTool{store: &mockInventory{}, embedder: &mockEmbedder{}}

	_, err := tool.Run(context.Background(), map[string]any{})
	require.Error(t, err)
}

func TestSearchInventoryTool_EmbedderErrors(t *testing.T) {
	embedder := &mockEmbedder{
		embedFn: func(ctx context.Context, input []string) ([][]float32, error) {
			return nil, errors.New("provider down")
		},
	}
	tool := &searchInventoryTool{store: &mockInventory{}, embedder: embedder}

	_, err := tool.Run(context.Background(), map[string]any{"query": "sofa"})
	require.Error(t, err)
}

func TestSearchInventoryTool_NoEmbedderConfigured(t *testing.T) {
	tool := &searchInventoryTool{store: &mockInventory{}}

	_, err := tool.Run(context.Background(), map[string]any{"query": "sofa"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no embedding provider")
}

func TestGetItemTool_Run(t *testing.T) {
	store := &mockInventory{
		findFn: func(ctx context.Context, itemID string) (*model.IndexedDocument, error) {
			require.Equal(t, "item-042", itemID)
			return &model.IndexedDocument{
				CatalogItem: model.CatalogItem{
					ItemID:   "item-042",
					ItemName: "Oak Bookshelf",
					Brand:    "Oak & Iron",
				},
			}, nil
		},
	}

	tool := &getItemTool{store: store}
	out, err := tool.Run(context.Background(), map[string]any{"item_id": "item-042"})

	require.NoError(t, err)
	assert.Equal(t, "Oak Bookshelf", out["item_name"])
}

func TestGetItemTool_RequiresItemID(t *testing.T) {
	tool := &getItemTool{store: &mockInventory{}}

	_, err := tool.Run(context.Background(), map[string]any{})
	require.Error(t, err)
}

func TestAskOnNilServiceFails(t *testing.T) {
	var svc *Service

	_, err := svc.Ask(context.Background(), "thread-1", "hello")
	require.Error(t, err)
}

func TestToolSpecs(t *testing.T) {
	tools := newTools(&mockInventory{}, &mockEmbedder{})
	require.Len(t, tools, 2)

	search := tools[0].Spec()
	assert.Equal(t, "search_inventory", search.Name)
	require.Contains(t, search.Parameters, "query")
	assert.True(t, search.Parameters["query"].Required)

	get := tools[1].Spec()
	assert.Equal(t, "get_item", get.Name)
	require.Contains(t, get.Parameters, "item_id")
}
