package agent

import (
	"context"
	"fmt"

	"github.com/m-mizutani/gollem"

	"github.com/furnish-labs/inventory-agent/internal/llm"
)

func newTools(store Inventory, embedder llm.Embedder) []gollem.Tool {
	return []gollem.Tool{
		&searchInventoryTool{store: store, embedder: embedder},
		&getItemTool{store: store},
	}
}

// searchInventoryTool finds catalog items by semantic similarity to a
// free-text query.
type searchInventoryTool struct {
	store    Inventory
	embedder llm.Embedder
}

func (t *searchInventoryTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "search_inventory",
		Description: "Search the furniture inventory for items semantically matching the query",
		Parameters: map[string]*gollem.Parameter{
			"query": {
				Type:        gollem.TypeString,
				Description: "Free-text description of what the customer is looking for",
				Required:    true,
			},
			"limit": {
				Type:        gollem.TypeInteger,
				Description: "Maximum number of results to return (default: 5)",
				Required:    false,
			},
		},
	}
}

func (t *searchInventoryTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	query, _ := args["query"].(string)
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	limit := 5
	if v, ok := args["limit"].(float64); ok && v > 0 {
		limit = int(v)
	}

	if t.embedder == nil {
		return nil, fmt.Errorf("no embedding provider configured")
	}

	vectors, err := t.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed search query: %w", err)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, fmt.Errorf("embedding generation returned empty result")
	}

	results, err := t.store.VectorSearch(ctx, vectors[0], limit)
	if err != nil {
		return nil, fmt.Errorf("inventory search failed: %w", err)
	}

	items := make([]map[string]any, len(results))
	for i, r := range results {
		items[i] = map[string]any{
			"item_id":    r.ItemID,
			"item_name":  r.ItemName,
			"brand":      r.Brand,
			"full_price": r.Prices.FullPrice,
			"sale_price": r.Prices.SalePrice,
			"categories": r.Categories,
			"summary":    r.EmbeddingText,
			"score":      r.Score,
		}
	}
	return map[string]any{"items": items}, nil
}

// getItemTool fetches one catalog item by its identifier.
type getItemTool struct {
	store Inventory
}

func (t *getItemTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "get_item",
		Description: "Get full details of an inventory item by its item ID",
		Parameters: map[string]*gollem.Parameter{
			"item_id": {
				Type:        gollem.TypeString,
				Description: "The ID of the item to retrieve",
				Required:    true,
			},
		},
	}
}

func (t *getItemTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	itemID, _ := args["item_id"].(string)
	if itemID == "" {
		return nil, fmt.Errorf("item_id is required")
	}

	doc, err := t.store.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"item_id":          doc.ItemID,
		"item_name":        doc.ItemName,
		"item_description": doc.ItemDescription,
		"brand":            doc.Brand,
		"full_price":       doc.Prices.FullPrice,
		"sale_price":       doc.Prices.SalePrice,
		"categories":       doc.Categories,
		"notes":            doc.Notes,
	}, nil
}
