// Package seed generates synthetic catalog data and loads it into the
// document store together with embeddings.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/furnish-labs/inventory-agent/internal/llm"
	"github.com/furnish-labs/inventory-agent/internal/model"
)

// BatchSize is the fixed number of items requested per generation call.
const BatchSize = 10

// formatInstructions is embedded in the prompt so the model returns a
// machine-checkable JSON array matching the catalog item schema.
const formatInstructions = `Respond with a JSON array only, no prose and no markdown fences. Each element must be an object with exactly these fields:
- "item_id": string
- "item_name": string
- "item_description": string
- "brand": string
- "manufacture_address": object with string fields "street", "city", "state", "postal_code", "country"
- "prices": object with non-negative number fields "full_price" and "sale_price"
- "categories": non-empty array of strings
- "user_reviews": array of objects with string fields "review_date", "rating", "comment"
- "notes": string
Every field is required.`

// Generator asks the language model for a batch of schema-conformant
// catalog items.
type Generator struct {
	client llm.Client
}

// NewGenerator creates a generator backed by the given model provider.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client}
}

// Generate requests one batch of synthetic items and validates the raw
// response against the item schema. A malformed response is fatal for the
// run: no retry is attempted.
func (g *Generator) Generate(ctx context.Context) ([]model.CatalogItem, error) {
	prompt := fmt.Sprintf(`You are a helpful assistant that generates furniture store item data. Generate %d furniture store items. Each record should include the following fields: item_id, item_name, item_description, brand, manufacture_address, prices, categories, user_reviews, notes. Ensure variety in the data and realistic values.

%s`, BatchSize, formatInstructions)

	resp, err := g.client.Complete(ctx, &llm.CompletionRequest{
		Messages:    []llm.ChatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("synthetic data generation failed: %w", err)
	}

	items, err := parseItems(resp.Content)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// parseItems decodes the raw model output into catalog items and rejects
// any record that does not conform to the schema.
func parseItems(raw string) ([]model.CatalogItem, error) {
	cleaned := stripCodeFence(raw)

	var items []model.CatalogItem
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, &model.ValidationError{Detail: "response is not a JSON array of items", Err: err}
	}

	if err := model.ValidateItems(items); err != nil {
		return nil, err
	}
	return items, nil
}

// stripCodeFence removes a surrounding markdown fence that models emit
// despite instructions to the contrary.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
