// Package agent wires the conversation endpoints to the gollem agent
// runtime. Conversation memory is owned by the agent library: the server
// keeps no thread state of its own beyond the per-thread agent instance.
package agent

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/gemini"
	gollemopenai "github.com/m-mizutani/gollem/llm/openai"
	"go.uber.org/zap"

	"github.com/furnish-labs/inventory-agent/internal/llm"
	"github.com/furnish-labs/inventory-agent/internal/model"
	"github.com/furnish-labs/inventory-agent/pkg/logger"
)

const systemPrompt = `You are a helpful assistant for a furniture store. You help customers find products in the store's inventory. When a customer asks about products, use the search_inventory tool to look up matching items and base your answer on the results: mention item names, prices, and notable details. Use get_item when the customer refers to a specific item by its ID. If nothing relevant is found, say so instead of inventing products.`

// Inventory is the subset of the document store the agent's tools need.
type Inventory interface {
	VectorSearch(ctx context.Context, vector []float32, limit int) ([]model.SearchResult, error)
	FindByID(ctx context.Context, itemID string) (*model.IndexedDocument, error)
}

// Config selects and configures the agent's model provider.
type Config struct {
	OpenAIAPIKey   string
	GeminiProject  string
	GeminiLocation string
}

// Service runs one gollem agent per conversation thread.
type Service struct {
	llmClient gollem.LLMClient
	store     Inventory
	embedder  llm.Embedder
	logger    *logger.Logger

	mu      sync.Mutex
	threads map[string]*gollem.Agent
}

// New creates the agent service. Gemini is preferred when a project is
// configured, otherwise the OpenAI provider is used.
func New(ctx context.Context, cfg Config, store Inventory, embedder llm.Embedder, log *logger.Logger) (*Service, error) {
	var client gollem.LLMClient
	var err error

	switch {
	case cfg.GeminiProject != "":
		client, err = gemini.New(ctx, cfg.GeminiProject, cfg.GeminiLocation)
	case cfg.OpenAIAPIKey != "":
		client, err = gollemopenai.New(ctx, cfg.OpenAIAPIKey)
	default:
		return nil, errors.New("no model provider configured for the agent")
	}
	if err != nil {
		return nil, err
	}

	return &Service{
		llmClient: client,
		store:     store,
		embedder:  embedder,
		logger:    log,
		threads:   make(map[string]*gollem.Agent),
	}, nil
}

// Ask forwards a user message to the thread's agent and returns its reply.
// Ordering between concurrent calls for the same thread is whatever the
// agent library enforces; this layer adds none.
func (s *Service) Ask(ctx context.Context, threadID, message string) (string, error) {
	if s == nil {
		return "", errors.New("agent is not configured")
	}

	ag := s.threadAgent(threadID)

	resp, err := ag.Execute(ctx, gollem.Text(message))
	if err != nil {
		return "", err
	}

	s.logger.WithThread(threadID).Debug("agent reply", zap.Int("parts", len(resp.Texts)))
	return strings.Join(resp.Texts, "\n"), nil
}

// threadAgent returns the agent owning the thread's history, creating it
// on first contact.
func (s *Service) threadAgent(threadID string) *gollem.Agent {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ag, ok := s.threads[threadID]; ok {
		return ag
	}

	ag := gollem.New(s.llmClient,
		gollem.WithSystemPrompt(systemPrompt),
		gollem.WithTools(newTools(s.store, s.embedder)...),
	)
	s.threads[threadID] = ag
	return ag
}
