package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8000", cfg.ServerPort)
	assert.Equal(t, "inventory_database", cfg.MongoDatabase)
	assert.Equal(t, "items", cfg.MongoCollection)
	assert.Equal(t, "vector_index", cfg.VectorIndexName)
	assert.Equal(t, 768, cfg.EmbeddingDimensions)
	assert.Equal(t, "http://localhost:5173", cfg.AllowedOrigin)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.TracingEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("MONGO_ATLAS_URI", "mongodb://localhost:27017")
	t.Setenv("EMBEDDING_DIMENSIONS", "1536")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("TRACING_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, "9001", cfg.ServerPort)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, 1536, cfg.EmbeddingDimensions)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.True(t, cfg.TracingEnabled)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("EMBEDDING_DIMENSIONS", "not-a-number")
	t.Setenv("RATE_LIMIT_WINDOW", "soon")

	cfg := Load()

	assert.Equal(t, 768, cfg.EmbeddingDimensions)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
}
