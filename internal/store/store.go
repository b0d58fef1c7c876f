// Package store provides MongoDB document storage with vector search.
package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/furnish-labs/inventory-agent/internal/model"
	"github.com/furnish-labs/inventory-agent/pkg/logger"
	"github.com/furnish-labs/inventory-agent/pkg/metrics"
)

// Config holds document store connection configuration.
type Config struct {
	URI        string
	Database   string
	Collection string
	IndexName  string
	Dimensions int
}

// Store wraps a single long-lived MongoDB client. It is opened once at
// startup and shared by every handler for the process lifetime.
type Store struct {
	client *mongo.Client
	cfg    Config
	logger *logger.Logger
}

// Connect establishes a connection to MongoDB.
func Connect(ctx context.Context, cfg Config, log *logger.Logger) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("MongoDB connection string is required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	return &Store{
		client: client,
		cfg:    cfg,
		logger: log,
	}, nil
}

// Ping verifies connectivity with a lightweight admin ping.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return fmt.Errorf("MongoDB ping failed: %w", err)
	}
	return nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) collection() *mongo.Collection {
	return s.client.Database(s.cfg.Database).Collection(s.cfg.Collection)
}

// EnsureCollection creates the items collection if it does not exist yet.
func (s *Store) EnsureCollection(ctx context.Context) error {
	db := s.client.Database(s.cfg.Database)

	names, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: s.cfg.Collection}})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	if len(names) > 0 {
		s.logger.Info("collection already exists",
			zap.String("collection", s.cfg.Collection), zap.String("database", s.cfg.Database))
		return nil
	}

	if err := db.CreateCollection(ctx, s.cfg.Collection); err != nil {
		return fmt.Errorf("failed to create collection %q: %w", s.cfg.Collection, err)
	}

	s.logger.Info("created collection",
		zap.String("collection", s.cfg.Collection), zap.String("database", s.cfg.Database))
	return nil
}

// RecreateVectorIndex drops all indexes on the collection and defines the
// vector search index over the embedding field (cosine similarity, fixed
// dimensionality). Atlas builds search indexes asynchronously, so a nil
// return does not mean the index is queryable yet.
func (s *Store) RecreateVectorIndex(ctx context.Context) error {
	coll := s.collection()

	if _, err := coll.Indexes().DropAll(ctx); err != nil {
		return fmt.Errorf("failed to drop existing indexes: %w", err)
	}

	definition := bson.D{
		{Key: "fields", Value: bson.A{
			bson.D{
				{Key: "type", Value: "vector"},
				{Key: "path", Value: "embedding"},
				{Key: "numDimensions", Value: s.cfg.Dimensions},
				{Key: "similarity", Value: "cosine"},
			},
		}},
	}

	_, err := coll.SearchIndexes().CreateOne(ctx, mongo.SearchIndexModel{
		Definition: definition,
		Options:    options.SearchIndexes().SetName(s.cfg.IndexName).SetType("vectorSearch"),
	})
	if err != nil {
		return fmt.Errorf("failed to create vector search index %q: %w", s.cfg.IndexName, err)
	}

	s.logger.Info("created vector search index",
		zap.String("index", s.cfg.IndexName), zap.Int("dimensions", s.cfg.Dimensions))
	return nil
}

// DeleteAll removes every document in the items collection and returns
// the number deleted.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.collection().DeleteMany(ctx, bson.D{})
	if err != nil {
		metrics.RecordStoreError("delete_all")
		return 0, fmt.Errorf("failed to clear collection: %w", err)
	}
	return res.DeletedCount, nil
}

// Insert stores a single indexed document.
func (s *Store) Insert(ctx context.Context, doc *model.IndexedDocument) error {
	if _, err := s.collection().InsertOne(ctx, doc); err != nil {
		metrics.RecordStoreError("insert")
		return fmt.Errorf("failed to insert document %q: %w", doc.ItemID, err)
	}
	return nil
}

// FindByID fetches a single document by its item identifier.
func (s *Store) FindByID(ctx context.Context, itemID string) (*model.IndexedDocument, error) {
	var doc model.IndexedDocument
	err := s.collection().FindOne(ctx, bson.D{{Key: "item_id", Value: itemID}}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("item %q not found", itemID)
		}
		metrics.RecordStoreError("find_by_id")
		return nil, fmt.Errorf("failed to fetch item %q: %w", itemID, err)
	}
	return &doc, nil
}

// VectorSearch runs an approximate nearest-neighbor query against the
// vector index and returns up to limit scored results.
func (s *Store) VectorSearch(ctx context.Context, vector []float32, limit int) ([]model.SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$vectorSearch", Value: bson.D{
			{Key: "index", Value: s.cfg.IndexName},
			{Key: "path", Value: "embedding"},
			{Key: "queryVector", Value: vector},
			{Key: "numCandidates", Value: limit * 10},
			{Key: "limit", Value: limit},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "score", Value: bson.D{{Key: "$meta", Value: "vectorSearchScore"}}},
		}}},
	}

	cursor, err := s.collection().Aggregate(ctx, pipeline)
	if err != nil {
		metrics.RecordStoreError("vector_search")
		return nil, fmt.Errorf("vector search failed: %w", err)
	}
	defer cursor.Close(ctx)

	var results []model.SearchResult
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}
	return results, nil
}
