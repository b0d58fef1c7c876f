// Package model defines the catalog item schema and API payloads.
package model

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Address is the manufacturing origin of an item.
type Address struct {
	Street     string `json:"street" bson:"street" validate:"required"`
	City       string `json:"city" bson:"city" validate:"required"`
	State      string `json:"state" bson:"state" validate:"required"`
	PostalCode string `json:"postal_code" bson:"postal_code" validate:"required"`
	Country    string `json:"country" bson:"country" validate:"required"`
}

// Prices holds the commercial fields of an item. Zero is a valid price,
// so presence is checked structurally rather than with "required".
type Prices struct {
	FullPrice float64 `json:"full_price" bson:"full_price" validate:"gte=0"`
	SalePrice float64 `json:"sale_price" bson:"sale_price" validate:"gte=0"`
}

// Review is a single user review. Dates and ratings are kept as strings,
// matching the upstream catalog feed.
type Review struct {
	ReviewDate string `json:"review_date" bson:"review_date" validate:"required"`
	Rating     string `json:"rating" bson:"rating" validate:"required"`
	Comment    string `json:"comment" bson:"comment" validate:"required"`
}

// CatalogItem represents one furniture product. Every field is required;
// partial records are never persisted.
type CatalogItem struct {
	ItemID             string   `json:"item_id" bson:"item_id" validate:"required"`
	ItemName           string   `json:"item_name" bson:"item_name" validate:"required"`
	ItemDescription    string   `json:"item_description" bson:"item_description" validate:"required"`
	Brand              string   `json:"brand" bson:"brand" validate:"required"`
	ManufactureAddress Address  `json:"manufacture_address" bson:"manufacture_address" validate:"required"`
	Prices             Prices   `json:"prices" bson:"prices" validate:"required"`
	Categories         []string `json:"categories" bson:"categories" validate:"required,min=1"`
	UserReviews        []Review `json:"user_reviews" bson:"user_reviews" validate:"required,dive"`
	Notes              string   `json:"notes" bson:"notes" validate:"required"`
}

// Summary renders the item into a flat paragraph suitable for embedding.
// The output is a deterministic function of the item: basic info,
// manufacturing origin, categories, reviews, prices, notes, in that order.
func (i CatalogItem) Summary() string {
	basicInfo := fmt.Sprintf("%s %s from the brand %s", i.ItemName, i.ItemDescription, i.Brand)
	manufacturer := fmt.Sprintf("Made in %s", i.ManufactureAddress.Country)
	categories := strings.Join(i.Categories, ", ")

	reviews := make([]string, len(i.UserReviews))
	for n, r := range i.UserReviews {
		reviews[n] = fmt.Sprintf("Rated %s on %s: %s", r.Rating, r.ReviewDate, r.Comment)
	}

	price := fmt.Sprintf("At full price it costs: %.2f USD, On sale it costs: %.2f USD",
		i.Prices.FullPrice, i.Prices.SalePrice)

	return fmt.Sprintf("%s. Manufacturer: %s. Categories: %s. Reviews: %s. Price: %s. Notes: %s",
		basicInfo, manufacturer, categories, strings.Join(reviews, " "), price, i.Notes)
}

// IndexedDocument is the persisted form of a CatalogItem: the original
// fields plus the summary text and its embedding vector. Documents are
// written once per seeding run and never mutated in place.
type IndexedDocument struct {
	CatalogItem   `bson:",inline"`
	EmbeddingText string    `json:"embedding_text" bson:"embedding_text"`
	Embedding     []float32 `json:"embedding" bson:"embedding"`
}

// SearchResult is one hit from a vector search over the items collection.
type SearchResult struct {
	CatalogItem   `bson:",inline"`
	EmbeddingText string  `bson:"embedding_text"`
	Score         float64 `bson:"score"`
}

// ValidationError reports a record that does not conform to the item schema.
type ValidationError struct {
	Detail string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("item validation failed: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("item validation failed: %s", e.Detail)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateItem checks a single item against the schema.
func ValidateItem(item CatalogItem) error {
	if err := validate.Struct(item); err != nil {
		return &ValidationError{Detail: fmt.Sprintf("item %q", item.ItemID), Err: err}
	}
	return nil
}

// ValidateItems checks a batch and rejects the whole batch on the first
// nonconforming record.
func ValidateItems(items []CatalogItem) error {
	if len(items) == 0 {
		return &ValidationError{Detail: "empty batch"}
	}
	for n, item := range items {
		if err := validate.Struct(item); err != nil {
			return &ValidationError{Detail: fmt.Sprintf("record %d (item %q)", n, item.ItemID), Err: err}
		}
	}
	return nil
}
