package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItem() CatalogItem {
	return CatalogItem{
		ItemID:          "item-001",
		ItemName:        "Aurora Sofa",
		ItemDescription: "A three-seat sofa with deep blue velvet upholstery",
		Brand:           "Northwind Living",
		ManufactureAddress: Address{
			Street:     "14 Havnegade",
			City:       "Aarhus",
			State:      "Midtjylland",
			PostalCode: "8000",
			Country:    "Denmark",
		},
		Prices: Prices{
			FullPrice: 1299.99,
			SalePrice: 999.99,
		},
		Categories: []string{"Sofas", "Living Room"},
		UserReviews: []Review{
			{ReviewDate: "2024-03-18", Rating: "5", Comment: "Incredibly comfortable"},
			{ReviewDate: "2024-05-02", Rating: "4", Comment: "Color slightly darker than pictured"},
		},
		Notes: "Ships flat-packed in two boxes",
	}
}

func TestSummary_ContainsAllParts(t *testing.T) {
	item := validItem()
	summary := item.Summary()

	assert.Contains(t, summary, item.ItemName)
	assert.Contains(t, summary, item.ItemDescription)
	assert.Contains(t, summary, item.Brand)
	assert.Contains(t, summary, "Made in Denmark")
	for _, c := range item.Categories {
		assert.Contains(t, summary, c)
	}
	for _, r := range item.UserReviews {
		assert.Contains(t, summary, r.Comment)
		assert.Contains(t, summary, r.ReviewDate)
	}
	assert.Contains(t, summary, "1299.99")
	assert.Contains(t, summary, "999.99")
	assert.Contains(t, summary, item.Notes)
}

func TestSummary_Deterministic(t *testing.T) {
	item := validItem()
	assert.Equal(t, item.Summary(), item.Summary())
}

func TestSummary_EmptyListsProduceWellFormedClauses(t *testing.T) {
	item := validItem()
	item.Categories = nil
	item.UserReviews = nil

	summary := item.Summary()

	require.NotEmpty(t, summary)
	assert.Contains(t, summary, "Categories: .")
	assert.Contains(t, summary, "Reviews: .")
	assert.Contains(t, summary, item.Brand)
}

func TestValidateItem_Valid(t *testing.T) {
	require.NoError(t, ValidateItem(validItem()))
}

func TestValidateItem_MissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CatalogItem)
	}{
		{"missing item_id", func(i *CatalogItem) { i.ItemID = "" }},
		{"missing brand", func(i *CatalogItem) { i.Brand = "" }},
		{"missing notes", func(i *CatalogItem) { i.Notes = "" }},
		{"missing country", func(i *CatalogItem) { i.ManufactureAddress.Country = "" }},
		{"empty categories", func(i *CatalogItem) { i.Categories = nil }},
		{"negative price", func(i *CatalogItem) { i.Prices.FullPrice = -1 }},
		{"review missing comment", func(i *CatalogItem) { i.UserReviews[0].Comment = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := validItem()
			tc.mutate(&item)

			err := ValidateItem(item)
			require.Error(t, err)

			var vErr *ValidationError
			assert.True(t, errors.As(err, &vErr))
		})
	}
}

func TestValidateItem_ZeroSalePriceIsValid(t *testing.T) {
	item := validItem()
	item.Prices.SalePrice = 0

	require.NoError(t, ValidateItem(item))
}

func TestValidateItems_RejectsBatchOnFirstBadRecord(t *testing.T) {
	good := validItem()
	bad := validItem()
	bad.ItemName = ""

	err := ValidateItems([]CatalogItem{good, bad})
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Detail, "record 1")
}

func TestValidateItems_EmptyBatch(t *testing.T) {
	err := ValidateItems(nil)
	require.Error(t, err)
}

func TestChatRequest_MessageString(t *testing.T) {
	msg, ok := ChatRequest{Message: "hello"}.MessageString()
	require.True(t, ok)
	assert.Equal(t, "hello", msg)

	_, ok = ChatRequest{Message: ""}.MessageString()
	assert.False(t, ok)

	_, ok = ChatRequest{Message: nil}.MessageString()
	assert.False(t, ok)

	_, ok = ChatRequest{Message: 42.0}.MessageString()
	assert.False(t, ok)
}
