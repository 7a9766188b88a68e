package domain

import (
	"strings"
	"time"
)

// MaxProductImages is the number of image slots a product accepts.
const MaxProductImages = 4

// Product represents a catalog item. Price is stored in integer cents.
// AverageRating is derived from the approved review set and is written only
// by the review moderation flow.
type Product struct {
	ID            string    `json:"id" bson:"_id"`
	Name          string    `json:"name" bson:"name"`
	Description   string    `json:"description" bson:"description"`
	Price         int64     `json:"price" bson:"price"`
	Category      string    `json:"category" bson:"category"`
	SubCategory   string    `json:"sub_category" bson:"sub_category"`
	Bestseller    bool      `json:"bestseller" bson:"bestseller"`
	Highlights    []string  `json:"highlights" bson:"highlights"`
	Images        []string  `json:"images" bson:"images"`
	Rating        int       `json:"rating" bson:"rating"`
	AverageRating float64   `json:"average_rating" bson:"average_rating"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// IsValidRating reports whether r is an acceptable 1-5 rating.
func IsValidRating(r int) bool {
	return r >= 1 && r <= 5
}

// ParseHighlights splits a comma-separated highlights string into a list,
// trimming whitespace and dropping empty entries. An absent input yields an
// empty list, never nil.
func ParseHighlights(raw string) []string {
	highlights := []string{}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			highlights = append(highlights, trimmed)
		}
	}
	return highlights
}

// ParseBestseller coerces the loosely-typed bestseller flag: only the literal
// string "true" counts.
func ParseBestseller(raw string) bool {
	return raw == "true"
}
