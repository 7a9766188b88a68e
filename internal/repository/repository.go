package repository

import (
	"context"

	"github.com/trendella/storefront/internal/domain"
)

// UserRepository defines persistence operations for user documents.
type UserRepository interface {
	// GetByID retrieves a user by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByIDs retrieves the users matching the given identifiers. Missing
	// IDs are simply absent from the result, not an error.
	GetByIDs(ctx context.Context, ids []string) ([]domain.User, error)

	// UpdateCart persists the entire cart mapping onto the user document.
	UpdateCart(ctx context.Context, userID string, cart domain.CartData) error
}

// ProductRepository defines persistence operations for catalog products.
type ProductRepository interface {
	// Create inserts a new product into the store.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// List returns all products, newest first.
	List(ctx context.Context) ([]domain.Product, error)

	// Delete removes a product by its identifier. Reviews referencing the
	// product are left in place.
	Delete(ctx context.Context, id string) error

	// UpdateAverageRating persists a recomputed aggregate rating.
	UpdateAverageRating(ctx context.Context, productID string, average float64) error
}

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	// Create inserts a new review into the store.
	Create(ctx context.Context, review *domain.Review) error

	// GetByID retrieves a review by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Review, error)

	// UpdateStatus sets the moderation status of a review.
	UpdateStatus(ctx context.Context, id, status string) error

	// ListByProduct returns a product's reviews, optionally filtered by
	// status. An empty status matches all.
	ListByProduct(ctx context.Context, productID, status string) ([]domain.Review, error)
}
