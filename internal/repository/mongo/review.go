package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trendella/storefront/internal/domain"
	apperrors "github.com/trendella/storefront/pkg/errors"
)

// ReviewRepository implements repository.ReviewRepository using MongoDB.
type ReviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository creates a MongoDB-backed review repository.
func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{collection: db.Collection("reviews")}
}

// Create inserts a new review.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	if _, err := r.collection.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// GetByID retrieves a review by its ID.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	var review domain.Review

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("review", id)
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return &review, nil
}

// UpdateStatus sets the moderation status of a review.
func (r *ReviewRepository) UpdateStatus(ctx context.Context, id, status string) error {
	update := bson.M{"$set": bson.M{"status": status}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update review status: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("review", id)
	}
	return nil
}

// ListByProduct returns a product's reviews, oldest first. An empty status
// matches all statuses.
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID, status string) ([]domain.Review, error) {
	filter := bson.M{"product_id": productID}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []domain.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	return reviews, nil
}

// CreateIndexes creates the supporting index for approved-set queries.
func (r *ReviewRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "product_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create review indexes: %w", err)
	}
	return nil
}
