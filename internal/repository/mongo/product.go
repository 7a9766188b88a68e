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

// ProductRepository implements repository.ProductRepository using MongoDB.
type ProductRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a MongoDB-backed product repository.
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{collection: db.Collection("products")}
}

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &product, nil
}

// List returns all products, newest first.
func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []domain.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// Delete removes a product by its ID. Associated reviews are not touched.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFound("product", id)
	}
	return nil
}

// UpdateAverageRating persists a recomputed aggregate rating.
func (r *ProductRepository) UpdateAverageRating(ctx context.Context, productID string, average float64) error {
	update := bson.M{"$set": bson.M{"average_rating": average}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": productID}, update)
	if err != nil {
		return fmt.Errorf("update average rating: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("product", productID)
	}
	return nil
}
