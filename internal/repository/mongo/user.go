package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/trendella/storefront/internal/domain"
	apperrors "github.com/trendella/storefront/pkg/errors"
)

// UserRepository implements repository.UserRepository using MongoDB.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a MongoDB-backed user repository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection("users")}
}

// GetByID retrieves a user by its ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("user", id)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user.CartData == nil {
		user.CartData = domain.CartData{}
	}
	return &user, nil
}

// GetByIDs retrieves the users matching the given IDs.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []domain.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// UpdateCart persists the whole cart mapping onto the user document.
func (r *UserRepository) UpdateCart(ctx context.Context, userID string, cart domain.CartData) error {
	update := bson.M{"$set": bson.M{
		"cart_data":  cart,
		"updated_at": time.Now().UTC(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("update cart: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("user", userID)
	}
	return nil
}

// Create inserts a new user document. Used by tests and seeding.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.CartData == nil {
		user.CartData = domain.CartData{}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}
