package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trendella/storefront/internal/domain"
	pkgkafka "github.com/trendella/storefront/pkg/kafka"
)

// Kafka topics for storefront domain events.
const (
	TopicCartUpdated     = "storefront.cart.updated"
	TopicProductCreated  = "storefront.product.created"
	TopicProductDeleted  = "storefront.product.deleted"
	TopicReviewSubmitted = "storefront.review.submitted"
	TopicReviewModerated = "storefront.review.moderated"
)

// Aggregate type constants.
const (
	AggregateTypeCart    = "cart"
	AggregateTypeProduct = "product"
	AggregateTypeReview  = "review"
)

// Source identifier for events originating from this service.
const SourceStorefront = "storefront"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	UserID   string          `json:"user_id"`
	ItemID   string          `json:"item_id"`
	CartData domain.CartData `json:"cart_data"`
}

// ProductCreatedData is the payload for a product.created event.
type ProductCreatedData struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Category    string   `json:"category"`
	SubCategory string   `json:"sub_category"`
	Bestseller  bool     `json:"bestseller"`
	Images      []string `json:"images"`
}

// ProductDeletedData is the payload for a product.deleted event.
type ProductDeletedData struct {
	ID string `json:"id"`
}

// ReviewSubmittedData is the payload for a review.submitted event.
type ReviewSubmittedData struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	UserID    string `json:"user_id"`
	Rating    int    `json:"rating"`
}

// ReviewModeratedData is the payload for a review.moderated event.
type ReviewModeratedData struct {
	ID            string  `json:"id"`
	ProductID     string  `json:"product_id"`
	Status        string  `json:"status"`
	AverageRating float64 `json:"average_rating"`
}

// Producer publishes storefront domain events to Kafka. Publishing is
// fire-and-forget from the caller's perspective; failures are logged by the
// services and never fail the originating operation.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event keyed by user.
func (p *Producer) PublishCartUpdated(ctx context.Context, userID, itemID string, cart domain.CartData) error {
	data := CartUpdatedData{
		UserID:   userID,
		ItemID:   itemID,
		CartData: cart,
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, userID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("user_id", userID),
		slog.String("item_id", itemID),
	)

	return nil
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	data := ProductCreatedData{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Category:    product.Category,
		SubCategory: product.SubCategory,
		Bestseller:  product.Bestseller,
		Images:      product.Images,
	}

	event, err := pkgkafka.NewEvent(TopicProductCreated, product.ID, AggregateTypeProduct, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create product.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductCreated, event); err != nil {
		return fmt.Errorf("publish product.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.created event",
		slog.String("product_id", product.ID),
	)

	return nil
}

// PublishProductDeleted publishes a product.deleted event.
func (p *Producer) PublishProductDeleted(ctx context.Context, id string) error {
	event, err := pkgkafka.NewEvent(TopicProductDeleted, id, AggregateTypeProduct, SourceStorefront, ProductDeletedData{ID: id})
	if err != nil {
		return fmt.Errorf("create product.deleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductDeleted, event); err != nil {
		return fmt.Errorf("publish product.deleted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.deleted event",
		slog.String("product_id", id),
	)

	return nil
}

// PublishReviewSubmitted publishes a review.submitted event.
func (p *Producer) PublishReviewSubmitted(ctx context.Context, review *domain.Review) error {
	data := ReviewSubmittedData{
		ID:        review.ID,
		ProductID: review.ProductID,
		UserID:    review.UserID,
		Rating:    review.Rating,
	}

	event, err := pkgkafka.NewEvent(TopicReviewSubmitted, review.ID, AggregateTypeReview, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create review.submitted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewSubmitted, event); err != nil {
		return fmt.Errorf("publish review.submitted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.submitted event",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
	)

	return nil
}

// PublishReviewModerated publishes a review.moderated event carrying the
// recomputed aggregate rating.
func (p *Producer) PublishReviewModerated(ctx context.Context, review *domain.Review, averageRating float64) error {
	data := ReviewModeratedData{
		ID:            review.ID,
		ProductID:     review.ProductID,
		Status:        review.Status,
		AverageRating: averageRating,
	}

	event, err := pkgkafka.NewEvent(TopicReviewModerated, review.ID, AggregateTypeReview, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create review.moderated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewModerated, event); err != nil {
		return fmt.Errorf("publish review.moderated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.moderated event",
		slog.String("review_id", review.ID),
		slog.String("status", review.Status),
	)

	return nil
}
