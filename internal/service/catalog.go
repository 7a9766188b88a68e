package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/trendella/storefront/internal/domain"
	"github.com/trendella/storefront/internal/event"
	"github.com/trendella/storefront/internal/repository"
	"github.com/trendella/storefront/internal/storage"
	apperrors "github.com/trendella/storefront/pkg/errors"
)

// AddProductInput holds the raw fields for creating a product. Highlights and
// Bestseller arrive in their loose wire form and are coerced here.
type AddProductInput struct {
	Name        string
	Description string
	Price       int64
	Category    string
	SubCategory string
	Highlights  string
	Bestseller  string
	Rating      int
}

// ImageUpload is one populated image slot of an add-product request.
type ImageUpload struct {
	Slot        int
	ContentType string
	Body        io.Reader
}

// CatalogService implements the business logic for catalog products.
type CatalogService struct {
	products repository.ProductRepository
	blobs    storage.Storage
	events   *event.Producer
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(products repository.ProductRepository, blobs storage.Storage, events *event.Producer, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		blobs:    blobs,
		events:   events,
		logger:   logger,
	}
}

// AddProduct uploads the supplied images and persists a new product. Uploads
// fan out concurrently across slots; the resulting URLs are reassembled in
// slot order before the product is written. Skipped slots leave no
// placeholder.
func (s *CatalogService) AddProduct(ctx context.Context, input *AddProductInput, images []ImageUpload) (*domain.Product, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("name is required")
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}
	if !domain.IsValidRating(input.Rating) {
		return nil, apperrors.InvalidInput("rating must be between 1 and 5")
	}
	if len(images) > domain.MaxProductImages {
		return nil, apperrors.InvalidInput(fmt.Sprintf("at most %d images are accepted", domain.MaxProductImages))
	}

	id := uuid.New().String()

	urls := make([]string, len(images))
	g, gctx := errgroup.WithContext(ctx)
	for i, img := range images {
		g.Go(func() error {
			result, err := s.blobs.Upload(gctx, &storage.UploadInput{
				Key:         fmt.Sprintf("%s-%d", id, img.Slot),
				ContentType: img.ContentType,
				Body:        img.Body,
			})
			if err != nil {
				return fmt.Errorf("upload image slot %d: %w", img.Slot, err)
			}
			urls[i] = result.URL
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:            id,
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		Category:      input.Category,
		SubCategory:   input.SubCategory,
		Bestseller:    domain.ParseBestseller(input.Bestseller),
		Highlights:    domain.ParseHighlights(input.Highlights),
		Images:        urls,
		Rating:        input.Rating,
		AverageRating: 0,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if err := s.events.PublishProductCreated(ctx, product); err != nil {
		s.logger.WarnContext(ctx, "failed to publish product.created event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("name", product.Name),
		slog.Int("images", len(product.Images)),
	)

	return product, nil
}

// List returns all products, newest first.
func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Get returns a single product by ID.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	return s.products.GetByID(ctx, id)
}

// Remove deletes a product. Reviews referencing the product are intentionally
// left in place.
func (s *CatalogService) Remove(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("product id is required")
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.events.PublishProductDeleted(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "failed to publish product.deleted event",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product removed",
		slog.String("product_id", id),
	)

	return nil
}
