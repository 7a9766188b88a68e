package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/trendella/storefront/internal/domain"
	"github.com/trendella/storefront/internal/event"
	"github.com/trendella/storefront/internal/repository"
	apperrors "github.com/trendella/storefront/pkg/errors"
)

// ReviewService implements the review moderation flow. A review is created
// pending; moderation moves it to a terminal state and synchronously
// recomputes the owning product's aggregate rating over the approved set.
type ReviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	users    repository.UserRepository
	events   *event.Producer
	logger   *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(
	reviews repository.ReviewRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	events *event.Producer,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		products: products,
		users:    users,
		events:   events,
		logger:   logger,
	}
}

// Submit creates a pending review for a product, then recomputes the
// product's aggregate rating over its current approved set. A just-submitted
// review is pending and cannot change the average, but the recompute also
// repairs any drift left by a concurrent moderation.
func (s *ReviewService) Submit(ctx context.Context, productID, userID string, rating int, reviewText string) (*domain.Review, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product_id is required")
	}
	if userID == "" {
		return nil, apperrors.InvalidInput("user_id is required")
	}
	if !domain.IsValidRating(rating) {
		return nil, apperrors.InvalidInput("rating must be between 1 and 5")
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		ID:         uuid.New().String(),
		ProductID:  productID,
		UserID:     userID,
		Rating:     rating,
		ReviewText: reviewText,
		Status:     domain.ReviewStatusPending,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	if _, err := s.recomputeAverage(ctx, productID); err != nil {
		return nil, fmt.Errorf("recompute average after submission: %w", err)
	}

	if err := s.events.PublishReviewSubmitted(ctx, review); err != nil {
		s.logger.WarnContext(ctx, "failed to publish review.submitted event",
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "review submitted",
		slog.String("review_id", review.ID),
		slog.String("product_id", productID),
		slog.String("user_id", userID),
		slog.Int("rating", rating),
	)

	return review, nil
}

// ListApproved returns a product's approved reviews joined with each author's
// public name and email. Authors missing from the user collection leave an
// empty author block rather than failing the listing.
func (s *ReviewService) ListApproved(ctx context.Context, productID string) ([]domain.ReviewWithAuthor, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product_id is required")
	}

	reviews, err := s.reviews.ListByProduct(ctx, productID, domain.ReviewStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("list approved reviews: %w", err)
	}

	seen := make(map[string]struct{}, len(reviews))
	userIDs := make([]string, 0, len(reviews))
	for _, r := range reviews {
		if _, ok := seen[r.UserID]; !ok {
			seen[r.UserID] = struct{}{}
			userIDs = append(userIDs, r.UserID)
		}
	}

	users, err := s.users.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load review authors: %w", err)
	}
	authors := make(map[string]domain.ReviewAuthor, len(users))
	for _, u := range users {
		authors[u.ID] = domain.ReviewAuthor{Name: u.Name, Email: u.Email}
	}

	result := make([]domain.ReviewWithAuthor, 0, len(reviews))
	for _, r := range reviews {
		result = append(result, domain.ReviewWithAuthor{
			Review: r,
			Author: authors[r.UserID],
		})
	}
	return result, nil
}

// Moderate applies an approve/reject decision to a review, persists the
// terminal status, and recomputes the product's aggregate rating over the
// resulting approved set. Re-moderating a decided review overwrites its
// status and converges on the same end state.
func (s *ReviewService) Moderate(ctx context.Context, reviewID string, action domain.ModerationAction) (*domain.Review, error) {
	if reviewID == "" {
		return nil, apperrors.InvalidInput("review id is required")
	}
	if !action.Valid() {
		return nil, apperrors.InvalidInput("action must be approve or reject")
	}

	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	status := action.Status()
	if err := s.reviews.UpdateStatus(ctx, reviewID, status); err != nil {
		return nil, fmt.Errorf("update review status: %w", err)
	}
	review.Status = status

	average, err := s.recomputeAverage(ctx, review.ProductID)
	if err != nil {
		return nil, fmt.Errorf("recompute average after moderation: %w", err)
	}

	if err := s.events.PublishReviewModerated(ctx, review, average); err != nil {
		s.logger.WarnContext(ctx, "failed to publish review.moderated event",
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "review moderated",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
		slog.String("status", status),
		slog.Float64("average_rating", average),
	)

	return review, nil
}

// recomputeAverage recalculates and persists the product's aggregate rating
// as the mean of its currently-approved reviews, 0 when there are none.
func (s *ReviewService) recomputeAverage(ctx context.Context, productID string) (float64, error) {
	approved, err := s.reviews.ListByProduct(ctx, productID, domain.ReviewStatusApproved)
	if err != nil {
		return 0, fmt.Errorf("list approved reviews: %w", err)
	}

	average := domain.AverageRating(approved)
	if err := s.products.UpdateAverageRating(ctx, productID, average); err != nil {
		return 0, fmt.Errorf("persist average rating: %w", err)
	}
	return average, nil
}
