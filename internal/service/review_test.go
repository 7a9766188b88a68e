package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/trendella/storefront/internal/domain"
	apperrors "github.com/trendella/storefront/pkg/errors"
)

func newReviewService(reviews *mockReviewRepository, products *mockProductRepository, users *mockUserRepository) *ReviewService {
	logger := newTestLogger()
	return NewReviewService(reviews, products, users, newTestProducer(logger), logger)
}

func TestSubmit_CreatesPendingAndRecomputes(t *testing.T) {
	reviews := new(mockReviewRepository)
	products := new(mockProductRepository)
	users := new(mockUserRepository)

	products.On("GetByID", mock.Anything, "prod-1").Return(&domain.Product{ID: "prod-1"}, nil)

	var created *domain.Review
	reviews.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*domain.Review)
	}).Return(nil)

	// No approved reviews yet, so the recompute persists 0.
	reviews.On("ListByProduct", mock.Anything, "prod-1", domain.ReviewStatusApproved).Return([]domain.Review{}, nil)
	products.On("UpdateAverageRating", mock.Anything, "prod-1", 0.0).Return(nil)

	svc := newReviewService(reviews, products, users)
	review, err := svc.Submit(context.Background(), "prod-1", "user-1", 4, "solid fabric")
	require.NoError(t, err)

	assert.Equal(t, domain.ReviewStatusPending, review.Status)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, "solid fabric", review.ReviewText)
	assert.NotEmpty(t, review.ID)
	assert.Equal(t, created.ID, review.ID)
	products.AssertExpectations(t)
}

func TestSubmit_InvalidRating_NoMutation(t *testing.T) {
	reviews := new(mockReviewRepository)
	products := new(mockProductRepository)

	svc := newReviewService(reviews, products, new(mockUserRepository))

	for _, rating := range []int{0, -3, 6, 100} {
		_, err := svc.Submit(context.Background(), "prod-1", "user-1", rating, "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "rating %d", rating)
	}

	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	products.AssertNotCalled(t, "UpdateAverageRating", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_ProductNotFound(t *testing.T) {
	reviews := new(mockReviewRepository)
	products := new(mockProductRepository)
	products.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.NotFound("product", "missing"))

	svc := newReviewService(reviews, products, new(mockUserRepository))
	_, err := svc.Submit(context.Background(), "missing", "user-1", 4, "")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestModerate_ApproveRecomputesAverage(t *testing.T) {
	reviews := new(mockReviewRepository)
	products := new(mockProductRepository)

	pending := &domain.Review{ID: "rev-1", ProductID: "prod-1", Rating: 4, Status: domain.ReviewStatusPending}
	reviews.On("GetByID", mock.Anything, "rev-1").Return(pending, nil)
	reviews.On("UpdateStatus", mock.Anything, "rev-1", domain.ReviewStatusApproved).Return(nil)
	reviews.On("ListByProduct", mock.Anything, "prod-1", domain.ReviewStatusApproved).Return([]domain.Review{
		{ID: "rev-1", Rating: 4, Status: domain.ReviewStatusApproved},
	}, nil)
	products.On("UpdateAverageRating", mock.Anything, "prod-1", 4.0).Return(nil)

	svc := newReviewService(reviews, products, new(mockUserRepository))
	review, err := svc.Moderate(context.Background(), "rev-1", domain.ModerationApprove)
	require.NoError(t, err)

	assert.Equal(t, domain.ReviewStatusApproved, review.Status)
	products.AssertExpectations(t)
}

func TestModerate_SecondApprovalAveragesBoth(t *testing.T) {
	reviews := new(mockReviewRepository)
	products := new(mockProductRepository)

	pending := &domain.Review{ID: "rev-2", ProductID: "prod-1", Rating: 2, Status: domain.ReviewStatusPending}
	reviews.On("GetByID", mock.Anything, "rev-2").Return(pending, nil)
	reviews.On("UpdateStatus", mock.Anything, "rev-2", domain.ReviewStatusApproved).Return(nil)
	reviews.On("ListByProduct", mock.Anything, "prod-1", domain.ReviewStatusApproved).Return([]domain.Review{
		{ID: "rev-1", Rating: 4, Status: domain.ReviewStatusApproved},
		{ID: "rev-2", Rating: 2, Status: domain.ReviewStatusApproved},
	}, nil)
	products.On("UpdateAverageRating", mock.Anything, "prod-1", 3.0).Return(nil)

	svc := newReviewService(reviews, products, new(mockUserRepository))
	_, err := svc.Moderate(context.Background(), "rev-2", domain.ModerationApprove)
	require.NoError(t, err)

	products.AssertExpectations(t)
}

func TestModerate_RejectEmptiesApprovedSet(t *testing.T) {
	reviews := new(mockReviewRepository)
	products := new(mockProductRepository)

	approved := &domain.Review{ID: "rev-1", ProductID: "prod-1", Rating: 4, Status: domain.ReviewStatusApproved}
	reviews.On("GetByID", mock.Anything, "rev-1").Return(approved, nil)
	reviews.On("UpdateStatus", mock.Anything, "rev-1", domain.ReviewStatusRejected).Return(nil)
	reviews.On("ListByProduct", mock.Anything, "prod-1", domain.ReviewStatusApproved).Return([]domain.Review{}, nil)
	products.On("UpdateAverageRating", mock.Anything, "prod-1", 0.0).Return(nil)

	svc := newReviewService(reviews, products, new(mockUserRepository))
	review, err := svc.Moderate(context.Background(), "rev-1", domain.ModerationReject)
	require.NoError(t, err)

	assert.Equal(t, domain.ReviewStatusRejected, review.Status)
	products.AssertExpectations(t)
}

func TestModerate_IdempotentApproval(t *testing.T) {
	reviews := new(mockReviewRepository)
	products := new(mockProductRepository)

	stored := &domain.Review{ID: "rev-1", ProductID: "prod-1", Rating: 4, Status: domain.ReviewStatusApproved}
	reviews.On("GetByID", mock.Anything, "rev-1").Return(stored, nil)
	reviews.On("UpdateStatus", mock.Anything, "rev-1", domain.ReviewStatusApproved).Return(nil)
	reviews.On("ListByProduct", mock.Anything, "prod-1", domain.ReviewStatusApproved).Return([]domain.Review{
		{ID: "rev-1", Rating: 4, Status: domain.ReviewStatusApproved},
	}, nil)
	products.On("UpdateAverageRating", mock.Anything, "prod-1", 4.0).Return(nil)

	svc := newReviewService(reviews, products, new(mockUserRepository))

	first, err := svc.Moderate(context.Background(), "rev-1", domain.ModerationApprove)
	require.NoError(t, err)
	second, err := svc.Moderate(context.Background(), "rev-1", domain.ModerationApprove)
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	products.AssertNumberOfCalls(t, "UpdateAverageRating", 2)
}

func TestModerate_InvalidAction(t *testing.T) {
	reviews := new(mockReviewRepository)

	svc := newReviewService(reviews, new(mockProductRepository), new(mockUserRepository))
	_, err := svc.Moderate(context.Background(), "rev-1", domain.ModerationAction("publish"))

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	reviews.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestModerate_ReviewNotFound(t *testing.T) {
	reviews := new(mockReviewRepository)
	reviews.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.NotFound("review", "missing"))

	svc := newReviewService(reviews, new(mockProductRepository), new(mockUserRepository))
	_, err := svc.Moderate(context.Background(), "missing", domain.ModerationApprove)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListApproved_JoinsAuthors(t *testing.T) {
	reviews := new(mockReviewRepository)
	users := new(mockUserRepository)

	reviews.On("ListByProduct", mock.Anything, "prod-1", domain.ReviewStatusApproved).Return([]domain.Review{
		{ID: "rev-1", UserID: "user-1", Rating: 4, Status: domain.ReviewStatusApproved},
		{ID: "rev-2", UserID: "user-2", Rating: 5, Status: domain.ReviewStatusApproved},
		{ID: "rev-3", UserID: "user-1", Rating: 3, Status: domain.ReviewStatusApproved},
	}, nil)
	users.On("GetByIDs", mock.Anything, []string{"user-1", "user-2"}).Return([]domain.User{
		{ID: "user-1", Name: "Asha", Email: "asha@example.com"},
		{ID: "user-2", Name: "Noor", Email: "noor@example.com"},
	}, nil)

	svc := newReviewService(reviews, new(mockProductRepository), users)
	got, err := svc.ListApproved(context.Background(), "prod-1")
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "Asha", got[0].Author.Name)
	assert.Equal(t, "Noor", got[1].Author.Name)
	assert.Equal(t, "Asha", got[2].Author.Name)
}

func TestListApproved_MissingAuthorLeftEmpty(t *testing.T) {
	reviews := new(mockReviewRepository)
	users := new(mockUserRepository)

	reviews.On("ListByProduct", mock.Anything, "prod-1", domain.ReviewStatusApproved).Return([]domain.Review{
		{ID: "rev-1", UserID: "ghost", Rating: 4, Status: domain.ReviewStatusApproved},
	}, nil)
	users.On("GetByIDs", mock.Anything, []string{"ghost"}).Return([]domain.User{}, nil)

	svc := newReviewService(reviews, new(mockProductRepository), users)
	got, err := svc.ListApproved(context.Background(), "prod-1")
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Empty(t, got[0].Author.Name)
}

func TestListApproved_EmptySet(t *testing.T) {
	reviews := new(mockReviewRepository)
	users := new(mockUserRepository)

	reviews.On("ListByProduct", mock.Anything, "prod-1", domain.ReviewStatusApproved).Return([]domain.Review{}, nil)
	users.On("GetByIDs", mock.Anything, []string{}).Return([]domain.User{}, nil)

	svc := newReviewService(reviews, new(mockProductRepository), users)
	got, err := svc.ListApproved(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}
