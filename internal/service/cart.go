package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/trendella/storefront/internal/domain"
	"github.com/trendella/storefront/internal/event"
	"github.com/trendella/storefront/internal/repository"
	apperrors "github.com/trendella/storefront/pkg/errors"
)

// CartService implements the business logic for per-user cart mutations. The
// cart is embedded on the user document and written back wholesale; two
// concurrent mutations against the same user race with last-writer-wins
// semantics.
type CartService struct {
	users  repository.UserRepository
	events *event.Producer
	logger *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(users repository.UserRepository, events *event.Producer, logger *slog.Logger) *CartService {
	return &CartService{
		users:  users,
		events: events,
		logger: logger,
	}
}

// Add increments the simple-variant line for itemID by 1, inserting a fresh
// line at quantity 1 if absent. A sized line under the same itemID is a
// variant mismatch and leaves the cart untouched.
func (s *CartService) Add(ctx context.Context, userID, itemID string) (domain.CartData, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user_id is required")
	}
	if itemID == "" {
		return nil, apperrors.InvalidInput("item_id is required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart := user.CartData
	if line, ok := cart[itemID]; ok {
		if err := line.Increment(); err != nil {
			if errors.Is(err, domain.ErrCartVariantMismatch) {
				return nil, apperrors.InvalidInput(fmt.Sprintf("item %s is stored as a sized line; use the sized update", itemID))
			}
			return nil, fmt.Errorf("increment cart line: %w", err)
		}
		cart[itemID] = line
	} else {
		cart[itemID] = domain.NewSimpleLine()
	}

	if err := s.users.UpdateCart(ctx, userID, cart); err != nil {
		return nil, fmt.Errorf("persist cart: %w", err)
	}

	if err := s.events.PublishCartUpdated(ctx, userID, itemID, cart); err != nil {
		s.logger.WarnContext(ctx, "failed to publish cart.updated event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart item added",
		slog.String("user_id", userID),
		slog.String("item_id", itemID),
		slog.Int("quantity", cart[itemID].Quantity),
	)

	return cart, nil
}

// Update sets the quantity for one size on the sized-variant line for itemID,
// leaving sibling sizes untouched. An absent line is inserted as sized; a
// simple line is a variant mismatch.
func (s *CartService) Update(ctx context.Context, userID, itemID, size string, quantity int) (domain.CartData, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user_id is required")
	}
	if itemID == "" {
		return nil, apperrors.InvalidInput("item_id is required")
	}
	if size == "" {
		return nil, apperrors.InvalidInput("size is required")
	}
	if quantity < 0 {
		return nil, apperrors.InvalidInput("quantity must not be negative")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart := user.CartData
	if line, ok := cart[itemID]; ok {
		if err := line.SetSize(size, quantity); err != nil {
			if errors.Is(err, domain.ErrCartVariantMismatch) {
				return nil, apperrors.InvalidInput(fmt.Sprintf("item %s is stored as a simple line; use the simple add", itemID))
			}
			return nil, fmt.Errorf("set cart line size: %w", err)
		}
		cart[itemID] = line
	} else {
		cart[itemID] = domain.NewSizedLine(size, quantity)
	}

	if err := s.users.UpdateCart(ctx, userID, cart); err != nil {
		return nil, fmt.Errorf("persist cart: %w", err)
	}

	if err := s.events.PublishCartUpdated(ctx, userID, itemID, cart); err != nil {
		s.logger.WarnContext(ctx, "failed to publish cart.updated event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart item updated",
		slog.String("user_id", userID),
		slog.String("item_id", itemID),
		slog.String("size", size),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// Get returns the raw cart mapping for the user.
func (s *CartService) Get(ctx context.Context, userID string) (domain.CartData, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user_id is required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.CartData, nil
}
