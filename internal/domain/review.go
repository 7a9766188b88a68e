package domain

import "time"

// Review moderation states. A review is created pending and moved to a
// terminal state by a moderation action.
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// ModerationAction is an operator decision on a pending review.
type ModerationAction string

// Moderation actions.
const (
	ModerationApprove ModerationAction = "approve"
	ModerationReject  ModerationAction = "reject"
)

// Valid reports whether the action is one of approve or reject.
func (a ModerationAction) Valid() bool {
	return a == ModerationApprove || a == ModerationReject
}

// Status returns the review status the action resolves to.
func (a ModerationAction) Status() string {
	if a == ModerationApprove {
		return ReviewStatusApproved
	}
	return ReviewStatusRejected
}

// Review represents a product review submitted by a user.
type Review struct {
	ID         string    `json:"id" bson:"_id"`
	ProductID  string    `json:"product_id" bson:"product_id"`
	UserID     string    `json:"user_id" bson:"user_id"`
	Rating     int       `json:"rating" bson:"rating"`
	ReviewText string    `json:"review_text,omitempty" bson:"review_text,omitempty"`
	Status     string    `json:"status" bson:"status"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// ReviewWithAuthor is an approved review joined with its author's public
// details for storefront display.
type ReviewWithAuthor struct {
	Review
	Author ReviewAuthor `json:"author"`
}

// AverageRating computes the arithmetic mean of the given reviews' ratings,
// or 0 when the set is empty.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
