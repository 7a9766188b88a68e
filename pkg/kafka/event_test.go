package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	event, err := NewEvent("review.submitted", "review-1", "review", "storefront", map[string]string{
		"product_id": "prod-1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "review.submitted", event.EventType)
	assert.Equal(t, "review-1", event.AggregateID)
	assert.Equal(t, "review", event.AggregateType)
	assert.Equal(t, 1, event.Version)
	assert.Equal(t, "storefront", event.Source)
	assert.False(t, event.Timestamp.IsZero())
}

func TestNewEvent_UnmarshalableData(t *testing.T) {
	_, err := NewEvent("product.created", "prod-1", "product", "storefront", make(chan int))
	assert.Error(t, err)
}

func TestEvent_RoundTrip(t *testing.T) {
	type payload struct {
		ProductID string `json:"product_id"`
		Rating    float64
	}

	event, err := NewEvent("review.moderated", "review-2", "review", "storefront", payload{
		ProductID: "prod-2",
		Rating:    4.5,
	})
	require.NoError(t, err)
	event.WithCorrelationID("corr-1").WithMetadata("moderator", "admin-1")

	data, err := event.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalEvent(data)
	require.NoError(t, err)
	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, "corr-1", decoded.CorrelationID)
	assert.Equal(t, "admin-1", decoded.Metadata["moderator"])

	var got payload
	require.NoError(t, decoded.UnmarshalData(&got))
	assert.Equal(t, "prod-2", got.ProductID)
	assert.InDelta(t, 4.5, got.Rating, 0.001)
}
