package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartLine_IncrementSimple(t *testing.T) {
	line := NewSimpleLine()
	require.NoError(t, line.Increment())
	assert.Equal(t, 2, line.Quantity)
}

func TestCartLine_IncrementSizedFails(t *testing.T) {
	line := NewSizedLine("M", 3)
	err := line.Increment()
	assert.ErrorIs(t, err, ErrCartVariantMismatch)
	assert.Equal(t, map[string]int{"M": 3}, line.Sizes)
}

func TestCartLine_SetSizeKeepsSiblings(t *testing.T) {
	line := NewSizedLine("S", 1)
	require.NoError(t, line.SetSize("M", 3))

	assert.Equal(t, 1, line.Sizes["S"])
	assert.Equal(t, 3, line.Sizes["M"])
}

func TestCartLine_SetSizeOnSimpleFails(t *testing.T) {
	line := NewSimpleLine()
	err := line.SetSize("M", 3)
	assert.ErrorIs(t, err, ErrCartVariantMismatch)
	assert.Equal(t, 1, line.Quantity)
}

func TestIsValidRating(t *testing.T) {
	for _, r := range []int{1, 2, 3, 4, 5} {
		assert.True(t, IsValidRating(r), "rating %d", r)
	}
	for _, r := range []int{0, -1, 6, 100} {
		assert.False(t, IsValidRating(r), "rating %d", r)
	}
}

func TestParseHighlights(t *testing.T) {
	assert.Equal(t, []string{"soft", "durable", "washable"}, ParseHighlights("soft, durable ,washable"))
	assert.Equal(t, []string{}, ParseHighlights(""))
	assert.Equal(t, []string{"only"}, ParseHighlights("only,,  ,"))
}

func TestParseBestseller(t *testing.T) {
	assert.True(t, ParseBestseller("true"))
	assert.False(t, ParseBestseller("True"))
	assert.False(t, ParseBestseller("1"))
	assert.False(t, ParseBestseller(""))
}

func TestModerationAction(t *testing.T) {
	assert.True(t, ModerationApprove.Valid())
	assert.True(t, ModerationReject.Valid())
	assert.False(t, ModerationAction("publish").Valid())

	assert.Equal(t, ReviewStatusApproved, ModerationApprove.Status())
	assert.Equal(t, ReviewStatusRejected, ModerationReject.Status())
}

func TestAverageRating(t *testing.T) {
	assert.Zero(t, AverageRating(nil))
	assert.InDelta(t, 4.0, AverageRating([]Review{{Rating: 4}}), 0.0001)
	assert.InDelta(t, 3.0, AverageRating([]Review{{Rating: 4}, {Rating: 2}}), 0.0001)
	assert.InDelta(t, 3.6666, AverageRating([]Review{{Rating: 5}, {Rating: 3}, {Rating: 3}}), 0.001)
}
