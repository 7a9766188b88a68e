package domain

import "errors"

// Cart line variant kinds. A line's kind is fixed when it is first inserted;
// mutations that assume the other kind are rejected instead of silently
// reshaping the stored data.
const (
	CartLineKindSimple = "simple"
	CartLineKindSized  = "sized"
)

// ErrCartVariantMismatch is returned when a cart mutation assumes a different
// line kind than the one stored.
var ErrCartVariantMismatch = errors.New("cart line variant mismatch")

// CartLine is one entry of a user's cart. Simple lines track a bare quantity;
// sized lines track a quantity per size label.
type CartLine struct {
	Kind     string         `json:"kind" bson:"kind"`
	Quantity int            `json:"quantity,omitempty" bson:"quantity,omitempty"`
	Sizes    map[string]int `json:"sizes,omitempty" bson:"sizes,omitempty"`
}

// CartData maps item IDs to cart lines. It is read and written wholesale on
// the owning user document.
type CartData map[string]CartLine

// NewSimpleLine returns a simple-variant line with quantity 1.
func NewSimpleLine() CartLine {
	return CartLine{Kind: CartLineKindSimple, Quantity: 1}
}

// NewSizedLine returns a sized-variant line holding a single size entry.
func NewSizedLine(size string, quantity int) CartLine {
	return CartLine{
		Kind:  CartLineKindSized,
		Sizes: map[string]int{size: quantity},
	}
}

// Increment adds 1 to a simple line's quantity. Sized lines are rejected.
func (l *CartLine) Increment() error {
	if l.Kind != CartLineKindSimple {
		return ErrCartVariantMismatch
	}
	l.Quantity++
	return nil
}

// SetSize sets the quantity for one size label on a sized line, leaving
// sibling sizes untouched. Simple lines are rejected.
func (l *CartLine) SetSize(size string, quantity int) error {
	if l.Kind != CartLineKindSized {
		return ErrCartVariantMismatch
	}
	if l.Sizes == nil {
		l.Sizes = make(map[string]int)
	}
	l.Sizes[size] = quantity
	return nil
}
