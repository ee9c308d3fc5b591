package good

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Good is a quantity of a single currency Kind held by one principal at a
// time. Quantity is private; it only ever changes via Split and Merge, so
// custody moves atomically and no quantity is ever duplicated or lost.
//
// A Good carries no price. Pricing belongs to Market only.
type Good struct {
	kind Kind
	qty  decimal.Decimal
}

// New creates a Good of kind with qty. A negative qty coerces to zero;
// New never fails.
func New(kind Kind, qty decimal.Decimal) *Good {
	if qty.IsNegative() {
		qty = decimal.Zero
	}
	return &Good{kind: kind, qty: qty}
}

// Kind returns the currency kind of this Good.
func (g *Good) Kind() Kind { return g.kind }

// Qty returns the current quantity held.
func (g *Good) Qty() decimal.Decimal { return g.qty }

// NonPositiveSplitQuantity is returned by Split when by <= 0.
type NonPositiveSplitQuantity struct{ Qty decimal.Decimal }

func (e *NonPositiveSplitQuantity) Error() string {
	return fmt.Sprintf("good: non-positive split quantity %s", e.Qty)
}

// NotEnoughQuantityToSplit is returned by Split when by exceeds the held
// quantity.
type NotEnoughQuantityToSplit struct{ Requested, Available decimal.Decimal }

func (e *NotEnoughQuantityToSplit) Error() string {
	return fmt.Sprintf("good: not enough quantity to split: requested %s, available %s", e.Requested, e.Available)
}

// Split removes by from g and returns a new Good of the same kind holding
// by. Fails without mutating g if by <= 0 or by exceeds g's quantity.
func (g *Good) Split(by decimal.Decimal) (*Good, error) {
	if !by.IsPositive() {
		return nil, &NonPositiveSplitQuantity{Qty: by}
	}
	if by.GreaterThan(g.qty) {
		return nil, &NotEnoughQuantityToSplit{Requested: by, Available: g.qty}
	}
	g.qty = g.qty.Sub(by)
	return &Good{kind: g.kind, qty: by}, nil
}

// MergeError is returned by Merge when the two Goods are of different
// kinds. The offending Good is returned to the caller unmodified so that
// custody is never lost.
type MergeError struct {
	Other *Good
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("good: different kinds of good (%s)", e.Other.kind)
}

// Merge folds other's quantity into g and surrenders other (its quantity
// becomes zero). Fails with *MergeError, returning custody of other, if
// the kinds differ.
func (g *Good) Merge(other *Good) error {
	if other.kind != g.kind {
		return &MergeError{Other: other}
	}
	g.qty = g.qty.Add(other.qty)
	other.qty = decimal.Zero
	return nil
}
