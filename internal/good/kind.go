// Package good implements the Good value type: a quantity of a single
// currency kind, and the only vehicle for moving quantity between
// principals (markets and traders) without duplicating or losing it.
package good

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind is the closed enumeration of currencies the economy knows about.
// EUR is the default kind used for all pricing.
type Kind string

const (
	EUR  Kind = "EUR"
	USD  Kind = "USD"
	YEN  Kind = "YEN"
	YUAN Kind = "YUAN"
)

// AllKinds returns every Kind in a stable order. The lock ceiling and other
// constants derived from the size of the enum must be computed from this
// slice, never hard-coded, so the ceiling tracks the enum if it grows.
func AllKinds() []Kind {
	return []Kind{EUR, USD, YEN, YUAN}
}

func (k Kind) String() string { return string(k) }

// KindError is the closed error family for GoodKind lookups.
type KindError struct {
	Name string
}

func (e *KindError) Error() string {
	return fmt.Sprintf("good: non-existent good kind %q", e.Name)
}

// FromString looks up a Kind by name, case-sensitive, failing with
// *KindError if it is not one of the four known kinds.
func FromString(name string) (Kind, error) {
	for _, k := range AllKinds() {
		if string(k) == name {
			return k, nil
		}
	}
	return "", &KindError{Name: name}
}

// defaultExchangeRates holds the fixed EUR->kind ratio for each kind.
// These are constants of the simulated economy, not live market data.
var defaultExchangeRates = map[Kind]decimal.Decimal{
	EUR:  decimal.NewFromInt(1),
	USD:  decimal.RequireFromString("1.03576"),
	YEN:  decimal.RequireFromString("151.35"),
	YUAN: decimal.RequireFromString("7.45"),
}

// DefaultExchangeRate returns the fixed constant EUR->k ratio for k.
// Unknown kinds return zero; callers are expected to only pass a Kind
// obtained from AllKinds or FromString.
func (k Kind) DefaultExchangeRate() decimal.Decimal {
	rate, ok := defaultExchangeRates[k]
	if !ok {
		return decimal.Zero
	}
	return rate
}
