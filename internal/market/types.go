// Package market implements the Market Protocol: pricing, lock-then-settle
// trading, deadlock mitigation, and the bounded price/supply engine that
// keeps a simulated economy inside its default-rate band.
//
// A Market has no goroutines, mutexes, channels, or time calls of its own.
// Every exported method runs synchronously to completion on the caller's
// goroutine; the only non-determinism is a market-local seeded random
// source used by the internal-trade engine.
package market

import (
	"github.com/shopspring/decimal"

	"github.com/fxbourse/market-sim/internal/good"
)

// GoodLabel is a read-only snapshot of one kind's standing offer. It never
// transfers custody; it exists purely for observation.
type GoodLabel struct {
	Kind              good.Kind
	QuantityAvailable decimal.Decimal
	ExchangeRateBuy   decimal.Decimal
	ExchangeRateSell  decimal.Decimal
}

type lockDirection int

const (
	buyFromMarket lockDirection = iota
	sellToMarket
)

type lockEntry struct {
	direction     lockDirection
	kind          good.Kind
	quantity      decimal.Decimal
	agreedPrice   decimal.Decimal
	traderName    string
	token         string
	createdAtTick int
	expired       bool
}

type role int

const (
	roleImporter role = iota
	roleExporter
)

// LockCeiling is the per-trader cap on simultaneously active locks, derived
// from the size of the GoodKind enum rather than hard-coded, so it tracks
// the enum if it ever grows.
var LockCeiling = len(good.AllKinds()) - 2

// Config configures one Market instance.
type Config struct {
	// Name identifies the market in logs and persisted state.
	Name string
	// LockExpiryTicks is the number of observed events after which an
	// unsettled lock expires. Clamped to [3, 15].
	LockExpiryTicks int
	// OnePerKind additionally enforces a single active lock per
	// (trader, direction, kind) triple, surfacing GoodAlreadyLocked /
	// DefaultGoodAlreadyLocked ahead of the lock-ceiling check.
	OnePerKind bool
	// Seed drives the market's internal-trade random source.
	Seed int64
	// LogPath, if non-empty, enables a plaintext per-market log file at
	// this path.
	LogPath string
}

// DefaultConfig returns the standard configuration for a market named name:
// a 5-tick lock expiry, no one-per-kind restriction, and logging disabled.
func DefaultConfig(name string) Config {
	return Config{
		Name:            name,
		LockExpiryTicks: 5,
		OnePerKind:      false,
		Seed:            1,
	}
}

func clampLockExpiry(ticks int) int {
	if ticks < 3 {
		return 3
	}
	if ticks > 15 {
		return 15
	}
	return ticks
}
