// Package trader implements the driver loop: the sole principal that
// invokes Market methods directly, on behalf of a pluggable Strategy, at
// a configured minute-tick cadence, recording one HistoryDay snapshot per
// completed simulated day.
package trader

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fxbourse/market-sim/internal/good"
	"github.com/fxbourse/market-sim/internal/market"
	"github.com/fxbourse/market-sim/internal/strategy"
)

// HistoryDay is one daily snapshot of a trader's four goods, beginning
// with day 0, the initial state before any simulated day has run.
type HistoryDay struct {
	Day  int             `json:"day"`
	EUR  decimal.Decimal `json:"eur"`
	USD  decimal.Decimal `json:"usd"`
	YEN  decimal.Decimal `json:"yen"`
	YUAN decimal.Decimal `json:"yuan"`
}

// Trader holds a Strategy, its goods, and the day/minute clock that
// drives the Strategy at a fixed cadence.
type Trader struct {
	name     string
	strategy strategy.Strategy
	markets  []*market.Market

	goods map[good.Kind]*good.Good

	day    int
	minute int

	history []HistoryDay
}

// New constructs a Trader named name that starts with startingCapital
// EUR and zero of every other kind, and records the initial HistoryDay
// before any day is simulated. markets is retained only for
// introspection (e.g. a visualizer); the strategy already holds whatever
// market handles it needs to trade.
func New(name string, strat strategy.Strategy, markets []*market.Market, startingCapital decimal.Decimal) *Trader {
	goods := make(map[good.Kind]*good.Good, len(good.AllKinds()))
	for _, k := range good.AllKinds() {
		if k == good.EUR {
			goods[k] = good.New(k, startingCapital)
			continue
		}
		goods[k] = good.New(k, decimal.Zero)
	}

	t := &Trader{name: name, strategy: strat, markets: markets, goods: goods}
	t.history = append(t.history, t.snapshot())
	return t
}

// Markets returns the markets this trader was constructed with.
func (t *Trader) Markets() []*market.Market { return t.markets }

// Name returns the trader's configured name.
func (t *Trader) Name() string { return t.name }

func (t *Trader) snapshot() HistoryDay {
	return HistoryDay{
		Day:  t.day,
		EUR:  t.goods[good.EUR].Qty(),
		USD:  t.goods[good.USD].Qty(),
		YEN:  t.goods[good.YEN].Qty(),
		YUAN: t.goods[good.YUAN].Qty(),
	}
}

// ticksPerDay is the number of minute-ticks in one simulated day, rounded
// up so a remainder minute still gets a tick, and never fewer than 1. A
// zero or negative interval yields the floor of 1 tick.
func ticksPerDay(minuteInterval time.Duration) int {
	if minuteInterval <= 0 {
		return 1
	}
	const minutesPerDay = 24 * 60
	ticks := int(math.Ceil(minutesPerDay / minuteInterval.Minutes()))
	if ticks < 1 {
		return 1
	}
	return ticks
}

// ApplyStrategy simulates days simulated days: within each day, the
// strategy is invoked once per minute-tick spaced by minuteInterval, and
// a HistoryDay snapshot is appended once the day completes.
func (t *Trader) ApplyStrategy(days int, minuteInterval time.Duration) {
	ticks := ticksPerDay(minuteInterval)
	for d := 0; d < days; d++ {
		for i := 0; i < ticks; i++ {
			t.strategy.Apply(t.goods)
			t.minute++
		}
		t.day++
		t.history = append(t.history, t.snapshot())
	}
}

// SellRemainingGoods invokes the strategy's end-of-run liquidation hook.
func (t *Trader) SellRemainingGoods() {
	t.strategy.SellRemainingGoods(t.goods)
}

// GetHistory returns the recorded sequence of daily snapshots, day 0
// first.
func (t *Trader) GetHistory() []HistoryDay { return t.history }
