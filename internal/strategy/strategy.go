// Package strategy holds the pluggable decision logic the Trader invokes
// every minute-tick. Only the Strategy interface is part of the protocol
// core; MostSimple, AverageSeller, Stingy, and BuyAndHold below are
// example clients of it.
package strategy

import "github.com/fxbourse/market-sim/internal/good"

// Strategy is constructed with its trader's name and the market handles
// it is allowed to trade on; the driver never passes market references
// itself. It owns whatever running state it needs (averages, counters);
// the driver has no visibility into that state.
type Strategy interface {
	// Apply is invoked once per minute-tick. It may buy and sell freely
	// against goods, the trader's current holdings.
	Apply(goods map[good.Kind]*good.Good)
	// SellRemainingGoods is invoked once at the end of the run. It is
	// optional: an implementation may leave it a no-op.
	SellRemainingGoods(goods map[good.Kind]*good.Good)
}
