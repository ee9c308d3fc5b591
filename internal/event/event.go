// Package event defines the cross-market notification that drives the
// simulation's logical clock: every mutating market operation broadcasts
// one Event to its subscribers, in subscription order, before returning.
package event

import (
	"github.com/shopspring/decimal"

	"github.com/fxbourse/market-sim/internal/good"
)

// Kind is the closed set of things a publisher can report to a subscriber.
type Kind int

const (
	Bought Kind = iota
	Sold
	LockedBuy
	LockedSell
	Wait
)

func (k Kind) String() string {
	switch k {
	case Bought:
		return "Bought"
	case Sold:
		return "Sold"
	case LockedBuy:
		return "LockedBuy"
	case LockedSell:
		return "LockedSell"
	case Wait:
		return "Wait"
	default:
		return "Unknown"
	}
}

// Event is a notification of a market mutation, or a pure clock tick
// (Wait) carrying no trade information. GoodKind, Quantity and Price are
// zero-valued on a Wait event.
type Event struct {
	Kind     Kind
	GoodKind good.Kind
	Quantity decimal.Decimal
	Price    decimal.Decimal
}

// WaitEvent is the macro used to advance every subscriber's clock by one
// tick without reporting a trade.
func WaitEvent() Event { return Event{Kind: Wait} }

// Notifiable is implemented by anything that can observe a publisher's
// events. A market registers its peers as weak, non-owning Notifiable
// references: observation is never ownership.
type Notifiable interface {
	OnEvent(Event)
}
