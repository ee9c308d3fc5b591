package strategy

import (
	"github.com/shopspring/decimal"

	"github.com/fxbourse/market-sim/internal/good"
	"github.com/fxbourse/market-sim/internal/market"
)

// cheapThreshold sets how cheap a kind must be before Stingy acts: it buys
// only when the current buy rate is at least the default exchange rate
// divided by cheapThreshold (about 11% more units per EUR than default).
var cheapThreshold = decimal.NewFromFloat(0.9)

// Stingy only buys a kind when the market is quoting it unusually cheap
// relative to its default rate, and otherwise waits. It never sells
// early.
type Stingy struct {
	traderName string
	markets    []*market.Market
}

// NewStingy constructs a Stingy for traderName trading on markets.
func NewStingy(traderName string, markets []*market.Market) *Stingy {
	return &Stingy{traderName: traderName, markets: markets}
}

func (s *Stingy) Apply(goods map[good.Kind]*good.Good) {
	for _, m := range s.markets {
		for _, k := range good.AllKinds() {
			if k == good.EUR {
				continue
			}
			s.tryBuyIfCheap(m, k, goods)
		}
	}
}

func (s *Stingy) tryBuyIfCheap(m *market.Market, k good.Kind, goods map[good.Kind]*good.Good) {
	labels := m.GetGoods()
	var buyRate decimal.Decimal
	for _, l := range labels {
		if l.Kind == k {
			buyRate = l.ExchangeRateBuy
			break
		}
	}
	if !buyRate.IsPositive() {
		return
	}
	// buyRate is units of k per EUR; a higher buyRate means k is cheaper.
	// Stingy wants the rate meaningfully above default before it will buy.
	wantRate := k.DefaultExchangeRate().Div(cheapThreshold)
	if buyRate.LessThan(wantRate) {
		return
	}

	price, err := m.GetBuyPrice(k, defaultTradeQty)
	if err != nil {
		return
	}
	if goods[good.EUR].Qty().LessThan(price) {
		return
	}
	token, err := m.LockBuy(k, defaultTradeQty, price, s.traderName)
	if err != nil {
		return
	}
	received, err := m.Buy(token, goods[good.EUR])
	if err != nil {
		return
	}
	goods[k].Merge(received)
}

func (s *Stingy) SellRemainingGoods(goods map[good.Kind]*good.Good) {
	if len(s.markets) == 0 {
		return
	}
	m := s.markets[0]
	for _, k := range good.AllKinds() {
		if k == good.EUR {
			continue
		}
		sellAll(m, k, goods, s.traderName)
	}
}
