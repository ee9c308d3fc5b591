package strategy

import (
	"github.com/shopspring/decimal"

	"github.com/fxbourse/market-sim/internal/good"
	"github.com/fxbourse/market-sim/internal/market"
)

// defaultTradeQty is the fixed quantity MostSimple and Stingy attempt on
// every tick.
var defaultTradeQty = decimal.NewFromInt(100)

// MostSimple buys a fixed quantity of every affordable non-EUR kind on
// its first market every tick, and sells everything back at the end.
// It does no bookkeeping of its own: every tick starts from scratch.
type MostSimple struct {
	traderName string
	markets    []*market.Market
}

// NewMostSimple constructs a MostSimple for traderName trading on markets.
func NewMostSimple(traderName string, markets []*market.Market) *MostSimple {
	return &MostSimple{traderName: traderName, markets: markets}
}

func (s *MostSimple) Apply(goods map[good.Kind]*good.Good) {
	if len(s.markets) == 0 {
		return
	}
	m := s.markets[0]
	for _, k := range good.AllKinds() {
		if k == good.EUR {
			continue
		}
		s.tryBuy(m, k, goods)
	}
}

func (s *MostSimple) tryBuy(m *market.Market, k good.Kind, goods map[good.Kind]*good.Good) {
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

func (s *MostSimple) SellRemainingGoods(goods map[good.Kind]*good.Good) {
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

// sellAll offers a market the entirety of goods[k], best-effort.
func sellAll(m *market.Market, k good.Kind, goods map[good.Kind]*good.Good, traderName string) {
	qty := goods[k].Qty()
	if !qty.IsPositive() {
		return
	}
	offer, err := m.GetSellPrice(k, qty)
	if err != nil {
		return
	}
	token, err := m.LockSell(k, qty, offer, traderName)
	if err != nil {
		return
	}
	toOffer, err := goods[k].Split(qty)
	if err != nil {
		return
	}
	proceeds, err := m.Sell(token, toOffer)
	if err != nil {
		goods[k].Merge(toOffer)
		return
	}
	goods[good.EUR].Merge(proceeds)
}
