package strategy

import (
	"github.com/fxbourse/market-sim/internal/good"
	"github.com/fxbourse/market-sim/internal/market"
)

// BuyAndHold spends as much EUR as it can across its markets on its
// first tick, then does nothing until SellRemainingGoods liquidates
// everything at the end of the run.
type BuyAndHold struct {
	traderName string
	markets    []*market.Market
	bought     bool
}

// NewBuyAndHold constructs a BuyAndHold for traderName trading on
// markets.
func NewBuyAndHold(traderName string, markets []*market.Market) *BuyAndHold {
	return &BuyAndHold{traderName: traderName, markets: markets}
}

func (s *BuyAndHold) Apply(goods map[good.Kind]*good.Good) {
	if s.bought {
		return
	}
	s.bought = true
	for _, m := range s.markets {
		for _, k := range good.AllKinds() {
			if k == good.EUR {
				continue
			}
			s.buyAsMuchAsPossible(m, k, goods)
		}
	}
}

func (s *BuyAndHold) buyAsMuchAsPossible(m *market.Market, k good.Kind, goods map[good.Kind]*good.Good) {
	for {
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
}

func (s *BuyAndHold) SellRemainingGoods(goods map[good.Kind]*good.Good) {
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
