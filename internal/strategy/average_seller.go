package strategy

import (
	"github.com/shopspring/decimal"

	"github.com/fxbourse/market-sim/internal/good"
	"github.com/fxbourse/market-sim/internal/market"
)

// profitMargin is the fraction above running average cost that
// AverageSeller requires before it will sell a kind back.
var profitMargin = decimal.NewFromFloat(0.02)

// AverageSeller buys small amounts every tick and tracks a running
// average cost per kind; it only sells a kind once the market's current
// sell price clears that average by profitMargin.
type AverageSeller struct {
	traderName string
	markets    []*market.Market

	totalCost map[good.Kind]decimal.Decimal
	totalQty  map[good.Kind]decimal.Decimal
}

// NewAverageSeller constructs an AverageSeller for traderName trading on
// markets.
func NewAverageSeller(traderName string, markets []*market.Market) *AverageSeller {
	return &AverageSeller{
		traderName: traderName,
		markets:    markets,
		totalCost:  make(map[good.Kind]decimal.Decimal),
		totalQty:   make(map[good.Kind]decimal.Decimal),
	}
}

func (s *AverageSeller) averageCost(k good.Kind) decimal.Decimal {
	qty := s.totalQty[k]
	if !qty.IsPositive() {
		return decimal.Zero
	}
	return s.totalCost[k].Div(qty)
}

func (s *AverageSeller) Apply(goods map[good.Kind]*good.Good) {
	for _, m := range s.markets {
		for _, k := range good.AllKinds() {
			if k == good.EUR {
				continue
			}
			s.trySell(m, k, goods)
			s.tryBuy(m, k, goods)
		}
	}
}

func (s *AverageSeller) tryBuy(m *market.Market, k good.Kind, goods map[good.Kind]*good.Good) {
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
	s.totalCost[k] = s.totalCost[k].Add(price)
	s.totalQty[k] = s.totalQty[k].Add(received.Qty())
	goods[k].Merge(received)
}

func (s *AverageSeller) trySell(m *market.Market, k good.Kind, goods map[good.Kind]*good.Good) {
	held := goods[k].Qty()
	if !held.IsPositive() {
		return
	}
	sellQty := defaultTradeQty
	if sellQty.GreaterThan(held) {
		sellQty = held
	}
	offer, err := m.GetSellPrice(k, sellQty)
	if err != nil {
		return
	}
	threshold := s.averageCost(k).Mul(decimal.NewFromInt(1).Add(profitMargin)).Mul(sellQty)
	if offer.LessThan(threshold) {
		return
	}
	token, err := m.LockSell(k, sellQty, offer, s.traderName)
	if err != nil {
		return
	}
	toOffer, err := goods[k].Split(sellQty)
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

func (s *AverageSeller) SellRemainingGoods(goods map[good.Kind]*good.Good) {
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
