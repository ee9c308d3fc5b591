package strategy

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/fxbourse/market-sim/internal/good"
	"github.com/fxbourse/market-sim/internal/market"
)

func newGoods(eur int64) map[good.Kind]*good.Good {
	goods := make(map[good.Kind]*good.Good, len(good.AllKinds()))
	for _, k := range good.AllKinds() {
		if k == good.EUR {
			goods[k] = good.New(k, decimal.NewFromInt(eur))
			continue
		}
		goods[k] = good.New(k, decimal.Zero)
	}
	return goods
}

func newTestMarket(name string) *market.Market {
	return market.NewMarketWithQuantities(name,
		decimal.NewFromInt(500_000), decimal.NewFromInt(200_000), decimal.NewFromInt(200_000), decimal.NewFromInt(200_000), 1)
}

func TestMostSimpleBuysWithinCapital(t *testing.T) {
	m := newTestMarket("sgx")
	s := NewMostSimple("T", []*market.Market{m})
	goods := newGoods(1_000_000)

	for i := 0; i < 5; i++ {
		s.Apply(goods)
	}
	require.True(t, goods[good.EUR].Qty().LessThan(decimal.NewFromInt(1_000_000)))

	s.SellRemainingGoods(goods)
	for _, k := range good.AllKinds() {
		if k == good.EUR {
			continue
		}
		require.True(t, goods[k].Qty().IsZero())
	}
}

func TestStingyNeverOverspendsCapital(t *testing.T) {
	m := newTestMarket("sgx")
	s := NewStingy("T", []*market.Market{m})
	goods := newGoods(1_000_000)

	for i := 0; i < 20; i++ {
		s.Apply(goods)
	}
	require.True(t, goods[good.EUR].Qty().GreaterThanOrEqual(decimal.Zero))
}

func TestBuyAndHoldBuysOnceThenHolds(t *testing.T) {
	m := newTestMarket("sgx")
	s := NewBuyAndHold("T", []*market.Market{m})
	goods := newGoods(1_000_000)

	s.Apply(goods)
	afterFirst := goods[good.EUR].Qty()

	s.Apply(goods)
	require.True(t, goods[good.EUR].Qty().Equal(afterFirst))
}

func TestAverageSellerTracksCostBasis(t *testing.T) {
	m := newTestMarket("sgx")
	s := NewAverageSeller("T", []*market.Market{m})
	goods := newGoods(1_000_000)

	for i := 0; i < 10; i++ {
		s.Apply(goods)
	}
	require.True(t, goods[good.EUR].Qty().GreaterThanOrEqual(decimal.Zero))
}
