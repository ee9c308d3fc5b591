package trader

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/fxbourse/market-sim/internal/good"
	"github.com/fxbourse/market-sim/internal/market"
)

type noopStrategy struct{}

func (noopStrategy) Apply(map[good.Kind]*good.Good)              {}
func (noopStrategy) SellRemainingGoods(map[good.Kind]*good.Good) {}

func TestEmptyRun(t *testing.T) {
	tr := New("T", noopStrategy{}, nil, decimal.NewFromInt(1_000_000))
	tr.ApplyStrategy(0, time.Hour)

	history := tr.GetHistory()
	require.Len(t, history, 1)
	require.Equal(t, HistoryDay{
		Day:  0,
		EUR:  decimal.NewFromInt(1_000_000),
		USD:  decimal.Zero,
		YEN:  decimal.Zero,
		YUAN: decimal.Zero,
	}, history[0])
}

func TestHistoryGrowsOnePerDay(t *testing.T) {
	tr := New("T", noopStrategy{}, nil, decimal.NewFromInt(1_000_000))
	tr.ApplyStrategy(3, time.Hour)

	history := tr.GetHistory()
	require.Len(t, history, 4)
	for i, h := range history {
		require.Equal(t, i, h.Day)
	}
}

func TestTicksPerDayRoundsUp(t *testing.T) {
	require.Equal(t, 24, ticksPerDay(time.Hour))
	require.Equal(t, 1440, ticksPerDay(time.Minute))
	require.Equal(t, 1, ticksPerDay(24*time.Hour))
	require.Equal(t, 1, ticksPerDay(0))
}

type countingStrategy struct{ calls int }

func (s *countingStrategy) Apply(map[good.Kind]*good.Good) { s.calls++ }
func (s *countingStrategy) SellRemainingGoods(map[good.Kind]*good.Good) {}

func TestApplyStrategyInvokedOncePerTick(t *testing.T) {
	cs := &countingStrategy{}
	tr := New("T", cs, nil, decimal.NewFromInt(1_000_000))
	tr.ApplyStrategy(2, time.Hour)
	require.Equal(t, 2*ticksPerDay(time.Hour), cs.calls)
}

func TestSellRemainingGoodsDelegatesToStrategy(t *testing.T) {
	cs := &sellCountingStrategy{}
	m := market.NewMarketWithQuantities("sgx",
		decimal.NewFromInt(500_000), decimal.NewFromInt(100_000), decimal.Zero, decimal.Zero, 1)
	tr := New("T", cs, []*market.Market{m}, decimal.NewFromInt(1_000_000))
	tr.SellRemainingGoods()
	require.Equal(t, 1, cs.calls)
	require.Len(t, tr.Markets(), 1)
}

type sellCountingStrategy struct{ calls int }

func (sellCountingStrategy) Apply(map[good.Kind]*good.Good)                {}
func (s *sellCountingStrategy) SellRemainingGoods(map[good.Kind]*good.Good) { s.calls++ }
