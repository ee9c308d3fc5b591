package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/fxbourse/market-sim/internal/good"
	"github.com/fxbourse/market-sim/internal/market"
	"github.com/fxbourse/market-sim/internal/trader"
)

type noopStrategy struct{}

func (noopStrategy) Apply(map[good.Kind]*good.Good)              {}
func (noopStrategy) SellRemainingGoods(map[good.Kind]*good.Good) {}

func newTestModel() *Model {
	m1 := market.NewMarketWithQuantities("sgx", decimal.NewFromInt(500_000), decimal.NewFromInt(100_000), decimal.Zero, decimal.Zero, 1)
	m2 := market.NewMarketWithQuantities("smse", decimal.NewFromInt(500_000), decimal.NewFromInt(100_000), decimal.Zero, decimal.Zero, 2)
	tr := trader.New("T", noopStrategy{}, []*market.Market{m1, m2}, decimal.NewFromInt(1_000_000))
	return New(tr, time.Hour)
}

func TestWindowSizeMarksReady(t *testing.T) {
	m := newTestModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	mm := updated.(*Model)
	require.True(t, mm.ready)
	require.Equal(t, 100, mm.width)
}

func TestTickAdvancesHistoryWhenNotPaused(t *testing.T) {
	m := newTestModel()
	before := len(m.trader.GetHistory())
	_, cmd := m.Update(tickMsg{})
	require.NotNil(t, cmd)
	require.Greater(t, len(m.trader.GetHistory()), before)
}

func TestPauseStopsAdvancing(t *testing.T) {
	m := newTestModel()
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	require.True(t, m.paused)

	before := len(m.trader.GetHistory())
	m.Update(tickMsg{})
	require.Equal(t, before, len(m.trader.GetHistory()))
}

func TestTabCyclesFocus(t *testing.T) {
	m := newTestModel()
	require.Equal(t, FocusMarkets, m.focusedPanel)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, FocusHistory, m.focusedPanel)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, FocusMarkets, m.focusedPanel)
}

func TestSelectMarketStaysInBounds(t *testing.T) {
	m := newTestModel()
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, m.selectedMarket)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, m.selectedMarket)
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, 0, m.selectedMarket)
}

func TestQuitReturnsQuitCmd(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
}

func TestViewRendersWithoutPanicOnceReady(t *testing.T) {
	m := newTestModel()
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	require.NotPanics(t, func() {
		_ = m.View()
	})
}
