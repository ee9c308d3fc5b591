package market

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fxbourse/market-sim/internal/good"
)

type persistedState struct {
	Name     string                        `json:"name"`
	Tick     int                           `json:"tick"`
	Goods    map[good.Kind]decimal.Decimal `json:"goods"`
	RateBuy  map[good.Kind]decimal.Decimal `json:"rate_buy"`
	RateSell map[good.Kind]decimal.Decimal `json:"rate_sell"`
}

// Save writes m's inventory, quotes, and tick count to path as JSON.
func (m *Market) Save(path string) error {
	state := persistedState{
		Name:     m.name,
		Tick:     m.tick,
		Goods:    make(map[good.Kind]decimal.Decimal, len(good.AllKinds())),
		RateBuy:  make(map[good.Kind]decimal.Decimal, len(good.AllKinds())),
		RateSell: make(map[good.Kind]decimal.Decimal, len(good.AllKinds())),
	}
	for _, k := range good.AllKinds() {
		state.Goods[k] = m.goods[k].Qty()
		state.RateBuy[k] = m.buyRate(k)
		state.RateSell[k] = m.sellRate(k)
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func loadMarket(path string, seed int64) (*Market, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}

	quantities := make(map[good.Kind]decimal.Decimal, len(good.AllKinds()))
	for _, k := range good.AllKinds() {
		quantities[k] = state.Goods[k]
	}

	cfg := DefaultConfig(state.Name)
	cfg.Seed = seed
	m := newMarket(cfg, quantities)
	for _, k := range good.AllKinds() {
		if k == good.EUR {
			continue
		}
		if rb, ok := state.RateBuy[k]; ok && rb.IsPositive() {
			m.rateBuy[k] = rb
		}
		if rs, ok := state.RateSell[k]; ok && rs.IsPositive() {
			m.rateSell[k] = rs
		}
	}
	m.tick = state.Tick
	return m, nil
}

// NewMarketFromFile loads a market persisted at path. Any IO or parse
// failure is silently absorbed: the simulation never crashes because a
// state file is missing or corrupt, it just gets a fresh random market
// named after the file instead.
func NewMarketFromFile(path string, seed int64) *Market {
	m, err := loadMarket(path, seed)
	if err != nil {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return NewRandomMarket(name, seed)
	}
	return m
}
