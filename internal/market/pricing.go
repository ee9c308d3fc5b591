package market

import (
	"github.com/shopspring/decimal"

	"github.com/fxbourse/market-sim/internal/event"
	"github.com/fxbourse/market-sim/internal/good"
)

const (
	lowClampFactor  = 0.75
	highClampFactor = 1.25

	initialHalfSpreadFraction = 0.02
	minHalfSpreadFraction     = 0.0025
	demandNudgeFraction       = 0.01

	roleCooldownTicks = 100

	shortageProbability = 0.05
	shortageTicks       = 100
)

// maxInternalTradeEUR is the per-trade value cap: strictly below 10,000 EUR.
var maxInternalTradeEUR = decimal.NewFromInt(9999)

func clampDecimal(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}

func clampBand(k good.Kind, v decimal.Decimal) decimal.Decimal {
	def := k.DefaultExchangeRate()
	lo := def.Mul(decimal.NewFromFloat(lowClampFactor))
	hi := def.Mul(decimal.NewFromFloat(highClampFactor))
	return clampDecimal(v, lo, hi)
}

// initRates seeds the buy/sell quote for every non-EUR kind at the default
// rate plus/minus an initial spread, already inside the ±25% band.
func (m *Market) initRates() {
	for _, k := range good.AllKinds() {
		if k == good.EUR {
			continue
		}
		def := k.DefaultExchangeRate()
		half := def.Mul(decimal.NewFromFloat(initialHalfSpreadFraction))
		m.rateBuy[k] = clampBand(k, def.Sub(half))
		m.rateSell[k] = clampBand(k, def.Add(half))
		m.role[k] = roleImporter
	}
}

// buyRate and sellRate are expressed as units of k per 1 EUR, so a higher
// buyRate means k is cheaper to acquire. EUR's rate against itself is
// always exactly 1 and never fluctuates.
func (m *Market) buyRate(k good.Kind) decimal.Decimal {
	if k == good.EUR {
		return decimal.NewFromInt(1)
	}
	return m.rateBuy[k]
}

func (m *Market) sellRate(k good.Kind) decimal.Decimal {
	if k == good.EUR {
		return decimal.NewFromInt(1)
	}
	return m.rateSell[k]
}

// ensureSpread restores buyRate(k) < sellRate(k) if a clamp collapsed the
// gap between them.
func (m *Market) ensureSpread(k good.Kind) {
	if m.rateBuy[k].LessThan(m.rateSell[k]) {
		return
	}
	def := k.DefaultExchangeRate()
	mid := m.rateBuy[k].Add(m.rateSell[k]).Div(decimal.NewFromInt(2))
	half := def.Mul(decimal.NewFromFloat(minHalfSpreadFraction))
	m.rateBuy[k] = clampBand(k, mid.Sub(half))
	m.rateSell[k] = clampBand(k, mid.Add(half))
}

// demandUp models a realized or locked buy from the market: rateBuy rises
// and rateSell falls, so that kind becomes cheaper to buy and pays more
// EUR when sold back, narrowing the market's margin on it.
func (m *Market) demandUp(k good.Kind) {
	nudgeBuy := m.rateBuy[k].Mul(decimal.NewFromFloat(demandNudgeFraction))
	nudgeSell := m.rateSell[k].Mul(decimal.NewFromFloat(demandNudgeFraction))
	m.rateBuy[k] = clampBand(k, m.rateBuy[k].Add(nudgeBuy))
	m.rateSell[k] = clampBand(k, m.rateSell[k].Sub(nudgeSell))
	m.ensureSpread(k)
}

// demandDown is the inverse: a realized or locked sell to the market.
func (m *Market) demandDown(k good.Kind) {
	nudgeBuy := m.rateBuy[k].Mul(decimal.NewFromFloat(demandNudgeFraction))
	nudgeSell := m.rateSell[k].Mul(decimal.NewFromFloat(demandNudgeFraction))
	m.rateBuy[k] = clampBand(k, m.rateBuy[k].Sub(nudgeBuy))
	m.rateSell[k] = clampBand(k, m.rateSell[k].Add(nudgeSell))
	m.ensureSpread(k)
}

// refreshPrices runs the demand-direction rule for the good kind named by
// a just-observed event. Wait events and EUR-denominated events carry no
// price signal.
func (m *Market) refreshPrices(e event.Event) {
	if e.GoodKind == "" || e.GoodKind == good.EUR {
		return
	}
	switch e.Kind {
	case event.Bought, event.LockedBuy:
		m.demandUp(e.GoodKind)
	case event.Sold, event.LockedSell:
		m.demandDown(e.GoodKind)
	}
}

// maybeFlipRole re-evaluates whether the market should be importing or
// exporting k, at most once per roleCooldownTicks.
func (m *Market) maybeFlipRole(k good.Kind) {
	if m.tick-m.roleChangedAtTick[k] < roleCooldownTicks {
		return
	}
	valueOfK := m.goods[k].Qty().Div(m.buyRate(k))
	valueOfEUR := m.goods[good.EUR].Qty()

	want := roleExporter
	if valueOfK.LessThan(valueOfEUR) {
		want = roleImporter
	}
	if want != m.role[k] {
		m.role[k] = want
		m.roleChangedAtTick[k] = m.tick
	}
}

// maybeInternalTrade attempts at most one internal trade per observed
// event, on the first non-EUR kind that isn't currently under a supply
// shortage suspension.
func (m *Market) maybeInternalTrade() {
	for _, k := range good.AllKinds() {
		if k == good.EUR {
			continue
		}
		if m.tick <= m.shortageUntilTick[k] {
			continue
		}
		m.tryInternalTrade(k)
		return
	}
}

func (m *Market) tryInternalTrade(k good.Kind) {
	m.maybeFlipRole(k)

	if m.rng.Float64() < shortageProbability {
		m.shortageUntilTick[k] = m.tick + shortageTicks
		return
	}

	amountEUR := decimal.NewFromFloat(m.rng.Float64()).Mul(maxInternalTradeEUR)
	if !amountEUR.IsPositive() {
		return
	}

	switch m.role[k] {
	case roleImporter:
		available := m.goods[good.EUR].Qty()
		if amountEUR.GreaterThan(available) {
			amountEUR = available
		}
		if !amountEUR.IsPositive() {
			return
		}
		qtyK := amountEUR.Mul(m.buyRate(k))
		if _, err := m.goods[good.EUR].Split(amountEUR); err != nil {
			return
		}
		m.goods[k].Merge(good.New(k, qtyK))
	case roleExporter:
		qtyK := amountEUR.Mul(m.sellRate(k))
		available := m.goods[k].Qty()
		if qtyK.GreaterThan(available) {
			qtyK = available
			amountEUR = qtyK.Div(m.sellRate(k))
		}
		if !qtyK.IsPositive() {
			return
		}
		if _, err := m.goods[k].Split(qtyK); err != nil {
			return
		}
		m.goods[good.EUR].Merge(good.New(good.EUR, amountEUR))
	}
}
