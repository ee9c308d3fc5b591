package market

import (
	"math/rand"
	"weak"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fxbourse/market-sim/internal/event"
	"github.com/fxbourse/market-sim/internal/good"
	"github.com/fxbourse/market-sim/internal/marketlog"
)

// startingCapital is the default-rate-valued ceiling for a newly
// constructed market's total inventory.
var startingCapital = decimal.NewFromInt(1_000_000)

// Market is one trading venue. It holds its own inventory, quotes, lock
// table, and a weak-referenced list of peer subscribers. A Market never
// reaches outside itself except to call back into a subscriber's OnEvent.
type Market struct {
	name string
	cfg  Config

	goods map[good.Kind]*good.Good

	rateBuy  map[good.Kind]decimal.Decimal
	rateSell map[good.Kind]decimal.Decimal

	role              map[good.Kind]role
	roleChangedAtTick map[good.Kind]int
	shortageUntilTick map[good.Kind]int

	lockedQtyByKind  map[good.Kind]decimal.Decimal
	lockedEURForSell decimal.Decimal

	locks           map[string]*lockEntry
	traderLockCount map[string]int

	subscribers []weak.Pointer[Market]

	tick int
	rng  *rand.Rand

	log *marketlog.Writer
}

func newMarket(cfg Config, quantities map[good.Kind]decimal.Decimal) *Market {
	cfg.LockExpiryTicks = clampLockExpiry(cfg.LockExpiryTicks)

	m := &Market{
		name:              cfg.Name,
		cfg:               cfg,
		goods:             make(map[good.Kind]*good.Good, len(good.AllKinds())),
		rateBuy:           make(map[good.Kind]decimal.Decimal, len(good.AllKinds())),
		rateSell:          make(map[good.Kind]decimal.Decimal, len(good.AllKinds())),
		role:              make(map[good.Kind]role, len(good.AllKinds())),
		roleChangedAtTick: make(map[good.Kind]int, len(good.AllKinds())),
		shortageUntilTick: make(map[good.Kind]int, len(good.AllKinds())),
		lockedQtyByKind:   make(map[good.Kind]decimal.Decimal, len(good.AllKinds())),
		locks:             make(map[string]*lockEntry),
		traderLockCount:   make(map[string]int),
		rng:               rand.New(rand.NewSource(cfg.Seed)),
		lockedEURForSell:  decimal.Zero,
	}
	for _, k := range good.AllKinds() {
		m.goods[k] = good.New(k, quantities[k])
		m.lockedQtyByKind[k] = decimal.Zero
	}
	m.initRates()

	if cfg.LogPath != "" {
		if w, err := marketlog.Open(cfg.Name, cfg.LogPath); err == nil {
			m.log = w
			qtys := make(map[good.Kind]decimal.Decimal, len(good.AllKinds()))
			for _, k := range good.AllKinds() {
				qtys[k] = m.goods[k].Qty()
			}
			m.log.Init(qtys)
		}
	}
	return m
}

// NewRandomMarket creates a market named name with a randomized per-kind
// inventory whose default-rate-valued total never exceeds 1,000,000 EUR.
func NewRandomMarket(name string, seed int64) *Market {
	cfg := DefaultConfig(name)
	cfg.Seed = seed
	rng := rand.New(rand.NewSource(seed))
	return newMarket(cfg, randomQuantities(rng))
}

// NewRandomMarketWithConfig is NewRandomMarket with caller-supplied Config
// (e.g. to enable logging or a one-per-kind lock policy).
func NewRandomMarketWithConfig(cfg Config) *Market {
	rng := rand.New(rand.NewSource(cfg.Seed))
	return newMarket(cfg, randomQuantities(rng))
}

// NewMarketWithQuantities creates a market with explicit starting
// quantities for each kind.
func NewMarketWithQuantities(name string, eur, usd, yen, yuan decimal.Decimal, seed int64) *Market {
	cfg := DefaultConfig(name)
	cfg.Seed = seed
	return newMarket(cfg, map[good.Kind]decimal.Decimal{
		good.EUR:  eur,
		good.USD:  usd,
		good.YEN:  yen,
		good.YUAN: yuan,
	})
}

func randomQuantities(rng *rand.Rand) map[good.Kind]decimal.Decimal {
	kinds := good.AllKinds()
	remaining := startingCapital
	quantities := make(map[good.Kind]decimal.Decimal, len(kinds))
	for i, k := range kinds {
		var valueEUR decimal.Decimal
		if i == len(kinds)-1 {
			valueEUR = remaining
		} else {
			frac := decimal.NewFromFloat(rng.Float64()).Div(decimal.NewFromInt(int64(len(kinds) - i)))
			valueEUR = remaining.Mul(frac)
			remaining = remaining.Sub(valueEUR)
		}
		quantities[k] = valueEUR.Mul(k.DefaultExchangeRate())
	}
	return quantities
}

// Name returns the market's configured name.
func (m *Market) Name() string { return m.name }

// Tick returns the number of events this market has observed so far.
func (m *Market) Tick() int { return m.tick }

func (m *Market) availableUnlocked(k good.Kind) decimal.Decimal {
	return m.goods[k].Qty().Sub(m.lockedQtyByKind[k])
}

func (m *Market) availableEURUnlocked() decimal.Decimal {
	return m.goods[good.EUR].Qty().Sub(m.lockedEURForSell)
}

// GetBuyPrice returns the EUR a trader must bid to lock qty of kind; it is
// exactly the lowest bid that LockBuy will accept, all else equal.
func (m *Market) GetBuyPrice(kind good.Kind, qty decimal.Decimal) (decimal.Decimal, error) {
	if !qty.IsPositive() {
		return decimal.Zero, &NonPositiveQuantityAsked{Quantity: qty}
	}
	available := m.availableUnlocked(kind)
	if qty.GreaterThan(available) {
		return decimal.Zero, &InsufficientGoodQuantityAvailable{Kind: kind, Requested: qty, Available: available}
	}
	return qty.Div(m.buyRate(kind)), nil
}

// GetSellPrice returns the maximum EUR the market will pay for qty of
// kind; it is exactly the highest offer that LockSell will accept.
func (m *Market) GetSellPrice(kind good.Kind, qty decimal.Decimal) (decimal.Decimal, error) {
	if !qty.IsPositive() {
		return decimal.Zero, &NonPositiveQuantityAsked{Quantity: qty}
	}
	return qty.Div(m.sellRate(kind)), nil
}

// GetGoods returns one GoodLabel snapshot per known kind.
func (m *Market) GetGoods() []GoodLabel {
	labels := make([]GoodLabel, 0, len(good.AllKinds()))
	for _, k := range good.AllKinds() {
		labels = append(labels, GoodLabel{
			Kind:              k,
			QuantityAvailable: m.availableUnlocked(k),
			ExchangeRateBuy:   m.buyRate(k),
			ExchangeRateSell:  m.sellRate(k),
		})
	}
	return labels
}

func (m *Market) activeLockOf(trader string, dir lockDirection, kind good.Kind) string {
	for token, l := range m.locks {
		if l.expired {
			continue
		}
		if l.traderName == trader && l.direction == dir && l.kind == kind {
			return token
		}
	}
	return ""
}

// LockBuy reserves qty of kind at the best available price, failing with
// the lowest-numbered applicable error in §4.2's priority order.
func (m *Market) LockBuy(kind good.Kind, qty, bid decimal.Decimal, traderName string) (string, error) {
	if !qty.IsPositive() {
		return "", &NonPositiveQuantityToBuy{Quantity: qty}
	}
	if !bid.IsPositive() {
		return "", &NonPositiveBid{Bid: bid}
	}
	if m.cfg.OnePerKind {
		if tok := m.activeLockOf(traderName, buyFromMarket, kind); tok != "" {
			return "", &GoodAlreadyLocked{Token: tok}
		}
	}
	if m.traderLockCount[traderName] >= LockCeiling {
		return "", &MaxAllowedLocksReached{}
	}
	available := m.availableUnlocked(kind)
	if qty.GreaterThan(available) {
		return "", &InsufficientGoodQuantityAvailable{Kind: kind, Requested: qty, Available: available}
	}
	lowestAcceptableBid := qty.Div(m.buyRate(kind))
	if bid.LessThan(lowestAcceptableBid) {
		return "", &BidTooLow{Kind: kind, Quantity: qty, Bid: bid, LowestAcceptableBid: lowestAcceptableBid}
	}

	token := uuid.New().String()
	m.locks[token] = &lockEntry{
		direction:     buyFromMarket,
		kind:          kind,
		quantity:      qty,
		agreedPrice:   lowestAcceptableBid,
		traderName:    traderName,
		token:         token,
		createdAtTick: m.tick,
	}
	m.lockedQtyByKind[kind] = m.lockedQtyByKind[kind].Add(qty)
	m.traderLockCount[traderName]++

	if m.log != nil {
		m.log.LockBuy(traderName, kind, qty, qty, token)
	}
	m.publish(event.Event{Kind: event.LockedBuy, GoodKind: kind, Quantity: qty, Price: lowestAcceptableBid})
	return token, nil
}

// Buy settles a buy lock: it splits the agreed EUR price out of cash into
// the market's own EUR inventory and returns the locked quantity.
func (m *Market) Buy(token string, cash *good.Good) (*good.Good, error) {
	l, ok := m.locks[token]
	if !ok || l.direction != buyFromMarket {
		return nil, &UnrecognizedToken{Token: token}
	}
	if l.expired {
		delete(m.locks, token)
		return nil, &ExpiredToken{Token: token}
	}
	if cash.Kind() != good.EUR {
		return nil, &GoodKindNotDefault{Kind: cash.Kind()}
	}
	if cash.Qty().LessThan(l.agreedPrice) {
		return nil, &InsufficientGoodQuantity{Contained: cash.Qty(), PreAgreed: l.agreedPrice}
	}

	paid, err := cash.Split(l.agreedPrice)
	if err != nil {
		return nil, &InsufficientGoodQuantity{Contained: cash.Qty(), PreAgreed: l.agreedPrice}
	}
	m.goods[good.EUR].Merge(paid)

	released, err := m.goods[l.kind].Split(l.quantity)
	if err != nil {
		// The market's own books are inconsistent with its lock table,
		// which should never happen; surrender what we can.
		released = m.goods[l.kind]
	}

	m.lockedQtyByKind[l.kind] = m.lockedQtyByKind[l.kind].Sub(l.quantity)
	m.traderLockCount[l.traderName]--
	delete(m.locks, token)

	if m.log != nil {
		m.log.Buy(token)
		m.log.UnlockBuy(token)
	}
	m.publish(event.Event{Kind: event.Bought, GoodKind: l.kind, Quantity: l.quantity, Price: l.agreedPrice})
	return released, nil
}

// LockSell reserves an EUR payout against qty of kind offered by the
// trader, failing with the lowest-numbered applicable error, mirroring
// LockBuy's priority order.
func (m *Market) LockSell(kind good.Kind, qty, offer decimal.Decimal, traderName string) (string, error) {
	if !qty.IsPositive() {
		return "", &NonPositiveQuantityToSell{Quantity: qty}
	}
	if !offer.IsPositive() {
		return "", &NonPositiveOffer{Offer: offer}
	}
	if m.cfg.OnePerKind {
		if tok := m.activeLockOf(traderName, sellToMarket, kind); tok != "" {
			return "", &DefaultGoodAlreadyLocked{Token: tok}
		}
	}
	if m.traderLockCount[traderName] >= LockCeiling {
		return "", &MaxAllowedLocksReached{}
	}
	availableEUR := m.availableEURUnlocked()
	if offer.GreaterThan(availableEUR) {
		return "", &InsufficientDefaultGoodQuantityAvailable{Requested: offer, Available: availableEUR}
	}
	highestAcceptableOffer := qty.Div(m.sellRate(kind))
	if offer.GreaterThan(highestAcceptableOffer) {
		return "", &OfferTooHigh{Kind: kind, Quantity: qty, Offer: offer, HighestAcceptableOffer: highestAcceptableOffer}
	}

	token := uuid.New().String()
	m.locks[token] = &lockEntry{
		direction:     sellToMarket,
		kind:          kind,
		quantity:      qty,
		agreedPrice:   highestAcceptableOffer,
		traderName:    traderName,
		token:         token,
		createdAtTick: m.tick,
	}
	m.lockedEURForSell = m.lockedEURForSell.Add(highestAcceptableOffer)
	m.traderLockCount[traderName]++

	if m.log != nil {
		m.log.LockSell(traderName, kind, qty, qty, token)
	}
	m.publish(event.Event{Kind: event.LockedSell, GoodKind: kind, Quantity: qty, Price: highestAcceptableOffer})
	return token, nil
}

// Sell settles a sell lock: it absorbs goodIn's locked quantity into the
// market and pays out the agreed EUR.
func (m *Market) Sell(token string, goodIn *good.Good) (*good.Good, error) {
	l, ok := m.locks[token]
	if !ok || l.direction != sellToMarket {
		return nil, &UnrecognizedToken{Token: token}
	}
	if l.expired {
		delete(m.locks, token)
		return nil, &ExpiredToken{Token: token}
	}
	if goodIn.Kind() != l.kind {
		return nil, &WrongGoodKind{Wrong: goodIn.Kind(), PreAgreed: l.kind}
	}
	if goodIn.Qty().LessThan(l.quantity) {
		return nil, &InsufficientGoodQuantity{Contained: goodIn.Qty(), PreAgreed: l.quantity}
	}

	received, err := goodIn.Split(l.quantity)
	if err != nil {
		return nil, &InsufficientGoodQuantity{Contained: goodIn.Qty(), PreAgreed: l.quantity}
	}
	m.goods[l.kind].Merge(received)

	proceeds, err := m.goods[good.EUR].Split(l.agreedPrice)
	if err != nil {
		proceeds = good.New(good.EUR, decimal.Zero)
	}

	m.lockedEURForSell = m.lockedEURForSell.Sub(l.agreedPrice)
	m.traderLockCount[l.traderName]--
	delete(m.locks, token)

	if m.log != nil {
		m.log.Sell(token)
		m.log.UnlockSell(token)
	}
	m.publish(event.Event{Kind: event.Sold, GoodKind: l.kind, Quantity: l.quantity, Price: l.agreedPrice})
	return proceeds, nil
}

// AddSubscriber registers peer as an observer of m's events. The
// reference is weak: if peer is garbage collected, it is silently skipped
// rather than kept alive or dereferenced.
func (m *Market) AddSubscriber(peer *Market) {
	m.subscribers = append(m.subscribers, weak.Make(peer))
}

// OnEvent implements event.Notifiable: it is how m observes a peer's
// broadcast (or an explicit Wait macro), advancing m's own tick and
// running the full per-tick housekeeping, including at most one internal
// trade.
func (m *Market) OnEvent(e event.Event) {
	m.tick++
	m.expireLocks()
	m.refreshPrices(e)
	m.maybeInternalTrade()
}

// publish commits e as having happened on m — advancing m's own tick,
// expiring any locks that just crossed their horizon, and refreshing m's
// own prices — then notifies every live subscriber, in subscription
// order. The internal-trade engine only runs on received events (see
// OnEvent), not on a market's own originating mutation.
func (m *Market) publish(e event.Event) {
	m.tick++
	m.expireLocks()
	m.refreshPrices(e)

	live := m.subscribers[:0]
	for _, ref := range m.subscribers {
		sub := ref.Value()
		if sub == nil {
			continue
		}
		live = append(live, ref)
		sub.OnEvent(e)
	}
	m.subscribers = live
}

// expireLocks releases the reservation held by any lock that has crossed
// its expiry horizon, without removing it from the lock table: a later
// Buy/Sell against that token still observes ExpiredToken rather than
// UnrecognizedToken.
func (m *Market) expireLocks() {
	for _, l := range m.locks {
		if l.expired {
			continue
		}
		if m.tick-l.createdAtTick < m.cfg.LockExpiryTicks {
			continue
		}
		l.expired = true
		switch l.direction {
		case buyFromMarket:
			m.lockedQtyByKind[l.kind] = m.lockedQtyByKind[l.kind].Sub(l.quantity)
		case sellToMarket:
			m.lockedEURForSell = m.lockedEURForSell.Sub(l.agreedPrice)
		}
		m.traderLockCount[l.traderName]--
	}
}
