package market

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fxbourse/market-sim/internal/good"
)

// MarketGetterError family: GetBuyPrice and GetSellPrice.

// NonPositiveQuantityAsked is returned by GetBuyPrice/GetSellPrice when the
// requested quantity is not strictly positive.
type NonPositiveQuantityAsked struct{ Quantity decimal.Decimal }

func (e *NonPositiveQuantityAsked) Error() string {
	return fmt.Sprintf("market: non-positive quantity asked %s", e.Quantity)
}

// InsufficientGoodQuantityAvailable is returned by GetBuyPrice (and by
// LockBuy, priority 5) when more than the unlocked available quantity of
// kind is requested.
type InsufficientGoodQuantityAvailable struct {
	Kind      good.Kind
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientGoodQuantityAvailable) Error() string {
	return fmt.Sprintf("market: insufficient %s available: requested %s, available %s", e.Kind, e.Requested, e.Available)
}

// LockBuyError family, in §4.2 priority order (lowest wins).

// NonPositiveQuantityToBuy is priority 1.
type NonPositiveQuantityToBuy struct{ Quantity decimal.Decimal }

func (e *NonPositiveQuantityToBuy) Error() string {
	return fmt.Sprintf("market: non-positive quantity to buy %s", e.Quantity)
}

// NonPositiveBid is priority 2.
type NonPositiveBid struct{ Bid decimal.Decimal }

func (e *NonPositiveBid) Error() string {
	return fmt.Sprintf("market: non-positive bid %s", e.Bid)
}

// GoodAlreadyLocked is priority 3, only under Config.OnePerKind.
type GoodAlreadyLocked struct{ Token string }

func (e *GoodAlreadyLocked) Error() string {
	return fmt.Sprintf("market: good already locked under token %s", e.Token)
}

// MaxAllowedLocksReached is priority 4.
type MaxAllowedLocksReached struct{}

func (e *MaxAllowedLocksReached) Error() string {
	return fmt.Sprintf("market: max allowed locks reached (%d)", LockCeiling)
}

// BidTooLow is priority 6.
type BidTooLow struct {
	Kind                good.Kind
	Quantity            decimal.Decimal
	Bid                 decimal.Decimal
	LowestAcceptableBid decimal.Decimal
}

func (e *BidTooLow) Error() string {
	return fmt.Sprintf("market: bid %s too low for %s %s, lowest acceptable is %s", e.Bid, e.Quantity, e.Kind, e.LowestAcceptableBid)
}

// BuyError family.

// UnrecognizedToken is priority 1 for both Buy and Sell.
type UnrecognizedToken struct{ Token string }

func (e *UnrecognizedToken) Error() string {
	return fmt.Sprintf("market: unrecognized token %s", e.Token)
}

// ExpiredToken is priority 2 for both Buy and Sell.
type ExpiredToken struct{ Token string }

func (e *ExpiredToken) Error() string {
	return fmt.Sprintf("market: expired token %s", e.Token)
}

// GoodKindNotDefault is priority 3 for Buy: the cash offered is not EUR.
type GoodKindNotDefault struct{ Kind good.Kind }

func (e *GoodKindNotDefault) Error() string {
	return fmt.Sprintf("market: %s is not the default good kind", e.Kind)
}

// InsufficientGoodQuantity is priority 4 for Buy and Sell.
type InsufficientGoodQuantity struct {
	Contained decimal.Decimal
	PreAgreed decimal.Decimal
}

func (e *InsufficientGoodQuantity) Error() string {
	return fmt.Sprintf("market: contained quantity %s is less than the pre-agreed %s", e.Contained, e.PreAgreed)
}

// LockSellError family, mirroring LockBuyError.

// NonPositiveQuantityToSell is priority 1.
type NonPositiveQuantityToSell struct{ Quantity decimal.Decimal }

func (e *NonPositiveQuantityToSell) Error() string {
	return fmt.Sprintf("market: non-positive quantity to sell %s", e.Quantity)
}

// NonPositiveOffer is priority 2.
type NonPositiveOffer struct{ Offer decimal.Decimal }

func (e *NonPositiveOffer) Error() string {
	return fmt.Sprintf("market: non-positive offer %s", e.Offer)
}

// DefaultGoodAlreadyLocked is priority 3, only under Config.OnePerKind.
type DefaultGoodAlreadyLocked struct{ Token string }

func (e *DefaultGoodAlreadyLocked) Error() string {
	return fmt.Sprintf("market: default good already locked under token %s", e.Token)
}

// InsufficientDefaultGoodQuantityAvailable is priority 5 for LockSell: the
// market's unlocked EUR cannot cover the offer.
type InsufficientDefaultGoodQuantityAvailable struct {
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientDefaultGoodQuantityAvailable) Error() string {
	return fmt.Sprintf("market: insufficient EUR available to cover offer: requested %s, available %s", e.Requested, e.Available)
}

// OfferTooHigh is priority 6 for LockSell.
type OfferTooHigh struct {
	Kind                   good.Kind
	Quantity               decimal.Decimal
	Offer                  decimal.Decimal
	HighestAcceptableOffer decimal.Decimal
}

func (e *OfferTooHigh) Error() string {
	return fmt.Sprintf("market: offer %s too high for %s %s, highest acceptable is %s", e.Offer, e.Quantity, e.Kind, e.HighestAcceptableOffer)
}

// SellError family.

// WrongGoodKind is priority 3 for Sell: the good offered doesn't match the
// lock's pre-agreed kind.
type WrongGoodKind struct {
	Wrong     good.Kind
	PreAgreed good.Kind
}

func (e *WrongGoodKind) Error() string {
	return fmt.Sprintf("market: wrong good kind %s, pre-agreed was %s", e.Wrong, e.PreAgreed)
}
