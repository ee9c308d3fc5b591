// Package marketlog writes the fixed per-market plaintext log format:
// one line per trader interaction, terminated by a newline, appended to
// the file at the path passed to Open.
package marketlog

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fxbourse/market-sim/internal/good"
)

// Writer appends formatted lines to one market's log file.
type Writer struct {
	name string
	f    *os.File
	w    *bufio.Writer
	now  func() time.Time
}

// Open creates or appends to the log file at path for the market named
// name.
func Open(name, path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &Writer{name: name, f: f, w: bufio.NewWriter(f), now: time.Now}, nil
}

// Close flushes buffered output and closes the underlying file.
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

func (w *Writer) line(code string) {
	ts := w.now()
	fmt.Fprintf(w.w, "%s|%02d:%02d:%02d:%02d:%02d:%03d|%s\n",
		w.name, ts.Year()%100, int(ts.Month()), ts.Day(), ts.Hour(), ts.Second(), ts.Nanosecond()/1e6, code)
	w.w.Flush()
}

// LockBuy records a trader locking a buy on kind.
func (w *Writer) LockBuy(trader string, kind good.Kind, exchangeQty, lockedQty decimal.Decimal, token string) {
	w.line(fmt.Sprintf("TRADER_LOCK_BUY-%s-GOOD_KIND:%s-EXCHANGE_QTY:%s-LOCKED_QTY:%s-TOKEN:%s",
		trader, kind, exchangeQty, lockedQty, token))
}

// Buy records the trader side of a settled buy.
func (w *Writer) Buy(token string) { w.line("TRADER_BUY-TOKEN:" + token) }

// UnlockBuy records the market side of a settled buy.
func (w *Writer) UnlockBuy(token string) { w.line("MARKET_UNLOCK_BUY-TOKEN:" + token) }

// LockSell records a trader locking a sell on kind.
func (w *Writer) LockSell(trader string, kind good.Kind, exchangeQty, lockedQty decimal.Decimal, token string) {
	w.line(fmt.Sprintf("TRADER_LOCK_SELL-%s-GOOD_KIND:%s-EXCHANGE_QTY:%s-LOCKED_QTY:%s-TOKEN:%s",
		trader, kind, exchangeQty, lockedQty, token))
}

// Sell records the trader side of a settled sell.
func (w *Writer) Sell(token string) { w.line("TRADER_SELL-TOKEN:" + token) }

// UnlockSell records the market side of a settled sell.
func (w *Writer) UnlockSell(token string) { w.line("MARKET_UNLOCK_SELL-TOKEN:" + token) }

// Init writes the MARKET_INITIALIZATION block listing each kind's
// starting quantity in exponential notation.
func (w *Writer) Init(goods map[good.Kind]decimal.Decimal) {
	w.line("MARKET_INITIALIZATION")
	for _, k := range good.AllKinds() {
		qty, _ := goods[k].Float64()
		w.line(fmt.Sprintf("%s:%e", k, qty))
	}
	w.line("END_MARKET_INITIALIZATION")
}
