// Command trader-ui runs the terminal visualizer: a Trader driven
// forward live, one simulated day per frame, against one or more Markets.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/fxbourse/market-sim/internal/market"
	"github.com/fxbourse/market-sim/internal/strategy"
	"github.com/fxbourse/market-sim/internal/trader"
	"github.com/fxbourse/market-sim/internal/ui"
)

var knownMarkets = []string{"sgx", "smse", "tase", "zse"}

func main() {
	strategyName := flag.String("strategy", "mostsimple", "strategy to drive: mostsimple, averageseller, stingy, buyandhold")
	capital := flag.Float64("capital", 1_000_000, "starting capital in EUR")
	minuteInterval := flag.Int("minute-interval", 60, "minutes between strategy ticks")
	marketsFlag := flag.String("markets", strings.Join(knownMarkets, ","), "comma-separated market names")
	flag.Parse()

	names := strings.Split(*marketsFlag, ",")
	markets := make([]*market.Market, 0, len(names))
	for i, name := range names {
		markets = append(markets, market.NewRandomMarket(strings.TrimSpace(name), int64(i+1)))
	}
	for i := range markets {
		for j := range markets {
			if i != j {
				markets[i].AddSubscriber(markets[j])
			}
		}
	}

	strat, err := buildStrategy(*strategyName, markets)
	if err != nil {
		fmt.Fprintln(os.Stderr, "trader-ui:", err)
		os.Exit(2)
	}

	tr := trader.New("ui-trader", strat, markets, decimal.NewFromFloat(*capital))
	model := ui.New(tr, time.Duration(*minuteInterval)*time.Minute)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "trader-ui:", err)
		os.Exit(1)
	}
}

func buildStrategy(name string, markets []*market.Market) (strategy.Strategy, error) {
	switch strings.ToLower(name) {
	case "mostsimple":
		return strategy.NewMostSimple("ui-trader", markets), nil
	case "averageseller":
		return strategy.NewAverageSeller("ui-trader", markets), nil
	case "stingy":
		return strategy.NewStingy("ui-trader", markets), nil
	case "buyandhold":
		return strategy.NewBuyAndHold("ui-trader", markets), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}
