// Command trader-cli drives a single Trader against one or more Markets
// for a configured number of simulated days, then prints its history.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fxbourse/market-sim/internal/historyjson"
	"github.com/fxbourse/market-sim/internal/market"
	"github.com/fxbourse/market-sim/internal/strategy"
	"github.com/fxbourse/market-sim/internal/trader"
)

const version = "0.1.0"

var knownMarkets = []string{"sgx", "smse", "tase", "zse"}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("trader-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: trader-cli <STRATEGY> [MARKETS]... [options]\n")
		fs.PrintDefaults()
	}

	var (
		capital        float64
		days           int
		minuteInterval int
		logLevel       string
		asJSON         bool
		printHistory   bool
		showVersion    bool
	)

	fs.Float64Var(&capital, "c", 1_000_000, "starting capital in EUR")
	fs.Float64Var(&capital, "capital", 1_000_000, "starting capital in EUR")
	fs.IntVar(&days, "d", 1, "number of simulated days")
	fs.IntVar(&days, "days", 1, "number of simulated days")
	fs.IntVar(&minuteInterval, "m", 60, "minutes between strategy ticks")
	fs.IntVar(&minuteInterval, "minute-interval", 60, "minutes between strategy ticks")
	fs.StringVar(&logLevel, "l", "info", "log level: debug, info, warn, error")
	fs.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.BoolVar(&asJSON, "a", false, "print history as JSON")
	fs.BoolVar(&asJSON, "as-json", false, "print history as JSON")
	fs.BoolVar(&printHistory, "p", false, "print history as a table")
	fs.BoolVar(&printHistory, "print-history", false, "print history as a table")
	fs.BoolVar(&showVersion, "V", false, "print version and exit")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if showVersion {
		fmt.Fprintln(stdout, "trader-cli", version)
		return 0
	}

	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: parseLevel(logLevel)}))
	slog.SetDefault(logger)

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return 2
	}
	strategyName := rest[0]
	marketNames := rest[1:]
	if len(marketNames) == 0 {
		marketNames = knownMarkets
	}
	for _, name := range marketNames {
		if !contains(knownMarkets, name) {
			fmt.Fprintf(stderr, "trader-cli: unknown market %q\n", name)
			return 2
		}
	}

	markets := make([]*market.Market, 0, len(marketNames))
	for i, name := range marketNames {
		m := market.NewRandomMarket(name, int64(i+1))
		markets = append(markets, m)
		slog.Info("market ready", "market", m.Name())
	}
	for i := range markets {
		for j := range markets {
			if i != j {
				markets[i].AddSubscriber(markets[j])
			}
		}
	}

	strat, err := buildStrategy(strategyName, markets)
	if err != nil {
		fmt.Fprintln(stderr, "trader-cli:", err)
		return 2
	}

	startingCapital := decimal.NewFromFloat(capital)
	tr := trader.New(strategyName, strat, markets, startingCapital)

	slog.Info("simulation starting", "strategy", strategyName, "days", days, "minute_interval", minuteInterval)
	tr.ApplyStrategy(days, time.Duration(minuteInterval)*time.Minute)
	tr.SellRemainingGoods()
	slog.Info("simulation finished")

	history := tr.GetHistory()
	if asJSON {
		if err := historyjson.Write(stdout, history); err != nil {
			fmt.Fprintln(stderr, "trader-cli:", err)
			return 1
		}
	}
	if printHistory || !asJSON {
		printTable(stdout, history)
	}

	return 0
}

func buildStrategy(name string, markets []*market.Market) (strategy.Strategy, error) {
	switch strings.ToLower(name) {
	case "mostsimple":
		return strategy.NewMostSimple("cli-trader", markets), nil
	case "averageseller":
		return strategy.NewAverageSeller("cli-trader", markets), nil
	case "stingy":
		return strategy.NewStingy("cli-trader", markets), nil
	case "buyandhold":
		return strategy.NewBuyAndHold("cli-trader", markets), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

func printTable(w *os.File, history []trader.HistoryDay) {
	fmt.Fprintf(w, "%-5s %14s %14s %14s %14s\n", "day", "eur", "usd", "yen", "yuan")
	for _, h := range history {
		fmt.Fprintf(w, "%-5d %14s %14s %14s %14s\n",
			h.Day, h.EUR.StringFixed(2), h.USD.StringFixed(2), h.YEN.StringFixed(2), h.YUAN.StringFixed(2))
	}
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
