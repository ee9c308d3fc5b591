// Package historyjson serializes a Trader's HistoryDay sequence to the
// array-of-objects JSON format consumed by the CLI's --as-json option.
package historyjson

import (
	"encoding/json"
	"io"

	"github.com/fxbourse/market-sim/internal/trader"
)

type row struct {
	Day  int     `json:"day"`
	EUR  float64 `json:"eur"`
	USD  float64 `json:"usd"`
	YEN  float64 `json:"yen"`
	YUAN float64 `json:"yuan"`
}

func toRows(history []trader.HistoryDay) []row {
	rows := make([]row, len(history))
	for i, h := range history {
		rows[i] = row{
			Day:  h.Day,
			EUR:  h.EUR.InexactFloat64(),
			USD:  h.USD.InexactFloat64(),
			YEN:  h.YEN.InexactFloat64(),
			YUAN: h.YUAN.InexactFloat64(),
		}
	}
	return rows
}

// Marshal renders history as a JSON array of {day,eur,usd,yen,yuan}
// objects, one per entry, in the order given.
func Marshal(history []trader.HistoryDay) ([]byte, error) {
	return json.Marshal(toRows(history))
}

// Write encodes history as JSON to w.
func Write(w io.Writer, history []trader.HistoryDay) error {
	return json.NewEncoder(w).Encode(toRows(history))
}
