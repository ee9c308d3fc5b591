package historyjson

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/fxbourse/market-sim/internal/trader"
)

func TestMarshalEmptyRun(t *testing.T) {
	history := []trader.HistoryDay{{Day: 0, EUR: decimal.NewFromInt(1_000_000)}}

	out, err := Marshal(history)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(out, &got))
	require.Len(t, got, 1)
	require.Equal(t, float64(0), got[0]["day"])
	require.Equal(t, float64(1_000_000), got[0]["eur"])
	require.Equal(t, float64(0), got[0]["usd"])
	require.Equal(t, float64(0), got[0]["yen"])
	require.Equal(t, float64(0), got[0]["yuan"])
}

func TestWriteMatchesMarshal(t *testing.T) {
	history := []trader.HistoryDay{
		{Day: 0, EUR: decimal.NewFromInt(1_000_000)},
		{Day: 1, EUR: decimal.NewFromInt(999_000), USD: decimal.NewFromInt(1_000)},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, history))

	marshaled, err := Marshal(history)
	require.NoError(t, err)

	var fromWrite, fromMarshal []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fromWrite))
	require.NoError(t, json.Unmarshal(marshaled, &fromMarshal))
	require.Equal(t, fromMarshal, fromWrite)
}
