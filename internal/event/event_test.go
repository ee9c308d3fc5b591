package event

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fxbourse/market-sim/internal/good"
)

type recorder struct {
	events []Event
}

func (r *recorder) OnEvent(e Event) { r.events = append(r.events, e) }

func TestWaitEventCarriesNoTradeInfo(t *testing.T) {
	e := WaitEvent()
	require.Equal(t, Wait, e.Kind)
	require.True(t, e.Quantity.IsZero())
	require.True(t, e.Price.IsZero())
}

func TestNotifiableReceivesInOrder(t *testing.T) {
	var n Notifiable = &recorder{}
	n.OnEvent(Event{Kind: LockedBuy, GoodKind: good.USD})
	n.OnEvent(Event{Kind: Bought, GoodKind: good.USD})

	r := n.(*recorder)
	require.Len(t, r.events, 2)
	require.Equal(t, LockedBuy, r.events[0].Kind)
	require.Equal(t, Bought, r.events[1].Kind)
}

func TestKindString(t *testing.T) {
	require.Equal(t, "Wait", Wait.String())
	require.Equal(t, "Unknown", Kind(99).String())
}
