package good

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewClampsNegativeQty(t *testing.T) {
	g := New(USD, decimal.NewFromInt(-5))
	require.True(t, g.Qty().IsZero())
	require.Equal(t, USD, g.Kind())
}

func TestNewNeverFails(t *testing.T) {
	g := New(EUR, decimal.NewFromInt(100))
	require.True(t, g.Qty().Equal(decimal.NewFromInt(100)))
}

func TestSplitSuccess(t *testing.T) {
	g := New(USD, decimal.NewFromInt(100))
	split, err := g.Split(decimal.NewFromInt(30))
	require.NoError(t, err)
	require.True(t, g.Qty().Equal(decimal.NewFromInt(70)))
	require.True(t, split.Qty().Equal(decimal.NewFromInt(30)))
	require.Equal(t, USD, split.Kind())

	// quantity conservation: pre == post.self + post.returned
	require.True(t, g.Qty().Add(split.Qty()).Equal(decimal.NewFromInt(100)))
}

func TestSplitNonPositive(t *testing.T) {
	g := New(USD, decimal.NewFromInt(100))

	for _, by := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1)} {
		_, err := g.Split(by)
		require.Error(t, err)
		var nonPositive *NonPositiveSplitQuantity
		require.True(t, errors.As(err, &nonPositive))
	}
	// unchanged on failure
	require.True(t, g.Qty().Equal(decimal.NewFromInt(100)))
}

func TestSplitNotEnough(t *testing.T) {
	g := New(USD, decimal.NewFromInt(100))
	_, err := g.Split(decimal.NewFromInt(101))
	require.Error(t, err)
	var notEnough *NotEnoughQuantityToSplit
	require.True(t, errors.As(err, &notEnough))
	require.True(t, notEnough.Requested.Equal(decimal.NewFromInt(101)))
	require.True(t, notEnough.Available.Equal(decimal.NewFromInt(100)))
	// unchanged on failure
	require.True(t, g.Qty().Equal(decimal.NewFromInt(100)))
}

func TestSplitExactQuantity(t *testing.T) {
	g := New(USD, decimal.NewFromInt(100))
	split, err := g.Split(decimal.NewFromInt(100))
	require.NoError(t, err)
	require.True(t, g.Qty().IsZero())
	require.True(t, split.Qty().Equal(decimal.NewFromInt(100)))
}

func TestMergeSuccess(t *testing.T) {
	a := New(USD, decimal.NewFromInt(40))
	b := New(USD, decimal.NewFromInt(10))
	err := a.Merge(b)
	require.NoError(t, err)
	require.True(t, a.Qty().Equal(decimal.NewFromInt(50)))
	require.True(t, b.Qty().IsZero())
}

func TestMergeDifferentKinds(t *testing.T) {
	a := New(USD, decimal.NewFromInt(40))
	b := New(EUR, decimal.NewFromInt(10))
	err := a.Merge(b)
	require.Error(t, err)
	var mergeErr *MergeError
	require.True(t, errors.As(err, &mergeErr))
	require.Same(t, b, mergeErr.Other)
	// custody of b is returned unmodified, and a is untouched
	require.True(t, a.Qty().Equal(decimal.NewFromInt(40)))
	require.True(t, b.Qty().Equal(decimal.NewFromInt(10)))
}
