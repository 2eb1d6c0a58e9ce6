package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSizeIsUsable(t *testing.T) {
	require.True(t, SizeOf(1920, 1080).IsUsable())
	require.False(t, Size{}.IsUsable())
	require.False(t, SizeOf(-1, 100).IsUsable())
	require.False(t, SizeOf(100, 0).IsUsable())
	require.False(t, SizeOf(math.NaN(), 100).IsUsable())
	require.False(t, SizeOf(100, math.Inf(1)).IsUsable())
}

func TestSizeCeil(t *testing.T) {
	require.Equal(t, SizeOf(11, 7), SizeOf(10.2, 6.01).Ceil())
	require.Equal(t, SizeOf(10, 6), SizeOf(10, 6).Ceil())
}
