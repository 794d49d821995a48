package convert

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDeviceIDPermutation(t *testing.T) {
	got := DeviceIDString(0x0123456789ABCDEF, 0xFEDCBA9876543210)
	require.Equal(t, "89abcdef-4567-0123-1032-547698badcfe", got)
}

func TestDeviceIDZeroPadding(t *testing.T) {
	// leading zero bytes must survive the remap
	got := DeviceIDString(0x0000000000000001, 0x0100000000000000)
	require.Equal(t, "00000001-0000-0000-0000-000000000001", got)
	require.Len(t, got, 36)

	require.Equal(t, "00000000-0000-0000-0000-000000000000", DeviceIDString(0, 0))
}

func TestDeviceIDTable(t *testing.T) {
	seen := make(map[int]bool, len(guidOrder))
	for _, idx := range guidOrder {
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, 16)
		require.False(t, seen[idx], "index %d used twice", idx)
		seen[idx] = true
	}

	// each source byte lands in exactly one output position
	for src := 0; src < 16; src++ {
		var hi, lo uint64
		if src < 8 {
			hi = uint64(0xAA) << (8 * (7 - src))
		} else {
			lo = uint64(0xAA) << (8 * (15 - src))
		}
		id := DeviceID(hi, lo)
		count := 0
		for i, b := range id {
			if b == 0xAA {
				count++
				require.Equal(t, src, guidOrder[i])
			}
		}
		require.Equal(t, 1, count)
	}
}

func TestTicksToTime(t *testing.T) {
	const ticks int64 = 636000000000000000
	got := TicksToTime(ticks)
	require.Equal(t, ticks/10000, got.UnixMilli())
	require.Equal(t, int64(63600000000000), got.UnixMilli())
	require.True(t, time.Date(3985, time.May, 28, 2, 40, 0, 0, time.UTC).Equal(got), got.String())
	require.Equal(t, time.UTC, got.Location())
}

func TestTicksToTimeTruncates(t *testing.T) {
	require.Equal(t, int64(63600000000001), TicksToTime(636000000000019999).UnixMilli())
	require.Equal(t, int64(-1), TicksToTime(-15000).UnixMilli())
	require.Equal(t, int64(0), TicksToTime(9999).UnixMilli())
}

func TestTicksToUnixTime(t *testing.T) {
	got := TicksToUnixTime(636000000000000000)
	require.True(t, time.Date(2016, time.May, 28, 2, 40, 0, 0, time.UTC).Equal(got), got.String())
	require.Equal(t, int64(0), TicksToUnixTime(UnixEpochTicks).UnixMilli())
}

func TestTicksToUnixTimeExtremes(t *testing.T) {
	epochMillis := UnixEpochTicks / TicksPerMillisecond

	low := TicksToUnixTime(math.MinInt64)
	require.Equal(t, math.MinInt64/TicksPerMillisecond-epochMillis, low.UnixMilli())
	require.True(t, low.Before(TicksToUnixTime(0)))

	high := TicksToUnixTime(math.MaxInt64)
	require.Equal(t, math.MaxInt64/TicksPerMillisecond-epochMillis, high.UnixMilli())
	require.True(t, high.After(TicksToUnixTime(0)))

	require.Equal(t, -epochMillis, TicksToUnixTime(0).UnixMilli())
}
