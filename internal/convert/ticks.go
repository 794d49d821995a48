package convert

import "time"

const (
	// TicksPerMillisecond is the number of 100ns ticks in one millisecond.
	TicksPerMillisecond = 10_000
	// UnixEpochTicks is 1970-01-01T00:00:00Z expressed in ticks since
	// 0001-01-01T00:00:00Z.
	UnixEpochTicks int64 = 621_355_968_000_000_000
)

// TicksToTime divides the tick count down to milliseconds and reads the
// result as Unix milliseconds. The epoch difference is not subtracted; this
// matches what the meters' consumers have always produced. Division
// truncates toward zero.
func TicksToTime(ticks int64) time.Time {
	return time.UnixMilli(ticks / TicksPerMillisecond).UTC()
}

// TicksToUnixTime converts ticks since 0001-01-01 into the real instant by
// removing the epoch offset. Scaling happens first so the subtraction cannot
// overflow; the offset is a whole number of milliseconds.
func TicksToUnixTime(ticks int64) time.Time {
	return time.UnixMilli(ticks/TicksPerMillisecond - UnixEpochTicks/TicksPerMillisecond).UTC()
}
