package timestamp

import (
	"time"
)

// TimeToTimestamp generates a second-resolution timestamp from the time object.
func TimeToTimestamp(t time.Time) int64 {
	return t.Unix()
}

// TimestampToTime generates a time object from a second-resolution timestamp.
func TimestampToTime(t int64) time.Time {
	return time.Unix(t, 0)
}

// Now returns a second-resolution timestamp for now.
func Now() int64 {
	return TimeToTimestamp(time.Now())
}

// WithinSkew checks that ts lies within tolerance of now, in either direction.
func WithinSkew(ts int64, now time.Time, tolerance time.Duration) bool {
	nowTs := TimeToTimestamp(now)
	tol := int64(tolerance / time.Second)
	return ts >= nowTs-tol && ts <= nowTs+tol
}
