package core

import (
	"time"
)

// Timestamp represents a point in time with timezone awareness
type Timestamp time.Time

// Now returns the current timestamp
func Now() Timestamp {
	return Timestamp(time.Now())
}

// EpochMillis returns the timestamp as milliseconds since the Unix epoch,
// the wire representation used by history entries.
func (t Timestamp) EpochMillis() int64 {
	return time.Time(t).UnixMilli()
}
