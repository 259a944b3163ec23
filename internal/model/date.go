package model

import "time"

const (
	DateLayout        = "2006-01-02"
	DisplayDateLayout = "January 2, 2006"
	TimestampLayout   = "2006-01-02T15:04:05.000Z"
)

// DateKey is the local calendar date used to scope a session's buckets.
func DateKey(now time.Time) string {
	return now.Format(DateLayout)
}

// DisplayDate turns a date key into the long form shown in headers. Keys that
// do not parse are returned as is.
func DisplayDate(key string) string {
	d, err := time.Parse(DateLayout, key)
	if err != nil {
		return key
	}
	return d.Format(DisplayDateLayout)
}

// FormatTimestamp renders t as an ISO-8601 UTC instant with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func ParseTimestamp(v string) (time.Time, error) {
	if t, err := time.Parse(TimestampLayout, v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, v)
}

// NextID returns an id derived from the wall clock that is strictly greater
// than last, so two records created in the same millisecond never collide.
func NextID(now time.Time, last int64) int64 {
	id := now.UnixMilli()
	if id <= last {
		id = last + 1
	}
	return id
}
