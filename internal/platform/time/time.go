// Package time contains time related helpers
package time

import "time"

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// DayID returns the integer YYYYMMDD for t in t's own location
func DayID(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// MinuteBucket returns floor(unix_seconds/60), the rate-limit window key
func MinuteBucket(t time.Time) int64 {
	return t.Unix() / 60
}
