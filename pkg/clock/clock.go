// Package clock provides the integer timestamps stored alongside rows.
package clock

import "time"

// Func returns the current time in seconds since the Unix epoch.
type Func func() int64

// Unix returns the current time in whole seconds since the Unix epoch, UTC.
func Unix() int64 {
	return time.Now().UTC().Unix()
}

// Fixed returns a Func that always reports ts.
func Fixed(ts int64) Func {
	return func() int64 { return ts }
}

// ToTime converts stored seconds back to a UTC time.Time.
func ToTime(ts int64) time.Time {
	return time.Unix(ts, 0).UTC()
}
