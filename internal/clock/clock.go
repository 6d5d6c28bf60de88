// Package clock converts wall-clock time into the storage and display forms
// used by keystr.
package clock

import (
	"errors"
	"strconv"
	"time"
)

// SecondsPerDay is the length of a day bucket.
const SecondsPerDay = 86400

// DisplayLayout is the "DD Mon YYYY" layout used for human-facing dates.
const DisplayLayout = "02 Jan 2006"

// ErrBeforeEpoch is returned when the system clock reports a time before 1970.
var ErrBeforeEpoch = errors.New("system clock is set before the Unix epoch")

// Clock returns the current time. Components accept one so tests can pin time.
type Clock func() time.Time

// System is the wall clock.
var System Clock = time.Now

// CurrentTimestamp returns the current time as seconds since the epoch.
func CurrentTimestamp() (uint64, error) {
	return Timestamp(System())
}

// Timestamp converts t to seconds since the epoch.
func Timestamp(t time.Time) (uint64, error) {
	secs := t.Unix()
	if secs < 0 {
		return 0, ErrBeforeEpoch
	}
	return uint64(secs), nil
}

// DayBucket returns the number of whole UTC days since the epoch as a string
// key. Instants within the same UTC day share a key.
func DayBucket(t time.Time) string {
	secs := t.Unix()
	if secs < 0 {
		secs = 0
	}
	return strconv.FormatInt(secs/SecondsPerDay, 10)
}

// DisplayDate formats a timestamp as "DD Mon YYYY" in UTC.
func DisplayDate(ts uint64) string {
	return time.Unix(int64(ts), 0).UTC().Format(DisplayLayout)
}

// DayOfMonth returns the two-digit day component of DisplayDate, used for
// chart axis labels.
func DayOfMonth(ts uint64) string {
	return time.Unix(int64(ts), 0).UTC().Format("02")
}
