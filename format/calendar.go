package format

import (
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
)

const (
	dateLayout    = "2006-01-02"
	instantLayout = "2006-01-02 15:04:05"

	secondsPerDay = 24 * 60 * 60
	millisPerDay  = secondsPerDay * 1000
)

var (
	unixEpoch  = time.Unix(0, 0).UTC()
	minInstant = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxInstant = time.Date(9999, time.December, 31, 23, 59, 59, 999999999, time.UTC)

	minUnixSecond = minInstant.Unix()
	maxUnixSecond = maxInstant.Unix()
)

// Date32 renders a count of days since 1970-01-01 as YYYY-MM-DD.
func (f *Formatter) Date32(days int32) string {
	secs := int64(days) * secondsPerDay
	if secs < minUnixSecond || secs > maxUnixSecond {
		return f.dateFallback(int64(days), secs < minUnixSecond, unixEpoch)
	}
	return time.Unix(secs, 0).UTC().Format(dateLayout)
}

// Date64 renders milliseconds since 1970-01-01 as the YYYY-MM-DD of the day
// containing that instant.
func (f *Formatter) Date64(ms int64) string {
	days := floorDiv(ms, millisPerDay)
	secs := days * secondsPerDay
	if secs < minUnixSecond || secs > maxUnixSecond {
		return f.dateFallback(ms, secs < minUnixSecond, f.now())
	}
	return time.Unix(secs, 0).UTC().Format(dateLayout)
}

// Timestamp renders an instant counted in unit since the epoch as
// YYYY-MM-DD HH:MM:SS in UTC, followed by a six digit microsecond fraction
// when the sub-second part is non-zero.
func (f *Formatter) Timestamp(v int64, unit arrow.TimeUnit) string {
	per := unitsPerSecond(unit)
	secs := floorDiv(v, per)
	nanos := (v - secs*per) * (int64(time.Second) / per)
	if secs < minUnixSecond || secs > maxUnixSecond {
		return f.instantFallback(v, secs < minUnixSecond)
	}
	return instant(secs, nanos)
}

// TimeOfDay renders a time-of-day counted in unit since midnight as
// HH:MM:SS[.ffffff]. Hours are not wrapped at 24. A negative value renders as
// "-" followed by the rendering of its magnitude.
func TimeOfDay(v int64, unit arrow.TimeUnit) string {
	per := uint64(unitsPerSecond(unit))
	if v < 0 {
		// -(v+1)+1 keeps math.MinInt64 representable.
		mag := uint64(-(v + 1)) + 1
		return "-" + wallClock(mag/per, mag%per*(uint64(time.Second)/per))
	}
	mag := uint64(v)
	return wallClock(mag/per, mag%per*(uint64(time.Second)/per))
}

func wallClock(secs, nanos uint64) string {
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs%3600/60, secs%60) + fraction(int64(nanos))
}

func instant(secs, nanos int64) string {
	return time.Unix(secs, 0).UTC().Format(instantLayout) + fraction(nanos)
}

// fraction returns ".ffffff" for a non-zero nanosecond remainder and "" otherwise.
// Sub-microsecond digits are truncated.
func fraction(nanos int64) string {
	if nanos == 0 {
		return ""
	}
	return fmt.Sprintf(".%06d", nanos/1000)
}

func (f *Formatter) dateFallback(raw int64, below bool, legacy time.Time) string {
	switch f.fallback {
	case FallbackMarker:
		return outOfRange(raw)
	case FallbackClamp:
		if below {
			return minInstant.Format(dateLayout)
		}
		return maxInstant.Format(dateLayout)
	default:
		return legacy.UTC().Format(dateLayout)
	}
}

func (f *Formatter) instantFallback(raw int64, below bool) string {
	var t time.Time
	switch f.fallback {
	case FallbackMarker:
		return outOfRange(raw)
	case FallbackClamp:
		t = maxInstant
		if below {
			t = minInstant
		}
	default:
		t = f.now().UTC()
	}
	return instant(t.Unix(), int64(t.Nanosecond()))
}

func unitsPerSecond(unit arrow.TimeUnit) int64 {
	switch unit {
	case arrow.Millisecond:
		return 1e3
	case arrow.Microsecond:
		return 1e6
	case arrow.Nanosecond:
		return 1e9
	default:
		return 1
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
