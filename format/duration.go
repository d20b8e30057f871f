package format

import (
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
)

// Duration renders an elapsed count as the exact integer followed by the unit
// label s, ms, μs or ns. Counts are never rescaled between units.
func Duration(v int64, unit arrow.TimeUnit) string {
	return strconv.FormatInt(v, 10) + durationSuffix(unit)
}

func durationSuffix(unit arrow.TimeUnit) string {
	switch unit {
	case arrow.Second:
		return "s"
	case arrow.Millisecond:
		return "ms"
	case arrow.Microsecond:
		return "μs"
	case arrow.Nanosecond:
		return "ns"
	default:
		return unit.String()
	}
}
