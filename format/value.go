package format

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// Null is rendered for every null cell regardless of the column type.
const Null = "NULL"

const unsupportedPrefix = "Unsupported type: "

// Formatter renders Arrow cells as display strings.
//
// A Formatter is immutable after construction and safe for concurrent use.
type Formatter struct {
	fallback Fallback
	now      func() time.Time
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithFallback sets the policy for out-of-range dates and timestamps.
func WithFallback(p Fallback) Option {
	return func(f *Formatter) {
		f.fallback = p
	}
}

// WithClock replaces the wall clock consulted by FallbackLegacy.
func WithClock(now func() time.Time) Option {
	return func(f *Formatter) {
		if now != nil {
			f.now = now
		}
	}
}

// New creates a Formatter. Without options it uses FallbackLegacy and time.Now.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		fallback: FallbackLegacy,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fallback returns the out-of-range policy of the formatter.
func (f *Formatter) Fallback() Fallback {
	return f.fallback
}

var defaultFormatter = New()

// Value renders row i of arr with the default Formatter.
func Value(arr arrow.Array, i int) string {
	return defaultFormatter.Value(arr, i)
}

// Value renders row i of arr as a display string.
//
// The null check happens before any type-specific logic. Types outside the
// supported set produce "Unsupported type: " followed by the Arrow type
// description; this is a degraded cell value, not an error.
func (f *Formatter) Value(arr arrow.Array, i int) string {
	if arr.IsNull(i) {
		return Null
	}

	switch a := arr.(type) {
	case *array.Boolean:
		return strconv.FormatBool(a.Value(i))

	case *array.Int8:
		return strconv.FormatInt(int64(a.Value(i)), 10)
	case *array.Int16:
		return strconv.FormatInt(int64(a.Value(i)), 10)
	case *array.Int32:
		return strconv.FormatInt(int64(a.Value(i)), 10)
	case *array.Int64:
		return strconv.FormatInt(a.Value(i), 10)
	case *array.Uint8:
		return strconv.FormatUint(uint64(a.Value(i)), 10)
	case *array.Uint16:
		return strconv.FormatUint(uint64(a.Value(i)), 10)
	case *array.Uint32:
		return strconv.FormatUint(uint64(a.Value(i)), 10)
	case *array.Uint64:
		return strconv.FormatUint(a.Value(i), 10)

	case *array.Float32:
		return Float(float64(a.Value(i)), 32)
	case *array.Float64:
		return Float(a.Value(i), 64)

	case *array.String:
		return a.Value(i)
	case *array.LargeString:
		return a.Value(i)

	case *array.Binary:
		return Bytes(a.Value(i))
	case *array.LargeBinary:
		return Bytes(a.Value(i))

	case *array.Date32:
		return f.Date32(int32(a.Value(i)))
	case *array.Date64:
		return f.Date64(int64(a.Value(i)))

	case *array.Time32:
		unit := a.DataType().(*arrow.Time32Type).Unit
		if unit == arrow.Second || unit == arrow.Millisecond {
			return TimeOfDay(int64(a.Value(i)), unit)
		}
	case *array.Time64:
		unit := a.DataType().(*arrow.Time64Type).Unit
		if unit == arrow.Microsecond || unit == arrow.Nanosecond {
			return TimeOfDay(int64(a.Value(i)), unit)
		}

	case *array.Timestamp:
		return f.Timestamp(int64(a.Value(i)), a.DataType().(*arrow.TimestampType).Unit)
	case *array.Duration:
		return Duration(int64(a.Value(i)), a.DataType().(*arrow.DurationType).Unit)

	case *array.MonthInterval:
		return YearMonth(int32(a.Value(i)))
	case *array.DayTimeInterval:
		return DayTime(a.Value(i))
	case *array.MonthDayNanoInterval:
		return MonthDayNano(a.Value(i))
	}

	return Unsupported(arr.DataType())
}

// Supports reports whether cells of type dt render as values rather than as
// an "Unsupported type" string.
func Supports(dt arrow.DataType) bool {
	switch t := dt.(type) {
	case *arrow.Time32Type:
		return t.Unit == arrow.Second || t.Unit == arrow.Millisecond
	case *arrow.Time64Type:
		return t.Unit == arrow.Microsecond || t.Unit == arrow.Nanosecond
	}

	switch dt.ID() {
	case arrow.BOOL,
		arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64,
		arrow.FLOAT32, arrow.FLOAT64,
		arrow.STRING, arrow.LARGE_STRING,
		arrow.BINARY, arrow.LARGE_BINARY,
		arrow.DATE32, arrow.DATE64,
		arrow.TIMESTAMP, arrow.DURATION,
		arrow.INTERVAL_MONTHS, arrow.INTERVAL_DAY_TIME, arrow.INTERVAL_MONTH_DAY_NANO:
		return true
	default:
		return false
	}
}

// Unsupported renders the placeholder used for cells of an unsupported type.
func Unsupported(dt arrow.DataType) string {
	return unsupportedPrefix + dt.String()
}

// Float renders a float in plain decimal notation with the shortest
// representation that round-trips at the given bit size. Exponent notation is
// never used; infinities render as "inf" and "-inf".
func Float(v float64, bitSize int) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, bitSize)
}

// Bytes renders a byte slice as a bracketed, comma separated list of decimal
// byte values, e.g. "[1, 2, 3]".
func Bytes(b []byte) string {
	var sb strings.Builder
	sb.Grow(2 + len(b)*5)
	sb.WriteByte('[')
	for i, c := range b {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(int(c)))
	}
	sb.WriteByte(']')
	return sb.String()
}
