// Package format turns individual Arrow cells into display strings.
//
// It is the stringification engine behind pqview: given a decoded column
// (an arrow.Array) and a row index, it returns exactly one string suitable
// for rendering in a viewer. Nulls render as "NULL", types outside the
// supported set render as "Unsupported type: <type>", and neither case is an
// error.
//
// # Supported Types
//
//   - Booleans, signed and unsigned integers, 32 and 64-bit floats
//   - UTF-8 strings (regular and large offsets)
//   - Binary blobs, rendered as a bracketed byte list: [1, 2, 3]
//   - Date32 and Date64, rendered as YYYY-MM-DD
//   - Time32 (s, ms) and Time64 (us, ns), rendered as HH:MM:SS[.ffffff]
//   - Timestamps in all four units, rendered as YYYY-MM-DD HH:MM:SS[.ffffff] in UTC
//   - Durations, rendered as the raw count plus s, ms, μs or ns
//   - Year-month, day-time and month-day-nano intervals, rendered with the
//     calendar labels 年, ヶ月 and 日
//
// A fractional suffix is always exactly six digits (microseconds, truncated)
// and only appears when the sub-second part is non-zero.
//
// # Basic Usage
//
//	for i := 0; i < arr.Len(); i++ {
//	    fmt.Println(format.Value(arr, i))
//	}
//
// # Out-of-range Temporal Values
//
// Dates and timestamps are limited to years 0001 through 9999. What is
// rendered for a value outside that range is controlled by a Fallback:
//
//	f := format.New(format.WithFallback(format.FallbackMarker))
//	f.Value(arr, i) // "Out of range: 99999999"
//
// FallbackLegacy is the default. It substitutes the epoch date for Date32 and
// the current wall-clock date or instant for Date64 and timestamps, which
// makes the output depend on when it was produced. Hosts that need
// reproducible output should pick FallbackMarker or FallbackClamp.
package format
