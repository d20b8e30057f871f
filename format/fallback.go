package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Fallback selects what is rendered for a date or timestamp outside the
// representable calendar range (years 0001 through 9999).
type Fallback int

const (
	// FallbackLegacy renders the epoch date for Date32, the current
	// wall-clock date for Date64 and the current wall-clock instant for
	// timestamps. Output depends on when the conversion runs.
	FallbackLegacy Fallback = iota

	// FallbackMarker renders "Out of range: " followed by the raw value.
	FallbackMarker

	// FallbackClamp renders the nearest representable date or instant.
	FallbackClamp
)

const outOfRangePrefix = "Out of range: "

var fallbackNames = map[Fallback]string{
	FallbackLegacy: "legacy",
	FallbackMarker: "marker",
	FallbackClamp:  "clamp",
}

// String returns the configuration name of the policy.
func (p Fallback) String() string {
	if name, ok := fallbackNames[p]; ok {
		return name
	}
	return "Fallback(" + strconv.Itoa(int(p)) + ")"
}

// ParseFallback parses a policy name: legacy, marker or clamp.
// The empty string selects FallbackLegacy.
func ParseFallback(s string) (Fallback, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FallbackLegacy, nil
	}
	for p, name := range fallbackNames {
		if name == s {
			return p, nil
		}
	}
	return FallbackLegacy, fmt.Errorf("unknown fallback policy %q (want legacy, marker or clamp)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Fallback) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Fallback) UnmarshalText(b []byte) error {
	parsed, err := ParseFallback(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func outOfRange(raw int64) string {
	return outOfRangePrefix + strconv.FormatInt(raw, 10)
}
