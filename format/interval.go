package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
)

// Calendar unit labels used by interval renderings.
const (
	yearLabel  = "年"
	monthLabel = "ヶ月"
	dayLabel   = "日"
)

const (
	millisPerHour   = 60 * 60 * 1000
	millisPerMinute = 60 * 1000
	nanosPerSecond  = int64(1e9)
)

// YearMonth renders a year-month interval given in total months.
//
//	14 -> "1年2ヶ月"
//	 5 -> "5ヶ月"
//	 0 -> "0ヶ月"
func YearMonth(months int32) string {
	years := months / 12
	rest := months % 12
	if years > 0 {
		return strconv.Itoa(int(years)) + yearLabel + strconv.Itoa(int(rest)) + monthLabel
	}
	return strconv.Itoa(int(rest)) + monthLabel
}

// DayTime renders a day-time interval as "{days}日 HH:MM:SS", dropping the
// day part when days is not positive.
func DayTime(v arrow.DayTimeInterval) string {
	ms := v.Milliseconds
	clock := fmt.Sprintf("%02d:%02d:%02d",
		ms/millisPerHour,
		ms%millisPerHour/millisPerMinute,
		ms%millisPerMinute/1000,
	)
	if v.Days > 0 {
		return strconv.Itoa(int(v.Days)) + dayLabel + " " + clock
	}
	return clock
}

// MonthDayNano renders a month-day-nanosecond interval as space separated
// parts: years, months, days and a clock, each present only when non-zero.
// An all-zero interval renders as "0".
func MonthDayNano(v arrow.MonthDayNanoInterval) string {
	parts := make([]string, 0, 4)

	years := v.Months / 12
	months := v.Months % 12
	if years > 0 {
		parts = append(parts, strconv.Itoa(int(years))+yearLabel)
	}
	if months > 0 {
		parts = append(parts, strconv.Itoa(int(months))+monthLabel)
	}
	if v.Days > 0 {
		parts = append(parts, strconv.Itoa(int(v.Days))+dayLabel)
	}

	secs := v.Nanoseconds / nanosPerSecond
	nanos := v.Nanoseconds % nanosPerSecond
	if secs != 0 || nanos != 0 {
		clock := fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
		parts = append(parts, clock+fraction(nanos))
	}

	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, " ")
}
