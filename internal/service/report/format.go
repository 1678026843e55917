package report

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
)

// Format12Hour renders a time of day on a 12-hour clock, e.g. "8:05 AM".
func Format12Hour(t time.Time, locale attendance.Locale) string {
	hour := t.Hour()
	suffix := locale.AM
	if hour >= 12 {
		suffix = locale.PM
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute(), suffix)
}

// FormatHoursMinutes renders fractional hours as "9h 30m" (or the locale's
// equivalent). Zero parts are omitted unless the whole duration is zero.
func FormatHoursMinutes(hours float64, locale attendance.Locale) string {
	if hours < 0 || math.IsNaN(hours) {
		hours = 0
	}
	total := int(math.Round(hours * 60))
	h, m := total/60, total%60

	hoursText := strconv.Itoa(h) + locale.HourUnit
	minutesText := strconv.Itoa(m) + locale.MinuteUnit
	switch {
	case h == 0:
		return minutesText
	case m == 0:
		return hoursText
	default:
		return hoursText + locale.UnitJoiner + " " + minutesText
	}
}

// FormatDeviation renders a signed difference from the target workday, e.g.
// "+1h 30m" or "-45m". Differences under half a minute read as "0m".
func FormatDeviation(hours float64, locale attendance.Locale) string {
	text := FormatHoursMinutes(math.Abs(hours), locale)
	switch minutes := math.Round(hours * 60); {
	case minutes > 0:
		return "+" + text
	case minutes < 0:
		return "-" + text
	default:
		return text
	}
}

// PeriodLabel names the months a report covers, e.g. "March 2024" or
// "February 2024 - March 2024".
func PeriodLabel(start, end *attendance.Date, locale attendance.Locale) string {
	if start == nil || end == nil {
		return ""
	}
	from := locale.MonthName(start.Month) + " " + strconv.Itoa(start.Year)
	if start.MonthKey() == end.MonthKey() {
		return from
	}
	return from + " - " + locale.MonthName(end.Month) + " " + strconv.Itoa(end.Year)
}
