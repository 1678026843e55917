package attendance

import (
	"fmt"
	"strings"
	"time"
)

// Locale holds the presentation tables used by the engine. Day names are
// Sunday-first so they can be indexed by time.Weekday directly.
type Locale struct {
	Code              string
	DayNames          [7]string
	MonthNames        [12]string
	PlaceholderPrefix string
	HourUnit          string
	MinuteUnit        string
	UnitJoiner        string
	AM                string
	PM                string
}

var LocaleEnglish = Locale{
	Code:              "en",
	DayNames:          [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	MonthNames:        [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	PlaceholderPrefix: "Employee",
	HourUnit:          "h",
	MinuteUnit:        "m",
	UnitJoiner:        "",
	AM:                "AM",
	PM:                "PM",
}

var LocaleArabic = Locale{
	Code:              "ar",
	DayNames:          [7]string{"الأحد", "الإثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت"},
	MonthNames:        [12]string{"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو", "يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر"},
	PlaceholderPrefix: "موظف",
	HourUnit:          " س",
	MinuteUnit:        " د",
	UnitJoiner:        " و",
	AM:                "ص",
	PM:                "م",
}

// LocaleByCode resolves "en" or "ar".
func LocaleByCode(code string) (Locale, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "", "en":
		return LocaleEnglish, nil
	case "ar":
		return LocaleArabic, nil
	default:
		return Locale{}, fmt.Errorf("unsupported locale %q", code)
	}
}

func (l Locale) DayName(wd time.Weekday) string {
	return l.DayNames[wd]
}

func (l Locale) MonthName(m time.Month) string {
	return l.MonthNames[m-1]
}

// Placeholder is the display name used for IDs missing from the directory.
func (l Locale) Placeholder(employeeID string) string {
	return l.PlaceholderPrefix + " " + employeeID
}

// ParseWeekday accepts English weekday names (full or three-letter) or 0-6 with Sunday = 0.
func ParseWeekday(s string) (time.Weekday, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if len(v) == 1 && v[0] >= '0' && v[0] <= '6' {
		return time.Weekday(v[0] - '0'), nil
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := strings.ToLower(wd.String())
		if v == name || v == name[:3] {
			return wd, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid weekday %q", s)
}
