package attendance

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
)

// LineFormat selects how a raw line is split into tokens.
type LineFormat int

const (
	// FormatDelimited splits on runs of tabs or two or more spaces (.dat / .txt exports).
	FormatDelimited LineFormat = iota
	// FormatCSV splits on commas.
	FormatCSV
)

var (
	fieldSeparator     = regexp.MustCompile(`\t+|\s{2,}`)
	timestampSeparator = regexp.MustCompile(`[\s\-:T]`)
	leadingDigits      = regexp.MustCompile(`^[0-9]+`)
)

// fallbackLayouts are tried, in order, when the structural split does not yield
// a valid timestamp.
var fallbackLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"Jan 2, 2006 15:04:05",
	"Jan 2, 2006 3:04:05 PM",
	"Jan 2 2006 15:04:05",
	"Mon Jan 2 2006 15:04:05",
	"2 Jan 2006 15:04:05",
	"2 Jan 2006 15:04",
	time.RFC1123,
	time.RFC1123Z,
	time.ANSIC,
	"2006-01-02",
	"2006/01/02",
}

// Parse runs the Line Parser over tab / multi-space delimited text.
func (e Engine) Parse(raw string) attendance.ParseResult {
	return e.ParseLines(Tokenize(raw, FormatDelimited))
}

// ParseCSV runs the Line Parser over comma-separated text. A header row fails
// timestamp conversion and is reported like any other skipped line.
func (e Engine) ParseCSV(raw string) attendance.ParseResult {
	return e.ParseLines(Tokenize(raw, FormatCSV))
}

// ParseLines converts tokenized lines to punch events in file order. Malformed
// lines and lines whose timestamp fails both strategies are collected as issues.
func (e Engine) ParseLines(lines []attendance.ParsedLine) attendance.ParseResult {
	result := attendance.ParseResult{
		Events: make([]attendance.PunchEvent, 0, len(lines)),
	}

	for _, line := range lines {
		switch l := line.(type) {
		case attendance.OkLine:
			ts, ok := e.ParseTimestamp(l.TimestampFields)
			if !ok {
				result.Skipped = append(result.Skipped, skip(l.LineNumber, l.EmployeeID+" "+l.TimestampFields, attendance.SkipInvalidTimestamp))
				continue
			}
			result.Events = append(result.Events, attendance.PunchEvent{
				EmployeeID: l.EmployeeID,
				Timestamp:  ts,
				LineNumber: l.LineNumber,
			})
		case attendance.MalformedLine:
			result.Skipped = append(result.Skipped, skip(l.LineNumber, l.Raw, l.Reason))
		}
	}

	return result
}

func skip(lineNumber int, raw string, reason attendance.SkipReason) attendance.LineIssue {
	slog.Debug("Skipping punch log line", "line", lineNumber, "reason", reason)
	return attendance.LineIssue{LineNumber: lineNumber, Reason: reason, Raw: raw}
}

// Tokenize splits raw text into typed lines. Blank lines produce nothing; line
// numbers are 1-based positions in the original text.
func Tokenize(raw string, format LineFormat) []attendance.ParsedLine {
	raw = strings.TrimPrefix(raw, "\ufeff")
	rawLines := strings.Split(raw, "\n")

	lines := make([]attendance.ParsedLine, 0, len(rawLines))
	for i, rawLine := range rawLines {
		text := strings.TrimSpace(rawLine)
		if text == "" {
			continue
		}
		lines = append(lines, tokenizeLine(i+1, text, format))
	}
	return lines
}

func tokenizeLine(lineNumber int, text string, format LineFormat) attendance.ParsedLine {
	var tokens []string
	switch format {
	case FormatCSV:
		tokens = strings.Split(text, ",")
	default:
		tokens = fieldSeparator.Split(text, -1)
	}

	fields := tokens[:0]
	for i, tok := range tokens {
		tok = strings.Trim(strings.TrimSpace(tok), `"`)
		// A blank first CSV cell still occupies the ID position.
		if tok == "" && !(format == FormatCSV && i == 0) {
			continue
		}
		fields = append(fields, tok)
	}

	if len(fields) < 2 {
		return attendance.MalformedLine{LineNumber: lineNumber, Raw: text, Reason: attendance.SkipTooFewTokens}
	}
	if fields[0] == "" {
		return attendance.MalformedLine{LineNumber: lineNumber, Raw: text, Reason: attendance.SkipEmptyEmployeeID}
	}

	return attendance.OkLine{
		LineNumber:      lineNumber,
		EmployeeID:      fields[0],
		TimestampFields: strings.Join(fields[1:], " "),
	}
}

// ParseTimestamp converts the rejoined timestamp text. The structural split is
// tried first, then the fallback layouts; false means the event must be dropped.
func (e Engine) ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, ok := parseStructural(s); ok {
		return t, true
	}
	for _, layout := range fallbackLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if hasZone(layout) {
			t = t.In(e.location)
		}
		return wallClock(t), true
	}
	return time.Time{}, false
}

// wallClock keeps t's clock reading and drops its zone. Durations between
// wall-clock values then match what the device printed, DST or not.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func hasZone(layout string) bool {
	return strings.Contains(layout, "Z07") || strings.Contains(layout, "-07") || strings.Contains(layout, "MST")
}

// parseStructural reads year, month, day, hour, minute[, second] positionally
// from the components left after splitting on whitespace, '-', ':' and 'T'.
// Any further components (device status columns, a trailing offset) are ignored.
func parseStructural(s string) (time.Time, bool) {
	var parts []string
	for _, p := range timestampSeparator.Split(s, -1) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 5 {
		return time.Time{}, false
	}

	var n [6]int
	for i := 0; i < 5; i++ {
		v, err := strconv.Atoi(parts[i])
		if err != nil || v < 0 {
			return time.Time{}, false
		}
		n[i] = v
	}
	if len(parts) > 5 {
		// Seconds may carry a fraction or a trailing marker ("05.123", "05Z").
		if digits := leadingDigits.FindString(parts[5]); digits != "" {
			n[5], _ = strconv.Atoi(digits)
		}
	}

	year, month, day, hour, minute, second := n[0], time.Month(n[1]), n[2], n[3], n[4], n[5]
	date := attendance.Date{Year: year, Month: month, Day: day}
	if !date.Valid() || hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, false
	}

	return time.Date(year, month, day, hour, minute, second, 0, time.UTC), true
}
