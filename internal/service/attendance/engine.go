package attendance

import (
	"time"

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
)

// Engine runs the punch-log pipeline stages. It holds only read-only settings,
// so a single Engine may serve concurrent analyses.
type Engine struct {
	restDay     time.Weekday
	locale      attendance.Locale
	location    *time.Location
	targetHours float64
}

// DefaultTargetWorkday is the expected length of a work day.
const DefaultTargetWorkday = 8 * time.Hour

type EngineOption func(*Engine)

// WithRestDay sets the weekly day off excluded from absence counting.
func WithRestDay(wd time.Weekday) EngineOption {
	return func(e *Engine) { e.restDay = wd }
}

func WithLocale(l attendance.Locale) EngineOption {
	return func(e *Engine) { e.locale = l }
}

// WithLocation sets the zone that timestamps carrying an explicit offset are
// converted into before their wall clock is kept. Punches are always stored as
// wall-clock fields in UTC, so the zone never shifts a device reading or the
// hours between two readings.
func WithLocation(loc *time.Location) EngineOption {
	return func(e *Engine) {
		if loc != nil {
			e.location = loc
		}
	}
}

// WithTargetWorkday sets the day length each record's deviation is measured
// against. Non-positive durations are ignored.
func WithTargetWorkday(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.targetHours = d.Hours()
		}
	}
}

func NewEngine(opts ...EngineOption) Engine {
	e := Engine{
		restDay:     time.Friday,
		locale:      attendance.LocaleEnglish,
		location:    time.UTC,
		targetHours: DefaultTargetWorkday.Hours(),
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

func (e Engine) RestDay() time.Weekday {
	return e.restDay
}

func (e Engine) Locale() attendance.Locale {
	return e.locale
}

func (e Engine) TargetHours() float64 {
	return e.targetHours
}

// DisplayName resolves an employee ID through the directory, falling back to the
// locale placeholder so unknown IDs are kept.
func (e Engine) DisplayName(dir attendance.EmployeeDirectory, employeeID string) string {
	if name, ok := dir.Lookup(employeeID); ok {
		return name
	}
	return e.locale.Placeholder(employeeID)
}
