package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_Next(t *testing.T) {
	tests := []struct {
		from string
		want string
	}{
		{"2024-03-10", "2024-03-11"},
		{"2024-01-31", "2024-02-01"},
		{"2024-02-28", "2024-02-29"},
		{"2024-02-29", "2024-03-01"},
		{"2023-02-28", "2023-03-01"},
		{"1900-02-28", "1900-03-01"},
		{"2000-02-28", "2000-02-29"},
		{"2024-04-30", "2024-05-01"},
		{"2023-12-31", "2024-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.from, func(t *testing.T) {
			d, err := ParseDate(tt.from)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Next().String())
		})
	}
}

// Test that stepping a full year by components visits every day once,
// including across the DST changes of zones that have them
func TestDate_Next_FullYear(t *testing.T) {
	d := Date{Year: 2024, Month: time.January, Day: 1}
	count := 0
	for d.Year == 2024 {
		require.True(t, d.Valid(), d.String())
		d = d.Next()
		count++
	}

	assert.Equal(t, 366, count)
	assert.Equal(t, "2025-01-01", d.String())
}

func TestDate_Compare(t *testing.T) {
	a := Date{Year: 2024, Month: time.March, Day: 1}
	b := Date{Year: 2024, Month: time.March, Day: 5}
	c := Date{Year: 2023, Month: time.December, Day: 31}

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.True(t, c.Before(a))
	assert.True(t, a.After(c))
	assert.False(t, a.After(a))
}

func TestDate_Weekday(t *testing.T) {
	assert.Equal(t, time.Friday, Date{Year: 2024, Month: time.March, Day: 1}.Weekday())
	assert.Equal(t, time.Sunday, Date{Year: 2024, Month: time.March, Day: 10}.Weekday())
	assert.Equal(t, time.Monday, Date{Year: 2024, Month: time.March, Day: 11}.Weekday())
}

func TestDate_Valid(t *testing.T) {
	assert.True(t, Date{Year: 2024, Month: time.February, Day: 29}.Valid())
	assert.False(t, Date{Year: 2023, Month: time.February, Day: 29}.Valid())
	assert.False(t, Date{Year: 2024, Month: 13, Day: 1}.Valid())
	assert.False(t, Date{Year: 2024, Month: time.April, Day: 31}.Valid())
	assert.False(t, Date{Year: 2024, Month: time.April, Day: 0}.Valid())
}

func TestDateOf_KeepsWallClockDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	ts := time.Date(2024, time.March, 10, 1, 30, 0, 0, loc)

	// 2024-03-09 22:30 in UTC, but the calendar day is read in the timestamp's own zone
	assert.Equal(t, Date{Year: 2024, Month: time.March, Day: 10}, DateOf(ts))
}

func TestDate_Formatting(t *testing.T) {
	d := Date{Year: 987, Month: time.July, Day: 4}

	assert.Equal(t, "0987-07-04", d.String())
	assert.Equal(t, "0987-07", d.MonthKey())
	assert.True(t, Date{}.IsZero())
	assert.False(t, d.IsZero())
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("2024/03/10")

	assert.Error(t, err)
}
