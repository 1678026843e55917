package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocaleByCode(t *testing.T) {
	en, err := LocaleByCode("")
	require.NoError(t, err)
	assert.Equal(t, "en", en.Code)

	ar, err := LocaleByCode(" AR ")
	require.NoError(t, err)
	assert.Equal(t, "ar", ar.Code)

	_, err = LocaleByCode("fr")
	assert.Error(t, err)
}

func TestLocale_Names(t *testing.T) {
	assert.Equal(t, "Sunday", LocaleEnglish.DayName(time.Sunday))
	assert.Equal(t, "Friday", LocaleEnglish.DayName(time.Friday))
	assert.Equal(t, "الجمعة", LocaleArabic.DayName(time.Friday))
	assert.Equal(t, "March", LocaleEnglish.MonthName(time.March))
	assert.Equal(t, "ديسمبر", LocaleArabic.MonthName(time.December))
}

func TestLocale_Placeholder(t *testing.T) {
	assert.Equal(t, "Employee 0042", LocaleEnglish.Placeholder("0042"))
	assert.Equal(t, "موظف 0042", LocaleArabic.Placeholder("0042"))
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		input string
		want  time.Weekday
	}{
		{"friday", time.Friday},
		{"Friday", time.Friday},
		{" FRI ", time.Friday},
		{"sun", time.Sunday},
		{"6", time.Saturday},
		{"0", time.Sunday},
	}
	for _, tt := range tests {
		got, err := ParseWeekday(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	for _, bad := range []string{"", "7", "fr", "someday"} {
		_, err := ParseWeekday(bad)
		assert.Error(t, err, bad)
	}
}

func TestEmployeeDirectory_Lookup(t *testing.T) {
	dir := EmployeeDirectory{"E1": "Mona Hassan", "E2": ""}

	name, ok := dir.Lookup("E1")
	assert.True(t, ok)
	assert.Equal(t, "Mona Hassan", name)

	_, ok = dir.Lookup("E2")
	assert.False(t, ok)

	_, ok = EmployeeDirectory(nil).Lookup("E1")
	assert.False(t, ok)
}
