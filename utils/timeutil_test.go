package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "morning", input: "8:00 AM", want: 480},
		{name: "afternoon", input: "2:30 PM", want: 870},
		{name: "midnight", input: "12:00 AM", want: 0},
		{name: "noon", input: "12:00 PM", want: 720},
		{name: "missing minutes", input: "8 PM", want: 1200},
		{name: "lowercase marker", input: "9:15 am", want: 555},
		{name: "no space before marker", input: "7:45PM", want: 1065},
		{name: "hour zero", input: "0:30 AM", wantErr: true},
		{name: "hour thirteen", input: "13:00 PM", wantErr: true},
		{name: "minute overflow", input: "8:75 AM", wantErr: true},
		{name: "24h format", input: "14:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseClockTime(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrBadTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMinutesToClock(t *testing.T) {
	tests := []struct {
		minutes float64
		want    string
	}{
		{0, "12:00 AM"},
		{480, "8:00 AM"},
		{720, "12:00 PM"},
		{750, "12:30 PM"},
		{1065, "5:45 PM"},
		{1439, "11:59 PM"},
		{480.4, "8:00 AM"},
		{480.6, "8:01 AM"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, MinutesToClock(tc.minutes))
	}
}

func TestClockTimeRoundTrip(t *testing.T) {
	for _, input := range []string{"8:00 AM", "12:00 AM", "12:00 PM", "11:59 PM", "1:05 PM"} {
		minutes, err := ParseClockTime(input)
		require.NoError(t, err)
		assert.Equal(t, input, MinutesToClock(float64(minutes)))
	}
}

func TestNormalizeClockTime(t *testing.T) {
	got, err := NormalizeClockTime("8 pm")
	require.NoError(t, err)
	assert.Equal(t, "8:00 PM", got)

	_, err = NormalizeClockTime("nope")
	assert.ErrorIs(t, err, ErrBadTime)
}

func TestParseCalendarDateIsUTC(t *testing.T) {
	got, err := ParseCalendarDate("2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), got)

	// The reported day must not drift for callers behind UTC.
	name, err := FormatDateString("2024-06-15", DateFormatWeekday)
	require.NoError(t, err)
	assert.Equal(t, "Saturday", name)

	_, err = ParseCalendarDate("06/15/2024")
	assert.ErrorIs(t, err, ErrBadDate)
}

func TestFormatDateString(t *testing.T) {
	tests := []struct {
		format DateFormat
		want   string
	}{
		{DateFormatCalendar, "2024-06-15"},
		{DateFormatLong, "June 15, 2024"},
		{DateFormatWeekday, "Saturday"},
		{DateFormatDay, "15"},
	}
	for _, tc := range tests {
		got, err := FormatDateString("2024-06-15", tc.format)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestParseDateTimeHonoursDST(t *testing.T) {
	// PDT: UTC-7 in June.
	got, err := ParseDateTime("2024-06-15", "9:00 AM", "America/Los_Angeles")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 15, 16, 0, 0, 0, time.UTC), got.UTC())

	// PST: UTC-8 in January, same wall-clock reading.
	got, err = ParseDateTime("2024-01-15", "9:00 AM", "America/Los_Angeles")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 17, 0, 0, 0, time.UTC), got.UTC())
}

func TestParseDateTimeErrors(t *testing.T) {
	_, err := ParseDateTime("2024-06-15", "9:00 AM", "Mars/Olympus")
	assert.ErrorIs(t, err, ErrBadZone)

	_, err = ParseDateTime("not-a-date", "9:00 AM", "UTC")
	assert.ErrorIs(t, err, ErrBadDate)

	_, err = ParseDateTime("2024-06-15", "25:00 XM", "UTC")
	assert.ErrorIs(t, err, ErrBadTime)
}

func TestWeekBoundaries(t *testing.T) {
	loc, err := LoadZone("America/New_York")
	require.NoError(t, err)

	// Wednesday June 12 2024.
	mid := time.Date(2024, 6, 12, 15, 30, 0, 0, loc)
	start := StartOfWeek(mid, loc)
	end := EndOfWeek(mid, loc)

	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Sunday, end.Weekday())
	assert.Equal(t, time.Date(2024, 6, 16, 23, 59, 59, int(999*time.Millisecond), loc), end)

	// A Monday is its own week start; a Sunday belongs to the prior Monday.
	monday := time.Date(2024, 6, 10, 8, 0, 0, 0, loc)
	assert.Equal(t, 10, StartOfWeek(monday, loc).Day())
	sunday := time.Date(2024, 6, 16, 8, 0, 0, 0, loc)
	assert.Equal(t, 10, StartOfWeek(sunday, loc).Day())
}

func TestFormatTime(t *testing.T) {
	instant := time.Date(2024, 6, 15, 16, 0, 0, 0, time.UTC)
	got, err := FormatTime(instant, "America/Los_Angeles")
	require.NoError(t, err)
	assert.Equal(t, "9:00 AM", got)
}
