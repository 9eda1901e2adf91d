package utils

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Sentinel errors for unparsable input. Callers are expected to fall back to
// placeholder display text instead of failing the scheduling pipeline.
var (
	ErrBadDate = errors.New("unparsable date")
	ErrBadTime = errors.New("unparsable time")
	ErrBadZone = errors.New("unknown timezone")
)

// DateFormat enumerates the symbolic date formats the UI layer asks for.
type DateFormat string

const (
	DateFormatCalendar DateFormat = "calendar" // 2024-06-15
	DateFormatLong     DateFormat = "long"     // June 15, 2024
	DateFormatWeekday  DateFormat = "weekday"  // Saturday
	DateFormatDay      DateFormat = "day"      // 15
)

var dateLayouts = map[DateFormat]string{
	DateFormatCalendar: "2006-01-02",
	DateFormatLong:     "January 2, 2006",
	DateFormatWeekday:  "Monday",
	DateFormatDay:      "2",
}

var clockRe = regexp.MustCompile(`^(\d{1,2})(?::(\d{1,2}))?\s*(AM|PM)$`)

// LoadZone resolves an IANA zone identifier. The zone is always explicit; no
// function in this package consults the process-local timezone.
func LoadZone(zone string) (*time.Location, error) {
	if zone == "" {
		return nil, fmt.Errorf("%w: empty zone identifier", ErrBadZone)
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadZone, zone)
	}
	return loc, nil
}

// StartOfWeek returns Monday 00:00:00 of the week containing t, in loc.
// The week boundary is fixed to Monday regardless of locale.
func StartOfWeek(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	offset := (int(local.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	monday := local.AddDate(0, 0, -offset)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, loc)
}

// EndOfWeek returns Sunday 23:59:59.999 of the week containing t, in loc.
func EndOfWeek(t time.Time, loc *time.Location) time.Time {
	return StartOfWeek(t, loc).AddDate(0, 0, 7).Add(-time.Millisecond)
}

// ParseCalendarDate interprets a bare "YYYY-MM-DD" string as a UTC calendar
// date. Bare dates are never read in a local zone: doing so shifts the day for
// callers whose zone sits behind UTC.
func ParseCalendarDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	return t, nil
}

// FormatDate renders an instant in the given zone using a symbolic format.
func FormatDate(t time.Time, format DateFormat, zone string) (string, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return "", err
	}
	layout, ok := dateLayouts[format]
	if !ok {
		return "", fmt.Errorf("%w: unknown format %q", ErrBadDate, format)
	}
	return t.In(loc).Format(layout), nil
}

// FormatDateString renders a bare "YYYY-MM-DD" string in a symbolic format.
// The input is treated as a UTC calendar date, so the reported day never
// drifts with the caller's zone.
func FormatDateString(date string, format DateFormat) (string, error) {
	t, err := ParseCalendarDate(date)
	if err != nil {
		return "", err
	}
	layout, ok := dateLayouts[format]
	if !ok {
		return "", fmt.Errorf("%w: unknown format %q", ErrBadDate, format)
	}
	return t.UTC().Format(layout), nil
}

// ParseClockTime parses a 12-hour wall-clock string like "8:00 AM" into
// minutes from midnight. Markers are case-insensitive and minutes are
// optional ("8 PM"). 12 AM maps to hour 0 and 12 PM stays 12.
func ParseClockTime(s string) (int, error) {
	m := clockRe.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrBadTime, s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrBadTime, s)
	}
	if hour == 12 {
		hour = 0
	}
	if m[3] == "PM" {
		hour += 12
	}
	return hour*60 + minute, nil
}

// MinutesToClock renders minutes-from-midnight as "H:MM AM/PM". Fractional
// minutes are rounded to the nearest whole minute, and hour 0 displays as 12.
func MinutesToClock(minutes float64) string {
	total := int(math.Round(minutes))
	total = ((total % 1440) + 1440) % 1440
	hour := total / 60
	minute := total % 60
	marker := "AM"
	if hour >= 12 {
		marker = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, marker)
}

// FormatTime renders an instant as "H:MM AM/PM" wall-clock time in the zone.
func FormatTime(t time.Time, zone string) (string, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return "", err
	}
	local := t.In(loc)
	return MinutesToClock(float64(local.Hour()*60 + local.Minute())), nil
}

// NormalizeClockTime re-renders a wall-clock string in canonical "H:MM AM/PM"
// form, fixing casing and missing minutes.
func NormalizeClockTime(s string) (string, error) {
	minutes, err := ParseClockTime(s)
	if err != nil {
		return "", err
	}
	return MinutesToClock(float64(minutes)), nil
}

// ParseDateTime combines a "YYYY-MM-DD" calendar date and a wall-clock time
// string into the absolute instant matching that wall-clock reading in the
// given zone. The zone's UTC offset in effect on that date is applied, so DST
// transitions resolve correctly.
func ParseDateTime(date, timeStr, zone string) (time.Time, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return time.Time{}, err
	}
	day, err := ParseCalendarDate(date)
	if err != nil {
		return time.Time{}, err
	}
	minutes, err := ParseClockTime(timeStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, loc), nil
}
