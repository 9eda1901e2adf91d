package schedule

import (
	"fmt"
	"sort"
	"time"

	"tidybook/models"
	"tidybook/utils"
)

// ScheduledItem is an existing booking or open request projected onto the
// calendar for overlay. Pending requests downgrade overlapping slots to
// pending; confirmed bookings downgrade them to confirmed.
type ScheduledItem struct {
	Start      time.Time
	End        time.Time
	Status     models.SlotStatus // models.SlotPending or models.SlotConfirmed
	BookingID  string
	ClientName string
}

// GenerateSlots derives the calendar for every date in the inclusive range
// from the weekly template, time-off exceptions and existing scheduled items.
// It is pure: callers re-run it wholesale whenever any input changes instead
// of patching previous output, so the persisted documents stay the single
// source of truth.
//
// Days off (template or time-off) yield one unavailable pseudo-slot. Working
// days walk the job durations from the template's start time, inserting break
// slots between consecutive jobs, then overlay scheduled items by open
// interval intersection on instants. A booking does not have to align to a
// slot boundary to claim it.
func GenerateSlots(
	workingDays map[string]models.WorkingDayTemplate,
	timeOffDates map[string]bool,
	existing []ScheduledItem,
	startDate, endDate string,
	zone string,
) (map[string][]models.Slot, error) {
	loc, err := utils.LoadZone(zone)
	if err != nil {
		return nil, err
	}
	first, err := utils.ParseCalendarDate(startDate)
	if err != nil {
		return nil, err
	}
	last, err := utils.ParseCalendarDate(endDate)
	if err != nil {
		return nil, err
	}
	if last.Before(first) {
		return nil, fmt.Errorf("date range end %s precedes start %s", endDate, startDate)
	}

	days := NormalizeWorkingDays(workingDays)

	result := make(map[string][]models.Slot)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")
		template := days[weekdayKey(d.Weekday())]

		if timeOffDates[dateStr] || !template.IsWorking {
			dayStart := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
			dayEnd := dayStart.AddDate(0, 0, 1)
			result[dateStr] = []models.Slot{{
				Start:           dayStart,
				End:             dayEnd,
				DurationMinutes: int(dayEnd.Sub(dayStart).Minutes()),
				Status:          models.SlotUnavailable,
			}}
			continue
		}

		slots, err := walkWorkingDay(template, dateStr, loc)
		if err != nil {
			return nil, fmt.Errorf("generating slots for %s: %w", dateStr, err)
		}
		result[dateStr] = overlayScheduledItems(slots, existing)
	}
	return result, nil
}

func weekdayKey(w time.Weekday) string {
	// models.WeekdayKeys is Monday-first; time.Weekday is Sunday-first.
	return models.WeekdayKeys[(int(w)+6)%7]
}

// walkWorkingDay lays out a working day's job and break slots in order,
// starting at the template's wall-clock start time in the housekeeper's zone.
func walkWorkingDay(template models.WorkingDayTemplate, dateStr string, loc *time.Location) ([]models.Slot, error) {
	cursor, err := utils.ParseDateTime(dateStr, template.StartTime, loc.String())
	if err != nil {
		return nil, err
	}

	var slots []models.Slot
	for i, jobMinutes := range template.JobDurations {
		jobEnd := cursor.Add(time.Duration(jobMinutes) * time.Minute)
		slots = append(slots, models.Slot{
			Start:           cursor,
			End:             jobEnd,
			DurationMinutes: jobMinutes,
			Status:          models.SlotAvailable,
		})
		cursor = jobEnd

		if i < len(template.BreakDurations) {
			breakMinutes := template.BreakDurations[i]
			breakEnd := cursor.Add(time.Duration(breakMinutes) * time.Minute)
			slots = append(slots, models.Slot{
				Start:           cursor,
				End:             breakEnd,
				DurationMinutes: breakMinutes,
				Status:          models.SlotBreak,
			})
			cursor = breakEnd
		}
	}
	return slots, nil
}

// overlayScheduledItems downgrades available slots that intersect an existing
// booking or open request. Intersection is open-interval comparison on
// instants; slot identity plays no part.
func overlayScheduledItems(slots []models.Slot, existing []ScheduledItem) []models.Slot {
	for i := range slots {
		if slots[i].Status != models.SlotAvailable {
			continue
		}
		for _, item := range existing {
			if !slots[i].Start.Before(item.End) || !item.Start.Before(slots[i].End) {
				continue
			}
			// A confirmed booking outranks a pending request on the same slot.
			if slots[i].Status == models.SlotAvailable || item.Status == models.SlotConfirmed {
				slots[i].Status = item.Status
				slots[i].BookingID = item.BookingID
				slots[i].ClientName = item.ClientName
			}
			if item.Status == models.SlotConfirmed {
				break
			}
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Start.Before(slots[j].Start) })
	return slots
}
