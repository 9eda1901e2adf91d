package schedule

import (
	"testing"
	"time"

	"tidybook/models"
	"tidybook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-06-10 is a Monday.
const (
	testMonday   = "2024-06-10"
	testSaturday = "2024-06-15"
)

func twoJobMonday() map[string]models.WorkingDayTemplate {
	return map[string]models.WorkingDayTemplate{
		models.Monday: {
			IsWorking:      true,
			JobsPerDay:     2,
			StartTime:      "8:00 AM",
			JobDurations:   []int{180, 180},
			BreakDurations: []int{90},
		},
	}
}

func mustInstant(t *testing.T, date, clock, zone string) time.Time {
	t.Helper()
	instant, err := utils.ParseDateTime(date, clock, zone)
	require.NoError(t, err)
	return instant
}

func TestGenerateSlotsWalksWorkingDay(t *testing.T) {
	result, err := GenerateSlots(twoJobMonday(), nil, nil, testMonday, testMonday, "UTC")
	require.NoError(t, err)

	slots := result[testMonday]
	require.Len(t, slots, 3)

	assert.Equal(t, models.SlotAvailable, slots[0].Status)
	assert.Equal(t, mustInstant(t, testMonday, "8:00 AM", "UTC"), slots[0].Start)
	assert.Equal(t, mustInstant(t, testMonday, "11:00 AM", "UTC"), slots[0].End)
	assert.Equal(t, 180, slots[0].DurationMinutes)

	assert.Equal(t, models.SlotBreak, slots[1].Status)
	assert.Equal(t, mustInstant(t, testMonday, "11:00 AM", "UTC"), slots[1].Start)
	assert.Equal(t, mustInstant(t, testMonday, "12:30 PM", "UTC"), slots[1].End)
	assert.Equal(t, 90, slots[1].DurationMinutes)

	assert.Equal(t, models.SlotAvailable, slots[2].Status)
	assert.Equal(t, mustInstant(t, testMonday, "12:30 PM", "UTC"), slots[2].Start)
	assert.Equal(t, mustInstant(t, testMonday, "3:30 PM", "UTC"), slots[2].End)
}

func TestGenerateSlotsCountPerJobCount(t *testing.T) {
	for jobs := 1; jobs <= MaxJobsPerDay; jobs++ {
		days := map[string]models.WorkingDayTemplate{
			models.Monday: {IsWorking: true, JobsPerDay: jobs},
		}
		result, err := GenerateSlots(days, nil, nil, testMonday, testMonday, "UTC")
		require.NoError(t, err)

		// n job slots and n-1 break slots.
		assert.Len(t, result[testMonday], 2*jobs-1)
	}
}

func TestGenerateSlotsNonWorkingDay(t *testing.T) {
	result, err := GenerateSlots(twoJobMonday(), nil, nil, testSaturday, testSaturday, "UTC")
	require.NoError(t, err)

	slots := result[testSaturday]
	require.Len(t, slots, 1)
	assert.Equal(t, models.SlotUnavailable, slots[0].Status)
	assert.Equal(t, 1440, slots[0].DurationMinutes)
}

func TestGenerateSlotsTimeOffOverridesTemplate(t *testing.T) {
	timeOff := map[string]bool{testMonday: true}
	result, err := GenerateSlots(twoJobMonday(), timeOff, nil, testMonday, testMonday, "UTC")
	require.NoError(t, err)

	slots := result[testMonday]
	require.Len(t, slots, 1)
	assert.Equal(t, models.SlotUnavailable, slots[0].Status)
}

func TestGenerateSlotsOverlaysMisalignedBooking(t *testing.T) {
	// The booking starts mid-slot; intersection on instants must still claim it.
	booking := ScheduledItem{
		Start:      mustInstant(t, testMonday, "9:30 AM", "UTC"),
		End:        mustInstant(t, testMonday, "10:30 AM", "UTC"),
		Status:     models.SlotConfirmed,
		BookingID:  "bk-1",
		ClientName: "Pat",
	}
	result, err := GenerateSlots(twoJobMonday(), nil, []ScheduledItem{booking}, testMonday, testMonday, "UTC")
	require.NoError(t, err)

	slots := result[testMonday]
	assert.Equal(t, models.SlotConfirmed, slots[0].Status)
	assert.Equal(t, "bk-1", slots[0].BookingID)
	assert.Equal(t, "Pat", slots[0].ClientName)
	assert.Equal(t, models.SlotBreak, slots[1].Status)
	assert.Equal(t, models.SlotAvailable, slots[2].Status)
}

func TestGenerateSlotsAdjacentItemDoesNotClaim(t *testing.T) {
	// Open intervals: an item ending exactly at a slot's start leaves it free.
	item := ScheduledItem{
		Start:  mustInstant(t, testMonday, "7:00 AM", "UTC"),
		End:    mustInstant(t, testMonday, "8:00 AM", "UTC"),
		Status: models.SlotPending,
	}
	result, err := GenerateSlots(twoJobMonday(), nil, []ScheduledItem{item}, testMonday, testMonday, "UTC")
	require.NoError(t, err)

	assert.Equal(t, models.SlotAvailable, result[testMonday][0].Status)
}

func TestGenerateSlotsConfirmedOutranksPending(t *testing.T) {
	pending := ScheduledItem{
		Start:  mustInstant(t, testMonday, "8:00 AM", "UTC"),
		End:    mustInstant(t, testMonday, "9:00 AM", "UTC"),
		Status: models.SlotPending,
	}
	confirmed := ScheduledItem{
		Start:     mustInstant(t, testMonday, "9:00 AM", "UTC"),
		End:       mustInstant(t, testMonday, "10:00 AM", "UTC"),
		Status:    models.SlotConfirmed,
		BookingID: "bk-2",
	}
	result, err := GenerateSlots(twoJobMonday(), nil, []ScheduledItem{pending, confirmed}, testMonday, testMonday, "UTC")
	require.NoError(t, err)

	first := result[testMonday][0]
	assert.Equal(t, models.SlotConfirmed, first.Status)
	assert.Equal(t, "bk-2", first.BookingID)
}

func TestGenerateSlotsUsesHousekeeperZone(t *testing.T) {
	result, err := GenerateSlots(twoJobMonday(), nil, nil, testMonday, testMonday, "America/Los_Angeles")
	require.NoError(t, err)

	// 8:00 AM PDT is 15:00 UTC in June.
	first := result[testMonday][0]
	assert.Equal(t, time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC), first.Start.UTC())
}

func TestGenerateSlotsRangeCoversEveryDate(t *testing.T) {
	result, err := GenerateSlots(twoJobMonday(), nil, nil, testMonday, "2024-06-16", "UTC")
	require.NoError(t, err)

	require.Len(t, result, 7)
	assert.Len(t, result[testMonday], 3)
	for _, date := range []string{"2024-06-11", "2024-06-12", "2024-06-13", "2024-06-14", testSaturday, "2024-06-16"} {
		assert.NotEmpty(t, result[date], date)
	}
}

func TestGenerateSlotsInputValidation(t *testing.T) {
	_, err := GenerateSlots(nil, nil, nil, testMonday, testMonday, "Mars/Olympus")
	assert.ErrorIs(t, err, utils.ErrBadZone)

	_, err = GenerateSlots(nil, nil, nil, "June 10", testMonday, "UTC")
	assert.ErrorIs(t, err, utils.ErrBadDate)

	_, err = GenerateSlots(nil, nil, nil, "2024-06-16", testMonday, "UTC")
	assert.Error(t, err)
}
