package schedule

import (
	"context"
	"testing"

	"tidybook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSettingsRepo records writes so tests can assert that edits never
// persist until Save.
type fakeSettingsRepo struct {
	saved        []*models.ScheduleSettings
	savedProfile []*models.HousekeeperProfile
	settings     *models.ScheduleSettings
	timeOff      []models.TimeOffException
}

func (f *fakeSettingsRepo) GetScheduleSettings(housekeeperID string) (*models.ScheduleSettings, error) {
	if f.settings != nil {
		return f.settings, nil
	}
	return &models.ScheduleSettings{HousekeeperID: housekeeperID}, nil
}

func (f *fakeSettingsRepo) SaveScheduleSettings(ctx context.Context, settings *models.ScheduleSettings, profile *models.HousekeeperProfile) error {
	f.saved = append(f.saved, settings)
	f.savedProfile = append(f.savedProfile, profile)
	return nil
}

func (f *fakeSettingsRepo) GetProfile(housekeeperID string) (*models.HousekeeperProfile, error) {
	return &models.HousekeeperProfile{ID: housekeeperID}, nil
}

func (f *fakeSettingsRepo) AddTimeOff(exception *models.TimeOffException) error {
	f.timeOff = append(f.timeOff, *exception)
	return nil
}

func (f *fakeSettingsRepo) RemoveTimeOff(housekeeperID, date string) error { return nil }

func (f *fakeSettingsRepo) ListTimeOff(housekeeperID, startDate, endDate string) ([]models.TimeOffException, error) {
	return f.timeOff, nil
}

func TestNormalizeWorkingDaysDefaults(t *testing.T) {
	days := NormalizeWorkingDays(nil)

	require.Len(t, days, 7)
	for _, key := range []string{models.Monday, models.Tuesday, models.Wednesday, models.Thursday, models.Friday} {
		day := days[key]
		assert.True(t, day.IsWorking, key)
		assert.Equal(t, 1, day.JobsPerDay, key)
		assert.Equal(t, DefaultStartTime, day.StartTime, key)
		assert.Equal(t, []int{DefaultJobMinutes}, day.JobDurations, key)
		assert.Empty(t, day.BreakDurations, key)
	}
	for _, key := range []string{models.Saturday, models.Sunday} {
		day := days[key]
		assert.False(t, day.IsWorking, key)
		assert.Zero(t, day.JobsPerDay, key)
		assert.Empty(t, day.JobDurations, key)
	}
}

func TestNormalizeWorkingDaysDropsStrayKeys(t *testing.T) {
	raw := map[string]models.WorkingDayTemplate{
		"0":            {IsWorking: true, JobsPerDay: 2},
		"someday":      {IsWorking: true},
		models.Tuesday: {IsWorking: true, JobsPerDay: 2, StartTime: "9:00 AM"},
	}
	days := NormalizeWorkingDays(raw)

	require.Len(t, days, 7)
	assert.NotContains(t, days, "0")
	assert.NotContains(t, days, "someday")
	assert.Equal(t, 2, days[models.Tuesday].JobsPerDay)
	assert.Equal(t, "9:00 AM", days[models.Tuesday].StartTime)
}

func TestNormalizeWorkingDaysRepairsCorruptDay(t *testing.T) {
	raw := map[string]models.WorkingDayTemplate{
		models.Monday: {
			IsWorking:      true,
			JobsPerDay:     9, // over the cap
			StartTime:      "not a time",
			JobDurations:   []int{120},
			BreakDurations: []int{-5},
		},
	}
	days := NormalizeWorkingDays(raw)

	monday := days[models.Monday]
	assert.Equal(t, MaxJobsPerDay, monday.JobsPerDay)
	assert.Equal(t, DefaultStartTime, monday.StartTime)
	assert.Equal(t, []int{120, DefaultJobMinutes, DefaultJobMinutes}, monday.JobDurations)
	assert.Equal(t, []int{DefaultBreakMinutes, DefaultBreakMinutes}, monday.BreakDurations)
}

func TestNormalizeWorkingDaysIdempotent(t *testing.T) {
	once := NormalizeWorkingDays(map[string]models.WorkingDayTemplate{
		models.Friday: {IsWorking: true, JobsPerDay: 3, JobDurations: []int{60, 90, 120}},
	})
	twice := NormalizeWorkingDays(once)
	assert.Equal(t, once, twice)
}

func TestSetJobCountPreservesDurationsByPosition(t *testing.T) {
	store := NewTemplateStore(models.ScheduleSettings{
		WorkingDays: map[string]models.WorkingDayTemplate{
			models.Monday: {
				IsWorking:      true,
				JobsPerDay:     3,
				StartTime:      "8:00 AM",
				JobDurations:   []int{60, 90, 120},
				BreakDurations: []int{30, 45},
			},
		},
	}, nil)

	// Shrinking drops trailing positions only.
	require.NoError(t, store.SetJobCount(models.Monday, 2))
	monday := store.Snapshot().WorkingDays[models.Monday]
	assert.Equal(t, []int{60, 90}, monday.JobDurations)
	assert.Equal(t, []int{30}, monday.BreakDurations)

	// Growing back pads with defaults; the surviving values stay in place.
	require.NoError(t, store.SetJobCount(models.Monday, 3))
	monday = store.Snapshot().WorkingDays[models.Monday]
	assert.Equal(t, []int{60, 90, DefaultJobMinutes}, monday.JobDurations)
	assert.Equal(t, []int{30, DefaultBreakMinutes}, monday.BreakDurations)
}

func TestSetJobCountValidation(t *testing.T) {
	store := NewTemplateStore(models.ScheduleSettings{}, nil)

	assert.Error(t, store.SetJobCount(models.Monday, 0))
	assert.Error(t, store.SetJobCount(models.Monday, MaxJobsPerDay+1))
	assert.Error(t, store.SetJobCount(models.Sunday, 2)) // non-working
	assert.Error(t, store.SetJobCount("someday", 2))
}

func TestSetWorkingClearsAndRestores(t *testing.T) {
	store := NewTemplateStore(models.ScheduleSettings{}, nil)

	require.NoError(t, store.SetWorking(models.Monday, false))
	monday := store.Snapshot().WorkingDays[models.Monday]
	assert.False(t, monday.IsWorking)
	assert.Empty(t, monday.JobDurations)

	require.NoError(t, store.SetWorking(models.Monday, true))
	monday = store.Snapshot().WorkingDays[models.Monday]
	assert.True(t, monday.IsWorking)
	assert.Equal(t, 1, monday.JobsPerDay)
	assert.Equal(t, DefaultStartTime, monday.StartTime)
}

func TestSetStartTimeNormalizes(t *testing.T) {
	store := NewTemplateStore(models.ScheduleSettings{}, nil)

	require.NoError(t, store.SetStartTime(models.Monday, "9 am"))
	assert.Equal(t, "9:00 AM", store.Snapshot().WorkingDays[models.Monday].StartTime)

	assert.Error(t, store.SetStartTime(models.Monday, "25:00"))
	assert.Error(t, store.SetStartTime(models.Sunday, "9:00 AM")) // non-working
}

func TestSetTimezoneValidates(t *testing.T) {
	store := NewTemplateStore(models.ScheduleSettings{}, nil)

	require.NoError(t, store.SetTimezone("America/Chicago"))
	assert.Equal(t, "America/Chicago", store.Snapshot().Timezone)
	assert.Error(t, store.SetTimezone("Mars/Olympus"))
}

func TestEditsDoNotPersistUntilSave(t *testing.T) {
	repo := &fakeSettingsRepo{}
	store := NewTemplateStore(models.ScheduleSettings{HousekeeperID: "hk-1"}, repo)

	require.NoError(t, store.SetWorking(models.Saturday, true))
	require.NoError(t, store.SetJobCount(models.Saturday, 2))
	require.NoError(t, store.SetStartTime(models.Saturday, "10:00 AM"))
	store.SetAutoSendReceipts(true)
	assert.Empty(t, repo.saved, "edits must not write through")

	profile := &models.HousekeeperProfile{ID: "hk-1", DisplayName: "Dana"}
	require.NoError(t, store.Save(context.Background(), profile))

	require.Len(t, repo.saved, 1)
	saved := repo.saved[0]
	assert.Equal(t, "hk-1", saved.HousekeeperID)
	assert.True(t, saved.AutoSendReceipts)
	assert.True(t, saved.WorkingDays[models.Saturday].IsWorking)
	assert.Equal(t, 2, saved.WorkingDays[models.Saturday].JobsPerDay)
	require.Len(t, repo.savedProfile, 1)
	assert.Equal(t, profile, repo.savedProfile[0])
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	store := NewTemplateStore(models.ScheduleSettings{}, nil)
	snap := store.Snapshot()
	snap.WorkingDays[models.Monday] = models.WorkingDayTemplate{}
	snap.WorkingDays[models.Tuesday].JobDurations[0] = 1

	assert.True(t, store.Snapshot().WorkingDays[models.Monday].IsWorking)
	assert.Equal(t, DefaultJobMinutes, store.Snapshot().WorkingDays[models.Tuesday].JobDurations[0])
}
