package schedule

import (
	"context"
	"fmt"

	settingsRepo "tidybook/database/repository/settings"
	"tidybook/models"
	"tidybook/utils"
)

// Default durations used to heal missing template data.
const (
	DefaultJobMinutes   = 180
	DefaultBreakMinutes = 90
	DefaultStartTime    = "8:00 AM"

	MaxJobsPerDay = 3
)

// NormalizeWorkingDays repairs a possibly missing or corrupted working-days
// map into one that satisfies the template invariants: exactly the seven
// weekday keys, weekdays default to working and weekends to off, duration
// arrays sized to the job count with defaults filling the gaps. Stray keys
// leaked by older schema versions are dropped. The function is idempotent.
func NormalizeWorkingDays(raw map[string]models.WorkingDayTemplate) map[string]models.WorkingDayTemplate {
	normalized := make(map[string]models.WorkingDayTemplate, len(models.WeekdayKeys))
	for _, key := range models.WeekdayKeys {
		day, present := raw[key]
		if !present {
			day = models.WorkingDayTemplate{IsWorking: key != models.Saturday && key != models.Sunday}
		}
		normalized[key] = normalizeDay(day)
	}
	return normalized
}

func normalizeDay(day models.WorkingDayTemplate) models.WorkingDayTemplate {
	if !day.IsWorking {
		return models.WorkingDayTemplate{IsWorking: false}
	}

	jobs := day.JobsPerDay
	if jobs < 1 {
		jobs = 1
	}
	if jobs > MaxJobsPerDay {
		jobs = MaxJobsPerDay
	}

	startTime, err := utils.NormalizeClockTime(day.StartTime)
	if err != nil {
		startTime = DefaultStartTime
	}

	return models.WorkingDayTemplate{
		IsWorking:      true,
		JobsPerDay:     jobs,
		StartTime:      startTime,
		JobDurations:   resizeDurations(day.JobDurations, jobs, DefaultJobMinutes),
		BreakDurations: resizeDurations(day.BreakDurations, jobs-1, DefaultBreakMinutes),
	}
}

// resizeDurations sizes a duration list to n entries, preserving existing
// positive values by position and padding with the default.
func resizeDurations(existing []int, n int, defaultMinutes int) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, n)
	for i := range out {
		if i < len(existing) && existing[i] > 0 {
			out[i] = existing[i]
		} else {
			out[i] = defaultMinutes
		}
	}
	return out
}

// TemplateStore holds a housekeeper's schedule settings in memory while they
// are being edited. Every mutation goes through a named method and nothing is
// persisted until Save hands a normalized snapshot to the settings repository.
type TemplateStore struct {
	settings models.ScheduleSettings
	repo     settingsRepo.SettingsRepository
}

// NewTemplateStore wraps raw settings in a store, normalizing on the way in
// so no caller ever sees an invariant-violating template.
func NewTemplateStore(settings models.ScheduleSettings, repo settingsRepo.SettingsRepository) *TemplateStore {
	settings.WorkingDays = NormalizeWorkingDays(settings.WorkingDays)
	return &TemplateStore{settings: settings, repo: repo}
}

// Snapshot returns a deep copy of the current normalized settings.
func (s *TemplateStore) Snapshot() models.ScheduleSettings {
	snapshot := s.settings
	snapshot.WorkingDays = make(map[string]models.WorkingDayTemplate, len(s.settings.WorkingDays))
	for key, day := range s.settings.WorkingDays {
		day.JobDurations = append([]int(nil), day.JobDurations...)
		day.BreakDurations = append([]int(nil), day.BreakDurations...)
		snapshot.WorkingDays[key] = day
	}
	return snapshot
}

func (s *TemplateStore) day(dayKey string) (models.WorkingDayTemplate, error) {
	day, ok := s.settings.WorkingDays[dayKey]
	if !ok {
		return models.WorkingDayTemplate{}, fmt.Errorf("unknown weekday %q", dayKey)
	}
	return day, nil
}

// SetWorking toggles whether the housekeeper works on the given weekday.
// Turning a day off clears its numeric fields; turning it on fills defaults.
func (s *TemplateStore) SetWorking(dayKey string, working bool) error {
	day, err := s.day(dayKey)
	if err != nil {
		return err
	}
	day.IsWorking = working
	s.settings.WorkingDays[dayKey] = normalizeDay(day)
	return nil
}

// SetJobCount resizes the day's job and break duration lists to match n jobs,
// preserving configured durations by position and padding new slots with the
// defaults. Positions beyond the new count are dropped, nothing else moves.
func (s *TemplateStore) SetJobCount(dayKey string, n int) error {
	day, err := s.day(dayKey)
	if err != nil {
		return err
	}
	if !day.IsWorking {
		return fmt.Errorf("cannot set job count on non-working day %q", dayKey)
	}
	if n < 1 || n > MaxJobsPerDay {
		return fmt.Errorf("job count must be between 1 and %d, got %d", MaxJobsPerDay, n)
	}
	day.JobsPerDay = n
	day.JobDurations = resizeDurations(day.JobDurations, n, DefaultJobMinutes)
	day.BreakDurations = resizeDurations(day.BreakDurations, n-1, DefaultBreakMinutes)
	s.settings.WorkingDays[dayKey] = day
	return nil
}

// SetStartTime sets the wall-clock start of the day's first job.
func (s *TemplateStore) SetStartTime(dayKey string, wallClock string) error {
	day, err := s.day(dayKey)
	if err != nil {
		return err
	}
	if !day.IsWorking {
		return fmt.Errorf("cannot set start time on non-working day %q", dayKey)
	}
	normalized, err := utils.NormalizeClockTime(wallClock)
	if err != nil {
		return fmt.Errorf("invalid start time %q: %w", wallClock, err)
	}
	day.StartTime = normalized
	s.settings.WorkingDays[dayKey] = day
	return nil
}

// SetAutoSendReceipts toggles the receipts flag on the settings document.
func (s *TemplateStore) SetAutoSendReceipts(enabled bool) {
	s.settings.AutoSendReceipts = enabled
}

// SetTimezone records the housekeeper's IANA zone after validating it.
func (s *TemplateStore) SetTimezone(zone string) error {
	if _, err := utils.LoadZone(zone); err != nil {
		return err
	}
	s.settings.Timezone = zone
	return nil
}

// Save persists a normalized snapshot through the settings repository,
// optionally alongside a profile update in the same atomic batch. Nothing in
// the store auto-persists; this is the single write boundary.
func (s *TemplateStore) Save(ctx context.Context, profile *models.HousekeeperProfile) error {
	snapshot := s.Snapshot()
	snapshot.WorkingDays = NormalizeWorkingDays(snapshot.WorkingDays)
	if err := s.repo.SaveScheduleSettings(ctx, &snapshot, profile); err != nil {
		return fmt.Errorf("failed to save schedule settings: %w", err)
	}
	return nil
}
