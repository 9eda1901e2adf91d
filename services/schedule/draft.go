package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	settingsRepo "tidybook/database/repository/settings"
	"tidybook/models"
	"tidybook/utils"
)

// DraftService holds in-progress schedule edits in Redis so individual field
// changes never touch the settings document. Only an explicit save persists,
// handing the normalized snapshot to storage in one batch.
type DraftService struct {
	Settings settingsRepo.SettingsRepository
	TTL      time.Duration
}

func draftKey(housekeeperID string) string {
	return "scheduledraft:" + housekeeperID
}

// GetDraft returns the housekeeper's working copy, creating one from the
// persisted settings when no draft exists yet.
func (s *DraftService) GetDraft(ctx context.Context, housekeeperID string) (*models.ScheduleSettings, error) {
	cacheClient := utils.GetCacheClient()

	if data, err := cacheClient.Get(ctx, draftKey(housekeeperID)).Result(); err == nil {
		var draft models.ScheduleSettings
		if err := json.Unmarshal([]byte(data), &draft); err == nil {
			return &draft, nil
		}
	}

	persisted, err := s.Settings.GetScheduleSettings(housekeeperID)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule settings: %w", err)
	}
	draft := NewTemplateStore(*persisted, s.Settings).Snapshot()
	if err := s.putDraft(ctx, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *DraftService) putDraft(ctx context.Context, draft *models.ScheduleSettings) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule draft: %w", err)
	}
	if err := utils.GetCacheClient().Set(ctx, draftKey(draft.HousekeeperID), data, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store schedule draft: %w", err)
	}
	return nil
}

// edit loads the draft, applies one mutation through the template store and
// writes the draft back.
func (s *DraftService) edit(ctx context.Context, housekeeperID string, apply func(*TemplateStore) error) (*models.ScheduleSettings, error) {
	draft, err := s.GetDraft(ctx, housekeeperID)
	if err != nil {
		return nil, err
	}
	store := NewTemplateStore(*draft, s.Settings)
	if err := apply(store); err != nil {
		return nil, err
	}
	updated := store.Snapshot()
	if err := s.putDraft(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetWorking toggles a weekday on the draft.
func (s *DraftService) SetWorking(ctx context.Context, housekeeperID, day string, working bool) (*models.ScheduleSettings, error) {
	return s.edit(ctx, housekeeperID, func(store *TemplateStore) error {
		return store.SetWorking(day, working)
	})
}

// SetJobCount resizes a weekday's job count on the draft.
func (s *DraftService) SetJobCount(ctx context.Context, housekeeperID, day string, n int) (*models.ScheduleSettings, error) {
	return s.edit(ctx, housekeeperID, func(store *TemplateStore) error {
		return store.SetJobCount(day, n)
	})
}

// SetStartTime updates a weekday's start time on the draft.
func (s *DraftService) SetStartTime(ctx context.Context, housekeeperID, day, wallClock string) (*models.ScheduleSettings, error) {
	return s.edit(ctx, housekeeperID, func(store *TemplateStore) error {
		return store.SetStartTime(day, wallClock)
	})
}

// SetPreferences updates the receipts flag and timezone on the draft.
func (s *DraftService) SetPreferences(ctx context.Context, housekeeperID string, autoSendReceipts bool, timezone string) (*models.ScheduleSettings, error) {
	return s.edit(ctx, housekeeperID, func(store *TemplateStore) error {
		store.SetAutoSendReceipts(autoSendReceipts)
		if timezone != "" {
			return store.SetTimezone(timezone)
		}
		return nil
	})
}

// Save persists the draft through the template store's single write boundary,
// optionally batching a profile update into the same transaction, then drops
// the draft.
func (s *DraftService) Save(ctx context.Context, housekeeperID string, profile *models.HousekeeperProfile) (*models.ScheduleSettings, error) {
	draft, err := s.GetDraft(ctx, housekeeperID)
	if err != nil {
		return nil, err
	}
	store := NewTemplateStore(*draft, s.Settings)
	if err := store.Save(ctx, profile); err != nil {
		return nil, err
	}
	utils.GetCacheClient().Del(ctx, draftKey(housekeeperID))
	saved := store.Snapshot()
	return &saved, nil
}

// Discard throws away the draft without persisting.
func (s *DraftService) Discard(ctx context.Context, housekeeperID string) error {
	if err := utils.GetCacheClient().Del(ctx, draftKey(housekeeperID)).Err(); err != nil {
		return fmt.Errorf("failed to discard schedule draft: %w", err)
	}
	return nil
}
