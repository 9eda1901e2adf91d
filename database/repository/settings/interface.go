package settingsRepo

import (
	"context"

	"tidybook/models"
)

// SettingsRepository defines data access for the housekeeper's schedule
// settings document, profile document and per-date time-off documents.
type SettingsRepository interface {
	// GetScheduleSettings retrieves the raw settings document. A housekeeper
	// with no saved settings yet gets an empty document (not an error); the
	// schedule layer normalizes it into a valid template.
	GetScheduleSettings(housekeeperID string) (*models.ScheduleSettings, error)
	// SaveScheduleSettings persists the settings document and, when profile is
	// non-nil, the profile document in the same transaction.
	SaveScheduleSettings(ctx context.Context, settings *models.ScheduleSettings, profile *models.HousekeeperProfile) error
	GetProfile(housekeeperID string) (*models.HousekeeperProfile, error)

	AddTimeOff(exception *models.TimeOffException) error
	RemoveTimeOff(housekeeperID, date string) error
	// ListTimeOff returns exceptions with startDate <= date <= endDate.
	ListTimeOff(housekeeperID, startDate, endDate string) ([]models.TimeOffException, error)
}
