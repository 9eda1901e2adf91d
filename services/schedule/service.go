package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tidybook/config"
	schedulerRepo "tidybook/database/repository/scheduler"
	settingsRepo "tidybook/database/repository/settings"
	"tidybook/models"
	"tidybook/utils"

	"go.uber.org/zap"
)

// AvailabilityService computes the calendar a homeowner sees when picking a
// slot. The local computation is advisory: when a remote authoritative slot
// service is configured its answer wins, and the final conflict check always
// happens server-side at booking time.
type AvailabilityService interface {
	GetSlots(ctx context.Context, housekeeperID, startDate, endDate string) (map[string][]models.Slot, error)
	Invalidate(ctx context.Context, housekeeperID string) error
}

// DefaultAvailabilityService implements AvailabilityService with a Redis
// read-through cache over the remote service or the local slot generator.
type DefaultAvailabilityService struct {
	Settings  settingsRepo.SettingsRepository
	Scheduler schedulerRepo.SchedulerRepository
	Remote    RemoteSlotClient // nil disables the remote source
	CacheTTL  time.Duration
}

func slotCacheKey(housekeeperID, startDate, endDate string) string {
	return fmt.Sprintf("slots:%s:%s:%s", housekeeperID, startDate, endDate)
}

// GetSlots returns the slot map for the date range, preferring cache, then
// the authoritative remote service, then local generation.
func (s *DefaultAvailabilityService) GetSlots(ctx context.Context, housekeeperID, startDate, endDate string) (map[string][]models.Slot, error) {
	logger := utils.GetLogger()
	cacheClient := utils.GetCacheClient()
	key := slotCacheKey(housekeeperID, startDate, endDate)

	if cached, err := cacheClient.Get(ctx, key).Result(); err == nil {
		var slots map[string][]models.Slot
		if err := json.Unmarshal([]byte(cached), &slots); err == nil {
			return slots, nil
		}
		// Poisoned cache entry; fall through to recompute.
		cacheClient.Del(ctx, key)
	}

	slots, err := s.computeSlots(ctx, housekeeperID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(slots); err == nil {
		if err := cacheClient.Set(ctx, key, data, s.CacheTTL).Err(); err != nil {
			logger.Warn("failed to cache availability", zap.String("housekeeperID", housekeeperID), zap.Error(err))
		}
	}
	return slots, nil
}

func (s *DefaultAvailabilityService) computeSlots(ctx context.Context, housekeeperID, startDate, endDate string) (map[string][]models.Slot, error) {
	logger := utils.GetLogger()

	if s.Remote != nil {
		slots, err := s.Remote.FetchSlots(ctx, housekeeperID, startDate, endDate)
		if err == nil {
			return slots, nil
		}
		logger.Warn("remote slot service unavailable, computing locally",
			zap.String("housekeeperID", housekeeperID), zap.Error(err))
	}

	settings, err := s.Settings.GetScheduleSettings(housekeeperID)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule settings: %w", err)
	}
	zone := settings.Timezone
	if zone == "" {
		zone = config.AppConfig.DefaultTimezone
	}

	timeOff, err := s.Settings.ListTimeOff(housekeeperID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load time off: %w", err)
	}
	timeOffDates := make(map[string]bool, len(timeOff))
	for _, e := range timeOff {
		timeOffDates[e.Date] = true
	}

	existing, err := s.loadScheduledItems(housekeeperID, startDate, endDate, zone)
	if err != nil {
		return nil, err
	}

	return GenerateSlots(settings.WorkingDays, timeOffDates, existing, startDate, endDate, zone)
}

// loadScheduledItems projects confirmed bookings and still-open requests in
// the range onto instant intervals for the overlay step.
func (s *DefaultAvailabilityService) loadScheduledItems(housekeeperID, startDate, endDate, zone string) ([]ScheduledItem, error) {
	logger := utils.GetLogger()

	bookings, err := s.Scheduler.ListBookingsByDateRange(housekeeperID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	var items []ScheduledItem
	for _, b := range bookings {
		if b.Status != models.BookingConfirmed {
			continue
		}
		items = append(items, ScheduledItem{
			Start:      b.Start,
			End:        b.End,
			Status:     models.SlotConfirmed,
			BookingID:  b.ID,
			ClientName: b.ClientName,
		})
	}

	requests, err := s.Scheduler.ListOpenRequestsByDateRange(housekeeperID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load open requests: %w", err)
	}
	for _, r := range requests {
		item, ok := requestInterval(r, zone)
		if !ok {
			// Requests with a fuzzy time window ("mornings") have no exact
			// interval yet and cannot block a specific slot.
			logger.Debug("skipping request without resolvable interval", zap.String("requestID", r.ID))
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// requestInterval resolves a request's target instant range. The proposed
// date/time wins over the original preference once a proposal exists.
func requestInterval(r models.ServiceRequest, zone string) (ScheduledItem, bool) {
	date, clock := r.PreferredDate, r.PreferredTimeWindow
	if r.Proposal != nil {
		date, clock = r.Proposal.ProposedDate, r.Proposal.ProposedTime
	}
	start, err := utils.ParseDateTime(date, clock, zone)
	if err != nil {
		return ScheduledItem{}, false
	}
	duration := time.Duration(config.AppConfig.DefaultBookingMinutes) * time.Minute
	return ScheduledItem{
		Start:      start,
		End:        start.Add(duration),
		Status:     models.SlotPending,
		ClientName: r.HomeownerName,
	}, true
}

// Invalidate drops every cached slot range for a housekeeper. Callers invoke
// it after any mutation that can change the calendar, then re-fetch.
func (s *DefaultAvailabilityService) Invalidate(ctx context.Context, housekeeperID string) error {
	cacheClient := utils.GetCacheClient()
	keys, err := cacheClient.Keys(ctx, fmt.Sprintf("slots:%s:*", housekeeperID)).Result()
	if err != nil {
		return fmt.Errorf("failed to scan availability cache: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := cacheClient.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate availability cache: %w", err)
	}
	return nil
}
