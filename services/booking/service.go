package booking

import (
	"context"
	"fmt"
	"time"

	"tidybook/config"
	"tidybook/cron"
	schedulerRepo "tidybook/database/repository/scheduler"
	settingsRepo "tidybook/database/repository/settings"
	"tidybook/models"
	"tidybook/services/notification"
	"tidybook/services/schedule"
	"tidybook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateInput is what a housekeeper sends when booking a client directly,
// either for a confirmed request or a walk-in client.
type CreateInput struct {
	HousekeeperID     string   `json:"housekeeperId"`
	ClientID          string   `json:"clientId"`
	ClientName        string   `json:"clientName"`
	Date              string   `json:"date"` // "YYYY-MM-DD"
	StartTime         string   `json:"startTime"`
	DurationMinutes   int      `json:"durationMinutes"`
	BaseServices      []string `json:"baseServices"`
	AddonServices     []string `json:"addonServices"`
	Frequency         string   `json:"frequency"`
	RecurringEndDate  string   `json:"recurringEndDate"`
	OriginalRequestID string   `json:"originalRequestId"`
}

// BookingService manages confirmed appointments. Bookings are never deleted;
// cancellation and completion are status transitions.
type BookingService interface {
	Create(ctx context.Context, input CreateInput) (*models.Booking, error)
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID string) error
	Complete(ctx context.Context, bookingID string) error
	ListForHousekeeper(ctx context.Context, housekeeperID, startDate, endDate string) ([]models.Booking, error)
	ListForClient(ctx context.Context, clientID string) ([]models.Booking, error)
}

type DefaultBookingService struct {
	Repo         schedulerRepo.SchedulerRepository
	Settings     settingsRepo.SettingsRepository
	Availability schedule.AvailabilityService
	Notifier     notification.NotificationService
	Reminders    *cron.ReminderScheduler
}

// Create validates the input, resolves the wall-clock start into an instant
// in the housekeeper's zone and persists the booking as confirmed.
func (s *DefaultBookingService) Create(ctx context.Context, input CreateInput) (*models.Booking, error) {
	if input.HousekeeperID == "" {
		return nil, fmt.Errorf("housekeeperId is required")
	}
	if input.ClientID == "" {
		return nil, fmt.Errorf("clientId is required")
	}
	if _, err := utils.ParseCalendarDate(input.Date); err != nil {
		return nil, fmt.Errorf("%q is not a YYYY-MM-DD date", input.Date)
	}

	zone := s.housekeeperZone(input.HousekeeperID)
	start, err := utils.ParseDateTime(input.Date, input.StartTime, zone)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve %s %s in %s: %w", input.Date, input.StartTime, zone, err)
	}

	duration := input.DurationMinutes
	if duration <= 0 {
		duration = config.AppConfig.DefaultBookingMinutes
	}

	booking := &models.Booking{
		ID:                uuid.New().String(),
		HousekeeperID:     input.HousekeeperID,
		ClientID:          input.ClientID,
		ClientName:        input.ClientName,
		Date:              input.Date,
		Start:             start,
		End:               start.Add(time.Duration(duration) * time.Minute),
		DurationMinutes:   duration,
		BaseServices:      input.BaseServices,
		AddonServices:     input.AddonServices,
		Frequency:         input.Frequency,
		RecurringEndDate:  input.RecurringEndDate,
		Status:            models.BookingConfirmed,
		OriginalRequestID: input.OriginalRequestID,
		CreatedAt:         time.Now(),
	}
	if err := s.Repo.CreateBooking(booking); err != nil {
		return nil, err
	}

	s.invalidateAvailability(ctx, booking.HousekeeperID)
	s.scheduleReminders(booking)
	s.notifyClient(ctx, booking, "Appointment booked",
		fmt.Sprintf("Your cleaning is booked for %s at %s.", booking.Date, input.StartTime))
	return booking, nil
}

func (s *DefaultBookingService) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.Repo.GetBookingByID(bookingID)
}

func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID string) error {
	booking, err := s.Repo.GetBookingByID(bookingID)
	if err != nil {
		return err
	}
	if booking.Status != models.BookingConfirmed {
		return fmt.Errorf("booking %s is %s and cannot be cancelled", bookingID, booking.Status)
	}
	if err := s.Repo.UpdateBookingStatus(bookingID, models.BookingCancelled); err != nil {
		return err
	}
	s.invalidateAvailability(ctx, booking.HousekeeperID)
	s.notifyClient(ctx, booking, "Appointment cancelled",
		fmt.Sprintf("Your cleaning on %s was cancelled.", booking.Date))
	return nil
}

func (s *DefaultBookingService) Complete(ctx context.Context, bookingID string) error {
	booking, err := s.Repo.GetBookingByID(bookingID)
	if err != nil {
		return err
	}
	if booking.Status != models.BookingConfirmed {
		return fmt.Errorf("booking %s is %s and cannot be completed", bookingID, booking.Status)
	}
	if err := s.Repo.UpdateBookingStatus(bookingID, models.BookingCompleted); err != nil {
		return err
	}
	s.invalidateAvailability(ctx, booking.HousekeeperID)
	return nil
}

func (s *DefaultBookingService) ListForHousekeeper(ctx context.Context, housekeeperID, startDate, endDate string) ([]models.Booking, error) {
	if _, err := utils.ParseCalendarDate(startDate); err != nil {
		return nil, fmt.Errorf("%q is not a YYYY-MM-DD date", startDate)
	}
	if _, err := utils.ParseCalendarDate(endDate); err != nil {
		return nil, fmt.Errorf("%q is not a YYYY-MM-DD date", endDate)
	}
	return s.Repo.ListBookingsByDateRange(housekeeperID, startDate, endDate)
}

func (s *DefaultBookingService) ListForClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	return s.Repo.ListBookingsByClient(clientID)
}

func (s *DefaultBookingService) housekeeperZone(housekeeperID string) string {
	settings, err := s.Settings.GetScheduleSettings(housekeeperID)
	if err == nil && settings.Timezone != "" {
		return settings.Timezone
	}
	return config.AppConfig.DefaultTimezone
}

func (s *DefaultBookingService) invalidateAvailability(ctx context.Context, housekeeperID string) {
	if s.Availability == nil {
		return
	}
	if err := s.Availability.Invalidate(ctx, housekeeperID); err != nil {
		utils.GetLogger().Warn("failed to invalidate availability cache",
			zap.String("housekeeperID", housekeeperID), zap.Error(err))
	}
}

func (s *DefaultBookingService) scheduleReminders(booking *models.Booking) {
	if s.Reminders == nil {
		return
	}
	if err := s.Reminders.ScheduleBookingReminders(booking); err != nil {
		utils.GetLogger().Warn("failed to schedule booking reminders",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}
}

func (s *DefaultBookingService) notifyClient(ctx context.Context, booking *models.Booking, title, body string) {
	if s.Notifier == nil {
		return
	}
	data := map[string]string{"bookingId": booking.ID}
	if err := s.Notifier.NotifyHomeowner(ctx, booking.ClientID, title, body, data); err != nil {
		utils.GetLogger().Warn("failed to notify client",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}
}
