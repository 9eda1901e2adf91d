package request

import (
	"context"
	"fmt"
	"time"

	"tidybook/config"
	"tidybook/cron"
	catalogRepo "tidybook/database/repository/catalog"
	schedulerRepo "tidybook/database/repository/scheduler"
	settingsRepo "tidybook/database/repository/settings"
	"tidybook/models"
	"tidybook/services/notification"
	"tidybook/services/schedule"
	"tidybook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitInput is what a homeowner sends when asking for service.
type SubmitInput struct {
	HomeownerID         string   `json:"homeownerId"`
	HomeownerName       string   `json:"homeownerName"`
	HousekeeperID       string   `json:"housekeeperId"`
	BaseServices        []string `json:"baseServices"`
	AddonServices       []string `json:"addonServices"`
	PreferredDate       string   `json:"preferredDate"`
	PreferredTimeWindow string   `json:"preferredTimeWindow"`
	Frequency           string   `json:"frequency"`
	RecurringEndDate    string   `json:"recurringEndDate"`
	Notes               string   `json:"notes"`
}

// RequestService drives a service request through its lifecycle. Every
// mutation validates the (state, action) pair first; illegal pairs come back
// as TransitionError and change nothing.
type RequestService interface {
	Submit(ctx context.Context, input SubmitInput) (*models.ServiceRequest, error)
	GetByID(ctx context.Context, requestID string) (*models.ServiceRequest, error)
	ListForHousekeeper(ctx context.Context, housekeeperID string, statuses []models.RequestStatus) ([]models.ServiceRequest, error)
	ListForHomeowner(ctx context.Context, homeownerID string) ([]models.ServiceRequest, error)

	ProposeAlternative(ctx context.Context, requestID string, proposal models.RequestProposal) (*models.ServiceRequest, error)
	Confirm(ctx context.Context, requestID string) (*models.ServiceRequest, error)
	DeclineByHousekeeper(ctx context.Context, requestID, note string) (*models.ServiceRequest, error)
	AcceptProposal(ctx context.Context, requestID string) (*models.ServiceRequest, *models.Booking, error)
	DeclineProposal(ctx context.Context, requestID, note string) (*models.ServiceRequest, error)
	CancelByHomeowner(ctx context.Context, requestID string) (*models.ServiceRequest, error)
	CancelByHousekeeper(ctx context.Context, requestID string) (*models.ServiceRequest, error)
	Complete(ctx context.Context, requestID string) (*models.ServiceRequest, error)
}

// DefaultRequestService is the production implementation.
type DefaultRequestService struct {
	Repo         schedulerRepo.SchedulerRepository
	Catalog      catalogRepo.CatalogRepository
	Settings     settingsRepo.SettingsRepository
	Availability schedule.AvailabilityService
	Notifier     notification.NotificationService
	Reminders    *cron.ReminderScheduler
}

// Submit validates the input, estimates the total price from the catalog and
// creates the request in pending_housekeeper_review.
func (s *DefaultRequestService) Submit(ctx context.Context, input SubmitInput) (*models.ServiceRequest, error) {
	if input.HomeownerID == "" {
		return nil, newValidationError("homeownerId", "required")
	}
	if input.HousekeeperID == "" {
		return nil, newValidationError("housekeeperId", "required")
	}
	if len(input.BaseServices) == 0 {
		return nil, newValidationError("baseServices", "at least one base service is required")
	}
	if _, err := utils.ParseCalendarDate(input.PreferredDate); err != nil {
		return nil, newValidationError("preferredDate", fmt.Sprintf("%q is not a YYYY-MM-DD date", input.PreferredDate))
	}
	if input.PreferredTimeWindow == "" {
		return nil, newValidationError("preferredTimeWindow", "required")
	}
	if input.Frequency == "" {
		return nil, newValidationError("frequency", "required")
	}
	if input.RecurringEndDate != "" {
		if _, err := utils.ParseCalendarDate(input.RecurringEndDate); err != nil {
			return nil, newValidationError("recurringEndDate", fmt.Sprintf("%q is not a YYYY-MM-DD date", input.RecurringEndDate))
		}
	}

	offerings, err := s.Catalog.GetOfferingsByIDs(input.HousekeeperID, append(append([]string{}, input.BaseServices...), input.AddonServices...))
	if err != nil {
		return nil, fmt.Errorf("failed to load service catalog: %w", err)
	}
	var estimate float64
	for _, o := range offerings {
		estimate += o.Price
	}

	now := time.Now()
	req := &models.ServiceRequest{
		ID:                  uuid.New().String(),
		HomeownerID:         input.HomeownerID,
		HomeownerName:       input.HomeownerName,
		HousekeeperID:       input.HousekeeperID,
		BaseServices:        input.BaseServices,
		AddonServices:       input.AddonServices,
		PreferredDate:       input.PreferredDate,
		PreferredTimeWindow: input.PreferredTimeWindow,
		Frequency:           input.Frequency,
		RecurringEndDate:    input.RecurringEndDate,
		Notes:               input.Notes,
		EstimatedTotalPrice: estimate,
		Status:              models.RequestPendingReview,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.Repo.CreateRequest(req); err != nil {
		return nil, err
	}

	s.invalidateAvailability(ctx, req.HousekeeperID)
	s.notifyHousekeeper(ctx, req.HousekeeperID, "New service request",
		fmt.Sprintf("%s requested a cleaning for %s.", req.HomeownerName, req.PreferredDate), req.ID)
	return req, nil
}

func (s *DefaultRequestService) GetByID(ctx context.Context, requestID string) (*models.ServiceRequest, error) {
	return s.Repo.GetRequestByID(requestID)
}

func (s *DefaultRequestService) ListForHousekeeper(ctx context.Context, housekeeperID string, statuses []models.RequestStatus) ([]models.ServiceRequest, error) {
	return s.Repo.ListRequestsByHousekeeper(housekeeperID, statuses)
}

func (s *DefaultRequestService) ListForHomeowner(ctx context.Context, homeownerID string) ([]models.ServiceRequest, error) {
	return s.Repo.ListRequestsByHomeowner(homeownerID)
}

// transition loads the request, resolves the action against the state
// machine, applies mutate to the copy and persists it.
func (s *DefaultRequestService) transition(ctx context.Context, requestID string, action Action, mutate func(*models.ServiceRequest)) (*models.ServiceRequest, error) {
	req, err := s.Repo.GetRequestByID(requestID)
	if err != nil {
		return nil, err
	}
	next, err := NextStatus(req.Status, action)
	if err != nil {
		return nil, err
	}

	updated := *req
	updated.Status = next
	updated.UpdatedAt = time.Now()
	if mutate != nil {
		mutate(&updated)
	}
	if err := s.Repo.UpdateRequest(&updated); err != nil {
		return nil, err
	}
	s.invalidateAvailability(ctx, updated.HousekeeperID)
	return &updated, nil
}

// ProposeAlternative attaches the housekeeper's counter-offer. The original
// preferred date and time window stay untouched for comparison.
func (s *DefaultRequestService) ProposeAlternative(ctx context.Context, requestID string, proposal models.RequestProposal) (*models.ServiceRequest, error) {
	req, err := s.Repo.GetRequestByID(requestID)
	if err != nil {
		return nil, err
	}
	zone := s.housekeeperZone(req.HousekeeperID)
	if _, err := utils.ParseDateTime(proposal.ProposedDate, proposal.ProposedTime, zone); err != nil {
		return nil, newValidationError("proposal", fmt.Sprintf("cannot resolve %s %s in %s", proposal.ProposedDate, proposal.ProposedTime, zone))
	}

	updated, err := s.transition(ctx, requestID, ActionPropose, func(r *models.ServiceRequest) {
		r.Proposal = &proposal
	})
	if err != nil {
		return nil, err
	}
	s.notifyHomeowner(ctx, updated.HomeownerID, "Alternative time proposed",
		fmt.Sprintf("Your housekeeper proposed %s at %s instead.", proposal.ProposedDate, proposal.ProposedTime), updated.ID)
	return updated, nil
}

// Confirm approves the request as asked, without emitting a booking; the
// housekeeper books the exact slot separately.
func (s *DefaultRequestService) Confirm(ctx context.Context, requestID string) (*models.ServiceRequest, error) {
	updated, err := s.transition(ctx, requestID, ActionConfirm, nil)
	if err != nil {
		return nil, err
	}
	s.notifyHomeowner(ctx, updated.HomeownerID, "Request confirmed",
		fmt.Sprintf("Your request for %s was confirmed.", updated.PreferredDate), updated.ID)
	return updated, nil
}

// DeclineByHousekeeper is terminal for the request.
func (s *DefaultRequestService) DeclineByHousekeeper(ctx context.Context, requestID, note string) (*models.ServiceRequest, error) {
	updated, err := s.transition(ctx, requestID, ActionDeclineByHousekeeper, func(r *models.ServiceRequest) {
		r.DeclineNote = note
	})
	if err != nil {
		return nil, err
	}
	s.notifyHomeowner(ctx, updated.HomeownerID, "Request declined",
		"Your service request was declined.", updated.ID)
	return updated, nil
}

// AcceptProposal is the only path that turns a request into a Booking. It
// resolves the proposal's wall-clock date and time into instants in the
// housekeeper's zone, totals the selected services' durations and writes the
// booking plus the request's terminal update in one transaction.
func (s *DefaultRequestService) AcceptProposal(ctx context.Context, requestID string) (*models.ServiceRequest, *models.Booking, error) {
	req, err := s.Repo.GetRequestByID(requestID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := NextStatus(req.Status, ActionAcceptProposal); err != nil {
		return nil, nil, err
	}
	if req.Proposal == nil {
		return nil, nil, &TransitionError{From: req.Status, Action: ActionAcceptProposal}
	}

	zone := s.housekeeperZone(req.HousekeeperID)
	start, err := utils.ParseDateTime(req.Proposal.ProposedDate, req.Proposal.ProposedTime, zone)
	if err != nil {
		return nil, nil, newValidationError("proposal",
			fmt.Sprintf("cannot resolve %s %s in %s", req.Proposal.ProposedDate, req.Proposal.ProposedTime, zone))
	}

	duration := s.bookingDuration(req)
	frequency := req.Frequency
	if req.Proposal.ProposedFrequency != "" {
		frequency = req.Proposal.ProposedFrequency
	}
	recurringEnd := req.RecurringEndDate
	if req.Proposal.ProposedRecurringEndDate != "" {
		recurringEnd = req.Proposal.ProposedRecurringEndDate
	}

	booking := &models.Booking{
		ID:                uuid.New().String(),
		HousekeeperID:     req.HousekeeperID,
		ClientID:          req.HomeownerID,
		ClientName:        req.HomeownerName,
		Date:              req.Proposal.ProposedDate,
		Start:             start,
		End:               start.Add(time.Duration(duration) * time.Minute),
		DurationMinutes:   duration,
		BaseServices:      req.BaseServices,
		AddonServices:     req.AddonServices,
		Frequency:         frequency,
		RecurringEndDate:  recurringEnd,
		Status:            models.BookingConfirmed,
		OriginalRequestID: req.ID,
		CreatedAt:         time.Now(),
	}

	updated := *req
	updated.Status = models.RequestApprovedScheduled
	updated.BookingID = booking.ID
	updated.Proposal = nil
	updated.UpdatedAt = time.Now()

	if err := s.Repo.ScheduleAcceptedRequest(ctx, booking, &updated); err != nil {
		return nil, nil, err
	}

	s.invalidateAvailability(ctx, req.HousekeeperID)
	s.scheduleReminders(booking)
	s.notifyHousekeeper(ctx, req.HousekeeperID, "Proposal accepted",
		fmt.Sprintf("%s accepted %s at %s.", req.HomeownerName, booking.Date, req.Proposal.ProposedTime), req.ID)
	return &updated, booking, nil
}

// DeclineProposal is the homeowner's terminal rejection of the counter-offer.
func (s *DefaultRequestService) DeclineProposal(ctx context.Context, requestID, note string) (*models.ServiceRequest, error) {
	updated, err := s.transition(ctx, requestID, ActionDeclineProposal, func(r *models.ServiceRequest) {
		r.Proposal = nil
		r.DeclineNote = note
	})
	if err != nil {
		return nil, err
	}
	s.notifyHousekeeper(ctx, updated.HousekeeperID, "Proposal declined",
		"The homeowner declined your proposed time.", updated.ID)
	return updated, nil
}

// CancelByHomeowner is legal only before the request is settled; a booked
// appointment is cancelled through the booking itself.
func (s *DefaultRequestService) CancelByHomeowner(ctx context.Context, requestID string) (*models.ServiceRequest, error) {
	updated, err := s.transition(ctx, requestID, ActionCancelByHomeowner, func(r *models.ServiceRequest) {
		r.Proposal = nil
	})
	if err != nil {
		return nil, err
	}
	s.notifyHousekeeper(ctx, updated.HousekeeperID, "Request cancelled",
		"The homeowner cancelled their service request.", updated.ID)
	return updated, nil
}

func (s *DefaultRequestService) CancelByHousekeeper(ctx context.Context, requestID string) (*models.ServiceRequest, error) {
	updated, err := s.transition(ctx, requestID, ActionCancelByHousekeeper, nil)
	if err != nil {
		return nil, err
	}
	s.notifyHomeowner(ctx, updated.HomeownerID, "Request cancelled",
		"Your service request was cancelled by the housekeeper.", updated.ID)
	return updated, nil
}

func (s *DefaultRequestService) Complete(ctx context.Context, requestID string) (*models.ServiceRequest, error) {
	return s.transition(ctx, requestID, ActionComplete, nil)
}

// bookingDuration totals the selected services' durations, falling back to
// the configured default when the catalog carries no duration data.
func (s *DefaultRequestService) bookingDuration(req *models.ServiceRequest) int {
	ids := append(append([]string{}, req.BaseServices...), req.AddonServices...)
	offerings, err := s.Catalog.GetOfferingsByIDs(req.HousekeeperID, ids)
	if err != nil {
		utils.GetLogger().Warn("failed to load offerings for duration",
			zap.String("requestID", req.ID), zap.Error(err))
		return config.AppConfig.DefaultBookingMinutes
	}
	total := 0
	for _, o := range offerings {
		total += o.DurationMinutes
	}
	if total <= 0 {
		return config.AppConfig.DefaultBookingMinutes
	}
	return total
}

func (s *DefaultRequestService) housekeeperZone(housekeeperID string) string {
	settings, err := s.Settings.GetScheduleSettings(housekeeperID)
	if err == nil && settings.Timezone != "" {
		return settings.Timezone
	}
	return config.AppConfig.DefaultTimezone
}

func (s *DefaultRequestService) invalidateAvailability(ctx context.Context, housekeeperID string) {
	if s.Availability == nil {
		return
	}
	if err := s.Availability.Invalidate(ctx, housekeeperID); err != nil {
		utils.GetLogger().Warn("failed to invalidate availability cache",
			zap.String("housekeeperID", housekeeperID), zap.Error(err))
	}
}

func (s *DefaultRequestService) scheduleReminders(booking *models.Booking) {
	if s.Reminders == nil {
		return
	}
	if err := s.Reminders.ScheduleBookingReminders(booking); err != nil {
		utils.GetLogger().Warn("failed to schedule booking reminders",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}
}

func (s *DefaultRequestService) notifyHomeowner(ctx context.Context, homeownerID, title, body, requestID string) {
	if s.Notifier == nil {
		return
	}
	data := map[string]string{"requestId": requestID}
	if err := s.Notifier.NotifyHomeowner(ctx, homeownerID, title, body, data); err != nil {
		utils.GetLogger().Warn("failed to notify homeowner", zap.String("requestID", requestID), zap.Error(err))
	}
}

func (s *DefaultRequestService) notifyHousekeeper(ctx context.Context, housekeeperID, title, body, requestID string) {
	if s.Notifier == nil {
		return
	}
	data := map[string]string{"requestId": requestID}
	if err := s.Notifier.NotifyHousekeeper(ctx, housekeeperID, title, body, data); err != nil {
		utils.GetLogger().Warn("failed to notify housekeeper", zap.String("requestID", requestID), zap.Error(err))
	}
}
