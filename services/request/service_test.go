package request

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tidybook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSchedulerRepo struct {
	requests map[string]*models.ServiceRequest
	bookings map[string]*models.Booking
}

func newFakeSchedulerRepo() *fakeSchedulerRepo {
	return &fakeSchedulerRepo{
		requests: make(map[string]*models.ServiceRequest),
		bookings: make(map[string]*models.Booking),
	}
}

func (f *fakeSchedulerRepo) CreateBooking(b *models.Booking) error {
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeSchedulerRepo) GetBookingByID(id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking not found")
	}
	copied := *b
	return &copied, nil
}

func (f *fakeSchedulerRepo) UpdateBookingStatus(id string, status models.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return fmt.Errorf("booking with id %s not found", id)
	}
	b.Status = status
	return nil
}

func (f *fakeSchedulerRepo) ListBookingsByDateRange(housekeeperID, startDate, endDate string) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeSchedulerRepo) ListBookingsByClient(clientID string) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeSchedulerRepo) CreateRequest(r *models.ServiceRequest) error {
	copied := *r
	f.requests[r.ID] = &copied
	return nil
}

func (f *fakeSchedulerRepo) GetRequestByID(id string) (*models.ServiceRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, fmt.Errorf("service request not found")
	}
	copied := *r
	return &copied, nil
}

func (f *fakeSchedulerRepo) UpdateRequest(r *models.ServiceRequest) error {
	if _, ok := f.requests[r.ID]; !ok {
		return fmt.Errorf("service request with id %s not found", r.ID)
	}
	copied := *r
	f.requests[r.ID] = &copied
	return nil
}

func (f *fakeSchedulerRepo) ListRequestsByHousekeeper(housekeeperID string, statuses []models.RequestStatus) ([]models.ServiceRequest, error) {
	var out []models.ServiceRequest
	for _, r := range f.requests {
		if r.HousekeeperID == housekeeperID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeSchedulerRepo) ListRequestsByHomeowner(homeownerID string) ([]models.ServiceRequest, error) {
	var out []models.ServiceRequest
	for _, r := range f.requests {
		if r.HomeownerID == homeownerID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeSchedulerRepo) ListOpenRequestsByDateRange(housekeeperID, startDate, endDate string) ([]models.ServiceRequest, error) {
	return nil, nil
}

func (f *fakeSchedulerRepo) ScheduleAcceptedRequest(ctx context.Context, booking *models.Booking, request *models.ServiceRequest) error {
	current, ok := f.requests[request.ID]
	if !ok || current.Status != models.RequestProposedAlternative {
		return fmt.Errorf("request %s is no longer awaiting the proposal", request.ID)
	}
	f.bookings[booking.ID] = booking
	copied := *request
	f.requests[request.ID] = &copied
	return nil
}

type fakeCatalogRepo struct {
	offerings []models.ServiceOffering
}

func (f *fakeCatalogRepo) ListOfferings(housekeeperID string) ([]models.ServiceOffering, error) {
	return f.offerings, nil
}

func (f *fakeCatalogRepo) GetOfferingsByIDs(housekeeperID string, ids []string) ([]models.ServiceOffering, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []models.ServiceOffering
	for _, o := range f.offerings {
		if wanted[o.ID] {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeSettingsRepo struct {
	timezone string
}

func (f *fakeSettingsRepo) GetScheduleSettings(housekeeperID string) (*models.ScheduleSettings, error) {
	return &models.ScheduleSettings{HousekeeperID: housekeeperID, Timezone: f.timezone}, nil
}

func (f *fakeSettingsRepo) SaveScheduleSettings(ctx context.Context, settings *models.ScheduleSettings, profile *models.HousekeeperProfile) error {
	return nil
}

func (f *fakeSettingsRepo) GetProfile(housekeeperID string) (*models.HousekeeperProfile, error) {
	return &models.HousekeeperProfile{ID: housekeeperID}, nil
}

func (f *fakeSettingsRepo) AddTimeOff(exception *models.TimeOffException) error { return nil }

func (f *fakeSettingsRepo) RemoveTimeOff(housekeeperID, date string) error { return nil }

func (f *fakeSettingsRepo) ListTimeOff(housekeeperID, startDate, endDate string) ([]models.TimeOffException, error) {
	return nil, nil
}

type fakeAvailability struct {
	invalidated []string
}

func (f *fakeAvailability) GetSlots(ctx context.Context, housekeeperID, startDate, endDate string) (map[string][]models.Slot, error) {
	return nil, nil
}

func (f *fakeAvailability) Invalidate(ctx context.Context, housekeeperID string) error {
	f.invalidated = append(f.invalidated, housekeeperID)
	return nil
}

type fakeNotifier struct {
	homeowner   []string
	housekeeper []string
}

func (f *fakeNotifier) NotifyHomeowner(ctx context.Context, homeownerID, title, body string, data map[string]string) error {
	f.homeowner = append(f.homeowner, title)
	return nil
}

func (f *fakeNotifier) NotifyHousekeeper(ctx context.Context, housekeeperID, title, body string, data map[string]string) error {
	f.housekeeper = append(f.housekeeper, title)
	return nil
}

func newTestService() (*DefaultRequestService, *fakeSchedulerRepo, *fakeAvailability, *fakeNotifier) {
	repo := newFakeSchedulerRepo()
	availability := &fakeAvailability{}
	notifier := &fakeNotifier{}
	svc := &DefaultRequestService{
		Repo: repo,
		Catalog: &fakeCatalogRepo{offerings: []models.ServiceOffering{
			{ID: "deep-clean", HousekeeperID: "hk-1", Name: "Deep clean", Type: models.ServiceBase, Price: 150, DurationMinutes: 180},
			{ID: "windows", HousekeeperID: "hk-1", Name: "Windows", Type: models.ServiceAddon, Price: 40, DurationMinutes: 60},
		}},
		Settings:     &fakeSettingsRepo{timezone: "America/Los_Angeles"},
		Availability: availability,
		Notifier:     notifier,
	}
	return svc, repo, availability, notifier
}

func validSubmitInput() SubmitInput {
	return SubmitInput{
		HomeownerID:         "ho-1",
		HomeownerName:       "Pat",
		HousekeeperID:       "hk-1",
		BaseServices:        []string{"deep-clean"},
		AddonServices:       []string{"windows"},
		PreferredDate:       "2024-06-10",
		PreferredTimeWindow: "mornings",
		Frequency:           "weekly",
	}
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	svc, repo, _, notifier := newTestService()

	req, err := svc.Submit(context.Background(), validSubmitInput())
	require.NoError(t, err)

	assert.NotEmpty(t, req.ID)
	assert.Equal(t, models.RequestPendingReview, req.Status)
	assert.Equal(t, 190.0, req.EstimatedTotalPrice)
	assert.Nil(t, req.Proposal)

	stored, err := repo.GetRequestByID(req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestPendingReview, stored.Status)
	assert.Equal(t, []string{"New service request"}, notifier.housekeeper)
}

func TestSubmitValidation(t *testing.T) {
	svc, _, _, _ := newTestService()

	tests := []struct {
		name   string
		mutate func(*SubmitInput)
		field  string
	}{
		{"missing homeowner", func(in *SubmitInput) { in.HomeownerID = "" }, "homeownerId"},
		{"missing housekeeper", func(in *SubmitInput) { in.HousekeeperID = "" }, "housekeeperId"},
		{"no base services", func(in *SubmitInput) { in.BaseServices = nil }, "baseServices"},
		{"bad date", func(in *SubmitInput) { in.PreferredDate = "June 10" }, "preferredDate"},
		{"missing window", func(in *SubmitInput) { in.PreferredTimeWindow = "" }, "preferredTimeWindow"},
		{"missing frequency", func(in *SubmitInput) { in.Frequency = "" }, "frequency"},
		{"bad recurring end", func(in *SubmitInput) { in.RecurringEndDate = "soon" }, "recurringEndDate"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := validSubmitInput()
			tc.mutate(&input)
			_, err := svc.Submit(context.Background(), input)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.field, validationErr.Field)
		})
	}
}

func TestProposeAlternative(t *testing.T) {
	svc, _, availability, notifier := newTestService()
	req, err := svc.Submit(context.Background(), validSubmitInput())
	require.NoError(t, err)

	proposal := models.RequestProposal{ProposedDate: "2024-06-12", ProposedTime: "2:00 PM"}
	updated, err := svc.ProposeAlternative(context.Background(), req.ID, proposal)
	require.NoError(t, err)

	assert.Equal(t, models.RequestProposedAlternative, updated.Status)
	require.NotNil(t, updated.Proposal)
	assert.Equal(t, "2024-06-12", updated.Proposal.ProposedDate)
	// Original ask survives for comparison.
	assert.Equal(t, "2024-06-10", updated.PreferredDate)
	assert.Equal(t, "mornings", updated.PreferredTimeWindow)
	assert.Contains(t, availability.invalidated, "hk-1")
	assert.Contains(t, notifier.homeowner, "Alternative time proposed")
}

func TestProposeAlternativeRejectsBadTime(t *testing.T) {
	svc, _, _, _ := newTestService()
	req, err := svc.Submit(context.Background(), validSubmitInput())
	require.NoError(t, err)

	_, err = svc.ProposeAlternative(context.Background(), req.ID, models.RequestProposal{
		ProposedDate: "2024-06-12",
		ProposedTime: "14:00",
	})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestAcceptProposalEmitsBooking(t *testing.T) {
	svc, repo, availability, _ := newTestService()
	req, err := svc.Submit(context.Background(), validSubmitInput())
	require.NoError(t, err)
	_, err = svc.ProposeAlternative(context.Background(), req.ID, models.RequestProposal{
		ProposedDate: "2024-06-12",
		ProposedTime: "2:00 PM",
	})
	require.NoError(t, err)

	updated, booking, err := svc.AcceptProposal(context.Background(), req.ID)
	require.NoError(t, err)

	assert.Equal(t, models.RequestApprovedScheduled, updated.Status)
	assert.Nil(t, updated.Proposal, "proposal must be cleared once settled")
	assert.Equal(t, booking.ID, updated.BookingID)

	require.NotNil(t, booking)
	assert.Equal(t, "2024-06-12", booking.Date)
	// 2:00 PM PDT is 21:00 UTC.
	assert.Equal(t, time.Date(2024, 6, 12, 21, 0, 0, 0, time.UTC), booking.Start.UTC())
	// Durations come from the selected offerings: 180 + 60.
	assert.Equal(t, 240, booking.DurationMinutes)
	assert.Equal(t, booking.Start.Add(240*time.Minute), booking.End)
	assert.Equal(t, models.BookingConfirmed, booking.Status)
	assert.Equal(t, req.ID, booking.OriginalRequestID)
	assert.Equal(t, "ho-1", booking.ClientID)

	stored, err := repo.GetBookingByID(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, stored.Status)
	assert.Contains(t, availability.invalidated, "hk-1")
}

func TestAcceptProposalRequiresProposedState(t *testing.T) {
	svc, repo, _, _ := newTestService()
	req, err := svc.Submit(context.Background(), validSubmitInput())
	require.NoError(t, err)

	_, _, err = svc.AcceptProposal(context.Background(), req.ID)
	var transitionErr *TransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, models.RequestPendingReview, transitionErr.From)
	assert.Empty(t, repo.bookings, "no booking may be written on a rejected transition")
}

func TestDeclineProposalClearsProposal(t *testing.T) {
	svc, _, _, notifier := newTestService()
	req, err := svc.Submit(context.Background(), validSubmitInput())
	require.NoError(t, err)
	_, err = svc.ProposeAlternative(context.Background(), req.ID, models.RequestProposal{
		ProposedDate: "2024-06-12",
		ProposedTime: "2:00 PM",
	})
	require.NoError(t, err)

	updated, err := svc.DeclineProposal(context.Background(), req.ID, "does not work for me")
	require.NoError(t, err)

	assert.Equal(t, models.RequestDeclinedByHomeowner, updated.Status)
	assert.Nil(t, updated.Proposal)
	assert.Equal(t, "does not work for me", updated.DeclineNote)
	assert.Contains(t, notifier.housekeeper, "Proposal declined")
}

func TestCancelByHomeownerFromProposed(t *testing.T) {
	svc, _, _, _ := newTestService()
	req, err := svc.Submit(context.Background(), validSubmitInput())
	require.NoError(t, err)
	_, err = svc.ProposeAlternative(context.Background(), req.ID, models.RequestProposal{
		ProposedDate: "2024-06-12",
		ProposedTime: "2:00 PM",
	})
	require.NoError(t, err)

	updated, err := svc.CancelByHomeowner(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestCancelledByHomeowner, updated.Status)
	assert.Nil(t, updated.Proposal)
}

func TestConfirmThenComplete(t *testing.T) {
	svc, _, _, _ := newTestService()
	req, err := svc.Submit(context.Background(), validSubmitInput())
	require.NoError(t, err)

	confirmed, err := svc.Confirm(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestConfirmedByHousekeeper, confirmed.Status)

	completed, err := svc.Complete(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestCompleted, completed.Status)

	// Completed is terminal.
	_, err = svc.CancelByHomeowner(context.Background(), req.ID)
	var transitionErr *TransitionError
	assert.ErrorAs(t, err, &transitionErr)
}
