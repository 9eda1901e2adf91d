package schedulerRepo

import (
	"context"

	"tidybook/models"
)

// SchedulerRepository defines data access for bookings and service requests.
// Date-range methods take "YYYY-MM-DD" strings; date keys sort
// lexicographically so ranges are plain string comparisons.
type SchedulerRepository interface {
	CreateBooking(booking *models.Booking) error
	GetBookingByID(bookingID string) (*models.Booking, error)
	UpdateBookingStatus(bookingID string, status models.BookingStatus) error
	ListBookingsByDateRange(housekeeperID, startDate, endDate string) ([]models.Booking, error)
	ListBookingsByClient(clientID string) ([]models.Booking, error)

	CreateRequest(request *models.ServiceRequest) error
	GetRequestByID(requestID string) (*models.ServiceRequest, error)
	UpdateRequest(request *models.ServiceRequest) error
	ListRequestsByHousekeeper(housekeeperID string, statuses []models.RequestStatus) ([]models.ServiceRequest, error)
	ListRequestsByHomeowner(homeownerID string) ([]models.ServiceRequest, error)
	// ListOpenRequestsByDateRange returns requests still awaiting an outcome
	// whose preferred or proposed date falls inside the range. The slot
	// generator overlays these as pending.
	ListOpenRequestsByDateRange(housekeeperID, startDate, endDate string) ([]models.ServiceRequest, error)

	// ScheduleAcceptedRequest persists the booking emitted by an accepted
	// proposal and the request's terminal update in one transaction.
	ScheduleAcceptedRequest(ctx context.Context, booking *models.Booking, request *models.ServiceRequest) error
}
