package models

import "time"

// BookingStatus is the lifecycle state of a confirmed booking.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
	BookingRejected  BookingStatus = "rejected"
)

// Booking is a time-exact appointment on the housekeeper's schedule. It is
// created exactly once, either directly by the housekeeper or when a homeowner
// accepts a proposed alternative (OriginalRequestID links back in that case).
type Booking struct {
	ID                string        `bson:"id" json:"id"`
	HousekeeperID     string        `bson:"housekeeperId" json:"housekeeperId"`
	ClientID          string        `bson:"clientId" json:"clientId"`
	ClientName        string        `bson:"clientName,omitempty" json:"clientName,omitempty"`
	Date              string        `bson:"date" json:"date"` // housekeeper-local "YYYY-MM-DD", range-query key
	Start             time.Time     `bson:"start" json:"start"`
	End               time.Time     `bson:"end" json:"end"`
	DurationMinutes   int           `bson:"durationMinutes" json:"durationMinutes"`
	BaseServices      []string      `bson:"baseServices" json:"baseServices"`
	AddonServices     []string      `bson:"addonServices,omitempty" json:"addonServices,omitempty"`
	Frequency         string        `bson:"frequency" json:"frequency"`
	RecurringEndDate  string        `bson:"recurringEndDate,omitempty" json:"recurringEndDate,omitempty"`
	Status            BookingStatus `bson:"status" json:"status"`
	OriginalRequestID string        `bson:"originalRequestId,omitempty" json:"originalRequestId,omitempty"`
	CreatedAt         time.Time     `bson:"createdAt" json:"createdAt"`
}
