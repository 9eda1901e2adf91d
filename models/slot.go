package models

import "time"

// SlotStatus classifies a generated calendar slot.
type SlotStatus string

const (
	SlotAvailable   SlotStatus = "available"
	SlotPending     SlotStatus = "pending"
	SlotConfirmed   SlotStatus = "confirmed"
	SlotBreak       SlotStatus = "break"
	SlotUnavailable SlotStatus = "unavailable"
)

// Slot is a derived calendar entry, never persisted. It is recomputed on demand
// from the weekly template, time-off exceptions and existing bookings/requests.
// The JSON shape matches what the remote slot service returns, so callers can
// consume either source interchangeably.
type Slot struct {
	Start           time.Time  `json:"start"`
	End             time.Time  `json:"end"`
	DurationMinutes int        `json:"durationMinutes"`
	Status          SlotStatus `json:"status"`
	BookingID       string     `json:"bookingId,omitempty"`
	ClientName      string     `json:"clientName,omitempty"`
}
