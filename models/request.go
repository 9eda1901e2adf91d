package models

import "time"

// RequestStatus is the lifecycle state of a service request.
type RequestStatus string

const (
	RequestPendingReview          RequestStatus = "pending_housekeeper_review"
	RequestProposedAlternative    RequestStatus = "housekeeper_proposed_alternative"
	RequestApprovedScheduled      RequestStatus = "approved_and_scheduled"
	RequestConfirmedByHousekeeper RequestStatus = "confirmed_by_housekeeper"
	RequestDeclinedByHomeowner    RequestStatus = "declined_by_homeowner"
	RequestDeclinedByHousekeeper  RequestStatus = "declined_by_housekeeper"
	RequestCancelledByHomeowner   RequestStatus = "cancelled_by_homeowner"
	RequestCancelledByHousekeeper RequestStatus = "cancelled_by_housekeeper"
	RequestCompleted              RequestStatus = "completed"
)

// RequestProposal is the housekeeper's counter-offer to a service request.
// It exists only while the request status is housekeeper_proposed_alternative.
type RequestProposal struct {
	ProposedDate             string `bson:"proposedDate" json:"proposedDate"` // "YYYY-MM-DD"
	ProposedTime             string `bson:"proposedTime" json:"proposedTime"` // e.g. "2:00 PM"
	ProposedFrequency        string `bson:"proposedFrequency,omitempty" json:"proposedFrequency,omitempty"`
	ProposedRecurringEndDate string `bson:"proposedRecurringEndDate,omitempty" json:"proposedRecurringEndDate,omitempty"`
	HousekeeperNotes         string `bson:"housekeeperNotes,omitempty" json:"housekeeperNotes,omitempty"`
}

// ServiceRequest is a homeowner's ask for service. It is never deleted; every
// outcome (decline, cancel, schedule) is a status transition. The original
// PreferredDate/PreferredTimeWindow are kept unmodified even after the
// housekeeper proposes an alternative, for comparison on the client side.
type ServiceRequest struct {
	ID                  string           `bson:"id" json:"id"`
	HomeownerID         string           `bson:"homeownerId" json:"homeownerId"`
	HomeownerName       string           `bson:"homeownerName,omitempty" json:"homeownerName,omitempty"`
	HousekeeperID       string           `bson:"housekeeperId" json:"housekeeperId"`
	BaseServices        []string         `bson:"baseServices" json:"baseServices"` // catalog offering IDs
	AddonServices       []string         `bson:"addonServices,omitempty" json:"addonServices,omitempty"`
	PreferredDate       string           `bson:"preferredDate" json:"preferredDate"` // "YYYY-MM-DD"
	PreferredTimeWindow string           `bson:"preferredTimeWindow" json:"preferredTimeWindow"`
	Frequency           string           `bson:"frequency" json:"frequency"` // e.g. "one_time", "weekly", "biweekly"
	RecurringEndDate    string           `bson:"recurringEndDate,omitempty" json:"recurringEndDate,omitempty"`
	Notes               string           `bson:"notes,omitempty" json:"notes,omitempty"`
	EstimatedTotalPrice float64          `bson:"estimatedTotalPrice" json:"estimatedTotalPrice"`
	Status              RequestStatus    `bson:"status" json:"status"`
	Proposal            *RequestProposal `bson:"proposal,omitempty" json:"proposal,omitempty"` // non-nil only while proposed
	BookingID           string           `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	DeclineNote         string           `bson:"declineNote,omitempty" json:"declineNote,omitempty"`
	CreatedAt           time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time        `bson:"updatedAt" json:"updatedAt"`
}
