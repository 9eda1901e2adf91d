package models

import "time"

// TimeOffException marks a single housekeeper-local calendar date as fully
// unavailable, regardless of the weekly template. Presence of the document is
// the whole signal; removing it restores the template for that date.
type TimeOffException struct {
	ID            string    `bson:"id" json:"id"`
	HousekeeperID string    `bson:"housekeeperId" json:"housekeeperId"`
	Date          string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}
