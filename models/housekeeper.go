package models

import "time"

// HousekeeperProfile is the housekeeper's public profile document. Identity
// and credentials live in the external auth system; this holds display data
// that is saved together with schedule settings in one atomic batch.
type HousekeeperProfile struct {
	ID          string    `bson:"id" json:"id"`
	DisplayName string    `bson:"displayName" json:"displayName"`
	Phone       string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Bio         string    `bson:"bio,omitempty" json:"bio,omitempty"`
	ServiceArea string    `bson:"serviceArea,omitempty" json:"serviceArea,omitempty"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
