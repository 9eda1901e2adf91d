package models

// ServiceType distinguishes base cleans from add-on services.
type ServiceType string

const (
	ServiceBase  ServiceType = "base"
	ServiceAddon ServiceType = "addon"
)

// ServiceOffering is one entry in a housekeeper's read-only service catalog.
type ServiceOffering struct {
	ID              string      `bson:"id" json:"id"`
	HousekeeperID   string      `bson:"housekeeperId" json:"housekeeperId"`
	Name            string      `bson:"name" json:"name"`
	Type            ServiceType `bson:"type" json:"type"`
	Price           float64     `bson:"price" json:"price"`
	DurationMinutes int         `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"` // 0 when unknown
}
