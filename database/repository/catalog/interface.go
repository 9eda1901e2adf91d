package catalogRepo

import "tidybook/models"

// CatalogRepository is read-only access to a housekeeper's service catalog.
type CatalogRepository interface {
	ListOfferings(housekeeperID string) ([]models.ServiceOffering, error)
	GetOfferingsByIDs(housekeeperID string, ids []string) ([]models.ServiceOffering, error)
}
