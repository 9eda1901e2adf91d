package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"tidybook/database"
	"tidybook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	offeringColl *mongo.Collection
}

// NewMongoCatalogRepo constructs a new instance of MongoCatalogRepo.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.MongoClient.Database("tidybook")
	return &MongoCatalogRepo{
		offeringColl: db.Collection("service_offerings"),
	}
}

func (repo *MongoCatalogRepo) findOfferings(filter bson.M) ([]models.ServiceOffering, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := repo.offeringColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching service offerings: %w", err)
	}
	defer cursor.Close(ctx)

	var offerings []models.ServiceOffering
	for cursor.Next(ctx) {
		var o models.ServiceOffering
		if err := cursor.Decode(&o); err != nil {
			return nil, fmt.Errorf("error decoding service offering: %w", err)
		}
		offerings = append(offerings, o)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return offerings, nil
}

// ListOfferings returns the full catalog for a housekeeper.
func (repo *MongoCatalogRepo) ListOfferings(housekeeperID string) ([]models.ServiceOffering, error) {
	return repo.findOfferings(bson.M{"housekeeperId": housekeeperID})
}

// GetOfferingsByIDs returns the catalog entries matching the given IDs.
func (repo *MongoCatalogRepo) GetOfferingsByIDs(housekeeperID string, ids []string) ([]models.ServiceOffering, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return repo.findOfferings(bson.M{
		"housekeeperId": housekeeperID,
		"id":            bson.M{"$in": ids},
	})
}
