package schedulerRepo

import (
	"context"
	"fmt"
	"time"

	"tidybook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateRequest inserts a new service request document.
func (repo *MongoSchedulerRepo) CreateRequest(request *models.ServiceRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := repo.requestColl.InsertOne(ctx, request)
	if err != nil {
		return fmt.Errorf("error creating service request: %w", err)
	}
	return nil
}

// GetRequestByID retrieves a service request by its ID.
func (repo *MongoSchedulerRepo) GetRequestByID(requestID string) (*models.ServiceRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var request models.ServiceRequest
	if err := repo.requestColl.FindOne(ctx, bson.M{"id": requestID}).Decode(&request); err != nil {
		return nil, fmt.Errorf("service request not found: %w", err)
	}
	return &request, nil
}

// UpdateRequest replaces a service request document. The full document is
// written so cleared fields (a dropped proposal) are removed from storage.
func (repo *MongoSchedulerRepo) UpdateRequest(request *models.ServiceRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"id": request.ID}
	res, err := repo.requestColl.ReplaceOne(ctx, filter, request)
	if err != nil {
		return fmt.Errorf("error updating service request %s: %w", request.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("service request with id %s not found", request.ID)
	}
	return nil
}

// ListRequestsByHousekeeper returns a housekeeper's requests, optionally
// filtered to a set of statuses, newest first.
func (repo *MongoSchedulerRepo) ListRequestsByHousekeeper(housekeeperID string, statuses []models.RequestStatus) ([]models.ServiceRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"housekeeperId": housekeeperID}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := repo.requestColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching service requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.ServiceRequest
	for cursor.Next(ctx) {
		var r models.ServiceRequest
		if err := cursor.Decode(&r); err != nil {
			return nil, fmt.Errorf("error decoding service request: %w", err)
		}
		requests = append(requests, r)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return requests, nil
}

// ListRequestsByHomeowner returns all requests a homeowner has submitted.
func (repo *MongoSchedulerRepo) ListRequestsByHomeowner(homeownerID string) ([]models.ServiceRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := repo.requestColl.Find(ctx, bson.M{"homeownerId": homeownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching homeowner requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.ServiceRequest
	for cursor.Next(ctx) {
		var r models.ServiceRequest
		if err := cursor.Decode(&r); err != nil {
			return nil, fmt.Errorf("error decoding service request: %w", err)
		}
		requests = append(requests, r)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return requests, nil
}

// ListOpenRequestsByDateRange returns still-open requests targeting a date in
// the range, matching either the homeowner's preferred date or the
// housekeeper's proposed one.
func (repo *MongoSchedulerRepo) ListOpenRequestsByDateRange(housekeeperID, startDate, endDate string) ([]models.ServiceRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dateRange := bson.M{"$gte": startDate, "$lte": endDate}
	filter := bson.M{
		"housekeeperId": housekeeperID,
		"status": bson.M{"$in": []models.RequestStatus{
			models.RequestPendingReview,
			models.RequestProposedAlternative,
		}},
		"$or": []bson.M{
			{"preferredDate": dateRange},
			{"proposal.proposedDate": dateRange},
		},
	}
	cursor, err := repo.requestColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching open requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.ServiceRequest
	for cursor.Next(ctx) {
		var r models.ServiceRequest
		if err := cursor.Decode(&r); err != nil {
			return nil, fmt.Errorf("error decoding service request: %w", err)
		}
		requests = append(requests, r)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return requests, nil
}
