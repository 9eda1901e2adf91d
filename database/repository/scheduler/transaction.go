package schedulerRepo

import (
	"context"
	"fmt"

	"tidybook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ScheduleAcceptedRequest writes the booking created by an accepted proposal
// and the request's move to approved_and_scheduled inside one transaction, so
// a booking never exists without its request pointing at it or vice versa.
func (repo *MongoSchedulerRepo) ScheduleAcceptedRequest(
	ctx context.Context,
	booking *models.Booking,
	request *models.ServiceRequest,
) error {
	client := repo.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := repo.bookingColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}

		filter := bson.M{"id": request.ID, "status": models.RequestProposedAlternative}
		res, err := repo.requestColl.ReplaceOne(sc, filter, request)
		if err != nil {
			return fmt.Errorf("update request failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("request %s is no longer awaiting the proposal", request.ID)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("scheduling transaction failed: %w", err)
	}
	return nil
}
