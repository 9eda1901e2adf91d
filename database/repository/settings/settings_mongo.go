package settingsRepo

import (
	"context"
	"fmt"
	"time"

	"tidybook/database"
	"tidybook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSettingsRepo implements SettingsRepository using MongoDB.
type MongoSettingsRepo struct {
	settingsColl *mongo.Collection
	profileColl  *mongo.Collection
	timeOffColl  *mongo.Collection
}

// NewMongoSettingsRepo constructs a new instance of MongoSettingsRepo.
func NewMongoSettingsRepo() SettingsRepository {
	db := database.MongoClient.Database("tidybook")
	return &MongoSettingsRepo{
		settingsColl: db.Collection("schedule_settings"),
		profileColl:  db.Collection("housekeepers"),
		timeOffColl:  db.Collection("time_off"),
	}
}

// GetScheduleSettings fetches the settings document for a housekeeper. When no
// document exists yet an empty settings value is returned so the schedule
// layer can fill in defaults.
func (repo *MongoSettingsRepo) GetScheduleSettings(housekeeperID string) (*models.ScheduleSettings, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var settings models.ScheduleSettings
	filter := bson.M{"housekeeperId": housekeeperID}
	if err := repo.settingsColl.FindOne(ctx, filter).Decode(&settings); err != nil {
		if err == mongo.ErrNoDocuments {
			return &models.ScheduleSettings{HousekeeperID: housekeeperID}, nil
		}
		return nil, fmt.Errorf("error fetching schedule settings for %s: %w", housekeeperID, err)
	}
	return &settings, nil
}

// SaveScheduleSettings upserts the settings document. When a profile update
// accompanies the save, both writes run inside one Mongo transaction so the
// pair is applied as a single atomic batch.
func (repo *MongoSettingsRepo) SaveScheduleSettings(ctx context.Context, settings *models.ScheduleSettings, profile *models.HousekeeperProfile) error {
	writeSettings := func(sc context.Context) error {
		filter := bson.M{"housekeeperId": settings.HousekeeperID}
		update := bson.M{"$set": settings}
		opts := options.Update().SetUpsert(true)
		if _, err := repo.settingsColl.UpdateOne(sc, filter, update, opts); err != nil {
			return fmt.Errorf("error saving schedule settings: %w", err)
		}
		return nil
	}

	if profile == nil {
		ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return writeSettings(ctxWithTimeout)
	}

	client := repo.settingsColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if err := writeSettings(sc); err != nil {
			return err
		}
		profile.UpdatedAt = time.Now()
		filter := bson.M{"id": profile.ID}
		update := bson.M{"$set": profile}
		opts := options.Update().SetUpsert(true)
		if _, err := repo.profileColl.UpdateOne(sc, filter, update, opts); err != nil {
			return fmt.Errorf("error saving housekeeper profile: %w", err)
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
		return fmt.Errorf("settings transaction failed: %w", err)
	}
	return nil
}

// GetProfile retrieves a housekeeper profile document by ID.
func (repo *MongoSettingsRepo) GetProfile(housekeeperID string) (*models.HousekeeperProfile, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var profile models.HousekeeperProfile
	filter := bson.M{"id": housekeeperID}
	if err := repo.profileColl.FindOne(ctx, filter).Decode(&profile); err != nil {
		return nil, fmt.Errorf("error fetching housekeeper profile %s: %w", housekeeperID, err)
	}
	return &profile, nil
}

// AddTimeOff inserts a time-off document for a single date. The pair
// (housekeeperId, date) is the identity; duplicate adds are collapsed.
func (repo *MongoSettingsRepo) AddTimeOff(exception *models.TimeOffException) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"housekeeperId": exception.HousekeeperID, "date": exception.Date}
	update := bson.M{"$set": exception}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.timeOffColl.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("error adding time off for %s: %w", exception.Date, err)
	}
	return nil
}

// RemoveTimeOff deletes the time-off document for a date.
func (repo *MongoSettingsRepo) RemoveTimeOff(housekeeperID, date string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"housekeeperId": housekeeperID, "date": date}
	if _, err := repo.timeOffColl.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("error removing time off for %s: %w", date, err)
	}
	return nil
}

// ListTimeOff returns the time-off exceptions in the inclusive date range.
// Date keys sort lexicographically, so a plain string range query works.
func (repo *MongoSettingsRepo) ListTimeOff(housekeeperID, startDate, endDate string) ([]models.TimeOffException, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"housekeeperId": housekeeperID,
		"date":          bson.M{"$gte": startDate, "$lte": endDate},
	}
	cursor, err := repo.timeOffColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching time off: %w", err)
	}
	defer cursor.Close(ctx)

	var exceptions []models.TimeOffException
	for cursor.Next(ctx) {
		var e models.TimeOffException
		if err := cursor.Decode(&e); err != nil {
			return nil, fmt.Errorf("error decoding time off: %w", err)
		}
		exceptions = append(exceptions, e)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return exceptions, nil
}
