package spotRepo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"parkwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSpotRepo implements SpotRepository using MongoDB.
type MongoSpotRepo struct {
	coll *mongo.Collection
}

// NewMongoSpotRepo creates a new instance of SpotRepository using MongoDB.
func NewMongoSpotRepo(db *mongo.Database) SpotRepository {
	repo := &MongoSpotRepo{coll: db.Collection("spots")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
// The compound slot index backs duplicate rejection on creation.
func (r *MongoSpotRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{
			{Key: "slotNumber", Value: 1},
			{Key: "floor", Value: 1},
			{Key: "section", Value: 1},
		}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new spot document.
func (r *MongoSpotRepo) Create(spot *models.ParkingSpot) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	spot.CreatedAt = now
	spot.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, spot)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateSpot
		}
		return fmt.Errorf("failed to create spot: %w", err)
	}
	return nil
}

// GetByID retrieves a spot by its unique ID. Returns nil if no spot exists.
func (r *MongoSpotRepo) GetByID(id string) (*models.ParkingSpot, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var spot models.ParkingSpot
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&spot); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch spot with id %s: %w", id, err)
	}
	return &spot, nil
}

// GetBySlot retrieves a spot by its (slotNumber, floor, section) triple.
// Returns nil if no spot exists.
func (r *MongoSpotRepo) GetBySlot(slotNumber string, floor int, section string) (*models.ParkingSpot, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"slotNumber": slotNumber, "floor": floor, "section": section}
	var spot models.ParkingSpot
	if err := r.coll.FindOne(ctx, filter).Decode(&spot); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch spot %s/%d/%s: %w", slotNumber, floor, section, err)
	}
	return &spot, nil
}

// List retrieves spots matching the filter, sorted by floor, section and
// slot number.
func (r *MongoSpotRepo) List(filter SpotFilter) ([]models.ParkingSpot, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{}
	if filter.Floor != nil {
		query["floor"] = *filter.Floor
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Search != "" {
		query["slotNumber"] = bson.M{
			"$regex":   regexp.QuoteMeta(filter.Search),
			"$options": "i",
		}
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "floor", Value: 1},
		{Key: "section", Value: 1},
		{Key: "slotNumber", Value: 1},
	})

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve spots: %w", err)
	}
	defer cursor.Close(ctx)

	var spots []models.ParkingSpot
	for cursor.Next(ctx) {
		var s models.ParkingSpot
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode spot: %w", err)
		}
		spots = append(spots, s)
	}
	return spots, nil
}

// Reserve atomically transitions an available spot to reserved for userID.
// The filter pins the expected status, so of two concurrent callers at most
// one observes a matched document.
func (r *MongoSpotRepo) Reserve(id, userID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.SpotStatusAvailable}
	update := bson.M{"$set": bson.M{
		"status":         models.SpotStatusReserved,
		"occupantUserId": userID,
		"updatedAt":      time.Now(),
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to reserve spot %s: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}

// Release atomically frees a spot held by userID.
func (r *MongoSpotRepo) Release(id, userID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "occupantUserId": userID}
	update := bson.M{
		"$set":   bson.M{"status": models.SpotStatusAvailable, "updatedAt": time.Now()},
		"$unset": bson.M{"occupantUserId": ""},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to release spot %s: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}
