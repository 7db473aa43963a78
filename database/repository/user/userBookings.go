// File: database/repository/user/userBookings.go
package userRepo

import (
	"fmt"
	"time"

	"parkwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AppendBooking pushes a booking onto the user's embedded collection.
func (r *MongoUserRepo) AppendBooking(userID string, booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": userID}
	update := bson.M{
		"$push": bson.M{"bookings": booking},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to append booking for user %s: %w", userID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s not found", userID)
	}
	return nil
}

// GetBooking fetches a single embedded booking by its ID.
func (r *MongoUserRepo) GetBooking(userID, bookingID string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": userID, "bookings.id": bookingID}
	var user models.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking %s for user %s: %w", bookingID, userID, err)
	}

	for i := range user.Bookings {
		if user.Bookings[i].ID == bookingID {
			return &user.Bookings[i], nil
		}
	}
	return nil, nil
}

// UpdateBookingStatus transitions a booking from fromStatus to toStatus. The
// filter pins the expected status, so the transition is applied at most once
// even under concurrent attempts.
func (r *MongoUserRepo) UpdateBookingStatus(userID, bookingID, fromStatus, toStatus string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"id": userID,
		"bookings": bson.M{
			"$elemMatch": bson.M{"id": bookingID, "status": fromStatus},
		},
	}
	update := bson.M{"$set": bson.M{
		"bookings.$.status": toStatus,
		"updatedAt":         time.Now(),
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to update booking %s for user %s: %w", bookingID, userID, err)
	}
	return res.MatchedCount > 0, nil
}

// ListBookings returns the user's bookings in insertion order.
func (r *MongoUserRepo) ListBookings(userID string) ([]models.Booking, error) {
	user, err := r.GetByIDWithProjection(userID, bson.M{"id": 1, "bookings": 1})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user with id %s not found", userID)
	}
	return user.Bookings, nil
}
