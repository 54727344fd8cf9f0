package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lumiere/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no booking matches the given id.
var ErrNotFound = errors.New("booking not found")

// MongoBookingRepo implements Repository backed by MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates the repository and ensures its indexes.
func NewMongoBookingRepo(db *mongo.Database) *MongoBookingRepo {
	coll := db.Collection("bookings")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, _ = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "date", Value: 1}}},
	})

	return &MongoBookingRepo{coll: coll}
}

// Insert stores a new booking document.
func (repo *MongoBookingRepo) Insert(ctx context.Context, booking *models.Booking) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctxWithTimeout, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its ID.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": bookingID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

// Update replaces an existing booking document.
func (repo *MongoBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": booking.ID}
	update := bson.M{"$set": booking}
	res, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", booking.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByDate returns every booking on the given day.
func (repo *MongoBookingRepo) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctxWithTimeout, bson.M{"date": date})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings on %s: %w", date, err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings on %s: %w", date, err)
	}
	return bookings, nil
}

// CountActiveOnDay counts non-Cancelled bookings on the given day.
func (repo *MongoBookingRepo) CountActiveOnDay(ctx context.Context, date string) (int, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"date":   date,
		"status": bson.M{"$ne": models.BookingCancelled},
	}
	count, err := repo.coll.CountDocuments(ctxWithTimeout, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings on %s: %w", date, err)
	}
	return int(count), nil
}

// ListUnassignedUpcoming returns Upcoming, unassigned bookings in the
// inclusive date range.
func (repo *MongoBookingRepo) ListUnassignedUpcoming(ctx context.Context, fromDate, toDate string) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"status": models.BookingUpcoming,
		"date":   bson.M{"$gte": fromDate, "$lte": toDate},
		"$or": []bson.M{
			{"assignedStaffId": ""},
			{"assignedStaffId": bson.M{"$exists": false}},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "dateTime", Value: 1}})
	cursor, err := repo.coll.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list unassigned bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode unassigned bookings: %w", err)
	}
	return bookings, nil
}

// SetAssignedStaff sets or clears the booking side of the pointer pair.
func (repo *MongoBookingRepo) SetAssignedStaff(ctx context.Context, bookingID, staffID string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": bookingID}
	var update bson.M
	if staffID == "" {
		update = bson.M{"$unset": bson.M{"assignedStaffId": ""}}
	} else {
		update = bson.M{"$set": bson.M{"assignedStaffId": staffID}}
	}
	res, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update staff assignment for booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
