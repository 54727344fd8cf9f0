package staffRepo

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

// ErrNotFound is returned when no staff member matches the given id.
var ErrNotFound = errors.New("staff member not found")

// MongoStaffRepo implements Repository backed by MongoDB.
type MongoStaffRepo struct {
	coll *mongo.Collection
}

// NewMongoStaffRepo creates the repository and ensures its indexes.
func NewMongoStaffRepo(db *mongo.Database) *MongoStaffRepo {
	coll := db.Collection("staff")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, _ = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &MongoStaffRepo{coll: coll}
}

// Insert stores a new staff document.
func (repo *MongoStaffRepo) Insert(ctx context.Context, staff *models.Staff) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctxWithTimeout, staff); err != nil {
		return fmt.Errorf("error creating staff member: %w", err)
	}
	return nil
}

// GetByID retrieves a staff member by ID.
func (repo *MongoStaffRepo) GetByID(ctx context.Context, staffID string) (*models.Staff, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var staff models.Staff
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": staffID}).Decode(&staff)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch staff %s: %w", staffID, err)
	}
	return &staff, nil
}

// SetAssignedBooking sets or clears the staff side of the pointer pair.
func (repo *MongoStaffRepo) SetAssignedBooking(ctx context.Context, staffID, bookingID string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": staffID}
	var update bson.M
	if bookingID == "" {
		update = bson.M{"$unset": bson.M{"assignedBookingId": ""}}
	} else {
		update = bson.M{"$set": bson.M{"assignedBookingId": bookingID}}
	}
	res, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update booking assignment for staff %s: %w", staffID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
