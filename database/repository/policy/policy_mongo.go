package policyRepo

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

// The policy is a single well-known document.
const policyDocID = "booking-policy"

// MongoPolicyRepo implements Repository backed by MongoDB.
type MongoPolicyRepo struct {
	coll *mongo.Collection
}

func NewMongoPolicyRepo(db *mongo.Database) *MongoPolicyRepo {
	return &MongoPolicyRepo{coll: db.Collection("policy")}
}

type policyDoc struct {
	ID     string               `bson:"_id"`
	Config models.BookingConfig `bson:"config"`
}

// Get loads the current policy record.
func (repo *MongoPolicyRepo) Get(ctx context.Context) (*models.BookingConfig, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc policyDoc
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"_id": policyDocID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking policy: %w", err)
	}
	return &doc.Config, nil
}

// Upsert writes the policy record, creating it if absent.
func (repo *MongoPolicyRepo) Upsert(ctx context.Context, cfg *models.BookingConfig) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": policyDocID}
	update := bson.M{"$set": bson.M{"config": cfg}}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update, opts); err != nil {
		return fmt.Errorf("failed to persist booking policy: %w", err)
	}
	return nil
}
