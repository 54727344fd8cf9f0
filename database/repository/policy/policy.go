package policyRepo

import (
	"context"
	"errors"

	"lumiere/models"
)

// ErrNotFound is returned when no policy record has been seeded yet.
var ErrNotFound = errors.New("booking policy not found")

// Repository persists the singleton BookingConfig record.
type Repository interface {
	Get(ctx context.Context) (*models.BookingConfig, error)
	Upsert(ctx context.Context, cfg *models.BookingConfig) error
}
