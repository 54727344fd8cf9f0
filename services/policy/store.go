package policy

import (
	"context"
	"errors"
	"fmt"
	"sync"

	policyRepo "lumiere/database/repository/policy"
	"lumiere/models"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports the first offending field of a rejected config.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid booking config: %s", e.Message)
}

// Store holds the process-wide booking policy. The current value is kept
// in memory under a RWMutex so every engine call reads the latest admin
// update without touching storage; writes go through the repository.
type Store struct {
	mu       sync.RWMutex
	current  models.BookingConfig
	repo     policyRepo.Repository
	validate *validator.Validate
}

// NewStore loads the persisted policy, seeding defaults when no record
// exists yet.
func NewStore(ctx context.Context, repo policyRepo.Repository, defaults models.BookingConfig) (*Store, error) {
	s := &Store{
		repo:     repo,
		validate: validator.New(),
	}

	cfg, err := repo.Get(ctx)
	switch {
	case err == nil:
		s.current = *cfg
	case errors.Is(err, policyRepo.ErrNotFound):
		if err := s.validateConfig(defaults); err != nil {
			return nil, err
		}
		if err := repo.Upsert(ctx, &defaults); err != nil {
			return nil, err
		}
		s.current = defaults
	default:
		return nil, err
	}

	return s, nil
}

// Get returns the current policy value.
func (s *Store) Get() models.BookingConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set validates and persists a new policy. Existing bookings are not
// re-validated; the new value applies to subsequent operations only.
func (s *Store) Set(ctx context.Context, cfg models.BookingConfig) (models.BookingConfig, error) {
	if err := s.validateConfig(cfg); err != nil {
		return models.BookingConfig{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Upsert(ctx, &cfg); err != nil {
		return models.BookingConfig{}, fmt.Errorf("failed to persist booking config: %w", err)
	}
	s.current = cfg
	return cfg, nil
}

func (s *Store) validateConfig(cfg models.BookingConfig) error {
	err := s.validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		msg := fmt.Sprintf("field %s violates rule %s", fe.Field(), fe.Tag())
		if fe.Field() == "MaxAdvanceBookingDays" && fe.Tag() == "gtefield" {
			msg = "MaxAdvanceBookingDays must be greater than or equal to MinAdvanceBookingDays"
		}
		return &ValidationError{Field: fe.Field(), Message: msg}
	}
	return err
}
