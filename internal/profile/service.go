// Package profile stores the business profile printed on every document.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"invoicer/internal/invoice"
	"invoicer/internal/storage"
	"invoicer/pkg/models"
)

// rules are checked on every Save. Only the VAT rate is constrained; every
// text field may be left empty.
type rules struct {
	VATRate float64 `validate:"gte=0,lte=100"`
}

var validate = validator.New()

// Service loads and saves the profile.
type Service struct {
	store storage.Store
	log   zerolog.Logger
	mu    sync.Mutex
}

// NewService creates a profile service backed by store.
func NewService(store storage.Store, log zerolog.Logger) *Service {
	return &Service{store: store, log: log}
}

// Load returns the stored profile merged over the defaults. A missing or
// unreadable value yields the defaults.
func (s *Service) Load(ctx context.Context) (models.Profile, error) {
	p := models.DefaultProfile()

	raw, err := s.store.Load(ctx, storage.KeyProfile)
	if errors.Is(err, storage.ErrNotFound) {
		return p, nil
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("profile: load: %w", err)
	}

	if err := json.Unmarshal(raw, &p); err != nil {
		s.log.Warn().Err(err).Msg("Stored profile is unreadable, using defaults")
		return models.DefaultProfile(), nil
	}
	return p, nil
}

// Save validates and stores p.
func (s *Service) Save(ctx context.Context, p models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, p)
}

func (s *Service) save(ctx context.Context, p models.Profile) error {
	if err := Validate(p); err != nil {
		return err
	}
	entry, err := Entry(p)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, entry); err != nil {
		return fmt.Errorf("profile: save: %w", err)
	}
	s.log.Info().Str("company", p.CompanyName).Msg("Profile saved")
	return nil
}

// Patch loads the profile, applies fn and saves the result.
func (s *Service) Patch(ctx context.Context, fn func(*models.Profile)) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.Load(ctx)
	if err != nil {
		return models.Profile{}, err
	}
	fn(&p)
	if err := s.save(ctx, p); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

// Validate reports profile values that cannot be saved.
func Validate(p models.Profile) error {
	if err := validate.Struct(rules{VATRate: p.VATRate}); err != nil {
		return invoice.FieldErrors{"vatRate": "VAT rate must be between 0 and 100."}
	}
	return nil
}

// Entry encodes p as the store value under KeyProfile.
func Entry(p models.Profile) (storage.Entry, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return storage.Entry{}, fmt.Errorf("profile: encode: %w", err)
	}
	return storage.Entry{Key: storage.KeyProfile, Value: raw}, nil
}
