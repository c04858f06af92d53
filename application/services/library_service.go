package services

import (
	"context"
	"fmt"
	"strings"

	"alchemy-backend/application/ports"
	"alchemy-backend/domain/element"
	apperrors "alchemy-backend/pkg/errors"

	"go.uber.org/zap"
)

// ResetResult reports the outcome of a wipe-and-reseed
type ResetResult struct {
	Deleted int `json:"deleted"`
	Seeded  int `json:"seeded"`
}

// LibraryService covers the non-fusion element operations: lookups,
// seeding the four roots, and the destructive reset.
type LibraryService struct {
	elements     ports.ElementRepository
	seedIconBase string
	logger       *zap.Logger
}

// NewLibraryService creates a new library service
func NewLibraryService(elements ports.ElementRepository, seedIconBase string, logger *zap.Logger) *LibraryService {
	return &LibraryService{
		elements:     elements,
		seedIconBase: seedIconBase,
		logger:       logger,
	}
}

// GetByName retrieves a single element by its case-insensitive name
func (s *LibraryService) GetByName(ctx context.Context, name string) (*element.Element, error) {
	return s.elements.FindByName(ctx, name)
}

// SeedElements returns the four root elements. This backs GET /elements,
// which deliberately exposes only the seeds, never the full discovery set.
func (s *LibraryService) SeedElements(ctx context.Context) ([]*element.Element, error) {
	seeds := element.Seeds()
	roots := make([]*element.Element, 0, len(seeds))
	for _, seed := range seeds {
		el, err := s.elements.FindByName(ctx, seed.Name)
		if err != nil {
			return nil, apperrors.Wrapf(err, "loading seed element '%s'", seed.Name)
		}
		roots = append(roots, el)
	}
	return roots, nil
}

// EnsureSeeds creates any missing root element. Safe to run on every
// startup and concurrently across instances: a duplicate-name error just
// means another boot seeded first. Returns the number created.
func (s *LibraryService) EnsureSeeds(ctx context.Context) (int, error) {
	created := 0
	for _, seed := range element.Seeds() {
		el, err := element.New(seed.Name, seed.Description, s.seedIconURL(seed))
		if err != nil {
			return created, fmt.Errorf("building seed element '%s': %w", seed.Name, err)
		}
		if err := s.elements.Create(ctx, el); err != nil {
			if apperrors.IsDuplicateName(err) {
				continue
			}
			return created, err
		}
		created++
	}

	if created > 0 {
		s.logger.Info("Seeded root elements", zap.Int("created", created))
	}

	return created, nil
}

// Reset wipes every element and re-seeds the four roots
func (s *LibraryService) Reset(ctx context.Context) (*ResetResult, error) {
	deleted, err := s.elements.DeleteAll(ctx)
	if err != nil {
		return nil, err
	}

	seeded, err := s.EnsureSeeds(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "re-seeding after reset")
	}

	s.logger.Info("Element store reset",
		zap.Int("deleted", deleted),
		zap.Int("seeded", seeded),
	)

	return &ResetResult{Deleted: deleted, Seeded: seeded}, nil
}

func (s *LibraryService) seedIconURL(seed element.Seed) string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(s.seedIconBase, "/"), seed.Icon)
}
