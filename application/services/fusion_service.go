package services

import (
	"context"
	"fmt"

	"alchemy-backend/application/ports"
	"alchemy-backend/domain/element"
	apperrors "alchemy-backend/pkg/errors"

	"go.uber.org/zap"
)

// FusionResult carries the resolved element plus whether this request
// created it. The HTTP layer surfaces the distinction as 201 vs 200.
type FusionResult struct {
	Element *element.Element
	Created bool
}

// FusionService orchestrates the combination pipeline: resolve parents,
// check the pair memo, generate details and icon, upload, persist.
// It is a linear pipeline with early exits - no internal retries; a failed
// generation surfaces to the caller, who may safely resubmit the pair.
type FusionService struct {
	elements ports.ElementRepository
	details  ports.DetailsGenerator
	icons    ports.IconGenerator
	store    ports.IconStore
	logger   *zap.Logger
}

// NewFusionService creates a new fusion service
func NewFusionService(
	elements ports.ElementRepository,
	details ports.DetailsGenerator,
	icons ports.IconGenerator,
	store ports.IconStore,
	logger *zap.Logger,
) *FusionService {
	return &FusionService{
		elements: elements,
		details:  details,
		icons:    icons,
		store:    store,
		logger:   logger,
	}
}

// Fuse maps a request "combine (name1, name2)" to a single stable element,
// tolerating concurrent duplicate requests and partial pipeline failures.
// No element is persisted until the final step, so a failure anywhere
// earlier leaves the store untouched.
func (s *FusionService) Fuse(ctx context.Context, name1, name2 string) (*FusionResult, error) {
	// Step 1: resolve both parents. A miss means the client is holding
	// an element the store does not know about.
	parent1, err := s.elements.FindByName(ctx, name1)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewUnknownElementError(name1)
		}
		return nil, err
	}
	parent2, err := s.elements.FindByName(ctx, name2)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewUnknownElementError(name2)
		}
		return nil, err
	}

	// Step 2: pair memo. The expected, common path for popular
	// combinations; order of the pair is irrelevant.
	if existing, err := s.elements.FindByParentPair(ctx, parent1.ID, parent2.ID); err == nil {
		s.logger.Debug("Pair already fused",
			zap.String("name1", parent1.Name),
			zap.String("name2", parent2.Name),
			zap.String("result", existing.Name),
		)
		return &FusionResult{Element: existing, Created: false}, nil
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	// Step 3: invent the candidate. Nothing has been persisted yet,
	// so failures need no cleanup.
	details, err := s.details.GenerateDetails(ctx, parent1, parent2)
	if err != nil {
		return nil, err
	}

	// Step 4: the model may independently reinvent a name another pair
	// already produced. Return that element rather than waste an image
	// generation and trip the unique constraint later. The new pair is
	// not recorded as extra provenance for it.
	if existing, err := s.elements.FindByName(ctx, details.Name); err == nil {
		s.logger.Info("Generated name already exists, returning existing element",
			zap.String("name", details.Name),
			zap.String("name1", parent1.Name),
			zap.String("name2", parent2.Name),
		)
		return &FusionResult{Element: existing, Created: false}, nil
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	// Steps 5-6: icon generation and upload, still no store mutation.
	imageBytes, err := s.icons.GenerateIcon(ctx, details.Name, details.Description)
	if err != nil {
		return nil, err
	}
	iconURL, err := s.store.PersistIcon(ctx, imageBytes, details.Name)
	if err != nil {
		return nil, err
	}

	// Step 7: persist. Creation is the single atomic step of the
	// pipeline; the store's unique-name constraint is the only
	// concurrency control in play.
	el, err := element.NewFused(details.Name, details.Description, iconURL, []string{parent1.ID, parent2.ID})
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("building element: %v", err))
	}
	if err := s.elements.Create(ctx, el); err != nil {
		if apperrors.IsDuplicateName(err) {
			// A concurrent request won the race to this name.
			// Converge on the winner instead of surfacing a conflict.
			winner, fetchErr := s.elements.FindByName(ctx, details.Name)
			if fetchErr != nil {
				return nil, err
			}
			s.logger.Info("Lost creation race, converged on existing element",
				zap.String("name", details.Name),
			)
			return &FusionResult{Element: winner, Created: false}, nil
		}
		return nil, err
	}

	s.logger.Info("New element discovered",
		zap.String("elementID", el.ID),
		zap.String("name", el.Name),
		zap.String("name1", parent1.Name),
		zap.String("name2", parent2.Name),
	)

	return &FusionResult{Element: el, Created: true}, nil
}
