package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/mapwise/storymap/modules/planning/domain/entities/journey"
	"github.com/mapwise/storymap/pkg/composables"
	"github.com/mapwise/storymap/pkg/eventbus"
	"github.com/mapwise/storymap/pkg/serrors"
)

type JourneyService struct {
	repo      journey.Repository
	guard     *TenantGuard
	publisher eventbus.EventBus
}

func NewJourneyService(repo journey.Repository, guard *TenantGuard, publisher eventbus.EventBus) *JourneyService {
	return &JourneyService{
		repo:      repo,
		guard:     guard,
		publisher: publisher,
	}
}

func (s *JourneyService) collection(tenantID, itemID, actorID uuid.UUID) denseCollection {
	return denseCollection{
		count: func(ctx context.Context) (int, error) {
			return s.repo.CountByWorkspace(ctx, tenantID)
		},
		shift: func(ctx context.Context, from, to, delta int) error {
			return s.repo.ShiftRange(ctx, tenantID, from, to, delta)
		},
		setPos: func(ctx context.Context, pos int) error {
			return s.repo.UpdateSortOrder(ctx, itemID, pos, actorID)
		},
	}
}

// Create appends the journey at the end of its workspace's ordering.
func (s *JourneyService) Create(ctx context.Context, tenantID uuid.UUID, name string, actorID uuid.UUID) (journey.Journey, error) {
	if name == "" {
		return journey.Journey{}, serrors.NewValidation("JOURNEY_NAME_REQUIRED", "journey name is required")
	}

	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (journey.Journey, error) {
		n, err := s.repo.CountByWorkspace(txCtx, tenantID)
		if err != nil {
			return journey.Journey{}, err
		}
		return s.repo.Create(txCtx, journey.New(tenantID, name, n, actorID))
	})
	if err != nil {
		return journey.Journey{}, err
	}

	s.publisher.Publish("journey.created", created.ID())
	return created, nil
}

func (s *JourneyService) Reorder(ctx context.Context, tenantID, journeyID uuid.UUID, newPosition int, actorID uuid.UUID) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		if err := s.guard.RequireJourney(txCtx, tenantID, journeyID); err != nil {
			return err
		}
		j, err := s.repo.GetByID(txCtx, journeyID)
		if err != nil {
			return err
		}
		return reorderDense(txCtx, s.collection(tenantID, journeyID, actorID), j.SortOrder(), newPosition)
	})
	if err != nil {
		return err
	}

	s.publisher.Publish("journey.reordered", journeyID)
	return nil
}

func (s *JourneyService) GetByID(ctx context.Context, tenantID, journeyID uuid.UUID) (journey.Journey, error) {
	if err := s.guard.RequireJourney(ctx, tenantID, journeyID); err != nil {
		return journey.Journey{}, err
	}
	return s.repo.GetByID(ctx, journeyID)
}

func (s *JourneyService) ListByWorkspace(ctx context.Context, tenantID uuid.UUID) ([]journey.Journey, error) {
	return s.repo.ListByWorkspace(ctx, tenantID)
}
