package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/mapwise/storymap/modules/planning/domain/entities/step"
	"github.com/mapwise/storymap/pkg/composables"
	"github.com/mapwise/storymap/pkg/eventbus"
	"github.com/mapwise/storymap/pkg/serrors"
)

type StepService struct {
	repo      step.Repository
	guard     *TenantGuard
	publisher eventbus.EventBus
}

func NewStepService(repo step.Repository, guard *TenantGuard, publisher eventbus.EventBus) *StepService {
	return &StepService{
		repo:      repo,
		guard:     guard,
		publisher: publisher,
	}
}

func (s *StepService) collection(journeyID, itemID, actorID uuid.UUID) denseCollection {
	return denseCollection{
		count: func(ctx context.Context) (int, error) {
			return s.repo.CountByJourney(ctx, journeyID)
		},
		shift: func(ctx context.Context, from, to, delta int) error {
			return s.repo.ShiftRange(ctx, journeyID, from, to, delta)
		},
		setPos: func(ctx context.Context, pos int) error {
			return s.repo.UpdateSortOrder(ctx, itemID, pos, actorID)
		},
	}
}

// Create appends the step at the end of its journey's ordering.
func (s *StepService) Create(ctx context.Context, tenantID, journeyID uuid.UUID, name string, actorID uuid.UUID) (step.Step, error) {
	if name == "" {
		return step.Step{}, serrors.NewValidation("STEP_NAME_REQUIRED", "step name is required")
	}

	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (step.Step, error) {
		if err := s.guard.RequireJourney(txCtx, tenantID, journeyID); err != nil {
			return step.Step{}, err
		}
		n, err := s.repo.CountByJourney(txCtx, journeyID)
		if err != nil {
			return step.Step{}, err
		}
		return s.repo.Create(txCtx, step.New(journeyID, name, n, actorID))
	})
	if err != nil {
		return step.Step{}, err
	}

	s.publisher.Publish("step.created", created.ID())
	return created, nil
}

func (s *StepService) Reorder(ctx context.Context, tenantID, stepID uuid.UUID, newPosition int, actorID uuid.UUID) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		if err := s.guard.RequireStep(txCtx, tenantID, stepID); err != nil {
			return err
		}
		st, err := s.repo.GetByID(txCtx, stepID)
		if err != nil {
			return err
		}
		return reorderDense(txCtx, s.collection(st.JourneyID(), stepID, actorID), st.SortOrder(), newPosition)
	})
	if err != nil {
		return err
	}

	s.publisher.Publish("step.reordered", stepID)
	return nil
}

func (s *StepService) GetByID(ctx context.Context, tenantID, stepID uuid.UUID) (step.Step, error) {
	if err := s.guard.RequireStep(ctx, tenantID, stepID); err != nil {
		return step.Step{}, err
	}
	return s.repo.GetByID(ctx, stepID)
}

func (s *StepService) ListByJourney(ctx context.Context, tenantID, journeyID uuid.UUID) ([]step.Step, error) {
	if err := s.guard.RequireJourney(ctx, tenantID, journeyID); err != nil {
		return nil, err
	}
	return s.repo.ListByJourney(ctx, journeyID)
}
