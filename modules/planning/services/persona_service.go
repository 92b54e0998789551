package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/mapwise/storymap/modules/planning/domain/entities/persona"
	"github.com/mapwise/storymap/pkg/composables"
	"github.com/mapwise/storymap/pkg/eventbus"
	"github.com/mapwise/storymap/pkg/serrors"
)

type PersonaService struct {
	repo      persona.Repository
	guard     *TenantGuard
	publisher eventbus.EventBus
}

func NewPersonaService(repo persona.Repository, guard *TenantGuard, publisher eventbus.EventBus) *PersonaService {
	return &PersonaService{
		repo:      repo,
		guard:     guard,
		publisher: publisher,
	}
}

func (s *PersonaService) Create(ctx context.Context, tenantID uuid.UUID, name string, actorID uuid.UUID) (persona.Persona, error) {
	if name == "" {
		return persona.Persona{}, serrors.NewValidation("PERSONA_NAME_REQUIRED", "persona name is required")
	}
	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (persona.Persona, error) {
		return s.repo.Create(txCtx, persona.New(tenantID, name, actorID))
	})
	if err != nil {
		return persona.Persona{}, err
	}

	s.publisher.Publish("persona.created", created.ID())
	return created, nil
}

func (s *PersonaService) Attach(ctx context.Context, tenantID, storyID, personaID uuid.UUID) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		if err := s.guard.RequireStory(txCtx, tenantID, storyID); err != nil {
			return err
		}
		if err := s.guard.RequirePersona(txCtx, tenantID, personaID); err != nil {
			return err
		}
		return s.repo.Attach(txCtx, storyID, personaID)
	})
	if err != nil {
		return err
	}

	s.publisher.Publish("persona.attached", storyID, personaID)
	return nil
}

func (s *PersonaService) Detach(ctx context.Context, tenantID, storyID, personaID uuid.UUID) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		if err := s.guard.RequireStory(txCtx, tenantID, storyID); err != nil {
			return err
		}
		if err := s.guard.RequirePersona(txCtx, tenantID, personaID); err != nil {
			return err
		}
		removed, err := s.repo.Detach(txCtx, storyID, personaID)
		if err != nil {
			return err
		}
		if removed == 0 {
			return serrors.NewNotFound("PERSONA_ASSOCIATION_NOT_FOUND", "persona association not found")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publisher.Publish("persona.detached", storyID, personaID)
	return nil
}

func (s *PersonaService) ListByStory(ctx context.Context, tenantID, storyID uuid.UUID) ([]persona.Persona, error) {
	if err := s.guard.RequireStory(ctx, tenantID, storyID); err != nil {
		return nil, err
	}
	return s.repo.ListByStory(ctx, storyID)
}
