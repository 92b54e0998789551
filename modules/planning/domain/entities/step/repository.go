package step

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, s Step) (Step, error)
	GetByID(ctx context.Context, id uuid.UUID) (Step, error)
	ListByJourney(ctx context.Context, journeyID uuid.UUID) ([]Step, error)
	CountByJourney(ctx context.Context, journeyID uuid.UUID) (int, error)
	ShiftRange(ctx context.Context, journeyID uuid.UUID, from, to, delta int) error
	UpdateSortOrder(ctx context.Context, id uuid.UUID, sortOrder int, updatedBy uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByJourney(ctx context.Context, journeyID uuid.UUID) (int, error)
	DeleteByWorkspace(ctx context.Context, tenantID uuid.UUID) error
}
