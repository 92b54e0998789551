package story

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, s Story) (Story, error)
	GetByID(ctx context.Context, id uuid.UUID) (Story, error)
	CountInCell(ctx context.Context, cell Cell) (int, error)
	// MaxSortOrderInCell returns 0 for an empty cell.
	MaxSortOrderInCell(ctx context.Context, cell Cell) (int, error)
	// ListByCell orders by sort order ascending.
	ListByCell(ctx context.Context, cell Cell) ([]Story, error)
	// ListByStep orders by release then sort order.
	ListByStep(ctx context.Context, stepID uuid.UUID) ([]Story, error)
	// ListByRelease orders by step then sort order.
	ListByRelease(ctx context.Context, releaseID uuid.UUID) ([]Story, error)
	UpdateCell(ctx context.Context, id uuid.UUID, cell Cell, sortOrder int, updatedBy uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByStep(ctx context.Context, stepID uuid.UUID) (int, error)
	DeleteByJourney(ctx context.Context, journeyID uuid.UUID) (int, error)
	DeleteByWorkspace(ctx context.Context, tenantID uuid.UUID) error
}
