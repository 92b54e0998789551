package journey

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, j Journey) (Journey, error)
	GetByID(ctx context.Context, id uuid.UUID) (Journey, error)
	ListByWorkspace(ctx context.Context, tenantID uuid.UUID) ([]Journey, error)
	CountByWorkspace(ctx context.Context, tenantID uuid.UUID) (int, error)
	// ShiftRange adds delta to the sort order of every journey in the
	// workspace whose sort order lies in [from, to].
	ShiftRange(ctx context.Context, tenantID uuid.UUID, from, to, delta int) error
	UpdateSortOrder(ctx context.Context, id uuid.UUID, sortOrder int, updatedBy uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByWorkspace(ctx context.Context, tenantID uuid.UUID) error
}
