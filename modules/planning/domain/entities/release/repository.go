package release

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r Release) (Release, error)
	GetByID(ctx context.Context, id uuid.UUID) (Release, error)
	GetSentinel(ctx context.Context, tenantID uuid.UUID) (Release, error)
	ListByWorkspace(ctx context.Context, tenantID uuid.UUID) ([]Release, error)
	CountByWorkspace(ctx context.Context, tenantID uuid.UUID) (int, error)
	ShiftRange(ctx context.Context, tenantID uuid.UUID, from, to, delta int) error
	UpdateSortOrder(ctx context.Context, id uuid.UUID, sortOrder int, updatedBy uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByWorkspace(ctx context.Context, tenantID uuid.UUID) error
}
