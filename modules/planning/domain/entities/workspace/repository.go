package workspace

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, w Workspace) (Workspace, error)
	GetByID(ctx context.Context, id uuid.UUID) (Workspace, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
