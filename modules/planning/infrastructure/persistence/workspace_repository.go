package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mapwise/storymap/modules/planning/domain/entities/workspace"
	"github.com/mapwise/storymap/pkg/composables"
)

type WorkspaceRepository struct{}

func NewWorkspaceRepository() workspace.Repository {
	return &WorkspaceRepository{}
}

func (r *WorkspaceRepository) Create(ctx context.Context, w workspace.Workspace) (workspace.Workspace, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return workspace.Workspace{}, err
	}
	_, err = tx.Exec(ctx, `
INSERT INTO workspaces (id, name, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
`, pgUUID(w.ID()), w.Name(), pgUUID(w.CreatedBy()), w.CreatedAt(), w.UpdatedAt())
	if err != nil {
		return workspace.Workspace{}, mapPgError(err, "WORKSPACE_NOT_FOUND", "workspace")
	}
	return w, nil
}

func (r *WorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (workspace.Workspace, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return workspace.Workspace{}, err
	}

	var (
		wID       uuid.UUID
		name      string
		createdBy uuid.UUID
		createdAt time.Time
		updatedAt time.Time
	)
	if err := tx.QueryRow(ctx, `
SELECT id, name, created_by, created_at, updated_at
FROM workspaces
WHERE id = $1
`, pgUUID(id)).Scan(&wID, &name, &createdBy, &createdAt, &updatedAt); err != nil {
		return workspace.Workspace{}, mapPgError(err, "WORKSPACE_NOT_FOUND", "workspace")
	}
	return workspace.Hydrate(wID, name, createdBy, createdAt, updatedAt), nil
}

func (r *WorkspaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM workspaces WHERE id = $1`, pgUUID(id)); err != nil {
		return mapPgError(err, "WORKSPACE_NOT_FOUND", "workspace")
	}
	return nil
}
