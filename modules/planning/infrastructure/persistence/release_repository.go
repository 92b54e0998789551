package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mapwise/storymap/modules/planning/domain/entities/release"
	"github.com/mapwise/storymap/pkg/composables"
)

const releaseFindQuery = `
SELECT id, tenant_id, name, sort_order, is_sentinel, created_by, updated_by, created_at, updated_at
FROM releases`

type ReleaseRepository struct{}

func NewReleaseRepository() release.Repository {
	return &ReleaseRepository{}
}

func scanRelease(row pgx.Row) (release.Release, error) {
	var (
		id         uuid.UUID
		tenantID   uuid.UUID
		name       string
		sortOrder  int
		isSentinel bool
		createdBy  uuid.UUID
		updatedBy  uuid.UUID
		createdAt  time.Time
		updatedAt  time.Time
	)
	if err := row.Scan(&id, &tenantID, &name, &sortOrder, &isSentinel, &createdBy, &updatedBy, &createdAt, &updatedAt); err != nil {
		return release.Release{}, err
	}
	return release.Hydrate(id, tenantID, name, sortOrder, isSentinel, createdBy, updatedBy, createdAt, updatedAt), nil
}

func (r *ReleaseRepository) Create(ctx context.Context, rel release.Release) (release.Release, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return release.Release{}, err
	}
	_, err = tx.Exec(ctx, `
INSERT INTO releases (id, tenant_id, name, sort_order, is_sentinel, created_by, updated_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, pgUUID(rel.ID()), pgUUID(rel.TenantID()), rel.Name(), rel.SortOrder(), rel.IsSentinel(), pgUUID(rel.CreatedBy()), pgUUID(rel.UpdatedBy()), rel.CreatedAt(), rel.UpdatedAt())
	if err != nil {
		return release.Release{}, mapPgError(err, "RELEASE_NOT_FOUND", "release")
	}
	return rel, nil
}

func (r *ReleaseRepository) GetByID(ctx context.Context, id uuid.UUID) (release.Release, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return release.Release{}, err
	}
	rel, err := scanRelease(tx.QueryRow(ctx, releaseFindQuery+` WHERE id = $1`, pgUUID(id)))
	if err != nil {
		return release.Release{}, mapPgError(err, "RELEASE_NOT_FOUND", "release")
	}
	return rel, nil
}

func (r *ReleaseRepository) GetSentinel(ctx context.Context, tenantID uuid.UUID) (release.Release, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return release.Release{}, err
	}
	rel, err := scanRelease(tx.QueryRow(ctx, releaseFindQuery+` WHERE tenant_id = $1 AND is_sentinel`, pgUUID(tenantID)))
	if err != nil {
		return release.Release{}, mapPgError(err, "RELEASE_NOT_FOUND", "release")
	}
	return rel, nil
}

func (r *ReleaseRepository) ListByWorkspace(ctx context.Context, tenantID uuid.UUID) ([]release.Release, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, releaseFindQuery+` WHERE tenant_id = $1 ORDER BY sort_order`, pgUUID(tenantID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []release.Release
	for rows.Next() {
		rel, err := scanRelease(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rel)
	}
	return out, rows.Err()
}

func (r *ReleaseRepository) CountByWorkspace(ctx context.Context, tenantID uuid.UUID) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM releases WHERE tenant_id = $1`, pgUUID(tenantID)).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *ReleaseRepository) ShiftRange(ctx context.Context, tenantID uuid.UUID, from, to, delta int) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
UPDATE releases
SET sort_order = sort_order + $4
WHERE tenant_id = $1 AND sort_order BETWEEN $2 AND $3
`, pgUUID(tenantID), from, to, delta)
	return err
}

func (r *ReleaseRepository) UpdateSortOrder(ctx context.Context, id uuid.UUID, sortOrder int, updatedBy uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
UPDATE releases
SET sort_order = $2, updated_by = $3, updated_at = now()
WHERE id = $1
`, pgUUID(id), sortOrder, pgUUID(updatedBy))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return mapPgError(pgx.ErrNoRows, "RELEASE_NOT_FOUND", "release")
	}
	return nil
}

func (r *ReleaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM releases WHERE id = $1`, pgUUID(id))
	if err != nil {
		return mapPgError(err, "RELEASE_NOT_FOUND", "release")
	}
	if tag.RowsAffected() == 0 {
		return mapPgError(pgx.ErrNoRows, "RELEASE_NOT_FOUND", "release")
	}
	return nil
}

func (r *ReleaseRepository) DeleteByWorkspace(ctx context.Context, tenantID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `DELETE FROM releases WHERE tenant_id = $1`, pgUUID(tenantID))
	return err
}
