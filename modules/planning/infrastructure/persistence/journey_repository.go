package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mapwise/storymap/modules/planning/domain/entities/journey"
	"github.com/mapwise/storymap/pkg/composables"
)

const journeyFindQuery = `
SELECT id, tenant_id, name, sort_order, created_by, updated_by, created_at, updated_at
FROM journeys`

type JourneyRepository struct{}

func NewJourneyRepository() journey.Repository {
	return &JourneyRepository{}
}

func scanJourney(row pgx.Row) (journey.Journey, error) {
	var (
		id        uuid.UUID
		tenantID  uuid.UUID
		name      string
		sortOrder int
		createdBy uuid.UUID
		updatedBy uuid.UUID
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&id, &tenantID, &name, &sortOrder, &createdBy, &updatedBy, &createdAt, &updatedAt); err != nil {
		return journey.Journey{}, err
	}
	return journey.Hydrate(id, tenantID, name, sortOrder, createdBy, updatedBy, createdAt, updatedAt), nil
}

func (r *JourneyRepository) Create(ctx context.Context, j journey.Journey) (journey.Journey, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return journey.Journey{}, err
	}
	_, err = tx.Exec(ctx, `
INSERT INTO journeys (id, tenant_id, name, sort_order, created_by, updated_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, pgUUID(j.ID()), pgUUID(j.TenantID()), j.Name(), j.SortOrder(), pgUUID(j.CreatedBy()), pgUUID(j.UpdatedBy()), j.CreatedAt(), j.UpdatedAt())
	if err != nil {
		return journey.Journey{}, mapPgError(err, "JOURNEY_NOT_FOUND", "journey")
	}
	return j, nil
}

func (r *JourneyRepository) GetByID(ctx context.Context, id uuid.UUID) (journey.Journey, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return journey.Journey{}, err
	}
	j, err := scanJourney(tx.QueryRow(ctx, journeyFindQuery+` WHERE id = $1`, pgUUID(id)))
	if err != nil {
		return journey.Journey{}, mapPgError(err, "JOURNEY_NOT_FOUND", "journey")
	}
	return j, nil
}

func (r *JourneyRepository) ListByWorkspace(ctx context.Context, tenantID uuid.UUID) ([]journey.Journey, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, journeyFindQuery+` WHERE tenant_id = $1 ORDER BY sort_order`, pgUUID(tenantID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []journey.Journey
	for rows.Next() {
		j, err := scanJourney(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *JourneyRepository) CountByWorkspace(ctx context.Context, tenantID uuid.UUID) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM journeys WHERE tenant_id = $1`, pgUUID(tenantID)).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *JourneyRepository) ShiftRange(ctx context.Context, tenantID uuid.UUID, from, to, delta int) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
UPDATE journeys
SET sort_order = sort_order + $4
WHERE tenant_id = $1 AND sort_order BETWEEN $2 AND $3
`, pgUUID(tenantID), from, to, delta)
	return err
}

func (r *JourneyRepository) UpdateSortOrder(ctx context.Context, id uuid.UUID, sortOrder int, updatedBy uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
UPDATE journeys
SET sort_order = $2, updated_by = $3, updated_at = now()
WHERE id = $1
`, pgUUID(id), sortOrder, pgUUID(updatedBy))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return mapPgError(pgx.ErrNoRows, "JOURNEY_NOT_FOUND", "journey")
	}
	return nil
}

func (r *JourneyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM journeys WHERE id = $1`, pgUUID(id))
	if err != nil {
		return mapPgError(err, "JOURNEY_NOT_FOUND", "journey")
	}
	if tag.RowsAffected() == 0 {
		return mapPgError(pgx.ErrNoRows, "JOURNEY_NOT_FOUND", "journey")
	}
	return nil
}

func (r *JourneyRepository) DeleteByWorkspace(ctx context.Context, tenantID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `DELETE FROM journeys WHERE tenant_id = $1`, pgUUID(tenantID))
	return err
}
