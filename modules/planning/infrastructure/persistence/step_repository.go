package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mapwise/storymap/modules/planning/domain/entities/step"
	"github.com/mapwise/storymap/pkg/composables"
)

const stepFindQuery = `
SELECT id, journey_id, name, sort_order, created_by, updated_by, created_at, updated_at
FROM steps`

type StepRepository struct{}

func NewStepRepository() step.Repository {
	return &StepRepository{}
}

func scanStep(row pgx.Row) (step.Step, error) {
	var (
		id        uuid.UUID
		journeyID uuid.UUID
		name      string
		sortOrder int
		createdBy uuid.UUID
		updatedBy uuid.UUID
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&id, &journeyID, &name, &sortOrder, &createdBy, &updatedBy, &createdAt, &updatedAt); err != nil {
		return step.Step{}, err
	}
	return step.Hydrate(id, journeyID, name, sortOrder, createdBy, updatedBy, createdAt, updatedAt), nil
}

func (r *StepRepository) Create(ctx context.Context, s step.Step) (step.Step, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return step.Step{}, err
	}
	_, err = tx.Exec(ctx, `
INSERT INTO steps (id, journey_id, name, sort_order, created_by, updated_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, pgUUID(s.ID()), pgUUID(s.JourneyID()), s.Name(), s.SortOrder(), pgUUID(s.CreatedBy()), pgUUID(s.UpdatedBy()), s.CreatedAt(), s.UpdatedAt())
	if err != nil {
		return step.Step{}, mapPgError(err, "STEP_NOT_FOUND", "step")
	}
	return s, nil
}

func (r *StepRepository) GetByID(ctx context.Context, id uuid.UUID) (step.Step, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return step.Step{}, err
	}
	s, err := scanStep(tx.QueryRow(ctx, stepFindQuery+` WHERE id = $1`, pgUUID(id)))
	if err != nil {
		return step.Step{}, mapPgError(err, "STEP_NOT_FOUND", "step")
	}
	return s, nil
}

func (r *StepRepository) ListByJourney(ctx context.Context, journeyID uuid.UUID) ([]step.Step, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, stepFindQuery+` WHERE journey_id = $1 ORDER BY sort_order`, pgUUID(journeyID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []step.Step
	for rows.Next() {
		s, err := scanStep(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *StepRepository) CountByJourney(ctx context.Context, journeyID uuid.UUID) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM steps WHERE journey_id = $1`, pgUUID(journeyID)).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *StepRepository) ShiftRange(ctx context.Context, journeyID uuid.UUID, from, to, delta int) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
UPDATE steps
SET sort_order = sort_order + $4
WHERE journey_id = $1 AND sort_order BETWEEN $2 AND $3
`, pgUUID(journeyID), from, to, delta)
	return err
}

func (r *StepRepository) UpdateSortOrder(ctx context.Context, id uuid.UUID, sortOrder int, updatedBy uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
UPDATE steps
SET sort_order = $2, updated_by = $3, updated_at = now()
WHERE id = $1
`, pgUUID(id), sortOrder, pgUUID(updatedBy))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return mapPgError(pgx.ErrNoRows, "STEP_NOT_FOUND", "step")
	}
	return nil
}

func (r *StepRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM steps WHERE id = $1`, pgUUID(id))
	if err != nil {
		return mapPgError(err, "STEP_NOT_FOUND", "step")
	}
	if tag.RowsAffected() == 0 {
		return mapPgError(pgx.ErrNoRows, "STEP_NOT_FOUND", "step")
	}
	return nil
}

func (r *StepRepository) DeleteByJourney(ctx context.Context, journeyID uuid.UUID) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM steps WHERE journey_id = $1`, pgUUID(journeyID))
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *StepRepository) DeleteByWorkspace(ctx context.Context, tenantID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
DELETE FROM steps
USING journeys
WHERE steps.journey_id = journeys.id AND journeys.tenant_id = $1
`, pgUUID(tenantID))
	return err
}
