package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mapwise/storymap/modules/planning/domain/entities/story"
	"github.com/mapwise/storymap/pkg/composables"
)

const storyFindQuery = `
SELECT id, step_id, release_id, title, status, sort_order, created_by, updated_by, created_at, updated_at
FROM stories`

type StoryRepository struct{}

func NewStoryRepository() story.Repository {
	return &StoryRepository{}
}

func scanStory(row pgx.Row) (story.Story, error) {
	var (
		id        uuid.UUID
		stepID    uuid.UUID
		releaseID uuid.UUID
		title     string
		status    string
		sortOrder int
		createdBy uuid.UUID
		updatedBy uuid.UUID
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&id, &stepID, &releaseID, &title, &status, &sortOrder, &createdBy, &updatedBy, &createdAt, &updatedAt); err != nil {
		return story.Story{}, err
	}
	return story.Hydrate(id, stepID, releaseID, title, story.Status(status), sortOrder, createdBy, updatedBy, createdAt, updatedAt), nil
}

func (r *StoryRepository) Create(ctx context.Context, s story.Story) (story.Story, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return story.Story{}, err
	}
	_, err = tx.Exec(ctx, `
INSERT INTO stories (id, step_id, release_id, title, status, sort_order, created_by, updated_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`, pgUUID(s.ID()), pgUUID(s.StepID()), pgUUID(s.ReleaseID()), s.Title(), string(s.Status()), s.SortOrder(), pgUUID(s.CreatedBy()), pgUUID(s.UpdatedBy()), s.CreatedAt(), s.UpdatedAt())
	if err != nil {
		return story.Story{}, mapPgError(err, "STORY_NOT_FOUND", "story")
	}
	return s, nil
}

func (r *StoryRepository) GetByID(ctx context.Context, id uuid.UUID) (story.Story, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return story.Story{}, err
	}
	s, err := scanStory(tx.QueryRow(ctx, storyFindQuery+` WHERE id = $1`, pgUUID(id)))
	if err != nil {
		return story.Story{}, mapPgError(err, "STORY_NOT_FOUND", "story")
	}
	return s, nil
}

func (r *StoryRepository) CountInCell(ctx context.Context, cell story.Cell) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var n int
	err = tx.QueryRow(ctx, `
SELECT COUNT(*) FROM stories WHERE step_id = $1 AND release_id = $2
`, pgUUID(cell.StepID), pgUUID(cell.ReleaseID)).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *StoryRepository) MaxSortOrderInCell(ctx context.Context, cell story.Cell) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var max int
	err = tx.QueryRow(ctx, `
SELECT COALESCE(MAX(sort_order), 0) FROM stories WHERE step_id = $1 AND release_id = $2
`, pgUUID(cell.StepID), pgUUID(cell.ReleaseID)).Scan(&max)
	if err != nil {
		return 0, err
	}
	return max, nil
}

func (r *StoryRepository) listBy(ctx context.Context, query string, args ...any) ([]story.Story, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []story.Story
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *StoryRepository) ListByCell(ctx context.Context, cell story.Cell) ([]story.Story, error) {
	return r.listBy(ctx, storyFindQuery+` WHERE step_id = $1 AND release_id = $2 ORDER BY sort_order`, pgUUID(cell.StepID), pgUUID(cell.ReleaseID))
}

func (r *StoryRepository) ListByStep(ctx context.Context, stepID uuid.UUID) ([]story.Story, error) {
	return r.listBy(ctx, storyFindQuery+` WHERE step_id = $1 ORDER BY release_id, sort_order`, pgUUID(stepID))
}

func (r *StoryRepository) ListByRelease(ctx context.Context, releaseID uuid.UUID) ([]story.Story, error) {
	return r.listBy(ctx, storyFindQuery+` WHERE release_id = $1 ORDER BY step_id, sort_order`, pgUUID(releaseID))
}

func (r *StoryRepository) UpdateCell(ctx context.Context, id uuid.UUID, cell story.Cell, sortOrder int, updatedBy uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
UPDATE stories
SET step_id = $2, release_id = $3, sort_order = $4, updated_by = $5, updated_at = now()
WHERE id = $1
`, pgUUID(id), pgUUID(cell.StepID), pgUUID(cell.ReleaseID), sortOrder, pgUUID(updatedBy))
	if err != nil {
		return mapPgError(err, "STORY_NOT_FOUND", "story")
	}
	if tag.RowsAffected() == 0 {
		return mapPgError(pgx.ErrNoRows, "STORY_NOT_FOUND", "story")
	}
	return nil
}

func (r *StoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM stories WHERE id = $1`, pgUUID(id))
	if err != nil {
		return mapPgError(err, "STORY_NOT_FOUND", "story")
	}
	if tag.RowsAffected() == 0 {
		return mapPgError(pgx.ErrNoRows, "STORY_NOT_FOUND", "story")
	}
	return nil
}

func (r *StoryRepository) DeleteByStep(ctx context.Context, stepID uuid.UUID) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM stories WHERE step_id = $1`, pgUUID(stepID))
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *StoryRepository) DeleteByJourney(ctx context.Context, journeyID uuid.UUID) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	tag, err := tx.Exec(ctx, `
DELETE FROM stories
USING steps
WHERE stories.step_id = steps.id AND steps.journey_id = $1
`, pgUUID(journeyID))
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *StoryRepository) DeleteByWorkspace(ctx context.Context, tenantID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
DELETE FROM stories
USING releases
WHERE stories.release_id = releases.id AND releases.tenant_id = $1
`, pgUUID(tenantID))
	return err
}
