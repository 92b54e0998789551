package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mapwise/storymap/modules/planning/domain/entities/tag"
	"github.com/mapwise/storymap/pkg/composables"
)

const tagFindQuery = `
SELECT id, tenant_id, name, created_by, created_at
FROM tags`

type TagRepository struct{}

func NewTagRepository() tag.Repository {
	return &TagRepository{}
}

func scanTag(row pgx.Row) (tag.Tag, error) {
	var (
		id        uuid.UUID
		tenantID  uuid.UUID
		name      string
		createdBy uuid.UUID
		createdAt time.Time
	)
	if err := row.Scan(&id, &tenantID, &name, &createdBy, &createdAt); err != nil {
		return tag.Tag{}, err
	}
	return tag.Hydrate(id, tenantID, name, createdBy, createdAt), nil
}

func (r *TagRepository) Create(ctx context.Context, t tag.Tag) (tag.Tag, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return tag.Tag{}, err
	}
	_, err = tx.Exec(ctx, `
INSERT INTO tags (id, tenant_id, name, created_by, created_at)
VALUES ($1, $2, $3, $4, $5)
`, pgUUID(t.ID()), pgUUID(t.TenantID()), t.Name(), pgUUID(t.CreatedBy()), t.CreatedAt())
	if err != nil {
		return tag.Tag{}, mapPgError(err, "TAG_NOT_FOUND", "tag")
	}
	return t, nil
}

func (r *TagRepository) GetByID(ctx context.Context, id uuid.UUID) (tag.Tag, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return tag.Tag{}, err
	}
	t, err := scanTag(tx.QueryRow(ctx, tagFindQuery+` WHERE id = $1`, pgUUID(id)))
	if err != nil {
		return tag.Tag{}, mapPgError(err, "TAG_NOT_FOUND", "tag")
	}
	return t, nil
}

func (r *TagRepository) ListByStory(ctx context.Context, storyID uuid.UUID) ([]tag.Tag, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
SELECT t.id, t.tenant_id, t.name, t.created_by, t.created_at
FROM tags t
JOIN story_tags st ON st.tag_id = t.id
WHERE st.story_id = $1
ORDER BY t.name
`, pgUUID(storyID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []tag.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TagRepository) Attach(ctx context.Context, storyID, tagID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
INSERT INTO story_tags (story_id, tag_id) VALUES ($1, $2)
`, pgUUID(storyID), pgUUID(tagID))
	if err != nil {
		return mapPgError(err, "TAG_NOT_FOUND", "tag")
	}
	return nil
}

func (r *TagRepository) Detach(ctx context.Context, storyID, tagID uuid.UUID) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	t, err := tx.Exec(ctx, `
DELETE FROM story_tags WHERE story_id = $1 AND tag_id = $2
`, pgUUID(storyID), pgUUID(tagID))
	if err != nil {
		return 0, err
	}
	return int(t.RowsAffected()), nil
}

func (r *TagRepository) DetachAll(ctx context.Context, tagID uuid.UUID) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	t, err := tx.Exec(ctx, `DELETE FROM story_tags WHERE tag_id = $1`, pgUUID(tagID))
	if err != nil {
		return 0, err
	}
	return int(t.RowsAffected()), nil
}

func (r *TagRepository) DetachByStory(ctx context.Context, storyID uuid.UUID) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	t, err := tx.Exec(ctx, `DELETE FROM story_tags WHERE story_id = $1`, pgUUID(storyID))
	if err != nil {
		return 0, err
	}
	return int(t.RowsAffected()), nil
}

func (r *TagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	t, err := tx.Exec(ctx, `DELETE FROM tags WHERE id = $1`, pgUUID(id))
	if err != nil {
		return mapPgError(err, "TAG_NOT_FOUND", "tag")
	}
	if t.RowsAffected() == 0 {
		return mapPgError(pgx.ErrNoRows, "TAG_NOT_FOUND", "tag")
	}
	return nil
}

func (r *TagRepository) DeleteByWorkspace(ctx context.Context, tenantID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
DELETE FROM story_tags
USING tags
WHERE story_tags.tag_id = tags.id AND tags.tenant_id = $1
`, pgUUID(tenantID))
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `DELETE FROM tags WHERE tenant_id = $1`, pgUUID(tenantID))
	return err
}
