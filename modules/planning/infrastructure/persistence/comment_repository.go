package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mapwise/storymap/modules/planning/domain/entities/comment"
	"github.com/mapwise/storymap/pkg/composables"
)

const commentFindQuery = `
SELECT id, story_id, release_id, body, created_by, created_at
FROM comments`

type CommentRepository struct{}

func NewCommentRepository() comment.Repository {
	return &CommentRepository{}
}

func scanComment(row pgx.Row) (comment.Comment, error) {
	var (
		id        uuid.UUID
		storyID   pgtype.UUID
		releaseID pgtype.UUID
		body      string
		createdBy uuid.UUID
		createdAt time.Time
	)
	if err := row.Scan(&id, &storyID, &releaseID, &body, &createdBy, &createdAt); err != nil {
		return comment.Comment{}, err
	}
	return comment.Hydrate(id, nullableUUIDFromPg(storyID), nullableUUIDFromPg(releaseID), body, createdBy, createdAt), nil
}

func (r *CommentRepository) Create(ctx context.Context, c comment.Comment) (comment.Comment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return comment.Comment{}, err
	}
	_, err = tx.Exec(ctx, `
INSERT INTO comments (id, story_id, release_id, body, created_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
`, pgUUID(c.ID()), pgNullableUUID(c.StoryID()), pgNullableUUID(c.ReleaseID()), c.Body(), pgUUID(c.CreatedBy()), c.CreatedAt())
	if err != nil {
		return comment.Comment{}, mapPgError(err, "COMMENT_NOT_FOUND", "comment")
	}
	return c, nil
}

func (r *CommentRepository) listBy(ctx context.Context, query string, args ...any) ([]comment.Comment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []comment.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CommentRepository) ListByStory(ctx context.Context, storyID uuid.UUID) ([]comment.Comment, error) {
	return r.listBy(ctx, commentFindQuery+` WHERE story_id = $1 ORDER BY created_at, id`, pgUUID(storyID))
}

func (r *CommentRepository) ListByRelease(ctx context.Context, releaseID uuid.UUID) ([]comment.Comment, error) {
	return r.listBy(ctx, commentFindQuery+` WHERE release_id = $1 ORDER BY created_at, id`, pgUUID(releaseID))
}

func (r *CommentRepository) DeleteByStory(ctx context.Context, storyID uuid.UUID) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM comments WHERE story_id = $1`, pgUUID(storyID))
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *CommentRepository) DeleteByRelease(ctx context.Context, releaseID uuid.UUID) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM comments WHERE release_id = $1`, pgUUID(releaseID))
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *CommentRepository) DeleteByWorkspace(ctx context.Context, tenantID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
DELETE FROM comments
USING releases
WHERE comments.release_id = releases.id AND releases.tenant_id = $1
`, pgUUID(tenantID))
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
DELETE FROM comments
USING stories, releases
WHERE comments.story_id = stories.id
  AND stories.release_id = releases.id
  AND releases.tenant_id = $1
`, pgUUID(tenantID))
	return err
}
