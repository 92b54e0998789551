package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mapwise/storymap/modules/planning/domain/entities/storylink"
	"github.com/mapwise/storymap/pkg/composables"
)

const linkFindQuery = `
SELECT id, source_story_id, target_story_id, link_type, created_at
FROM story_links`

type StoryLinkRepository struct{}

func NewStoryLinkRepository() storylink.Repository {
	return &StoryLinkRepository{}
}

func scanLink(row pgx.Row) (storylink.Link, error) {
	var (
		id        uuid.UUID
		sourceID  uuid.UUID
		targetID  uuid.UUID
		linkType  string
		createdAt time.Time
	)
	if err := row.Scan(&id, &sourceID, &targetID, &linkType, &createdAt); err != nil {
		return storylink.Link{}, err
	}
	return storylink.Hydrate(id, sourceID, targetID, storylink.Type(linkType), createdAt), nil
}

func (r *StoryLinkRepository) Create(ctx context.Context, l storylink.Link) (storylink.Link, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return storylink.Link{}, err
	}
	_, err = tx.Exec(ctx, `
INSERT INTO story_links (id, source_story_id, target_story_id, link_type, created_at)
VALUES ($1, $2, $3, $4, $5)
`, pgUUID(l.ID()), pgUUID(l.SourceStoryID()), pgUUID(l.TargetStoryID()), string(l.LinkType()), l.CreatedAt())
	if err != nil {
		return storylink.Link{}, mapPgError(err, "LINK_NOT_FOUND", "story link")
	}
	return l, nil
}

func (r *StoryLinkRepository) Exists(ctx context.Context, sourceStoryID, targetStoryID uuid.UUID, linkType storylink.Type) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}
	var exists bool
	err = tx.QueryRow(ctx, `
SELECT EXISTS (
	SELECT 1 FROM story_links
	WHERE source_story_id = $1 AND target_story_id = $2 AND link_type = $3
)
`, pgUUID(sourceStoryID), pgUUID(targetStoryID), string(linkType)).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *StoryLinkRepository) listBy(ctx context.Context, query string, args ...any) ([]storylink.Link, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []storylink.Link
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *StoryLinkRepository) ListBySource(ctx context.Context, storyID uuid.UUID) ([]storylink.Link, error) {
	return r.listBy(ctx, linkFindQuery+` WHERE source_story_id = $1 ORDER BY created_at, id`, pgUUID(storyID))
}

func (r *StoryLinkRepository) ListByTarget(ctx context.Context, storyID uuid.UUID) ([]storylink.Link, error) {
	return r.listBy(ctx, linkFindQuery+` WHERE target_story_id = $1 ORDER BY created_at, id`, pgUUID(storyID))
}

func (r *StoryLinkRepository) DeleteByPair(ctx context.Context, sourceStoryID, targetStoryID uuid.UUID) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	tag, err := tx.Exec(ctx, `
DELETE FROM story_links WHERE source_story_id = $1 AND target_story_id = $2
`, pgUUID(sourceStoryID), pgUUID(targetStoryID))
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *StoryLinkRepository) DeleteIncident(ctx context.Context, storyID uuid.UUID) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	tag, err := tx.Exec(ctx, `
DELETE FROM story_links WHERE source_story_id = $1 OR target_story_id = $1
`, pgUUID(storyID))
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *StoryLinkRepository) DeleteByWorkspace(ctx context.Context, tenantID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
DELETE FROM story_links
USING stories, releases
WHERE story_links.source_story_id = stories.id
  AND stories.release_id = releases.id
  AND releases.tenant_id = $1
`, pgUUID(tenantID))
	return err
}
