package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/mapwise/storymap/modules/planning/services"
	"github.com/mapwise/storymap/pkg/composables"
)

// TenantResolver answers "which workspace owns this id" with single-row
// lookups. Stories, tags and personas reach the workspace through their
// release or tenant column.
type TenantResolver struct{}

func NewTenantResolver() services.TenantResolver {
	return &TenantResolver{}
}

func (r *TenantResolver) workspaceOf(ctx context.Context, query, notFoundCode, entity string, id uuid.UUID) (uuid.UUID, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	var tenantID uuid.UUID
	if err := tx.QueryRow(ctx, query, pgUUID(id)).Scan(&tenantID); err != nil {
		return uuid.Nil, mapPgError(err, notFoundCode, entity)
	}
	return tenantID, nil
}

func (r *TenantResolver) WorkspaceOfJourney(ctx context.Context, journeyID uuid.UUID) (uuid.UUID, error) {
	return r.workspaceOf(ctx, `SELECT tenant_id FROM journeys WHERE id = $1`, "JOURNEY_NOT_FOUND", "journey", journeyID)
}

func (r *TenantResolver) WorkspaceOfStep(ctx context.Context, stepID uuid.UUID) (uuid.UUID, error) {
	return r.workspaceOf(ctx, `
SELECT journeys.tenant_id
FROM steps
JOIN journeys ON journeys.id = steps.journey_id
WHERE steps.id = $1
`, "STEP_NOT_FOUND", "step", stepID)
}

func (r *TenantResolver) WorkspaceOfRelease(ctx context.Context, releaseID uuid.UUID) (uuid.UUID, error) {
	return r.workspaceOf(ctx, `SELECT tenant_id FROM releases WHERE id = $1`, "RELEASE_NOT_FOUND", "release", releaseID)
}

func (r *TenantResolver) WorkspaceOfStory(ctx context.Context, storyID uuid.UUID) (uuid.UUID, error) {
	return r.workspaceOf(ctx, `
SELECT releases.tenant_id
FROM stories
JOIN releases ON releases.id = stories.release_id
WHERE stories.id = $1
`, "STORY_NOT_FOUND", "story", storyID)
}

func (r *TenantResolver) WorkspaceOfTag(ctx context.Context, tagID uuid.UUID) (uuid.UUID, error) {
	return r.workspaceOf(ctx, `SELECT tenant_id FROM tags WHERE id = $1`, "TAG_NOT_FOUND", "tag", tagID)
}

func (r *TenantResolver) WorkspaceOfPersona(ctx context.Context, personaID uuid.UUID) (uuid.UUID, error) {
	return r.workspaceOf(ctx, `SELECT tenant_id FROM personas WHERE id = $1`, "PERSONA_NOT_FOUND", "persona", personaID)
}
