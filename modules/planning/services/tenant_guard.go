package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mapwise/storymap/pkg/serrors"
)

// TenantResolver resolves the owning workspace of a referenced id. Unknown
// ids surface as NotFound from the persistence layer.
type TenantResolver interface {
	WorkspaceOfJourney(ctx context.Context, journeyID uuid.UUID) (uuid.UUID, error)
	WorkspaceOfStep(ctx context.Context, stepID uuid.UUID) (uuid.UUID, error)
	WorkspaceOfRelease(ctx context.Context, releaseID uuid.UUID) (uuid.UUID, error)
	WorkspaceOfStory(ctx context.Context, storyID uuid.UUID) (uuid.UUID, error)
	WorkspaceOfTag(ctx context.Context, tagID uuid.UUID) (uuid.UUID, error)
	WorkspaceOfPersona(ctx context.Context, personaID uuid.UUID) (uuid.UUID, error)
}

// TenantGuard rejects mutations that cross a workspace boundary. Deletion
// paths answer a cross-tenant id with NotFound so existence is never
// confirmed to an outsider; object-linking paths, which have already loaded
// both sides, name the mismatch instead.
type TenantGuard struct {
	resolver TenantResolver
}

func NewTenantGuard(resolver TenantResolver) *TenantGuard {
	return &TenantGuard{resolver: resolver}
}

func (g *TenantGuard) requireOwned(owner uuid.UUID, err error, tenantID uuid.UUID, code, entity string) error {
	if err != nil {
		return err
	}
	if owner != tenantID {
		return serrors.NewNotFound(code, entity+" not found")
	}
	return nil
}

func (g *TenantGuard) RequireJourney(ctx context.Context, tenantID, journeyID uuid.UUID) error {
	owner, err := g.resolver.WorkspaceOfJourney(ctx, journeyID)
	return g.requireOwned(owner, err, tenantID, "JOURNEY_NOT_FOUND", "journey")
}

func (g *TenantGuard) RequireStep(ctx context.Context, tenantID, stepID uuid.UUID) error {
	owner, err := g.resolver.WorkspaceOfStep(ctx, stepID)
	return g.requireOwned(owner, err, tenantID, "STEP_NOT_FOUND", "step")
}

func (g *TenantGuard) RequireRelease(ctx context.Context, tenantID, releaseID uuid.UUID) error {
	owner, err := g.resolver.WorkspaceOfRelease(ctx, releaseID)
	return g.requireOwned(owner, err, tenantID, "RELEASE_NOT_FOUND", "release")
}

func (g *TenantGuard) RequireStory(ctx context.Context, tenantID, storyID uuid.UUID) error {
	owner, err := g.resolver.WorkspaceOfStory(ctx, storyID)
	return g.requireOwned(owner, err, tenantID, "STORY_NOT_FOUND", "story")
}

func (g *TenantGuard) RequireTag(ctx context.Context, tenantID, tagID uuid.UUID) error {
	owner, err := g.resolver.WorkspaceOfTag(ctx, tagID)
	return g.requireOwned(owner, err, tenantID, "TAG_NOT_FOUND", "tag")
}

func (g *TenantGuard) RequirePersona(ctx context.Context, tenantID, personaID uuid.UUID) error {
	owner, err := g.resolver.WorkspaceOfPersona(ctx, personaID)
	return g.requireOwned(owner, err, tenantID, "PERSONA_NOT_FOUND", "persona")
}

// SameWorkspace compares two already-resolved owners and names the mismatch.
// Used on move and link paths, where both entities were loaded first and an
// actionable diagnostic beats hiding existence.
func (g *TenantGuard) SameWorkspace(ownerA, ownerB uuid.UUID, what string) error {
	if ownerA == ownerB {
		return nil
	}
	return serrors.NewBusinessRule(
		"TENANT_MISMATCH",
		fmt.Sprintf("%s belongs to workspace %s, not %s", what, ownerB, ownerA),
	)
}

// StoryWorkspaces resolves the owners of both stories of a link pair.
func (g *TenantGuard) StoryWorkspaces(ctx context.Context, sourceID, targetID uuid.UUID) (uuid.UUID, uuid.UUID, error) {
	sourceOwner, err := g.resolver.WorkspaceOfStory(ctx, sourceID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	targetOwner, err := g.resolver.WorkspaceOfStory(ctx, targetID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return sourceOwner, targetOwner, nil
}
