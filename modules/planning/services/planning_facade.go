package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/mapwise/storymap/modules/planning/domain/entities/storylink"
	"github.com/mapwise/storymap/pkg/serrors"
)

// CollectionKind selects one of the densely ordered sibling collections.
type CollectionKind string

const (
	CollectionJourneys CollectionKind = "journeys"
	CollectionSteps    CollectionKind = "steps"
	CollectionReleases CollectionKind = "releases"
)

// EntityKind selects a deletion policy.
type EntityKind string

const (
	KindWorkspace EntityKind = "workspace"
	KindJourney   EntityKind = "journey"
	KindStep      EntityKind = "step"
	KindRelease   EntityKind = "release"
	KindStory     EntityKind = "story"
	KindTag       EntityKind = "tag"
	KindPersona   EntityKind = "persona"
)

// Sibling is the transport-facing view of a created ordered item.
type Sibling struct {
	ID        uuid.UUID
	Name      string
	SortOrder int
}

// DeleteResult carries the side-effect metrics a deletion produced. Only the
// metric relevant to the deleted kind is set.
type DeleteResult struct {
	Success             bool
	StoriesMoved        *int
	DependenciesRemoved *int
}

// PlanningFacade is the surface handed to the transport layer: one entry
// point per command, dispatching on kind. Everything behind it is the
// individual services.
type PlanningFacade struct {
	journeys *JourneyService
	steps    *StepService
	releases *ReleaseService
	stories  *StoryService
	links    *LinkService
	deletion *DeletionService
}

func NewPlanningFacade(
	journeys *JourneyService,
	steps *StepService,
	releases *ReleaseService,
	stories *StoryService,
	links *LinkService,
	deletion *DeletionService,
) *PlanningFacade {
	return &PlanningFacade{
		journeys: journeys,
		steps:    steps,
		releases: releases,
		stories:  stories,
		links:    links,
		deletion: deletion,
	}
}

func (f *PlanningFacade) CreateSibling(ctx context.Context, kind CollectionKind, tenantID uuid.UUID, parentID *uuid.UUID, name string, actorID uuid.UUID) (Sibling, error) {
	switch kind {
	case CollectionJourneys:
		j, err := f.journeys.Create(ctx, tenantID, name, actorID)
		if err != nil {
			return Sibling{}, err
		}
		return Sibling{ID: j.ID(), Name: j.Name(), SortOrder: j.SortOrder()}, nil
	case CollectionSteps:
		if parentID == nil {
			return Sibling{}, serrors.NewValidation("STEP_JOURNEY_REQUIRED", "steps require a parent journey")
		}
		st, err := f.steps.Create(ctx, tenantID, *parentID, name, actorID)
		if err != nil {
			return Sibling{}, err
		}
		return Sibling{ID: st.ID(), Name: st.Name(), SortOrder: st.SortOrder()}, nil
	case CollectionReleases:
		r, err := f.releases.Create(ctx, tenantID, name, actorID)
		if err != nil {
			return Sibling{}, err
		}
		return Sibling{ID: r.ID(), Name: r.Name(), SortOrder: r.SortOrder()}, nil
	default:
		return Sibling{}, serrors.NewValidation("COLLECTION_KIND_UNKNOWN", "unknown collection kind: "+string(kind))
	}
}

func (f *PlanningFacade) ReorderSibling(ctx context.Context, kind CollectionKind, tenantID, itemID uuid.UUID, newPosition int, actorID uuid.UUID) error {
	switch kind {
	case CollectionJourneys:
		return f.journeys.Reorder(ctx, tenantID, itemID, newPosition, actorID)
	case CollectionSteps:
		return f.steps.Reorder(ctx, tenantID, itemID, newPosition, actorID)
	case CollectionReleases:
		return f.releases.Reorder(ctx, tenantID, itemID, newPosition, actorID)
	default:
		return serrors.NewValidation("COLLECTION_KIND_UNKNOWN", "unknown collection kind: "+string(kind))
	}
}

func (f *PlanningFacade) MoveStory(ctx context.Context, storyID uuid.UUID, newStepID, newReleaseID *uuid.UUID, actorID uuid.UUID) error {
	_, err := f.stories.Move(ctx, storyID, newStepID, newReleaseID, actorID)
	return err
}

func (f *PlanningFacade) DeleteEntity(ctx context.Context, kind EntityKind, id uuid.UUID, tenantID uuid.UUID, actorID uuid.UUID) (DeleteResult, error) {
	switch kind {
	case KindWorkspace:
		if err := f.deletion.DeleteWorkspace(ctx, id); err != nil {
			return DeleteResult{}, err
		}
		return DeleteResult{Success: true}, nil
	case KindJourney:
		if err := f.deletion.DeleteJourney(ctx, tenantID, id); err != nil {
			return DeleteResult{}, err
		}
		return DeleteResult{Success: true}, nil
	case KindStep:
		if err := f.deletion.DeleteStep(ctx, tenantID, id); err != nil {
			return DeleteResult{}, err
		}
		return DeleteResult{Success: true}, nil
	case KindRelease:
		moved, err := f.deletion.DeleteRelease(ctx, tenantID, id, actorID)
		if err != nil {
			return DeleteResult{}, err
		}
		return DeleteResult{Success: true, StoriesMoved: &moved}, nil
	case KindStory:
		removed, err := f.deletion.DeleteStory(ctx, tenantID, id)
		if err != nil {
			return DeleteResult{}, err
		}
		return DeleteResult{Success: true, DependenciesRemoved: &removed}, nil
	case KindTag:
		if err := f.deletion.DeleteTag(ctx, tenantID, id); err != nil {
			return DeleteResult{}, err
		}
		return DeleteResult{Success: true}, nil
	case KindPersona:
		if err := f.deletion.DeletePersona(ctx, tenantID, id); err != nil {
			return DeleteResult{}, err
		}
		return DeleteResult{Success: true}, nil
	default:
		return DeleteResult{}, serrors.NewValidation("ENTITY_KIND_UNKNOWN", "unknown entity kind: "+string(kind))
	}
}

func (f *PlanningFacade) CreateLink(ctx context.Context, sourceID, targetID uuid.UUID, linkType storylink.Type) (storylink.Link, error) {
	return f.links.Create(ctx, sourceID, targetID, linkType)
}

func (f *PlanningFacade) DeleteLink(ctx context.Context, sourceID, targetID uuid.UUID) error {
	return f.links.Delete(ctx, sourceID, targetID)
}

func (f *PlanningFacade) ListLinks(ctx context.Context, tenantID, storyID uuid.UUID) (Links, error) {
	return f.links.List(ctx, tenantID, storyID)
}
