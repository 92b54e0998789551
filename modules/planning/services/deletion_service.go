package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mapwise/storymap/modules/planning/domain/entities/comment"
	"github.com/mapwise/storymap/modules/planning/domain/entities/journey"
	"github.com/mapwise/storymap/modules/planning/domain/entities/persona"
	"github.com/mapwise/storymap/modules/planning/domain/entities/release"
	"github.com/mapwise/storymap/modules/planning/domain/entities/step"
	"github.com/mapwise/storymap/modules/planning/domain/entities/story"
	"github.com/mapwise/storymap/modules/planning/domain/entities/storylink"
	"github.com/mapwise/storymap/modules/planning/domain/entities/tag"
	"github.com/mapwise/storymap/modules/planning/domain/entities/workspace"
	"github.com/mapwise/storymap/pkg/composables"
	"github.com/mapwise/storymap/pkg/eventbus"
	"github.com/mapwise/storymap/pkg/serrors"
)

// DeletionService is the single gate through which planning entities are
// destroyed. It encodes the per-kind policy: cascade to owned children,
// reassign stories of a deleted release to the sentinel, detach associations
// for tags and personas. Each delete runs in one transaction; the first
// violated invariant aborts the whole cascade.
type DeletionService struct {
	workspaces workspace.Repository
	journeys   journey.Repository
	steps      step.Repository
	releases   release.Repository
	stories    story.Repository
	links      storylink.Repository
	tags       tag.Repository
	personas   persona.Repository
	comments   comment.Repository
	guard      *TenantGuard
	publisher  eventbus.EventBus
	log        *logrus.Logger
}

type DeletionServiceParams struct {
	Workspaces workspace.Repository
	Journeys   journey.Repository
	Steps      step.Repository
	Releases   release.Repository
	Stories    story.Repository
	Links      storylink.Repository
	Tags       tag.Repository
	Personas   persona.Repository
	Comments   comment.Repository
	Guard      *TenantGuard
	Publisher  eventbus.EventBus
	Log        *logrus.Logger
}

func NewDeletionService(p DeletionServiceParams) *DeletionService {
	return &DeletionService{
		workspaces: p.Workspaces,
		journeys:   p.Journeys,
		steps:      p.Steps,
		releases:   p.Releases,
		stories:    p.Stories,
		links:      p.Links,
		tags:       p.Tags,
		personas:   p.Personas,
		comments:   p.Comments,
		guard:      p.Guard,
		publisher:  p.Publisher,
		log:        p.Log,
	}
}

// deleteStoryTx removes one story with everything hanging off it: comments,
// tag and persona associations, and every incident dependency edge. Returns
// the number of edges removed.
func (s *DeletionService) deleteStoryTx(ctx context.Context, storyID uuid.UUID) (int, error) {
	if _, err := s.comments.DeleteByStory(ctx, storyID); err != nil {
		return 0, err
	}
	if _, err := s.tags.DetachByStory(ctx, storyID); err != nil {
		return 0, err
	}
	if _, err := s.personas.DetachByStory(ctx, storyID); err != nil {
		return 0, err
	}
	removed, err := s.links.DeleteIncident(ctx, storyID)
	if err != nil {
		return 0, err
	}
	if err := s.stories.Delete(ctx, storyID); err != nil {
		return 0, err
	}
	return removed, nil
}

// deleteStepTx removes a step and every story positioned in it. Sibling
// compaction is the caller's concern: a step dying alone needs it, a step
// dying with its journey does not.
func (s *DeletionService) deleteStepTx(ctx context.Context, stepID uuid.UUID) error {
	stories, err := s.stories.ListByStep(ctx, stepID)
	if err != nil {
		return err
	}
	for _, st := range stories {
		if _, err := s.deleteStoryTx(ctx, st.ID()); err != nil {
			return err
		}
	}
	return s.steps.Delete(ctx, stepID)
}

func (s *DeletionService) deleteJourneyTx(ctx context.Context, journeyID uuid.UUID) error {
	steps, err := s.steps.ListByJourney(ctx, journeyID)
	if err != nil {
		return err
	}
	for _, st := range steps {
		if err := s.deleteStepTx(ctx, st.ID()); err != nil {
			return err
		}
	}
	return s.journeys.Delete(ctx, journeyID)
}

// DeleteStory removes a story and reports how many dependency edges went
// with it.
func (s *DeletionService) DeleteStory(ctx context.Context, tenantID, storyID uuid.UUID) (int, error) {
	removed, err := composables.InTxResult(ctx, func(txCtx context.Context) (int, error) {
		if err := s.guard.RequireStory(txCtx, tenantID, storyID); err != nil {
			return 0, err
		}
		return s.deleteStoryTx(txCtx, storyID)
	})
	if err != nil {
		return 0, err
	}

	s.publisher.Publish("story.deleted", storyID)
	return removed, nil
}

// DeleteStep removes a step, its stories, and compacts the journey's
// ordering.
func (s *DeletionService) DeleteStep(ctx context.Context, tenantID, stepID uuid.UUID) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		if err := s.guard.RequireStep(txCtx, tenantID, stepID); err != nil {
			return err
		}
		st, err := s.steps.GetByID(txCtx, stepID)
		if err != nil {
			return err
		}
		if err := s.deleteStepTx(txCtx, stepID); err != nil {
			return err
		}
		coll := denseCollection{
			count: func(ctx context.Context) (int, error) {
				return s.steps.CountByJourney(ctx, st.JourneyID())
			},
			shift: func(ctx context.Context, from, to, delta int) error {
				return s.steps.ShiftRange(ctx, st.JourneyID(), from, to, delta)
			},
		}
		return compactAfterRemoval(txCtx, coll, st.SortOrder())
	})
	if err != nil {
		return err
	}

	s.publisher.Publish("step.deleted", stepID)
	return nil
}

// DeleteJourney removes a journey, its steps, and the stories in those
// steps, then compacts the workspace's journey ordering.
func (s *DeletionService) DeleteJourney(ctx context.Context, tenantID, journeyID uuid.UUID) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		if err := s.guard.RequireJourney(txCtx, tenantID, journeyID); err != nil {
			return err
		}
		j, err := s.journeys.GetByID(txCtx, journeyID)
		if err != nil {
			return err
		}
		if err := s.deleteJourneyTx(txCtx, journeyID); err != nil {
			return err
		}
		coll := denseCollection{
			count: func(ctx context.Context) (int, error) {
				return s.journeys.CountByWorkspace(ctx, tenantID)
			},
			shift: func(ctx context.Context, from, to, delta int) error {
				return s.journeys.ShiftRange(ctx, tenantID, from, to, delta)
			},
		}
		return compactAfterRemoval(txCtx, coll, j.SortOrder())
	})
	if err != nil {
		return err
	}

	s.publisher.Publish("journey.deleted", journeyID)
	return nil
}

// DeleteRelease removes a non-sentinel release. Its stories are not deleted:
// each one is appended to the same step's cell in the sentinel release.
// Returns how many stories were moved.
func (s *DeletionService) DeleteRelease(ctx context.Context, tenantID, releaseID uuid.UUID, actorID uuid.UUID) (int, error) {
	moved, err := composables.InTxResult(ctx, func(txCtx context.Context) (int, error) {
		if err := s.guard.RequireRelease(txCtx, tenantID, releaseID); err != nil {
			return 0, err
		}
		r, err := s.releases.GetByID(txCtx, releaseID)
		if err != nil {
			return 0, err
		}
		if r.IsSentinel() {
			return 0, serrors.NewBusinessRule("RELEASE_SENTINEL_IMMUTABLE", "the sentinel release cannot be deleted")
		}
		sentinel, err := s.releases.GetSentinel(txCtx, tenantID)
		if err != nil {
			return 0, err
		}

		stories, err := s.stories.ListByRelease(txCtx, releaseID)
		if err != nil {
			return 0, err
		}
		// Append per target cell; the list is ordered by step then sort
		// order, so relative order within a step survives the move.
		nextOrder := make(map[uuid.UUID]int)
		for _, st := range stories {
			target := story.Cell{StepID: st.StepID(), ReleaseID: sentinel.ID()}
			order, ok := nextOrder[st.StepID()]
			if !ok {
				maxOrder, err := s.stories.MaxSortOrderInCell(txCtx, target)
				if err != nil {
					return 0, err
				}
				order = maxOrder + story.Spacing
			}
			if err := s.stories.UpdateCell(txCtx, st.ID(), target, order, actorID); err != nil {
				return 0, err
			}
			nextOrder[st.StepID()] = order + story.Spacing
		}

		if _, err := s.comments.DeleteByRelease(txCtx, releaseID); err != nil {
			return 0, err
		}
		if err := s.releases.Delete(txCtx, releaseID); err != nil {
			return 0, err
		}

		coll := denseCollection{
			count: func(ctx context.Context) (int, error) {
				return s.releases.CountByWorkspace(ctx, tenantID)
			},
			shift: func(ctx context.Context, from, to, delta int) error {
				return s.releases.ShiftRange(ctx, tenantID, from, to, delta)
			},
		}
		if err := compactAfterRemoval(txCtx, coll, r.SortOrder()); err != nil {
			return 0, err
		}
		return len(stories), nil
	})
	if err != nil {
		return 0, err
	}

	if s.log != nil {
		s.log.WithFields(logrus.Fields{
			"release_id":    releaseID,
			"stories_moved": moved,
		}).Info("release deleted, stories reassigned to sentinel")
	}
	s.publisher.Publish("release.deleted", releaseID)
	return moved, nil
}

// DeleteTag removes the tag and detaches it from every story.
func (s *DeletionService) DeleteTag(ctx context.Context, tenantID, tagID uuid.UUID) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		if err := s.guard.RequireTag(txCtx, tenantID, tagID); err != nil {
			return err
		}
		if _, err := s.tags.DetachAll(txCtx, tagID); err != nil {
			return err
		}
		return s.tags.Delete(txCtx, tagID)
	})
	if err != nil {
		return err
	}

	s.publisher.Publish("tag.deleted", tagID)
	return nil
}

// DeletePersona removes the persona and detaches it from every story.
func (s *DeletionService) DeletePersona(ctx context.Context, tenantID, personaID uuid.UUID) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		if err := s.guard.RequirePersona(txCtx, tenantID, personaID); err != nil {
			return err
		}
		if _, err := s.personas.DetachAll(txCtx, personaID); err != nil {
			return err
		}
		return s.personas.Delete(txCtx, personaID)
	})
	if err != nil {
		return err
	}

	s.publisher.Publish("persona.deleted", personaID)
	return nil
}

// DeleteWorkspace tears down the tenant and everything it owns.
func (s *DeletionService) DeleteWorkspace(ctx context.Context, tenantID uuid.UUID) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		if _, err := s.workspaces.GetByID(txCtx, tenantID); err != nil {
			return err
		}
		// Leaf rows first so foreign keys never dangle mid-cascade.
		if err := s.links.DeleteByWorkspace(txCtx, tenantID); err != nil {
			return err
		}
		if err := s.comments.DeleteByWorkspace(txCtx, tenantID); err != nil {
			return err
		}
		if err := s.tags.DeleteByWorkspace(txCtx, tenantID); err != nil {
			return err
		}
		if err := s.personas.DeleteByWorkspace(txCtx, tenantID); err != nil {
			return err
		}
		if err := s.stories.DeleteByWorkspace(txCtx, tenantID); err != nil {
			return err
		}
		if err := s.steps.DeleteByWorkspace(txCtx, tenantID); err != nil {
			return err
		}
		if err := s.journeys.DeleteByWorkspace(txCtx, tenantID); err != nil {
			return err
		}
		if err := s.releases.DeleteByWorkspace(txCtx, tenantID); err != nil {
			return err
		}
		return s.workspaces.Delete(txCtx, tenantID)
	})
	if err != nil {
		return err
	}

	if s.log != nil {
		s.log.WithField("tenant_id", tenantID).Info("workspace deleted")
	}
	s.publisher.Publish("workspace.deleted", tenantID)
	return nil
}
