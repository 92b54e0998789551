package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/mapwise/storymap/modules/planning/domain/entities/story"
	"github.com/mapwise/storymap/pkg/composables"
	"github.com/mapwise/storymap/pkg/eventbus"
	"github.com/mapwise/storymap/pkg/serrors"
)

type StoryService struct {
	repo      story.Repository
	guard     *TenantGuard
	publisher eventbus.EventBus
}

func NewStoryService(repo story.Repository, guard *TenantGuard, publisher eventbus.EventBus) *StoryService {
	return &StoryService{
		repo:      repo,
		guard:     guard,
		publisher: publisher,
	}
}

// placeAtEnd computes the sparse sort order for a story appended to a cell.
// In an append-only cell this is (stories already there + 1) x 1000; basing
// it on the current maximum keeps orders strictly increasing even after
// earlier moves have left gaps behind. The spacing is reserved for a future
// insert-anywhere scheme built on midpoints.
func (s *StoryService) placeAtEnd(ctx context.Context, cell story.Cell) (int, error) {
	maxOrder, err := s.repo.MaxSortOrderInCell(ctx, cell)
	if err != nil {
		return 0, err
	}
	return maxOrder + story.Spacing, nil
}

func (s *StoryService) Create(ctx context.Context, tenantID, stepID, releaseID uuid.UUID, title string, status story.Status, actorID uuid.UUID) (story.Story, error) {
	dto := story.CreateDTO{Title: title, Status: string(status)}
	if fields, ok := dto.Ok(); !ok {
		if _, bad := fields["Title"]; bad {
			return story.Story{}, serrors.NewValidation("STORY_TITLE_REQUIRED", "story title is required")
		}
		return story.Story{}, serrors.NewValidation("STORY_INVALID_STATUS", "invalid story status: "+string(status))
	}
	title = dto.Title
	if status == "" {
		status = story.StatusTodo
	}

	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (story.Story, error) {
		if err := s.guard.RequireStep(txCtx, tenantID, stepID); err != nil {
			return story.Story{}, err
		}
		if err := s.guard.RequireRelease(txCtx, tenantID, releaseID); err != nil {
			return story.Story{}, err
		}
		cell := story.Cell{StepID: stepID, ReleaseID: releaseID}
		sortOrder, err := s.placeAtEnd(txCtx, cell)
		if err != nil {
			return story.Story{}, err
		}
		return s.repo.Create(txCtx, story.New(stepID, releaseID, title, status, sortOrder, actorID))
	})
	if err != nil {
		return story.Story{}, err
	}

	s.publisher.Publish("story.created", created.ID())
	return created, nil
}

// Move repositions a story into the cell formed by the supplied coordinates,
// defaulting each omitted axis to the story's current one. The story lands at
// the end of the target cell; the source cell keeps its gaps, so no
// renumbering happens there.
func (s *StoryService) Move(ctx context.Context, storyID uuid.UUID, newStepID, newReleaseID *uuid.UUID, actorID uuid.UUID) (story.Story, error) {
	if newStepID == nil && newReleaseID == nil {
		return story.Story{}, serrors.NewValidation("STORY_MOVE_TARGET_REQUIRED", "either a step or a release must be supplied")
	}

	moved, err := composables.InTxResult(ctx, func(txCtx context.Context) (story.Story, error) {
		st, err := s.repo.GetByID(txCtx, storyID)
		if err != nil {
			return story.Story{}, err
		}
		storyOwner, err := s.guard.resolver.WorkspaceOfStory(txCtx, storyID)
		if err != nil {
			return story.Story{}, err
		}

		target := st.Cell()
		if newStepID != nil {
			stepOwner, err := s.guard.resolver.WorkspaceOfStep(txCtx, *newStepID)
			if err != nil {
				return story.Story{}, err
			}
			if err := s.guard.SameWorkspace(storyOwner, stepOwner, "target step"); err != nil {
				return story.Story{}, err
			}
			target.StepID = *newStepID
		}
		if newReleaseID != nil {
			releaseOwner, err := s.guard.resolver.WorkspaceOfRelease(txCtx, *newReleaseID)
			if err != nil {
				return story.Story{}, err
			}
			if err := s.guard.SameWorkspace(storyOwner, releaseOwner, "target release"); err != nil {
				return story.Story{}, err
			}
			target.ReleaseID = *newReleaseID
		}

		sortOrder, err := s.placeAtEnd(txCtx, target)
		if err != nil {
			return story.Story{}, err
		}
		if err := s.repo.UpdateCell(txCtx, storyID, target, sortOrder, actorID); err != nil {
			return story.Story{}, err
		}
		return s.repo.GetByID(txCtx, storyID)
	})
	if err != nil {
		return story.Story{}, err
	}

	s.publisher.Publish("story.moved", storyID)
	return moved, nil
}

func (s *StoryService) GetByID(ctx context.Context, tenantID, storyID uuid.UUID) (story.Story, error) {
	if err := s.guard.RequireStory(ctx, tenantID, storyID); err != nil {
		return story.Story{}, err
	}
	return s.repo.GetByID(ctx, storyID)
}

func (s *StoryService) ListByCell(ctx context.Context, tenantID uuid.UUID, cell story.Cell) ([]story.Story, error) {
	if err := s.guard.RequireStep(ctx, tenantID, cell.StepID); err != nil {
		return nil, err
	}
	if err := s.guard.RequireRelease(ctx, tenantID, cell.ReleaseID); err != nil {
		return nil, err
	}
	return s.repo.ListByCell(ctx, cell)
}

func (s *StoryService) ListByStep(ctx context.Context, tenantID, stepID uuid.UUID) ([]story.Story, error) {
	if err := s.guard.RequireStep(ctx, tenantID, stepID); err != nil {
		return nil, err
	}
	return s.repo.ListByStep(ctx, stepID)
}

func (s *StoryService) ListByRelease(ctx context.Context, tenantID, releaseID uuid.UUID) ([]story.Story, error) {
	if err := s.guard.RequireRelease(ctx, tenantID, releaseID); err != nil {
		return nil, err
	}
	return s.repo.ListByRelease(ctx, releaseID)
}
