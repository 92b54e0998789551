package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/mapwise/storymap/modules/planning/domain/entities/release"
	"github.com/mapwise/storymap/modules/planning/domain/entities/workspace"
	"github.com/mapwise/storymap/pkg/composables"
	"github.com/mapwise/storymap/pkg/eventbus"
	"github.com/mapwise/storymap/pkg/serrors"
)

type WorkspaceService struct {
	repo      workspace.Repository
	releases  release.Repository
	publisher eventbus.EventBus
}

func NewWorkspaceService(repo workspace.Repository, releases release.Repository, publisher eventbus.EventBus) *WorkspaceService {
	return &WorkspaceService{
		repo:      repo,
		releases:  releases,
		publisher: publisher,
	}
}

// Create provisions a workspace together with its sentinel release. The
// sentinel is born here and only here, pinned at sort order zero; the generic
// release creation path never produces one.
func (s *WorkspaceService) Create(ctx context.Context, name string, actorID uuid.UUID) (workspace.Workspace, error) {
	if name == "" {
		return workspace.Workspace{}, serrors.NewValidation("WORKSPACE_NAME_REQUIRED", "workspace name is required")
	}

	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (workspace.Workspace, error) {
		w, err := s.repo.Create(txCtx, workspace.New(name, actorID))
		if err != nil {
			return workspace.Workspace{}, err
		}
		if _, err := s.releases.Create(txCtx, release.NewSentinel(w.ID(), actorID)); err != nil {
			return workspace.Workspace{}, err
		}
		return w, nil
	})
	if err != nil {
		return workspace.Workspace{}, err
	}

	s.publisher.Publish("workspace.created", created.ID())
	return created, nil
}

func (s *WorkspaceService) GetByID(ctx context.Context, id uuid.UUID) (workspace.Workspace, error) {
	return s.repo.GetByID(ctx, id)
}
