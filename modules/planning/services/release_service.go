package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/mapwise/storymap/modules/planning/domain/entities/release"
	"github.com/mapwise/storymap/pkg/composables"
	"github.com/mapwise/storymap/pkg/eventbus"
	"github.com/mapwise/storymap/pkg/serrors"
)

type ReleaseService struct {
	repo      release.Repository
	guard     *TenantGuard
	publisher eventbus.EventBus
}

func NewReleaseService(repo release.Repository, guard *TenantGuard, publisher eventbus.EventBus) *ReleaseService {
	return &ReleaseService{
		repo:      repo,
		guard:     guard,
		publisher: publisher,
	}
}

func (s *ReleaseService) collection(tenantID, itemID, actorID uuid.UUID) denseCollection {
	return denseCollection{
		count: func(ctx context.Context) (int, error) {
			return s.repo.CountByWorkspace(ctx, tenantID)
		},
		shift: func(ctx context.Context, from, to, delta int) error {
			return s.repo.ShiftRange(ctx, tenantID, from, to, delta)
		},
		setPos: func(ctx context.Context, pos int) error {
			return s.repo.UpdateSortOrder(ctx, itemID, pos, actorID)
		},
	}
}

// Create appends a regular release at the end of the workspace's ordering.
// The sentinel release is created by WorkspaceService.Create, never here.
func (s *ReleaseService) Create(ctx context.Context, tenantID uuid.UUID, name string, actorID uuid.UUID) (release.Release, error) {
	if name == "" {
		return release.Release{}, serrors.NewValidation("RELEASE_NAME_REQUIRED", "release name is required")
	}

	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (release.Release, error) {
		n, err := s.repo.CountByWorkspace(txCtx, tenantID)
		if err != nil {
			return release.Release{}, err
		}
		return s.repo.Create(txCtx, release.New(tenantID, name, n, actorID))
	})
	if err != nil {
		return release.Release{}, err
	}

	s.publisher.Publish("release.created", created.ID())
	return created, nil
}

func (s *ReleaseService) Reorder(ctx context.Context, tenantID, releaseID uuid.UUID, newPosition int, actorID uuid.UUID) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		if err := s.guard.RequireRelease(txCtx, tenantID, releaseID); err != nil {
			return err
		}
		r, err := s.repo.GetByID(txCtx, releaseID)
		if err != nil {
			return err
		}
		if r.IsSentinel() {
			return serrors.NewBusinessRule("RELEASE_SENTINEL_IMMUTABLE", "the sentinel release cannot be reordered")
		}
		// Position 0 is permanently held by the sentinel.
		if newPosition == 0 {
			return serrors.NewBusinessRule("RELEASE_POSITION_RESERVED", "position 0 is reserved for the sentinel release")
		}
		return reorderDense(txCtx, s.collection(tenantID, releaseID, actorID), r.SortOrder(), newPosition)
	})
	if err != nil {
		return err
	}

	s.publisher.Publish("release.reordered", releaseID)
	return nil
}

func (s *ReleaseService) GetByID(ctx context.Context, tenantID, releaseID uuid.UUID) (release.Release, error) {
	if err := s.guard.RequireRelease(ctx, tenantID, releaseID); err != nil {
		return release.Release{}, err
	}
	return s.repo.GetByID(ctx, releaseID)
}

func (s *ReleaseService) ListByWorkspace(ctx context.Context, tenantID uuid.UUID) ([]release.Release, error) {
	return s.repo.ListByWorkspace(ctx, tenantID)
}
