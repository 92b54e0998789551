package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/mapwise/storymap/modules/planning/domain/entities/tag"
	"github.com/mapwise/storymap/pkg/composables"
	"github.com/mapwise/storymap/pkg/eventbus"
	"github.com/mapwise/storymap/pkg/serrors"
)

type TagService struct {
	repo      tag.Repository
	guard     *TenantGuard
	publisher eventbus.EventBus
}

func NewTagService(repo tag.Repository, guard *TenantGuard, publisher eventbus.EventBus) *TagService {
	return &TagService{
		repo:      repo,
		guard:     guard,
		publisher: publisher,
	}
}

func (s *TagService) Create(ctx context.Context, tenantID uuid.UUID, name string, actorID uuid.UUID) (tag.Tag, error) {
	if name == "" {
		return tag.Tag{}, serrors.NewValidation("TAG_NAME_REQUIRED", "tag name is required")
	}
	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (tag.Tag, error) {
		return s.repo.Create(txCtx, tag.New(tenantID, name, actorID))
	})
	if err != nil {
		return tag.Tag{}, err
	}

	s.publisher.Publish("tag.created", created.ID())
	return created, nil
}

// Attach associates a tag with a story. Both must live in the caller's
// workspace; a second identical association is a conflict.
func (s *TagService) Attach(ctx context.Context, tenantID, storyID, tagID uuid.UUID) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		if err := s.guard.RequireStory(txCtx, tenantID, storyID); err != nil {
			return err
		}
		if err := s.guard.RequireTag(txCtx, tenantID, tagID); err != nil {
			return err
		}
		return s.repo.Attach(txCtx, storyID, tagID)
	})
	if err != nil {
		return err
	}

	s.publisher.Publish("tag.attached", storyID, tagID)
	return nil
}

func (s *TagService) Detach(ctx context.Context, tenantID, storyID, tagID uuid.UUID) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		if err := s.guard.RequireStory(txCtx, tenantID, storyID); err != nil {
			return err
		}
		if err := s.guard.RequireTag(txCtx, tenantID, tagID); err != nil {
			return err
		}
		removed, err := s.repo.Detach(txCtx, storyID, tagID)
		if err != nil {
			return err
		}
		if removed == 0 {
			return serrors.NewNotFound("TAG_ASSOCIATION_NOT_FOUND", "tag association not found")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publisher.Publish("tag.detached", storyID, tagID)
	return nil
}

func (s *TagService) ListByStory(ctx context.Context, tenantID, storyID uuid.UUID) ([]tag.Tag, error) {
	if err := s.guard.RequireStory(ctx, tenantID, storyID); err != nil {
		return nil, err
	}
	return s.repo.ListByStory(ctx, storyID)
}
