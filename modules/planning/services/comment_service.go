package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/mapwise/storymap/modules/planning/domain/entities/comment"
	"github.com/mapwise/storymap/pkg/composables"
	"github.com/mapwise/storymap/pkg/eventbus"
	"github.com/mapwise/storymap/pkg/serrors"
)

type CommentService struct {
	repo      comment.Repository
	guard     *TenantGuard
	publisher eventbus.EventBus
}

func NewCommentService(repo comment.Repository, guard *TenantGuard, publisher eventbus.EventBus) *CommentService {
	return &CommentService{
		repo:      repo,
		guard:     guard,
		publisher: publisher,
	}
}

func (s *CommentService) CreateForStory(ctx context.Context, tenantID, storyID uuid.UUID, body string, actorID uuid.UUID) (comment.Comment, error) {
	if body == "" {
		return comment.Comment{}, serrors.NewValidation("COMMENT_BODY_REQUIRED", "comment body is required")
	}
	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (comment.Comment, error) {
		if err := s.guard.RequireStory(txCtx, tenantID, storyID); err != nil {
			return comment.Comment{}, err
		}
		return s.repo.Create(txCtx, comment.NewForStory(storyID, body, actorID))
	})
	if err != nil {
		return comment.Comment{}, err
	}

	s.publisher.Publish("comment.created", created.ID())
	return created, nil
}

func (s *CommentService) CreateForRelease(ctx context.Context, tenantID, releaseID uuid.UUID, body string, actorID uuid.UUID) (comment.Comment, error) {
	if body == "" {
		return comment.Comment{}, serrors.NewValidation("COMMENT_BODY_REQUIRED", "comment body is required")
	}
	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (comment.Comment, error) {
		if err := s.guard.RequireRelease(txCtx, tenantID, releaseID); err != nil {
			return comment.Comment{}, err
		}
		return s.repo.Create(txCtx, comment.NewForRelease(releaseID, body, actorID))
	})
	if err != nil {
		return comment.Comment{}, err
	}

	s.publisher.Publish("comment.created", created.ID())
	return created, nil
}

func (s *CommentService) ListByStory(ctx context.Context, tenantID, storyID uuid.UUID) ([]comment.Comment, error) {
	if err := s.guard.RequireStory(ctx, tenantID, storyID); err != nil {
		return nil, err
	}
	return s.repo.ListByStory(ctx, storyID)
}

func (s *CommentService) ListByRelease(ctx context.Context, tenantID, releaseID uuid.UUID) ([]comment.Comment, error) {
	if err := s.guard.RequireRelease(ctx, tenantID, releaseID); err != nil {
		return nil, err
	}
	return s.repo.ListByRelease(ctx, releaseID)
}
