package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mapwise/storymap/modules/planning/domain/entities/storylink"
	"github.com/mapwise/storymap/pkg/composables"
	"github.com/mapwise/storymap/pkg/eventbus"
	"github.com/mapwise/storymap/pkg/serrors"
)

// Links groups the edges incident to one story.
type Links struct {
	Outgoing []storylink.Link
	Incoming []storylink.Link
}

type LinkService struct {
	repo      storylink.Repository
	guard     *TenantGuard
	publisher eventbus.EventBus
}

func NewLinkService(repo storylink.Repository, guard *TenantGuard, publisher eventbus.EventBus) *LinkService {
	return &LinkService{
		repo:      repo,
		guard:     guard,
		publisher: publisher,
	}
}

func (s *LinkService) Create(ctx context.Context, sourceID, targetID uuid.UUID, linkType storylink.Type) (storylink.Link, error) {
	if !linkType.IsValid() {
		return storylink.Link{}, serrors.NewValidation("LINK_INVALID_TYPE", "invalid link type: "+string(linkType))
	}
	if sourceID == targetID {
		return storylink.Link{}, serrors.NewBusinessRule("LINK_SELF", "a story cannot link to itself")
	}

	created, err := composables.InTxResult(ctx, func(txCtx context.Context) (storylink.Link, error) {
		sourceOwner, targetOwner, err := s.guard.StoryWorkspaces(txCtx, sourceID, targetID)
		if err != nil {
			return storylink.Link{}, err
		}
		if err := s.guard.SameWorkspace(sourceOwner, targetOwner, "target story"); err != nil {
			return storylink.Link{}, err
		}

		exists, err := s.repo.Exists(txCtx, sourceID, targetID, linkType)
		if err != nil {
			return storylink.Link{}, err
		}
		if exists {
			return storylink.Link{}, serrors.NewBusinessRule(
				"LINK_DUPLICATE",
				fmt.Sprintf("a %s link from %s to %s already exists", linkType, sourceID, targetID),
			)
		}
		return s.repo.Create(txCtx, storylink.New(sourceID, targetID, linkType))
	})
	if err != nil {
		return storylink.Link{}, err
	}

	s.publisher.Publish("storylink.created", created.ID())
	return created, nil
}

// List returns the edges where the story is source and where it is target,
// each in insertion order.
func (s *LinkService) List(ctx context.Context, tenantID, storyID uuid.UUID) (Links, error) {
	if err := s.guard.RequireStory(ctx, tenantID, storyID); err != nil {
		return Links{}, err
	}
	outgoing, err := s.repo.ListBySource(ctx, storyID)
	if err != nil {
		return Links{}, err
	}
	incoming, err := s.repo.ListByTarget(ctx, storyID)
	if err != nil {
		return Links{}, err
	}
	return Links{Outgoing: outgoing, Incoming: incoming}, nil
}

// Delete removes every edge for the exact ordered pair regardless of type.
func (s *LinkService) Delete(ctx context.Context, sourceID, targetID uuid.UUID) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		removed, err := s.repo.DeleteByPair(txCtx, sourceID, targetID)
		if err != nil {
			return err
		}
		if removed == 0 {
			return serrors.NewNotFound("LINK_NOT_FOUND", "link not found")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publisher.Publish("storylink.deleted", sourceID, targetID)
	return nil
}
