package storylink

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, l Link) (Link, error)
	Exists(ctx context.Context, sourceStoryID, targetStoryID uuid.UUID, linkType Type) (bool, error)
	// ListBySource and ListByTarget return edges in insertion order.
	ListBySource(ctx context.Context, storyID uuid.UUID) ([]Link, error)
	ListByTarget(ctx context.Context, storyID uuid.UUID) ([]Link, error)
	// DeleteByPair removes every edge for the ordered pair regardless of
	// type and reports how many were removed.
	DeleteByPair(ctx context.Context, sourceStoryID, targetStoryID uuid.UUID) (int, error)
	// DeleteIncident removes every edge where the story is source or target.
	DeleteIncident(ctx context.Context, storyID uuid.UUID) (int, error)
	DeleteByWorkspace(ctx context.Context, tenantID uuid.UUID) error
}
