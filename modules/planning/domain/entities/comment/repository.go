package comment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, c Comment) (Comment, error)
	ListByStory(ctx context.Context, storyID uuid.UUID) ([]Comment, error)
	ListByRelease(ctx context.Context, releaseID uuid.UUID) ([]Comment, error)
	DeleteByStory(ctx context.Context, storyID uuid.UUID) (int, error)
	DeleteByRelease(ctx context.Context, releaseID uuid.UUID) (int, error)
	DeleteByWorkspace(ctx context.Context, tenantID uuid.UUID) error
}
