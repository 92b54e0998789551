package tag

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, t Tag) (Tag, error)
	GetByID(ctx context.Context, id uuid.UUID) (Tag, error)
	ListByStory(ctx context.Context, storyID uuid.UUID) ([]Tag, error)
	Attach(ctx context.Context, storyID, tagID uuid.UUID) error
	Detach(ctx context.Context, storyID, tagID uuid.UUID) (int, error)
	// DetachAll removes every story association for the tag.
	DetachAll(ctx context.Context, tagID uuid.UUID) (int, error)
	DetachByStory(ctx context.Context, storyID uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByWorkspace(ctx context.Context, tenantID uuid.UUID) error
}
