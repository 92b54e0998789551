package persona

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p Persona) (Persona, error)
	GetByID(ctx context.Context, id uuid.UUID) (Persona, error)
	ListByStory(ctx context.Context, storyID uuid.UUID) ([]Persona, error)
	Attach(ctx context.Context, storyID, personaID uuid.UUID) error
	Detach(ctx context.Context, storyID, personaID uuid.UUID) (int, error)
	DetachAll(ctx context.Context, personaID uuid.UUID) (int, error)
	DetachByStory(ctx context.Context, storyID uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByWorkspace(ctx context.Context, tenantID uuid.UUID) error
}
