// Package workspace defines the tenant root. Every other planning entity is
// owned, directly or transitively, by exactly one workspace.
package workspace

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Workspace struct {
	id        uuid.UUID
	name      string
	createdBy uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

func New(name string, createdBy uuid.UUID) Workspace {
	now := time.Now().UTC()
	return Workspace{
		id:        uuid.New(),
		name:      strings.TrimSpace(name),
		createdBy: createdBy,
		createdAt: now,
		updatedAt: now,
	}
}

func Hydrate(
	id uuid.UUID,
	name string,
	createdBy uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) Workspace {
	return Workspace{
		id:        id,
		name:      name,
		createdBy: createdBy,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (w Workspace) ID() uuid.UUID        { return w.id }
func (w Workspace) Name() string         { return w.name }
func (w Workspace) CreatedBy() uuid.UUID { return w.createdBy }
func (w Workspace) CreatedAt() time.Time { return w.createdAt }
func (w Workspace) UpdatedAt() time.Time { return w.updatedAt }
func (w Workspace) IsZero() bool         { return w.id == uuid.Nil }
