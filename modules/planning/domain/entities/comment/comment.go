// Package comment defines remarks attached to exactly one story or one
// release. Comments die with their owner; the deletion paths remove them
// inside the owning transaction.
package comment

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	id        uuid.UUID
	storyID   *uuid.UUID
	releaseID *uuid.UUID
	body      string
	createdBy uuid.UUID
	createdAt time.Time
}

func NewForStory(storyID uuid.UUID, body string, createdBy uuid.UUID) Comment {
	return Comment{
		id:        uuid.New(),
		storyID:   &storyID,
		body:      strings.TrimSpace(body),
		createdBy: createdBy,
		createdAt: time.Now().UTC(),
	}
}

func NewForRelease(releaseID uuid.UUID, body string, createdBy uuid.UUID) Comment {
	return Comment{
		id:        uuid.New(),
		releaseID: &releaseID,
		body:      strings.TrimSpace(body),
		createdBy: createdBy,
		createdAt: time.Now().UTC(),
	}
}

func Hydrate(
	id uuid.UUID,
	storyID *uuid.UUID,
	releaseID *uuid.UUID,
	body string,
	createdBy uuid.UUID,
	createdAt time.Time,
) Comment {
	return Comment{
		id:        id,
		storyID:   storyID,
		releaseID: releaseID,
		body:      body,
		createdBy: createdBy,
		createdAt: createdAt,
	}
}

func (c Comment) ID() uuid.UUID         { return c.id }
func (c Comment) StoryID() *uuid.UUID   { return c.storyID }
func (c Comment) ReleaseID() *uuid.UUID { return c.releaseID }
func (c Comment) Body() string          { return c.body }
func (c Comment) CreatedBy() uuid.UUID  { return c.createdBy }
func (c Comment) CreatedAt() time.Time  { return c.createdAt }
func (c Comment) IsZero() bool          { return c.id == uuid.Nil }
