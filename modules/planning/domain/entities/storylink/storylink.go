// Package storylink defines the directed dependency edges between stories.
// Edges never cross a workspace boundary, never loop back to their source,
// and the (source, target, type) triple is unique; distinct types between the
// same ordered pair are separate edges.
package storylink

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeBlocks     Type = "blocks"
	TypeRelatesTo  Type = "relates_to"
	TypeDuplicates Type = "duplicates"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeBlocks, TypeRelatesTo, TypeDuplicates:
		return true
	}
	return false
}

type Link struct {
	id            uuid.UUID
	sourceStoryID uuid.UUID
	targetStoryID uuid.UUID
	linkType      Type
	createdAt     time.Time
}

func New(sourceStoryID, targetStoryID uuid.UUID, linkType Type) Link {
	return Link{
		id:            uuid.New(),
		sourceStoryID: sourceStoryID,
		targetStoryID: targetStoryID,
		linkType:      linkType,
		createdAt:     time.Now().UTC(),
	}
}

func Hydrate(
	id uuid.UUID,
	sourceStoryID uuid.UUID,
	targetStoryID uuid.UUID,
	linkType Type,
	createdAt time.Time,
) Link {
	return Link{
		id:            id,
		sourceStoryID: sourceStoryID,
		targetStoryID: targetStoryID,
		linkType:      linkType,
		createdAt:     createdAt,
	}
}

func (l Link) ID() uuid.UUID            { return l.id }
func (l Link) SourceStoryID() uuid.UUID { return l.sourceStoryID }
func (l Link) TargetStoryID() uuid.UUID { return l.targetStoryID }
func (l Link) LinkType() Type           { return l.linkType }
func (l Link) CreatedAt() time.Time     { return l.createdAt }
func (l Link) IsZero() bool             { return l.id == uuid.Nil }
