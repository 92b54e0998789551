// Package step defines the columns of a journey lane. Steps are densely
// ordered within their journey; together with a release they form the cell a
// story is positioned in.
package step

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Step struct {
	id        uuid.UUID
	journeyID uuid.UUID
	name      string
	sortOrder int
	createdBy uuid.UUID
	updatedBy uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

func New(journeyID uuid.UUID, name string, sortOrder int, createdBy uuid.UUID) Step {
	now := time.Now().UTC()
	return Step{
		id:        uuid.New(),
		journeyID: journeyID,
		name:      strings.TrimSpace(name),
		sortOrder: sortOrder,
		createdBy: createdBy,
		updatedBy: createdBy,
		createdAt: now,
		updatedAt: now,
	}
}

func Hydrate(
	id uuid.UUID,
	journeyID uuid.UUID,
	name string,
	sortOrder int,
	createdBy uuid.UUID,
	updatedBy uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) Step {
	return Step{
		id:        id,
		journeyID: journeyID,
		name:      name,
		sortOrder: sortOrder,
		createdBy: createdBy,
		updatedBy: updatedBy,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s Step) ID() uuid.UUID        { return s.id }
func (s Step) JourneyID() uuid.UUID { return s.journeyID }
func (s Step) Name() string         { return s.name }
func (s Step) SortOrder() int       { return s.sortOrder }
func (s Step) CreatedBy() uuid.UUID { return s.createdBy }
func (s Step) UpdatedBy() uuid.UUID { return s.updatedBy }
func (s Step) CreatedAt() time.Time { return s.createdAt }
func (s Step) UpdatedAt() time.Time { return s.updatedAt }
func (s Step) IsZero() bool         { return s.id == uuid.Nil }
