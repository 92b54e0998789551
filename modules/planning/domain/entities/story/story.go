// Package story defines the stories of a map and the cell coordinate system
// that positions them. A story lives in exactly one (step, release) cell and
// carries a sparse sort order: a positive multiple of 1000, increasing in
// arrival order, leaving room for a future insert-anywhere scheme.
package story

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Spacing is the gap between consecutive story sort orders within a cell.
const Spacing = 1000

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Cell is the (step, release) coordinate a story is positioned at.
type Cell struct {
	StepID    uuid.UUID
	ReleaseID uuid.UUID
}

type Story struct {
	id        uuid.UUID
	stepID    uuid.UUID
	releaseID uuid.UUID
	title     string
	status    Status
	sortOrder int
	createdBy uuid.UUID
	updatedBy uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

func New(stepID, releaseID uuid.UUID, title string, status Status, sortOrder int, createdBy uuid.UUID) Story {
	now := time.Now().UTC()
	return Story{
		id:        uuid.New(),
		stepID:    stepID,
		releaseID: releaseID,
		title:     strings.TrimSpace(title),
		status:    status,
		sortOrder: sortOrder,
		createdBy: createdBy,
		updatedBy: createdBy,
		createdAt: now,
		updatedAt: now,
	}
}

func Hydrate(
	id uuid.UUID,
	stepID uuid.UUID,
	releaseID uuid.UUID,
	title string,
	status Status,
	sortOrder int,
	createdBy uuid.UUID,
	updatedBy uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) Story {
	return Story{
		id:        id,
		stepID:    stepID,
		releaseID: releaseID,
		title:     title,
		status:    status,
		sortOrder: sortOrder,
		createdBy: createdBy,
		updatedBy: updatedBy,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s Story) ID() uuid.UUID        { return s.id }
func (s Story) StepID() uuid.UUID    { return s.stepID }
func (s Story) ReleaseID() uuid.UUID { return s.releaseID }
func (s Story) Title() string        { return s.title }
func (s Story) Status() Status       { return s.status }
func (s Story) SortOrder() int       { return s.sortOrder }
func (s Story) Cell() Cell           { return Cell{StepID: s.stepID, ReleaseID: s.releaseID} }
func (s Story) CreatedBy() uuid.UUID { return s.createdBy }
func (s Story) UpdatedBy() uuid.UUID { return s.updatedBy }
func (s Story) CreatedAt() time.Time { return s.createdAt }
func (s Story) UpdatedAt() time.Time { return s.updatedAt }
func (s Story) IsZero() bool         { return s.id == uuid.Nil }
