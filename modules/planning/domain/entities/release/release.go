// Package release defines the horizontal slices of a workspace's story map.
// Every workspace owns exactly one sentinel release: created with the
// workspace, pinned at sort order zero, never reordered or deleted. Stories
// from a deleted release are reassigned to it.
package release

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Release struct {
	id         uuid.UUID
	tenantID   uuid.UUID
	name       string
	sortOrder  int
	isSentinel bool
	createdBy  uuid.UUID
	updatedBy  uuid.UUID
	createdAt  time.Time
	updatedAt  time.Time
}

func New(tenantID uuid.UUID, name string, sortOrder int, createdBy uuid.UUID) Release {
	now := time.Now().UTC()
	return Release{
		id:        uuid.New(),
		tenantID:  tenantID,
		name:      strings.TrimSpace(name),
		sortOrder: sortOrder,
		createdBy: createdBy,
		updatedBy: createdBy,
		createdAt: now,
		updatedAt: now,
	}
}

// NewSentinel builds the fallback release a workspace is born with. This is
// the only construction path that sets the sentinel flag.
func NewSentinel(tenantID uuid.UUID, createdBy uuid.UUID) Release {
	r := New(tenantID, "Unscheduled", 0, createdBy)
	r.isSentinel = true
	return r
}

func Hydrate(
	id uuid.UUID,
	tenantID uuid.UUID,
	name string,
	sortOrder int,
	isSentinel bool,
	createdBy uuid.UUID,
	updatedBy uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) Release {
	return Release{
		id:         id,
		tenantID:   tenantID,
		name:       name,
		sortOrder:  sortOrder,
		isSentinel: isSentinel,
		createdBy:  createdBy,
		updatedBy:  updatedBy,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (r Release) ID() uuid.UUID        { return r.id }
func (r Release) TenantID() uuid.UUID  { return r.tenantID }
func (r Release) Name() string         { return r.name }
func (r Release) SortOrder() int       { return r.sortOrder }
func (r Release) IsSentinel() bool     { return r.isSentinel }
func (r Release) CreatedBy() uuid.UUID { return r.createdBy }
func (r Release) UpdatedBy() uuid.UUID { return r.updatedBy }
func (r Release) CreatedAt() time.Time { return r.createdAt }
func (r Release) UpdatedAt() time.Time { return r.updatedAt }
func (r Release) IsZero() bool         { return r.id == uuid.Nil }
