// Package journey defines the top level of a workspace's story map: a
// horizontally ordered lane of steps. Journey names are unique per workspace
// and sort orders are dense, zero based.
package journey

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Journey struct {
	id        uuid.UUID
	tenantID  uuid.UUID
	name      string
	sortOrder int
	createdBy uuid.UUID
	updatedBy uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

func New(tenantID uuid.UUID, name string, sortOrder int, createdBy uuid.UUID) Journey {
	now := time.Now().UTC()
	return Journey{
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

func Hydrate(
	id uuid.UUID,
	tenantID uuid.UUID,
	name string,
	sortOrder int,
	createdBy uuid.UUID,
	updatedBy uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) Journey {
	return Journey{
		id:        id,
		tenantID:  tenantID,
		name:      name,
		sortOrder: sortOrder,
		createdBy: createdBy,
		updatedBy: updatedBy,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (j Journey) ID() uuid.UUID        { return j.id }
func (j Journey) TenantID() uuid.UUID  { return j.tenantID }
func (j Journey) Name() string         { return j.name }
func (j Journey) SortOrder() int       { return j.sortOrder }
func (j Journey) CreatedBy() uuid.UUID { return j.createdBy }
func (j Journey) UpdatedBy() uuid.UUID { return j.updatedBy }
func (j Journey) CreatedAt() time.Time { return j.createdAt }
func (j Journey) UpdatedAt() time.Time { return j.updatedAt }
func (j Journey) IsZero() bool         { return j.id == uuid.Nil }
