package tag

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Tag struct {
	id        uuid.UUID
	tenantID  uuid.UUID
	name      string
	createdBy uuid.UUID
	createdAt time.Time
}

func New(tenantID uuid.UUID, name string, createdBy uuid.UUID) Tag {
	return Tag{
		id:        uuid.New(),
		tenantID:  tenantID,
		name:      strings.TrimSpace(name),
		createdBy: createdBy,
		createdAt: time.Now().UTC(),
	}
}

func Hydrate(id, tenantID uuid.UUID, name string, createdBy uuid.UUID, createdAt time.Time) Tag {
	return Tag{id: id, tenantID: tenantID, name: name, createdBy: createdBy, createdAt: createdAt}
}

func (t Tag) ID() uuid.UUID        { return t.id }
func (t Tag) TenantID() uuid.UUID  { return t.tenantID }
func (t Tag) Name() string         { return t.name }
func (t Tag) CreatedBy() uuid.UUID { return t.createdBy }
func (t Tag) CreatedAt() time.Time { return t.createdAt }
func (t Tag) IsZero() bool         { return t.id == uuid.Nil }
