package persona

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Persona struct {
	id        uuid.UUID
	tenantID  uuid.UUID
	name      string
	createdBy uuid.UUID
	createdAt time.Time
}

func New(tenantID uuid.UUID, name string, createdBy uuid.UUID) Persona {
	return Persona{
		id:        uuid.New(),
		tenantID:  tenantID,
		name:      strings.TrimSpace(name),
		createdBy: createdBy,
		createdAt: time.Now().UTC(),
	}
}

func Hydrate(id, tenantID uuid.UUID, name string, createdBy uuid.UUID, createdAt time.Time) Persona {
	return Persona{id: id, tenantID: tenantID, name: name, createdBy: createdBy, createdAt: createdAt}
}

func (p Persona) ID() uuid.UUID        { return p.id }
func (p Persona) TenantID() uuid.UUID  { return p.tenantID }
func (p Persona) Name() string         { return p.name }
func (p Persona) CreatedBy() uuid.UUID { return p.createdBy }
func (p Persona) CreatedAt() time.Time { return p.createdAt }
func (p Persona) IsZero() bool         { return p.id == uuid.Nil }
