package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mapwise/storymap/modules/planning/domain/entities/persona"
	"github.com/mapwise/storymap/pkg/composables"
)

const personaFindQuery = `
SELECT id, tenant_id, name, created_by, created_at
FROM personas`

type PersonaRepository struct{}

func NewPersonaRepository() persona.Repository {
	return &PersonaRepository{}
}

func scanPersona(row pgx.Row) (persona.Persona, error) {
	var (
		id        uuid.UUID
		tenantID  uuid.UUID
		name      string
		createdBy uuid.UUID
		createdAt time.Time
	)
	if err := row.Scan(&id, &tenantID, &name, &createdBy, &createdAt); err != nil {
		return persona.Persona{}, err
	}
	return persona.Hydrate(id, tenantID, name, createdBy, createdAt), nil
}

func (r *PersonaRepository) Create(ctx context.Context, p persona.Persona) (persona.Persona, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return persona.Persona{}, err
	}
	_, err = tx.Exec(ctx, `
INSERT INTO personas (id, tenant_id, name, created_by, created_at)
VALUES ($1, $2, $3, $4, $5)
`, pgUUID(p.ID()), pgUUID(p.TenantID()), p.Name(), pgUUID(p.CreatedBy()), p.CreatedAt())
	if err != nil {
		return persona.Persona{}, mapPgError(err, "PERSONA_NOT_FOUND", "persona")
	}
	return p, nil
}

func (r *PersonaRepository) GetByID(ctx context.Context, id uuid.UUID) (persona.Persona, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return persona.Persona{}, err
	}
	p, err := scanPersona(tx.QueryRow(ctx, personaFindQuery+` WHERE id = $1`, pgUUID(id)))
	if err != nil {
		return persona.Persona{}, mapPgError(err, "PERSONA_NOT_FOUND", "persona")
	}
	return p, nil
}

func (r *PersonaRepository) ListByStory(ctx context.Context, storyID uuid.UUID) ([]persona.Persona, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
SELECT p.id, p.tenant_id, p.name, p.created_by, p.created_at
FROM personas p
JOIN story_personas sp ON sp.persona_id = p.id
WHERE sp.story_id = $1
ORDER BY p.name
`, pgUUID(storyID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []persona.Persona
	for rows.Next() {
		p, err := scanPersona(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PersonaRepository) Attach(ctx context.Context, storyID, personaID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
INSERT INTO story_personas (story_id, persona_id) VALUES ($1, $2)
`, pgUUID(storyID), pgUUID(personaID))
	if err != nil {
		return mapPgError(err, "PERSONA_NOT_FOUND", "persona")
	}
	return nil
}

func (r *PersonaRepository) Detach(ctx context.Context, storyID, personaID uuid.UUID) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	t, err := tx.Exec(ctx, `
DELETE FROM story_personas WHERE story_id = $1 AND persona_id = $2
`, pgUUID(storyID), pgUUID(personaID))
	if err != nil {
		return 0, err
	}
	return int(t.RowsAffected()), nil
}

func (r *PersonaRepository) DetachAll(ctx context.Context, personaID uuid.UUID) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	t, err := tx.Exec(ctx, `DELETE FROM story_personas WHERE persona_id = $1`, pgUUID(personaID))
	if err != nil {
		return 0, err
	}
	return int(t.RowsAffected()), nil
}

func (r *PersonaRepository) DetachByStory(ctx context.Context, storyID uuid.UUID) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	t, err := tx.Exec(ctx, `DELETE FROM story_personas WHERE story_id = $1`, pgUUID(storyID))
	if err != nil {
		return 0, err
	}
	return int(t.RowsAffected()), nil
}

func (r *PersonaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	t, err := tx.Exec(ctx, `DELETE FROM personas WHERE id = $1`, pgUUID(id))
	if err != nil {
		return mapPgError(err, "PERSONA_NOT_FOUND", "persona")
	}
	if t.RowsAffected() == 0 {
		return mapPgError(pgx.ErrNoRows, "PERSONA_NOT_FOUND", "persona")
	}
	return nil
}

func (r *PersonaRepository) DeleteByWorkspace(ctx context.Context, tenantID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
DELETE FROM story_personas
USING personas
WHERE story_personas.persona_id = personas.id AND personas.tenant_id = $1
`, pgUUID(tenantID))
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `DELETE FROM personas WHERE tenant_id = $1`, pgUUID(tenantID))
	return err
}
