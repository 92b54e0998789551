package persistence

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mapwise/storymap/pkg/serrors"
)

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func pgNullableUUID(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

func uuidFromPg(v pgtype.UUID) uuid.UUID {
	if !v.Valid {
		return uuid.Nil
	}
	return uuid.UUID(v.Bytes)
}

func nullableUUIDFromPg(v pgtype.UUID) *uuid.UUID {
	if !v.Valid {
		return nil
	}
	id := uuid.UUID(v.Bytes)
	return &id
}

// mapPgError translates storage-level failures into the service taxonomy.
// Row absence becomes NotFound with the caller's entity code; constraint
// violations become Conflict. Anything else passes through unchanged.
func mapPgError(err error, notFoundCode, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return serrors.NewNotFound(notFoundCode, entity+" not found")
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case "23505": // unique_violation
		switch pgErr.ConstraintName {
		case "journeys_tenant_id_name_key",
			"releases_tenant_id_name_key",
			"tags_tenant_id_name_key",
			"personas_tenant_id_name_key":
			return serrors.WrapError(serrors.KindBusinessRule, "DUPLICATE_NAME", "name already taken in this workspace", err)
		case "story_links_source_target_type_key":
			return serrors.WrapError(serrors.KindBusinessRule, "LINK_DUPLICATE", "link already exists", err)
		case "story_tags_pkey", "story_personas_pkey":
			return serrors.WrapError(serrors.KindConflict, "DUPLICATE_ASSOCIATION", "association already exists", err)
		default:
			return serrors.WrapError(serrors.KindConflict, "UNIQUE_VIOLATION", "unique constraint violated: "+pgErr.ConstraintName, err)
		}
	case "23503": // foreign_key_violation
		return serrors.WrapError(serrors.KindNotFound, notFoundCode, entity+" reference not found", err)
	case "23514": // check_violation
		return serrors.WrapError(serrors.KindValidation, "CHECK_VIOLATION", "check constraint violated: "+pgErr.ConstraintName, err)
	default:
		return err
	}
}
