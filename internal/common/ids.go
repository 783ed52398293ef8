package common

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// PgUUID converts a uuid.UUID into its pgtype representation. The zero UUID maps to NULL.
func PgUUID(id uuid.UUID) pgtype.UUID {
	if id == uuid.Nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: id, Valid: true}
}

// FromPgUUID converts a pgtype UUID back; NULL maps to uuid.Nil.
func FromPgUUID(id pgtype.UUID) uuid.UUID {
	if !id.Valid {
		return uuid.Nil
	}
	return uuid.UUID(id.Bytes)
}

// ParseID parses a path identifier, reporting a 400 AppError when malformed.
func ParseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, BadRequest("invalid "+what+" id", err)
	}
	return id, nil
}
