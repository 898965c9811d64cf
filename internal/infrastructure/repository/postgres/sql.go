package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/gameday-rotation/internal/usecase"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// mapWriteError turns constraint violations into usecase errors so the HTTP
// layer can answer 409/400 instead of 500.
func mapWriteError(err error, action string) error {
	if err == nil {
		return nil
	}
	switch pqCode(err) {
	case pqUniqueViolation:
		return fmt.Errorf("%w: %s: %v", usecase.ErrConflict, action, err)
	case pqForeignKeyViolation, pqCheckViolation:
		return fmt.Errorf("%w: %s: %v", usecase.ErrInvalidInput, action, err)
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func nullTime(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: value.UTC(), Valid: true}
}

func timePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	t := value.Time.UTC()
	return &t
}
