package weblog

import (
	"database/sql"
	"errors"
	"strings"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Error kinds surfaced by the store and the editing workflow. All are
// recoverable by user action; none is fatal to the process.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("weblog: not found")

	// ErrConflict is returned when a create or update violates the slug
	// uniqueness constraint, so callers can say "already exists" instead of
	// showing a generic failure.
	ErrConflict = errors.New("weblog: slug already exists")
)

// ValidationError reports user input rejected before any store or storage
// call. The message is shown inline; the form stays editable.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// storeErr maps driver errors onto the exported kinds. Anything it does not
// recognize passes through verbatim as a backend error.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
