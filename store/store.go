// Package store wraps all durable-storage access. The database is the system
// of record: uniqueness (email, username, visible_id) is enforced here by
// constraints, not pre-checked by callers. Expected absence is always a
// normal ErrNotFound result, never a panic or a control-flow exception.
package store

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound signals expected absence of a row.
var ErrNotFound = errors.New("record not found")

// ConflictError is a unique-constraint violation classified by the offending
// field so callers can map it to a specific response (a duplicate email
// during registration triggers the magic-link fallback).
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on field %q", e.Field)
}

var conflictFields = []string{"email", "username", "visible_id"}

// translate maps driver errors onto the store taxonomy. Unique violations
// are detected from the driver message because that is the only place the
// offending column survives (SQLite: "UNIQUE constraint failed:
// users.email", Postgres: `violates unique constraint "idx_users_email"`).
func translate(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	if isUniqueViolation(err) {
		return &ConflictError{Field: fieldFromError(err)}
	}

	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func fieldFromError(err error) string {
	msg := strings.ToLower(err.Error())
	for _, f := range conflictFields {
		if strings.Contains(msg, f) {
			return f
		}
	}

	return ""
}
