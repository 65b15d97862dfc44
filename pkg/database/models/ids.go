package models

import "github.com/google/uuid"

// ValidID reports whether id has the canonical uuid form the primary keys use.
// Anything else can't match a row, and postgres rejects it as a query argument.
func ValidID(id string) bool {
	return len(id) == 36 && uuid.Validate(id) == nil
}
