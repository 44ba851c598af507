// Package uuid wraps google/uuid with gin form binding support.
package uuid

import (
	google_uuid "github.com/google/uuid"
)

// UUID is used in query filter types so that budget, project and alert IDs
// can be bound from the query string.
type UUID struct {
	google_uuid.UUID
}

var Nil UUID

// UnmarshalParam implements gin's form binding for UUID.
//
// An empty parameter binds to Nil so that optional filters can be left out.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, e := google_uuid.Parse(p)
	if e != nil {
		return e
	}

	*u = UUID{parsed}
	return nil
}
