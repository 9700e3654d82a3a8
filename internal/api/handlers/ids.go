package handlers

import "github.com/google/uuid"

// IsMalformedID reports whether a non-empty id cannot be a row key.
// Every id column is a UUID, so such an id never matches anything.
func IsMalformedID(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err != nil
}
