package ids

import "github.com/google/uuid"

// NextUUID returns a random (v4) UUID string.
func NextUUID() string {
	return uuid.NewString()
}
