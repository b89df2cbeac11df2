package tag

import "github.com/google/uuid"

// Tag labels datasets for filtering. Tags are shared across catalogs and
// associated many-to-many.
type Tag struct {
	ID   uuid.UUID
	Name string
}
