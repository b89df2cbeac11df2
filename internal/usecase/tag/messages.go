package tag

import "github.com/google/uuid"

// CreateTag is the command creating a tag.
type CreateTag struct {
	Name string
}

// GetAllTags is the query listing every tag.
type GetAllTags struct{}

// GetTagsByIDs is the query resolving tags by id, preserving order.
type GetTagsByIDs struct {
	IDs []uuid.UUID
}
