package tag

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/opencatalogue/catalogd/internal/domain"
	domtag "github.com/opencatalogue/catalogd/internal/domain/tag"
)

// Service handles tag operations.
type Service struct {
	repo Repository
}

// New creates a tag service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new tag.
func (s *Service) Create(ctx context.Context, cmd CreateTag) (domtag.Tag, error) {
	if cmd.Name == "" {
		return domtag.Tag{}, domain.Invalid("name", "must not be empty")
	}

	t := domtag.Tag{ID: uuid.New(), Name: cmd.Name}
	if err := s.repo.Create(ctx, t); err != nil {
		return domtag.Tag{}, fmt.Errorf("create tag: %w", err)
	}
	return t, nil
}

// GetAll returns all tags.
func (s *Service) GetAll(ctx context.Context) ([]domtag.Tag, error) {
	tags, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all tags: %w", err)
	}
	return tags, nil
}

// GetByIDs resolves tags by id, in the requested order.
func (s *Service) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domtag.Tag, error) {
	tags := make([]domtag.Tag, 0, len(ids))
	for _, id := range ids {
		t, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get tag %s: %w", id, err)
		}
		tags = append(tags, t)
	}
	return tags, nil
}
