package dataformat

import (
	"context"
	"fmt"

	"github.com/opencatalogue/catalogd/internal/domain"
	domfmt "github.com/opencatalogue/catalogd/internal/domain/dataformat"
)

// Service handles data format operations.
type Service struct {
	repo Repository
}

// New creates a data format service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new data format. Names are unique.
func (s *Service) Create(ctx context.Context, cmd CreateDataFormat) (domfmt.DataFormat, error) {
	if cmd.Name == "" {
		return domfmt.DataFormat{}, domain.Invalid("name", "must not be empty")
	}

	existing, err := s.repo.GetAll(ctx)
	if err != nil {
		return domfmt.DataFormat{}, fmt.Errorf("check format name: %w", err)
	}
	for _, f := range existing {
		if f.Name == cmd.Name {
			return domfmt.DataFormat{}, fmt.Errorf("format %q: %w", cmd.Name, domain.ErrAlreadyExists)
		}
	}

	f, err := s.repo.Create(ctx, cmd.Name)
	if err != nil {
		return domfmt.DataFormat{}, fmt.Errorf("create format: %w", err)
	}
	return f, nil
}

// GetAll returns all data formats.
func (s *Service) GetAll(ctx context.Context) ([]domfmt.DataFormat, error) {
	formats, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all formats: %w", err)
	}
	return formats, nil
}

// GetByIDs resolves data formats by id, in the requested order.
func (s *Service) GetByIDs(ctx context.Context, ids []int64) ([]domfmt.DataFormat, error) {
	formats := make([]domfmt.DataFormat, 0, len(ids))
	for _, id := range ids {
		f, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get format %d: %w", id, err)
		}
		formats = append(formats, f)
	}
	return formats, nil
}
