package organization

import (
	"context"
	"fmt"

	domorg "github.com/opencatalogue/catalogd/internal/domain/organization"
)

// Service handles organization operations.
type Service struct {
	repo Repository
}

// New creates an organization service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores an organization.
func (s *Service) Create(ctx context.Context, cmd CreateOrganization) (domorg.Organization, error) {
	siret, err := domorg.ParseSiret(cmd.Siret)
	if err != nil {
		return domorg.Organization{}, err
	}
	org, err := domorg.New(siret, cmd.Name, cmd.LogoURL)
	if err != nil {
		return domorg.Organization{}, err
	}

	if err := s.repo.Create(ctx, org); err != nil {
		return domorg.Organization{}, fmt.Errorf("create organization: %w", err)
	}
	return org, nil
}

// GetBySiret retrieves an organization.
func (s *Service) GetBySiret(ctx context.Context, raw string) (domorg.Organization, error) {
	siret, err := domorg.ParseSiret(raw)
	if err != nil {
		return domorg.Organization{}, err
	}
	org, err := s.repo.GetBySiret(ctx, siret)
	if err != nil {
		return domorg.Organization{}, fmt.Errorf("get organization: %w", err)
	}
	return org, nil
}

// GetAll returns all organizations.
func (s *Service) GetAll(ctx context.Context) ([]domorg.Organization, error) {
	orgs, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all organizations: %w", err)
	}
	return orgs, nil
}
