package dataset

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/opencatalogue/catalogd/internal/domain"
	domcat "github.com/opencatalogue/catalogd/internal/domain/catalog"
	"github.com/opencatalogue/catalogd/internal/domain/catalog/extrafield"
	domfmt "github.com/opencatalogue/catalogd/internal/domain/dataformat"
	domds "github.com/opencatalogue/catalogd/internal/domain/dataset"
	"github.com/opencatalogue/catalogd/internal/domain/dataset/policy"
	"github.com/opencatalogue/catalogd/internal/domain/dataset/query"
	"github.com/opencatalogue/catalogd/internal/domain/dataset/spec"
	domorg "github.com/opencatalogue/catalogd/internal/domain/organization"
	"github.com/opencatalogue/catalogd/internal/domain/page"
	domtag "github.com/opencatalogue/catalogd/internal/domain/tag"
)

// Service handles dataset operations.
type Service struct {
	repo     Repository
	catalogs CatalogRepository
	tags     TagRepository
	formats  FormatRepository
	now      func() time.Time
}

// New creates a dataset service. A nil clock uses the wall clock.
func New(repo Repository, catalogs CatalogRepository, tags TagRepository, formats FormatRepository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, catalogs: catalogs, tags: tags, formats: formats, now: now}
}

// Create publishes a dataset into the organization's catalog. The
// catalog must exist and the account, when present, must belong to the
// owning organization.
func (s *Service) Create(ctx context.Context, cmd CreateDataset) (domds.Dataset, error) {
	siret, err := domorg.ParseSiret(cmd.OrganizationSiret)
	if err != nil {
		return domds.Dataset{}, err
	}

	c, err := s.catalogs.GetBySiret(ctx, siret)
	if err != nil {
		return domds.Dataset{}, fmt.Errorf("catalog %s: %w", siret, err)
	}

	if cmd.Account != nil && !policy.CanCreateDataset(c, *cmd.Account) {
		return domds.Dataset{}, fmt.Errorf(
			"account of %s cannot publish into catalog %s: %w",
			cmd.Account.OrganizationSiret, c.Siret(), domain.ErrPermissionDenied,
		)
	}

	attrs, err := s.resolveAttributes(ctx, c, cmd.Payload)
	if err != nil {
		return domds.Dataset{}, err
	}

	id := uuid.New()
	if cmd.ID != nil {
		id = *cmd.ID
	}
	record := domds.NewCatalogRecord(c.Siret(), s.now())

	d, err := domds.New(id, record, attrs)
	if err != nil {
		return domds.Dataset{}, err
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return domds.Dataset{}, fmt.Errorf("create dataset: %w", err)
	}
	return d, nil
}

// Update replaces every attribute of a dataset after the policy checks.
func (s *Service) Update(ctx context.Context, cmd UpdateDataset) (domds.Dataset, error) {
	d, err := s.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return domds.Dataset{}, fmt.Errorf("get dataset: %w", err)
	}

	if cmd.Account != nil {
		if !policy.CanUpdateDataset(d, *cmd.Account) {
			return domds.Dataset{}, fmt.Errorf(
				"account of %s cannot update dataset %s: %w",
				cmd.Account.OrganizationSiret, d.ID(), domain.ErrPermissionDenied,
			)
		}
		if cmd.Payload.PublicationRestriction != "" &&
			policy.CannotChangeRestrictionLevel(d, *cmd.Account, cmd.Payload.PublicationRestriction) {
			return domds.Dataset{}, fmt.Errorf(
				"account of %s cannot change restriction level of dataset %s: %w",
				cmd.Account.OrganizationSiret, d.ID(), domain.ErrPermissionDenied,
			)
		}
	}

	c, err := s.catalogs.GetBySiret(ctx, d.OrganizationSiret())
	if err != nil {
		return domds.Dataset{}, fmt.Errorf("catalog %s: %w", d.OrganizationSiret(), err)
	}
	attrs, err := s.resolveAttributes(ctx, c, cmd.Payload)
	if err != nil {
		return domds.Dataset{}, err
	}

	updated, err := d.Update(attrs)
	if err != nil {
		return domds.Dataset{}, err
	}
	if err := s.repo.Update(ctx, updated); err != nil {
		return domds.Dataset{}, fmt.Errorf("update dataset: %w", err)
	}
	return updated, nil
}

// Delete removes a dataset together with its record and values.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete dataset: %w", err)
	}
	return nil
}

// GetAll lists datasets through the query evaluator.
func (s *Service) GetAll(ctx context.Context, q GetAllDatasets) (page.Paginated[Hit], error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return page.Paginated[Hit]{}, fmt.Errorf("get datasets: %w", err)
	}
	hits, total := query.Evaluate(all, q.Spec, q.Account, q.Page)
	return page.NewPaginated(hits, total, q.Page), nil
}

// GetByID fetches one dataset. A dataset hidden from the account is
// forbidden, not missing: the two outcomes stay distinct.
func (s *Service) GetByID(ctx context.Context, q GetDatasetByID) (domds.Dataset, error) {
	d, err := s.repo.GetByID(ctx, q.ID)
	if err != nil {
		return domds.Dataset{}, fmt.Errorf("get dataset: %w", err)
	}
	if q.Account != nil && !policy.CanSeeDataset(d, *q.Account) {
		return domds.Dataset{}, fmt.Errorf(
			"account of %s cannot see dataset %s: %w",
			q.Account.OrganizationSiret, q.ID, domain.ErrPermissionDenied,
		)
	}
	return d, nil
}

// GetFilters assembles the filterable value sets across the catalogue.
// Licenses carry the wildcard first, meaning "any licensed dataset".
func (s *Service) GetFilters(ctx context.Context) (Filters, error) {
	catalogs, err := s.catalogs.GetAll(ctx)
	if err != nil {
		return Filters{}, fmt.Errorf("get catalogs: %w", err)
	}
	datasets, err := s.repo.GetAll(ctx)
	if err != nil {
		return Filters{}, fmt.Errorf("get datasets: %w", err)
	}
	tags, err := s.tags.GetAll(ctx)
	if err != nil {
		return Filters{}, fmt.Errorf("get tags: %w", err)
	}
	formats, err := s.formats.GetAll(ctx)
	if err != nil {
		return Filters{}, fmt.Errorf("get formats: %w", err)
	}

	orgs := make([]domorg.Organization, 0, len(catalogs))
	for _, c := range catalogs {
		orgs = append(orgs, c.Organization())
	}

	coverages := make(map[string]bool)
	services := make(map[string]bool)
	sources := make(map[string]bool)
	licenses := make(map[string]bool)
	for _, d := range datasets {
		attrs := d.Attributes()
		coverages[attrs.GeographicalCoverage] = true
		services[attrs.Service] = true
		if attrs.TechnicalSource != "" {
			sources[attrs.TechnicalSource] = true
		}
		if attrs.License != "" {
			licenses[attrs.License] = true
		}
	}

	return Filters{
		Organizations:         orgs,
		GeographicalCoverages: sortedKeys(coverages),
		Services:              sortedKeys(services),
		TechnicalSources:      sortedKeys(sources),
		Formats:               formats,
		Tags:                  tags,
		Licenses:              append([]string{spec.LicenseWildcard}, sortedKeys(licenses)...),
	}, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// resolveAttributes turns a client payload into domain attributes:
// tag and format references are resolved, extra-field values validated
// against the catalog's schema.
func (s *Service) resolveAttributes(ctx context.Context, c domcat.Catalog, p Payload) (domds.Attributes, error) {
	formats := make([]domfmt.DataFormat, 0, len(p.FormatIDs))
	for _, id := range p.FormatIDs {
		f, err := s.formats.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domds.Attributes{}, domain.Invalid("format_ids", fmt.Sprintf("unknown format %d", id))
			}
			return domds.Attributes{}, fmt.Errorf("get format %d: %w", id, err)
		}
		formats = append(formats, f)
	}

	tags := make([]domtag.Tag, 0, len(p.TagIDs))
	for _, id := range p.TagIDs {
		t, err := s.tags.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domds.Attributes{}, domain.Invalid("tag_ids", fmt.Sprintf("unknown tag %s", id))
			}
			return domds.Attributes{}, fmt.Errorf("get tag %s: %w", id, err)
		}
		tags = append(tags, t)
	}

	if err := validateExtraFieldValues(c, p.ExtraFieldValues); err != nil {
		return domds.Attributes{}, err
	}

	return domds.Attributes{
		Title:                  p.Title,
		Description:            p.Description,
		Service:                p.Service,
		GeographicalCoverage:   p.GeographicalCoverage,
		Formats:                formats,
		TechnicalSource:        p.TechnicalSource,
		ProducerEmail:          p.ProducerEmail,
		ContactEmails:          p.ContactEmails,
		UpdateFrequency:        p.UpdateFrequency,
		LastUpdatedAt:          p.LastUpdatedAt,
		URL:                    p.URL,
		License:                p.License,
		Tags:                   tags,
		ExtraFieldValues:       p.ExtraFieldValues,
		PublicationRestriction: p.PublicationRestriction,
	}, nil
}

// validateExtraFieldValues checks each value against the catalog's
// schema: the field must exist and ENUM values must be members of the
// allowed set.
func validateExtraFieldValues(c domcat.Catalog, values []extrafield.Value) error {
	byID := make(map[uuid.UUID]extrafield.Field, len(c.ExtraFields()))
	for _, f := range c.ExtraFields() {
		byID[f.ID()] = f
	}

	var errs []domain.FieldError
	for i, v := range values {
		f, ok := byID[v.ExtraFieldID]
		if !ok {
			errs = append(errs, domain.FieldError{
				Path:    fmt.Sprintf("extra_field_values[%d].extra_field_id", i),
				Message: fmt.Sprintf("unknown extra field %s", v.ExtraFieldID),
			})
			continue
		}
		if f.FieldKind() == extrafield.Enum && !contains(f.EnumValues(), v.Value) {
			errs = append(errs, domain.FieldError{
				Path:    fmt.Sprintf("extra_field_values[%d].value", i),
				Message: fmt.Sprintf("%q is not an allowed value of %s", v.Value, f.Name()),
			})
		}
	}
	if len(errs) > 0 {
		return domain.NewValidationError(errs...)
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
