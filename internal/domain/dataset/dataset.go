package dataset

import (
	"time"

	"github.com/google/uuid"

	"github.com/opencatalogue/catalogd/internal/domain"
	"github.com/opencatalogue/catalogd/internal/domain/catalog/extrafield"
	"github.com/opencatalogue/catalogd/internal/domain/dataformat"
	"github.com/opencatalogue/catalogd/internal/domain/organization"
	"github.com/opencatalogue/catalogd/internal/domain/tag"
)

// PublicationRestriction is the dataset visibility tier gating
// cross-organization read access.
type PublicationRestriction string

// Publication restriction constants.
const (
	NoRestriction    PublicationRestriction = "NO_RESTRICTION"
	Draft            PublicationRestriction = "DRAFT"
	LegalRestriction PublicationRestriction = "LEGAL_RESTRICTION"
)

// Valid reports whether r is a known restriction level.
func (r PublicationRestriction) Valid() bool {
	return r == NoRestriction || r == Draft || r == LegalRestriction
}

// UpdateFrequency is how often a dataset is refreshed.
type UpdateFrequency string

// Update frequency constants.
const (
	FrequencyNever    UpdateFrequency = "NEVER"
	FrequencyRealTime UpdateFrequency = "REAL_TIME"
	FrequencyDaily    UpdateFrequency = "DAILY"
	FrequencyWeekly   UpdateFrequency = "WEEKLY"
	FrequencyMonthly  UpdateFrequency = "MONTHLY"
	FrequencyYearly   UpdateFrequency = "YEARLY"
)

// Valid reports whether f is a known frequency.
func (f UpdateFrequency) Valid() bool {
	switch f {
	case FrequencyNever, FrequencyRealTime, FrequencyDaily,
		FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// CatalogRecord is the provenance join recording which organization's
// catalog a dataset belongs to. One per dataset, created atomically with
// it, never updated.
type CatalogRecord struct {
	ID                uuid.UUID
	OrganizationSiret organization.Siret
	CreatedAt         time.Time
}

// NewCatalogRecord creates a catalog record stamped with the given clock.
func NewCatalogRecord(siret organization.Siret, now time.Time) CatalogRecord {
	return CatalogRecord{ID: uuid.New(), OrganizationSiret: siret, CreatedAt: now}
}

// Attributes is the full replaceable payload of a dataset. Updates
// replace every attribute: there is no partial patch.
type Attributes struct {
	Title                  string
	Description            string
	Service                string
	GeographicalCoverage   string
	Formats                []dataformat.DataFormat
	TechnicalSource        string
	ProducerEmail          string
	ContactEmails          []string
	UpdateFrequency        UpdateFrequency // empty = unset
	LastUpdatedAt          *time.Time
	URL                    string
	License                string
	Tags                   []tag.Tag
	ExtraFieldValues       []extrafield.Value
	PublicationRestriction PublicationRestriction
}

// Dataset is the primary catalogue entity, owned by an organization
// through its CatalogRecord.
type Dataset struct {
	id            uuid.UUID
	catalogRecord CatalogRecord
	attrs         Attributes
}

// validate checks the attribute invariants shared by create and update.
func (a Attributes) validate() error {
	var errs []domain.FieldError
	if a.Title == "" {
		errs = append(errs, domain.FieldError{Path: "title", Message: "must not be empty"})
	}
	if a.Description == "" {
		errs = append(errs, domain.FieldError{Path: "description", Message: "must not be empty"})
	}
	if a.Service == "" {
		errs = append(errs, domain.FieldError{Path: "service", Message: "must not be empty"})
	}
	if a.GeographicalCoverage == "" {
		errs = append(errs, domain.FieldError{Path: "geographical_coverage", Message: "must not be empty"})
	}
	if len(a.Formats) == 0 {
		errs = append(errs, domain.FieldError{Path: "formats", Message: "must contain at least one item"})
	}
	if len(a.ContactEmails) == 0 {
		errs = append(errs, domain.FieldError{Path: "contact_emails", Message: "must contain at least one item"})
	}
	if a.UpdateFrequency != "" && !a.UpdateFrequency.Valid() {
		errs = append(errs, domain.FieldError{Path: "update_frequency", Message: "unknown value"})
	}
	if !a.PublicationRestriction.Valid() {
		errs = append(errs, domain.FieldError{Path: "publication_restriction", Message: "unknown value"})
	}
	if len(errs) > 0 {
		return domain.NewValidationError(errs...)
	}
	return nil
}

// New validates and creates a Dataset with a fresh catalog record.
// An empty PublicationRestriction defaults to NO_RESTRICTION.
func New(id uuid.UUID, record CatalogRecord, attrs Attributes) (Dataset, error) {
	if attrs.PublicationRestriction == "" {
		attrs.PublicationRestriction = NoRestriction
	}
	if err := attrs.validate(); err != nil {
		return Dataset{}, err
	}
	return Dataset{id: id, catalogRecord: record, attrs: attrs}, nil
}

// Reconstruct creates a Dataset without validation (storage hydration).
func Reconstruct(id uuid.UUID, record CatalogRecord, attrs Attributes) Dataset {
	return Dataset{id: id, catalogRecord: record, attrs: attrs}
}

// Update returns a copy with every attribute replaced. The catalog
// record and identity are untouched.
func (d Dataset) Update(attrs Attributes) (Dataset, error) {
	if attrs.PublicationRestriction == "" {
		attrs.PublicationRestriction = d.attrs.PublicationRestriction
	}
	if err := attrs.validate(); err != nil {
		return Dataset{}, err
	}
	return Dataset{id: d.id, catalogRecord: d.catalogRecord, attrs: attrs}, nil
}

// ID returns the dataset identifier.
func (d Dataset) ID() uuid.UUID { return d.id }

// CatalogRecord returns the provenance record.
func (d Dataset) CatalogRecord() CatalogRecord { return d.catalogRecord }

// OrganizationSiret returns the owning organization's siret.
func (d Dataset) OrganizationSiret() organization.Siret {
	return d.catalogRecord.OrganizationSiret
}

// CreatedAt returns the catalog record creation instant.
func (d Dataset) CreatedAt() time.Time { return d.catalogRecord.CreatedAt }

// Attributes returns the full attribute set.
func (d Dataset) Attributes() Attributes { return d.attrs }

// Title returns the dataset title.
func (d Dataset) Title() string { return d.attrs.Title }

// Description returns the dataset description.
func (d Dataset) Description() string { return d.attrs.Description }

// PublicationRestriction returns the visibility tier.
func (d Dataset) PublicationRestriction() PublicationRestriction {
	return d.attrs.PublicationRestriction
}
