package dataset

import (
	"time"

	"github.com/google/uuid"

	domacct "github.com/opencatalogue/catalogd/internal/domain/account"
	"github.com/opencatalogue/catalogd/internal/domain/catalog/extrafield"
	domfmt "github.com/opencatalogue/catalogd/internal/domain/dataformat"
	domds "github.com/opencatalogue/catalogd/internal/domain/dataset"
	"github.com/opencatalogue/catalogd/internal/domain/dataset/query"
	"github.com/opencatalogue/catalogd/internal/domain/dataset/spec"
	domorg "github.com/opencatalogue/catalogd/internal/domain/organization"
	"github.com/opencatalogue/catalogd/internal/domain/page"
	domtag "github.com/opencatalogue/catalogd/internal/domain/tag"
)

// Payload is the full replaceable attribute set of a dataset as
// submitted by clients, with tags and formats by reference.
type Payload struct {
	Title                  string
	Description            string
	Service                string
	GeographicalCoverage   string
	FormatIDs              []int64
	TechnicalSource        string
	ProducerEmail          string
	ContactEmails          []string
	UpdateFrequency        domds.UpdateFrequency
	LastUpdatedAt          *time.Time
	URL                    string
	License                string
	TagIDs                 []uuid.UUID
	ExtraFieldValues       []extrafield.Value
	PublicationRestriction domds.PublicationRestriction
}

// CreateDataset is the command publishing a dataset into an
// organization's catalog. ID is optional: import tooling supplies it
// for idempotent re-runs. A nil account is a trusted caller.
type CreateDataset struct {
	OrganizationSiret string
	Account           *domacct.Account
	ID                *uuid.UUID
	Payload           Payload
}

// UpdateDataset is the command replacing every attribute of a dataset.
type UpdateDataset struct {
	ID      uuid.UUID
	Account *domacct.Account
	Payload Payload
}

// DeleteDataset is the command removing a dataset. Deleting an absent
// dataset succeeds.
type DeleteDataset struct {
	ID uuid.UUID
}

// GetAllDatasets is the query listing datasets with filtering, search,
// visibility and pagination. A nil account is a trusted caller.
type GetAllDatasets struct {
	Page    page.Page
	Spec    spec.Spec
	Account *domacct.Account
}

// GetDatasetByID is the query fetching one dataset. A missing dataset
// and a hidden dataset are distinct outcomes (not-found vs. forbidden).
type GetDatasetByID struct {
	ID      uuid.UUID
	Account *domacct.Account
}

// GetDatasetFilters is the query listing the filterable value sets that
// drive the catalogue's filter UI.
type GetDatasetFilters struct{}

// Filters is the filterable value sets of the whole catalogue.
type Filters struct {
	Organizations         []domorg.Organization
	GeographicalCoverages []string
	Services              []string
	TechnicalSources      []string
	Formats               []domfmt.DataFormat
	Tags                  []domtag.Tag
	Licenses              []string
}

// Hit aliases the ranked query result for transport consumers.
type Hit = query.Hit
