// Package spec holds the immutable filter criteria of a dataset listing
// query. Every field is optional: absence means "no constraint", never
// "match nothing". Specs are constructed per query and never persisted.
package spec

import (
	"github.com/google/uuid"

	"github.com/opencatalogue/catalogd/internal/domain/catalog/extrafield"
	"github.com/opencatalogue/catalogd/internal/domain/organization"
)

// LicenseWildcard matches any dataset with a non-empty license.
const LicenseWildcard = "*"

// Spec is a filter-criteria value object. Treat it as immutable: use the
// With* helpers, which return copies, to derive new specs.
type Spec struct {
	searchTerm            string
	organizationSiret     *organization.Siret
	geographicalCoverages []string
	services              []string
	formatIDs             []int64
	technicalSources      []string
	tagIDs                []uuid.UUID
	license               *string
	extraFieldValue       *extrafield.Value
	excludeRestricted     bool
	includeAll            bool
}

// New returns the empty spec (no constraints).
func New() Spec { return Spec{} }

// WithSearchTerm filters by full-text match and switches ordering to
// search rank.
func (s Spec) WithSearchTerm(term string) Spec {
	s.searchTerm = term
	return s
}

// WithOrganization filters by owning organization.
func (s Spec) WithOrganization(siret organization.Siret) Spec {
	s.organizationSiret = &siret
	return s
}

// WithGeographicalCoverages filters by coverage membership.
func (s Spec) WithGeographicalCoverages(values []string) Spec {
	s.geographicalCoverages = append([]string(nil), values...)
	return s
}

// WithServices filters by service membership.
func (s Spec) WithServices(values []string) Spec {
	s.services = append([]string(nil), values...)
	return s
}

// WithFormatIDs filters by format-reference membership.
func (s Spec) WithFormatIDs(ids []int64) Spec {
	s.formatIDs = append([]int64(nil), ids...)
	return s
}

// WithTechnicalSources filters by technical-source membership.
func (s Spec) WithTechnicalSources(values []string) Spec {
	s.technicalSources = append([]string(nil), values...)
	return s
}

// WithTagIDs filters by tag-reference membership.
func (s Spec) WithTagIDs(ids []uuid.UUID) Spec {
	s.tagIDs = append([]uuid.UUID(nil), ids...)
	return s
}

// WithLicense filters by license equality. LicenseWildcard matches any
// dataset carrying a license.
func (s Spec) WithLicense(license string) Spec {
	s.license = &license
	return s
}

// WithExtraFieldValue filters by exact (extra_field_id, value) match.
func (s Spec) WithExtraFieldValue(v extrafield.Value) Spec {
	s.extraFieldValue = &v
	return s
}

// WithoutRestricted keeps only datasets published without restriction,
// regardless of the requesting account. Used by catalog exports.
func (s Spec) WithoutRestricted() Spec {
	s.excludeRestricted = true
	return s
}

// IncludingAll bypasses the visibility predicate. Reserved for trusted
// internal callers (maintenance and import tooling).
func (s Spec) IncludingAll() Spec {
	s.includeAll = true
	return s
}

// SearchTerm returns the full-text query, empty when unset.
func (s Spec) SearchTerm() string { return s.searchTerm }

// OrganizationSiret returns the organization constraint, nil when unset.
func (s Spec) OrganizationSiret() *organization.Siret { return s.organizationSiret }

// GeographicalCoverages returns the coverage membership set.
func (s Spec) GeographicalCoverages() []string { return s.geographicalCoverages }

// Services returns the service membership set.
func (s Spec) Services() []string { return s.services }

// FormatIDs returns the format membership set.
func (s Spec) FormatIDs() []int64 { return s.formatIDs }

// TechnicalSources returns the technical-source membership set.
func (s Spec) TechnicalSources() []string { return s.technicalSources }

// TagIDs returns the tag membership set.
func (s Spec) TagIDs() []uuid.UUID { return s.tagIDs }

// License returns the license constraint, nil when unset.
func (s Spec) License() *string { return s.license }

// ExtraFieldValue returns the extra-field match, nil when unset.
func (s Spec) ExtraFieldValue() *extrafield.Value { return s.extraFieldValue }

// ExcludeRestricted reports whether restricted datasets are dropped
// outright.
func (s Spec) ExcludeRestricted() bool { return s.excludeRestricted }

// IncludeAll reports whether the visibility predicate is bypassed.
func (s Spec) IncludeAll() bool { return s.includeAll }
