package catalog

import (
	"fmt"

	"github.com/opencatalogue/catalogd/internal/domain"
	"github.com/opencatalogue/catalogd/internal/domain/catalog/extrafield"
	"github.com/opencatalogue/catalogd/internal/domain/organization"
)

// Catalog is the per-organization container of datasets and the schema
// of its extra fields. One catalog per organization, created on first
// publish. Extra fields are appended, never retyped.
type Catalog struct {
	org         organization.Organization
	extraFields []extrafield.Field
}

// New validates and creates a Catalog. Extra-field names must be unique
// within the organization.
func New(org organization.Organization, extraFields []extrafield.Field) (Catalog, error) {
	seen := make(map[string]bool, len(extraFields))
	for _, f := range extraFields {
		if seen[f.Name()] {
			return Catalog{}, domain.Invalid(
				"extra_fields", fmt.Sprintf("duplicate field name %q", f.Name()),
			)
		}
		seen[f.Name()] = true
	}
	return Catalog{org: org, extraFields: append([]extrafield.Field(nil), extraFields...)}, nil
}

// Reconstruct creates a Catalog without validation (storage hydration).
func Reconstruct(org organization.Organization, extraFields []extrafield.Field) Catalog {
	return Catalog{org: org, extraFields: extraFields}
}

// Organization returns the owning organization.
func (c Catalog) Organization() organization.Organization { return c.org }

// Siret returns the owning organization's siret.
func (c Catalog) Siret() organization.Siret { return c.org.Siret }

// ExtraFields returns the extra fields in definition order.
func (c Catalog) ExtraFields() []extrafield.Field { return c.extraFields }
