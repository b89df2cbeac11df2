// Package policy holds the ownership-derived authorization predicates.
// All functions are pure: they take an account and a target entity and
// return a verdict, with no storage access.
package policy

import (
	"github.com/opencatalogue/catalogd/internal/domain/account"
	"github.com/opencatalogue/catalogd/internal/domain/catalog"
	"github.com/opencatalogue/catalogd/internal/domain/dataset"
)

// CanSeeDataset reports whether the account may read the dataset: it is
// published without restriction, or the account belongs to the owning
// organization.
func CanSeeDataset(d dataset.Dataset, acct account.Account) bool {
	if d.PublicationRestriction() == dataset.NoRestriction {
		return true
	}
	return d.OrganizationSiret() == acct.OrganizationSiret
}

// CanCreateDataset reports whether the account may publish into the
// catalog. Organization match only: there is no administrator bypass.
func CanCreateDataset(c catalog.Catalog, acct account.Account) bool {
	return c.Siret() == acct.OrganizationSiret
}

// CanUpdateDataset reports whether the account may replace the dataset.
func CanUpdateDataset(d dataset.Dataset, acct account.Account) bool {
	return d.OrganizationSiret() == acct.OrganizationSiret
}

// CannotChangeRestrictionLevel reports whether the restriction-level
// change must be rejected: a cross-organization account may update other
// fields but not this one. Same-organization accounts may always change
// the level.
func CannotChangeRestrictionLevel(
	d dataset.Dataset, acct account.Account, newLevel dataset.PublicationRestriction,
) bool {
	if d.OrganizationSiret() == acct.OrganizationSiret {
		return false
	}
	return newLevel != d.PublicationRestriction()
}
