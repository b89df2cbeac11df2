// Package query composes a Spec, the visibility policy, and full-text
// ranking into one evaluation over a set of datasets. Predicates are
// ANDed when present; an absent criterion constrains nothing.
package query

import (
	"sort"

	"github.com/google/uuid"

	"github.com/opencatalogue/catalogd/internal/domain/account"
	"github.com/opencatalogue/catalogd/internal/domain/catalog/extrafield"
	"github.com/opencatalogue/catalogd/internal/domain/dataset"
	"github.com/opencatalogue/catalogd/internal/domain/dataset/policy"
	"github.com/opencatalogue/catalogd/internal/domain/dataset/spec"
	"github.com/opencatalogue/catalogd/internal/domain/page"
	"github.com/opencatalogue/catalogd/internal/domain/search"
)

// Hit is one ranked, access-filtered result. Headlines is nil when the
// query carried no search term.
type Hit struct {
	Dataset   dataset.Dataset
	Rank      float64
	Headlines *search.Headlines
}

// Evaluate filters, ranks, orders and paginates datasets. The total is
// computed over the filtered set, independent of pagination, so page
// metadata stays consistent. A nil account is a trusted caller: the
// visibility predicate is skipped, as it is when the spec requests the
// bypass explicitly.
func Evaluate(items []dataset.Dataset, s spec.Spec, acct *account.Account, p page.Page) ([]Hit, int) {
	searching := len(search.Lexemes(s.SearchTerm())) > 0
	if s.SearchTerm() != "" && !searching {
		// The term tokenized to nothing: match no documents rather
		// than falling back to "match everything".
		return nil, 0
	}

	var hits []Hit
	for _, d := range items {
		if !visible(d, s, acct) || !matches(d, s) {
			continue
		}

		hit := Hit{Dataset: d}
		if searching {
			result := search.Search(d.Title(), d.Description(), s.SearchTerm())
			if !result.Matched {
				continue
			}
			hit.Rank = result.Rank
			headlines := result.Headlines
			hit.Headlines = &headlines
		}
		hits = append(hits, hit)
	}

	orderHits(hits, searching)

	total := len(hits)
	offset, limit := p.OffsetLimit()
	if offset >= total {
		return nil, total
	}
	if offset+limit > total {
		limit = total - offset
	}
	return hits[offset : offset+limit], total
}

// visible applies the row-level access rule unless bypassed.
func visible(d dataset.Dataset, s spec.Spec, acct *account.Account) bool {
	if s.ExcludeRestricted() && d.PublicationRestriction() != dataset.NoRestriction {
		return false
	}
	if s.IncludeAll() || acct == nil {
		return true
	}
	return policy.CanSeeDataset(d, *acct)
}

// matches ANDs every present filter criterion.
func matches(d dataset.Dataset, s spec.Spec) bool {
	attrs := d.Attributes()

	if siret := s.OrganizationSiret(); siret != nil && d.OrganizationSiret() != *siret {
		return false
	}
	if !memberOf(s.GeographicalCoverages(), attrs.GeographicalCoverage) {
		return false
	}
	if !memberOf(s.Services(), attrs.Service) {
		return false
	}
	if !memberOf(s.TechnicalSources(), attrs.TechnicalSource) {
		return false
	}
	if len(s.FormatIDs()) > 0 && !anyFormat(attrs, s.FormatIDs()) {
		return false
	}
	if len(s.TagIDs()) > 0 && !anyTag(attrs, s.TagIDs()) {
		return false
	}
	if license := s.License(); license != nil {
		if *license == spec.LicenseWildcard {
			if attrs.License == "" {
				return false
			}
		} else if attrs.License != *license {
			return false
		}
	}
	if want := s.ExtraFieldValue(); want != nil && !hasExtraFieldValue(attrs, *want) {
		return false
	}
	return true
}

func memberOf(set []string, value string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}

func anyFormat(attrs dataset.Attributes, ids []int64) bool {
	for _, f := range attrs.Formats {
		for _, id := range ids {
			if f.ID == id {
				return true
			}
		}
	}
	return false
}

func anyTag(attrs dataset.Attributes, ids []uuid.UUID) bool {
	for _, t := range attrs.Tags {
		for _, id := range ids {
			if t.ID == id {
				return true
			}
		}
	}
	return false
}

func hasExtraFieldValue(attrs dataset.Attributes, want extrafield.Value) bool {
	for _, v := range attrs.ExtraFieldValues {
		if v.ExtraFieldID == want.ExtraFieldID && v.Value == want.Value {
			return true
		}
	}
	return false
}

// orderHits sorts by rank (search queries) or recency, with recency as
// the search tie-break. Dataset id keeps equal rows deterministic.
func orderHits(hits []Hit, searching bool) {
	sort.Slice(hits, func(i, j int) bool {
		if searching && hits[i].Rank != hits[j].Rank {
			return hits[i].Rank > hits[j].Rank
		}
		ci, cj := hits[i].Dataset.CreatedAt(), hits[j].Dataset.CreatedAt()
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return hits[i].Dataset.ID().String() > hits[j].Dataset.ID().String()
	})
}
