package dataset

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/opencatalogue/catalogd/internal/domain"
	domacct "github.com/opencatalogue/catalogd/internal/domain/account"
	"github.com/opencatalogue/catalogd/internal/domain/catalog/extrafield"
	domds "github.com/opencatalogue/catalogd/internal/domain/dataset"
	"github.com/opencatalogue/catalogd/internal/domain/dataset/spec"
	"github.com/opencatalogue/catalogd/internal/domain/page"
)

func ownerAccount() *domacct.Account {
	return &domacct.Account{ID: uuid.New(), OrganizationSiret: ownerSiret, Role: domacct.RoleUser}
}

func outsiderAccount() *domacct.Account {
	return &domacct.Account{ID: uuid.New(), OrganizationSiret: otherSiret, Role: domacct.RoleUser}
}

func mustPage(t *testing.T, number, size int) page.Page {
	t.Helper()
	p, err := page.New(number, size)
	if err != nil {
		t.Fatalf("page.New: %v", err)
	}
	return p
}

func TestCreate_Success(t *testing.T) {
	f := newFixture(t)

	d, err := f.svc.Create(context.Background(), CreateDataset{
		OrganizationSiret: ownerSiret,
		Account:           ownerAccount(),
		Payload:           f.payload(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.OrganizationSiret() != ownerSiret {
		t.Errorf("expected owner siret, got %s", d.OrganizationSiret())
	}
	if d.PublicationRestriction() != domds.NoRestriction {
		t.Errorf("expected default NO_RESTRICTION, got %s", d.PublicationRestriction())
	}
	attrs := d.Attributes()
	if len(attrs.Formats) != 1 || attrs.Formats[0].Name != "CSV" {
		t.Errorf("expected resolved CSV format, got %v", attrs.Formats)
	}
	if len(attrs.Tags) != 1 || attrs.Tags[0].Name != "climat" {
		t.Errorf("expected resolved climat tag, got %v", attrs.Tags)
	}
	if _, ok := f.repo.datasets[d.ID()]; !ok {
		t.Error("expected the dataset persisted")
	}
}

func TestCreate_SuppliedIDKept(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	d, err := f.svc.Create(context.Background(), CreateDataset{
		OrganizationSiret: ownerSiret,
		ID:                &id,
		Payload:           f.payload(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.ID() != id {
		t.Errorf("expected supplied id %s, got %s", id, d.ID())
	}
}

func TestCreate_UnknownCatalog(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), CreateDataset{
		OrganizationSiret: "55544433322211",
		Payload:           f.payload(),
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestCreate_CrossOrganizationDenied(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), CreateDataset{
		OrganizationSiret: ownerSiret,
		Account:           outsiderAccount(),
		Payload:           f.payload(),
	})
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Errorf("expected permission denied, got %v", err)
	}
}

func TestCreate_UnknownFormatReference(t *testing.T) {
	f := newFixture(t)
	p := f.payload()
	p.FormatIDs = []int64{42}

	_, err := f.svc.Create(context.Background(), CreateDataset{
		OrganizationSiret: ownerSiret,
		Payload:           p,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error for unknown format, got %v", err)
	}
}

func TestCreate_ExtraFieldValues(t *testing.T) {
	f := newFixture(t)
	p := f.payload()
	p.ExtraFieldValues = []extrafield.Value{{ExtraFieldID: f.sizeID, Value: "2.4 Go"}}

	d, err := f.svc.Create(context.Background(), CreateDataset{
		OrganizationSiret: ownerSiret,
		Payload:           p,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := f.svc.GetByID(context.Background(), GetDatasetByID{ID: d.ID()})
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	values := got.Attributes().ExtraFieldValues
	if len(values) != 1 || values[0].ExtraFieldID != f.sizeID || values[0].Value != "2.4 Go" {
		t.Errorf("expected the value round-tripped, got %v", values)
	}
}

func TestCreate_UnknownExtraField(t *testing.T) {
	f := newFixture(t)
	p := f.payload()
	p.ExtraFieldValues = []extrafield.Value{{ExtraFieldID: uuid.New(), Value: "x"}}

	_, err := f.svc.Create(context.Background(), CreateDataset{
		OrganizationSiret: ownerSiret,
		Payload:           p,
	})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a ValidationError, got %v", err)
	}
	if verr.Fields[0].Path != "extra_field_values[0].extra_field_id" {
		t.Errorf("unexpected error path %q", verr.Fields[0].Path)
	}
}

func TestCreate_EnumValueOutsideSet(t *testing.T) {
	f := newFixture(t)
	p := f.payload()
	p.ExtraFieldValues = []extrafield.Value{{ExtraFieldID: f.levelID, Value: "bronze"}}

	_, err := f.svc.Create(context.Background(), CreateDataset{
		OrganizationSiret: ownerSiret,
		Payload:           p,
	})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a ValidationError, got %v", err)
	}
	if verr.Fields[0].Path != "extra_field_values[0].value" {
		t.Errorf("unexpected error path %q", verr.Fields[0].Path)
	}
}

func TestUpdate_ReplacesEveryAttribute(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.Create(context.Background(), CreateDataset{
		OrganizationSiret: ownerSiret,
		Payload: func() Payload {
			p := f.payload()
			p.ExtraFieldValues = []extrafield.Value{{ExtraFieldID: f.sizeID, Value: "2.4 Go"}}
			return p
		}(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// The update payload carries no extra-field values: the old row is
	// gone after the full replace.
	p := f.payload()
	p.Title = "Base Carbone v2"
	updated, err := f.svc.Update(context.Background(), UpdateDataset{
		ID:      created.ID(),
		Account: ownerAccount(),
		Payload: p,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title() != "Base Carbone v2" {
		t.Errorf("expected updated title, got %q", updated.Title())
	}
	if len(updated.Attributes().ExtraFieldValues) != 0 {
		t.Errorf("expected extra-field values replaced away, got %v", updated.Attributes().ExtraFieldValues)
	}
	if updated.CreatedAt() != created.CreatedAt() {
		t.Error("expected the catalog record untouched")
	}
}

func TestUpdate_CrossOrganizationDenied(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.Create(context.Background(), CreateDataset{
		OrganizationSiret: ownerSiret,
		Payload:           f.payload(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = f.svc.Update(context.Background(), UpdateDataset{
		ID:      created.ID(),
		Account: outsiderAccount(),
		Payload: f.payload(),
	})
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Errorf("expected permission denied, got %v", err)
	}
}

func TestUpdate_RestrictionChangeByOutsiderDenied(t *testing.T) {
	f := newFixture(t)
	p := f.payload()
	p.PublicationRestriction = domds.Draft
	created, err := f.svc.Create(context.Background(), CreateDataset{
		OrganizationSiret: ownerSiret,
		Payload:           p,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	changed := f.payload()
	changed.PublicationRestriction = domds.NoRestriction
	_, err = f.svc.Update(context.Background(), UpdateDataset{
		ID:      created.ID(),
		Account: outsiderAccount(),
		Payload: changed,
	})
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Errorf("expected permission denied, got %v", err)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.Create(context.Background(), CreateDataset{
		OrganizationSiret: ownerSiret,
		Payload:           f.payload(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := f.svc.Delete(context.Background(), created.ID()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := f.svc.Delete(context.Background(), created.ID()); err != nil {
		t.Errorf("expected deleting an absent dataset to succeed, got %v", err)
	}
}

func TestGetByID_ForbiddenVsMissing(t *testing.T) {
	f := newFixture(t)
	p := f.payload()
	p.PublicationRestriction = domds.LegalRestriction
	created, err := f.svc.Create(context.Background(), CreateDataset{
		OrganizationSiret: ownerSiret,
		Payload:           p,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = f.svc.GetByID(context.Background(), GetDatasetByID{ID: created.ID(), Account: outsiderAccount()})
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Errorf("expected permission denied for a hidden dataset, got %v", err)
	}

	_, err = f.svc.GetByID(context.Background(), GetDatasetByID{ID: uuid.New(), Account: outsiderAccount()})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found for a missing dataset, got %v", err)
	}

	if _, err := f.svc.GetByID(context.Background(), GetDatasetByID{ID: created.ID(), Account: ownerAccount()}); err != nil {
		t.Errorf("expected the owner to see it, got %v", err)
	}
}

func TestGetAll_PaginatedEnvelope(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		if _, err := f.svc.Create(context.Background(), CreateDataset{
			OrganizationSiret: ownerSiret,
			Payload:           f.payload(),
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	res, err := f.svc.GetAll(context.Background(), GetAllDatasets{
		Page: mustPage(t, 1, 2),
		Spec: spec.New(),
	})
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(res.Items) != 2 || res.TotalItems != 5 || res.TotalPages != 3 {
		t.Errorf("unexpected envelope: %d items, %d total, %d pages",
			len(res.Items), res.TotalItems, res.TotalPages)
	}
}

func TestGetFilters(t *testing.T) {
	f := newFixture(t)
	p := f.payload()
	p.License = "Licence Ouverte"
	p.TechnicalSource = "SI interne"
	if _, err := f.svc.Create(context.Background(), CreateDataset{
		OrganizationSiret: ownerSiret,
		Payload:           p,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	filters, err := f.svc.GetFilters(context.Background())
	if err != nil {
		t.Fatalf("GetFilters: %v", err)
	}
	if len(filters.Organizations) != 2 {
		t.Errorf("expected 2 organizations, got %d", len(filters.Organizations))
	}
	if len(filters.Licenses) != 2 || filters.Licenses[0] != spec.LicenseWildcard {
		t.Errorf("expected licenses [* Licence Ouverte], got %v", filters.Licenses)
	}
	if len(filters.TechnicalSources) != 1 || filters.TechnicalSources[0] != "SI interne" {
		t.Errorf("unexpected technical sources %v", filters.TechnicalSources)
	}
	if len(filters.Tags) != 1 || len(filters.Formats) != 1 {
		t.Errorf("expected tag and format sets populated")
	}
}
