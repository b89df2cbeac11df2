package export

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/opencatalogue/catalogd/internal/domain/catalog"
	"github.com/opencatalogue/catalogd/internal/domain/catalog/extrafield"
	"github.com/opencatalogue/catalogd/internal/domain/dataformat"
	"github.com/opencatalogue/catalogd/internal/domain/dataset"
	"github.com/opencatalogue/catalogd/internal/domain/organization"
	"github.com/opencatalogue/catalogd/internal/domain/tag"
)

const siret = organization.Siret("11122233344455")

func makeCatalog(t *testing.T, fields []extrafield.Field) catalog.Catalog {
	t.Helper()
	org, err := organization.New(siret, "Ville de Test", "")
	if err != nil {
		t.Fatalf("organization.New: %v", err)
	}
	c, err := catalog.New(org, fields)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

func TestToCSV_HeaderContract(t *testing.T) {
	poids, err := extrafield.NewText(siret, "poids", "Poids", "")
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}
	donnees, err := extrafield.NewText(siret, "donnees_ouvertes", "Données ouvertes", "")
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}
	c := makeCatalog(t, []extrafield.Field{poids, donnees})

	out, err := ToCSV(c, nil)
	if err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected header only, got %d lines", len(lines))
	}
	want := "titre,description,service,couv_geo,format,si,contact_service," +
		"contact_personne,freq_maj,date_maj,url,licence,mots_cles,poids,donnees_ouvertes"
	if lines[0] != want {
		t.Errorf("header contract broken:\nwant %s\ngot  %s", want, lines[0])
	}
}

func TestToCSV_RowRendering(t *testing.T) {
	poids, err := extrafield.NewText(siret, "poids", "Poids", "")
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}
	c := makeCatalog(t, []extrafield.Field{poids})

	updated := time.Date(2023, 3, 7, 0, 0, 0, 0, time.UTC)
	record := dataset.CatalogRecord{ID: uuid.New(), OrganizationSiret: siret, CreatedAt: updated}
	d, err := dataset.New(uuid.New(), record, dataset.Attributes{
		Title:                "Base Carbone",
		Description:          "Facteurs d'émissions",
		Service:              "DSI",
		GeographicalCoverage: "France",
		Formats: []dataformat.DataFormat{
			{ID: 1, Name: "CSV"},
			{ID: 2, Name: "API"},
		},
		TechnicalSource: "SI interne",
		ProducerEmail:   "producteur@example.org",
		ContactEmails:   []string{"a@example.org", "b@example.org"},
		UpdateFrequency: dataset.FrequencyYearly,
		LastUpdatedAt:   &updated,
		URL:             "https://example.org/base-carbone",
		License:         "Licence Ouverte",
		Tags: []tag.Tag{
			{ID: uuid.New(), Name: "climat"},
			{ID: uuid.New(), Name: "énergie"},
		},
		ExtraFieldValues: []extrafield.Value{
			{ExtraFieldID: poids.ID(), Value: "2.4 Go"},
		},
	})
	if err != nil {
		t.Fatalf("dataset.New: %v", err)
	}

	out, err := ToCSV(c, []dataset.Dataset{d})
	if err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines", len(lines))
	}
	want := `Base Carbone,Facteurs d'émissions,DSI,France,"CSV, API",SI interne,` +
		`producteur@example.org,"a@example.org, b@example.org",YEARLY,07/03/2023,` +
		`https://example.org/base-carbone,Licence Ouverte,"climat, énergie",2.4 Go`
	if lines[1] != want {
		t.Errorf("row rendering broken:\nwant %s\ngot  %s", want, lines[1])
	}
}

func TestToCSV_MissingValuesEmptyCells(t *testing.T) {
	poids, err := extrafield.NewText(siret, "poids", "Poids", "")
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}
	c := makeCatalog(t, []extrafield.Field{poids})

	record := dataset.CatalogRecord{ID: uuid.New(), OrganizationSiret: siret}
	d := dataset.Reconstruct(uuid.New(), record, dataset.Attributes{
		Title:                "Minimal",
		Description:          "d",
		Service:              "s",
		GeographicalCoverage: "g",
		ContactEmails:        []string{"c@example.org"},
	})

	out, err := ToCSV(c, []dataset.Dataset{d})
	if err != nil {
		t.Fatalf("ToCSV: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if !strings.HasSuffix(lines[1], ",") {
		t.Errorf("expected trailing empty extra-field cell, got %q", lines[1])
	}
	if !strings.Contains(lines[1], ",,") {
		t.Errorf("expected empty cells for unset attributes, got %q", lines[1])
	}
}
