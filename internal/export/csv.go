// Package export renders a catalog's datasets as the CSV interchange
// document consumed by downstream inventory tooling. The column
// contract is fixed: thirteen common columns followed by the catalog's
// extra fields in definition order.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/opencatalogue/catalogd/internal/domain/catalog"
	"github.com/opencatalogue/catalogd/internal/domain/catalog/extrafield"
	"github.com/opencatalogue/catalogd/internal/domain/dataset"
)

// commonColumns are the fixed leading columns of every export.
var commonColumns = []string{
	"titre",
	"description",
	"service",
	"couv_geo",
	"format",
	"si",
	"contact_service",
	"contact_personne",
	"freq_maj",
	"date_maj",
	"url",
	"licence",
	"mots_cles",
}

const dateLayout = "02/01/2006"

// ToCSV renders the datasets of a catalog as CSV. Extra-field columns
// follow the catalog's definition order; datasets missing a value get an
// empty cell.
func ToCSV(c catalog.Catalog, datasets []dataset.Dataset) (string, error) {
	fields := c.ExtraFields()

	header := make([]string, 0, len(commonColumns)+len(fields))
	header = append(header, commonColumns...)
	for _, f := range fields {
		header = append(header, f.Name())
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("writing export header: %w", err)
	}

	for _, d := range datasets {
		if err := w.Write(row(d, fields)); err != nil {
			return "", fmt.Errorf("writing export row for dataset %s: %w", d.ID(), err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing export: %w", err)
	}
	return buf.String(), nil
}

func row(d dataset.Dataset, fields []extrafield.Field) []string {
	attrs := d.Attributes()

	formatNames := make([]string, len(attrs.Formats))
	for i, f := range attrs.Formats {
		formatNames[i] = f.Name
	}
	tagNames := make([]string, len(attrs.Tags))
	for i, t := range attrs.Tags {
		tagNames[i] = t.Name
	}

	lastUpdated := ""
	if attrs.LastUpdatedAt != nil {
		lastUpdated = attrs.LastUpdatedAt.Format(dateLayout)
	}

	cells := []string{
		attrs.Title,
		attrs.Description,
		attrs.Service,
		attrs.GeographicalCoverage,
		strings.Join(formatNames, ", "),
		attrs.TechnicalSource,
		attrs.ProducerEmail,
		strings.Join(attrs.ContactEmails, ", "),
		string(attrs.UpdateFrequency),
		lastUpdated,
		attrs.URL,
		attrs.License,
		strings.Join(tagNames, ", "),
	}

	valuesByID := make(map[uuid.UUID]string, len(attrs.ExtraFieldValues))
	for _, v := range attrs.ExtraFieldValues {
		valuesByID[v.ExtraFieldID] = v.Value
	}
	return append(cells, extrafield.RenderRow(fields, valuesByID)...)
}
