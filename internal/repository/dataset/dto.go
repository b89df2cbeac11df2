package dataset

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/opencatalogue/catalogd/internal/domain/catalog/extrafield"
	"github.com/opencatalogue/catalogd/internal/domain/dataformat"
	domds "github.com/opencatalogue/catalogd/internal/domain/dataset"
	domorg "github.com/opencatalogue/catalogd/internal/domain/organization"
	"github.com/opencatalogue/catalogd/internal/domain/tag"
)

type tagRow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type formatRow struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type extraValueRow struct {
	ExtraFieldID string `json:"extra_field_id"`
	Value        string `json:"value"`
}

// datasetToHash converts a domain Dataset to a map for HSET.
func datasetToHash(d domds.Dataset) (map[string]string, error) {
	attrs := d.Attributes()
	record := d.CatalogRecord()

	tagRows := make([]tagRow, len(attrs.Tags))
	for i, t := range attrs.Tags {
		tagRows[i] = tagRow{ID: t.ID.String(), Name: t.Name}
	}
	formatRows := make([]formatRow, len(attrs.Formats))
	for i, f := range attrs.Formats {
		formatRows[i] = formatRow{ID: f.ID, Name: f.Name}
	}
	valueRows := make([]extraValueRow, len(attrs.ExtraFieldValues))
	for i, v := range attrs.ExtraFieldValues {
		valueRows[i] = extraValueRow{ExtraFieldID: v.ExtraFieldID.String(), Value: v.Value}
	}

	tagsJSON, err := json.Marshal(tagRows)
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}
	formatsJSON, err := json.Marshal(formatRows)
	if err != nil {
		return nil, fmt.Errorf("marshal formats: %w", err)
	}
	contactsJSON, err := json.Marshal(attrs.ContactEmails)
	if err != nil {
		return nil, fmt.Errorf("marshal contact emails: %w", err)
	}
	valuesJSON, err := json.Marshal(valueRows)
	if err != nil {
		return nil, fmt.Errorf("marshal extra field values: %w", err)
	}

	m := map[string]string{
		"id":                      d.ID().String(),
		"record_id":               record.ID.String(),
		"organization_siret":      string(record.OrganizationSiret),
		"created_at":              strconv.FormatInt(record.CreatedAt.UnixMilli(), 10),
		"title":                   attrs.Title,
		"description":             attrs.Description,
		"service":                 attrs.Service,
		"geographical_coverage":   attrs.GeographicalCoverage,
		"formats_json":            string(formatsJSON),
		"technical_source":        attrs.TechnicalSource,
		"producer_email":          attrs.ProducerEmail,
		"contact_emails_json":     string(contactsJSON),
		"update_frequency":        string(attrs.UpdateFrequency),
		"url":                     attrs.URL,
		"license":                 attrs.License,
		"tags_json":               string(tagsJSON),
		"extra_field_values_json": string(valuesJSON),
		"publication_restriction": string(attrs.PublicationRestriction),
	}
	if attrs.LastUpdatedAt != nil {
		m["last_updated_at"] = strconv.FormatInt(attrs.LastUpdatedAt.UnixMilli(), 10)
	}
	return m, nil
}

// datasetFromHash hydrates a domain Dataset from an HGETALL result map.
func datasetFromHash(m map[string]string) (domds.Dataset, error) {
	id, err := uuid.Parse(m["id"])
	if err != nil {
		return domds.Dataset{}, fmt.Errorf("invalid id %q: %w", m["id"], err)
	}
	recordID, err := uuid.Parse(m["record_id"])
	if err != nil {
		return domds.Dataset{}, fmt.Errorf("invalid record_id %q: %w", m["record_id"], err)
	}
	createdAtMillis, err := strconv.ParseInt(m["created_at"], 10, 64)
	if err != nil {
		return domds.Dataset{}, fmt.Errorf("invalid created_at: %w", err)
	}

	var tagRows []tagRow
	if raw := m["tags_json"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &tagRows); err != nil {
			return domds.Dataset{}, fmt.Errorf("unmarshal tags: %w", err)
		}
	}
	tags := make([]tag.Tag, len(tagRows))
	for i, row := range tagRows {
		tagID, err := uuid.Parse(row.ID)
		if err != nil {
			return domds.Dataset{}, fmt.Errorf("invalid tag id %q: %w", row.ID, err)
		}
		tags[i] = tag.Tag{ID: tagID, Name: row.Name}
	}

	var formatRows []formatRow
	if raw := m["formats_json"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &formatRows); err != nil {
			return domds.Dataset{}, fmt.Errorf("unmarshal formats: %w", err)
		}
	}
	formats := make([]dataformat.DataFormat, len(formatRows))
	for i, row := range formatRows {
		formats[i] = dataformat.DataFormat{ID: row.ID, Name: row.Name}
	}

	var contactEmails []string
	if raw := m["contact_emails_json"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &contactEmails); err != nil {
			return domds.Dataset{}, fmt.Errorf("unmarshal contact emails: %w", err)
		}
	}

	var valueRows []extraValueRow
	if raw := m["extra_field_values_json"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &valueRows); err != nil {
			return domds.Dataset{}, fmt.Errorf("unmarshal extra field values: %w", err)
		}
	}
	values := make([]extrafield.Value, len(valueRows))
	for i, row := range valueRows {
		fieldID, err := uuid.Parse(row.ExtraFieldID)
		if err != nil {
			return domds.Dataset{}, fmt.Errorf("invalid extra field id %q: %w", row.ExtraFieldID, err)
		}
		values[i] = extrafield.Value{ExtraFieldID: fieldID, Value: row.Value}
	}

	var lastUpdatedAt *time.Time
	if raw, ok := m["last_updated_at"]; ok && raw != "" {
		millis, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return domds.Dataset{}, fmt.Errorf("invalid last_updated_at: %w", err)
		}
		t := time.UnixMilli(millis).UTC()
		lastUpdatedAt = &t
	}

	record := domds.CatalogRecord{
		ID:                recordID,
		OrganizationSiret: domorg.Siret(m["organization_siret"]),
		CreatedAt:         time.UnixMilli(createdAtMillis).UTC(),
	}
	attrs := domds.Attributes{
		Title:                  m["title"],
		Description:            m["description"],
		Service:                m["service"],
		GeographicalCoverage:   m["geographical_coverage"],
		Formats:                formats,
		TechnicalSource:        m["technical_source"],
		ProducerEmail:          m["producer_email"],
		ContactEmails:          contactEmails,
		UpdateFrequency:        domds.UpdateFrequency(m["update_frequency"]),
		LastUpdatedAt:          lastUpdatedAt,
		URL:                    m["url"],
		License:                m["license"],
		Tags:                   tags,
		ExtraFieldValues:       values,
		PublicationRestriction: domds.PublicationRestriction(m["publication_restriction"]),
	}
	return domds.Reconstruct(id, record, attrs), nil
}
