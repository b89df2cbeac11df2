package chi

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	domacct "github.com/opencatalogue/catalogd/internal/domain/account"
	domcat "github.com/opencatalogue/catalogd/internal/domain/catalog"
	"github.com/opencatalogue/catalogd/internal/domain/catalog/extrafield"
	domfmt "github.com/opencatalogue/catalogd/internal/domain/dataformat"
	domds "github.com/opencatalogue/catalogd/internal/domain/dataset"
	domorg "github.com/opencatalogue/catalogd/internal/domain/organization"
	domtag "github.com/opencatalogue/catalogd/internal/domain/tag"
	"github.com/opencatalogue/catalogd/internal/usecase/dataset"
)

type organizationResponse struct {
	Siret   string `json:"siret"`
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
}

func organizationToResponse(o domorg.Organization) organizationResponse {
	return organizationResponse{
		Siret:   string(o.Siret),
		Name:    o.Name,
		LogoURL: o.LogoURL,
	}
}

type tagResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func tagToResponse(t domtag.Tag) tagResponse {
	return tagResponse{ID: t.ID, Name: t.Name}
}

type dataFormatResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func dataFormatToResponse(f domfmt.DataFormat) dataFormatResponse {
	return dataFormatResponse{ID: f.ID, Name: f.Name}
}

// extraFieldResponse renders the tagged union: data carries the
// kind-specific keys, empty for TEXT.
type extraFieldResponse struct {
	ID                uuid.UUID      `json:"id"`
	OrganizationSiret string         `json:"organization_siret"`
	Name              string         `json:"name"`
	Title             string         `json:"title"`
	HintText          string         `json:"hint_text"`
	Type              string         `json:"type"`
	Data              map[string]any `json:"data"`
}

func extraFieldToResponse(f extrafield.Field) extraFieldResponse {
	data := map[string]any{}
	switch f.FieldKind() {
	case extrafield.Enum:
		data["values"] = f.EnumValues()
	case extrafield.Bool:
		data["true_value"] = f.TrueValue()
		data["false_value"] = f.FalseValue()
	case extrafield.Text:
	}
	return extraFieldResponse{
		ID:                f.ID(),
		OrganizationSiret: string(f.OrganizationSiret()),
		Name:              f.Name(),
		Title:             f.Title(),
		HintText:          f.HintText(),
		Type:              string(f.FieldKind()),
		Data:              data,
	}
}

func extraFieldsToResponse(fields []extrafield.Field) []extraFieldResponse {
	out := make([]extraFieldResponse, len(fields))
	for i, f := range fields {
		out[i] = extraFieldToResponse(f)
	}
	return out
}

type extraFieldDefinitionRequest struct {
	ID       *uuid.UUID     `json:"id,omitempty"`
	Name     string         `json:"name"`
	Title    string         `json:"title"`
	HintText string         `json:"hint_text"`
	Type     string         `json:"type"`
	Data     map[string]any `json:"data"`
}

func definitionsFromRequest(defs []extraFieldDefinitionRequest) []extrafield.Definition {
	out := make([]extrafield.Definition, len(defs))
	for i, d := range defs {
		out[i] = extrafield.Definition{
			ID:       d.ID,
			Name:     d.Name,
			Title:    d.Title,
			HintText: d.HintText,
			Kind:     d.Type,
			Data:     d.Data,
		}
	}
	return out
}

type catalogResponse struct {
	Organization organizationResponse `json:"organization"`
	ExtraFields  []extraFieldResponse `json:"extra_fields"`
}

func catalogToResponse(c domcat.Catalog) catalogResponse {
	return catalogResponse{
		Organization: organizationToResponse(c.Organization()),
		ExtraFields:  extraFieldsToResponse(c.ExtraFields()),
	}
}

type extraFieldValueDTO struct {
	ExtraFieldID uuid.UUID `json:"extra_field_id"`
	Value        string    `json:"value"`
}

type catalogRecordResponse struct {
	ID                uuid.UUID `json:"id"`
	OrganizationSiret string    `json:"organization_siret"`
	CreatedAt         time.Time `json:"created_at"`
}

type datasetResponse struct {
	ID                     uuid.UUID             `json:"id"`
	CatalogRecord          catalogRecordResponse `json:"catalog_record"`
	Title                  string                `json:"title"`
	Description            string                `json:"description"`
	Service                string                `json:"service"`
	GeographicalCoverage   string                `json:"geographical_coverage"`
	Formats                []dataFormatResponse  `json:"formats"`
	TechnicalSource        string                `json:"technical_source,omitempty"`
	ProducerEmail          string                `json:"producer_email,omitempty"`
	ContactEmails          []string              `json:"contact_emails"`
	UpdateFrequency        string                `json:"update_frequency,omitempty"`
	LastUpdatedAt          *time.Time            `json:"last_updated_at,omitempty"`
	URL                    string                `json:"url,omitempty"`
	License                string                `json:"license,omitempty"`
	Tags                   []tagResponse         `json:"tags"`
	ExtraFieldValues       []extraFieldValueDTO  `json:"extra_field_values"`
	PublicationRestriction string                `json:"publication_restriction"`
}

func datasetToResponse(d domds.Dataset) datasetResponse {
	attrs := d.Attributes()

	formats := make([]dataFormatResponse, len(attrs.Formats))
	for i, f := range attrs.Formats {
		formats[i] = dataFormatToResponse(f)
	}

	tags := make([]tagResponse, len(attrs.Tags))
	for i, t := range attrs.Tags {
		tags[i] = tagToResponse(t)
	}

	values := make([]extraFieldValueDTO, len(attrs.ExtraFieldValues))
	for i, v := range attrs.ExtraFieldValues {
		values[i] = extraFieldValueDTO{ExtraFieldID: v.ExtraFieldID, Value: v.Value}
	}

	record := d.CatalogRecord()
	return datasetResponse{
		ID: d.ID(),
		CatalogRecord: catalogRecordResponse{
			ID:                record.ID,
			OrganizationSiret: string(record.OrganizationSiret),
			CreatedAt:         record.CreatedAt.UTC(),
		},
		Title:                  attrs.Title,
		Description:            attrs.Description,
		Service:                attrs.Service,
		GeographicalCoverage:   attrs.GeographicalCoverage,
		Formats:                formats,
		TechnicalSource:        attrs.TechnicalSource,
		ProducerEmail:          attrs.ProducerEmail,
		ContactEmails:          attrs.ContactEmails,
		UpdateFrequency:        string(attrs.UpdateFrequency),
		LastUpdatedAt:          attrs.LastUpdatedAt,
		URL:                    attrs.URL,
		License:                attrs.License,
		Tags:                   tags,
		ExtraFieldValues:       values,
		PublicationRestriction: string(attrs.PublicationRestriction),
	}
}

type headlinesResponse struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type datasetHitResponse struct {
	datasetResponse
	Rank      float64            `json:"rank,omitempty"`
	Headlines *headlinesResponse `json:"headlines,omitempty"`
}

func hitToResponse(h dataset.Hit) datasetHitResponse {
	resp := datasetHitResponse{
		datasetResponse: datasetToResponse(h.Dataset),
		Rank:            h.Rank,
	}
	if h.Headlines != nil {
		resp.Headlines = &headlinesResponse{
			Title:       h.Headlines.Title,
			Description: h.Headlines.Description,
		}
	}
	return resp
}

type datasetPayloadRequest struct {
	Title                  string               `json:"title"`
	Description            string               `json:"description"`
	Service                string               `json:"service"`
	GeographicalCoverage   string               `json:"geographical_coverage"`
	FormatIDs              []int64              `json:"format_ids"`
	TechnicalSource        string               `json:"technical_source"`
	ProducerEmail          string               `json:"producer_email"`
	ContactEmails          []string             `json:"contact_emails"`
	UpdateFrequency        string               `json:"update_frequency"`
	LastUpdatedAt          *time.Time           `json:"last_updated_at"`
	URL                    string               `json:"url"`
	License                string               `json:"license"`
	TagIDs                 []uuid.UUID          `json:"tag_ids"`
	ExtraFieldValues       []extraFieldValueDTO `json:"extra_field_values"`
	PublicationRestriction string               `json:"publication_restriction"`
}

func payloadFromRequest(req datasetPayloadRequest) dataset.Payload {
	values := make([]extrafield.Value, len(req.ExtraFieldValues))
	for i, v := range req.ExtraFieldValues {
		values[i] = extrafield.Value{ExtraFieldID: v.ExtraFieldID, Value: v.Value}
	}
	return dataset.Payload{
		Title:                  req.Title,
		Description:            req.Description,
		Service:                req.Service,
		GeographicalCoverage:   req.GeographicalCoverage,
		FormatIDs:              req.FormatIDs,
		TechnicalSource:        req.TechnicalSource,
		ProducerEmail:          req.ProducerEmail,
		ContactEmails:          req.ContactEmails,
		UpdateFrequency:        domds.UpdateFrequency(req.UpdateFrequency),
		LastUpdatedAt:          req.LastUpdatedAt,
		URL:                    req.URL,
		License:                req.License,
		TagIDs:                 req.TagIDs,
		ExtraFieldValues:       values,
		PublicationRestriction: domds.PublicationRestriction(req.PublicationRestriction),
	}
}

type filtersResponse struct {
	Organizations         []organizationResponse `json:"organizations"`
	GeographicalCoverages []string               `json:"geographical_coverages"`
	Services              []string               `json:"services"`
	TechnicalSources      []string               `json:"technical_sources"`
	Formats               []dataFormatResponse   `json:"formats"`
	Tags                  []tagResponse          `json:"tags"`
	Licenses              []string               `json:"licenses"`
}

func filtersToResponse(f dataset.Filters) filtersResponse {
	orgs := make([]organizationResponse, len(f.Organizations))
	for i, o := range f.Organizations {
		orgs[i] = organizationToResponse(o)
	}
	formats := make([]dataFormatResponse, len(f.Formats))
	for i, ff := range f.Formats {
		formats[i] = dataFormatToResponse(ff)
	}
	tags := make([]tagResponse, len(f.Tags))
	for i, t := range f.Tags {
		tags[i] = tagToResponse(t)
	}
	return filtersResponse{
		Organizations:         orgs,
		GeographicalCoverages: f.GeographicalCoverages,
		Services:              f.Services,
		TechnicalSources:      f.TechnicalSources,
		Formats:               formats,
		Tags:                  tags,
		Licenses:              f.Licenses,
	}
}

type accountResponse struct {
	ID                uuid.UUID `json:"id"`
	OrganizationSiret string    `json:"organization_siret"`
	Email             string    `json:"email"`
	Role              string    `json:"role"`
}

func accountToResponse(a domacct.Account) accountResponse {
	return accountResponse{
		ID:                a.ID,
		OrganizationSiret: string(a.OrganizationSiret),
		Email:             a.Email,
		Role:              string(a.Role),
	}
}

// authenticatedAccountResponse additionally exposes the API token. Only
// login and account creation return it.
type authenticatedAccountResponse struct {
	accountResponse
	APIToken string `json:"api_token"`
}

func authenticatedAccountToResponse(a domacct.Account) authenticatedAccountResponse {
	return authenticatedAccountResponse{
		accountResponse: accountToResponse(a),
		APIToken:        a.APIToken,
	}
}

type paginatedResponse[T any] struct {
	Items      []T `json:"items"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

func exportFilename(siret string) string {
	return fmt.Sprintf("catalogue-%s.csv", siret)
}
