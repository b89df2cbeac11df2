package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/opencatalogue/catalogd/internal/domain/catalog/extrafield"
	domorg "github.com/opencatalogue/catalogd/internal/domain/organization"
)

// extraFieldRow is the JSON-serializable representation of an extra
// field for HSET. Kind-specific data keys are populated per the kind.
type extraFieldRow struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Title      string   `json:"title"`
	HintText   string   `json:"hint_text,omitempty"`
	Kind       string   `json:"kind"`
	EnumValues []string `json:"enum_values,omitempty"`
	TrueValue  string   `json:"true_value,omitempty"`
	FalseValue string   `json:"false_value,omitempty"`
}

func extraFieldsToJSON(fields []extrafield.Field) (string, error) {
	rows := make([]extraFieldRow, len(fields))
	for i, f := range fields {
		rows[i] = extraFieldRow{
			ID:         f.ID().String(),
			Name:       f.Name(),
			Title:      f.Title(),
			HintText:   f.HintText(),
			Kind:       string(f.FieldKind()),
			EnumValues: f.EnumValues(),
			TrueValue:  f.TrueValue(),
			FalseValue: f.FalseValue(),
		}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("marshal extra fields: %w", err)
	}
	return string(data), nil
}

func extraFieldsFromJSON(raw string, siret domorg.Siret) ([]extrafield.Field, error) {
	if raw == "" {
		return nil, nil
	}
	var rows []extraFieldRow
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil, fmt.Errorf("unmarshal extra fields: %w", err)
	}

	fields := make([]extrafield.Field, len(rows))
	for i, row := range rows {
		id, err := uuid.Parse(row.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid extra field id %q: %w", row.ID, err)
		}
		fields[i] = extrafield.Reconstruct(
			id, siret, row.Name, row.Title, row.HintText,
			extrafield.Kind(row.Kind), row.EnumValues, row.TrueValue, row.FalseValue,
		)
	}
	return fields, nil
}
