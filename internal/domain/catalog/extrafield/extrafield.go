package extrafield

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/opencatalogue/catalogd/internal/domain"
	"github.com/opencatalogue/catalogd/internal/domain/organization"
)

// Kind discriminates the extra-field union.
type Kind string

// Extra-field kind constants.
const (
	Text Kind = "TEXT"
	Enum Kind = "ENUM"
	Bool Kind = "BOOL"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool { return k == Text || k == Enum || k == Bool }

// Field is a per-organization custom dataset attribute. It is a tagged
// union over {Text, Enum, Bool}: the kind selects which variant data is
// populated, and the kind-specific constructors are the only way to build
// a valid Field.
type Field struct {
	id                uuid.UUID
	organizationSiret organization.Siret
	name              string
	title             string
	hintText          string
	kind              Kind

	enumValues []string // Enum only
	trueValue  string   // Bool only
	falseValue string   // Bool only
}

// NewText creates a TEXT extra field.
func NewText(siret organization.Siret, name, title, hintText string) (Field, error) {
	if name == "" {
		return Field{}, domain.Invalid("name", "must not be empty")
	}
	return Field{
		id:                uuid.New(),
		organizationSiret: siret,
		name:              name,
		title:             title,
		hintText:          hintText,
		kind:              Text,
	}, nil
}

// NewEnum creates an ENUM extra field. Values must be non-empty.
func NewEnum(siret organization.Siret, name, title, hintText string, values []string) (Field, error) {
	if name == "" {
		return Field{}, domain.Invalid("name", "must not be empty")
	}
	if len(values) == 0 {
		return Field{}, domain.Invalid("data.values", "must contain at least one item")
	}
	f := Field{
		id:                uuid.New(),
		organizationSiret: siret,
		name:              name,
		title:             title,
		hintText:          hintText,
		kind:              Enum,
		enumValues:        append([]string(nil), values...),
	}
	return f, nil
}

// NewBool creates a BOOL extra field with its display values.
func NewBool(siret organization.Siret, name, title, hintText, trueValue, falseValue string) (Field, error) {
	if name == "" {
		return Field{}, domain.Invalid("name", "must not be empty")
	}
	return Field{
		id:                uuid.New(),
		organizationSiret: siret,
		name:              name,
		title:             title,
		hintText:          hintText,
		kind:              Bool,
		trueValue:         trueValue,
		falseValue:        falseValue,
	}, nil
}

// Reconstruct creates a Field without validation (storage hydration).
func Reconstruct(
	id uuid.UUID, siret organization.Siret, name, title, hintText string,
	kind Kind, enumValues []string, trueValue, falseValue string,
) Field {
	return Field{
		id:                id,
		organizationSiret: siret,
		name:              name,
		title:             title,
		hintText:          hintText,
		kind:              kind,
		enumValues:        enumValues,
		trueValue:         trueValue,
		falseValue:        falseValue,
	}
}

// ID returns the field identifier.
func (f Field) ID() uuid.UUID { return f.id }

// OrganizationSiret returns the owning organization.
func (f Field) OrganizationSiret() organization.Siret { return f.organizationSiret }

// Name returns the field name (unique within the organization).
func (f Field) Name() string { return f.name }

// Title returns the display title.
func (f Field) Title() string { return f.title }

// HintText returns the form hint.
func (f Field) HintText() string { return f.hintText }

// FieldKind returns the union discriminant.
func (f Field) FieldKind() Kind { return f.kind }

// EnumValues returns the allowed values of an ENUM field.
func (f Field) EnumValues() []string { return f.enumValues }

// TrueValue returns the BOOL display value for true.
func (f Field) TrueValue() string { return f.trueValue }

// FalseValue returns the BOOL display value for false.
func (f Field) FalseValue() string { return f.falseValue }

// Value attaches a raw string value to an extra field of a dataset.
type Value struct {
	ExtraFieldID uuid.UUID
	Value        string
}

// Definition is the raw client-submitted shape of an extra field, before
// validation. Data carries the kind-specific keys.
type Definition struct {
	ID       *uuid.UUID
	Name     string
	Title    string
	HintText string
	Kind     string
	Data     map[string]any
}

// requiredDataKeys lists the data keys each kind demands. Keys outside
// the variant's set are rejected as well.
var requiredDataKeys = map[Kind][]string{
	Text: {},
	Enum: {"values"},
	Bool: {"true_value", "false_value"},
}

// ParseDefinitions validates raw definitions and builds Fields owned by
// the given organization. The caller supplies the siret: it is not
// client-controllable independently of the catalog being created or
// extended. Fields without an id get a fresh one. Errors carry the full
// field path (extra_fields[i].data.<key>), one per missing or unexpected
// key; an unknown kind yields a single error for the item.
func ParseDefinitions(defs []Definition, siret organization.Siret) ([]Field, error) {
	fields := make([]Field, 0, len(defs))
	var errs []domain.FieldError
	seen := make(map[string]bool, len(defs))

	for i, def := range defs {
		path := fmt.Sprintf("extra_fields[%d]", i)

		kind := Kind(def.Kind)
		if !kind.Valid() {
			errs = append(errs, domain.FieldError{
				Path:    path + ".type",
				Message: fmt.Sprintf("unrecognized kind %q (expected TEXT, ENUM or BOOL)", def.Kind),
			})
			continue
		}

		if def.Name == "" {
			errs = append(errs, domain.FieldError{Path: path + ".name", Message: "must not be empty"})
			continue
		}
		if seen[def.Name] {
			errs = append(errs, domain.FieldError{
				Path:    path + ".name",
				Message: fmt.Sprintf("duplicate field name %q", def.Name),
			})
			continue
		}
		seen[def.Name] = true

		data, dataErrs := checkDataKeys(path, kind, def.Data)
		if len(dataErrs) > 0 {
			errs = append(errs, dataErrs...)
			continue
		}

		f, err := buildField(kind, siret, def, data)
		if err != nil {
			errs = append(errs, domain.FieldError{Path: path, Message: err.Error()})
			continue
		}
		if def.ID != nil {
			f.id = *def.ID
		}
		fields = append(fields, f)
	}

	if len(errs) > 0 {
		return nil, domain.NewValidationError(errs...)
	}
	return fields, nil
}

// checkDataKeys verifies the data map holds exactly the variant's keys,
// each a string (or list of strings for enum values).
func checkDataKeys(path string, kind Kind, data map[string]any) (map[string]any, []domain.FieldError) {
	var errs []domain.FieldError
	required := requiredDataKeys[kind]

	allowed := make(map[string]bool, len(required))
	for _, k := range required {
		allowed[k] = true
		if _, ok := data[k]; !ok {
			errs = append(errs, domain.FieldError{
				Path:    fmt.Sprintf("%s.data.%s", path, k),
				Message: "missing required key",
			})
		}
	}
	for k := range data {
		if !allowed[k] {
			errs = append(errs, domain.FieldError{
				Path:    fmt.Sprintf("%s.data.%s", path, k),
				Message: fmt.Sprintf("unexpected key for kind %s", kind),
			})
		}
	}
	return data, errs
}

func buildField(kind Kind, siret organization.Siret, def Definition, data map[string]any) (Field, error) {
	switch kind {
	case Text:
		return NewText(siret, def.Name, def.Title, def.HintText)
	case Enum:
		values, err := stringList(data["values"])
		if err != nil {
			return Field{}, fmt.Errorf("data.values: %w", err)
		}
		return NewEnum(siret, def.Name, def.Title, def.HintText, values)
	case Bool:
		trueValue, err := stringValue(data["true_value"])
		if err != nil {
			return Field{}, fmt.Errorf("data.true_value: %w", err)
		}
		falseValue, err := stringValue(data["false_value"])
		if err != nil {
			return Field{}, fmt.Errorf("data.false_value: %w", err)
		}
		return NewBool(siret, def.Name, def.Title, def.HintText, trueValue, falseValue)
	}
	return Field{}, fmt.Errorf("unrecognized kind %q", kind)
}

func stringValue(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected a string, got %T", v)
	}
	return s, nil
}

func stringList(v any) ([]string, error) {
	switch list := v.(type) {
	case []string:
		return list, nil
	case []any:
		out := make([]string, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected strings, got %T at index %d", item, i)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a list of strings, got %T", v)
	}
}

// RenderRow emits one export cell per extra field, in catalog-definition
// order, independent of value insertion order. Fields without a value
// yield an empty string. This ordering governs export column layout.
func RenderRow(fields []Field, valuesByFieldID map[uuid.UUID]string) []string {
	row := make([]string, len(fields))
	for i, f := range fields {
		row[i] = valuesByFieldID[f.id]
	}
	return row
}
