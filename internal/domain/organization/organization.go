package organization

import (
	"fmt"
	"strings"

	"github.com/opencatalogue/catalogd/internal/domain"
)

// Siret is a French business registration identifier: 14 digits, with
// optional space grouping preserved as entered.
type Siret string

const siretDigits = 14

// ParseSiret validates a siret. Spaces are tolerated and kept.
func ParseSiret(raw string) (Siret, error) {
	digits := 0
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ' ':
		default:
			return "", domain.Invalid("siret", fmt.Sprintf("unexpected character %q", r))
		}
	}
	if digits != siretDigits {
		return "", domain.Invalid("siret", fmt.Sprintf("expected %d digits, got %d", siretDigits, digits))
	}
	return Siret(raw), nil
}

// Normalized returns the siret without spaces.
func (s Siret) Normalized() string {
	return strings.ReplaceAll(string(s), " ", "")
}

// Organization is a publishing entity identified by its siret.
// Identity is immutable once created.
type Organization struct {
	Siret   Siret
	Name    string
	LogoURL string
}

// New validates and creates an Organization.
func New(siret Siret, name, logoURL string) (Organization, error) {
	if name == "" {
		return Organization{}, domain.Invalid("name", "must not be empty")
	}
	return Organization{Siret: siret, Name: name, LogoURL: logoURL}, nil
}
