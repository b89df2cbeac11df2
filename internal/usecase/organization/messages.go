package organization

// CreateOrganization is the command registering an organization.
type CreateOrganization struct {
	Siret   string
	Name    string
	LogoURL string
}

// GetAllOrganizations is the query listing every organization.
type GetAllOrganizations struct{}

// GetOrganizationBySiret is the query fetching one organization.
type GetOrganizationBySiret struct {
	Siret string
}
