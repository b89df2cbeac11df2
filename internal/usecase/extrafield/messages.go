package extrafield

// GetAllExtraFields is the query listing an organization's extra-field
// schema in definition order.
type GetAllExtraFields struct {
	Siret string
}
