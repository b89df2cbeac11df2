package dataformat

// CreateDataFormat is the command creating a data format.
type CreateDataFormat struct {
	Name string
}

// GetAllDataFormats is the query listing every data format.
type GetAllDataFormats struct{}

// GetDataFormatsByIDs is the query resolving data formats by id,
// preserving order.
type GetDataFormatsByIDs struct {
	IDs []int64
}
