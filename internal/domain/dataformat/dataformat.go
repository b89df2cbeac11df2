package dataformat

// DataFormat names a distribution format (CSV, API, ...). Formats are
// shared across catalogs; names are unique.
type DataFormat struct {
	ID   int64
	Name string
}
