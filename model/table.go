package model

// Table is the generic derived-table shape handed to the reporting layer.
type Table struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	Rows    [][]interface{} `json:"rows"`
}
