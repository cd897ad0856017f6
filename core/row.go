package core

import "fmt"

// Row is a value vector conforming to exactly one Schema.
type Row struct {
	values []Value
}

// NewRow validates values against schema and wraps them in a Row. Arity is
// checked first, reporting both counts; then each value is checked against
// its column's type left to right, failing at the first mismatch.
func NewRow(values []Value, schema *Schema) (Row, error) {
	columns := schema.Columns()
	if len(values) != len(columns) {
		return Row{}, fmt.Errorf("row has %d value(s) but schema has %d column(s)", len(values), len(columns))
	}
	for i, value := range values {
		if !columns[i].Type.Matches(value) {
			return Row{}, fmt.Errorf("type mismatch at column %d: expected %s, got %s",
				i, columns[i].Type, value.Kind())
		}
	}
	return Row{values: values}, nil
}

// Values returns the row's values in column order. Callers must not modify
// the returned slice.
func (r Row) Values() []Value {
	return r.values
}
