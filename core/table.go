package core

// Table is a named schema plus its accumulated rows. Rows are append-only
// and keep insertion order; there is no update or delete path.
type Table struct {
	name   TableName
	schema *Schema
	rows   []Row
}

// NewTable creates an empty table. It cannot fail: the name and schema
// carry their own validity.
func NewTable(name TableName, schema *Schema) *Table {
	return &Table{name: name, schema: schema}
}

// Insert validates values against the table's schema and appends the
// resulting row. This is the single validation point for stored rows: the
// row is built here, against this schema, so a row constructed elsewhere
// against some other schema can never slip in unchecked. A rejected insert
// leaves the table untouched.
func (t *Table) Insert(values []Value) error {
	row, err := NewRow(values, t.schema)
	if err != nil {
		return err
	}
	t.rows = append(t.rows, row)
	return nil
}

// Rows returns the stored rows in insertion order. Callers must not modify
// the returned slice.
func (t *Table) Rows() []Row {
	return t.rows
}

// Name returns the table name.
func (t *Table) Name() TableName {
	return t.name
}

// Schema returns the table schema.
func (t *Table) Schema() *Schema {
	return t.schema
}
