package core

import "fmt"

// Column pairs a validated name with a declared type.
type Column struct {
	Name ColumnName `json:"name"`
	Type DataType   `json:"type"`
}

// Schema is an ordered, name-unique column list with O(1) lookup of a
// column's position by name. Schemas are immutable once built; changing a
// table's shape means building a new Schema.
type Schema struct {
	columns     []Column
	indexByName map[ColumnName]int
}

// NewSchema builds a schema from an ordered column list. It fails on the
// first repeated column name; the input is never silently deduplicated.
func NewSchema(columns []Column) (*Schema, error) {
	indexByName := make(map[ColumnName]int, len(columns))
	for i, column := range columns {
		if _, exists := indexByName[column.Name]; exists {
			return nil, fmt.Errorf("duplicate column name: %s", column.Name)
		}
		indexByName[column.Name] = i
	}
	return &Schema{columns: columns, indexByName: indexByName}, nil
}

// Columns returns the ordered column list. Callers must not modify it.
func (s *Schema) Columns() []Column {
	return s.columns
}

// IndexOf returns the position of the named column, if present.
func (s *Schema) IndexOf(name ColumnName) (int, bool) {
	i, ok := s.indexByName[name]
	return i, ok
}
