package core

import (
	"fmt"
	"sort"
)

// Database is a name-unique collection of tables. It owns its tables
// exclusively; a table never exists outside the database that created it.
//
// Access is single-threaded by design: callers serialize externally (the
// server does so with a mutex around each statement).
type Database struct {
	tables map[TableName]*Table
}

// NewDatabase returns an empty database.
func NewDatabase() *Database {
	return &Database{tables: make(map[TableName]*Table)}
}

// CreateTable creates an empty table under name. If the name is taken the
// call fails and the database is left exactly as it was.
func (d *Database) CreateTable(name TableName, schema *Schema) (*Table, error) {
	if _, exists := d.tables[name]; exists {
		return nil, fmt.Errorf("table '%s' already exists", name)
	}
	table := NewTable(name, schema)
	d.tables[name] = table
	return table, nil
}

// Table looks up a table by name. Absence is a normal outcome here; it
// becomes an error only at the executor boundary.
func (d *Database) Table(name TableName) (*Table, bool) {
	t, ok := d.tables[name]
	return t, ok
}

// TableCount returns the number of tables.
func (d *Database) TableCount() int {
	return len(d.tables)
}

// TableNames returns all table names in lexical order.
func (d *Database) TableNames() []string {
	names := make([]string, 0, len(d.tables))
	for name := range d.tables {
		names = append(names, name.String())
	}
	sort.Strings(names)
	return names
}
