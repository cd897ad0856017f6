// Package core defines the relational data model: column types and runtime
// values, validated table and column names, schemas, rows, tables, and the
// database container.
//
// Everything above this package (the SQL front end, the executor, the
// storage layer) consumes these types; none of them redefine their own.
// Invariants are enforced at construction time: a TableName or ColumnName
// can only be produced by its validating constructor, a Schema rejects
// duplicate column names, and a Table only grows through a validating
// insert. A value of any of these types is therefore well formed wherever
// it appears.
package core
