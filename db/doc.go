// Package db executes parsed statements against a database and persists
// every mutation through the storage layer. It is the only package that
// bridges the data model and the SQL front end.
package db
