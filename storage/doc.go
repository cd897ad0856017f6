// Package storage persists tables as JSON projections inside a git
// repository, one file per table, one commit per mutation. The store never
// bypasses the core constructors on load: a reloaded table passes the same
// schema and row validation as a freshly built one.
package storage
