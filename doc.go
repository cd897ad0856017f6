// Package minisql is a minimal relational data engine backed by git.
//
// Tables are schema-typed: every insert is validated for arity and
// per-column type before it is stored, and every mutation becomes a git
// commit, giving full history for free.
//
// # Quick Start
//
// Open an in-memory instance:
//
//	store, _ := storage.NewMemoryStore()
//	instance, _ := minisql.Open(store)
//	engine := instance.Engine(storage.Identity{Name: "App", Email: "app@example.com"})
//
//	engine.Execute("CREATE TABLE users (id Int, name Text)")
//	engine.Execute("INSERT INTO users VALUES (1, 'Alice')")
//
//	result, _ := engine.Execute("SELECT * FROM users")
//	result.Display()
//
// # Supported SQL
//
// The grammar is deliberately small:
//   - CREATE TABLE with Int and Text columns
//   - single-row INSERT INTO ... VALUES
//   - SELECT * or a column projection, no filtering
package minisql
