package db

import (
	"reflect"
	"testing"

	"minisql/core"
	"minisql/storage"
)

var testIdentity = storage.Identity{Name: "Test User", Email: "test@example.com"}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	store, err := storage.NewMemoryStore()
	if err != nil {
		t.Fatalf("NewMemoryStore: %v", err)
	}
	return NewEngine(core.NewDatabase(), store, testIdentity)
}

func mustExecute(t *testing.T, engine *Engine, query string) Result {
	t.Helper()
	result, err := engine.Execute(query)
	if err != nil {
		t.Fatalf("Execute(%q): %v", query, err)
	}
	return result
}

func TestExecuteCreateTable(t *testing.T) {
	engine := newTestEngine(t)

	result := mustExecute(t, engine, "CREATE TABLE users (id Int, name Text);")
	commit, ok := result.(CommitResult)
	if !ok {
		t.Fatalf("result = %T", result)
	}
	if commit.TablesCreated != 1 || commit.RecordsWritten != 0 {
		t.Errorf("result = %+v", commit)
	}
	if commit.Commit.Hash == "" {
		t.Error("mutation was not committed")
	}

	if engine.database.TableCount() != 1 {
		t.Errorf("table count = %d", engine.database.TableCount())
	}
	name, _ := core.NewTableName("users")
	table, ok := engine.database.Table(name)
	if !ok || len(table.Rows()) != 0 {
		t.Errorf("users = %v, %v", table, ok)
	}
}

func TestExecuteCreateTableDuplicate(t *testing.T) {
	engine := newTestEngine(t)
	mustExecute(t, engine, "CREATE TABLE users (id Int, name Text);")

	_, err := engine.Execute("CREATE TABLE users (id Int, name Text);")
	if err == nil || err.Error() != "table 'users' already exists" {
		t.Fatalf("err = %v", err)
	}
	if engine.database.TableCount() != 1 {
		t.Errorf("table count after failed create = %d", engine.database.TableCount())
	}
}

func TestExecuteInsertAndSelectAll(t *testing.T) {
	engine := newTestEngine(t)
	mustExecute(t, engine, "CREATE TABLE users (id Int, name Text);")

	result := mustExecute(t, engine, "INSERT INTO users VALUES (1, 'Alice');")
	commit, ok := result.(CommitResult)
	if !ok || commit.RecordsWritten != 1 {
		t.Fatalf("insert result = %+v", result)
	}

	query := mustExecute(t, engine, "SELECT * FROM users;").(QueryResult)
	wantColumns := []string{"id", "name"}
	wantRows := [][]core.Value{{core.NewInt(1), core.NewText("Alice")}}
	if !reflect.DeepEqual(query.Columns, wantColumns) {
		t.Errorf("columns = %v", query.Columns)
	}
	if !reflect.DeepEqual(query.Rows, wantRows) {
		t.Errorf("rows = %v, want %v", query.Rows, wantRows)
	}
	if query.RecordsRead != 1 {
		t.Errorf("records read = %d", query.RecordsRead)
	}
}

func TestExecuteSelectProjected(t *testing.T) {
	engine := newTestEngine(t)
	mustExecute(t, engine, "CREATE TABLE users (id Int, name Text);")
	mustExecute(t, engine, "INSERT INTO users VALUES (1, 'Alice');")

	query := mustExecute(t, engine, "SELECT name FROM users;").(QueryResult)
	if !reflect.DeepEqual(query.Columns, []string{"name"}) {
		t.Errorf("columns = %v", query.Columns)
	}
	want := [][]core.Value{{core.NewText("Alice")}}
	if !reflect.DeepEqual(query.Rows, want) {
		t.Errorf("rows = %v, want %v", query.Rows, want)
	}
}

func TestExecuteSelectReorderedAndDuplicated(t *testing.T) {
	engine := newTestEngine(t)
	mustExecute(t, engine, "CREATE TABLE users (id Int, name Text);")
	mustExecute(t, engine, "INSERT INTO users VALUES (1, 'Alice');")
	mustExecute(t, engine, "INSERT INTO users VALUES (2, 'Bob');")

	query := mustExecute(t, engine, "SELECT name, id, name FROM users;").(QueryResult)
	want := [][]core.Value{
		{core.NewText("Alice"), core.NewInt(1), core.NewText("Alice")},
		{core.NewText("Bob"), core.NewInt(2), core.NewText("Bob")},
	}
	if !reflect.DeepEqual(query.Rows, want) {
		t.Errorf("rows = %v, want %v", query.Rows, want)
	}
}

func TestExecuteInsertArityMismatch(t *testing.T) {
	engine := newTestEngine(t)
	mustExecute(t, engine, "CREATE TABLE users (id Int, name Text);")

	_, err := engine.Execute("INSERT INTO users VALUES (1);")
	if err == nil || err.Error() != "row has 1 value(s) but schema has 2 column(s)" {
		t.Fatalf("err = %v", err)
	}

	query := mustExecute(t, engine, "SELECT * FROM users;").(QueryResult)
	if len(query.Rows) != 0 {
		t.Errorf("rows after rejected insert = %v", query.Rows)
	}
}

func TestExecuteInsertTypeMismatch(t *testing.T) {
	engine := newTestEngine(t)
	mustExecute(t, engine, "CREATE TABLE users (id Int, name Text);")

	_, err := engine.Execute("INSERT INTO users VALUES ('Alice', 1);")
	if err == nil || err.Error() != "type mismatch at column 0: expected Int, got Text" {
		t.Fatalf("err = %v", err)
	}
}

func TestExecuteUnknownTable(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Execute("SELECT * FROM ghost;")
	if err == nil || err.Error() != "unknown table: ghost" {
		t.Errorf("select err = %v", err)
	}

	_, err = engine.Execute("INSERT INTO ghost VALUES (1);")
	if err == nil || err.Error() != "unknown table: ghost" {
		t.Errorf("insert err = %v", err)
	}
}

func TestExecuteUnknownColumn(t *testing.T) {
	engine := newTestEngine(t)
	mustExecute(t, engine, "CREATE TABLE users (id Int, name Text);")
	mustExecute(t, engine, "INSERT INTO users VALUES (1, 'Alice');")

	_, err := engine.Execute("SELECT ghost FROM users;")
	if err == nil || err.Error() != "unknown column: ghost" {
		t.Fatalf("err = %v", err)
	}
}

func TestExecuteSelectPreservesInsertionOrder(t *testing.T) {
	engine := newTestEngine(t)
	mustExecute(t, engine, "CREATE TABLE nums (n Int);")
	for _, q := range []string{
		"INSERT INTO nums VALUES (3);",
		"INSERT INTO nums VALUES (1);",
		"INSERT INTO nums VALUES (2);",
	} {
		mustExecute(t, engine, q)
	}

	query := mustExecute(t, engine, "SELECT * FROM nums;").(QueryResult)
	want := [][]core.Value{
		{core.NewInt(3)},
		{core.NewInt(1)},
		{core.NewInt(2)},
	}
	if !reflect.DeepEqual(query.Rows, want) {
		t.Errorf("rows = %v, want %v", query.Rows, want)
	}
}

func TestExecuteParseErrorPropagates(t *testing.T) {
	engine := newTestEngine(t)
	if _, err := engine.Execute("CREATE users"); err == nil {
		t.Error("parse error should propagate")
	}
}

func TestExecuteWithoutStore(t *testing.T) {
	engine := NewEngine(core.NewDatabase(), nil, testIdentity)

	result := mustExecute(t, engine, "CREATE TABLE users (id Int, name Text);")
	commit := result.(CommitResult)
	if commit.TablesCreated != 1 {
		t.Errorf("result = %+v", commit)
	}
	if commit.Commit.Hash != "" {
		t.Errorf("commit without store = %+v", commit.Commit)
	}
	if engine.database.TableCount() != 1 {
		t.Errorf("table count = %d", engine.database.TableCount())
	}

	mustExecute(t, engine, "INSERT INTO users VALUES (1, 'Alice');")

	query := mustExecute(t, engine, "SELECT * FROM users;").(QueryResult)
	want := [][]core.Value{{core.NewInt(1), core.NewText("Alice")}}
	if !reflect.DeepEqual(query.Rows, want) {
		t.Errorf("rows = %v, want %v", query.Rows, want)
	}
}

func TestExecuteMutationsAreCommitted(t *testing.T) {
	engine := newTestEngine(t)
	mustExecute(t, engine, "CREATE TABLE users (id Int, name Text);")
	mustExecute(t, engine, "INSERT INTO users VALUES (1, 'Alice');")

	history := engine.store.History()
	if len(history) != 2 {
		t.Fatalf("history length = %d", len(history))
	}

	// The persisted projection reflects the insert.
	name, _ := core.NewTableName("users")
	loaded, err := engine.store.LoadTable(name)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Rows()) != 1 {
		t.Errorf("persisted rows = %d", len(loaded.Rows()))
	}
}
