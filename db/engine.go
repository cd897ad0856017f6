package db

import (
	"fmt"
	"time"

	"minisql/core"
	"minisql/sql"
	"minisql/storage"
)

// Engine executes statements against one database, committing every
// successful mutation to the store under its identity. A nil store keeps
// the database purely in memory; mutations then report a zero Commit. The
// engine itself does no locking; callers serialize access.
type Engine struct {
	database *core.Database
	store    *storage.Store
	identity storage.Identity
}

func NewEngine(database *core.Database, store *storage.Store, identity storage.Identity) *Engine {
	return &Engine{
		database: database,
		store:    store,
		identity: identity,
	}
}

// Execute parses and runs one statement.
func (engine *Engine) Execute(query string) (Result, error) {
	statement, err := sql.Parse(query)
	if err != nil {
		return nil, err
	}
	return engine.ExecuteStatement(statement)
}

// ExecuteStatement runs an already parsed statement.
func (engine *Engine) ExecuteStatement(statement sql.Statement) (Result, error) {
	switch statement.Type() {
	case sql.SelectStatementType:
		return engine.executeSelectStatement(statement.(sql.SelectStatement))
	case sql.InsertStatementType:
		return engine.executeInsertStatement(statement.(sql.InsertStatement))
	case sql.CreateTableStatementType:
		return engine.executeCreateTableStatement(statement.(sql.CreateTableStatement))
	default:
		return nil, fmt.Errorf("unsupported statement type: %v", statement.Type())
	}
}

// save commits the table's projection, or does nothing when the engine
// has no store.
func (engine *Engine) save(table *core.Table, message string) (storage.Commit, error) {
	if engine.store == nil {
		return storage.Commit{}, nil
	}
	return engine.store.SaveTable(table, engine.identity, message)
}

func (engine *Engine) executeCreateTableStatement(statement sql.CreateTableStatement) (CommitResult, error) {
	startTime := time.Now()

	schema, err := core.NewSchema(statement.Columns)
	if err != nil {
		return CommitResult{}, err
	}

	table, err := engine.database.CreateTable(statement.Table, schema)
	if err != nil {
		return CommitResult{}, err
	}

	commit, err := engine.save(table, fmt.Sprintf("Creating table %s", statement.Table))
	if err != nil {
		return CommitResult{}, err
	}

	return CommitResult{
		Commit:           commit,
		TablesCreated:    1,
		ExecutionTimeSec: time.Since(startTime).Seconds(),
	}, nil
}

func (engine *Engine) executeInsertStatement(statement sql.InsertStatement) (CommitResult, error) {
	startTime := time.Now()

	table, ok := engine.database.Table(statement.Table)
	if !ok {
		return CommitResult{}, fmt.Errorf("unknown table: %s", statement.Table)
	}

	if err := table.Insert(statement.Values); err != nil {
		return CommitResult{}, err
	}

	commit, err := engine.save(table, fmt.Sprintf("Inserting into %s", statement.Table))
	if err != nil {
		return CommitResult{}, err
	}

	return CommitResult{
		Commit:           commit,
		RecordsWritten:   1,
		ExecutionTimeSec: time.Since(startTime).Seconds(),
	}, nil
}

func (engine *Engine) executeSelectStatement(statement sql.SelectStatement) (QueryResult, error) {
	startTime := time.Now()

	table, ok := engine.database.Table(statement.Table)
	if !ok {
		return QueryResult{}, fmt.Errorf("unknown table: %s", statement.Table)
	}
	schema := table.Schema()

	// Resolve the projection before touching any row, so an unknown column
	// fails the whole call with no partial output.
	var columns []string
	var indexes []int
	if statement.Columns == nil {
		for i, column := range schema.Columns() {
			columns = append(columns, column.Name.String())
			indexes = append(indexes, i)
		}
	} else {
		for _, name := range statement.Columns {
			index, ok := schema.IndexOf(name)
			if !ok {
				return QueryResult{}, fmt.Errorf("unknown column: %s", name)
			}
			columns = append(columns, name.String())
			indexes = append(indexes, index)
		}
	}

	stored := table.Rows()
	rows := make([][]core.Value, 0, len(stored))
	for _, row := range stored {
		values := row.Values()
		projected := make([]core.Value, len(indexes))
		for i, index := range indexes {
			projected[i] = values[index]
		}
		rows = append(rows, projected)
	}

	return QueryResult{
		Columns:          columns,
		Rows:             rows,
		RecordsRead:      len(stored),
		ExecutionTimeSec: time.Since(startTime).Seconds(),
	}, nil
}
