package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"minisql/core"
)

// tableRecord is the persisted projection of a table: ordered column
// definitions plus raw value vectors in insertion order. Name, column and
// value fields all re-validate themselves during unmarshaling.
type tableRecord struct {
	Name    core.TableName `json:"name"`
	Columns []core.Column  `json:"columns"`
	Rows    [][]core.Value `json:"rows"`
}

// EncodeTable renders a table as its persisted JSON projection.
func EncodeTable(table *core.Table) ([]byte, error) {
	record := tableRecord{
		Name:    table.Name(),
		Columns: table.Schema().Columns(),
	}
	for _, row := range table.Rows() {
		record.Rows = append(record.Rows, row.Values())
	}
	return json.MarshalIndent(record, "", "  ")
}

// DecodeTable rebuilds a standalone table from its JSON projection,
// re-checking every invariant through the core constructors.
func DecodeTable(data []byte) (*core.Table, error) {
	record, err := decodeRecord(data)
	if err != nil {
		return nil, err
	}

	schema, err := core.NewSchema(record.Columns)
	if err != nil {
		return nil, err
	}
	table := core.NewTable(record.Name, schema)
	for _, values := range record.Rows {
		if err := table.Insert(values); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// RestoreTable rebuilds a table from its JSON projection and registers it
// in db, failing if the name is already taken.
func RestoreTable(db *core.Database, data []byte) (*core.Table, error) {
	record, err := decodeRecord(data)
	if err != nil {
		return nil, err
	}

	schema, err := core.NewSchema(record.Columns)
	if err != nil {
		return nil, err
	}
	table, err := db.CreateTable(record.Name, schema)
	if err != nil {
		return nil, err
	}
	for _, values := range record.Rows {
		if err := table.Insert(values); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func decodeRecord(data []byte) (tableRecord, error) {
	var record tableRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return tableRecord{}, fmt.Errorf("failed to unmarshal table: %w", err)
	}
	if record.Name == (core.TableName{}) {
		return tableRecord{}, errors.New("table record is missing a name")
	}
	return record, nil
}
