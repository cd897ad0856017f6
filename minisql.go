package minisql

import (
	"fmt"
	"io"

	"minisql/core"
	"minisql/db"
	"minisql/storage"
)

// Instance pairs a live database with the store it was loaded from.
type Instance struct {
	Database *core.Database
	Store    *storage.Store
}

// Open loads every persisted table from the store into a fresh database.
// Opening an empty store yields an empty database. A nil store yields an
// empty database with no durability: mutations stay in memory only.
func Open(store *storage.Store) (*Instance, error) {
	if store == nil {
		return &Instance{Database: core.NewDatabase()}, nil
	}
	database, err := store.LoadAll()
	if err != nil {
		return nil, err
	}
	return &Instance{
		Database: database,
		Store:    store,
	}, nil
}

// Engine returns an executor that commits mutations under identity.
func (instance *Instance) Engine(identity storage.Identity) *db.Engine {
	return db.NewEngine(instance.Database, instance.Store, identity)
}

// ImportTable reads a table projection from a local path or remote URL,
// registers it in the database and commits it.
func (instance *Instance) ImportTable(src string, cfg *storage.S3Config, identity storage.Identity) (*core.Table, error) {
	r, err := storage.OpenReader(src, cfg)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", src, err)
	}

	table, err := storage.RestoreTable(instance.Database, data)
	if err != nil {
		return nil, err
	}

	if instance.Store != nil {
		if _, err := instance.Store.SaveTable(table, identity,
			fmt.Sprintf("Importing table %s", table.Name())); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// ExportTable writes a table's projection to a local path or remote URL.
func (instance *Instance) ExportTable(name core.TableName, dst string, cfg *storage.S3Config) error {
	table, ok := instance.Database.Table(name)
	if !ok {
		return fmt.Errorf("unknown table: %s", name)
	}

	data, err := storage.EncodeTable(table)
	if err != nil {
		return err
	}

	w, err := storage.OpenWriter(dst, cfg)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
