package storage

import (
	"reflect"
	"testing"

	"minisql/core"
)

var testIdentity = Identity{Name: "Test User", Email: "test@example.com"}

// runWithBothStores runs a test against a memory-backed and a file-backed
// store.
func runWithBothStores(t *testing.T, test func(t *testing.T, store *Store)) {
	t.Helper()

	t.Run("Memory", func(t *testing.T) {
		store, err := NewMemoryStore()
		if err != nil {
			t.Fatalf("NewMemoryStore: %v", err)
		}
		test(t, store)
	})

	t.Run("File", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		if err != nil {
			t.Fatalf("NewFileStore: %v", err)
		}
		test(t, store)
	})
}

func TestStoreSaveAndLoadTable(t *testing.T) {
	runWithBothStores(t, func(t *testing.T, store *Store) {
		table := usersTable(t)

		commit, err := store.SaveTable(table, testIdentity, "Creating table users")
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		if commit.Hash == "" {
			t.Error("commit hash is empty")
		}
		if commit.Author != "Test User <test@example.com>" {
			t.Errorf("author = %q", commit.Author)
		}

		loaded, err := store.LoadTable(table.Name())
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if !reflect.DeepEqual(loaded.Rows(), table.Rows()) {
			t.Errorf("rows = %v, want %v", loaded.Rows(), table.Rows())
		}
	})
}

func TestStoreLoadMissingTable(t *testing.T) {
	runWithBothStores(t, func(t *testing.T, store *Store) {
		name, err := core.NewTableName("ghost")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := store.LoadTable(name); err == nil {
			t.Error("loading a missing table should fail")
		}
	})
}

func TestStoreListTables(t *testing.T) {
	runWithBothStores(t, func(t *testing.T, store *Store) {
		if _, err := store.SaveTable(usersTable(t), testIdentity, "Creating table users"); err != nil {
			t.Fatalf("save: %v", err)
		}

		names, err := store.ListTables()
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if !reflect.DeepEqual(names, []string{"users"}) {
			t.Errorf("names = %v", names)
		}
	})
}

func TestStoreLoadAll(t *testing.T) {
	runWithBothStores(t, func(t *testing.T, store *Store) {
		table := usersTable(t)
		if _, err := store.SaveTable(table, testIdentity, "Creating table users"); err != nil {
			t.Fatalf("save: %v", err)
		}

		db, err := store.LoadAll()
		if err != nil {
			t.Fatalf("load all: %v", err)
		}
		if db.TableCount() != 1 {
			t.Fatalf("table count = %d", db.TableCount())
		}

		loaded, ok := db.Table(table.Name())
		if !ok {
			t.Fatal("users missing after LoadAll")
		}
		if !reflect.DeepEqual(loaded.Rows(), table.Rows()) {
			t.Errorf("rows = %v", loaded.Rows())
		}
	})
}

func TestStoreHeadAndHistory(t *testing.T) {
	runWithBothStores(t, func(t *testing.T, store *Store) {
		if head := store.Head(); head.Hash != "" {
			t.Errorf("head before any commit = %v", head)
		}

		table := usersTable(t)
		commit, err := store.SaveTable(table, testIdentity, "Creating table users")
		if err != nil {
			t.Fatalf("save: %v", err)
		}

		head := store.Head()
		if head.Hash != commit.Hash {
			t.Errorf("head = %v, want %v", head.Hash, commit.Hash)
		}

		if err := table.Insert([]core.Value{core.NewInt(3), core.NewText("Carol")}); err != nil {
			t.Fatal(err)
		}
		if _, err := store.SaveTable(table, testIdentity, "Inserting into users"); err != nil {
			t.Fatalf("save: %v", err)
		}

		history := store.History()
		if len(history) != 2 {
			t.Fatalf("history length = %d", len(history))
		}
		// Newest first.
		if history[1].Hash != commit.Hash {
			t.Errorf("oldest commit = %v, want %v", history[1].Hash, commit.Hash)
		}
	})
}

func TestStoreNotInitialized(t *testing.T) {
	var store *Store
	if _, err := store.ListTables(); err != ErrNotInitialized {
		t.Errorf("err = %v, want ErrNotInitialized", err)
	}
	if _, err := store.LoadAll(); err != ErrNotInitialized {
		t.Errorf("err = %v, want ErrNotInitialized", err)
	}
}

func TestFileStoreReopens(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	table := usersTable(t)
	if _, err := store.SaveTable(table, testIdentity, "Creating table users"); err != nil {
		t.Fatalf("save: %v", err)
	}

	reopened, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	loaded, err := reopened.LoadTable(table.Name())
	if err != nil {
		t.Fatalf("load after reopen: %v", err)
	}
	if !reflect.DeepEqual(loaded.Rows(), table.Rows()) {
		t.Errorf("rows after reopen = %v", loaded.Rows())
	}
}
