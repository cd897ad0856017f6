package core

import (
	"testing"
)

func mustTableName(t *testing.T, s string) TableName {
	t.Helper()
	name, err := NewTableName(s)
	if err != nil {
		t.Fatalf("NewTableName(%q): %v", s, err)
	}
	return name
}

func mustColumnName(t *testing.T, s string) ColumnName {
	t.Helper()
	name, err := NewColumnName(s)
	if err != nil {
		t.Fatalf("NewColumnName(%q): %v", s, err)
	}
	return name
}

func mustSchema(t *testing.T, columns ...Column) *Schema {
	t.Helper()
	schema, err := NewSchema(columns)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	return schema
}

func col(t *testing.T, name string, dtype DataType) Column {
	t.Helper()
	return Column{Name: mustColumnName(t, name), Type: dtype}
}

func TestNewSchema(t *testing.T) {
	schema := mustSchema(t,
		col(t, "id", IntType),
		col(t, "name", TextType),
	)

	columns := schema.Columns()
	if len(columns) != 2 {
		t.Fatalf("column count = %d", len(columns))
	}
	if columns[0].Name.String() != "id" || columns[0].Type != IntType {
		t.Errorf("column 0 = %v", columns[0])
	}
	if columns[1].Name.String() != "name" || columns[1].Type != TextType {
		t.Errorf("column 1 = %v", columns[1])
	}
}

func TestNewSchemaDuplicateColumn(t *testing.T) {
	_, err := NewSchema([]Column{
		col(t, "id", IntType),
		col(t, "name", TextType),
		col(t, "id", TextType),
	})
	if err == nil || err.Error() != "duplicate column name: id" {
		t.Errorf("duplicate column err = %v", err)
	}
}

func TestSchemaIndexOf(t *testing.T) {
	schema := mustSchema(t,
		col(t, "id", IntType),
		col(t, "name", TextType),
		col(t, "age", IntType),
	)

	for i, name := range []string{"id", "name", "age"} {
		got, ok := schema.IndexOf(mustColumnName(t, name))
		if !ok || got != i {
			t.Errorf("IndexOf(%s) = %d, %v, want %d", name, got, ok, i)
		}
	}

	if _, ok := schema.IndexOf(mustColumnName(t, "missing")); ok {
		t.Error("IndexOf(missing) should report absence")
	}
}
