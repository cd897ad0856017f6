package core

import (
	"encoding/json"
	"fmt"
)

// TableName is a validated table identifier. The only way to obtain one is
// NewTableName, so holding a TableName means the name already passed
// validation.
type TableName struct {
	name string
}

// NewTableName validates s as a table identifier.
func NewTableName(s string) (TableName, error) {
	if err := validateName("table", s); err != nil {
		return TableName{}, err
	}
	return TableName{name: s}, nil
}

func (n TableName) String() string {
	return n.name
}

func (n TableName) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.name)
}

func (n *TableName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := NewTableName(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// ColumnName is a validated column identifier, with the same rules and the
// same smart-constructor guarantee as TableName.
type ColumnName struct {
	name string
}

// NewColumnName validates s as a column identifier.
func NewColumnName(s string) (ColumnName, error) {
	if err := validateName("column", s); err != nil {
		return ColumnName{}, err
	}
	return ColumnName{name: s}, nil
}

func (n ColumnName) String() string {
	return n.name
}

func (n ColumnName) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.name)
}

func (n *ColumnName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := NewColumnName(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// validateName enforces the identifier rules shared by table and column
// names: non-empty, first character an ASCII letter, remaining characters
// ASCII letters, digits, or underscores. Spaces get their own message.
func validateName(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%s name cannot be empty", kind)
	}
	first := name[0]
	if !isASCIILetter(first) {
		return fmt.Errorf("%s name must start with a letter", kind)
	}
	for _, c := range []byte(name[1:]) {
		switch {
		case isASCIILetter(c) || isASCIIDigit(c) || c == '_':
		case c == ' ':
			return fmt.Errorf("%s name cannot contain spaces", kind)
		default:
			return fmt.Errorf("%s name can only contain ASCII letters, digits, or underscores", kind)
		}
	}
	return nil
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isASCIIDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
