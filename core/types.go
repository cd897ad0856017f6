package core

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// DataType is the declared type of a column. It is purely schema-level and
// carries no data.
type DataType int

const (
	IntType DataType = iota
	TextType
)

// String returns the declared spelling of the type, as written in
// CREATE TABLE statements and in the persisted projection.
func (t DataType) String() string {
	switch t {
	case IntType:
		return "Int"
	case TextType:
		return "Text"
	default:
		return fmt.Sprintf("DataType(%d)", int(t))
	}
}

// ParseDataType maps a declared type spelling back to a DataType. Only the
// exact spellings "Int" and "Text" are accepted.
func ParseDataType(s string) (DataType, error) {
	switch s {
	case "Int":
		return IntType, nil
	case "Text":
		return TextType, nil
	default:
		return 0, fmt.Errorf("unknown type '%s'", s)
	}
}

// Matches reports whether a runtime value is compatible with this column
// type. Int matches Int, Text matches Text, nothing else.
func (t DataType) Matches(v Value) bool {
	return t == v.kind
}

func (t DataType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *DataType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDataType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value is a runtime datum stored in a row: either a 64-bit signed integer
// or a UTF-8 string. The zero Value is Int(0). Values are comparable.
//
// The fields are unexported so a Value can only carry data consistent with
// its kind; use NewInt and NewText.
type Value struct {
	kind DataType
	i    int64
	s    string
}

// NewInt returns an integer value.
func NewInt(v int64) Value {
	return Value{kind: IntType, i: v}
}

// NewText returns a text value.
func NewText(v string) Value {
	return Value{kind: TextType, s: v}
}

// Kind returns the value's type tag.
func (v Value) Kind() DataType {
	return v.kind
}

// Int returns the integer payload. Meaningful only when Kind() == IntType.
func (v Value) Int() int64 {
	return v.i
}

// Text returns the string payload. Meaningful only when Kind() == TextType.
func (v Value) Text() string {
	return v.s
}

// String renders the payload in display form: integers in decimal, text
// verbatim.
func (v Value) String() string {
	if v.kind == IntType {
		return strconv.FormatInt(v.i, 10)
	}
	return v.s
}

// MarshalJSON writes the externally tagged form used by the persisted
// projection: {"Int":1} or {"Text":"Alice"}.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case IntType:
		return json.Marshal(map[string]int64{"Int": v.i})
	case TextType:
		return json.Marshal(map[string]string{"Text": v.s})
	default:
		return nil, fmt.Errorf("cannot marshal value of kind %s", v.kind)
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	if len(tagged) != 1 {
		return fmt.Errorf("value must have exactly one type tag, got %d", len(tagged))
	}
	for tag, raw := range tagged {
		switch tag {
		case "Int":
			var i int64
			if err := json.Unmarshal(raw, &i); err != nil {
				return err
			}
			*v = NewInt(i)
		case "Text":
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return err
			}
			*v = NewText(s)
		default:
			return fmt.Errorf("unknown value tag '%s'", tag)
		}
	}
	return nil
}
