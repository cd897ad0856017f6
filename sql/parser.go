package sql

import (
	"errors"
	"fmt"

	"minisql/core"
)

type StatementType int

const (
	SelectStatementType StatementType = iota
	InsertStatementType
	CreateTableStatementType
)

type Statement interface {
	Type() StatementType
}

// SelectStatement reads rows from one table. A nil Columns means all
// columns in schema order; a non-nil list projects the named columns in
// the requested order, duplicates allowed.
type SelectStatement struct {
	Table   core.TableName
	Columns []core.ColumnName
}

// InsertStatement appends a single value tuple to one table.
type InsertStatement struct {
	Table  core.TableName
	Values []core.Value
}

// CreateTableStatement creates one table with the given column list.
type CreateTableStatement struct {
	Table   core.TableName
	Columns []core.Column
}

func (s SelectStatement) Type() StatementType {
	return SelectStatementType
}

func (s InsertStatement) Type() StatementType {
	return InsertStatementType
}

func (s CreateTableStatement) Type() StatementType {
	return CreateTableStatementType
}

// Parser consumes a lexed token stream front to back, no backtracking.
// Identifiers pass through the core name constructors as they are read,
// so a returned statement never carries an invalid name.
type Parser struct {
	tokens   []Token
	position int
}

func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse lexes and parses one statement.
func Parse(input string) (Statement, error) {
	tokens, err := Lex(input)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}

func (parser *Parser) next() Token {
	if parser.position >= len(parser.tokens) {
		return Token{Type: EOF}
	}
	token := parser.tokens[parser.position]
	parser.position++
	return token
}

func (parser *Parser) peek() Token {
	if parser.position >= len(parser.tokens) {
		return Token{Type: EOF}
	}
	return parser.tokens[parser.position]
}

func (parser *Parser) Parse() (Statement, error) {
	token := parser.next()
	if token.Type == EOF {
		return nil, errors.New("empty token stream")
	}
	if token.Type != Keyword {
		return nil, errors.New("expected a keyword at the beginning")
	}

	switch token.Value {
	case "CREATE":
		return parser.parseCreateTable()
	case "INSERT":
		return parser.parseInsert()
	case "SELECT":
		return parser.parseSelect()
	default:
		return nil, fmt.Errorf("unsupported statement: %s", token.Value)
	}
}

func (parser *Parser) parseCreateTable() (Statement, error) {
	token := parser.next()
	if token.Type != Keyword || token.Value != "TABLE" {
		return nil, errors.New("expected TABLE after CREATE")
	}

	token = parser.next()
	if token.Type != Identifier {
		return nil, errors.New("expected table name after TABLE")
	}
	name, err := core.NewTableName(token.Value)
	if err != nil {
		return nil, err
	}

	token = parser.next()
	if token.Type != Symbol || token.Value != "(" {
		return nil, errors.New("expected '(' after table name")
	}

	var columns []core.Column
	for {
		token = parser.next()
		if token.Type != Identifier {
			return nil, errors.New("expected column name")
		}
		columnName, err := core.NewColumnName(token.Value)
		if err != nil {
			return nil, err
		}

		token = parser.next()
		if token.Type != Identifier {
			return nil, errors.New("expected column type")
		}
		columnType, err := core.ParseDataType(token.Value)
		if err != nil {
			return nil, err
		}

		columns = append(columns, core.Column{Name: columnName, Type: columnType})

		token = parser.next()
		if token.Type == Symbol && token.Value == "," {
			continue
		} else if token.Type == Symbol && token.Value == ")" {
			break
		} else {
			return nil, errors.New("expected ',' or ')' in column list")
		}
	}

	if err := parser.finish(); err != nil {
		return nil, err
	}

	return CreateTableStatement{Table: name, Columns: columns}, nil
}

func (parser *Parser) parseInsert() (Statement, error) {
	token := parser.next()
	if token.Type != Identifier || toUpper(token.Value) != "INTO" {
		return nil, errors.New("expected INTO after INSERT")
	}

	token = parser.next()
	if token.Type != Identifier {
		return nil, errors.New("expected table name after INTO")
	}
	name, err := core.NewTableName(token.Value)
	if err != nil {
		return nil, err
	}

	token = parser.next()
	if token.Type != Keyword || token.Value != "VALUES" {
		return nil, errors.New("expected VALUES")
	}

	token = parser.next()
	if token.Type != Symbol || token.Value != "(" {
		return nil, errors.New("expected '(' after VALUES")
	}

	var values []core.Value
	for {
		token = parser.next()
		switch token.Type {
		case Number:
			values = append(values, core.NewInt(token.Num))
		case String:
			values = append(values, core.NewText(token.Value))
		default:
			return nil, errors.New("expected a literal value")
		}

		token = parser.next()
		if token.Type == Symbol && token.Value == "," {
			continue
		} else if token.Type == Symbol && token.Value == ")" {
			break
		} else {
			return nil, errors.New("expected ',' or ')' in values list")
		}
	}

	if err := parser.finish(); err != nil {
		return nil, err
	}

	return InsertStatement{Table: name, Values: values}, nil
}

func (parser *Parser) parseSelect() (Statement, error) {
	var columns []core.ColumnName

	token := parser.next()
	if token.Type == Symbol && token.Value == "*" {
		columns = nil
	} else if token.Type == Identifier {
		for {
			columnName, err := core.NewColumnName(token.Value)
			if err != nil {
				return nil, err
			}
			columns = append(columns, columnName)

			if next := parser.peek(); next.Type == Symbol && next.Value == "," {
				parser.next()
				token = parser.next()
				if token.Type != Identifier {
					return nil, errors.New("expected column name")
				}
				continue
			}
			break
		}
	} else {
		return nil, errors.New("expected '*' or a column list after SELECT")
	}

	token = parser.next()
	if token.Type != Identifier || toUpper(token.Value) != "FROM" {
		return nil, errors.New("expected FROM")
	}

	token = parser.next()
	if token.Type != Identifier {
		return nil, errors.New("expected table name after FROM")
	}
	name, err := core.NewTableName(token.Value)
	if err != nil {
		return nil, err
	}

	if err := parser.finish(); err != nil {
		return nil, err
	}

	return SelectStatement{Table: name, Columns: columns}, nil
}

// finish consumes an optional trailing semicolon and requires the stream
// to be exhausted.
func (parser *Parser) finish() error {
	token := parser.next()
	if token.Type == Symbol && token.Value == ";" {
		token = parser.next()
	}
	if token.Type != EOF {
		return fmt.Errorf("unexpected %s after statement", token)
	}
	return nil
}
