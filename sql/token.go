package sql

import "strconv"

// Token is one lexical unit. Pos is the byte offset of the token's first
// character in the input, kept for diagnostics. Number tokens carry their
// parsed value in Num; every other payload lives in Value.
type Token struct {
	Type  TokenType
	Value string
	Num   int64
	Pos   int
}

type TokenType int

const (
	Keyword TokenType = iota
	Identifier
	Number
	String
	Symbol
	EOF
)

// keywords is the closed reserved-word set. Matching is case-insensitive;
// the lexer stores the canonical uppercase spelling. INTO and FROM are not
// reserved and lex as identifiers.
var keywords = map[string]bool{
	"SELECT": true,
	"INSERT": true,
	"UPDATE": true,
	"DELETE": true,
	"CREATE": true,
	"TABLE":  true,
	"VALUES": true,
}

func (token Token) String() string {
	switch token.Type {
	case Keyword:
		return "Keyword(" + token.Value + ")"
	case Identifier:
		return "Identifier(" + token.Value + ")"
	case Number:
		return "Number(" + strconv.FormatInt(token.Num, 10) + ")"
	case String:
		return "String(" + token.Value + ")"
	case Symbol:
		return "Symbol(" + token.Value + ")"
	default:
		return "EOF"
	}
}
