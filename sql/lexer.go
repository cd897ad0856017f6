package sql

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Lexer walks the input one byte at a time. Identifiers and literals are
// sliced out of the original string, never rebuilt.
type Lexer struct {
	sql          string
	position     int
	readPosition int
	ch           byte
}

func NewLexer(sql string) *Lexer {
	lexer := &Lexer{sql: sql}
	lexer.readChar()
	return lexer
}

// Lex tokenizes the whole input, ending the slice with an EOF token. It
// fails on the first unexpected character or unrepresentable number.
func Lex(input string) ([]Token, error) {
	lexer := NewLexer(input)

	var tokens []Token

	for {
		token, err := lexer.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
		if token.Type == EOF {
			return tokens, nil
		}
	}
}

func (lexer *Lexer) readChar() {
	if lexer.readPosition >= len(lexer.sql) {
		lexer.ch = 0
	} else {
		lexer.ch = lexer.sql[lexer.readPosition]
	}
	lexer.position = lexer.readPosition
	lexer.readPosition++
}

func (lexer *Lexer) NextToken() (Token, error) {
	lexer.skipWhitespace()

	pos := lexer.position

	switch {
	case lexer.ch == 0:
		return Token{Type: EOF, Pos: pos}, nil
	case lexer.ch == '(' || lexer.ch == ')' || lexer.ch == ',' || lexer.ch == ';' || lexer.ch == '*':
		token := Token{Type: Symbol, Value: string(lexer.ch), Pos: pos}
		lexer.readChar()
		return token, nil
	case lexer.ch == '\'':
		return Token{Type: String, Value: lexer.readString(), Pos: pos}, nil
	case isDigit(lexer.ch):
		literal := lexer.readNumber()
		num, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return Token{}, fmt.Errorf("invalid number at position %d", pos)
		}
		return Token{Type: Number, Value: literal, Num: num, Pos: pos}, nil
	case isLetter(lexer.ch):
		literal := lexer.readIdentifier()
		if upper := toUpper(literal); keywords[upper] {
			return Token{Type: Keyword, Value: upper, Pos: pos}, nil
		}
		return Token{Type: Identifier, Value: literal, Pos: pos}, nil
	default:
		// Decode the whole rune so a multi-byte character is reported
		// intact, not as its first byte.
		r, _ := utf8.DecodeRuneInString(lexer.sql[pos:])
		return Token{}, fmt.Errorf("unexpected character '%c' at position %d", r, pos)
	}
}

func (lexer *Lexer) skipWhitespace() {
	for lexer.ch == ' ' || lexer.ch == '\t' || lexer.ch == '\n' || lexer.ch == '\r' {
		lexer.readChar()
	}
}

func (lexer *Lexer) readIdentifier() string {
	position := lexer.position
	for isLetter(lexer.ch) || isDigit(lexer.ch) || lexer.ch == '_' {
		lexer.readChar()
	}
	return lexer.sql[position:lexer.position]
}

// readString consumes a single-quoted literal, returning the content
// between the quotes. An unterminated string ends silently at input
// exhaustion; the partial content is kept.
func (lexer *Lexer) readString() string {
	lexer.readChar() // skip opening quote
	position := lexer.position
	for lexer.ch != '\'' && lexer.ch != 0 {
		lexer.readChar()
	}
	str := lexer.sql[position:lexer.position]
	if lexer.ch == '\'' {
		lexer.readChar() // skip closing quote
	}
	return str
}

func (lexer *Lexer) readNumber() string {
	position := lexer.position
	for isDigit(lexer.ch) {
		lexer.readChar()
	}
	return lexer.sql[position:lexer.position]
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// toUpper converts a string to uppercase without allocating for strings
// that are already uppercase.
func toUpper(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'a' && s[i] <= 'z' {
			b := make([]byte, len(s))
			for j := 0; j < len(s); j++ {
				if s[j] >= 'a' && s[j] <= 'z' {
					b[j] = s[j] - 32
				} else {
					b[j] = s[j]
				}
			}
			return string(b)
		}
	}
	return s
}
