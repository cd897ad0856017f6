// Package sql is the text front end: a single-pass lexer, the statement
// AST, and a recursive-descent parser over the token stream.
//
// The grammar is deliberately small. Three statement forms are accepted:
//
//	CREATE TABLE <table> (<column> <Int|Text>, ...);
//	INSERT INTO <table> VALUES (<literal>, ...);
//	SELECT * | <column>, ... FROM <table>;
//
// The trailing semicolon is optional in all three. Parsing validates table
// and column names through the core constructors, so a statement that
// parses cleanly already carries well-formed identifiers.
package sql
