package token

type TokenType string

type Token struct {
	Type    TokenType
	Lexeme  string      // Raw text as it appeared in the source
	Literal interface{} // Decoded value (int64, float64, string)
	Line    int
	Column  int
	Offset  int // Byte offset of the first character in the source
}

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"
	NEWLINE TokenType = "NEWLINE"

	// Identifiers + literals
	IDENT  TokenType = "IDENT"
	INT    TokenType = "INT"
	FLOAT  TokenType = "FLOAT"
	STRING TokenType = "STRING"

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"
	PERCENT  TokenType = "%"
	BANG     TokenType = "!"
	CONCAT   TokenType = "++"

	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="
	LT     TokenType = "<"
	LTE    TokenType = "<="
	GT     TokenType = ">"
	GTE    TokenType = ">="
	AND    TokenType = "&&"
	OR     TokenType = "||"

	L_ARROW   TokenType = "<-"
	ARROW     TokenType = "->"
	PIPE      TokenType = "|"
	BACKSLASH TokenType = "\\"
	AT        TokenType = "@"

	// Delimiters
	COMMA    TokenType = ","
	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	// Keywords
	FUN   TokenType = "FUN"
	IF    TokenType = "IF"
	ELSE  TokenType = "ELSE"
	TRUE  TokenType = "TRUE"
	FALSE TokenType = "FALSE"
	NIL   TokenType = "NIL"
)

var keywords = map[string]TokenType{
	"fun":   FUN,
	"if":    IF,
	"else":  ELSE,
	"true":  TRUE,
	"false": FALSE,
	"nil":   NIL,
}

// LookupIdent returns the keyword token type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Synthetic builds a token for nodes created by tree rewrites. It inherits
// the position of the node it was derived from so diagnostics still point at
// the user's source.
func Synthetic(t TokenType, lexeme string, at Token) Token {
	return Token{Type: t, Lexeme: lexeme, Literal: lexeme, Line: at.Line, Column: at.Column, Offset: at.Offset}
}
