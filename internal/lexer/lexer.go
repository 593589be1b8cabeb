package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/mcomp/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		l.readPosition = len(l.input) + 1
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	line, col, off := l.line, l.column, l.position
	simple := func(t token.TokenType, lexeme string) token.Token {
		return token.Token{Type: t, Lexeme: lexeme, Literal: lexeme, Line: line, Column: col, Offset: off}
	}

	switch l.ch {
	case '\n':
		tok = simple(token.NEWLINE, "\n")
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = simple(token.EQ, "==")
		} else {
			tok = simple(token.ASSIGN, "=")
		}
	case '+':
		if l.peekChar() == '+' {
			l.readChar()
			tok = simple(token.CONCAT, "++")
		} else {
			tok = simple(token.PLUS, "+")
		}
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			tok = simple(token.ARROW, "->")
		} else {
			tok = simple(token.MINUS, "-")
		}
	case '*':
		tok = simple(token.ASTERISK, "*")
	case '/':
		tok = simple(token.SLASH, "/")
	case '%':
		tok = simple(token.PERCENT, "%")
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = simple(token.NOT_EQ, "!=")
		} else {
			tok = simple(token.BANG, "!")
		}
	case '<':
		// <, <=, <-
		if l.peekChar() == '-' {
			l.readChar()
			tok = simple(token.L_ARROW, "<-")
		} else if l.peekChar() == '=' {
			l.readChar()
			tok = simple(token.LTE, "<=")
		} else {
			tok = simple(token.LT, "<")
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = simple(token.GTE, ">=")
		} else {
			tok = simple(token.GT, ">")
		}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			tok = simple(token.AND, "&&")
		} else {
			tok = simple(token.ILLEGAL, "&")
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok = simple(token.OR, "||")
		} else {
			tok = simple(token.PIPE, "|")
		}
	case '\\':
		tok = simple(token.BACKSLASH, "\\")
	case '@':
		tok = simple(token.AT, "@")
	case ',':
		tok = simple(token.COMMA, ",")
	case '(':
		tok = simple(token.LPAREN, "(")
	case ')':
		tok = simple(token.RPAREN, ")")
	case '{':
		tok = simple(token.LBRACE, "{")
	case '}':
		tok = simple(token.RBRACE, "}")
	case '[':
		tok = simple(token.LBRACKET, "[")
	case ']':
		tok = simple(token.RBRACKET, "]")
	case '"':
		content, ok := l.readString()
		tok = simple(token.STRING, l.input[off:min(l.position+1, len(l.input))])
		tok.Literal = content
		if !ok {
			tok.Type = token.ILLEGAL
			tok.Literal = "unterminated string literal"
		}
	case 0:
		return token.Token{Type: token.EOF, Lexeme: "", Line: line, Column: col, Offset: len(l.input)}
	default:
		if isLetter(l.ch) {
			lexeme := l.readIdentifier()
			tok = simple(token.LookupIdent(lexeme), lexeme)
			return tok
		} else if isDigit(l.ch) {
			return l.readNumber(line, col, off)
		}
		tok = simple(token.ILLEGAL, string(l.ch))
	}

	l.readChar()
	return tok
}

// readString consumes a double-quoted string starting at the opening quote
// and leaves the lexer on the closing quote. Escape sequences are decoded.
func (l *Lexer) readString() (string, bool) {
	var sb strings.Builder
	for {
		l.readChar()
		switch l.ch {
		case 0, '\n':
			return sb.String(), false
		case '"':
			return sb.String(), true
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case '"':
				sb.WriteRune('"')
			case '\\':
				sb.WriteRune('\\')
			case 0:
				return sb.String(), false
			default:
				sb.WriteRune('\\')
				sb.WriteRune(l.ch)
			}
		default:
			sb.WriteRune(l.ch)
		}
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber(line, col, off int) token.Token {
	position := l.position
	isFloat := false
	for isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	// A dot followed by a digit continues the number: 1.5
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}

	lexeme := l.input[position:l.position]
	clean := strings.ReplaceAll(lexeme, "_", "")
	tok := token.Token{Lexeme: lexeme, Line: line, Column: col, Offset: off}

	if isFloat {
		v, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			tok.Type = token.ILLEGAL
			tok.Literal = err.Error()
			return tok
		}
		tok.Type = token.FLOAT
		tok.Literal = v
		return tok
	}

	v, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		tok.Type = token.ILLEGAL
		tok.Literal = "integer literal out of range: " + lexeme
		return tok
	}
	tok.Type = token.INT
	tok.Literal = v
	return tok
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}
