package lox

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

type stateFunc func(l *Lexer) stateFunc

const eof rune = -1

var operatorTable = map[string]TokenType{
	"(":  TokenLeftParen,
	")":  TokenRightParen,
	"{":  TokenLeftBrace,
	"}":  TokenRightBrace,
	",":  TokenComma,
	".":  TokenDot,
	"-":  TokenMinus,
	"+":  TokenPlus,
	";":  TokenSemicolon,
	"/":  TokenSlash,
	"*":  TokenStar,
	"!":  TokenBang,
	"!=": TokenBangEqual,
	"=":  TokenEqual,
	"==": TokenEqualEqual,
	">":  TokenGreater,
	">=": TokenGreaterEqual,
	"<":  TokenLess,
	"<=": TokenLessEqual,
}

// Lexer turns source text into tokens in a single left to right pass. Lexical
// errors are reported to the diagnostics sink and scanning carries on, so Run
// always returns a token slice terminated by TokenEOF.
type Lexer struct {
	source string
	diag   *Diagnostics

	start   int
	current int
	line    int

	tokens []Token
}

func NewLexer(source string, diag *Diagnostics) *Lexer {
	if diag == nil {
		diag = NewDiagnostics(nil)
	}

	return &Lexer{
		source: source,
		diag:   diag,
		line:   1,
	}
}

// Scan is a shorthand for NewLexer(source, diag).Run().
func Scan(source string, diag *Diagnostics) []Token {
	return NewLexer(source, diag).Run()
}

func (l *Lexer) Run() []Token {
	for state := defaultState; state != nil; {
		state = state(l)
	}

	return l.tokens
}

func defaultState(l *Lexer) stateFunc {
	for {
		l.start = l.current

		switch r := l.peek(); {
		case r == eof:
			l.emit(TokenEOF)
			return nil
		case r == ' ' || r == '\t' || r == '\r':
			l.next()
			continue
		case r == '\n':
			l.next()
			l.line++
			continue
		case isDigit(r):
			return numberState
		case r == '"':
			return stringState
		case isAlpha(r):
			return identifierState
		default:
			return operatorState
		}
	}
}

func numberState(l *Lexer) stateFunc {
	for isDigit(l.peek()) {
		l.next()
	}

	// A trailing dot is only part of the number when a digit follows it
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.next()

		for isDigit(l.peek()) {
			l.next()
		}
	}

	// Literals too large for a float64 become +Inf
	num, err := strconv.ParseFloat(l.lexeme(), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return l.errorf("Invalid number '%s'.", l.lexeme())
	}

	return l.emitLiteral(TokenNumber, num)
}

func stringState(l *Lexer) stateFunc {
	l.next() // Skip the leading double-quote

	for r := l.peek(); r != '"' && r != eof; r = l.peek() {
		if r == '\n' {
			l.line++
		}

		l.next()
	}

	if l.peek() == eof {
		return l.errorf("Unterminated string.")
	}

	l.next() // Skip the closing double-quote

	return l.emitLiteral(TokenString, l.source[l.start+1:l.current-1])
}

func identifierState(l *Lexer) stateFunc {
	for r := l.peek(); isAlpha(r) || isDigit(r); r = l.peek() {
		l.next()
	}

	if t, ok := keywordTable[l.lexeme()]; ok {
		return l.emit(t)
	}

	return l.emitLiteral(TokenIdentifier, l.lexeme())
}

func operatorState(l *Lexer) stateFunc {
	r := l.next()
	if r == '/' && l.peek() == '/' {
		return lineCommentState
	}

	// Maximal munch: prefer the two rune operator when the second rune matches
	if tok, ok := operatorTable[string(r)+string(l.peek())]; ok {
		l.next()
		return l.emit(tok)
	}

	if tok, ok := operatorTable[string(r)]; ok {
		return l.emit(tok)
	}

	return l.errorf("Unexpected character.")
}

func lineCommentState(l *Lexer) stateFunc {
	for r := l.peek(); r != '\n' && r != eof; r = l.peek() {
		l.next()
	}

	return defaultState
}

func (l *Lexer) errorf(format string, args ...interface{}) stateFunc {
	l.diag.Error(l.line, fmt.Sprintf(format, args...))

	return defaultState
}

func (l *Lexer) emit(t TokenType) stateFunc {
	return l.emitLiteral(t, nil)
}

func (l *Lexer) emitLiteral(t TokenType, literal any) stateFunc {
	l.tokens = append(l.tokens, Token{
		Typ:     t,
		Lexeme:  l.lexeme(),
		Literal: literal,
		Line:    l.line,
	})

	return defaultState
}

func (l *Lexer) lexeme() string {
	return l.source[l.start:l.current]
}

func (l *Lexer) peek() rune {
	if l.current >= len(l.source) {
		return eof
	}

	r, _ := utf8.DecodeRuneInString(l.source[l.current:])
	return r
}

func (l *Lexer) peekNext() rune {
	if l.current >= len(l.source) {
		return eof
	}

	_, size := utf8.DecodeRuneInString(l.source[l.current:])
	if l.current+size >= len(l.source) {
		return eof
	}

	r, _ := utf8.DecodeRuneInString(l.source[l.current+size:])
	return r
}

func (l *Lexer) next() rune {
	if l.current >= len(l.source) {
		return eof
	}

	r, size := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += size

	return r
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isAlpha(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}
