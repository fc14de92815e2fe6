package lox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnostics(t *testing.T) {
	var out strings.Builder
	diag := NewDiagnostics(&out)

	assert.Equal(t, ExitOK, diag.ExitCode())

	diag.RuntimeError(newRuntimeError(Token{Typ: TokenMinus, Lexeme: "-", Line: 4}, ErrOperandType, "Operand must be a number."))
	assert.True(t, diag.HadRuntimeError())
	assert.False(t, diag.HadError())
	assert.Equal(t, ExitSoftware, diag.ExitCode())

	diag.Error(2, "Unexpected character.")
	diag.TokenError(Token{Typ: TokenSemicolon, Lexeme: ";", Line: 3}, "Expect expression.")
	diag.TokenError(Token{Typ: TokenEOF, Line: 5}, "Expect ';' after value.")

	// Static errors take precedence over runtime errors
	assert.Equal(t, ExitDataErr, diag.ExitCode())

	assert.Equal(t, strings.Join([]string{
		"[line 4]: Operand must be a number.",
		"[line 2] Error: Unexpected character.",
		"[line 3] Error at ';': Expect expression.",
		"[line 5] Error at end: Expect ';' after value.",
	}, "\n")+"\n", out.String())

	items := diag.Items()
	assert.Len(t, items, 4)
	assert.Equal(t, DiagnosticRuntime, items[0].Kind)
	assert.Equal(t, " at ';'", items[2].Where)

	diag.Reset()
	assert.Empty(t, diag.Items())
	assert.False(t, diag.HadError())
	assert.False(t, diag.HadRuntimeError())
	assert.Equal(t, ExitOK, diag.ExitCode())
}

func TestErrorMessages(t *testing.T) {
	parseErr := &ParseError{Token: Token{Typ: TokenIdentifier, Lexeme: "x", Line: 7}, Message: "Expect ';' after value."}
	assert.EqualError(t, parseErr, "[line 7] Error at 'x': Expect ';' after value.")

	rtErr := newRuntimeError(Token{Line: 9}, ErrOperandType, "Operands must be %s.", "numbers")
	assert.EqualError(t, rtErr, "[line 9]: Operands must be numbers.")
	assert.ErrorIs(t, rtErr, ErrOperandType)
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "Number(1.5)", Token{Typ: TokenNumber, Lexeme: "1.5", Literal: 1.5}.String())
	assert.Equal(t, "Identifier(abc)", idTok("abc").String())
	assert.Equal(t, "GreaterEqual", tok(TokenGreaterEqual, ">=").String())
	assert.Equal(t, "TokenType(999)", TokenType(999).String())
}
