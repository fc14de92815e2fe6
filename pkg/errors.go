package lox

import (
	"errors"
	"fmt"
	"io"
)

// Exit statuses used by the command line front end (sysexits.h values).
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitDataErr  = 65
	ExitSoftware = 70
)

var (
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrOperandType       = errors.New("invalid operand type")
)

// ParseError is raised by the parser when a required token is missing or an
// unexpected one is found.
type ParseError struct {
	Token   Token
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Token.Line, where(e.Token), e.Message)
}

// RuntimeError is a failure while evaluating a statement. Token is the token
// closest to the failure and is used to report its line.
type RuntimeError struct {
	Token   Token
	Message string
	Err     error
}

func newRuntimeError(tok Token, err error, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{
		Token:   tok,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d]: %s", e.Token.Line, e.Message)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

func where(tok Token) string {
	if tok.Typ == TokenEOF {
		return " at end"
	}

	return fmt.Sprintf(" at '%s'", tok.Lexeme)
}

type DiagnosticKind int

const (
	DiagnosticStatic DiagnosticKind = iota
	DiagnosticRuntime
)

type Diagnostic struct {
	Kind    DiagnosticKind
	Line    int
	Where   string
	Message string
}

func (d Diagnostic) String() string {
	if d.Kind == DiagnosticRuntime {
		return fmt.Sprintf("[line %d]: %s", d.Line, d.Message)
	}

	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

// Diagnostics collects the errors reported by the scanner, parser and
// interpreter in the order they happen. When a writer is set every report is
// also written to it immediately.
type Diagnostics struct {
	out   io.Writer
	items []Diagnostic

	hadError        bool
	hadRuntimeError bool
}

func NewDiagnostics(out io.Writer) *Diagnostics {
	return &Diagnostics{out: out}
}

// Error reports a lexical error at the given line.
func (d *Diagnostics) Error(line int, message string) {
	d.report(Diagnostic{
		Kind:    DiagnosticStatic,
		Line:    line,
		Message: message,
	})
}

// TokenError reports a syntax error located at tok.
func (d *Diagnostics) TokenError(tok Token, message string) {
	d.report(Diagnostic{
		Kind:    DiagnosticStatic,
		Line:    tok.Line,
		Where:   where(tok),
		Message: message,
	})
}

func (d *Diagnostics) RuntimeError(err *RuntimeError) {
	d.report(Diagnostic{
		Kind:    DiagnosticRuntime,
		Line:    err.Token.Line,
		Message: err.Message,
	})
}

func (d *Diagnostics) report(diag Diagnostic) {
	d.items = append(d.items, diag)

	switch diag.Kind {
	case DiagnosticRuntime:
		d.hadRuntimeError = true
	default:
		d.hadError = true
	}

	if d.out != nil {
		_, _ = fmt.Fprintln(d.out, diag.String())
	}
}

func (d *Diagnostics) HadError() bool {
	return d.hadError
}

func (d *Diagnostics) HadRuntimeError() bool {
	return d.hadRuntimeError
}

func (d *Diagnostics) Items() []Diagnostic {
	items := make([]Diagnostic, len(d.items))
	copy(items, d.items)

	return items
}

// Reset forgets every reported diagnostic. Interactive sessions call it
// between input lines.
func (d *Diagnostics) Reset() {
	d.items = nil
	d.hadError = false
	d.hadRuntimeError = false
}

// ExitCode maps the reported diagnostics to a process exit status. Static
// errors take precedence since they prevent evaluation.
func (d *Diagnostics) ExitCode() int {
	switch {
	case d.hadError:
		return ExitDataErr
	case d.hadRuntimeError:
		return ExitSoftware
	default:
		return ExitOK
	}
}
