package lox

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
)

// ScanAndParse turns source into statements. Lexical and syntax errors are
// reported to diag; statements that failed to parse are not returned.
func ScanAndParse(source string, diag *Diagnostics) []Stmt {
	return NewParser(Scan(source, diag), diag).Parse()
}

// Run executes stmts against env, writing print output to out and reporting
// runtime errors to diag.
func Run(stmts []Stmt, env *Environment, out io.Writer, diag *Diagnostics) {
	NewInterpreter(out, diag).Interpret(stmts, env)
}

// Session runs successive units of source (a file, or one line at a time in
// interactive mode) against a single Environment.
type Session struct {
	env    *Environment
	diag   *Diagnostics
	interp *Interpreter
	logger *slog.Logger

	tokenDump io.Writer
	astDump   io.Writer
}

type SessionOption func(s *Session)

func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithTokenDump writes every scanned token to w before parsing.
func WithTokenDump(w io.Writer) SessionOption {
	return func(s *Session) {
		s.tokenDump = w
	}
}

// WithASTDump writes every parsed statement to w before it runs.
func WithASTDump(w io.Writer) SessionOption {
	return func(s *Session) {
		s.astDump = w
	}
}

func NewSession(out, errOut io.Writer, opts ...SessionOption) *Session {
	diag := NewDiagnostics(errOut)

	s := &Session{
		env:    NewEnvironment(),
		diag:   diag,
		interp: NewInterpreter(out, diag),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Session) Environment() *Environment {
	return s.env
}

func (s *Session) Diagnostics() *Diagnostics {
	return s.diag
}

// RunSource scans, parses and executes one unit of source and returns the
// resulting exit status. Nothing is executed when the source has static
// errors. Diagnostics accumulate until the caller resets them.
func (s *Session) RunSource(source string) int {
	tokens := NewLexer(source, s.diag).Run()
	if s.tokenDump != nil {
		for _, tok := range tokens {
			_, _ = fmt.Fprintf(s.tokenDump, "%d %s %q\n", tok.Line, tok, tok.Lexeme)
		}
	}

	stmts := NewParser(tokens, s.diag).Parse()
	if s.astDump != nil {
		for _, stmt := range stmts {
			_, _ = fmt.Fprintln(s.astDump, FormatStmt(stmt))
		}
	}

	s.logger.Debug("parsed source",
		slog.Int("bytes", len(source)),
		slog.Int("tokens", len(tokens)),
		slog.Int("statements", len(stmts)),
	)

	if s.diag.HadError() {
		s.logger.Debug("skipping execution after static errors", slog.Int("diagnostics", len(s.diag.Items())))
		return s.diag.ExitCode()
	}

	s.interp.Interpret(stmts, s.env)

	s.logger.Debug("executed source",
		slog.Int("statements", len(stmts)),
		slog.Int("bindings", s.env.Len()),
		slog.Bool("runtime_error", s.diag.HadRuntimeError()),
	)

	return s.diag.ExitCode()
}

// RunFile executes the script at path.
func (s *Session) RunFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ExitOK, errors.Wrapf(err, "read script %s", path)
	}

	s.logger.Info("running script", slog.String("path", path))

	return s.RunSource(string(data)), nil
}
