package lox

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionPersistsEnvironment(t *testing.T) {
	var out, errOut strings.Builder
	s := NewSession(&out, &errOut)

	assert.Equal(t, ExitOK, s.RunSource("var a = 1;"))
	assert.Equal(t, ExitOK, s.RunSource("a = a + 1;"))
	assert.Equal(t, ExitOK, s.RunSource("print a;"))

	assert.Equal(t, "2\n", out.String())
	assert.Empty(t, errOut.String())
	assert.Equal(t, []string{"a"}, s.Environment().Names())
}

func TestSessionExitCodes(t *testing.T) {
	var out, errOut strings.Builder
	s := NewSession(&out, &errOut)

	assert.Equal(t, ExitSoftware, s.RunSource("print x;"))
	s.Diagnostics().Reset()

	// Static errors prevent execution of the whole unit
	assert.Equal(t, ExitDataErr, s.RunSource("print 1;\nprint ;"))
	s.Diagnostics().Reset()

	assert.Equal(t, ExitOK, s.RunSource("print 2;"))

	assert.Equal(t, "2\n", out.String())
	assert.Equal(t, "[line 1]: Undefined variable 'x'.\n[line 2] Error at ';': Expect expression.\n", errOut.String())
}

func TestSessionDumps(t *testing.T) {
	var out, dump, logs bytes.Buffer
	s := NewSession(&out, nil,
		WithTokenDump(&dump),
		WithASTDump(&dump),
		WithLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))),
	)

	assert.Equal(t, ExitOK, s.RunSource("print 1 + 2;"))

	assert.Equal(t, "3\n", out.String())
	assert.Equal(t, strings.Join([]string{
		`1 Print "print"`,
		`1 Number(1) "1"`,
		`1 Plus "+"`,
		`1 Number(2) "2"`,
		`1 Semicolon ";"`,
		`1 EOF ""`,
		`(print (+ 1 2))`,
	}, "\n")+"\n", dump.String())
	assert.Contains(t, logs.String(), "statements=1")
}

func TestSessionRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.lox")
	require.NoError(t, os.WriteFile(path, []byte("var greeting = \"hello\";\nprint greeting + \" world\";\n"), 0o644))

	var out strings.Builder
	s := NewSession(&out, nil)

	code, err := s.RunFile(path)
	require.NoError(t, err)
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "hello world\n", out.String())

	_, err = s.RunFile(filepath.Join(t.TempDir(), "missing.lox"))
	assert.ErrorContains(t, err, "read script")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScanAndParseIdempotent(t *testing.T) {
	source := "var a = 1;\nprint a * (2 + 3) == 5;\na = \"s\";"

	assert.Equal(t, ScanAndParse(source, nil), ScanAndParse(source, nil))
}
