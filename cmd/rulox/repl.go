package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"go.rulox.dev/internal/config"
	lox "go.rulox.dev/pkg"
)

const (
	cmdQuit = ":quit"
	cmdEnv  = ":env"
)

// lineReader is the part of *liner.State the prompt loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
}

func runPrompt(session *lox.Session, cfg *config.Config, stdout io.Writer, logger *slog.Logger) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}

		defer func() {
			f, err := os.Create(cfg.HistoryFile)
			if err != nil {
				logger.Warn("cannot save history", slog.String("path", cfg.HistoryFile), slog.Any("error", err))
				return
			}

			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	return repl(ln, session, cfg.Prompt, stdout, ln.AppendHistory)
}

// repl runs one line at a time against the session. Variables persist across
// lines; diagnostics are reset after each one.
func repl(r lineReader, session *lox.Session, prompt string, out io.Writer, remember func(string)) int {
	for {
		line, err := r.Prompt(prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(out)
			return lox.ExitOK
		case err != nil:
			return lox.ExitSoftware
		}

		switch strings.TrimSpace(line) {
		case "":
			continue
		case cmdQuit:
			return lox.ExitOK
		case cmdEnv:
			printEnvironment(out, session.Environment())
			continue
		}

		remember(line)

		session.RunSource(line)
		session.Diagnostics().Reset()
	}
}

func printEnvironment(out io.Writer, env *lox.Environment) {
	for _, name := range env.Names() {
		v, _ := env.Lookup(name)

		if _, ok := v.(lox.StringValue); ok {
			fmt.Fprintf(out, "%s = %q\n", name, v.String())
			continue
		}

		fmt.Fprintf(out, "%s = %s\n", name, v)
	}
}

// styledWriter renders every line written to it with style. Diagnostics are
// written one line per call.
type styledWriter struct {
	w     io.Writer
	style lipgloss.Style
}

func newErrorWriter(w io.Writer, cfg *config.Config) io.Writer {
	if cfg.Color == "never" {
		return w
	}

	r := lipgloss.NewRenderer(w)
	return &styledWriter{
		w:     w,
		style: r.NewStyle().Foreground(lipgloss.Color("9")).TabWidth(lipgloss.NoTabConversion),
	}
}

func (s *styledWriter) Write(p []byte) (int, error) {
	text := string(p)
	newline := strings.HasSuffix(text, "\n")

	rendered := s.style.Render(strings.TrimSuffix(text, "\n"))
	if newline {
		rendered += "\n"
	}

	if _, err := io.WriteString(s.w, rendered); err != nil {
		return 0, err
	}

	return len(p), nil
}
