package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.rulox.dev/internal/config"
	lox "go.rulox.dev/pkg"
)

// Exit statuses beyond the ones the interpreter itself produces.
const (
	exitNoInput = 66
	exitConfig  = 78
)

const usage = "Usage: rulox [script]"

type options struct {
	cfgFile    string
	verbose    bool
	dumpTokens bool
	dumpAST    bool
}

// exitError carries a non-zero exit status out of a cobra command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	code := lox.ExitOK

	root := newRootCmd(stdout, stderr, &code)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			fmt.Fprintf(stderr, "Error: %v\n", exitErr.err)
			return exitErr.code
		}

		fmt.Fprintln(stderr, usage)
		return lox.ExitUsage
	}

	return code
}

func newRootCmd(stdout, stderr io.Writer, code *int) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "rulox [script]",
		Short: "Run a script or start an interactive session",
		Long: `rulox evaluates programs written in a small dynamically typed scripting
language. With a script argument the file is executed once; without one an
interactive session starts where variables persist from line to line.

Exit status: 65 after a syntax error, 70 after a runtime error, 64 on usage errors.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(opts.cfgFile)
			if err != nil {
				return &exitError{code: exitConfig, err: err}
			}

			logger := newLogger(stderr, cfg, opts.verbose)
			if cfg.Path() != "" {
				logger.Debug("loaded config", slog.String("path", cfg.Path()))
			}

			session := lox.NewSession(stdout, newErrorWriter(stderr, cfg), sessionOptions(stderr, cfg, opts, logger)...)

			if len(args) == 1 {
				c, err := session.RunFile(args[0])
				if err != nil {
					return &exitError{code: exitNoInput, err: err}
				}

				*code = c
				return nil
			}

			*code = runPrompt(session, cfg, stdout, logger)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.cfgFile, "config", "", "config file (default: $RULOX_CONFIG or ./rulox.toml)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	cmd.Flags().BoolVar(&opts.dumpTokens, "tokens", false, "print scanned tokens to stderr")
	cmd.Flags().BoolVar(&opts.dumpAST, "ast", false, "print parsed statements to stderr")

	return cmd
}

func newLogger(w io.Writer, cfg *config.Config, verbose bool) *slog.Logger {
	level := cfg.Level()
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func sessionOptions(stderr io.Writer, cfg *config.Config, opts *options, logger *slog.Logger) []lox.SessionOption {
	sessionOpts := []lox.SessionOption{lox.WithLogger(logger)}

	if opts.dumpTokens || cfg.DumpTokens {
		sessionOpts = append(sessionOpts, lox.WithTokenDump(stderr))
	}

	if opts.dumpAST || cfg.DumpAST {
		sessionOpts = append(sessionOpts, lox.WithASTDump(stderr))
	}

	return sessionOpts
}
