// gotoken issues and checks HMAC-signed JWTs with the same configuration a
// service would load from GOTOKEN_* environment variables.
//
// Usage:
//
//	gotoken [--env-file FILE]... [--log-level LEVEL] <command> [args]
//
// Commands:
//
//	keygen [--size N]   print a fresh base64 secret of N bytes (32, 48 or 64)
//	issue SUBJECT       print a signed token for SUBJECT
//	validate TOKEN      report whether TOKEN is valid; exits 1 if rejected
//	subject TOKEN       print the subject of a valid TOKEN; exits 1 if rejected
//
// TOKEN may be "-" to read it from standard input.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
)

const usage = `Usage: gotoken [--env-file FILE]... [--log-level LEVEL] <command> [args]

Commands:
  keygen [--size N]   print a fresh base64 secret of N bytes (32, 48 or 64)
  issue SUBJECT       print a signed token for SUBJECT
  validate TOKEN      report whether TOKEN is valid; exits 1 if rejected
  subject TOKEN       print the subject of a valid TOKEN; exits 1 if rejected

TOKEN may be "-" to read it from standard input.

Flags:
`

// exitError carries a process exit code without a message of its own.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func (e *exitError) ExitCode() int { return e.code }

// usageError reports bad invocation; it exits with status 2.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func (e *usageError) ExitCode() int { return 2 }

func main() {
	os.Exit(exitCode(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr), os.Stderr))
}

func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var silent *exitError
	if errors.As(err, &silent) {
		return silent.code
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}

type globalOptions struct {
	envFiles []string
	logLevel string
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts globalOptions

	flagSet := pflag.NewFlagSet("gotoken", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	flagSet.StringArrayVar(&opts.envFiles, "env-file", nil, "load GOTOKEN_* variables from a dotenv file (repeatable; missing files are skipped)")
	flagSet.StringVar(&opts.logLevel, "log-level", "error", "log level written to stderr (debug, info, warn, error)")
	flagSet.Usage = func() {
		fmt.Fprint(stderr, usage)
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return &usageError{msg: err.Error()}
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		flagSet.Usage()
		return &exitError{code: 2}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
		return &usageError{msg: fmt.Sprintf("invalid --log-level %q", opts.logLevel)}
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cmd := command{
		opts:   opts,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: logger,
	}

	switch name, cmdArgs := rest[0], rest[1:]; name {
	case "keygen":
		return cmd.keygen(cmdArgs)
	case "issue":
		return cmd.issue(cmdArgs)
	case "validate":
		return cmd.validate(cmdArgs)
	case "subject":
		return cmd.subject(cmdArgs)
	case "help":
		flagSet.Usage()
		return nil
	default:
		return &usageError{msg: fmt.Sprintf("unknown command %q", name)}
	}
}
