// internal/app/app.go
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"bammart/internal/cli"
	"bammart/internal/helpercli"
	"bammart/internal/version"
)

const usageText = `bammart: aggregate BAM transcript/gene IDs and resolve them via Ensembl BioMart

Usage:
  bammart query  --root DIR --attributes NAME [--attributes NAME ...] --output FILE
  bammart helper --search-term TERM

Run 'bammart <command> -h' for command flags.
`

func usage(w io.Writer) { _, _ = fmt.Fprint(w, usageText) }

// RunContext dispatches the subcommand and returns the process exit code:
// 0 success, 2 usage error, 3 I/O error, 130 interrupted.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	if len(argv) == 0 {
		usage(stderr)
		return 2
	}
	switch argv[0] {
	case "query":
		return runQuery(ctx, argv[1:], stdout, stderr)
	case "helper":
		return runHelper(ctx, argv[1:], stdout, stderr)
	case "version", "-v", "--version":
		_, _ = fmt.Fprintf(stdout, "bammart version %s\n", version.Version)
		return 0
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n", argv[0])
		usage(stderr)
		return 2
	}
}

// Run is the context-free entry point used by main and tests.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// parseFailure prints the error followed by usage and returns the exit code
// shared by both subcommands' flag handling.
func parseFailure(fs *flag.FlagSet, err error, stdout, stderr io.Writer) int {
	if errors.Is(err, flag.ErrHelp) {
		fs.SetOutput(stdout)
		fs.Usage()
		return 0
	}
	_, _ = fmt.Fprintln(stderr, err)
	fs.SetOutput(stderr)
	fs.Usage()
	return 2
}

func newQueryFlagSet() *flag.FlagSet {
	fs := cli.NewFlagSet("bammart query")
	fs.SetOutput(io.Discard)
	return fs
}

func newHelperFlagSet() *flag.FlagSet {
	fs := helpercli.NewFlagSet("bammart helper")
	fs.SetOutput(io.Discard)
	return fs
}
