// internal/helpercli/options.go
package helpercli

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"bammart-core/mart"
)

// Options holds the helper-subcommand flags.
type Options struct {
	SearchTerm string
	Host       string
	Dataset    string
	Timeout    time.Duration
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: list mart attributes and filters matching a search term

Usage of %s:
`, name, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all helper flags.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.SearchTerm, "search-term", "", "substring matched against attribute and filter names [*]")
	fs.StringVar(&opt.Host, "host", mart.DefaultHost, "mart service host")
	fs.StringVar(&opt.Dataset, "dataset", mart.DefaultDataset, "mart dataset name")
	fs.DurationVar(&opt.Timeout, "timeout", 2*time.Minute, "per-request HTTP timeout")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.SearchTerm == "" {
		return opt, errors.New("--search-term is required")
	}
	return opt, nil
}
