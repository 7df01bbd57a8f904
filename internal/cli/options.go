// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"bammart/internal/version"

	"bammart-core/mart"
)

// Identifier extraction strategies.
const (
	SourceTranscript = "transcript" // mapped reads' reference names
	SourceGene       = "gene"       // aux-tag probe with accession prefix
)

// Options holds all query-subcommand flags.
type Options struct {
	Root       string
	Filter     string
	Attributes []string
	Output     string
	BatchSize  int

	IDSource   string
	GenePrefix string

	Host    string
	Dataset string
	Timeout time.Duration

	BestEffort bool
	Quiet      bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: aggregate BAM transcript/gene IDs and resolve them via Ensembl BioMart

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all query flags, returning an Options
// struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.Root, "root", "", "root directory searched recursively for .bam files [*]")
	fs.StringVar(&opt.Filter, "filter", "link_ensembl_transcript_stable_id", "mart filter the identifiers are bound to")
	var attrs stringSlice
	fs.Var(&attrs, "attributes", "mart attribute to fetch (repeatable, e.g. transcript_biotype) [*]")
	fs.StringVar(&opt.Output, "output", "", "CSV output path, '-' for stdout [*]")
	fs.IntVar(&opt.BatchSize, "batch-size", mart.DefaultBatchSize, "identifiers per query; the service recommends at most 500")

	fs.StringVar(&opt.IDSource, "ids", SourceTranscript, "identifier source: transcript (reference names) | gene (GX/GE/GN tags)")
	fs.StringVar(&opt.GenePrefix, "gene-prefix", "ENSG", "accession prefix required of gene tags")

	fs.StringVar(&opt.Host, "host", mart.DefaultHost, "mart service host")
	fs.StringVar(&opt.Dataset, "dataset", mart.DefaultDataset, "mart dataset name")
	fs.DurationVar(&opt.Timeout, "timeout", 2*time.Minute, "per-request HTTP timeout")

	fs.BoolVar(&opt.BestEffort, "best-effort", false, "keep results from succeeded batches when some batches fail [false]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress progress output [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	opt.Attributes = attrs

	// Validation
	if opt.Root == "" {
		return opt, errors.New("--root is required")
	}
	if len(opt.Attributes) == 0 {
		return opt, errors.New("at least one --attributes name is required")
	}
	if opt.Output == "" {
		return opt, errors.New("--output is required ('-' for stdout)")
	}
	if opt.Filter == "" {
		return opt, errors.New("--filter must not be empty")
	}
	if opt.IDSource != SourceTranscript && opt.IDSource != SourceGene {
		return opt, fmt.Errorf("invalid --ids %q (transcript | gene)", opt.IDSource)
	}
	if opt.IDSource == SourceGene && opt.GenePrefix == "" {
		return opt, errors.New("--gene-prefix must not be empty with --ids gene")
	}
	if opt.Timeout < 0 {
		return opt, errors.New("--timeout must be ≥ 0")
	}
	return opt, nil
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
