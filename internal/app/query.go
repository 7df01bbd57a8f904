// internal/app/query.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"bammart/internal/applog"
	"bammart/internal/bamfind"
	"bammart/internal/cli"
	"bammart/internal/output"

	"bammart-core/bamscan"
	"bammart-core/idset"
	"bammart-core/mart"
)

// runQuery drives the pipeline: discover containers, extract identifiers
// sequentially, resolve the aggregated set in batches, normalize, write CSV.
// Per-file faults and resolution faults are logged, never fatal; the run
// always emits an artifact, possibly empty.
func runQuery(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := newQueryFlagSet()
	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		return parseFailure(fs, err, stdout, stderr)
	}

	log := applog.New(stderr, opts.Quiet)
	defer func() { _ = log.Sync() }()

	var ex bamscan.Extractor = bamscan.RefName{}
	if opts.IDSource == cli.SourceGene {
		ex = bamscan.TagPrefix{Tags: bamscan.DefaultGeneTags(), Prefix: opts.GenePrefix}
	}

	files, err := bamfind.Find(opts.Root)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	log.Info("found alignment files", zap.String("root", opts.Root), zap.Int("count", len(files)))

	set := idset.New()
	for i, f := range files {
		log.Info("extracting identifiers",
			zap.String("file", f), zap.Int("file_num", i+1), zap.Int("of", len(files)))
		ids, err := bamscan.Scan(ctx, f, ex)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return 130
			}
			// Recoverable: the file contributes nothing, the run goes on.
			log.Warn("skipping file", zap.String("file", f), zap.Error(err))
			continue
		}
		log.Info("file scanned", zap.String("file", f), zap.Int("unique_ids", len(ids)))
		set.AddAll(ids)
	}
	log.Info("aggregation complete", zap.Int("unique_ids", set.Len()), zap.Int("files", len(files)))

	var table mart.Table
	if set.Len() == 0 {
		log.Warn("no identifiers found; skipping mart query")
	} else {
		client := mart.NewClient(mart.Config{
			Host:    opts.Host,
			Dataset: opts.Dataset,
			Timeout: opts.Timeout,
		})
		res := mart.NewResolver(client, opts.BatchSize, log)
		t, failed := res.Resolve(ctx, opts.Filter, opts.Attributes, set.Sorted())
		if ctx.Err() != nil {
			return 130
		}
		for _, fe := range failed {
			log.Error("batch failed", zap.Int("batch", fe.Batch), zap.Int("ids", fe.Size), zap.Error(fe.Err))
		}
		switch {
		case len(failed) == 0:
			table = t
		case opts.BestEffort:
			log.Warn("keeping partial results",
				zap.Int("failed_batches", len(failed)), zap.Int("rows", len(t.Rows)))
			table = t
		default:
			log.Error("resolution abandoned; writing empty result (use --best-effort to keep partial batches)",
				zap.Int("failed_batches", len(failed)))
		}
	}

	table = mart.NormalizeColumns(table)
	before := len(table.Rows)
	table = mart.DropIncomplete(table)
	log.Info("normalized result",
		zap.Int("rows", len(table.Rows)), zap.Int("dropped_incomplete", before-len(table.Rows)))

	out, closeOut, err := openOutput(opts.Output, stdout)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	werr := output.WriteCSV(out, table)
	cerr := closeOut()
	if output.IsBrokenPipe(werr) || output.IsBrokenPipe(cerr) {
		return 0
	}
	if werr != nil {
		_, _ = fmt.Fprintln(stderr, werr)
		return 3
	}
	if cerr != nil {
		_, _ = fmt.Fprintln(stderr, cerr)
		return 3
	}
	log.Info("wrote result", zap.String("output", opts.Output), zap.Int("rows", len(table.Rows)))
	return 0
}

// openOutput resolves "-" to stdout; file outputs get a real close.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, f.Close, nil
}
