// internal/app/helper.go
package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"bammart/internal/helpercli"

	"bammart-core/mart"
)

// runHelper lists the dataset's attributes and filters whose names contain
// the search term, for discovering what to pass to query.
func runHelper(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := newHelperFlagSet()
	opts, err := helpercli.ParseArgs(fs, argv)
	if err != nil {
		return parseFailure(fs, err, stdout, stderr)
	}

	client := mart.NewClient(mart.Config{
		Host:    opts.Host,
		Dataset: opts.Dataset,
		Timeout: opts.Timeout,
	})

	attrs, err := client.Attributes(ctx)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	filters, err := client.Filters(ctx)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}

	printMatches(stdout, "Attributes", attrs, opts.SearchTerm)
	printMatches(stdout, "Filters", filters, opts.SearchTerm)
	return 0
}

func printMatches(w io.Writer, label string, names []string, term string) {
	var matches []string
	for _, n := range names {
		if strings.Contains(n, term) {
			matches = append(matches, n)
		}
	}
	if len(matches) == 0 {
		_, _ = fmt.Fprintf(w, "No %s\n", strings.ToLower(label))
		return
	}
	_, _ = fmt.Fprintf(w, "%s:\n", label)
	for _, m := range matches {
		_, _ = fmt.Fprintf(w, "  %s\n", m)
	}
}
