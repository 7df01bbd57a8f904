// core/bamscan/bamscan.go
package bamscan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/biogo/hts/bam"
)

// ErrNotFound reports that a container path does not resolve to a readable
// file. Callers treat it the same as any other per-file fault: log, count the
// file as contributing zero identifiers, and move on.
var ErrNotFound = errors.New("container not found")

// Scan reads the BAM container at path to end-of-stream and returns the
// identifiers derived by ex, deduplicated within the file. The container is
// closed on every exit path. Any fault after a successful open (truncated
// BGZF block, malformed header, mid-stream corruption) abandons the file and
// surfaces as a wrapped read error.
func Scan(ctx context.Context, path string, ex Extractor) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	br, err := bam.NewReader(f, 1)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer func() { _ = br.Close() }()

	seen := make(map[string]struct{})
	var ids []string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := br.Read()
		if errors.Is(err, io.EOF) {
			return ids, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		id, ok := ex.Extract(rec)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
}
