// core/mart/resolve.go
package mart

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"bammart-core/idset"
)

// DefaultBatchSize is the service's recommended ceiling per query.
const DefaultBatchSize = 500

// BatchError records one failed batch query.
type BatchError struct {
	Batch int // 1-based position in the partition
	Size  int // identifiers in the batch
	Err   error
}

func (e BatchError) Error() string {
	return fmt.Sprintf("batch %d (%d ids): %v", e.Batch, e.Size, e.Err)
}

func (e BatchError) Unwrap() error { return e.Err }

// Resolver maps an identifier set through the mart service in bounded
// batches.
type Resolver struct {
	client *Client
	size   int
	log    *zap.Logger
}

// NewResolver returns a Resolver querying via client. A non-positive
// batchSize falls back to DefaultBatchSize; a nil logger disables progress
// output.
func NewResolver(client *Client, batchSize int, log *zap.Logger) *Resolver {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{client: client, size: batchSize, log: log}
}

// Resolve partitions ids into batches of at most the resolver's size, issues
// one query per batch, and concatenates the successful results in batch
// order. Every identifier is sent exactly once. The second return lists the
// batches that failed; the caller decides whether the partial table is
// acceptable. An empty input short-circuits without touching the service.
func (r *Resolver) Resolve(ctx context.Context, filter string, attributes []string, ids []string) (Table, []BatchError) {
	if len(ids) == 0 {
		return Table{}, nil
	}
	batches := idset.Batches(ids, r.size)
	r.log.Info("querying mart",
		zap.String("dataset", r.client.Dataset()),
		zap.String("filter", filter),
		zap.Int("ids", len(ids)),
		zap.Int("batches", len(batches)),
		zap.Int("batch_size", r.size),
	)

	var (
		parts  []Table
		failed []BatchError
	)
	for i, batch := range batches {
		r.log.Info("querying batch",
			zap.Int("batch", i+1),
			zap.Int("of", len(batches)),
			zap.Int("ids", len(batch)),
		)
		t, err := r.client.Query(ctx, filter, batch, attributes)
		if err != nil {
			failed = append(failed, BatchError{Batch: i + 1, Size: len(batch), Err: err})
			if ctx.Err() != nil {
				break
			}
			continue
		}
		r.log.Info("batch resolved",
			zap.Int("batch", i+1),
			zap.Strings("columns", t.Columns),
			zap.Int("rows", len(t.Rows)),
		)
		parts = append(parts, t)
	}
	return Concat(parts), failed
}
