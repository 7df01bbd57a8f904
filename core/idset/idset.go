// core/idset/idset.go
package idset

import "sort"

// Set accumulates unique identifiers across input files. Adds are
// idempotent; empty identifiers are ignored.
type Set map[string]struct{}

func New() Set { return make(Set) }

func (s Set) Add(id string) {
	if id == "" {
		return
	}
	s[id] = struct{}{}
}

func (s Set) AddAll(ids []string) {
	for _, id := range ids {
		s.Add(id)
	}
}

func (s Set) Len() int { return len(s) }

// Sorted returns the members as a sorted slice. Ordering matters only for
// deterministic batching and readable logs, not correctness.
func (s Set) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Batches partitions ids into consecutive slices of at most size elements.
// Every element appears in exactly one batch; len of the result is
// ceil(len(ids)/size). A non-positive size yields a single batch.
func Batches(ids []string, size int) [][]string {
	if len(ids) == 0 {
		return nil
	}
	if size <= 0 {
		return [][]string{ids}
	}
	batches := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		batches = append(batches, ids[start:end])
	}
	return batches
}
