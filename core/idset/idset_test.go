// core/idset/idset_test.go
package idset

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnionAcrossFiles(t *testing.T) {
	s := New()
	s.AddAll([]string{"A", "B"}) // file 1
	s.AddAll([]string{"B", "C"}) // file 2
	require.Equal(t, 3, s.Len())
	require.Equal(t, []string{"A", "B", "C"}, s.Sorted())
}

func TestAddIgnoresEmpty(t *testing.T) {
	s := New()
	s.Add("")
	s.Add("X")
	s.Add("X")
	require.Equal(t, 1, s.Len())
}

func TestBatchesPartition(t *testing.T) {
	for _, tc := range []struct {
		n, size, batches int
	}{
		{n: 1, size: 500, batches: 1},
		{n: 7, size: 3, batches: 3},
		{n: 10, size: 5, batches: 2}, // exact multiple: no phantom extra batch
		{n: 500, size: 500, batches: 1},
		{n: 501, size: 500, batches: 2},
	} {
		t.Run(fmt.Sprintf("%d_by_%d", tc.n, tc.size), func(t *testing.T) {
			ids := make([]string, tc.n)
			for i := range ids {
				ids[i] = fmt.Sprintf("ENST%07d", i)
			}
			batches := Batches(ids, tc.size)
			require.Len(t, batches, tc.batches)

			var flat []string
			for _, b := range batches {
				require.LessOrEqual(t, len(b), tc.size)
				flat = append(flat, b...)
			}
			require.Equal(t, ids, flat) // every id exactly once, in order
		})
	}
}

func TestBatchesEmpty(t *testing.T) {
	require.Nil(t, Batches(nil, 10))
}

func TestBatchesNonPositiveSize(t *testing.T) {
	ids := []string{"A", "B", "C"}
	batches := Batches(ids, 0)
	require.Len(t, batches, 1)
	require.Equal(t, ids, batches[0])
}
