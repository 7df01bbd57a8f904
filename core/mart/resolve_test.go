// core/mart/resolve_test.go
package mart_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"bammart-core/mart"
)

func TestResolveEmptySetSkipsService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("remote service must not be called for an empty set")
	}))
	defer srv.Close()

	tab, failed := mart.NewResolver(testClient(srv), 500, nil).
		Resolve(context.Background(), "f", []string{"a"}, nil)
	require.True(t, tab.Empty())
	require.Empty(t, failed)
}

func TestResolveBatchCount(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, "id\tval\nX\t1\n")
	}))
	defer srv.Close()

	ids := make([]string, 7)
	for i := range ids {
		ids[i] = fmt.Sprintf("ENST%d", i)
	}
	tab, failed := mart.NewResolver(testClient(srv), 3, nil).
		Resolve(context.Background(), "f", []string{"val"}, ids)
	require.Empty(t, failed)
	require.EqualValues(t, 3, calls.Load()) // ceil(7/3)
	require.Len(t, tab.Rows, 3)             // one row per batch, concatenated in order
}

func TestResolveEveryIDSentOnce(t *testing.T) {
	var sent []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		q := r.PostFormValue("query")
		start := strings.Index(q, `value="`) + len(`value="`)
		end := strings.Index(q[start:], `"`)
		sent = append(sent, strings.Split(q[start:start+end], ",")...)
		fmt.Fprint(w, "id\nX\n")
	}))
	defer srv.Close()

	ids := []string{"A", "B", "C", "D", "E"}
	_, failed := mart.NewResolver(testClient(srv), 2, nil).
		Resolve(context.Background(), "f", []string{"id"}, ids)
	require.Empty(t, failed)
	require.Equal(t, ids, sent)
}

func TestResolvePartialFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 2 {
			fmt.Fprint(w, "Query ERROR: temporary fault\n")
			return
		}
		fmt.Fprint(w, "id\tval\nX\t1\n")
	}))
	defer srv.Close()

	ids := []string{"A", "B", "C", "D", "E", "F"}
	tab, failed := mart.NewResolver(testClient(srv), 2, nil).
		Resolve(context.Background(), "f", []string{"val"}, ids)

	// Succeeded batches survive; the failed one is reported, not silently
	// folded into an empty result.
	require.Len(t, failed, 1)
	require.Equal(t, 2, failed[0].Batch)
	require.Equal(t, 2, failed[0].Size)
	require.Len(t, tab.Rows, 2)
}

func TestResolveDefaultBatchSize(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, "id\nX\n")
	}))
	defer srv.Close()

	ids := make([]string, mart.DefaultBatchSize+1)
	for i := range ids {
		ids[i] = fmt.Sprintf("ENST%d", i)
	}
	// Non-positive size falls back to the service's recommended ceiling.
	_, failed := mart.NewResolver(testClient(srv), 0, nil).
		Resolve(context.Background(), "f", []string{"id"}, ids)
	require.Empty(t, failed)
	require.EqualValues(t, 2, calls.Load())
}

func TestResolveCanceledContextStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "id\nX\n")
	}))
	defer srv.Close()

	tab, failed := mart.NewResolver(testClient(srv), 1, nil).
		Resolve(ctx, "f", []string{"id"}, []string{"A", "B", "C"})
	require.True(t, tab.Empty())
	require.Len(t, failed, 1) // stops after the first canceled batch
}
