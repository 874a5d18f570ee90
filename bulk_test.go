package xatadb

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkProcessorFlushesWhenChunkFull(t *testing.T) {
	var requests int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		body := decodeBody(t, r)
		records := body["records"].([]any)
		assert.Len(t, records, 2)
		w.Write([]byte(`{"recordIDs":["a","b"]}`))
	}))

	bp := client.NewBulkProcessor(2)
	ctx := context.Background()
	require.NoError(t, bp.Put(ctx, "People", map[string]any{"name": "a"}))
	assert.Equal(t, 1, bp.Pending())
	require.NoError(t, bp.Put(ctx, "People", map[string]any{"name": "b"}))
	// Hitting the chunk size flushes immediately.
	assert.Equal(t, 0, bp.Pending())
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
	assert.Equal(t, 2, bp.Processed())
}

func TestBulkProcessorFlushDrainsAllTables(t *testing.T) {
	tables := map[string]int{}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		tables[r.URL.Path] += len(body["records"].([]any))
		w.Write([]byte(`{}`))
	}))

	bp := client.NewBulkProcessor(100)
	ctx := context.Background()
	require.NoError(t, bp.PutMany(ctx, "People", []any{
		map[string]any{"name": "a"},
		map[string]any{"name": "b"},
	}))
	require.NoError(t, bp.Put(ctx, "Companies", map[string]any{"name": "acme"}))
	require.Equal(t, 3, bp.Pending())

	require.NoError(t, bp.Flush(ctx))
	assert.Equal(t, 0, bp.Pending())
	assert.Equal(t, 2, tables["/db/app:main/tables/People/bulk"])
	assert.Equal(t, 1, tables["/db/app:main/tables/Companies/bulk"])
}

func TestBulkProcessorCollectsChunkErrors(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/db/app:main/tables/Broken/bulk" {
			jsonHandler(t, http.StatusBadRequest, map[string]any{"message": "no such table"})(w, r)
			return
		}
		w.Write([]byte(`{}`))
	}))

	bp := client.NewBulkProcessor(10)
	ctx := context.Background()
	require.NoError(t, bp.Put(ctx, "People", map[string]any{"name": "a"}))
	require.NoError(t, bp.Put(ctx, "Broken", map[string]any{"name": "b"}))

	err := bp.Flush(ctx)
	require.Error(t, err)
	var srvErr *ServerError
	require.ErrorAs(t, err, &srvErr)
	// Healthy queues flushed despite the broken one.
	assert.Equal(t, 0, bp.Pending())
}

func TestBulkProcessorValidation(t *testing.T) {
	client := newTestClient(t, jsonHandler(t, http.StatusOK, map[string]any{}))
	bp := client.NewBulkProcessor(10)

	var valErr *ValidationError
	require.ErrorAs(t, bp.Put(context.Background(), "", map[string]any{}), &valErr)
	require.ErrorAs(t, bp.Put(context.Background(), "People", nil), &valErr)
}

func TestTransactionHelperChunksAtLimit(t *testing.T) {
	var sizes []int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		sizes = append(sizes, len(body["operations"].([]any)))
		w.Write([]byte(`{"results":[]}`))
	}))

	th := client.NewTransactionHelper()
	ops := make([]TransactionOperation, 0, 1500)
	for i := 0; i < 1500; i++ {
		ops = append(ops, GetOp("People", "rec_1"))
	}
	require.NoError(t, th.Add(ops...))
	require.Equal(t, 1500, th.Size())

	responses, err := th.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, responses, 2)
	assert.Equal(t, []int{1000, 500}, sizes)
	assert.Equal(t, 0, th.Size())
}

func TestTransactionHelperEmptyRun(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an empty accumulator")
	}))

	th := client.NewTransactionHelper()
	responses, err := th.Run(context.Background())
	require.NoError(t, err)
	assert.Nil(t, responses)
}

func TestTransactionHelperRejectsMalformedOp(t *testing.T) {
	client := newTestClient(t, jsonHandler(t, http.StatusOK, map[string]any{}))
	th := client.NewTransactionHelper()

	var valErr *ValidationError
	require.ErrorAs(t, th.Add(TransactionOperation{}), &valErr)
	assert.Equal(t, 0, th.Size())
}
