package xatadb

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionReportsOneResultPerOperation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/db/app:main/transaction", r.URL.Path)
		body := decodeBody(t, r)
		ops, ok := body["operations"].([]any)
		require.True(t, ok)
		require.Len(t, ops, 3)

		// Each forwarded operation keeps its kind tag, in order.
		_, hasInsert := ops[0].(map[string]any)["insert"]
		_, hasUpdate := ops[1].(map[string]any)["update"]
		_, hasDelete := ops[2].(map[string]any)["delete"]
		assert.True(t, hasInsert)
		assert.True(t, hasUpdate)
		assert.True(t, hasDelete)

		w.Write([]byte(`{"results":[
			{"operation":"insert","id":"rec_1","rows":1},
			{"operation":"update","id":"rec_2","rows":1},
			{"operation":"delete","rows":1}
		]}`))
	}))

	resp, err := client.Transaction(context.Background(), []TransactionOperation{
		InsertOp("People", map[string]any{"name": "a"}),
		UpdateOp("People", "rec_2", map[string]any{"age": 31}),
		DeleteOp("People", "rec_3"),
	})
	require.NoError(t, err)
	results := resp.Get("results").Array()
	require.Len(t, results, 3)
	assert.Equal(t, "insert", results[0].Get("operation").String())
}

func TestTransactionEmptySequence(t *testing.T) {
	client := newTestClient(t, jsonHandler(t, http.StatusOK, map[string]any{}))

	_, err := client.Transaction(context.Background(), nil)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestTransactionRejectsAmbiguousOperation(t *testing.T) {
	client := newTestClient(t, jsonHandler(t, http.StatusOK, map[string]any{}))

	bad := TransactionOperation{
		Insert: &TransactionInsertOp{Table: "People", Record: map[string]any{}},
		Delete: &TransactionDeleteOp{Table: "People", ID: "rec_1"},
	}
	_, err := client.Transaction(context.Background(), []TransactionOperation{bad})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestTransactionRejectsEmptyOperation(t *testing.T) {
	client := newTestClient(t, jsonHandler(t, http.StatusOK, map[string]any{}))

	_, err := client.Transaction(context.Background(), []TransactionOperation{{}})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestTransactionPartialFailurePassedThrough(t *testing.T) {
	// The remote reports per-operation outcomes; the client must not
	// reinterpret them.
	client := newTestClient(t, jsonHandler(t, http.StatusBadRequest, map[string]any{
		"errors": []map[string]any{
			{"index": 1, "message": "table not found"},
		},
	}))

	_, err := client.Transaction(context.Background(), []TransactionOperation{
		GetOp("People", "rec_1"),
		GetOp("Nope", "rec_2"),
	})
	var srvErr *ServerError
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, http.StatusBadRequest, srvErr.StatusCode)
	assert.Contains(t, string(srvErr.Body), "table not found")
}

func TestSQLDefaultsToStrongConsistency(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/db/app:main/sql", r.URL.Path)
		body := decodeBody(t, r)
		assert.Equal(t, "SELECT * FROM \"People\" WHERE age > $1", body["statement"])
		assert.Equal(t, []any{float64(21)}, body["params"])
		assert.Equal(t, ConsistencyStrong, body["consistency"])
		w.Write([]byte(`{"records":[],"columns":{}}`))
	}))

	_, err := client.SQL(context.Background(), `SELECT * FROM "People" WHERE age > $1`, []any{21}, "")
	require.NoError(t, err)
}

func TestSQLEmptyStatement(t *testing.T) {
	client := newTestClient(t, jsonHandler(t, http.StatusOK, map[string]any{}))

	_, err := client.SQL(context.Background(), "", nil, "")
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
}
