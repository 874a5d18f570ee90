package xatadb

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xatadb/xatadb.go/pkg/credentials"
)

// newTestClient starts a fake remote and returns a client pointed at it.
// The fake's base URL stands in for the database URL, so the branch
// prefix seen by handlers is /db/app:main.
func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(credentials.Credentials{
		APIKey: "xau_test",
		DBURL:  srv.URL + "/db/app",
	}, opts...)
	require.NoError(t, err)

	return client
}

// jsonHandler replies with status and the JSON encoding of body.
func jsonHandler(t *testing.T, status int, body any) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}
}

// decodeBody reads the request body into a generic map.
func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}
