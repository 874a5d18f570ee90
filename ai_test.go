package xatadb

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskReturnsAnswerSessionAndRecords(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/db/app:main/tables/Docs/ask", r.URL.Path)
		body := decodeBody(t, r)
		assert.Equal(t, "What is a branch?", body["question"])
		assert.Equal(t, []any{"Answer in one sentence."}, body["rules"])
		w.Write([]byte(`{
			"answer":"A branch is an isolated copy of the database.",
			"sessionId":"sess_1",
			"records":["rec_1","rec_2"]
		}`))
	}))

	resp, err := client.Ask(context.Background(), "Docs", "What is a branch?", &AskOptions{
		Rules: []string{"Answer in one sentence."},
	})
	require.NoError(t, err)
	assert.Equal(t, "sess_1", resp.Get("sessionId").String())
	assert.Len(t, resp.Get("records").Array(), 2)
}

func TestAskEmptyQuestion(t *testing.T) {
	client := newTestClient(t, jsonHandler(t, http.StatusOK, map[string]any{}))

	_, err := client.Ask(context.Background(), "Docs", "", nil)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestAskFollowUpPostsToSessionPath(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/db/app:main/tables/Docs/ask/sess_1", r.URL.Path)
		body := decodeBody(t, r)
		assert.Equal(t, "And a record?", body["message"])
		w.Write([]byte(`{"answer":"One row.","sessionId":"sess_1"}`))
	}))

	resp, err := client.AskFollowUp(context.Background(), "Docs", "sess_1", "And a record?")
	require.NoError(t, err)
	assert.Equal(t, "One row.", resp.Get("answer").String())
}

func TestAskFollowUpEmptySession(t *testing.T) {
	client := newTestClient(t, jsonHandler(t, http.StatusOK, map[string]any{}))

	_, err := client.AskFollowUp(context.Background(), "Docs", "", "And a record?")
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
}
