package xatadb

import (
	"context"
	"net/http"
)

// AskOptions refine an Ask call. Rules steer the model; Search and
// VectorSearch tune how context records are retrieved and pass through
// verbatim.
type AskOptions struct {
	Rules        []string `json:"rules,omitempty"`
	SearchType   string   `json:"searchType,omitempty"`
	Search       any      `json:"search,omitempty"`
	VectorSearch any      `json:"vectorSearch,omitempty"`
}

// Ask sends a natural-language question against one table. The envelope
// carries the answer, the session id for follow-ups, and the ids of the
// records the answer was derived from.
func (c *Client) Ask(ctx context.Context, table, question string, opts *AskOptions) (*Response, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if question == "" {
		return nil, validationErrorf("question must not be empty")
	}
	body := map[string]any{"question": question}
	if opts != nil {
		if len(opts.Rules) > 0 {
			body["rules"] = opts.Rules
		}
		if opts.SearchType != "" {
			body["searchType"] = opts.SearchType
		}
		if opts.Search != nil {
			body["search"] = opts.Search
		}
		if opts.VectorSearch != nil {
			body["vectorSearch"] = opts.VectorSearch
		}
	}
	return c.Do(ctx, http.MethodPost, c.tableURL(table, "ask"), body)
}

// AskFollowUp continues an Ask session with another question.
func (c *Client) AskFollowUp(ctx context.Context, table, sessionID, question string) (*Response, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if sessionID == "" {
		return nil, validationErrorf("session id must not be empty")
	}
	if question == "" {
		return nil, validationErrorf("question must not be empty")
	}
	body := map[string]any{"message": question}
	return c.Do(ctx, http.MethodPost, c.tableURL(table, "ask", sessionID), body)
}
