package xatadb

import (
	"context"
	"net/http"
)

// SearchRequest is a full-text search specification. For branch-wide
// search, Tables optionally narrows the scope; for table search it is
// ignored. Filter, Boosters and Highlight pass through verbatim.
type SearchRequest struct {
	Query     string      `json:"query"`
	Tables    []any       `json:"tables,omitempty"`
	Fuzziness *int        `json:"fuzziness,omitempty"`
	Prefix    string      `json:"prefix,omitempty"`
	Filter    any         `json:"filter,omitempty"`
	Boosters  []any       `json:"boosters,omitempty"`
	Highlight any         `json:"highlight,omitempty"`
	Page      *SearchPage `json:"page,omitempty"`
}

// SearchPage sizes a search result page. Search paginates by offset,
// not cursor.
type SearchPage struct {
	Size   int `json:"size,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// VectorSearchRequest is a similarity search specification against one
// vector column.
type VectorSearchRequest struct {
	QueryVector        []float64 `json:"queryVector"`
	Column             string    `json:"column"`
	SimilarityFunction string    `json:"similarityFunction,omitempty"`
	Size               int       `json:"size,omitempty"`
	Filter             any       `json:"filter,omitempty"`
}

// Search runs a full-text search across the whole branch and returns
// the raw hits envelope.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*Response, error) {
	if req.Query == "" {
		return nil, validationErrorf("search query must not be empty")
	}
	return c.Do(ctx, http.MethodPost, c.branchURL()+"/search", req)
}

// SearchTable runs a full-text search scoped to one table.
func (c *Client) SearchTable(ctx context.Context, table string, req SearchRequest) (*Response, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if req.Query == "" {
		return nil, validationErrorf("search query must not be empty")
	}
	req.Tables = nil
	return c.Do(ctx, http.MethodPost, c.tableURL(table, "search"), req)
}

// VectorSearch runs a similarity search over a vector column.
func (c *Client) VectorSearch(ctx context.Context, table string, req VectorSearchRequest) (*Response, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if len(req.QueryVector) == 0 {
		return nil, validationErrorf("query vector must not be empty")
	}
	if req.Column == "" {
		return nil, validationErrorf("vector column must not be empty")
	}
	return c.Do(ctx, http.MethodPost, c.tableURL(table, "vectorSearch"), req)
}

// AggregateRequest names the aggregations to run and an optional filter
// narrowing the rows they see. Aggs passes through verbatim.
type AggregateRequest struct {
	Aggs   any `json:"aggs"`
	Filter any `json:"filter,omitempty"`
}

// Aggregate runs server-side aggregations over one table and returns
// the raw aggregation envelope.
func (c *Client) Aggregate(ctx context.Context, table string, req AggregateRequest) (*Response, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if req.Aggs == nil {
		return nil, validationErrorf("aggregation specification must not be nil")
	}
	return c.Do(ctx, http.MethodPost, c.tableURL(table, "aggregate"), req)
}

// SummarizeRequest groups rows by Columns and computes Summaries over
// each group.
type SummarizeRequest struct {
	Columns         []string `json:"columns,omitempty"`
	Summaries       any      `json:"summaries,omitempty"`
	SummariesFilter any      `json:"summariesFilter,omitempty"`
	Filter          any      `json:"filter,omitempty"`
	Sort            any      `json:"sort,omitempty"`
	Page            *Page    `json:"page,omitempty"`
	Consistency     string   `json:"consistency,omitempty"`
}

// Summarize groups and summarizes rows of one table.
func (c *Client) Summarize(ctx context.Context, table string, req SummarizeRequest) (*Response, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodPost, c.tableURL(table, "summarize"), req)
}
