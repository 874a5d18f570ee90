package xatadb

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/xatadb/xatadb.go/pkg/constants"
)

// Page addresses one slice of a query result set. After/Before carry
// cursors from a previous envelope; Size and Offset page by count.
type Page struct {
	Size   int    `json:"size,omitempty"`
	Offset int    `json:"offset,omitempty"`
	After  string `json:"after,omitempty"`
	Before string `json:"before,omitempty"`
}

// QueryRequest is the typed shape of a table query. Filter and Sort are
// forwarded verbatim, so any construct the remote API understands can be
// expressed; Extra is a raw escape hatch merged over the typed fields
// for parameters not modeled here.
type QueryRequest struct {
	Columns     []string        `json:"columns,omitempty"`
	Filter      any             `json:"filter,omitempty"`
	Sort        any             `json:"sort,omitempty"`
	Page        *Page           `json:"page,omitempty"`
	Consistency string          `json:"consistency,omitempty"`
	Extra       json.RawMessage `json:"-"`
}

// body renders the request, folding Extra's members over the typed
// fields.
func (q *QueryRequest) body() (any, error) {
	if q == nil {
		return map[string]any{}, nil
	}
	if len(q.Extra) == 0 {
		return q, nil
	}
	merged := map[string]any{}
	typed, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(typed, &merged); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(q.Extra, &merged); err != nil {
		return nil, validationErrorf("extra query parameters must be a JSON object: %v", err)
	}
	return merged, nil
}

// Query runs a filtered, sorted, paginated query against one table and
// returns the raw result envelope.
func (c *Client) Query(ctx context.Context, table string, query *QueryRequest) (*Response, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	body, err := query.body()
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodPost, c.tableURL(table, "query"), body)
}

// PageOptions tune cursor pagination. The zero value pages forward with
// the default size.
type PageOptions struct {
	Size        int
	Offset      int
	Consistency string
}

func (o *PageOptions) page() Page {
	p := Page{Size: constants.DefaultPageSize}
	if o == nil {
		return p
	}
	if o.Size > 0 {
		p.Size = o.Size
	}
	p.Offset = o.Offset
	return p
}

// NextPage fetches the page after prev using its cursor. It returns
// (nil, nil) when prev reports no further results.
func (c *Client) NextPage(ctx context.Context, table string, prev *Response, opts *PageOptions) (*Response, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, validationErrorf("previous response must not be nil")
	}
	if !prev.HasMoreResults() {
		return nil, nil
	}
	cursor := prev.Cursor()
	if cursor == "" {
		return nil, errors.Wrap(constants.ErrNoCursor, "cannot page forward")
	}
	page := opts.page()
	page.After = cursor
	return c.pageQuery(ctx, table, page, opts)
}

// PrevPage fetches the page before prev using its cursor. It returns
// (nil, nil) when prev reports no further results.
func (c *Client) PrevPage(ctx context.Context, table string, prev *Response, opts *PageOptions) (*Response, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, validationErrorf("previous response must not be nil")
	}
	if !prev.HasMoreResults() {
		return nil, nil
	}
	cursor := prev.Cursor()
	if cursor == "" {
		return nil, errors.Wrap(constants.ErrNoCursor, "cannot page backward")
	}
	page := opts.page()
	page.Before = cursor
	return c.pageQuery(ctx, table, page, opts)
}

// pageQuery issues a cursor-only query. The cursor encodes the original
// filter and sort, so the body carries nothing else.
func (c *Client) pageQuery(ctx context.Context, table string, page Page, opts *PageOptions) (*Response, error) {
	req := &QueryRequest{Page: &page}
	if opts != nil {
		req.Consistency = opts.Consistency
	}
	return c.Do(ctx, http.MethodPost, c.tableURL(table, "query"), req)
}
