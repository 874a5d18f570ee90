package xatadb

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// InsertOptions refine an InsertWithID call. The zero value asks for the
// remote defaults.
type InsertOptions struct {
	// CreateOnly fails the call instead of overwriting an existing
	// record with the same id.
	CreateOnly bool
	// IfVersion makes the write conditional on the record being at the
	// given version.
	IfVersion *int
	// Columns limits the fields echoed back in the response.
	Columns []string
}

// UpdateOptions refine an Update or Upsert call.
type UpdateOptions struct {
	IfVersion *int
	Columns   []string
}

func (o *InsertOptions) query() string {
	if o == nil {
		return ""
	}
	v := url.Values{}
	if o.CreateOnly {
		v.Set("createOnly", "true")
	}
	if o.IfVersion != nil {
		v.Set("ifVersion", strconv.Itoa(*o.IfVersion))
	}
	if len(o.Columns) > 0 {
		v.Set("columns", strings.Join(o.Columns, ","))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

func (o *UpdateOptions) query() string {
	if o == nil {
		return ""
	}
	v := url.Values{}
	if o.IfVersion != nil {
		v.Set("ifVersion", strconv.Itoa(*o.IfVersion))
	}
	if len(o.Columns) > 0 {
		v.Set("columns", strings.Join(o.Columns, ","))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// Get retrieves one record by its server-assigned id, optionally
// projecting only the named columns.
func (c *Client) Get(ctx context.Context, table, id string, columns ...string) (*Response, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if err := validateRecordID(id); err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodGet, c.tableURL(table, "data", id)+columnsQuery(columns), nil)
}

// Insert creates a record with a server-assigned id. The record is any
// JSON-marshalable mapping; its shape is forwarded verbatim.
func (c *Client) Insert(ctx context.Context, table string, record any) (*Response, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if record == nil {
		return nil, validationErrorf("record must not be nil")
	}
	return c.Do(ctx, http.MethodPost, c.tableURL(table, "data"), record)
}

// InsertWithID creates a record under a caller-chosen id. An empty id
// gets a fresh UUID, matching the behaviour callers relying on
// create-only semantics expect.
func (c *Client) InsertWithID(ctx context.Context, table, id string, record any, opts *InsertOptions) (*Response, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if record == nil {
		return nil, validationErrorf("record must not be nil")
	}
	if id == "" {
		id = uuid.NewString()
	}
	return c.Do(ctx, http.MethodPut, c.tableURL(table, "data", id)+opts.query(), record)
}

// Upsert creates the record under id or fully replaces it when it
// already exists.
func (c *Client) Upsert(ctx context.Context, table, id string, record any, opts *UpdateOptions) (*Response, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if err := validateRecordID(id); err != nil {
		return nil, err
	}
	if record == nil {
		return nil, validationErrorf("record must not be nil")
	}
	return c.Do(ctx, http.MethodPost, c.tableURL(table, "data", id)+opts.query(), record)
}

// Update partially updates an existing record; fields not named in
// record are left unchanged.
func (c *Client) Update(ctx context.Context, table, id string, record any, opts *UpdateOptions) (*Response, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if err := validateRecordID(id); err != nil {
		return nil, err
	}
	if record == nil {
		return nil, validationErrorf("record must not be nil")
	}
	return c.Do(ctx, http.MethodPatch, c.tableURL(table, "data", id)+opts.query(), record)
}

// Delete removes a record. A missing record surfaces as a *ServerError
// with a not-found status.
func (c *Client) Delete(ctx context.Context, table, id string, columns ...string) (*Response, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if err := validateRecordID(id); err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodDelete, c.tableURL(table, "data", id)+columnsQuery(columns), nil)
}

// BulkInsert creates many records in one request.
func (c *Client) BulkInsert(ctx context.Context, table string, records []any, columns ...string) (*Response, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, validationErrorf("records must not be empty")
	}
	body := map[string]any{"records": records}
	return c.Do(ctx, http.MethodPost, c.tableURL(table, "bulk")+columnsQuery(columns), body)
}
