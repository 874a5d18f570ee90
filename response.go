package xatadb

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Response wraps one raw JSON payload from the remote service. The body
// is kept verbatim; the accessors below read paths out of it without
// reshaping anything, so pagination cursors, metadata and unmodeled
// attributes survive untouched.
type Response struct {
	StatusCode int
	Body       []byte
}

// Get reads an arbitrary gjson path out of the envelope.
func (r *Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

// ID returns the server-assigned record id, when the envelope carries
// one.
func (r *Response) ID() string {
	return r.Get("id").String()
}

// Version returns the record version from the metadata block, or -1
// when absent.
func (r *Response) Version() int64 {
	v := r.Get("xata.version")
	if !v.Exists() {
		return -1
	}
	return v.Int()
}

// Records returns the records array of a query/search envelope.
func (r *Response) Records() []gjson.Result {
	return r.Get("records").Array()
}

// Cursor returns the pagination cursor of a query envelope, if present.
func (r *Response) Cursor() string {
	return r.Get("meta.page.cursor").String()
}

// HasMoreResults reports whether the query envelope says another page
// exists.
func (r *Response) HasMoreResults() bool {
	return r.Get("meta.page.more").Bool()
}

// Unmarshal decodes the envelope into dest.
func (r *Response) Unmarshal(dest any) error {
	if err := json.Unmarshal(r.Body, dest); err != nil {
		return errors.Wrap(err, "could not unmarshal response envelope")
	}
	return nil
}

func (r *Response) String() string {
	return string(r.Body)
}
