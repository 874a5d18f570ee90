package xatadb

import (
	"context"
	"net/http"
	"strings"
)

// Column describes one column of a table schema.
type Column struct {
	Name         string      `json:"name"`
	Type         string      `json:"type"`
	NotNull      bool        `json:"notNull,omitempty"`
	DefaultValue *string     `json:"defaultValue,omitempty"`
	Unique       bool        `json:"unique,omitempty"`
	Link         *ColumnLink `json:"link,omitempty"`
	Vector       *Vector     `json:"vector,omitempty"`
}

// ColumnLink targets the table a link column points at.
type ColumnLink struct {
	Table string `json:"table"`
}

// Vector sizes a vector column.
type Vector struct {
	Dimension int `json:"dimension"`
}

// GetSchema retrieves the schema description of one table.
func (c *Client) GetSchema(ctx context.Context, table string) (*Response, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodGet, c.tableURL(table, "schema"), nil)
}

// SetSchema replaces the schema of one table. The schema mapping passes
// through verbatim, typically {"columns": [...]}.
func (c *Client) SetSchema(ctx context.Context, table string, schema any) (*Response, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if schema == nil {
		return nil, validationErrorf("schema must not be nil")
	}
	return c.Do(ctx, http.MethodPut, c.tableURL(table, "schema"), schema)
}

// TableSchema is a convenience shape for SetSchema and CreateTable.
type TableSchema struct {
	Columns []Column `json:"columns"`
}

// CreateTable creates a table and, when schema is non-nil, sets its
// schema in a second round trip. The returned envelope is from the last
// call made.
func (c *Client) CreateTable(ctx context.Context, table string, schema any) (*Response, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	resp, err := c.Do(ctx, http.MethodPut, c.tableURL(table), nil)
	if err != nil {
		return nil, err
	}
	if schema == nil {
		return resp, nil
	}
	return c.SetSchema(ctx, table, schema)
}

// DeleteTable removes a table and everything in it.
func (c *Client) DeleteTable(ctx context.Context, table string) (*Response, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodDelete, c.tableURL(table), nil)
}

// GetColumns lists the columns of one table.
func (c *Client) GetColumns(ctx context.Context, table string) (*Response, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodGet, c.tableURL(table, "columns"), nil)
}

// CreateColumn adds a column to an existing table.
func (c *Client) CreateColumn(ctx context.Context, table string, column Column) (*Response, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if strings.TrimSpace(column.Name) == "" {
		return nil, validationErrorf("column name must not be empty")
	}
	if strings.TrimSpace(column.Type) == "" {
		return nil, validationErrorf("column type must not be empty")
	}
	return c.Do(ctx, http.MethodPost, c.tableURL(table, "columns"), column)
}

// DeleteColumn removes a column and its data from a table.
func (c *Client) DeleteColumn(ctx context.Context, table, column string) (*Response, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	if strings.TrimSpace(column) == "" {
		return nil, validationErrorf("column name must not be empty")
	}
	return c.Do(ctx, http.MethodDelete, c.tableURL(table, "columns", column), nil)
}
