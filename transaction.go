package xatadb

import (
	"context"
	"net/http"
)

// TransactionOperation is one step of a transaction. Exactly one of the
// kind fields must be set; the constructors below build well-formed
// operations. The whole ordered sequence is forwarded as a single
// request and whatever atomicity the combined response reports is passed
// through unchanged.
type TransactionOperation struct {
	Insert *TransactionInsertOp `json:"insert,omitempty"`
	Update *TransactionUpdateOp `json:"update,omitempty"`
	Get    *TransactionGetOp    `json:"get,omitempty"`
	Delete *TransactionDeleteOp `json:"delete,omitempty"`
}

type TransactionInsertOp struct {
	Table      string         `json:"table"`
	Record     map[string]any `json:"record"`
	IfVersion  *int           `json:"ifVersion,omitempty"`
	CreateOnly bool           `json:"createOnly,omitempty"`
}

type TransactionUpdateOp struct {
	Table     string         `json:"table"`
	ID        string         `json:"id"`
	Fields    map[string]any `json:"fields"`
	IfVersion *int           `json:"ifVersion,omitempty"`
	Upsert    bool           `json:"upsert,omitempty"`
}

type TransactionGetOp struct {
	Table   string   `json:"table"`
	ID      string   `json:"id"`
	Columns []string `json:"columns,omitempty"`
}

type TransactionDeleteOp struct {
	Table         string   `json:"table"`
	ID            string   `json:"id"`
	Columns       []string `json:"columns,omitempty"`
	FailIfMissing bool     `json:"failIfMissing,omitempty"`
}

// InsertOp builds an insert step.
func InsertOp(table string, record map[string]any) TransactionOperation {
	return TransactionOperation{Insert: &TransactionInsertOp{Table: table, Record: record}}
}

// UpdateOp builds an update step.
func UpdateOp(table, id string, fields map[string]any) TransactionOperation {
	return TransactionOperation{Update: &TransactionUpdateOp{Table: table, ID: id, Fields: fields}}
}

// GetOp builds a read step.
func GetOp(table, id string, columns ...string) TransactionOperation {
	return TransactionOperation{Get: &TransactionGetOp{Table: table, ID: id, Columns: columns}}
}

// DeleteOp builds a delete step.
func DeleteOp(table, id string) TransactionOperation {
	return TransactionOperation{Delete: &TransactionDeleteOp{Table: table, ID: id}}
}

func (op TransactionOperation) validate() error {
	set := 0
	if op.Insert != nil {
		set++
	}
	if op.Update != nil {
		set++
	}
	if op.Get != nil {
		set++
	}
	if op.Delete != nil {
		set++
	}
	if set != 1 {
		return validationErrorf("transaction operation must set exactly one of insert/update/get/delete, got %d", set)
	}
	return nil
}

// Transaction submits an ordered sequence of operations as one request.
// The combined response reports one result per operation, in order; the
// client does not re-order, retry sub-operations, or add
// partial-success semantics of its own.
func (c *Client) Transaction(ctx context.Context, ops []TransactionOperation) (*Response, error) {
	if len(ops) == 0 {
		return nil, validationErrorf("transaction must contain at least one operation")
	}
	for i, op := range ops {
		if err := op.validate(); err != nil {
			return nil, validationErrorf("operation %d: %v", i, err)
		}
	}
	body := map[string]any{"operations": ops}
	return c.Do(ctx, http.MethodPost, c.branchURL()+"/transaction", body)
}

// SQLConsistency selects which replica a SQL query may read from.
const (
	ConsistencyStrong   = "strong"
	ConsistencyEventual = "eventual"
)

// SQL forwards a raw SQL statement with positional parameters and
// returns the raw result envelope. Consistency defaults to strong.
func (c *Client) SQL(ctx context.Context, statement string, params []any, consistency string) (*Response, error) {
	if statement == "" {
		return nil, validationErrorf("sql statement must not be empty")
	}
	if consistency == "" {
		consistency = ConsistencyStrong
	}
	body := map[string]any{
		"statement":   statement,
		"consistency": consistency,
	}
	if len(params) > 0 {
		body["params"] = params
	}
	return c.Do(ctx, http.MethodPost, c.branchURL()+"/sql", body)
}
