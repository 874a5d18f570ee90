package xatadb

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/xatadb/xatadb.go/pkg/constants"
)

// BulkProcessor accumulates records per table and flushes them in
// bulk-insert chunks, either when a table queue reaches the chunk size
// or on an explicit Flush. Flushing is sequential; chunk failures are
// collected and do not stop later chunks.
type BulkProcessor struct {
	client    *Client
	chunkSize int

	mu     sync.Mutex
	queues map[string][]any
	put    int
}

// NewBulkProcessor returns a processor flushing in chunks of chunkSize;
// zero or negative means the transaction operation limit.
func (c *Client) NewBulkProcessor(chunkSize int) *BulkProcessor {
	if chunkSize <= 0 {
		chunkSize = constants.MaxOperationsPerTransaction
	}
	return &BulkProcessor{
		client:    c,
		chunkSize: chunkSize,
		queues:    make(map[string][]any),
	}
}

// Put queues one record for table, flushing that table's queue first if
// it is full.
func (bp *BulkProcessor) Put(ctx context.Context, table string, record any) error {
	if err := validateTable(table); err != nil {
		return err
	}
	if record == nil {
		return validationErrorf("record must not be nil")
	}

	bp.mu.Lock()
	defer bp.mu.Unlock()

	bp.queues[table] = append(bp.queues[table], record)
	bp.put++
	if len(bp.queues[table]) >= bp.chunkSize {
		return bp.flushTable(ctx, table)
	}
	return nil
}

// PutMany queues several records for table.
func (bp *BulkProcessor) PutMany(ctx context.Context, table string, records []any) error {
	for _, r := range records {
		if err := bp.Put(ctx, table, r); err != nil {
			return err
		}
	}
	return nil
}

// Pending reports how many records are queued across all tables.
func (bp *BulkProcessor) Pending() int {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	n := 0
	for _, q := range bp.queues {
		n += len(q)
	}
	return n
}

// Processed reports how many records have been queued since creation.
func (bp *BulkProcessor) Processed() int {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.put
}

// Flush submits every queued record. Failures are accumulated per chunk
// and returned together; every queue is drained regardless, so a failed
// chunk's records are not resubmitted on the next Flush.
func (bp *BulkProcessor) Flush(ctx context.Context) error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	var result *multierror.Error
	for table := range bp.queues {
		if err := bp.flushTable(ctx, table); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// flushTable drains one table queue in chunkSize batches. Callers hold
// bp.mu.
func (bp *BulkProcessor) flushTable(ctx context.Context, table string) error {
	var result *multierror.Error
	queue := bp.queues[table]
	for len(queue) > 0 {
		n := bp.chunkSize
		if n > len(queue) {
			n = len(queue)
		}
		chunk := queue[:n]
		if _, err := bp.client.BulkInsert(ctx, table, chunk); err != nil {
			result = multierror.Append(result, err)
		}
		queue = queue[n:]
	}
	delete(bp.queues, table)
	return result.ErrorOrNil()
}

// TransactionHelper accumulates transaction operations and submits them
// in requests of at most the remote per-transaction operation limit,
// preserving order. Responses come back one per submitted chunk.
type TransactionHelper struct {
	client *Client

	mu  sync.Mutex
	ops []TransactionOperation
}

// NewTransactionHelper returns an empty accumulator bound to the
// client.
func (c *Client) NewTransactionHelper() *TransactionHelper {
	return &TransactionHelper{client: c}
}

// Add appends operations to the pending sequence.
func (th *TransactionHelper) Add(ops ...TransactionOperation) error {
	for i, op := range ops {
		if err := op.validate(); err != nil {
			return validationErrorf("operation %d: %v", i, err)
		}
	}

	th.mu.Lock()
	defer th.mu.Unlock()
	th.ops = append(th.ops, ops...)
	return nil
}

// Size reports how many operations are pending.
func (th *TransactionHelper) Size() int {
	th.mu.Lock()
	defer th.mu.Unlock()
	return len(th.ops)
}

// Run submits the pending operations in order and clears the
// accumulator. It stops at the first failed chunk, returning the
// responses of the chunks that did run; the remote decides atomicity
// within each chunk.
func (th *TransactionHelper) Run(ctx context.Context) ([]*Response, error) {
	th.mu.Lock()
	ops := th.ops
	th.ops = nil
	th.mu.Unlock()

	if len(ops) == 0 {
		return nil, nil
	}

	var responses []*Response
	for len(ops) > 0 {
		n := constants.MaxOperationsPerTransaction
		if n > len(ops) {
			n = len(ops)
		}
		resp, err := th.client.Transaction(ctx, ops[:n])
		if err != nil {
			return responses, err
		}
		responses = append(responses, resp)
		ops = ops[n:]
	}
	return responses, nil
}
