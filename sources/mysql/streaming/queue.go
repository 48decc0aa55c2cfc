package streaming

import (
	"context"
	"sync"
	"time"

	"github.com/artie-labs/reader/lib/mtr"
)

// Queue is a bounded hand-off between the dispatcher (producer) and the poller that feeds
// writers.Writer (consumer). Enqueue blocks once it's full, applying backpressure straight
// back to the binlog reader; DrainBatch waits up to a configured timeout for the first
// record of a batch, then returns whatever else is immediately available.
//
// Close never closes the underlying channel: a producer's blocking send and a concurrent
// Close would otherwise race on the same channel, and a send that loses that race panics.
// Close only marks the queue closed; a blocked Enqueue is expected to unblock via its own
// ctx instead, and DrainBatch treats "closed and empty" as the end of the stream.
type Queue struct {
	ch     chan ChangeRecord
	statsD *mtr.Client

	mu     sync.Mutex
	closed bool
}

// NewQueue builds a queue with the given capacity. statsD may be nil, in which case queue
// depth is simply not reported.
func NewQueue(capacity int, statsD *mtr.Client) *Queue {
	return &Queue{ch: make(chan ChangeRecord, capacity), statsD: statsD}
}

// Enqueue blocks until there is room in the queue or ctx is cancelled. It does not return an
// error once the queue is closed while a send is in flight; callers are expected to derive
// ctx from the same lifetime that triggers Close, so cancellation is what actually unblocks
// them.
func (q *Queue) Enqueue(ctx context.Context, record ChangeRecord) error {
	start := time.Now()
	select {
	case q.ch <- record:
		if q.statsD != nil {
			(*q.statsD).Timing("mysql.streaming.backpressure_wait", time.Since(start), nil)
			(*q.statsD).Gauge("mysql.streaming.queue_depth", float64(len(q.ch)), nil)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close marks the queue closed. Safe to call concurrently with Enqueue and idempotent.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
}

func (q *Queue) isClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// DrainBatch returns up to maxRecords records. It waits up to timeout for the first record
// when the queue is empty, then drains whatever else is immediately available without
// blocking further. The second return value is false once the queue has been closed and
// emptied; records already returned alongside a false are still valid and must be processed.
func (q *Queue) DrainBatch(maxRecords int, timeout time.Duration) ([]ChangeRecord, bool) {
	var batch []ChangeRecord

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case record := <-q.ch:
		batch = append(batch, record)
		if q.statsD != nil {
			(*q.statsD).Gauge("mysql.streaming.queue_depth", float64(len(q.ch)), nil)
		}
	case <-timer.C:
		return batch, !q.isClosed()
	}

	for len(batch) < maxRecords {
		select {
		case record := <-q.ch:
			batch = append(batch, record)
		default:
			return batch, !q.isClosed()
		}
	}

	return batch, !q.isClosed()
}
