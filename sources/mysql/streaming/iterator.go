package streaming

import (
	"log/slog"
	"time"

	"github.com/artie-labs/reader/lib"
	"github.com/artie-labs/reader/lib/storage/persistedmap"
)

// RecordIterator adapts [Queue] to the pull-based iterator.Iterator[[]lib.RawMessage]
// surface writers.Writer already knows how to drive, and persists the cursor position of
// each drained batch's last record once the writer acknowledges the batch via
// CommitOffset.
type RecordIterator struct {
	queue    *Queue
	offsets  *persistedmap.PersistedMap[Position]
	batch    int
	pollWait time.Duration

	drained  bool
	lastSeen *Position
}

func NewRecordIterator(queue *Queue, offsets *persistedmap.PersistedMap[Position], batch int, pollWait time.Duration) *RecordIterator {
	return &RecordIterator{queue: queue, offsets: offsets, batch: batch, pollWait: pollWait}
}

// HasNext reports whether another call to Next may produce records. The binlog stream has
// no natural end, so this stays true until the queue has been closed and fully drained.
func (it *RecordIterator) HasNext() bool {
	return !it.drained
}

func (it *RecordIterator) Next() ([]lib.RawMessage, error) {
	records, ok := it.queue.DrainBatch(it.batch, it.pollWait)
	if !ok {
		it.drained = true
	}

	if len(records) == 0 {
		return nil, nil
	}

	messages := make([]lib.RawMessage, len(records))
	for i, record := range records {
		messages[i] = record.Message
	}

	last := records[len(records)-1].SourcePosition
	it.lastSeen = &last

	return messages, nil
}

// CommitOffset persists the position of the last record handed out by Next. Called by
// writers.Writer once it has successfully written a batch.
func (it *RecordIterator) CommitOffset() {
	if it.lastSeen == nil {
		return
	}

	if err := it.offsets.Set(offsetKey, *it.lastSeen); err != nil {
		slog.Error("failed to persist mysql streaming offset", slog.Any("err", err))
	}
}
