package streaming

import (
	"context"
	"fmt"
	"time"

	"github.com/artie-labs/transfer/lib/cdc/util"
	"github.com/artie-labs/transfer/lib/debezium"

	"github.com/artie-labs/reader/lib"
)

// RecordMaker converts raw row tuples into ChangeRecords and enqueues them onto the
// downstream queue, advancing the cursor's row-in-event counter as it goes. Enqueuing
// blocks under backpressure; that block is ordinary flow control, not an error.
type RecordMaker struct {
	cursor *Cursor
	queue  *Queue
}

func NewRecordMaker(cursor *Cursor, queue *Queue) *RecordMaker {
	return &RecordMaker{cursor: cursor, queue: queue}
}

func (r *RecordMaker) createEach(ctx context.Context, emitter *tableEmitter, rows [][]any, ts time.Time) (int, error) {
	count := 0
	for _, row := range rows {
		after := emitter.rowToMap(row)
		if err := r.emit(ctx, OpCreate, emitter, nil, after, ts, "c"); err != nil {
			return count, err
		}
		r.cursor.advanceRow()
		count++
	}
	return count, nil
}

func (r *RecordMaker) deleteEach(ctx context.Context, emitter *tableEmitter, rows [][]any, ts time.Time) (int, error) {
	count := 0
	for _, row := range rows {
		before := emitter.rowToMap(row)
		if err := r.emit(ctx, OpDelete, emitter, before, nil, ts, "d"); err != nil {
			return count, err
		}
		r.cursor.advanceRow()
		count++
	}
	return count, nil
}

// update pins the cursor's row-in-event counter to rowIndex (the caller's loop index over
// the event's row pairs) before emitting, rather than advancing it afterward: an update
// record's position should reflect the row it was found at, not the next one.
func (r *RecordMaker) update(ctx context.Context, emitter *tableEmitter, before, after []any, ts time.Time, rowIndex uint32) error {
	r.cursor.pinRow(rowIndex)

	beforeMap := emitter.rowToMap(before)
	afterMap := emitter.rowToMap(after)
	return r.emit(ctx, OpUpdate, emitter, beforeMap, afterMap, ts, "u")
}

func (r *RecordMaker) emit(ctx context.Context, op Op, emitter *tableEmitter, before, after map[string]any, ts time.Time, dbzOp string) error {
	payload, err := emitter.transformer.BuildEventPayload(before, after, dbzOp, ts)
	if err != nil {
		return fmt.Errorf("failed to build %s payload for table %s: %w", op, emitter.tableID, err)
	}

	pkSource := after
	if pkSource == nil {
		pkSource = before
	}

	msg := lib.NewRawMessage(emitter.tableID.Table, emitter.partitionKey(pkSource), &payload)

	return r.queue.Enqueue(ctx, ChangeRecord{
		Op:             op,
		TableID:        emitter.tableID.String(),
		Before:         before,
		After:          after,
		Ts:             ts,
		SourcePosition: r.cursor.snapshot(),
		Message:        msg,
	})
}

// schemaChange emits a lightweight change record for a DDL statement, carrying only the
// statement text rather than a before/after row image.
func (r *RecordMaker) schemaChange(ctx context.Context, database string, entry SchemaHistoryEntry, ts time.Time) error {
	payload := util.SchemaEventPayload{
		Schema: debezium.Schema{},
		Payload: util.Payload{
			Source: util.Source{
				Table: database,
				TsMs:  ts.UnixMilli(),
			},
			Operation: string(OpDDL),
		},
	}

	msg := lib.NewRawMessage(database, map[string]any{"statement": entry.Statement}, &payload)

	return r.queue.Enqueue(ctx, ChangeRecord{
		Op:             OpDDL,
		TableID:        database,
		Ts:             ts,
		SourcePosition: r.cursor.snapshot(),
		Message:        msg,
	})
}
