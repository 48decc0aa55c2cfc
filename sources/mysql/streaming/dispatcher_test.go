package streaming

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventSource replays a fixed slice of events, then reports exhaustion the same way a
// real source reports a requested shutdown: via context.Canceled. It exists so the
// dispatcher's event-handling logic can be exercised without a live binlog connection.
type fakeEventSource struct {
	events []*BinlogEvent
	idx    int
	closed bool
}

func (f *fakeEventSource) GetEvent(ctx context.Context) (*BinlogEvent, error) {
	if f.idx >= len(f.events) {
		return nil, context.Canceled
	}
	ev := f.events[f.idx]
	f.idx++
	return ev, nil
}

func (f *fakeEventSource) Close() { f.closed = true }

func newTestDispatcher(t *testing.T, events []*BinlogEvent, includeSchemaChanges bool) (*Dispatcher, *Queue) {
	t.Helper()
	tracker := NewSchemaTracker(nil)
	_, err := tracker.ApplyDDL("db", "CREATE TABLE users (id int primary key, name varchar(64))", time.Now())
	require.NoError(t, err)

	tables := NewTableIDMap(tracker, func(id TableID) bool { return id.Table == "users" })
	queue := NewQueue(16, nil)
	cursor := NewCursor(Position{})
	recordMaker := NewRecordMaker(cursor, queue)

	dispatcher := NewDispatcher(&fakeEventSource{events: events}, cursor, tracker, tables, recordMaker, queue, nil, includeSchemaChanges)
	return dispatcher, queue
}

func TestDispatcher_Run_EmitsCreateRecordForWriteRows(t *testing.T) {
	events := []*BinlogEvent{
		{Type: EventTableMap, TableMap: &TableMapPayload{TableNumber: 1, Database: "db", Table: "users"}},
		{
			Type: EventWriteRows,
			Rows: &RowsPayload{TableNumber: 1, IncludedColumns: []byte{0b11}, Writes: [][]any{{int64(1), "alice"}}},
		},
	}
	dispatcher, queue := newTestDispatcher(t, events, false)

	err := dispatcher.Run(context.Background())
	assert.NoError(t, err, "io.EOF from the fake source must not surface as a dispatcher error")

	batch, _ := queue.DrainBatch(10, time.Millisecond)
	require.Len(t, batch, 1)
	assert.Equal(t, OpCreate, batch[0].Op)
	assert.Equal(t, "db.users", batch[0].TableID)
	assert.Equal(t, "alice", batch[0].After["name"])
}

func TestDispatcher_Run_SkipsRowsForUnboundTableNumber(t *testing.T) {
	events := []*BinlogEvent{
		{
			Type: EventWriteRows,
			Rows: &RowsPayload{TableNumber: 5, IncludedColumns: []byte{0b11}, Writes: [][]any{{int64(1), "alice"}}},
		},
	}
	dispatcher, queue := newTestDispatcher(t, events, false)

	err := dispatcher.Run(context.Background())
	assert.NoError(t, err)

	batch, _ := queue.DrainBatch(10, time.Millisecond)
	assert.Empty(t, batch, "a row event for a table number that was never bound by a table map is dropped")
}

func TestDispatcher_Run_SkipsRowsForFilteredTable(t *testing.T) {
	events := []*BinlogEvent{
		{Type: EventTableMap, TableMap: &TableMapPayload{TableNumber: 2, Database: "db", Table: "other"}},
		{
			Type: EventWriteRows,
			Rows: &RowsPayload{TableNumber: 2, IncludedColumns: []byte{0b11}, Writes: [][]any{{int64(1), "alice"}}},
		},
	}
	dispatcher, queue := newTestDispatcher(t, events, false)

	err := dispatcher.Run(context.Background())
	assert.NoError(t, err)

	batch, _ := queue.DrainBatch(10, time.Millisecond)
	assert.Empty(t, batch)
}

func TestDispatcher_Run_AppliesDDLAndEmitsSchemaChangeWhenEnabled(t *testing.T) {
	events := []*BinlogEvent{
		{Type: EventQuery, Query: &QueryPayload{Database: "db", SQL: "ALTER TABLE users ADD COLUMN age int"}},
	}
	dispatcher, queue := newTestDispatcher(t, events, true)

	err := dispatcher.Run(context.Background())
	assert.NoError(t, err)

	tbl, isOk := dispatcher.schema.Get(TableID{Database: "db", Table: "users"})
	require.True(t, isOk)
	assert.Len(t, tbl.Columns, 3)

	batch, _ := queue.DrainBatch(10, time.Millisecond)
	require.Len(t, batch, 1)
	assert.Equal(t, OpDDL, batch[0].Op)
}

func TestDispatcher_Run_DDLNotEmittedWhenSchemaChangesDisabled(t *testing.T) {
	events := []*BinlogEvent{
		{Type: EventQuery, Query: &QueryPayload{Database: "db", SQL: "ALTER TABLE users ADD COLUMN age int"}},
	}
	dispatcher, queue := newTestDispatcher(t, events, false)

	err := dispatcher.Run(context.Background())
	assert.NoError(t, err)

	batch, _ := queue.DrainBatch(10, time.Millisecond)
	assert.Empty(t, batch)
}

func TestDispatcher_Run_RotateClearsTableBindings(t *testing.T) {
	events := []*BinlogEvent{
		{Type: EventTableMap, TableMap: &TableMapPayload{TableNumber: 1, Database: "db", Table: "users"}},
		{Type: EventRotate, Rotate: &RotatePayload{NextLogName: "bin.000002", Position: 4}},
		{
			Type: EventWriteRows,
			Rows: &RowsPayload{TableNumber: 1, IncludedColumns: []byte{0b11}, Writes: [][]any{{int64(1), "alice"}}},
		},
	}
	dispatcher, queue := newTestDispatcher(t, events, false)

	err := dispatcher.Run(context.Background())
	assert.NoError(t, err)

	batch, _ := queue.DrainBatch(10, time.Millisecond)
	assert.Empty(t, batch, "table number bindings don't survive a rotate to a new binlog file")
}

func TestDispatcher_Stop_ClosesSourceAndQueue(t *testing.T) {
	source := &fakeEventSource{}
	tracker := NewSchemaTracker(nil)
	tables := NewTableIDMap(tracker, func(TableID) bool { return true })
	queue := NewQueue(1, nil)
	cursor := NewCursor(Position{})
	recordMaker := NewRecordMaker(cursor, queue)
	dispatcher := NewDispatcher(source, cursor, tracker, tables, recordMaker, queue, nil, false)

	dispatcher.Stop()

	assert.True(t, source.closed)
	_, more := queue.DrainBatch(1, time.Millisecond)
	assert.False(t, more)
}
