package streaming

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/artie-labs/reader/lib/mtr"
)

// DispatcherState tracks the dispatcher's lifecycle, mostly for observability: Run's
// caller doesn't branch on it, but it's useful in logs and tests.
type DispatcherState int

const (
	StateIdle DispatcherState = iota
	StateConnecting
	StateStreaming
	StateFailed
	StateStopped
)

// Dispatcher is the event-dispatch and position-tracking state machine: it owns the
// cursor and table-id map, classifies every event the source hands it, and routes row
// events to the record maker. All of its state is touched only from the goroutine that
// calls Run.
type Dispatcher struct {
	source      EventSource
	cursor      *Cursor
	schema      *SchemaTracker
	tables      *TableIDMap
	recordMaker *RecordMaker
	queue       *Queue
	statsD      *mtr.Client

	includeSchemaChanges bool

	mu     sync.Mutex
	state  DispatcherState
	cancel context.CancelFunc
}

// NewDispatcher wires up the event-dispatch state machine. statsD may be nil, in which
// case events-processed and records-emitted counters are simply not reported.
func NewDispatcher(source EventSource, cursor *Cursor, schemaTracker *SchemaTracker, tables *TableIDMap, recordMaker *RecordMaker, queue *Queue, statsD *mtr.Client, includeSchemaChanges bool) *Dispatcher {
	return &Dispatcher{
		source:               source,
		cursor:               cursor,
		schema:               schemaTracker,
		tables:               tables,
		recordMaker:          recordMaker,
		queue:                queue,
		statsD:               statsD,
		includeSchemaChanges: includeSchemaChanges,
		state:                StateIdle,
	}
}

func (d *Dispatcher) incr(metric string, tags map[string]string) {
	if d.statsD != nil {
		(*d.statsD).Incr(metric, tags)
	}
}

func (d *Dispatcher) count(metric string, value int64, tags map[string]string) {
	if d.statsD != nil && value > 0 {
		(*d.statsD).Count(metric, value, tags)
	}
}

func (d *Dispatcher) setState(s DispatcherState) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = s
}

func (d *Dispatcher) State() DispatcherState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Run is the receiver loop. It blocks until the source ends, ctx is cancelled, or an
// unrecoverable error occurs.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.setState(StateConnecting)

	runCtx, cancel := context.WithCancel(ctx)
	d.mu.Lock()
	d.cancel = cancel
	d.mu.Unlock()
	defer cancel()

	d.setState(StateStreaming)

	for {
		event, err := d.source.GetEvent(runCtx)
		if err != nil {
			if errors.Is(err, context.Canceled) || runCtx.Err() != nil {
				d.setState(StateStopped)
				return nil
			}

			d.setState(StateFailed)
			return fmt.Errorf("binlog transport failed: %w", err)
		}

		if err := d.handle(runCtx, event); err != nil {
			if errors.Is(err, context.Canceled) {
				d.setState(StateStopped)
				return nil
			}

			d.setState(StateFailed)
			return fmt.Errorf("failed to handle binlog event: %w", err)
		}
	}
}

// Stop requests shutdown. It is idempotent and safe to call from another goroutine.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	cancel := d.cancel
	d.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	d.source.Close()
	d.queue.Close()
}

func (d *Dispatcher) handle(ctx context.Context, event *BinlogEvent) error {
	if event == nil {
		return nil
	}

	d.cursor.observeHeader(event.Timestamp, event.ServerID)

	if event.Type == EventRotate && event.Rotate != nil {
		d.cursor.observeRotate(event.Rotate.NextLogName, event.Rotate.Position)
		d.tables.clear()
	} else if event.NextPosition > 0 {
		d.cursor.observeNextPosition(event.NextPosition)
	}

	d.incr("mysql.streaming.events_processed", map[string]string{"type": event.Type.String()})

	switch event.Type {
	case EventGTID:
		d.handleGTID(event.GTID)
	case EventTableMap:
		d.handleTableMap(event.TableMap)
	case EventQuery:
		return d.handleQuery(ctx, event)
	case EventWriteRows:
		return d.handleWriteRows(ctx, event)
	case EventUpdateRows:
		return d.handleUpdateRows(ctx, event)
	case EventDeleteRows:
		return d.handleDeleteRows(ctx, event)
	case EventIncident:
		slog.Warn("binlog incident event received, some changes may have been lost")
	}

	return nil
}

func (d *Dispatcher) handleGTID(payload *GTIDPayload) {
	if payload == nil || payload.GTID == "" {
		return
	}

	d.cursor.observeGTID(payload.GTID)
}

func (d *Dispatcher) handleTableMap(payload *TableMapPayload) {
	if payload == nil {
		return
	}

	if !d.tables.assign(payload.TableNumber, TableID{Database: payload.Database, Table: payload.Table}) {
		slog.Debug("table filtered out, row events for it will be ignored", slog.String("table", payload.Table))
	}
}

func (d *Dispatcher) handleQuery(ctx context.Context, event *BinlogEvent) error {
	q := event.Query
	entry, err := d.schema.ApplyDDL(q.Database, q.SQL, event.Timestamp)
	if err != nil {
		slog.Warn("failed to apply ddl, schema left unchanged", slog.Any("err", err), slog.String("sql", q.SQL))
		return nil
	}

	if entry == nil || !d.includeSchemaChanges {
		return nil
	}

	if err := d.recordMaker.schemaChange(ctx, q.Database, *entry, event.Timestamp); err != nil {
		return err
	}
	d.incr("mysql.streaming.records_emitted", map[string]string{"op": "ddl"})
	return nil
}

func (d *Dispatcher) handleWriteRows(ctx context.Context, event *BinlogEvent) error {
	emitter, isOk := d.tables.lookup(event.Rows.TableNumber, event.Rows.IncludedColumns)
	if !isOk {
		return nil
	}

	count, err := d.recordMaker.createEach(ctx, emitter, event.Rows.Writes, event.Timestamp)
	d.count("mysql.streaming.records_emitted", int64(count), map[string]string{"op": "create"})
	return err
}

func (d *Dispatcher) handleDeleteRows(ctx context.Context, event *BinlogEvent) error {
	emitter, isOk := d.tables.lookup(event.Rows.TableNumber, event.Rows.IncludedColumns)
	if !isOk {
		return nil
	}

	count, err := d.recordMaker.deleteEach(ctx, emitter, event.Rows.Deletes, event.Timestamp)
	d.count("mysql.streaming.records_emitted", int64(count), map[string]string{"op": "delete"})
	return err
}

func (d *Dispatcher) handleUpdateRows(ctx context.Context, event *BinlogEvent) error {
	emitter, isOk := d.tables.lookup(event.Rows.TableNumber, event.Rows.IncludedColumns)
	if !isOk {
		return nil
	}

	for i, change := range event.Rows.Updates {
		if err := d.recordMaker.update(ctx, emitter, change.Before, change.After, event.Timestamp, uint32(i)); err != nil { //nolint:gosec
			return err
		}
		d.incr("mysql.streaming.records_emitted", map[string]string{"op": "update"})
	}

	return nil
}
