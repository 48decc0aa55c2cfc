package streaming

import (
	"context"
	"time"
)

// EventType classifies a BinlogEvent into the vocabulary the dispatcher understands. It is
// deliberately coarser than the wire protocol's own event type enum: write/update/delete
// row events of every version (v0/v1/v2) collapse into a single case each.
type EventType int

const (
	EventUnknown EventType = iota
	EventRotate
	EventTableMap
	EventQuery
	EventGTID
	EventWriteRows
	EventUpdateRows
	EventDeleteRows
	EventStop
	EventHeartbeat
	EventIncident
)

func (t EventType) String() string {
	switch t {
	case EventRotate:
		return "rotate"
	case EventTableMap:
		return "table_map"
	case EventQuery:
		return "query"
	case EventGTID:
		return "gtid"
	case EventWriteRows:
		return "write_rows"
	case EventUpdateRows:
		return "update_rows"
	case EventDeleteRows:
		return "delete_rows"
	case EventStop:
		return "stop"
	case EventHeartbeat:
		return "heartbeat"
	case EventIncident:
		return "incident"
	default:
		return "unknown"
	}
}

type RotatePayload struct {
	NextLogName string
	Position    uint64
}

type TableMapPayload struct {
	TableNumber uint64
	Database    string
	Table       string
}

type QueryPayload struct {
	Database string
	SQL      string
}

type GTIDPayload struct {
	GTID string
}

// RowChange pairs a before/after image for a single row in an UPDATE_ROWS event.
type RowChange struct {
	Before []any
	After  []any
}

type RowsPayload struct {
	TableNumber     uint64
	IncludedColumns []byte
	Writes          [][]any
	Updates         []RowChange
	Deletes         [][]any
}

// BinlogEvent is the dispatcher's normalized view of one binlog event, translated from
// whatever wire format the underlying transport speaks.
type BinlogEvent struct {
	Timestamp    time.Time
	ServerID     uint32
	NextPosition uint64
	Type         EventType

	Rotate   *RotatePayload
	TableMap *TableMapPayload
	Query    *QueryPayload
	GTID     *GTIDPayload
	Rows     *RowsPayload
}

// EventSource is the dispatcher's view of a binlog transport: a serial stream of parsed
// events. It is modeled as an interface, rather than a direct dependency on
// *replication.BinlogStreamer, so the dispatcher's event-handling logic can be exercised
// against hand-built fixtures without a live MySQL server.
type EventSource interface {
	GetEvent(ctx context.Context) (*BinlogEvent, error)
	Close()
}
