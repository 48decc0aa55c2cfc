package streaming

import (
	"context"
	"fmt"
	"time"

	"github.com/go-mysql-org/go-mysql/mysql"
	"github.com/go-mysql-org/go-mysql/replication"
	"github.com/google/uuid"

	"github.com/artie-labs/reader/config"
)

// binlogEventSource adapts a live replication.BinlogSyncer/BinlogStreamer pair to
// EventSource, translating the library's wire-level event types into the dispatcher's own
// event vocabulary.
type binlogEventSource struct {
	syncer   *replication.BinlogSyncer
	streamer *replication.BinlogStreamer

	host string
	port int
	user string
}

func newBinlogEventSource(cfg config.MySQL) *binlogEventSource {
	syncerCfg := replication.BinlogSyncerConfig{
		ServerID:        cfg.StreamingSettings.ServerID,
		Flavor:          "mysql",
		Host:            cfg.Host,
		Port:            uint16(cfg.Port),
		User:            cfg.Username,
		Password:        cfg.Password,
		ReadTimeout:     time.Duration(cfg.StreamingSettings.GetConnectTimeoutMs()) * time.Millisecond,
		HeartbeatPeriod: heartbeatPeriod(cfg.StreamingSettings.KeepAlive),
	}

	return &binlogEventSource{
		syncer: replication.NewBinlogSyncer(syncerCfg),
		host:   cfg.Host,
		port:   cfg.Port,
		user:   cfg.Username,
	}
}

func heartbeatPeriod(keepAlive bool) time.Duration {
	if !keepAlive {
		return 0
	}
	return 30 * time.Second
}

func (s *binlogEventSource) startFromPosition(pos mysql.Position) error {
	streamer, err := s.syncer.StartSync(pos)
	if err != nil {
		return fmt.Errorf("failed to start binlog sync from position %s:%d (host=%s port=%d user=%s): %w", pos.Name, pos.Pos, s.host, s.port, s.user, err)
	}

	s.streamer = streamer
	return nil
}

func (s *binlogEventSource) startFromGTIDSet(set mysql.GTIDSet) error {
	streamer, err := s.syncer.StartSyncGTID(set)
	if err != nil {
		return fmt.Errorf("failed to start binlog sync from gtid set %s (host=%s port=%d user=%s): %w", set.String(), s.host, s.port, s.user, err)
	}

	s.streamer = streamer
	return nil
}

func (s *binlogEventSource) Close() {
	s.syncer.Close()
}

func (s *binlogEventSource) GetEvent(ctx context.Context) (*BinlogEvent, error) {
	ev, err := s.streamer.GetEvent(ctx)
	if err != nil {
		return nil, err
	}

	return translateEvent(ev), nil
}

func translateEvent(ev *replication.BinlogEvent) *BinlogEvent {
	out := &BinlogEvent{
		Timestamp:    time.Unix(int64(ev.Header.Timestamp), 0),
		ServerID:     ev.Header.ServerID,
		NextPosition: uint64(ev.Header.LogPos),
	}

	switch e := ev.Event.(type) {
	case *replication.RotateEvent:
		out.Type = EventRotate
		out.Rotate = &RotatePayload{NextLogName: string(e.NextLogName), Position: e.Position}
	case *replication.TableMapEvent:
		out.Type = EventTableMap
		out.TableMap = &TableMapPayload{TableNumber: e.TableID, Database: string(e.Schema), Table: string(e.Table)}
	case *replication.QueryEvent:
		out.Type = EventQuery
		out.Query = &QueryPayload{Database: string(e.Schema), SQL: string(e.Query)}
	case *replication.GTIDEvent:
		out.Type = EventGTID
		out.GTID = &GTIDPayload{GTID: gtidString(e)}
	case *replication.RowsEvent:
		out.Type = rowsEventType(ev.Header.EventType)
		out.Rows = translateRowsEvent(e, out.Type)
	case *replication.GenericEvent:
		out.Type = genericEventType(ev.Header.EventType)
	default:
		out.Type = EventUnknown
	}

	return out
}

func gtidString(e *replication.GTIDEvent) string {
	sid, err := uuid.FromBytes(e.SID)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s:%d", sid.String(), e.GNO)
}

func rowsEventType(t replication.EventType) EventType {
	switch t {
	case replication.WRITE_ROWS_EVENTv0, replication.WRITE_ROWS_EVENTv1, replication.WRITE_ROWS_EVENTv2:
		return EventWriteRows
	case replication.UPDATE_ROWS_EVENTv0, replication.UPDATE_ROWS_EVENTv1, replication.UPDATE_ROWS_EVENTv2:
		return EventUpdateRows
	case replication.DELETE_ROWS_EVENTv0, replication.DELETE_ROWS_EVENTv1, replication.DELETE_ROWS_EVENTv2:
		return EventDeleteRows
	default:
		return EventUnknown
	}
}

func genericEventType(t replication.EventType) EventType {
	switch t {
	case replication.STOP_EVENT:
		return EventStop
	case replication.HEARTBEAT_EVENT:
		return EventHeartbeat
	case replication.INCIDENT_EVENT:
		return EventIncident
	default:
		return EventUnknown
	}
}

func translateRowsEvent(e *replication.RowsEvent, t EventType) *RowsPayload {
	payload := &RowsPayload{TableNumber: e.TableID, IncludedColumns: e.ColumnBitmap1}

	switch t {
	case EventWriteRows:
		payload.Writes = e.Rows
	case EventDeleteRows:
		payload.Deletes = e.Rows
	case EventUpdateRows:
		for i := 0; i+1 < len(e.Rows); i += 2 {
			payload.Updates = append(payload.Updates, RowChange{Before: e.Rows[i], After: e.Rows[i+1]})
		}
		payload.IncludedColumns = e.ColumnBitmap2
	}

	return payload
}
