package streaming

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-mysql-org/go-mysql/mysql"

	"github.com/artie-labs/reader/config"
	"github.com/artie-labs/reader/lib/mtr"
	"github.com/artie-labs/reader/lib/mysql/schema"
	"github.com/artie-labs/reader/lib/storage/persistedlist"
	"github.com/artie-labs/reader/lib/storage/persistedmap"
)

// Build wires the dispatcher and its downstream record iterator together: it bootstraps
// the schema tracker (replaying any persisted DDL history, then loading each configured
// table's live schema), resumes the cursor from a persisted offset (or the server's
// current position if there isn't one), and starts the binlog connection from there.
func Build(db *sql.DB, cfg config.MySQL, includedTables map[string]bool, statsD *mtr.Client) (*Dispatcher, *RecordIterator, error) {
	tableNames := make([]string, 0, len(includedTables))
	for name := range includedTables {
		tableNames = append(tableNames, name)
	}

	history := persistedlist.NewPersistedList[SchemaHistoryEntry](cfg.StreamingSettings.SchemaHistoryFile)
	schemaTracker := NewSchemaTracker(history)
	for _, entry := range history.GetData() {
		if _, err := schemaTracker.ApplyDDL(entry.Database, entry.Statement, time.Unix(entry.UnixTs, 0)); err != nil {
			slog.Warn("failed to replay persisted schema history entry", slog.Any("err", err), slog.String("statement", entry.Statement))
		}
	}

	if err := bootstrapSchema(db, schemaTracker, cfg.Database, tableNames); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	offsets := persistedmap.NewPersistedMap[Position](cfg.StreamingSettings.OffsetFile)
	position, hasPosition := offsets.Get(offsetKey)

	included := func(id TableID) bool {
		return id.Database == cfg.Database && includedTables[id.Table]
	}

	tableIDMap := NewTableIDMap(schemaTracker, included)
	queue := NewQueue(cfg.StreamingSettings.GetQueueCapacity(), statsD)
	cursor := NewCursor(position)
	recordMaker := NewRecordMaker(cursor, queue)

	source := newBinlogEventSource(cfg)

	if err := startStreaming(db, source, position, hasPosition); err != nil {
		return nil, nil, err
	}

	dispatcher := NewDispatcher(source, cursor, schemaTracker, tableIDMap, recordMaker, queue, statsD, cfg.StreamingSettings.IncludeSchemaChanges)
	recordIterator := NewRecordIterator(queue, offsets, cfg.StreamingSettings.GetQueueCapacity(), time.Duration(cfg.StreamingSettings.GetPollWaitMs())*time.Millisecond)

	return dispatcher, recordIterator, nil
}

// startStreaming resumes the binlog connection from wherever the persisted position says to.
// A non-empty GTID set takes priority over the file/position pair: GTID-based resume is
// robust to failover (the file/pos pair isn't, since a new primary's binlog files don't line
// up with the old one's), so once a GTID set has been observed it's the more trustworthy
// coordinate to resume from.
func startStreaming(db *sql.DB, source *binlogEventSource, position Position, hasPosition bool) error {
	if hasPosition && position.GTIDSet != "" {
		gtidSet, err := mysql.ParseGTIDSet("mysql", position.GTIDSet)
		if err != nil {
			return fmt.Errorf("failed to parse persisted gtid set %q: %w", position.GTIDSet, err)
		}

		if err := source.startFromGTIDSet(gtidSet); err != nil {
			return fmt.Errorf("failed to start binlog stream from gtid set: %w", err)
		}

		return nil
	}

	startPos := position.ToMySQLPosition()
	if !hasPosition || startPos.Name == "" {
		masterPos, err := currentMasterPosition(db)
		if err != nil {
			return fmt.Errorf("failed to determine starting binlog position: %w", err)
		}
		startPos = masterPos
	}

	if err := source.startFromPosition(startPos); err != nil {
		return fmt.Errorf("failed to start binlog stream: %w", err)
	}

	return nil
}

func bootstrapSchema(db *sql.DB, tracker *SchemaTracker, database string, tableNames []string) error {
	for _, name := range tableNames {
		columns, err := schema.DescribeTable(db, name)
		if err != nil {
			return fmt.Errorf("failed to describe table %s: %w", name, err)
		}

		primaryKeys, err := schema.FetchPrimaryKeys(db, name)
		if err != nil {
			return fmt.Errorf("failed to fetch primary keys for table %s: %w", name, err)
		}

		tracker.set(TableID{Database: database, Table: name}, &TableSchema{Columns: columns, PrimaryKeys: primaryKeys})
	}

	return nil
}

// currentMasterPosition is used to start streaming from "now" when no offset has been
// persisted yet, rather than replaying the server's entire retained binlog history.
func currentMasterPosition(db *sql.DB) (mysql.Position, error) {
	row := db.QueryRow("SHOW MASTER STATUS")

	var file string
	var pos uint32
	var binlogDoDB, binlogIgnoreDB, executedGtidSet sql.NullString
	if err := row.Scan(&file, &pos, &binlogDoDB, &binlogIgnoreDB, &executedGtidSet); err != nil {
		return mysql.Position{}, fmt.Errorf("failed to read master status: %w", err)
	}

	return mysql.Position{Name: file, Pos: pos}, nil
}
