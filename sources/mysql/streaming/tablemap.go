package streaming

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/artie-labs/reader/lib/debezium/transformer"
	"github.com/artie-labs/reader/lib/mysql/schema"
	"github.com/artie-labs/reader/sources/mysql/adapter"
)

// tableEmitter bundles the pieces needed to turn a raw row tuple from a binlog row event
// into a Debezium payload for one table: the ordinal column names the row's values line up
// against, the primary key columns used for the partition key, and the value converters
// themselves.
type tableEmitter struct {
	tableID     TableID
	columnNames []string
	primaryKeys []string
	transformer *transformer.LightDebeziumTransformer
}

func newTableEmitter(tableID TableID, columns []schema.Column, primaryKeys []string) (*tableEmitter, error) {
	names := make([]string, len(columns))
	fieldConverters := make([]transformer.FieldConverter, len(columns))
	for i, col := range columns {
		converter, err := adapter.ValueConverterForType(col.Type, col.Opts)
		if err != nil {
			return nil, fmt.Errorf("failed to build value converter for column %s: %w", col.Name, err)
		}

		names[i] = col.Name
		fieldConverters[i] = transformer.FieldConverter{Name: col.Name, ValueConverter: converter}
	}

	return &tableEmitter{
		tableID:     tableID,
		columnNames: names,
		primaryKeys: primaryKeys,
		transformer: transformer.NewLightDebeziumTransformer(tableID.Table, fieldConverters),
	}, nil
}

func (e *tableEmitter) rowToMap(values []any) map[string]any {
	if values == nil {
		return nil
	}
	return zipSlicesToMap(e.columnNames, values)
}

func (e *tableEmitter) partitionKey(row map[string]any) map[string]any {
	if len(e.primaryKeys) == 0 {
		return row
	}

	result := make(map[string]any, len(e.primaryKeys))
	for _, key := range e.primaryKeys {
		result[key] = row[key]
	}
	return result
}

func zipSlicesToMap(names []string, values []any) map[string]any {
	result := make(map[string]any, len(names))
	for i, name := range names {
		if i < len(values) {
			result[name] = values[i]
		} else {
			result[name] = nil
		}
	}
	return result
}

// columnsForBitmap returns the subset of columns whose bit is set in bitmap, in ordinal
// order. This mirrors how the binlog's row image encodes values: one value per set bit, in
// ascending column-position order, regardless of how many columns the table actually has.
func columnsForBitmap(columns []schema.Column, bitmap []byte) []schema.Column {
	var result []schema.Column
	for i, col := range columns {
		byteIdx := i / 8
		bitIdx := uint(i % 8) //nolint:gosec
		if byteIdx >= len(bitmap) {
			break
		}
		if bitmap[byteIdx]&(1<<bitIdx) != 0 {
			result = append(result, col)
		}
	}
	return result
}

func cacheKey(tableNumber uint64, includedColumns []byte) string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(tableNumber, 10))
	sb.WriteByte(':')
	sb.Write(includedColumns)
	return sb.String()
}

// TableIDMap binds the binlog's ephemeral, per-connection TABLE_MAP numbers to stable
// logical table identities, and caches a record emitter per (tableNumber, includedColumns)
// pair so a change in column projection re-derives the emitter rather than mutating a
// shared one.
type TableIDMap struct {
	schemaTracker *SchemaTracker
	included      func(TableID) bool

	bindings map[uint64]TableID
	emitters map[string]*tableEmitter
}

func NewTableIDMap(schemaTracker *SchemaTracker, included func(TableID) bool) *TableIDMap {
	return &TableIDMap{
		schemaTracker: schemaTracker,
		included:      included,
		bindings:      map[uint64]TableID{},
		emitters:      map[string]*tableEmitter{},
	}
}

// assign binds a table number to a logical table id. It returns false, and leaves the
// number unbound, when the table is filtered out by the inclusion policy; row events
// carrying that number are then ignored until the next TABLE_MAP rebinds it.
func (m *TableIDMap) assign(tableNumber uint64, id TableID) bool {
	if !m.included(id) {
		delete(m.bindings, tableNumber)
		return false
	}

	m.bindings[tableNumber] = id
	return true
}

// lookup returns the emitter for a table number given the columns actually present in the
// row event (as an included-columns bitmap), or false if the number is unbound or the
// table's schema isn't known yet.
func (m *TableIDMap) lookup(tableNumber uint64, includedColumns []byte) (*tableEmitter, bool) {
	id, isOk := m.bindings[tableNumber]
	if !isOk {
		return nil, false
	}

	key := cacheKey(tableNumber, includedColumns)
	if emitter, isOk := m.emitters[key]; isOk {
		return emitter, true
	}

	tableSchema, isOk := m.schemaTracker.Get(id)
	if !isOk {
		return nil, false
	}

	columns := columnsForBitmap(tableSchema.Columns, includedColumns)
	emitter, err := newTableEmitter(id, columns, tableSchema.PrimaryKeys)
	if err != nil {
		slog.Warn("failed to build record emitter for table", slog.String("table", id.String()), slog.Any("err", err))
		return nil, false
	}

	m.emitters[key] = emitter
	return emitter, true
}

// clear invalidates every binding and cached emitter. Table numbers are only unique within
// a single binlog connection, so they must be forgotten whenever the stream rotates to a
// new file.
func (m *TableIDMap) clear() {
	m.bindings = map[uint64]TableID{}
	m.emitters = map[string]*tableEmitter{}
}
