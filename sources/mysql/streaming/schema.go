package streaming

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/artie-labs/reader/lib/mysql/ddl"
	"github.com/artie-labs/reader/lib/mysql/schema"
	"github.com/artie-labs/reader/lib/storage/persistedlist"
)

// TableSchema is the schema tracker's typed record of one table's columns, evolved in
// place by DDL. Column order mirrors the server's ordinal column order, which is what a
// row event's included-columns bitmap assumes when it's decoded against this slice.
type TableSchema struct {
	Columns     []schema.Column
	PrimaryKeys []string
}

func (t *TableSchema) clone() *TableSchema {
	return &TableSchema{
		Columns:     slices.Clone(t.Columns),
		PrimaryKeys: slices.Clone(t.PrimaryKeys),
	}
}

// SchemaHistoryEntry is one applied DDL statement, persisted so that a restart can replay
// it against a freshly-bootstrapped snapshot without re-reading the binlog from the start.
type SchemaHistoryEntry struct {
	Database  string `json:"database"`
	Statement string `json:"statement"`
	UnixTs    int64  `json:"unixTs"`
}

// SchemaTracker maintains a typed schema per logical table, evolved by DDL observed on the
// binlog. It is the sole writer of the schema snapshot; the record maker and table-id map
// only ever read it.
type SchemaTracker struct {
	tables  map[TableID]*TableSchema
	history *persistedlist.PersistedList[SchemaHistoryEntry]
}

func NewSchemaTracker(history *persistedlist.PersistedList[SchemaHistoryEntry]) *SchemaTracker {
	return &SchemaTracker{tables: map[TableID]*TableSchema{}, history: history}
}

func (s *SchemaTracker) Get(id TableID) (*TableSchema, bool) {
	t, isOk := s.tables[id]
	return t, isOk
}

func (s *SchemaTracker) set(id TableID, t *TableSchema) {
	s.tables[id] = t
}

// ApplyDDL parses sqlText and applies every resulting event to the snapshot as a single
// unit: events are first applied to clones of the tables they touch, and only written back
// if every one of them succeeds, so a statement the parser partially understands never
// leaves the live snapshot half-updated.
func (s *SchemaTracker) ApplyDDL(database, sqlText string, ts time.Time) (*SchemaHistoryEntry, error) {
	events, err := ddl.Parse(sqlText)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaParse, err)
	}
	if len(events) == 0 {
		return nil, nil
	}

	touched := map[TableID]*TableSchema{}
	dropped := map[TableID]bool{}
	for _, event := range events {
		id := TableID{Database: database, Table: event.GetTable()}
		if _, isOk := touched[id]; isOk {
			continue
		}

		if existing, isOk := s.tables[id]; isOk {
			touched[id] = existing.clone()
		} else {
			touched[id] = &TableSchema{}
		}
	}

	for _, event := range events {
		id := TableID{Database: database, Table: event.GetTable()}
		if _, isOk := event.(ddl.DropTableEvent); isOk {
			dropped[id] = true
			delete(touched, id)
			continue
		}

		if dropped[id] {
			return nil, fmt.Errorf("%w: table %s was dropped earlier in the same statement", ErrSchemaParse, id)
		}

		if err := applyEvent(touched[id], event); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSchemaParse, err)
		}
	}

	for id, tableSchema := range touched {
		s.set(id, tableSchema)
	}
	for id := range dropped {
		delete(s.tables, id)
	}

	entry := SchemaHistoryEntry{Database: database, Statement: sqlText, UnixTs: ts.Unix()}
	if s.history != nil {
		if err := s.history.Push(entry); err != nil {
			return nil, fmt.Errorf("failed to persist schema history: %w", err)
		}
	}

	return &entry, nil
}

func applyEvent(tbl *TableSchema, event ddl.Event) error {
	switch event.(type) {
	case ddl.CreateTableEvent:
		tbl.Columns = nil
		tbl.PrimaryKeys = nil
		for _, col := range event.GetColumns() {
			newCol, err := toSchemaColumn(col)
			if err != nil {
				return err
			}
			tbl.Columns = append(tbl.Columns, newCol)
			if col.PrimaryKey {
				tbl.PrimaryKeys = append(tbl.PrimaryKeys, newCol.Name)
			}
		}
	case ddl.AddColumnsEvent:
		for _, col := range event.GetColumns() {
			newCol, err := toSchemaColumn(col)
			if err != nil {
				return err
			}
			tbl.Columns = insertColumn(tbl.Columns, newCol, col.Position)
			if col.PrimaryKey {
				tbl.PrimaryKeys = append(tbl.PrimaryKeys, newCol.Name)
			}
		}
	case ddl.DropColumnsEvent:
		col := event.GetColumns()[0]
		idx := slices.IndexFunc(tbl.Columns, func(c schema.Column) bool { return c.Name == col.Name })
		if idx < 0 {
			return fmt.Errorf("cannot drop unknown column %q", col.Name)
		}
		tbl.Columns = slices.Delete(tbl.Columns, idx, idx+1)
		tbl.PrimaryKeys = slices.DeleteFunc(tbl.PrimaryKeys, func(name string) bool { return name == col.Name })
	case ddl.ModifyColumnEvent:
		col := event.GetColumns()[0]
		name := col.Name
		if col.PreviousName != "" {
			name = col.PreviousName
		}

		idx := slices.IndexFunc(tbl.Columns, func(c schema.Column) bool { return c.Name == name })
		if idx < 0 {
			return fmt.Errorf("cannot modify unknown column %q", name)
		}

		newCol, err := toSchemaColumn(col)
		if err != nil {
			return err
		}

		if col.Position == nil {
			tbl.Columns[idx] = newCol
		} else {
			tbl.Columns = slices.Delete(tbl.Columns, idx, idx+1)
			tbl.Columns = insertColumn(tbl.Columns, newCol, col.Position)
		}

		if name != newCol.Name {
			renamePrimaryKey(tbl, name, newCol.Name)
		}
	case ddl.RenameColumnEvent:
		col := event.GetColumns()[0]
		idx := slices.IndexFunc(tbl.Columns, func(c schema.Column) bool { return c.Name == col.PreviousName })
		if idx < 0 {
			return fmt.Errorf("cannot rename unknown column %q", col.PreviousName)
		}
		tbl.Columns[idx].Name = col.Name
		renamePrimaryKey(tbl, col.PreviousName, col.Name)
	case ddl.AddPrimaryKeyEvent:
		for _, col := range event.GetColumns() {
			if !slices.Contains(tbl.PrimaryKeys, col.Name) {
				tbl.PrimaryKeys = append(tbl.PrimaryKeys, col.Name)
			}
		}
	default:
		return fmt.Errorf("unsupported ddl event type %T", event)
	}

	return nil
}

func renamePrimaryKey(tbl *TableSchema, oldName, newName string) {
	idx := slices.Index(tbl.PrimaryKeys, oldName)
	if idx >= 0 {
		tbl.PrimaryKeys[idx] = newName
	}
}

func toSchemaColumn(col ddl.Column) (schema.Column, error) {
	dataType, opts, err := schema.ParseColumnDataType(strings.ToLower(col.DataType))
	if err != nil {
		return schema.Column{}, fmt.Errorf("failed to parse data type for column %s: %w", col.Name, err)
	}
	return schema.Column{Name: col.Name, Type: dataType, Opts: opts}, nil
}

func insertColumn(cols []schema.Column, col schema.Column, position ddl.Position) []schema.Column {
	switch p := position.(type) {
	case ddl.FirstPosition:
		return slices.Insert(cols, 0, col)
	case ddl.AfterPosition:
		idx := slices.IndexFunc(cols, func(c schema.Column) bool { return c.Name == p.Column() })
		if idx < 0 {
			return append(cols, col)
		}
		return slices.Insert(cols, idx+1, col)
	default:
		return append(cols, col)
	}
}
