package streaming

import (
	"errors"
	"time"

	"github.com/artie-labs/reader/lib"
)

// ErrSchemaParse wraps any failure to parse or apply a DDL statement observed on the
// binlog. Callers are expected to log and continue rather than abort the stream, since a
// single malformed statement (a dialect the parser doesn't cover, a dropped CREATE TABLE
// ... LIKE) should not bring down an otherwise healthy replication feed.
var ErrSchemaParse = errors.New("schema parse error")

// Op identifies the kind of change a ChangeRecord represents.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpDDL    Op = "ddl"
)

// TableID identifies a table by its logical (database, table) name, stable across
// TABLE_MAP table-number reassignments and binlog file rotations.
type TableID struct {
	Database string
	Table    string
}

func (t TableID) String() string {
	return t.Database + "." + t.Table
}

// ChangeRecord is one emitted unit of change: a row create/update/delete, or a schema
// change. Before/After are only populated for row changes; Message carries the fully
// built wire payload that the downstream writer actually ships.
type ChangeRecord struct {
	Op             Op
	TableID        string
	Before         map[string]any
	After          map[string]any
	Ts             time.Time
	SourcePosition Position
	Message        lib.RawMessage
}
