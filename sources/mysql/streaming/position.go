package streaming

import (
	"time"

	"github.com/go-mysql-org/go-mysql/mysql"
)

// offsetKey is the single key the position is persisted under; there is exactly one
// binlog stream per configured connector, so a map of one is simpler to reuse the
// existing yaml-backed PersistedMap than a bespoke single-value file format.
const offsetKey = "mysql_streaming_offset"

// Position is the resumable coordinate for the binlog stream. It is persisted to
// [config.MySQLStreamingSettings.OffsetFile] and re-read on the next run.
type Position struct {
	File       string `yaml:"file"`
	Pos        uint32 `yaml:"pos"`
	RowInEvent uint32 `yaml:"rowInEvent"`
	ServerID   uint32 `yaml:"serverId"`
	UnixTs     int64  `yaml:"unixTs"`
	GTIDSet    string `yaml:"gtidSet,omitempty"`
}

func (p Position) ToMySQLPosition() mysql.Position {
	return mysql.Position{Name: p.File, Pos: p.Pos}
}

// Cursor is the dispatcher's mutable view of stream progress. It is owned exclusively by
// the dispatcher's receiver goroutine: nothing else ever mutates it, and readers only ever
// see a copy taken via snapshot, so no locking is needed.
type Cursor struct {
	position Position
}

func NewCursor(initial Position) *Cursor {
	return &Cursor{position: initial}
}

// observeHeader records the timestamp and originating server id carried by every binlog
// event's header, regardless of event type.
func (c *Cursor) observeHeader(ts time.Time, serverID uint32) {
	c.position.UnixTs = ts.Unix()
	c.position.ServerID = serverID
}

// observeRotate updates the cursor to point at the start of a new binlog file. RowInEvent
// resets since row indices are only meaningful within the event that produced them.
func (c *Cursor) observeRotate(file string, pos uint64) {
	c.position.File = file
	c.position.Pos = uint32(pos)
	c.position.RowInEvent = 0
}

// observeNextPosition advances the cursor to the position the current event's header
// declares as the start of the next event, and resets RowInEvent for that next event.
func (c *Cursor) observeNextPosition(nextPos uint64) {
	if nextPos == 0 {
		return
	}
	c.position.Pos = uint32(nextPos)
	c.position.RowInEvent = 0
}

// observeGTID appends a completed GTID to the tracked set string.
func (c *Cursor) observeGTID(gtid string) {
	if gtid == "" {
		return
	}
	if c.position.GTIDSet == "" {
		c.position.GTIDSet = gtid
	} else {
		c.position.GTIDSet = c.position.GTIDSet + "," + gtid
	}
}

// advanceRow moves the row-in-event counter forward by one, used after emitting a create
// or delete record.
func (c *Cursor) advanceRow() {
	c.position.RowInEvent++
}

// pinRow sets the row-in-event counter to an explicit index, used by update handling where
// the row's position within the event is already known from the loop index.
func (c *Cursor) pinRow(rowIndex uint32) {
	c.position.RowInEvent = rowIndex
}

// snapshot returns a value copy of the current position, safe to hand to another
// goroutine (e.g. attached to an emitted ChangeRecord, or persisted on commit).
func (c *Cursor) snapshot() Position {
	return c.position
}
