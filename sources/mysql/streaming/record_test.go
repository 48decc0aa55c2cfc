package streaming

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artie-labs/reader/lib/mysql/schema"
)

func newTestEmitter(t *testing.T) *tableEmitter {
	t.Helper()
	intType, _, err := schema.ParseColumnDataType("int")
	require.NoError(t, err)
	varcharType, opts, err := schema.ParseColumnDataType("varchar(64)")
	require.NoError(t, err)

	emitter, err := newTableEmitter(
		TableID{Database: "db", Table: "users"},
		[]schema.Column{
			{Name: "id", Type: intType},
			{Name: "name", Type: varcharType, Opts: opts},
		},
		[]string{"id"},
	)
	require.NoError(t, err)
	return emitter
}

func TestRecordMaker_CreateEach(t *testing.T) {
	queue := NewQueue(10, nil)
	cursor := NewCursor(Position{})
	maker := NewRecordMaker(cursor, queue)
	emitter := newTestEmitter(t)

	count, err := maker.createEach(context.Background(), emitter, [][]any{{int64(1), "alice"}, {int64(2), "bob"}}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, uint32(2), cursor.snapshot().RowInEvent)

	batch, _ := queue.DrainBatch(10, time.Millisecond)
	require.Len(t, batch, 2)
	assert.Equal(t, OpCreate, batch[0].Op)
	assert.Nil(t, batch[0].Before)
	assert.Equal(t, "bob", batch[1].After["name"])
}

func TestRecordMaker_DeleteEach(t *testing.T) {
	queue := NewQueue(10, nil)
	cursor := NewCursor(Position{})
	maker := NewRecordMaker(cursor, queue)
	emitter := newTestEmitter(t)

	count, err := maker.deleteEach(context.Background(), emitter, [][]any{{int64(1), "alice"}}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	batch, _ := queue.DrainBatch(10, time.Millisecond)
	require.Len(t, batch, 1)
	assert.Equal(t, OpDelete, batch[0].Op)
	assert.Nil(t, batch[0].After)
	assert.Equal(t, "alice", batch[0].Before["name"])
}

func TestRecordMaker_Update_PinsRowIndexBeforeEmitting(t *testing.T) {
	queue := NewQueue(10, nil)
	cursor := NewCursor(Position{})
	maker := NewRecordMaker(cursor, queue)
	emitter := newTestEmitter(t)

	err := maker.update(context.Background(), emitter, []any{int64(1), "alice"}, []any{int64(1), "alicia"}, time.Now(), 3)
	require.NoError(t, err)

	batch, _ := queue.DrainBatch(10, time.Millisecond)
	require.Len(t, batch, 1)
	assert.Equal(t, OpUpdate, batch[0].Op)
	assert.Equal(t, "alice", batch[0].Before["name"])
	assert.Equal(t, "alicia", batch[0].After["name"])
	assert.Equal(t, uint32(3), batch[0].SourcePosition.RowInEvent, "the record's source position reflects the pinned row index")
}

func TestRecordMaker_SchemaChange(t *testing.T) {
	queue := NewQueue(10, nil)
	cursor := NewCursor(Position{})
	maker := NewRecordMaker(cursor, queue)

	entry := SchemaHistoryEntry{Database: "db", Statement: "ALTER TABLE users ADD COLUMN age int", UnixTs: 100}
	err := maker.schemaChange(context.Background(), "db", entry, time.Now())
	require.NoError(t, err)

	batch, _ := queue.DrainBatch(10, time.Millisecond)
	require.Len(t, batch, 1)
	assert.Equal(t, OpDDL, batch[0].Op)
	assert.Equal(t, "db", batch[0].TableID)
}
