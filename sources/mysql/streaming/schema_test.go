package streaming

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artie-labs/reader/lib/mysql/ddl"
	"github.com/artie-labs/reader/lib/mysql/schema"
)

func columnNames(tbl *TableSchema) []string {
	names := make([]string, len(tbl.Columns))
	for i, col := range tbl.Columns {
		names[i] = col.Name
	}
	return names
}

func TestSchemaTracker_ApplyDDL_CreateTable(t *testing.T) {
	tracker := NewSchemaTracker(nil)

	_, err := tracker.ApplyDDL("db", "CREATE TABLE orders (id int primary key, customer_id int, total decimal(10,2))", time.Now())
	require.NoError(t, err)

	tbl, isOk := tracker.Get(TableID{Database: "db", Table: "orders"})
	require.True(t, isOk)
	assert.Equal(t, []string{"id", "customer_id", "total"}, columnNames(tbl))
	assert.Equal(t, []string{"id"}, tbl.PrimaryKeys)
}

func TestSchemaTracker_ApplyDDL_AddColumn(t *testing.T) {
	tracker := NewSchemaTracker(nil)
	_, err := tracker.ApplyDDL("db", "CREATE TABLE orders (id int primary key, total decimal(10,2))", time.Now())
	require.NoError(t, err)

	_, err = tracker.ApplyDDL("db", "ALTER TABLE orders ADD COLUMN status varchar(32) AFTER id", time.Now())
	require.NoError(t, err)

	tbl, isOk := tracker.Get(TableID{Database: "db", Table: "orders"})
	require.True(t, isOk)
	assert.Equal(t, []string{"id", "status", "total"}, columnNames(tbl))
}

func TestSchemaTracker_ApplyDDL_DropColumn(t *testing.T) {
	tracker := NewSchemaTracker(nil)
	_, err := tracker.ApplyDDL("db", "CREATE TABLE orders (id int primary key, status varchar(32), total decimal(10,2))", time.Now())
	require.NoError(t, err)

	_, err = tracker.ApplyDDL("db", "ALTER TABLE orders DROP COLUMN status", time.Now())
	require.NoError(t, err)

	tbl, isOk := tracker.Get(TableID{Database: "db", Table: "orders"})
	require.True(t, isOk)
	assert.Equal(t, []string{"id", "total"}, columnNames(tbl))
}

func TestSchemaTracker_ApplyDDL_RenameColumn(t *testing.T) {
	tracker := NewSchemaTracker(nil)
	_, err := tracker.ApplyDDL("db", "CREATE TABLE orders (id int primary key, total decimal(10,2))", time.Now())
	require.NoError(t, err)

	_, err = tracker.ApplyDDL("db", "ALTER TABLE orders RENAME COLUMN total TO grand_total", time.Now())
	require.NoError(t, err)

	tbl, isOk := tracker.Get(TableID{Database: "db", Table: "orders"})
	require.True(t, isOk)
	assert.Equal(t, []string{"id", "grand_total"}, columnNames(tbl))
	assert.Equal(t, []string{"id"}, tbl.PrimaryKeys)
}

func TestSchemaTracker_ApplyDDL_RenamePrimaryKeyColumn(t *testing.T) {
	tracker := NewSchemaTracker(nil)
	_, err := tracker.ApplyDDL("db", "CREATE TABLE orders (id int primary key, total decimal(10,2))", time.Now())
	require.NoError(t, err)

	_, err = tracker.ApplyDDL("db", "ALTER TABLE orders RENAME COLUMN id TO order_id", time.Now())
	require.NoError(t, err)

	tbl, isOk := tracker.Get(TableID{Database: "db", Table: "orders"})
	require.True(t, isOk)
	assert.Equal(t, []string{"order_id"}, tbl.PrimaryKeys, "renaming a primary key column keeps it tracked as a primary key under the new name")
}

func TestSchemaTracker_ApplyDDL_AddPrimaryKey(t *testing.T) {
	tracker := NewSchemaTracker(nil)
	_, err := tracker.ApplyDDL("db", "CREATE TABLE link_table (left_id int, right_id int)", time.Now())
	require.NoError(t, err)

	_, err = tracker.ApplyDDL("db", "ALTER TABLE link_table ADD PRIMARY KEY (left_id, right_id)", time.Now())
	require.NoError(t, err)

	tbl, isOk := tracker.Get(TableID{Database: "db", Table: "link_table"})
	require.True(t, isOk)
	assert.Equal(t, []string{"left_id", "right_id"}, tbl.PrimaryKeys)
}

func TestSchemaTracker_ApplyDDL_DropTable(t *testing.T) {
	tracker := NewSchemaTracker(nil)
	_, err := tracker.ApplyDDL("db", "CREATE TABLE orders (id int primary key)", time.Now())
	require.NoError(t, err)

	_, err = tracker.ApplyDDL("db", "DROP TABLE orders", time.Now())
	require.NoError(t, err)

	_, isOk := tracker.Get(TableID{Database: "db", Table: "orders"})
	assert.False(t, isOk)
}

func TestSchemaTracker_ApplyDDL_UnknownColumn_LeavesSnapshotUntouched(t *testing.T) {
	tracker := NewSchemaTracker(nil)
	_, err := tracker.ApplyDDL("db", "CREATE TABLE orders (id int primary key, total decimal(10,2))", time.Now())
	require.NoError(t, err)

	_, err = tracker.ApplyDDL("db", "ALTER TABLE orders DROP COLUMN nonexistent", time.Now())
	assert.Error(t, err)

	tbl, isOk := tracker.Get(TableID{Database: "db", Table: "orders"})
	require.True(t, isOk)
	assert.Equal(t, []string{"id", "total"}, columnNames(tbl), "a failed statement must not leave the snapshot half-updated")
}

func TestSchemaTracker_ApplyDDL_NoMatchingStatement_IsANoOp(t *testing.T) {
	tracker := NewSchemaTracker(nil)

	entry, err := tracker.ApplyDDL("db", "ALTER TABLE orders ENGINE=InnoDB", time.Now())
	assert.NoError(t, err)
	assert.Nil(t, entry)
}

func TestInsertColumn_FirstPosition(t *testing.T) {
	cols := []schema.Column{{Name: "a"}, {Name: "b"}}
	result := insertColumn(cols, schema.Column{Name: "z"}, ddl.FirstPosition{})

	names := make([]string, len(result))
	for i, c := range result {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"z", "a", "b"}, names)
}
