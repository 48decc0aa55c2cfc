package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artie-labs/reader/lib/mysql"
	"github.com/artie-labs/reader/lib/rdbms/primary_key"
	"github.com/artie-labs/reader/lib/rdbms/scan"
)

func buildAdapter(t *testing.T, table mysql.Table) mysqlAdapter {
	adapter, err := newMySQLAdapter(nil, table, scan.ScannerConfig{})
	assert.NoError(t, err)
	return adapter
}

func TestMySQLAdapter_TableName(t *testing.T) {
	table := mysql.Table{Name: "table1", PrimaryKeys: &primary_key.Keys{}}
	assert.Equal(t, "table1", buildAdapter(t, table).TableName())
}

func TestMySQLAdapter_TopicSuffix(t *testing.T) {
	type _tc struct {
		table    mysql.Table
		expected string
	}

	tcs := []_tc{
		{
			table:    mysql.Table{Name: "table1", PrimaryKeys: &primary_key.Keys{}},
			expected: "table1",
		},
		{
			table:    mysql.Table{Name: `"PublicStatus"`, PrimaryKeys: &primary_key.Keys{}},
			expected: "PublicStatus",
		},
	}

	for _, tc := range tcs {
		adapter := buildAdapter(t, tc.table)
		assert.Equal(t, tc.expected, adapter.TopicSuffix())
	}
}

func TestMySQLAdapter_PartitionKey(t *testing.T) {
	type _tc struct {
		name     string
		keys     []string
		row      map[string]any
		expected map[string]any
	}

	tcs := []_tc{
		{
			name:     "no primary keys",
			keys:     []string{},
			row:      map[string]any{},
			expected: map[string]any{},
		},
		{
			name:     "primary keys - empty row",
			keys:     []string{"foo", "bar"},
			row:      map[string]any{},
			expected: map[string]any{"foo": nil, "bar": nil},
		},
		{
			name:     "primary keys - row has data",
			keys:     []string{"foo", "bar"},
			row:      map[string]any{"foo": "a", "bar": 2, "baz": 3},
			expected: map[string]any{"foo": "a", "bar": 2},
		},
	}

	for _, tc := range tcs {
		keys := &primary_key.Keys{}
		for _, key := range tc.keys {
			keys.Upsert(key, nil, nil)
		}

		table := mysql.Table{Name: "tbl1", PrimaryKeys: keys}
		adapter := buildAdapter(t, table)
		assert.Equal(t, tc.expected, adapter.PartitionKey(tc.row), tc.name)
	}
}
