package ddl

import "strings"

// unescape strips the backticks MySQL uses to quote identifiers.
func unescape(s string) string {
	if strings.Count(s, "`") == 2 && strings.HasPrefix(s, "`") && strings.HasSuffix(s, "`") {
		return s[1 : len(s)-1]
	}

	return s
}

type Column struct {
	Name string
	// PreviousName is only set by a rename/change column event.
	PreviousName string
	DataType     string
	DefaultValue *string
	PrimaryKey   bool
	Position     Position
}

func (c Column) clean() Column {
	return Column{
		Name:         unescape(c.Name),
		PreviousName: unescape(c.PreviousName),
		DataType:     c.DataType,
		DefaultValue: c.DefaultValue,
		PrimaryKey:   c.PrimaryKey,
		Position:     c.Position,
	}
}

// Event is a single parsed DDL statement, in the vocabulary the schema tracker applies.
type Event interface {
	GetTable() string
	GetColumns() []Column
}

// Position describes where an added/moved column lands relative to its siblings.
type Position interface {
	Kind() string
}

type FirstPosition struct{}

func (FirstPosition) Kind() string { return "first" }

type AfterPosition struct {
	column string
}

func (a AfterPosition) Column() string { return unescape(a.column) }
func (AfterPosition) Kind() string     { return "after" }

type CreateTableEvent struct {
	TableName string
	Columns   []Column
}

func (c CreateTableEvent) GetTable() string { return unescape(c.TableName) }

func (c CreateTableEvent) GetColumns() []Column {
	cols := make([]Column, len(c.Columns))
	for i, col := range c.Columns {
		cols[i] = col.clean()
	}
	return cols
}

type DropTableEvent struct {
	TableName string
}

func (d DropTableEvent) GetTable() string    { return unescape(d.TableName) }
func (d DropTableEvent) GetColumns() []Column { return nil }

type AddColumnsEvent struct {
	TableName string
	Columns   []Column
}

func (a AddColumnsEvent) GetTable() string { return unescape(a.TableName) }

func (a AddColumnsEvent) GetColumns() []Column {
	cols := make([]Column, len(a.Columns))
	for i, col := range a.Columns {
		cols[i] = col.clean()
	}
	return cols
}

type DropColumnsEvent struct {
	TableName string
	Column    Column
}

func (d DropColumnsEvent) GetTable() string    { return unescape(d.TableName) }
func (d DropColumnsEvent) GetColumns() []Column { return []Column{d.Column.clean()} }

type ModifyColumnEvent struct {
	TableName string
	Column    Column
}

func (m ModifyColumnEvent) GetTable() string    { return unescape(m.TableName) }
func (m ModifyColumnEvent) GetColumns() []Column { return []Column{m.Column.clean()} }

type RenameColumnEvent struct {
	TableName string
	Column    Column
}

func (r RenameColumnEvent) GetTable() string    { return unescape(r.TableName) }
func (r RenameColumnEvent) GetColumns() []Column { return []Column{r.Column.clean()} }

type AddPrimaryKeyEvent struct {
	TableName string
	Columns   []Column
}

func (a AddPrimaryKeyEvent) GetTable() string { return unescape(a.TableName) }

func (a AddPrimaryKeyEvent) GetColumns() []Column {
	cols := make([]Column, len(a.Columns))
	for i, col := range a.Columns {
		cols[i] = col.clean()
	}
	return cols
}
