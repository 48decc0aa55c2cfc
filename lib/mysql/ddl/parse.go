package ddl

import (
	"fmt"
	"regexp"
	"strings"
)

// Parse splits a (possibly multi-statement) DDL string into individual statements and
// parses each into zero or more [Event]s. Unsupported statement shapes are skipped rather
// than failing the whole batch, mirroring the teacher's "skip and log" posture for DDL it
// doesn't recognize yet.
func Parse(sql string) ([]Event, error) {
	var events []Event
	for _, stmt := range splitTopLevel(sql, ';') {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		stmtEvents, err := parseStatement(stmt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse statement %q: %w", stmt, err)
		}

		events = append(events, stmtEvents...)
	}

	return events, nil
}

var (
	createTableRe = regexp.MustCompile(`(?is)^CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?(\S+)\s*\((.*)\)\s*[^)]*$`)
	createLikeRe  = regexp.MustCompile(`(?is)^CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?(\S+)\s+LIKE\s+\S+`)
	dropTableRe   = regexp.MustCompile(`(?is)^DROP\s+TABLE\s+(?:IF\s+EXISTS\s+)?(.+)$`)
	alterTableRe  = regexp.MustCompile(`(?is)^ALTER\s+TABLE\s+(\S+)\s+(.+)$`)
)

func parseStatement(stmt string) ([]Event, error) {
	switch {
	case createLikeRe.MatchString(stmt):
		// CREATE TABLE ... LIKE ... is not supported: we have no visibility into the
		// source table's columns here, so there is nothing to apply.
		return nil, nil
	case createTableRe.MatchString(stmt):
		m := createTableRe.FindStringSubmatch(stmt)
		return parseCreateTable(m[1], m[2])
	case dropTableRe.MatchString(stmt):
		m := dropTableRe.FindStringSubmatch(stmt)
		return parseDropTable(m[1])
	case alterTableRe.MatchString(stmt):
		m := alterTableRe.FindStringSubmatch(stmt)
		return parseAlterTable(m[1], m[2])
	default:
		return nil, nil
	}
}

func parseCreateTable(tableName, body string) ([]Event, error) {
	var columns []Column
	for _, part := range splitTopLevel(body, ',') {
		part = strings.TrimSpace(part)
		if part == "" || isTableConstraint(part) {
			continue
		}

		col, err := parseColumnDefinition(part)
		if err != nil {
			return nil, fmt.Errorf("failed to parse column definition %q: %w", part, err)
		}

		columns = append(columns, col)
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("failed to extract columns")
	}

	return []Event{CreateTableEvent{TableName: tableName, Columns: columns}}, nil
}

var tableConstraintRe = regexp.MustCompile(`(?i)^(PRIMARY\s+KEY|UNIQUE|KEY|INDEX|CONSTRAINT|FOREIGN\s+KEY)\b`)

func isTableConstraint(part string) bool {
	return tableConstraintRe.MatchString(part)
}

func parseDropTable(rest string) ([]Event, error) {
	var events []Event
	for _, name := range splitTopLevel(rest, ',') {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		events = append(events, DropTableEvent{TableName: name})
	}

	if len(events) == 0 {
		return nil, fmt.Errorf("failed to extract table names")
	}

	return events, nil
}

var (
	addColumnsParenRe = regexp.MustCompile(`(?is)^ADD\s+(?:COLUMN\s+)?\((.*)\)$`)
	addColumnRe       = regexp.MustCompile(`(?is)^ADD\s+(?:COLUMN\s+)?(.+)$`)
	dropColumnRe      = regexp.MustCompile(`(?is)^DROP\s+(?:COLUMN\s+)?(\S+)$`)
	addPrimaryKeyRe   = regexp.MustCompile(`(?is)^ADD\s+PRIMARY\s+KEY\s*\(([^)]*)\)$`)
	renameColumnRe    = regexp.MustCompile(`(?is)^RENAME\s+COLUMN\s+(\S+)\s+TO\s+(\S+)$`)
	modifyColumnRe    = regexp.MustCompile(`(?is)^MODIFY\s+(?:COLUMN\s+)?(.+)$`)
	changeColumnRe    = regexp.MustCompile(`(?is)^CHANGE\s+(?:COLUMN\s+)?(\S+)\s+(.+)$`)
)

func parseAlterTable(tableName, rest string) ([]Event, error) {
	var events []Event
	for _, spec := range splitTopLevel(rest, ',') {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}

		event, err := parseAlterSpecification(tableName, spec)
		if err != nil {
			return nil, err
		}
		if event != nil {
			events = append(events, event)
		}
	}

	return events, nil
}

func parseAlterSpecification(tableName, spec string) (Event, error) {
	switch {
	case addColumnsParenRe.MatchString(spec):
		m := addColumnsParenRe.FindStringSubmatch(spec)
		var cols []Column
		for _, part := range splitTopLevel(m[1], ',') {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			col, err := parseColumnDefinition(part)
			if err != nil {
				return nil, fmt.Errorf("failed to parse added column %q: %w", part, err)
			}
			cols = append(cols, col)
		}
		return AddColumnsEvent{TableName: tableName, Columns: cols}, nil

	case addPrimaryKeyRe.MatchString(spec):
		m := addPrimaryKeyRe.FindStringSubmatch(spec)
		var cols []Column
		for _, name := range splitTopLevel(m[1], ',') {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			cols = append(cols, Column{Name: name, PrimaryKey: true})
		}
		return AddPrimaryKeyEvent{TableName: tableName, Columns: cols}, nil

	case renameColumnRe.MatchString(spec):
		m := renameColumnRe.FindStringSubmatch(spec)
		return RenameColumnEvent{TableName: tableName, Column: Column{Name: m[2], PreviousName: m[1]}}, nil

	case dropColumnRe.MatchString(spec):
		m := dropColumnRe.FindStringSubmatch(spec)
		return DropColumnsEvent{TableName: tableName, Column: Column{Name: m[1]}}, nil

	case changeColumnRe.MatchString(spec):
		m := changeColumnRe.FindStringSubmatch(spec)
		col, err := parseColumnDefinition(m[2])
		if err != nil {
			return nil, fmt.Errorf("failed to parse changed column %q: %w", m[2], err)
		}
		col.PreviousName = m[1]
		return ModifyColumnEvent{TableName: tableName, Column: col}, nil

	case addColumnRe.MatchString(spec):
		m := addColumnRe.FindStringSubmatch(spec)
		col, err := parseColumnDefinition(m[1])
		if err != nil {
			return nil, fmt.Errorf("failed to parse added column %q: %w", m[1], err)
		}
		return AddColumnsEvent{TableName: tableName, Columns: []Column{col}}, nil

	case modifyColumnRe.MatchString(spec):
		m := modifyColumnRe.FindStringSubmatch(spec)
		col, err := parseColumnDefinition(m[1])
		if err != nil {
			return nil, fmt.Errorf("failed to parse modified column %q: %w", m[1], err)
		}
		return ModifyColumnEvent{TableName: tableName, Column: col}, nil

	default:
		// Unsupported alter specification (e.g. ADD INDEX, ENGINE=...); skip it.
		return nil, nil
	}
}

var (
	firstSuffixRe  = regexp.MustCompile(`(?i)\s+FIRST\s*$`)
	afterSuffixRe  = regexp.MustCompile(`(?i)\s+AFTER\s+(\S+)\s*$`)
	columnHeadRe   = regexp.MustCompile(`(?s)^(` + "`[^`]+`" + `|\S+)\s+(.+)$`)
	dataTypeRe     = regexp.MustCompile(`(?is)^([A-Za-z_][A-Za-z0-9_]*(?:\s*\([^)]*\))?)`)
	primaryKeyRe   = regexp.MustCompile(`(?i)\bPRIMARY\s+KEY\b`)
	defaultValueRe = regexp.MustCompile(`(?is)\bDEFAULT\s+('(?:[^']|'')*'|[A-Za-z0-9_.+-]+)`)
	computedDefault = regexp.MustCompile(`(?i)^(CURRENT_TIMESTAMP|NOW|LOCALTIME|LOCALTIMESTAMP|NULL)`)
)

// parseColumnDefinition parses a single `name TYPE [modifiers...]` column definition, as it
// appears inside CREATE TABLE, ADD COLUMN, MODIFY COLUMN and CHANGE COLUMN.
func parseColumnDefinition(def string) (Column, error) {
	def = strings.TrimSpace(def)

	var position Position
	if after := afterSuffixRe.FindStringSubmatch(def); after != nil {
		position = AfterPosition{column: after[1]}
		def = afterSuffixRe.ReplaceAllString(def, "")
	} else if firstSuffixRe.MatchString(def) {
		position = FirstPosition{}
		def = firstSuffixRe.ReplaceAllString(def, "")
	}

	m := columnHeadRe.FindStringSubmatch(def)
	if m == nil {
		return Column{}, fmt.Errorf("unable to split column name from definition")
	}

	name := m[1]
	rest := strings.TrimSpace(m[2])

	typeMatch := dataTypeRe.FindString(rest)
	if typeMatch == "" {
		return Column{}, fmt.Errorf("unable to extract data type")
	}
	dataType := normalizeDataType(typeMatch)

	col := Column{
		Name:       name,
		DataType:   dataType,
		PrimaryKey: primaryKeyRe.MatchString(rest),
		Position:   position,
	}

	if dv := defaultValueRe.FindStringSubmatch(rest); dv != nil {
		raw := dv[1]
		if !computedDefault.MatchString(raw) {
			unquoted := strings.TrimSuffix(strings.TrimPrefix(raw, "'"), "'")
			unquoted = strings.ReplaceAll(unquoted, "''", "'")
			col.DefaultValue = &unquoted
		}
	}

	return col, nil
}

func normalizeDataType(s string) string {
	s = strings.TrimSpace(s)
	// Collapse "VARCHAR (255)" into "VARCHAR(255)" to match the server's canonical form.
	s = regexp.MustCompile(`\s*\(\s*`).ReplaceAllString(s, "(")
	s = regexp.MustCompile(`\s*\)\s*`).ReplaceAllString(s, ")")
	return strings.ToUpper(s)
}

// splitTopLevel splits s on sep, ignoring occurrences of sep inside parentheses or quotes.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	var depth int
	var inSingle, inBacktick bool
	start := 0

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'' && !inBacktick:
			inSingle = !inSingle
		case c == '`' && !inSingle:
			inBacktick = !inBacktick
		case inSingle || inBacktick:
			// inside a quoted section, ignore structural characters
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case c == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])

	return parts
}
