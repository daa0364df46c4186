package recordsource

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dbsmedya/golistview/internal/database"
	"github.com/dbsmedya/golistview/internal/sqlutil"
	"github.com/dbsmedya/golistview/internal/types"
)

// Field types reported for table columns.
const (
	TypeString        = "string"
	TypeTextArea      = "textarea"
	TypeInt           = "int"
	TypeDouble        = "double"
	TypeBoolean       = "boolean"
	TypeDate          = "date"
	TypeDateTime      = "datetime"
	TypeTime          = "time"
	TypeMultiPicklist = "multipicklist"
)

// column is one described table column.
type column struct {
	Name       string
	DataType   string // mysql DATA_TYPE or sqlite declared type
	ColumnType string // mysql COLUMN_TYPE, e.g. enum('a','b')
}

// describe lists the view table's columns in ordinal order.
func (s *Source) describe(ctx context.Context) ([]column, error) {
	table := s.view.TableName()
	if s.driver == database.DriverSQLite {
		return s.describeSQLite(ctx, table)
	}
	return s.describeMySQL(ctx, table)
}

func (s *Source) describeMySQL(ctx context.Context, table string) ([]column, error) {
	const query = `
		SELECT COLUMN_NAME, DATA_TYPE, COLUMN_TYPE
		FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = COALESCE(NULLIF(?, ''), DATABASE())
		AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION`

	rows, err := s.db.QueryContext(ctx, query, s.schema, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	var cols []column
	for rows.Next() {
		var c column
		if err := rows.Scan(&c.Name, &c.DataType, &c.ColumnType); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %q not found", table)
	}
	return cols, nil
}

func (s *Source) describeSQLite(ctx context.Context, table string) ([]column, error) {
	quoted, err := sqlutil.QuoteIdentifierSafe(table)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "PRAGMA table_info("+quoted+")")
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	var cols []column
	for rows.Next() {
		var (
			cid      int
			name     string
			declType string
			notNull  int
			dflt     interface{}
			pk       int
		)
		if err := rows.Scan(&cid, &name, &declType, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		cols = append(cols, column{Name: name, DataType: declType, ColumnType: declType})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %q not found", table)
	}
	return cols, nil
}

// FetchFieldTypes maps every column of the view table to a field type.
// Columns listed under the view's picklists are reported as picklists.
func (s *Source) FetchFieldTypes(ctx context.Context, objectType string) (types.FieldTypeMap, error) {
	if err := s.checkObject(objectType); err != nil {
		return nil, err
	}

	cols, err := s.describe(ctx)
	if err != nil {
		return nil, err
	}

	fieldTypes := make(types.FieldTypeMap, len(cols))
	for _, c := range cols {
		if s.driver == database.DriverSQLite {
			fieldTypes[c.Name] = sqliteFieldType(c.DataType)
		} else {
			fieldTypes[c.Name] = mysqlFieldType(c.DataType, c.ColumnType)
		}
	}
	for name := range s.view.Picklists {
		fieldTypes[columnKey(fieldTypes, name)] = types.PicklistType
	}

	s.logger.Debugw("Described field types", "object", objectType, "fields", len(fieldTypes))
	return fieldTypes, nil
}

// FetchPicklistValues returns the allowed values of every picklist column:
// MySQL enum columns first, in column order, then configured picklists by
// name. A configured list replaces the enum values of the same column.
func (s *Source) FetchPicklistValues(ctx context.Context, objectType string) ([]types.PicklistField, error) {
	if err := s.checkObject(objectType); err != nil {
		return nil, err
	}

	var out []types.PicklistField
	used := make(map[string]bool)

	if s.driver == database.DriverMySQL {
		cols, err := s.describe(ctx)
		if err != nil {
			return nil, err
		}
		for _, c := range cols {
			if !strings.EqualFold(c.DataType, "enum") {
				continue
			}
			values := parseEnumValues(c.ColumnType)
			if configured, ok := s.configuredPicklist(c.Name); ok {
				values = configured
			}
			used[strings.ToLower(c.Name)] = true
			out = append(out, types.PicklistField{FieldAPIName: c.Name, Values: values})
		}
	}

	names := make([]string, 0, len(s.view.Picklists))
	for name := range s.view.Picklists {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if used[strings.ToLower(name)] {
			continue
		}
		out = append(out, types.PicklistField{FieldAPIName: name, Values: s.view.Picklists[name]})
	}

	return out, nil
}

// columnKey returns the described column matching name case-insensitively,
// or name itself. Config keys arrive lower-cased.
func columnKey(fieldTypes types.FieldTypeMap, name string) string {
	for col := range fieldTypes {
		if strings.EqualFold(col, name) {
			return col
		}
	}
	return name
}

func (s *Source) configuredPicklist(name string) ([]string, bool) {
	for k, v := range s.view.Picklists {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

// mysqlFieldType maps information_schema types to field types.
func mysqlFieldType(dataType, columnType string) string {
	switch strings.ToLower(dataType) {
	case "enum":
		return types.PicklistType
	case "set":
		return TypeMultiPicklist
	case "tinyint":
		if strings.EqualFold(columnType, "tinyint(1)") {
			return TypeBoolean
		}
		return TypeInt
	case "smallint", "mediumint", "int", "integer", "bigint":
		return TypeInt
	case "decimal", "numeric", "float", "double":
		return TypeDouble
	case "date":
		return TypeDate
	case "datetime", "timestamp":
		return TypeDateTime
	case "time":
		return TypeTime
	case "text", "mediumtext", "longtext":
		return TypeTextArea
	default:
		return TypeString
	}
}

// sqliteFieldType maps a declared column type by SQLite's affinity rules.
func sqliteFieldType(declType string) string {
	t := strings.ToUpper(declType)
	switch {
	case strings.Contains(t, "BOOL"):
		return TypeBoolean
	case strings.Contains(t, "INT"):
		return TypeInt
	case strings.Contains(t, "DATETIME"), strings.Contains(t, "TIMESTAMP"):
		return TypeDateTime
	case strings.Contains(t, "DATE"):
		return TypeDate
	case strings.Contains(t, "REAL"), strings.Contains(t, "FLOA"), strings.Contains(t, "DOUB"),
		strings.Contains(t, "DECIMAL"), strings.Contains(t, "NUMERIC"):
		return TypeDouble
	default:
		return TypeString
	}
}

// parseEnumValues extracts the members of enum('a','b') or set('a','b').
// Quotes inside a member are doubled ('') or backslash escaped.
func parseEnumValues(columnType string) []string {
	open := strings.IndexByte(columnType, '(')
	end := strings.LastIndexByte(columnType, ')')
	if open < 0 || end <= open {
		return nil
	}
	body := columnType[open+1 : end]

	var (
		values  []string
		current strings.Builder
		inQuote bool
	)
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if !inQuote {
			if ch == '\'' {
				inQuote = true
				current.Reset()
			}
			continue
		}
		switch {
		case ch == '\\' && i+1 < len(body):
			i++
			current.WriteByte(body[i])
		case ch == '\'' && i+1 < len(body) && body[i+1] == '\'':
			i++
			current.WriteByte('\'')
		case ch == '\'':
			inQuote = false
			values = append(values, current.String())
		default:
			current.WriteByte(ch)
		}
	}
	return values
}
