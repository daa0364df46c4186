// Package recordsource serves list view records from a SQL database. It
// implements listview.RecordService for one configured view.
package recordsource

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/golistview/internal/config"
	"github.com/dbsmedya/golistview/internal/database"
	"github.com/dbsmedya/golistview/internal/listview"
	"github.com/dbsmedya/golistview/internal/logger"
	"github.com/dbsmedya/golistview/internal/sqlutil"
	"github.com/dbsmedya/golistview/internal/types"
)

var _ listview.RecordService = (*Source)(nil)

// Source reads and deletes the records of one view.
type Source struct {
	db        *sql.DB
	driver    string
	schema    string // MySQL schema, empty for the connection default
	view      *config.ViewConfig
	batchSize int
	logger    *logger.Logger
}

// New creates a Source over an open connection.
func New(db *sql.DB, driver, schema string, view *config.ViewConfig, batchSize int, log *logger.Logger) (*Source, error) {
	if db == nil {
		return nil, fmt.Errorf("database is nil")
	}
	if view == nil {
		return nil, fmt.Errorf("view is nil")
	}
	if driver == "" {
		driver = database.DriverMySQL
	}
	if driver != database.DriverMySQL && driver != database.DriverSQLite {
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
	if log == nil {
		log = logger.NewDefault()
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	return &Source{
		db:        db,
		driver:    driver,
		schema:    schema,
		view:      view,
		batchSize: batchSize,
		logger:    log,
	}, nil
}

// checkObject rejects requests for an object other than the view's.
func (s *Source) checkObject(objectType string) error {
	if !strings.EqualFold(objectType, s.view.ObjectType) {
		return fmt.Errorf("object type %q is not served by this view (expected %q)", objectType, s.view.ObjectType)
	}
	return nil
}

// selectColumn is one entry of the SELECT list.
type selectColumn struct {
	expr  string
	alias string
}

// BuildSelect renders the record query. Dotted fields are read through a
// LEFT JOIN on their configured relation and returned under the dotted
// path as column alias. Fields whose relation is not configured, or that
// go deeper than one relation, are skipped with a warning.
func (s *Source) BuildSelect(q listview.Query) (string, []interface{}, error) {
	table := s.view.TableName()
	idField := s.view.IDField()
	relField := q.RelationshipField
	if relField == "" {
		relField = s.view.RelationshipField
	}

	for _, name := range []string{table, idField, relField} {
		if !sqlutil.IsValidIdentifier(name) {
			return "", nil, &sqlutil.InvalidIdentifierError{Name: name}
		}
	}

	columns := orderedmap.NewOrderedMap[string, selectColumn]()
	joins := orderedmap.NewOrderedMap[string, *config.Relation]()

	columns.Set(strings.ToLower(idField), selectColumn{
		expr:  sqlutil.QuoteQualified(table, idField),
		alias: idField,
	})

	for _, field := range q.Fields {
		if !sqlutil.IsValidFieldPath(field) {
			return "", nil, &sqlutil.InvalidIdentifierError{Name: field}
		}
		key := strings.ToLower(field)
		if _, seen := columns.Get(key); seen {
			continue
		}

		parts := strings.Split(field, ".")
		switch len(parts) {
		case 1:
			columns.Set(key, selectColumn{
				expr:  sqlutil.QuoteQualified(table, field),
				alias: field,
			})
		case 2:
			rel, ok := s.view.RelationNamed(parts[0])
			if !ok {
				s.logger.Warnw("Skipping field with unconfigured relation", "field", field, "relation", parts[0])
				continue
			}
			if err := validateRelation(rel); err != nil {
				return "", nil, err
			}
			joins.Set(strings.ToLower(rel.Name), rel)
			columns.Set(key, selectColumn{
				expr:  sqlutil.QuoteQualified(rel.Name, parts[1]),
				alias: field,
			})
		default:
			s.logger.Warnw("Skipping field nested deeper than one relation", "field", field)
		}
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	for i, key := range columns.Keys() {
		col, _ := columns.Get(key)
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(col.expr + " AS " + sqlutil.QuoteIdentifier(col.alias))
	}
	b.WriteString(" FROM " + sqlutil.QuoteIdentifier(table))
	for _, key := range joins.Keys() {
		rel, _ := joins.Get(key)
		fmt.Fprintf(&b, " LEFT JOIN %s AS %s ON %s = %s",
			sqlutil.QuoteIdentifier(rel.Table),
			sqlutil.QuoteIdentifier(rel.Name),
			sqlutil.QuoteQualified(rel.Name, rel.RelatedKey()),
			sqlutil.QuoteQualified(table, rel.ForeignKey),
		)
	}
	fmt.Fprintf(&b, " WHERE %s = ? ORDER BY %s",
		sqlutil.QuoteQualified(table, relField),
		sqlutil.QuoteQualified(table, idField),
	)

	return b.String(), []interface{}{q.ParentID}, nil
}

func validateRelation(rel *config.Relation) error {
	for _, name := range []string{rel.Name, rel.Table, rel.ForeignKey, rel.RelatedKey()} {
		if !sqlutil.IsValidIdentifier(name) {
			return &sqlutil.InvalidIdentifierError{Name: name}
		}
	}
	return nil
}

// FetchRecords returns the child records of q.ParentID. Related values come
// back nested under their relation name, e.g. {"Account": {"Name": "Acme"}}.
func (s *Source) FetchRecords(ctx context.Context, q listview.Query) ([]types.Record, error) {
	if err := s.checkObject(q.ObjectType); err != nil {
		return nil, err
	}

	query, args, err := s.BuildSelect(q)
	if err != nil {
		return nil, fmt.Errorf("failed to build record query: %w", err)
	}
	s.logger.Debugw("Fetching records", "query", query, "parent", q.ParentID)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var records []types.Record
	for rows.Next() {
		values := make([]interface{}, len(names))
		ptrs := make([]interface{}, len(names))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, buildRecord(names, values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	s.logger.Debugf("Fetched %d %s records", len(records), s.view.ObjectType)
	return records, nil
}

// buildRecord nests "Relation.Field" columns under their relation. A plain
// column with the relation's name wins over the nested values.
func buildRecord(names []string, values []interface{}) types.Record {
	rec := make(types.Record, len(names))
	plain := make(map[string]bool, len(names))
	for _, name := range names {
		if !strings.Contains(name, ".") {
			plain[name] = true
		}
	}

	for i, name := range names {
		v := types.ScanValue(values[i])
		relName, field, dotted := strings.Cut(name, ".")
		if !dotted {
			rec[name] = v
			continue
		}
		if plain[relName] {
			continue
		}
		rel, ok := rec[relName].(types.Record)
		if !ok {
			rel = types.Record{}
			rec[relName] = rel
		}
		rel[field] = v
	}
	return rec
}
