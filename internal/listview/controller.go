// Package listview implements the data pipeline of a related-record list:
// records are flattened, filtered, paginated and selected in memory, while
// fetching, deleting, navigation and notifications are delegated to
// injected collaborators.
//
// A Controller is driven by discrete events (load results, user actions) and
// is not safe for concurrent use.
package listview

import (
	"context"
	"fmt"
	"strings"

	"github.com/dbsmedya/golistview/internal/logger"
	"github.com/dbsmedya/golistview/internal/types"
)

// Options configure a Controller.
type Options struct {
	RecordID          string   // parent record id
	ObjectType        string   // child object shown in the list
	Fields            []string // requested field paths
	FieldList         string   // comma separated alternative to Fields
	RelationshipField string   // child field pointing at the parent
	IDField           string   // defaults to "Id"
	PageSize          int      // defaults to 10
	URLTemplate       string   // defaults to the record view URL
}

// Controller holds the state of one list view.
type Controller struct {
	recordID          string
	objectType        string
	fields            []string
	relationshipField string
	idField           string
	urlTemplate       string
	pageSize          int

	service   RecordService
	navigator Navigator
	notifier  Notifier
	confirmer Confirmer
	log       *logger.Logger
	sessionID string

	records          []types.Record
	filteredRecords  []types.Record
	paginatedRecords []types.Record
	columns          []ColumnDef
	fieldTypes       types.FieldTypeMap
	picklistOptions  map[string][]types.Option
	appliedFilters   []Filter
	selection        *selectionSet

	currentPage  int
	totalPages   int
	totalRecords int
}

// New creates a Controller. Columns are generated from the field list right
// away; records arrive through Load or the On*Loaded handlers.
func New(opts Options, deps Dependencies, log *logger.Logger) (*Controller, error) {
	if deps.Service == nil {
		return nil, fmt.Errorf("record service is nil")
	}
	if strings.TrimSpace(opts.ObjectType) == "" {
		return nil, fmt.Errorf("object type is required")
	}
	if log == nil {
		log = logger.NewDefault()
	}

	fields := NormalizeFieldList(opts.Fields)
	if len(fields) == 0 {
		fields = ParseFieldList(opts.FieldList)
	}

	c := &Controller{
		recordID:          opts.RecordID,
		objectType:        strings.TrimSpace(opts.ObjectType),
		fields:            fields,
		relationshipField: opts.RelationshipField,
		idField:           opts.IDField,
		urlTemplate:       opts.URLTemplate,
		pageSize:          opts.PageSize,
		service:           deps.Service,
		navigator:         deps.Navigator,
		notifier:          deps.Notifier,
		confirmer:         deps.Confirmer,
		fieldTypes:        types.FieldTypeMap{},
		picklistOptions:   make(map[string][]types.Option),
		selection:         newSelectionSet(),
		currentPage:       1,
	}
	if c.idField == "" {
		c.idField = types.DefaultPrimaryKey
	}
	if c.urlTemplate == "" {
		c.urlTemplate = types.DefaultURLTemplate
	}
	if c.pageSize <= 0 {
		c.pageSize = types.DefaultPageSize
	}
	if c.navigator == nil {
		c.navigator = nopNavigator{}
	}
	if c.notifier == nil {
		c.notifier = nopNotifier{}
	}
	if c.confirmer == nil {
		c.confirmer = declineConfirmer{}
	}

	c.log, c.sessionID = log.WithObject(c.objectType).WithSession()
	c.generateColumns()
	c.Evaluate()

	return c, nil
}

// Query returns the record query this view issues.
func (c *Controller) Query() Query {
	fields := make([]string, len(c.fields))
	copy(fields, c.fields)
	return Query{
		ParentID:          c.recordID,
		ObjectType:        c.objectType,
		Fields:            fields,
		RelationshipField: c.relationshipField,
	}
}

// Load fetches field types, records and picklist values. Each source is
// handled on its own: a failure is reported and the others still apply.
func (c *Controller) Load(ctx context.Context) {
	if fieldTypes, err := c.service.FetchFieldTypes(ctx, c.objectType); err != nil {
		c.OnFieldTypesFailed(err)
	} else {
		c.OnFieldTypesLoaded(fieldTypes)
	}

	c.Refresh(ctx)

	if picklists, err := c.service.FetchPicklistValues(ctx, c.objectType); err != nil {
		c.OnPicklistValuesFailed(err)
	} else {
		c.OnPicklistValuesLoaded(picklists)
	}
}

// Refresh re-fetches the records.
func (c *Controller) Refresh(ctx context.Context) {
	records, err := c.service.FetchRecords(ctx, c.Query())
	if err != nil {
		c.OnRecordsFailed(err)
		return
	}
	c.OnRecordsLoaded(records)
}

// OnRecordsLoaded replaces the record set. Applied filters are evaluated
// against the new records, the view returns to page 1 and selected ids that
// no longer exist are dropped.
func (c *Controller) OnRecordsLoaded(raw []types.Record) {
	c.records = FlattenRecords(raw, c.fields, c.objectType, c.idField, c.urlTemplate)
	c.generateColumns()
	c.Evaluate()

	present := make(map[string]bool, len(c.records))
	for _, rec := range c.records {
		present[c.rowID(rec)] = true
	}
	if dropped := c.selection.retain(present); dropped > 0 {
		c.log.Debugw("Dropped stale selections", "dropped", dropped)
	}

	c.log.Debugw("Records loaded",
		"records", len(c.records),
		"filtered", c.totalRecords,
		"pages", c.totalPages,
	)
}

// OnRecordsFailed reports a record fetch error. Previously loaded records stay.
func (c *Controller) OnRecordsFailed(err error) {
	c.log.Errorw("Error fetching records", "error", err)
	c.notifyError(err.Error())
}

// OnFieldTypesLoaded stores the field type map under lower-cased names.
func (c *Controller) OnFieldTypesLoaded(fieldTypes types.FieldTypeMap) {
	c.fieldTypes = make(types.FieldTypeMap, len(fieldTypes))
	for name, typ := range fieldTypes {
		c.fieldTypes[strings.ToLower(name)] = typ
	}
	c.log.Debugw("Field types loaded", "fields", len(c.fieldTypes))
}

// OnFieldTypesFailed reports a field type fetch error.
func (c *Controller) OnFieldTypesFailed(err error) {
	c.log.Errorw("Error fetching field types", "error", err)
	c.notifyError(err.Error())
}

// OnPicklistValuesLoaded turns picklist definitions into selectable options.
func (c *Controller) OnPicklistValuesLoaded(fields []types.PicklistField) {
	for _, f := range fields {
		opts := make([]types.Option, 0, len(f.Values))
		for _, v := range f.Values {
			opts = append(opts, types.Option{Label: v, Value: v})
		}
		c.picklistOptions[strings.ToLower(f.FieldAPIName)] = opts
	}
	c.log.Debugw("Picklist values loaded", "fields", len(fields))
}

// OnPicklistValuesFailed reports a picklist fetch error.
func (c *Controller) OnPicklistValuesFailed(err error) {
	c.log.Errorw("Error fetching picklist values", "error", err)
	c.notifyError(err.Error())
}

// generateColumns keeps the previous columns when there are no fields.
func (c *Controller) generateColumns() {
	columns, ok := GenerateColumns(c.fields)
	if !ok {
		c.log.Warn("No fields provided for columns")
		return
	}
	c.columns = columns
}

// IsPicklist reports whether the field is picklist typed. Unknown fields,
// including all fields before field types arrive, are not.
func (c *Controller) IsPicklist(fieldName string) bool {
	return strings.EqualFold(c.fieldTypes[strings.ToLower(fieldName)], types.PicklistType)
}

// SelectFilterField returns the value choices for a filter field: its
// picklist options when it is picklist typed, nil otherwise.
func (c *Controller) SelectFilterField(fieldName string) []types.Option {
	if !c.IsPicklist(fieldName) {
		return nil
	}
	opts := c.picklistOptions[strings.ToLower(fieldName)]
	out := make([]types.Option, len(opts))
	copy(out, opts)
	return out
}

// IconName returns the icon for the object: custom objects (and an unknown
// object) get the default icon.
func (c *Controller) IconName() string {
	name := strings.ToLower(c.objectType)
	if name == "" || strings.HasSuffix(name, "__c") {
		return "standard:default"
	}
	return "standard:" + name
}

// FieldOptions lists the fields a filter can be applied to.
func (c *Controller) FieldOptions() []types.Option {
	return FieldOptions(c.fields)
}

func (c *Controller) notifyError(message string) {
	c.notifier.Notify(Notification{
		Title:    "Error",
		Message:  message,
		Severity: SeverityError,
	})
}

// ObjectType returns the child object shown in the list.
func (c *Controller) ObjectType() string { return c.objectType }

// SessionID identifies this controller in log output.
func (c *Controller) SessionID() string { return c.sessionID }

// Fields returns the requested field paths.
func (c *Controller) Fields() []string { return c.fields }

// Records returns all flattened records.
func (c *Controller) Records() []types.Record { return c.records }

// FilteredRecords returns the records passing every applied filter.
func (c *Controller) FilteredRecords() []types.Record { return c.filteredRecords }

// Columns returns the current column definitions.
func (c *Controller) Columns() []ColumnDef { return c.columns }

// AppliedFilters returns the filters in the order they were added.
func (c *Controller) AppliedFilters() []Filter {
	out := make([]Filter, len(c.appliedFilters))
	copy(out, c.appliedFilters)
	return out
}

// FieldTypes returns the loaded field type map.
func (c *Controller) FieldTypes() types.FieldTypeMap { return c.fieldTypes }
