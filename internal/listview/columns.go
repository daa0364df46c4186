package listview

import "strings"

// ColumnType is the display type of a column.
type ColumnType string

const (
	ColumnText   ColumnType = "text"
	ColumnDate   ColumnType = "date"
	ColumnURL    ColumnType = "url"
	ColumnAction ColumnType = "action"
)

// Row action names.
const (
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// RowActions are offered on every row.
var RowActions = []RowAction{
	{Label: "Edit", Name: ActionEdit},
	{Label: "Delete", Name: ActionDelete},
}

// ColumnDef describes one displayed column.
type ColumnDef struct {
	Label          string          `json:"label,omitempty" msgpack:"label,omitempty"`
	FieldName      string          `json:"fieldName,omitempty" msgpack:"fieldName,omitempty"`
	Type           ColumnType      `json:"type" msgpack:"type"`
	TypeAttributes *TypeAttributes `json:"typeAttributes,omitempty" msgpack:"typeAttributes,omitempty"`
}

// TypeAttributes carries the extra settings of url and action columns.
type TypeAttributes struct {
	Label      *FieldRef   `json:"label,omitempty" msgpack:"label,omitempty"`
	Target     string      `json:"target,omitempty" msgpack:"target,omitempty"`
	RowActions []RowAction `json:"rowActions,omitempty" msgpack:"rowActions,omitempty"`
}

// FieldRef points a column attribute at a record field.
type FieldRef struct {
	FieldName string `json:"fieldName" msgpack:"fieldName"`
}

// RowAction is one entry of the row action menu.
type RowAction struct {
	Label string `json:"label" msgpack:"label"`
	Name  string `json:"name" msgpack:"name"`
}

// DisplayField returns the record field whose value the column shows.
// For the link column that is the field named in its label attribute.
func (c ColumnDef) DisplayField() string {
	if c.Type == ColumnURL && c.TypeAttributes != nil && c.TypeAttributes.Label != nil {
		return c.TypeAttributes.Label.FieldName
	}
	return c.FieldName
}

// GenerateColumns builds one column per field plus a trailing action column.
// The first column links to the record page and displays the field's value.
// It returns false when fields is empty.
func GenerateColumns(fields []string) ([]ColumnDef, bool) {
	if len(fields) == 0 {
		return nil, false
	}

	columns := make([]ColumnDef, 0, len(fields)+1)
	for _, field := range fields {
		colType := ColumnText
		if strings.Contains(strings.ToLower(field), "date") {
			colType = ColumnDate
		}
		columns = append(columns, ColumnDef{
			Label:     FieldLabel(field),
			FieldName: FieldKey(field),
			Type:      colType,
		})
	}

	first := columns[0]
	columns[0] = ColumnDef{
		Label:     first.Label,
		FieldName: RecordURLField,
		Type:      ColumnURL,
		TypeAttributes: &TypeAttributes{
			Label:  &FieldRef{FieldName: first.FieldName},
			Target: "_self",
		},
	}

	actions := make([]RowAction, len(RowActions))
	copy(actions, RowActions)
	columns = append(columns, ColumnDef{
		Type:           ColumnAction,
		TypeAttributes: &TypeAttributes{RowActions: actions},
	})

	return columns, true
}
