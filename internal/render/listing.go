package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/dbsmedya/golistview/internal/listview"
	"github.com/dbsmedya/golistview/internal/types"
)

// Columns lists the column definitions with the field type of each column,
// when known. fieldTypes is keyed by lower-cased field name.
func (r *Renderer) Columns(cols []listview.ColumnDef, fieldTypes types.FieldTypeMap) error {
	headers := []string{"Label", "Field", "Column Type", "Field Type"}
	rows := make([][]string, 0, len(cols))
	for _, c := range cols {
		field := c.DisplayField()
		fieldType := fieldTypes[strings.ToLower(field)]
		if fieldType == "" {
			fieldType = "-"
		}
		label := c.Label
		if c.Type == listview.ColumnAction {
			var names []string
			if c.TypeAttributes != nil {
				for _, a := range c.TypeAttributes.RowActions {
					names = append(names, a.Name)
				}
			}
			label = "(" + strings.Join(names, ", ") + ")"
			field = "-"
		}
		rows = append(rows, []string{label, field, string(c.Type), fieldType})
	}
	return r.table(headers, rows)
}

// Options lists label/value pairs, such as filterable fields or operators.
func (r *Renderer) Options(title string, opts []types.Option) error {
	var b strings.Builder
	b.WriteString(r.style(r.header, title) + "\n")
	for _, o := range opts {
		if o.Label == o.Value {
			fmt.Fprintf(&b, "  %s\n", o.Value)
		} else {
			fmt.Fprintf(&b, "  %s %s\n", o.Value, r.style(r.muted, "("+o.Label+")"))
		}
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// ViewSummary is one row of the view listing.
type ViewSummary struct {
	Name       string
	ObjectType string
	Table      string
	Fields     int
	PageSize   int
}

// Views lists the configured views.
func (r *Renderer) Views(views []ViewSummary) error {
	headers := []string{"View", "Object", "Table", "Fields", "Page Size"}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{v.Name, v.ObjectType, v.Table, fmt.Sprint(v.Fields), fmt.Sprint(v.PageSize)})
	}
	return r.table(headers, rows)
}

// Notice writes a one-line status message.
func (r *Renderer) Notice(n listview.Notification) error {
	var line string
	switch n.Severity {
	case listview.SeverityError:
		line = r.style(r.failure, n.Title+": ") + n.Message
	default:
		line = r.style(r.success, n.Title+": ") + n.Message
	}
	_, err := fmt.Fprintln(r.w, line)
	return err
}

func (r *Renderer) table(headers []string, rows [][]string) error {
	var b strings.Builder
	r.writeTable(&b, headers, rows)
	_, err := io.WriteString(r.w, b.String())
	return err
}
