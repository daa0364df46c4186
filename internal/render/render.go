// Package render draws list view pages and related listings as plain-text
// tables for a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/golistview/internal/listview"
	"github.com/dbsmedya/golistview/internal/types"
)

const (
	minColumnWidth = 4
	ellipsis       = "…"
	selectedMark   = "*"
)

// Page is the view state a page render needs. *listview.Controller
// satisfies it.
type Page interface {
	ObjectType() string
	IconName() string
	Columns() []listview.ColumnDef
	PaginatedRecords() []types.Record
	AppliedFilters() []listview.Filter
	SelectedIDs() []string
	CurrentPage() int
	TotalPages() int
	TotalRecords() int
	PreviousDisabled() bool
	NextDisabled() bool
}

// Options control table output.
type Options struct {
	MaxColumnWidth int  // 0 disables truncation
	Color          bool // ANSI styling
	IDField        string
}

// Renderer writes tables to w.
type Renderer struct {
	w    io.Writer
	opts Options

	header  color.Style
	accent  color.Style
	muted   color.Style
	success color.Style
	failure color.Style
}

// New creates a Renderer.
func New(w io.Writer, opts Options) *Renderer {
	if opts.IDField == "" {
		opts.IDField = "Id"
	}
	return &Renderer{
		w:       w,
		opts:    opts,
		header:  color.New(color.OpBold),
		accent:  color.New(color.FgCyan),
		muted:   color.New(color.FgGray),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed, color.OpBold),
	}
}

func (r *Renderer) style(s color.Style, text string) string {
	if !r.opts.Color || text == "" {
		return text
	}
	return s.Sprint(text)
}

// Page writes the title, filter chips, current page table and footer.
// Rows are numbered from 1 on each page; selected rows are marked.
func (r *Renderer) Page(p Page) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n",
		r.style(r.header, fmt.Sprintf("%s (%d)", p.ObjectType(), p.TotalRecords())),
		r.style(r.muted, "["+p.IconName()+"]"),
	)
	if chips := r.filterChips(p.AppliedFilters()); chips != "" {
		b.WriteString("Filters: " + chips + "\n")
	}

	selected := make(map[string]bool)
	for _, id := range p.SelectedIDs() {
		selected[id] = true
	}

	cols := dataColumns(p.Columns())
	headers := make([]string, 0, len(cols)+2)
	headers = append(headers, "", "#")
	for _, c := range cols {
		headers = append(headers, c.Label)
	}

	records := p.PaginatedRecords()
	rows := make([][]string, 0, len(records))
	for i, rec := range records {
		mark := ""
		if selected[types.ToString(rec[r.opts.IDField])] {
			mark = selectedMark
		}
		row := []string{mark, fmt.Sprint(i + 1)}
		for _, c := range cols {
			row = append(row, types.ToString(rec[c.DisplayField()]))
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		b.WriteString(r.style(r.muted, "No records to display") + "\n")
	} else {
		r.writeTable(&b, headers, rows)
	}

	b.WriteString(r.footer(p) + "\n")

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *Renderer) footer(p Page) string {
	prev, next := "< prev", "next >"
	if p.PreviousDisabled() {
		prev = r.style(r.muted, prev)
	}
	if p.NextDisabled() {
		next = r.style(r.muted, next)
	}
	footer := fmt.Sprintf("%s  Page %d of %d  %s", prev, p.CurrentPage(), p.TotalPages(), next)
	if n := len(p.SelectedIDs()); n > 0 {
		footer += "  " + r.style(r.accent, fmt.Sprintf("%d selected", n))
	}
	return footer
}

func (r *Renderer) filterChips(filters []listview.Filter) string {
	chips := make([]string, 0, len(filters))
	for _, f := range filters {
		chips = append(chips, r.style(r.accent, "["+f.Label+"]"))
	}
	return strings.Join(chips, " ")
}

// dataColumns drops the action column, which has no cell value.
func dataColumns(cols []listview.ColumnDef) []listview.ColumnDef {
	out := make([]listview.ColumnDef, 0, len(cols))
	for _, c := range cols {
		if c.Type != listview.ColumnAction {
			out = append(out, c)
		}
	}
	return out
}

// writeTable pads every cell to its column width. Widths are measured in
// terminal cells so wide runes line up.
func (r *Renderer) writeTable(b *strings.Builder, headers []string, rows [][]string) {
	widths := columnWidths(headers, rows, r.opts.MaxColumnWidth)

	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = r.style(r.header, pad(truncate(h, widths[i]), widths[i]))
	}
	b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " ") + "\n")

	for i, w := range widths {
		cells[i] = strings.Repeat("-", w)
	}
	b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " ") + "\n")

	for _, row := range rows {
		for i := range headers {
			v := ""
			if i < len(row) {
				v = row[i]
			}
			cells[i] = pad(truncate(v, widths[i]), widths[i])
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " ") + "\n")
	}
}

func columnWidths(headers []string, rows [][]string, limit int) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		w := runewidth.StringWidth(h)
		for _, row := range rows {
			if i < len(row) {
				if cw := runewidth.StringWidth(row[i]); cw > w {
					w = cw
				}
			}
		}
		if limit > 0 && w > limit {
			w = max(limit, minColumnWidth)
		}
		widths[i] = w
	}
	return widths
}

// truncate shortens s to width cells, ending in an ellipsis. Newlines are
// flattened so a cell stays on one line.
func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}

func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}
