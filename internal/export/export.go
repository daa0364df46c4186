// Package export writes the filtered records of a list view as JSON, JSON
// lines or a MessagePack stream.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/dbsmedya/golistview/internal/listview"
	"github.com/dbsmedya/golistview/internal/types"
)

// Format selects the output encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatJSONLines
	FormatMessagePack
)

// ParseFormat maps a format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json", "":
		return FormatJSON, nil
	case "jsonl", "ndjson":
		return FormatJSONLines, nil
	case "msgpack", "messagepack":
		return FormatMessagePack, nil
	default:
		return 0, fmt.Errorf("unknown export format %q (json, jsonl, msgpack)", name)
	}
}

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJSONLines:
		return "jsonl"
	case FormatMessagePack:
		return "msgpack"
	default:
		return "json"
	}
}

// Source is the view state an export reads. *listview.Controller satisfies it.
type Source interface {
	ObjectType() string
	Columns() []listview.ColumnDef
	AppliedFilters() []listview.Filter
	FilteredRecords() []types.Record
}

// Header describes the exported view.
type Header struct {
	ObjectType string               `json:"objectType" msgpack:"objectType"`
	ParentID   string               `json:"parentId,omitempty" msgpack:"parentId,omitempty"`
	Filters    []listview.Filter    `json:"filters" msgpack:"filters"`
	Columns    []listview.ColumnDef `json:"columns" msgpack:"columns"`
	Total      int                  `json:"total" msgpack:"total"`
	ExportedAt time.Time            `json:"exportedAt" msgpack:"exportedAt"`
}

// Document is the single-value JSON layout.
type Document struct {
	Header
	Records []types.Record `json:"records" msgpack:"records"`
}

// Writer encodes view exports.
type Writer struct {
	out    io.Writer
	format Format
	now    func() time.Time
}

// NewWriter creates a Writer.
func NewWriter(out io.Writer, format Format) *Writer {
	return &Writer{out: out, format: format, now: time.Now}
}

// Write exports every filtered record, not only the current page. JSON
// writes one document; JSON lines and MessagePack write the header followed
// by one value per record.
func (w *Writer) Write(src Source, parentID string) (int, error) {
	records := src.FilteredRecords()
	header := Header{
		ObjectType: src.ObjectType(),
		ParentID:   parentID,
		Filters:    src.AppliedFilters(),
		Columns:    src.Columns(),
		Total:      len(records),
		ExportedAt: w.now().UTC(),
	}
	if header.Filters == nil {
		header.Filters = []listview.Filter{}
	}

	switch w.format {
	case FormatJSON:
		if records == nil {
			records = []types.Record{}
		}
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(Document{Header: header, Records: records}); err != nil {
			return 0, err
		}
		return len(records), nil
	case FormatJSONLines:
		return w.stream(header, records, func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(w.out, "%s\n", data)
			return err
		})
	case FormatMessagePack:
		enc := msgpack.NewEncoder(w.out)
		return w.stream(header, records, enc.Encode)
	default:
		return 0, fmt.Errorf("unsupported export format %d", w.format)
	}
}

func (w *Writer) stream(header Header, records []types.Record, emit func(interface{}) error) (int, error) {
	if err := emit(header); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}
	for i, rec := range records {
		if err := emit(rec); err != nil {
			return i, fmt.Errorf("failed to write record %d: %w", i+1, err)
		}
	}
	return len(records), nil
}
