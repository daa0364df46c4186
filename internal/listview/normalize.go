package listview

import (
	"strings"

	"github.com/dbsmedya/golistview/internal/types"
)

// RecordURL expands a URL template for one record. The template may use
// {objectType} and {id}.
func RecordURL(template, objectType, id string) string {
	return strings.NewReplacer("{objectType}", objectType, "{id}", id).Replace(template)
}

// FlattenRecords copies each raw record, adds one key per dotted field path
// holding the nested value (NotAvailable when absent) and attaches the record
// URL. Output order matches input order; raw records are not modified.
func FlattenRecords(raw []types.Record, fields []string, objectType, idField, urlTemplate string) []types.Record {
	var dotted []string
	for _, f := range fields {
		if strings.Contains(f, ".") {
			dotted = append(dotted, f)
		}
	}

	out := make([]types.Record, 0, len(raw))
	for _, rec := range raw {
		flat := rec.Clone()
		for _, path := range dotted {
			v, ok := rec.Lookup(strings.Split(path, ".")...)
			if !ok || types.IsBlank(v) {
				v = NotAvailable
			}
			flat[FieldKey(path)] = v
		}
		flat[RecordURLField] = RecordURL(urlTemplate, objectType, types.ToString(rec[idField]))
		out = append(out, flat)
	}
	return out
}
