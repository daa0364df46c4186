package listview

import (
	"strings"

	"github.com/dbsmedya/golistview/internal/types"
)

const (
	// RecordURLField is the synthetic field holding the record page link.
	RecordURLField = "recordUrl"
	// NotAvailable replaces relationship values that are missing.
	NotAvailable = "N/A"
)

// ParseFieldList splits a comma separated field list and trims each entry.
// Empty entries are dropped.
func ParseFieldList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return NormalizeFieldList(strings.Split(s, ","))
}

// NormalizeFieldList trims every entry and drops empty ones.
func NormalizeFieldList(fields []string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// FieldKey returns the record key a field path is stored under after
// flattening: Account.Name becomes Account_Name.
func FieldKey(path string) string {
	return strings.ReplaceAll(path, ".", "_")
}

// FieldLabel derives a human label from a field path: the last segment with
// the custom field suffix dropped and its first underscore turned into a space.
func FieldLabel(path string) string {
	label := path
	if i := strings.LastIndex(path, "."); i >= 0 {
		label = path[i+1:]
	}
	label = strings.Replace(label, "__c", "", 1)
	return strings.Replace(label, "_", " ", 1)
}

// fieldOptionLabel is the label used in the filter field picker. Unlike
// FieldLabel it keeps the relationship prefix.
func fieldOptionLabel(path string) string {
	label := strings.Replace(path, "__c", "", 1)
	return strings.Replace(label, "_", " ", 1)
}

// FieldOptions lists the filterable fields as label/value pairs.
func FieldOptions(fields []string) []types.Option {
	opts := make([]types.Option, 0, len(fields))
	for _, f := range fields {
		opts = append(opts, types.Option{Label: fieldOptionLabel(f), Value: f})
	}
	return opts
}
