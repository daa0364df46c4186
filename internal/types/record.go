// Package types contains shared types used across multiple packages to avoid import cycles.
package types

// Record is one row as returned by the record service. Keys are field API
// names; relationship fields hold a nested Record (or map[string]any).
type Record map[string]any

// FieldTypeMap maps a lower-cased field API name to its type tag
// (picklist, date, string, ...).
type FieldTypeMap map[string]string

// PicklistType is the type tag of fields with a fixed set of values.
const PicklistType = "picklist"

// List view defaults, used when neither the caller nor the config sets them.
const (
	DefaultPageSize        = 10
	DefaultPrimaryKey      = "Id"
	DefaultURLTemplate     = "/lightning/r/{objectType}/{id}/view"
	DefaultEditURLTemplate = "/lightning/r/{objectType}/{id}/edit"
)

// PicklistField is the raw picklist definition of one field.
type PicklistField struct {
	FieldAPIName string   `json:"fieldApiName" msgpack:"fieldApiName"`
	Values       []string `json:"values" msgpack:"values"`
}

// Option is a label/value pair offered in a selection list.
type Option struct {
	Label string `json:"label" msgpack:"label"`
	Value string `json:"value" msgpack:"value"`
}

// Lookup returns the value at a dotted path, walking nested records.
// The second result is false when any segment is missing.
func (r Record) Lookup(path ...string) (any, bool) {
	var current any = r
	for _, segment := range path {
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r)+2)
	for k, v := range r {
		out[k] = v
	}
	return out
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Record:
		return m, true
	case map[string]any:
		return m, true
	default:
		return nil, false
	}
}
