package listview

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/golistview/internal/types"
)

// Operator is a filter comparison.
type Operator string

const (
	OpEquals      Operator = "equals"
	OpContains    Operator = "contains"
	OpNotEquals   Operator = "notEquals"
	OpNotContains Operator = "notContains"
)

// Operators lists the supported comparisons with their display labels.
func Operators() []types.Option {
	return []types.Option{
		{Label: "Equals", Value: string(OpEquals)},
		{Label: "Contains", Value: string(OpContains)},
		{Label: "Not Equals", Value: string(OpNotEquals)},
		{Label: "Not Contains", Value: string(OpNotContains)},
	}
}

// Filter is one applied predicate. Value is trimmed and lower-cased; ID and
// Label are derived from the field, operator and that normalized value.
type Filter struct {
	ID        string   `json:"id" msgpack:"id"`
	Label     string   `json:"label" msgpack:"label"`
	FieldName string   `json:"fieldName" msgpack:"fieldName"`
	Operator  Operator `json:"operator" msgpack:"operator"`
	Value     string   `json:"value" msgpack:"value"`
}

// NewFilter normalizes its inputs into a Filter. It returns false when any
// input is empty after trimming.
func NewFilter(fieldName, operator, rawValue string) (Filter, bool) {
	fieldName = strings.TrimSpace(fieldName)
	operator = strings.TrimSpace(operator)
	value := strings.ToLower(strings.TrimSpace(rawValue))
	if fieldName == "" || operator == "" || value == "" {
		return Filter{}, false
	}
	return Filter{
		ID:        fmt.Sprintf("%s-%s-%s", fieldName, operator, value),
		Label:     fmt.Sprintf("%s %s %s", fieldName, operator, value),
		FieldName: fieldName,
		Operator:  Operator(operator),
		Value:     value,
	}, true
}

// Matches reports whether the record satisfies the filter. A missing field
// never equals or contains anything. Unknown operators match every record.
func (f Filter) Matches(rec types.Record) bool {
	raw, present := fieldValue(rec, f.FieldName)
	value := strings.ToLower(types.ToString(raw))

	switch f.Operator {
	case OpEquals:
		return present && value == f.Value
	case OpContains:
		return present && strings.Contains(value, f.Value)
	case OpNotEquals:
		return !present || value != f.Value
	case OpNotContains:
		return !present || !strings.Contains(value, f.Value)
	default:
		return true
	}
}

// fieldValue reads a field off a flattened record. Dotted paths fall back to
// their flattened key.
func fieldValue(rec types.Record, name string) (any, bool) {
	v, ok := rec[name]
	if !ok && strings.Contains(name, ".") {
		v, ok = rec[FieldKey(name)]
	}
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// MatchAll returns the records that satisfy every filter, in input order.
func MatchAll(records []types.Record, filters []Filter) []types.Record {
	out := make([]types.Record, 0, len(records))
	for _, rec := range records {
		keep := true
		for _, f := range filters {
			if !f.Matches(rec) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, rec)
		}
	}
	return out
}

// AddFilter appends a filter and re-evaluates. Inputs that are empty after
// trimming are ignored and the second result is false.
func (c *Controller) AddFilter(fieldName, operator, rawValue string) (Filter, bool) {
	f, ok := NewFilter(fieldName, operator, rawValue)
	if !ok {
		c.log.Debugw("Ignoring incomplete filter",
			"field", fieldName, "operator", operator, "value", rawValue)
		return Filter{}, false
	}

	c.appliedFilters = append(c.appliedFilters, f)
	c.log.Debugw("Filter added", "filter", f.Label, "applied", len(c.appliedFilters))
	c.Evaluate()
	return f, true
}

// RemoveFilter removes every filter with the given label and re-evaluates.
// It returns the number of filters removed.
func (c *Controller) RemoveFilter(label string) int {
	kept := make([]Filter, 0, len(c.appliedFilters))
	for _, f := range c.appliedFilters {
		if f.Label != label {
			kept = append(kept, f)
		}
	}
	removed := len(c.appliedFilters) - len(kept)
	c.appliedFilters = kept

	c.log.Debugw("Filter removed", "filter", label, "removed", removed, "applied", len(kept))
	c.Evaluate()
	return removed
}

// Evaluate recomputes the filtered records from all records and the applied
// filters, then returns to the first page.
func (c *Controller) Evaluate() {
	c.filteredRecords = MatchAll(c.records, c.appliedFilters)
	c.resetPagination()
}
