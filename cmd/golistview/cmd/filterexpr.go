package cmd

import (
	"fmt"
	"strings"
)

// parseFilterExpr splits "field operator value". The value is the rest of
// the expression and may contain spaces.
func parseFilterExpr(expr string) (field, op, value string, err error) {
	rest := strings.TrimSpace(expr)
	field, rest, _ = strings.Cut(rest, " ")
	op, value, _ = strings.Cut(strings.TrimSpace(rest), " ")
	value = strings.TrimSpace(value)
	if field == "" || op == "" || value == "" {
		return "", "", "", fmt.Errorf("filter %q must look like \"field operator value\"", expr)
	}
	return field, op, value, nil
}
