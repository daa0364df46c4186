package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilterExpr(t *testing.T) {
	tests := []struct {
		expr                string
		field, op, value    string
	}{
		{"Status equals Open", "Status", "equals", "Open"},
		{"  Name   contains  van der  ", "Name", "contains", "van der"},
		{"Account.Name notEquals Acme Corp", "Account.Name", "notEquals", "Acme Corp"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			field, op, value, err := parseFilterExpr(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.field, field)
			assert.Equal(t, tt.op, op)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestParseFilterExpr_Incomplete(t *testing.T) {
	for _, expr := range []string{"", "Status", "Status equals", "Status equals   "} {
		_, _, _, err := parseFilterExpr(expr)
		assert.Error(t, err, expr)
	}
}
