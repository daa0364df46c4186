// Package sqlutil builds the identifier and placeholder fragments of the
// queries golistview issues. Backtick quoting is understood by both MySQL
// and SQLite.
package sqlutil

import (
	"regexp"
	"strings"
)

// QuoteIdentifier quotes a table or column name with backticks, doubling any
// backtick inside it.
// Example: "Contact" -> "`Contact`"
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// QuoteQualified quotes a qualifier.column pair such as an alias and a column.
func QuoteQualified(qualifier, column string) string {
	return QuoteIdentifier(qualifier) + "." + QuoteIdentifier(column)
}

// Configured names are restricted to letters, digits and underscores.
var validIdentifierRegex = regexp.MustCompile("^[a-zA-Z0-9_]+$")

// IsValidIdentifier reports whether name only contains letters, digits and
// underscores.
func IsValidIdentifier(name string) bool {
	return validIdentifierRegex.MatchString(name)
}

// IsValidFieldPath reports whether every dot separated part of a field path
// such as Account.Owner.Name is a valid identifier.
func IsValidFieldPath(path string) bool {
	if path == "" {
		return false
	}
	for _, part := range strings.Split(path, ".") {
		if !IsValidIdentifier(part) {
			return false
		}
	}
	return true
}

// QuoteIdentifierSafe validates name before quoting it.
func QuoteIdentifierSafe(name string) (string, error) {
	if !IsValidIdentifier(name) {
		return "", &InvalidIdentifierError{Name: name}
	}
	return QuoteIdentifier(name), nil
}

// Placeholders returns n comma separated "?" markers.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// InvalidIdentifierError is returned when an identifier contains invalid characters.
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return "invalid identifier: " + e.Name + " (must contain only alphanumeric characters and underscores)"
}
