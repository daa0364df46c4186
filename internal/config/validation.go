package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateSource()...)

	if len(c.Views) == 0 {
		errors = append(errors, ValidationError{
			Field:   "views",
			Message: "at least one view must be defined",
		})
	}
	for _, name := range c.ListViews() {
		view := c.Views[name]
		errors = append(errors, c.validateView(name, &view)...)
	}

	errors = append(errors, c.validateDisplay()...)

	if c.Processing.BatchDeleteSize <= 0 {
		errors = append(errors, ValidationError{
			Field:   "processing.batch_delete_size",
			Message: "batch_delete_size must be positive",
		})
	}

	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateSource() ValidationErrors {
	var errors ValidationErrors
	db := &c.Source

	switch db.Driver {
	case "mysql", "":
		if db.Host == "" {
			errors = append(errors, ValidationError{
				Field:   "source.host",
				Message: "host is required",
			})
		}
		if db.Port <= 0 || db.Port > 65535 {
			errors = append(errors, ValidationError{
				Field:   "source.port",
				Message: "port must be between 1 and 65535",
			})
		}
		if db.User == "" {
			errors = append(errors, ValidationError{
				Field:   "source.user",
				Message: "user is required",
			})
		}
		if db.Database == "" {
			errors = append(errors, ValidationError{
				Field:   "source.database",
				Message: "database name is required",
			})
		}
	case "sqlite3":
		if db.Path == "" {
			errors = append(errors, ValidationError{
				Field:   "source.path",
				Message: "path is required for the sqlite3 driver",
			})
		}
	default:
		errors = append(errors, ValidationError{
			Field:   "source.driver",
			Message: "driver must be 'mysql' or 'sqlite3'",
		})
	}

	validTLS := map[string]bool{"disable": true, "preferred": true, "required": true, "": true}
	if !validTLS[db.TLS] {
		errors = append(errors, ValidationError{
			Field:   "source.tls",
			Message: "tls must be 'disable', 'preferred', or 'required'",
		})
	}

	if db.MaxConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   "source.max_connections",
			Message: "max_connections cannot be negative",
		})
	}

	if db.MaxIdleConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   "source.max_idle_connections",
			Message: "max_idle_connections cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateView(name string, view *ViewConfig) ValidationErrors {
	var errors ValidationErrors
	prefix := fmt.Sprintf("views.%s", name)

	if view.ObjectType == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".object_type",
			Message: "object_type is required",
		})
	}

	if view.RelationshipField == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".relationship_field",
			Message: "relationship_field is required",
		})
	}

	if len(view.Fields) == 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".fields",
			Message: "at least one field is required",
		})
	}

	if view.PageSize < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".page_size",
			Message: "page_size cannot be negative",
		})
	}

	plain := make(map[string]string)
	for _, field := range view.Fields {
		if !strings.Contains(field, ".") {
			plain[strings.ToLower(field)] = field
		}
	}

	for _, field := range view.Fields {
		rel, _, dotted := strings.Cut(field, ".")
		if !dotted {
			continue
		}
		if column, clash := plain[strings.ToLower(rel)]; clash {
			errors = append(errors, ValidationError{
				Field:   prefix + ".fields",
				Message: fmt.Sprintf("field %q and relation field %q share the name %q", column, field, rel),
			})
		}
		if _, ok := view.RelationNamed(rel); !ok {
			errors = append(errors, ValidationError{
				Field:   prefix + ".fields",
				Message: fmt.Sprintf("field %q uses relation %q which has no entry in relations", field, rel),
			})
		}
	}

	for i, rel := range view.Relations {
		relPrefix := fmt.Sprintf("%s.relations[%d]", prefix, i)
		if rel.Name == "" {
			errors = append(errors, ValidationError{
				Field:   relPrefix + ".name",
				Message: "name is required",
			})
		}
		if rel.Table == "" {
			errors = append(errors, ValidationError{
				Field:   relPrefix + ".table",
				Message: "table name is required",
			})
		}
		if rel.ForeignKey == "" {
			errors = append(errors, ValidationError{
				Field:   relPrefix + ".foreign_key",
				Message: "foreign_key is required",
			})
		}
	}

	return errors
}

func (c *Config) validateDisplay() ValidationErrors {
	var errors ValidationErrors

	if c.Display.PageSize <= 0 {
		errors = append(errors, ValidationError{
			Field:   "display.page_size",
			Message: "page_size must be positive",
		})
	}

	if !strings.Contains(c.Display.URLTemplate, "{id}") {
		errors = append(errors, ValidationError{
			Field:   "display.url_template",
			Message: "url_template must contain {id}",
		})
	}

	if c.Display.MaxColumnWidth < 0 {
		errors = append(errors, ValidationError{
			Field:   "display.max_column_width",
			Message: "max_column_width cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
