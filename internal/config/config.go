// Package config provides configuration structures and loading for golistview.
package config

import (
	"strings"

	"github.com/dbsmedya/golistview/internal/types"
)

// Config represents the complete application configuration.
type Config struct {
	Source     DatabaseConfig        `yaml:"source" mapstructure:"source"`
	Views      map[string]ViewConfig `yaml:"views" mapstructure:"views"`
	Display    DisplayConfig         `yaml:"display" mapstructure:"display"`
	Processing ProcessingConfig      `yaml:"processing" mapstructure:"processing"`
	Logging    LoggingConfig         `yaml:"logging" mapstructure:"logging"`
}

// DatabaseConfig represents the connection to the database that holds the records.
type DatabaseConfig struct {
	Driver             string `yaml:"driver" mapstructure:"driver"` // mysql or sqlite3
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	Path               string `yaml:"path" mapstructure:"path"` // sqlite3 file path
	TLS                string `yaml:"tls" mapstructure:"tls"`   // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
}

// ViewConfig describes one related-record list: which child object to show,
// which parent it hangs off and which fields become columns.
type ViewConfig struct {
	ObjectType        string              `yaml:"object_type" mapstructure:"object_type"`
	Table             string              `yaml:"table" mapstructure:"table"`             // defaults to object_type
	PrimaryKey        string              `yaml:"primary_key" mapstructure:"primary_key"` // defaults to "Id"
	RecordID          string              `yaml:"record_id" mapstructure:"record_id"`     // parent record id
	RelationshipField string              `yaml:"relationship_field" mapstructure:"relationship_field"`
	Fields            []string            `yaml:"fields" mapstructure:"fields"` // list or comma separated string
	Relations         []Relation          `yaml:"relations" mapstructure:"relations"`
	Picklists         map[string][]string `yaml:"picklists" mapstructure:"picklists"`
	PageSize          int                 `yaml:"page_size" mapstructure:"page_size"`
	URLTemplate       string              `yaml:"url_template" mapstructure:"url_template"`
}

// Relation maps the relationship part of a dotted field path (Account in
// Account.Name) to the table it is joined from.
type Relation struct {
	Name       string `yaml:"name" mapstructure:"name"`
	Table      string `yaml:"table" mapstructure:"table"`
	ForeignKey string `yaml:"foreign_key" mapstructure:"foreign_key"` // column on the view table
	PrimaryKey string `yaml:"primary_key" mapstructure:"primary_key"` // column on the related table, defaults to "Id"
}

// DisplayConfig controls how pages are rendered in the terminal.
type DisplayConfig struct {
	PageSize        int    `yaml:"page_size" mapstructure:"page_size"`
	URLTemplate     string `yaml:"url_template" mapstructure:"url_template"`
	EditURLTemplate string `yaml:"edit_url_template" mapstructure:"edit_url_template"`
	MaxColumnWidth  int    `yaml:"max_column_width" mapstructure:"max_column_width"`
	Color           bool   `yaml:"color" mapstructure:"color"`
}

// ProcessingConfig represents delete batching settings.
type ProcessingConfig struct {
	BatchDeleteSize int `yaml:"batch_delete_size" mapstructure:"batch_delete_size"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// Default values, shared with the list view.
const (
	DefaultPageSize        = types.DefaultPageSize
	DefaultPrimaryKey      = types.DefaultPrimaryKey
	DefaultURLTemplate     = types.DefaultURLTemplate
	DefaultEditURLTemplate = types.DefaultEditURLTemplate
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Source: DatabaseConfig{
			Driver:             "mysql",
			Port:               3306,
			TLS:                "preferred",
			MaxConnections:     5,
			MaxIdleConnections: 2,
		},
		Display: DisplayConfig{
			PageSize:        DefaultPageSize,
			URLTemplate:     DefaultURLTemplate,
			EditURLTemplate: DefaultEditURLTemplate,
			MaxColumnWidth:  40,
			Color:           true,
		},
		Processing: ProcessingConfig{
			BatchDeleteSize: 500,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// GetViewPageSize returns the page size for a view, falling back to the display default.
func (c *Config) GetViewPageSize(viewName string) int {
	view, err := c.GetView(viewName)
	if err != nil || view.PageSize <= 0 {
		return c.Display.PageSize
	}
	return view.PageSize
}

// GetViewURLTemplate returns the record URL template for a view, falling back to the display default.
func (c *Config) GetViewURLTemplate(viewName string) string {
	view, err := c.GetView(viewName)
	if err != nil || view.URLTemplate == "" {
		return c.Display.URLTemplate
	}
	return view.URLTemplate
}

// TableName returns the table backing the view.
func (vc *ViewConfig) TableName() string {
	if vc.Table != "" {
		return vc.Table
	}
	return vc.ObjectType
}

// IDField returns the primary key column of the view table.
func (vc *ViewConfig) IDField() string {
	if vc.PrimaryKey != "" {
		return vc.PrimaryKey
	}
	return DefaultPrimaryKey
}

// RelationNamed returns the relation whose name matches case-insensitively.
func (vc *ViewConfig) RelationNamed(name string) (*Relation, bool) {
	for i := range vc.Relations {
		if strings.EqualFold(vc.Relations[i].Name, name) {
			return &vc.Relations[i], true
		}
	}
	return nil, false
}

// RelatedKey returns the primary key column of the related table.
func (r *Relation) RelatedKey() string {
	if r.PrimaryKey != "" {
		return r.PrimaryKey
	}
	return DefaultPrimaryKey
}
