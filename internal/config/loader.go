package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from the specified file path.
// It supports YAML files and performs environment variable substitution.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper creates a Config from an existing Viper instance.
// Useful for testing or when Viper is configured externally.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := substituteEnvVars(cfg); err != nil {
		return nil, fmt.Errorf("failed to substitute environment variables: %w", err)
	}

	normalizeViews(cfg)

	return cfg, nil
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// substituteEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func substituteEnvVars(cfg *Config) error {
	cfg.Source.Host = expandEnvVar(cfg.Source.Host)
	cfg.Source.User = expandEnvVar(cfg.Source.User)
	cfg.Source.Password = expandEnvVar(cfg.Source.Password)
	cfg.Source.Database = expandEnvVar(cfg.Source.Database)
	cfg.Source.Path = expandEnvVar(cfg.Source.Path)

	// Parent record ids are commonly injected per environment
	for name, view := range cfg.Views {
		view.RecordID = expandEnvVar(view.RecordID)
		cfg.Views[name] = view
	}

	cfg.Logging.Output = expandEnvVar(cfg.Logging.Output)

	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		// Return original if env var not found
		return match
	})
}

// normalizeViews trims field entries. A comma separated string in YAML is
// split by viper but keeps the blanks around each entry.
func normalizeViews(cfg *Config) {
	for name, view := range cfg.Views {
		fields := make([]string, 0, len(view.Fields))
		for _, f := range view.Fields {
			for _, part := range strings.Split(f, ",") {
				if part = strings.TrimSpace(part); part != "" {
					fields = append(fields, part)
				}
			}
		}
		view.Fields = fields
		cfg.Views[name] = view
	}
}

// GetView retrieves a specific view configuration by name.
func (c *Config) GetView(name string) (*ViewConfig, error) {
	view, exists := c.Views[strings.ToLower(name)]
	if !exists {
		return nil, fmt.Errorf("view %q not found in configuration", name)
	}
	return &view, nil
}

// ListViews returns all view names defined in the configuration, sorted.
func (c *Config) ListViews() []string {
	views := make([]string, 0, len(c.Views))
	for name := range c.Views {
		views = append(views, name)
	}
	sort.Strings(views)
	return views
}

// ApplyOverrides applies CLI flag overrides to the global configuration.
// Only non-zero/non-empty values are applied.
func (c *Config) ApplyOverrides(logLevel, logFormat string, pageSize, batchDeleteSize int, noColor bool) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if pageSize > 0 {
		c.Display.PageSize = pageSize
		for name, view := range c.Views {
			view.PageSize = 0
			c.Views[name] = view
		}
	}
	if batchDeleteSize > 0 {
		c.Processing.BatchDeleteSize = batchDeleteSize
	}
	if noColor {
		c.Display.Color = false
	}
}
