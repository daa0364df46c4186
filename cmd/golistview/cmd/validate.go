package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/golistview/internal/database"
	"github.com/dbsmedya/golistview/internal/logger"
	"github.com/dbsmedya/golistview/internal/recordsource"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and check views against the database",
	Long: `Validate checks the configuration file and then, for every view,
describes its table to make sure the table exists and that each plain
field and the relationship field are columns of it.

Example:
  golistview validate --config golistview.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	dbManager := database.NewManager(&cfg.Source)
	if err := dbManager.Connect(ctx); err != nil {
		return err
	}
	defer dbManager.Close()

	cmd.Printf("\n=== Configuration Validation ===\n")
	cmd.Printf("Config file: %s\n", configFile)
	cmd.Printf("Views found: %d\n\n", len(cfg.Views))

	hasErrors := false
	for _, name := range cfg.ListViews() {
		view, _ := cfg.GetView(name)
		cmd.Printf("--- View: %s ---\n", name)
		cmd.Printf("Object: %s (table %s)\n", view.ObjectType, view.TableName())

		src, err := recordsource.New(dbManager.Source, dbManager.Driver(), cfg.Source.Database, view,
			cfg.Processing.BatchDeleteSize, log.WithView(name))
		if err != nil {
			cmd.Printf("❌ %v\n\n", err)
			hasErrors = true
			continue
		}

		fieldTypes, err := src.FetchFieldTypes(ctx, view.ObjectType)
		if err != nil {
			cmd.Printf("❌ Describe failed: %v\n\n", err)
			hasErrors = true
			continue
		}

		if missing := missingColumns(fieldTypes, view.IDField(), view.RelationshipField, view.Fields); len(missing) > 0 {
			cmd.Printf("❌ Missing columns: %s\n\n", strings.Join(missing, ", "))
			hasErrors = true
			continue
		}

		cmd.Printf("✅ All checks passed\n\n")
	}

	if hasErrors {
		return fmt.Errorf("validation failed for one or more views")
	}

	cmd.Println("=== Validation Complete ===")
	cmd.Println("✅ All views validated successfully")
	return nil
}

// missingColumns returns the plain fields (and key columns) that are not
// columns of the described table. Dotted fields are read from related
// tables and are not checked.
func missingColumns(fieldTypes map[string]string, idField, relationshipField string, fields []string) []string {
	present := make(map[string]bool, len(fieldTypes))
	for name := range fieldTypes {
		present[strings.ToLower(name)] = true
	}

	var missing []string
	seen := make(map[string]bool)
	for _, f := range append([]string{idField, relationshipField}, fields...) {
		key := strings.ToLower(f)
		if f == "" || strings.Contains(f, ".") || present[key] || seen[key] {
			continue
		}
		seen[key] = true
		missing = append(missing, f)
	}
	return missing
}
