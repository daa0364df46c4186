package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/golistview/internal/config"
	"github.com/dbsmedya/golistview/internal/render"
)

var listViewsCmd = &cobra.Command{
	Use:   "list-views",
	Short: "List all views defined in configuration",
	Long: `List-views displays all list views defined in the configuration file
along with their object, table and field count.

Example:
  golistview list-views --config golistview.yaml`,
	RunE: runListViews,
}

func init() {
	rootCmd.AddCommand(listViewsCmd)
}

func runListViews(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	overrides := GetCLIOverrides()
	cfg.ApplyOverrides("", "", overrides.PageSize, 0, overrides.NoColor)

	names := cfg.ListViews()
	if len(names) == 0 {
		cmd.Printf("No views defined in %s\n", configFile)
		return nil
	}

	summaries := make([]render.ViewSummary, 0, len(names))
	for _, name := range names {
		view, err := cfg.GetView(name)
		if err != nil {
			return fmt.Errorf("failed to get view %q: %w", name, err)
		}
		summaries = append(summaries, render.ViewSummary{
			Name:       name,
			ObjectType: view.ObjectType,
			Table:      view.TableName(),
			Fields:     len(view.Fields),
			PageSize:   cfg.GetViewPageSize(name),
		})
	}

	cmd.Printf("Views defined in %s:\n\n", configFile)
	r := render.New(cmd.OutOrStdout(), render.Options{Color: cfg.Display.Color})
	if err := r.Views(summaries); err != nil {
		return err
	}
	cmd.Printf("\nTotal: %d view(s)\n", len(names))
	return nil
}
