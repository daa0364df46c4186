package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dbsmedya/golistview/internal/listview"
)

var (
	columnsView   string
	columnsParent string
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "Show the columns and filterable fields of a view",
	Long: `Columns prints the column definitions generated from the view's field
list, the field type of each column as described by the database, the
fields a filter can use and the picklist values of picklist fields.

Example:
  golistview columns --view account_contacts`,
	RunE: runColumns,
}

func init() {
	columnsCmd.Flags().StringVarP(&columnsView, "view", "v", "",
		"View name from configuration file (required)")
	columnsCmd.MarkFlagRequired("view")
	columnsCmd.Flags().StringVarP(&columnsParent, "parent", "p", "",
		"Parent record id (defaults to the view's record_id)")

	rootCmd.AddCommand(columnsCmd)
}

func runColumns(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd)
	defer cancel()

	s, err := openSession(ctx, cmd, sessionOptions{View: columnsView, ParentID: columnsParent})
	if err != nil {
		return err
	}
	defer s.Close()

	s.ctrl.Load(ctx)

	cmd.Printf("%s [%s]\n\n", s.ctrl.ObjectType(), s.ctrl.IconName())
	if err := s.renderer.Columns(s.ctrl.Columns(), s.ctrl.FieldTypes()); err != nil {
		return err
	}

	cmd.Println()
	if err := s.renderer.Options("Filter fields", s.ctrl.FieldOptions()); err != nil {
		return err
	}
	if err := s.renderer.Options("Operators", listview.Operators()); err != nil {
		return err
	}
	for _, field := range s.ctrl.Fields() {
		if opts := s.ctrl.SelectFilterField(field); len(opts) > 0 {
			if err := s.renderer.Options("Values of "+field, opts); err != nil {
				return err
			}
		}
	}
	return nil
}
