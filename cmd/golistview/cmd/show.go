package cmd

import (
	"github.com/spf13/cobra"
)

var (
	showView    string
	showParent  string
	showFilters []string
	showPage    int
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show one page of a view's records",
	Long: `Show loads the child records of a parent record and prints one page
as a table. Filters are applied in the order given and every one must match.

Operators: equals, contains, notEquals, notContains (case-insensitive).

Example:
  golistview show --view account_contacts --parent 001A000001
  golistview show --view account_contacts --filter "Status equals Open" --page 2`,
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showView, "view", "v", "",
		"View name from configuration file (required)")
	showCmd.MarkFlagRequired("view")
	showCmd.Flags().StringVarP(&showParent, "parent", "p", "",
		"Parent record id (defaults to the view's record_id)")
	showCmd.Flags().StringArrayVarP(&showFilters, "filter", "f", nil,
		`Filter as "field operator value" (repeatable)`)
	showCmd.Flags().IntVar(&showPage, "page", 1,
		"Page to show")

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd)
	defer cancel()

	s, err := openSession(ctx, cmd, sessionOptions{View: showView, ParentID: showParent})
	if err != nil {
		return err
	}
	defer s.Close()

	s.ctrl.Load(ctx)
	if err := s.applyFilters(showFilters); err != nil {
		return err
	}
	s.goToPage(showPage)

	return s.renderer.Page(s.ctrl)
}
