package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/golistview/internal/listview"
)

var (
	deleteView   string
	deleteParent string
	deleteIDs    []string
	deleteYes    bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete selected records of a view",
	Long: `Delete selects the given record ids and deletes them after
confirmation. Ids that are not records of the parent are dropped from the
selection before deleting.

WARNING: This permanently deletes data.

Example:
  golistview delete --view account_contacts --id 003A000001 --id 003A000002`,
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().StringVarP(&deleteView, "view", "v", "",
		"View name from configuration file (required)")
	deleteCmd.MarkFlagRequired("view")
	deleteCmd.Flags().StringVarP(&deleteParent, "parent", "p", "",
		"Parent record id (defaults to the view's record_id)")
	deleteCmd.Flags().StringArrayVar(&deleteIDs, "id", nil,
		"Record id to delete (repeatable)")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false,
		"Do not ask for confirmation")

	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if len(deleteIDs) == 0 {
		return fmt.Errorf("at least one --id is required")
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	s, err := openSession(ctx, cmd, sessionOptions{View: deleteView, ParentID: deleteParent, AssumeYes: deleteYes})
	if err != nil {
		return err
	}
	defer s.Close()

	// Selecting before the load lets the refresh drop unknown ids
	s.ctrl.SetSelection(deleteIDs)
	s.ctrl.Refresh(ctx)

	before := len(s.ctrl.Records())
	if before == 0 {
		return fmt.Errorf("no %s records found for parent %s", s.view.ObjectType, s.parentID)
	}
	if dropped := droppedIDs(deleteIDs, s.ctrl.SelectedIDs()); len(dropped) > 0 {
		s.log.Warnw("Ignoring ids outside the view", "ids", dropped, "parent", s.parentID)
		cmd.PrintErrf("Skipping %d id(s) not in view %q for parent %s: %s\n",
			len(dropped), deleteView, s.parentID, strings.Join(dropped, ", "))
	}
	if err := s.ctrl.BulkDeleteRequested(ctx); err != nil {
		if errors.Is(err, listview.ErrNoSelection) {
			return fmt.Errorf("none of the given ids belong to view %q", deleteView)
		}
		return err
	}
	// A declined or failed delete keeps the selection
	if remaining := len(s.ctrl.SelectedIDs()); remaining > 0 {
		return fmt.Errorf("%d record(s) were not deleted", remaining)
	}

	s.log.Infow("Delete finished", "before", before, "after", len(s.ctrl.Records()))
	return nil
}

// droppedIDs returns the requested ids missing from the selection, once each
// and in request order.
func droppedIDs(requested, selected []string) []string {
	kept := make(map[string]bool, len(selected))
	for _, id := range selected {
		kept[id] = true
	}
	var dropped []string
	for _, id := range requested {
		if !kept[id] {
			kept[id] = true
			dropped = append(dropped, id)
		}
	}
	return dropped
}
