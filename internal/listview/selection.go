package listview

import (
	"context"
	"errors"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/golistview/internal/types"
)

// ErrNoSelection is returned when a bulk delete is requested with nothing selected.
var ErrNoSelection = errors.New("no records selected")

// NoSelectionMessage is shown when a bulk delete is requested with nothing selected.
const NoSelectionMessage = "Please select at least one record to delete"

// DeletePrompt is the question asked before any delete.
const DeletePrompt = "Are you sure you want to delete?"

// DeleteSucceededMessage is shown after a successful delete.
const DeleteSucceededMessage = "Record(s) deleted successfully"

// selectionSet keeps selected record ids in selection order without duplicates.
type selectionSet struct {
	ids *orderedmap.OrderedMap[string, struct{}]
}

func newSelectionSet() *selectionSet {
	return &selectionSet{ids: orderedmap.NewOrderedMap[string, struct{}]()}
}

func (s *selectionSet) replace(ids []string) {
	s.ids = orderedmap.NewOrderedMap[string, struct{}]()
	for _, id := range ids {
		if id != "" {
			s.ids.Set(id, struct{}{})
		}
	}
}

func (s *selectionSet) clear() {
	s.replace(nil)
}

// retain drops every id not present in keep.
func (s *selectionSet) retain(keep map[string]bool) int {
	dropped := 0
	for _, id := range s.ids.Keys() {
		if !keep[id] {
			s.ids.Delete(id)
			dropped++
		}
	}
	return dropped
}

func (s *selectionSet) list() []string {
	return s.ids.Keys()
}

func (s *selectionSet) len() int {
	return s.ids.Len()
}

// SetSelection replaces the selected ids. Ids are not checked against the
// current page; selections survive page changes.
func (c *Controller) SetSelection(ids []string) {
	c.selection.replace(ids)
	c.log.Debugw("Selection changed", "selected", c.selection.len())
}

// SelectRows replaces the selection with the ids of the given rows.
func (c *Controller) SelectRows(rows []types.Record) {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, c.rowID(row))
	}
	c.SetSelection(ids)
}

// SelectedIDs returns the selected ids in selection order.
func (c *Controller) SelectedIDs() []string {
	return c.selection.list()
}

// BulkDeleteRequested deletes all selected records after confirmation.
// With nothing selected it notifies the user and returns ErrNoSelection
// without touching the record service.
func (c *Controller) BulkDeleteRequested(ctx context.Context) error {
	if c.selection.len() == 0 {
		c.notifyError(NoSelectionMessage)
		return ErrNoSelection
	}
	c.confirmAndDelete(ctx, c.selection.list())
	return nil
}

// RowActionRequested handles the row menu: delete asks for confirmation and
// deletes the row, edit opens the record's edit page.
func (c *Controller) RowActionRequested(ctx context.Context, actionName string, row types.Record) {
	id := c.rowID(row)
	switch actionName {
	case ActionDelete:
		c.confirmAndDelete(ctx, []string{id})
	case ActionEdit:
		c.log.Debugw("Navigating to edit page", "id", id)
		c.navigator.GoToRecordEditPage(id, c.objectType)
	default:
		c.log.Warnw("Ignoring unknown row action", "action", actionName, "id", id)
	}
}

// confirmAndDelete runs the delete only if the user confirms. Declining
// leaves every piece of state as it was.
func (c *Controller) confirmAndDelete(ctx context.Context, ids []string) {
	if !c.confirmer.Confirm(DeletePrompt) {
		c.log.Debugw("Delete declined", "ids", len(ids))
		return
	}

	c.log.Infow("Deleting records", "ids", ids)
	if err := c.service.DeleteRecords(ctx, c.objectType, ids); err != nil {
		c.log.Errorw("Delete failed", "ids", ids, "error", err)
		c.OnDeleteFailed(err.Error())
		return
	}
	c.OnDeleteSucceeded(ctx)
}

// OnDeleteSucceeded reports success, clears the selection and re-fetches
// the records.
func (c *Controller) OnDeleteSucceeded(ctx context.Context) {
	c.notifier.Notify(Notification{
		Title:    "Success",
		Message:  DeleteSucceededMessage,
		Severity: SeveritySuccess,
	})
	c.selection.clear()
	c.Refresh(ctx)
}

// OnDeleteFailed reports the failure. Selection and pagination are kept.
func (c *Controller) OnDeleteFailed(message string) {
	c.notifyError(message)
}

func (c *Controller) rowID(row types.Record) string {
	return types.ToString(row[c.idField])
}
