package listview

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/golistview/internal/types"
)

func TestSetSelection(t *testing.T) {
	h := newHarness(Options{PageSize: 2}, &fakeService{records: makeRecords(6, 0)})
	h.ctrl.Refresh(t.Context())

	h.ctrl.SetSelection([]string{"003001", "003005", "003001", ""})
	assert.Equal(t, []string{"003001", "003005"}, h.ctrl.SelectedIDs())

	// Selection survives paging
	h.ctrl.NextPage()
	h.ctrl.NextPage()
	assert.Equal(t, []string{"003001", "003005"}, h.ctrl.SelectedIDs())

	// Replaced wholesale
	h.ctrl.SetSelection([]string{"003002"})
	assert.Equal(t, []string{"003002"}, h.ctrl.SelectedIDs())

	h.ctrl.SelectRows(h.ctrl.PaginatedRecords())
	assert.Equal(t, []string{"003005", "003006"}, h.ctrl.SelectedIDs())
}

func TestBulkDelete_EmptySelection(t *testing.T) {
	svc := &fakeService{records: makeRecords(3, 0)}
	h := newHarness(Options{}, svc)
	h.ctrl.Refresh(t.Context())

	err := h.ctrl.BulkDeleteRequested(t.Context())
	assert.ErrorIs(t, err, ErrNoSelection)

	require.Len(t, h.notifier.notes, 1)
	assert.Equal(t, SeverityError, h.notifier.last().Severity)
	assert.Equal(t, NoSelectionMessage, h.notifier.last().Message)
	assert.Empty(t, svc.deleteCalls)
	assert.Empty(t, h.confirmer.prompts, "no confirmation without a selection")
}

func TestBulkDelete_Success(t *testing.T) {
	svc := &fakeService{records: makeRecords(5, 0)}
	h := newHarness(Options{}, svc)
	h.ctrl.Refresh(t.Context())
	fetchesBefore := svc.fetchCalls

	h.ctrl.SetSelection([]string{"003002", "003004"})
	require.NoError(t, h.ctrl.BulkDeleteRequested(t.Context()))

	require.Len(t, svc.deleteCalls, 1)
	assert.Equal(t, []string{"003002", "003004"}, svc.deleteCalls[0])
	assert.Equal(t, "Contact", svc.deleteObject)
	assert.Equal(t, []string{DeletePrompt}, h.confirmer.prompts)

	assert.Empty(t, h.ctrl.SelectedIDs())
	assert.Equal(t, fetchesBefore+1, svc.fetchCalls, "records are re-fetched")
	assert.Equal(t, []string{"003001", "003003", "003005"}, ids(h.ctrl.Records()))

	assert.Equal(t, SeveritySuccess, h.notifier.last().Severity)
	assert.Equal(t, DeleteSucceededMessage, h.notifier.last().Message)
}

func TestBulkDelete_Declined(t *testing.T) {
	svc := &fakeService{records: makeRecords(5, 0)}
	h := newHarness(Options{PageSize: 2}, svc)
	h.ctrl.Refresh(t.Context())
	h.ctrl.NextPage()
	h.confirmer.answer = false

	h.ctrl.SetSelection([]string{"003001"})
	require.NoError(t, h.ctrl.BulkDeleteRequested(t.Context()))

	assert.Empty(t, svc.deleteCalls)
	assert.Equal(t, []string{"003001"}, h.ctrl.SelectedIDs())
	assert.Equal(t, 2, h.ctrl.CurrentPage())
	assert.Empty(t, h.notifier.notes)
}

func TestBulkDelete_Failure(t *testing.T) {
	svc := &fakeService{records: makeRecords(25, 0), deleteErr: errors.New("ENTITY_IS_LOCKED")}
	h := newHarness(Options{}, svc)
	h.ctrl.Refresh(t.Context())
	h.ctrl.NextPage()
	fetchesBefore := svc.fetchCalls

	h.ctrl.SetSelection([]string{"003011", "003012"})
	require.NoError(t, h.ctrl.BulkDeleteRequested(t.Context()))

	require.Len(t, svc.deleteCalls, 1, "no automatic retry")
	assert.Equal(t, []string{"003011", "003012"}, h.ctrl.SelectedIDs())
	assert.Equal(t, 2, h.ctrl.CurrentPage())
	assert.Equal(t, fetchesBefore, svc.fetchCalls)
	assert.Equal(t, Notification{Title: "Error", Message: "ENTITY_IS_LOCKED", Severity: SeverityError}, h.notifier.last())
}

func TestRowAction_Delete(t *testing.T) {
	svc := &fakeService{records: makeRecords(3, 0)}
	h := newHarness(Options{}, svc)
	h.ctrl.Refresh(t.Context())
	h.ctrl.SetSelection([]string{"003001", "003003"})

	row := h.ctrl.PaginatedRecords()[1]
	h.ctrl.RowActionRequested(t.Context(), ActionDelete, row)

	require.Len(t, svc.deleteCalls, 1)
	assert.Equal(t, []string{"003002"}, svc.deleteCalls[0])
	assert.Empty(t, h.ctrl.SelectedIDs())
	assert.Equal(t, []string{"003001", "003003"}, ids(h.ctrl.Records()))
}

func TestRowAction_DeleteDeclined(t *testing.T) {
	svc := &fakeService{records: makeRecords(3, 0)}
	h := newHarness(Options{}, svc)
	h.ctrl.Refresh(t.Context())
	h.confirmer.answer = false

	h.ctrl.RowActionRequested(t.Context(), ActionDelete, types.Record{"Id": "003001"})

	assert.Empty(t, svc.deleteCalls)
	assert.Len(t, h.ctrl.Records(), 3)
}

func TestRowAction_Edit(t *testing.T) {
	svc := &fakeService{records: makeRecords(2, 0)}
	h := newHarness(Options{ObjectType: "Opportunity"}, svc)
	h.ctrl.Refresh(t.Context())

	h.ctrl.RowActionRequested(t.Context(), ActionEdit, h.ctrl.PaginatedRecords()[0])

	require.Len(t, h.navigator.visits, 1)
	assert.Equal(t, navigation{id: "003001", objectType: "Opportunity"}, h.navigator.visits[0])
	assert.Empty(t, svc.deleteCalls)
	assert.Empty(t, h.confirmer.prompts)
}

func TestRowAction_Unknown(t *testing.T) {
	svc := &fakeService{records: makeRecords(2, 0)}
	h := newHarness(Options{}, svc)
	h.ctrl.Refresh(t.Context())

	h.ctrl.RowActionRequested(t.Context(), "clone", h.ctrl.PaginatedRecords()[0])

	assert.Empty(t, h.navigator.visits)
	assert.Empty(t, svc.deleteCalls)
}

func TestOnDeleteFailed(t *testing.T) {
	h := newHarness(Options{}, &fakeService{records: makeRecords(2, 0)})
	h.ctrl.Refresh(t.Context())
	h.ctrl.SetSelection([]string{"003001"})

	h.ctrl.OnDeleteFailed("insufficient access")

	assert.Equal(t, "insufficient access", h.notifier.last().Message)
	assert.Equal(t, []string{"003001"}, h.ctrl.SelectedIDs())
}
