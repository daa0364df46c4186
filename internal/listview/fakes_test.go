package listview

import (
	"context"
	"fmt"

	"github.com/dbsmedya/golistview/internal/logger"
	"github.com/dbsmedya/golistview/internal/types"
)

// ============================================================================
// Test Helpers
// ============================================================================

type fakeService struct {
	records    []types.Record
	fieldTypes types.FieldTypeMap
	picklists  []types.PicklistField

	recordsErr   error
	typesErr     error
	picklistErr  error
	deleteErr    error
	fetchCalls   int
	lastQuery    Query
	deleteCalls  [][]string
	deleteObject string
}

func (f *fakeService) FetchRecords(_ context.Context, q Query) ([]types.Record, error) {
	f.fetchCalls++
	f.lastQuery = q
	if f.recordsErr != nil {
		return nil, f.recordsErr
	}
	return f.records, nil
}

func (f *fakeService) FetchFieldTypes(_ context.Context, _ string) (types.FieldTypeMap, error) {
	if f.typesErr != nil {
		return nil, f.typesErr
	}
	return f.fieldTypes, nil
}

func (f *fakeService) FetchPicklistValues(_ context.Context, _ string) ([]types.PicklistField, error) {
	if f.picklistErr != nil {
		return nil, f.picklistErr
	}
	return f.picklists, nil
}

func (f *fakeService) DeleteRecords(_ context.Context, objectType string, ids []string) error {
	f.deleteCalls = append(f.deleteCalls, ids)
	f.deleteObject = objectType
	if f.deleteErr != nil {
		return f.deleteErr
	}
	// Emulate the server: deleted rows disappear from the next fetch
	gone := make(map[string]bool, len(ids))
	for _, id := range ids {
		gone[id] = true
	}
	kept := make([]types.Record, 0, len(f.records))
	for _, rec := range f.records {
		if !gone[types.ToString(rec["Id"])] {
			kept = append(kept, rec)
		}
	}
	f.records = kept
	return nil
}

type recordingNotifier struct {
	notes []Notification
}

func (n *recordingNotifier) Notify(note Notification) {
	n.notes = append(n.notes, note)
}

func (n *recordingNotifier) last() Notification {
	if len(n.notes) == 0 {
		return Notification{}
	}
	return n.notes[len(n.notes)-1]
}

type scriptedConfirmer struct {
	answer  bool
	prompts []string
}

func (c *scriptedConfirmer) Confirm(prompt string) bool {
	c.prompts = append(c.prompts, prompt)
	return c.answer
}

type navigation struct {
	id, objectType string
}

type recordingNavigator struct {
	visits []navigation
}

func (n *recordingNavigator) GoToRecordEditPage(id, objectType string) {
	n.visits = append(n.visits, navigation{id, objectType})
}

type harness struct {
	ctrl      *Controller
	service   *fakeService
	notifier  *recordingNotifier
	confirmer *scriptedConfirmer
	navigator *recordingNavigator
}

func newHarness(opts Options, svc *fakeService) *harness {
	if opts.ObjectType == "" {
		opts.ObjectType = "Contact"
	}
	if len(opts.Fields) == 0 && opts.FieldList == "" {
		opts.Fields = []string{"Name", "Status", "Account.Name"}
	}
	h := &harness{
		service:   svc,
		notifier:  &recordingNotifier{},
		confirmer: &scriptedConfirmer{answer: true},
		navigator: &recordingNavigator{},
	}
	ctrl, err := New(opts, Dependencies{
		Service:   svc,
		Navigator: h.navigator,
		Notifier:  h.notifier,
		Confirmer: h.confirmer,
	}, logger.NewNop())
	if err != nil {
		panic(err)
	}
	h.ctrl = ctrl
	return h
}

// makeRecords builds n contacts; the first open of them have Status Open.
func makeRecords(n, open int) []types.Record {
	out := make([]types.Record, 0, n)
	for i := 1; i <= n; i++ {
		status := "Closed"
		if i <= open {
			status = "Open"
		}
		out = append(out, types.Record{
			"Id":     fmt.Sprintf("003%03d", i),
			"Name":   fmt.Sprintf("Contact %d", i),
			"Status": status,
		})
	}
	return out
}

func ids(records []types.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, types.ToString(r["Id"]))
	}
	return out
}
