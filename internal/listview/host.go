package listview

import (
	"context"

	"github.com/dbsmedya/golistview/internal/types"
)

// Query identifies the related records a list view shows.
type Query struct {
	ParentID          string
	ObjectType        string
	Fields            []string
	RelationshipField string
}

// RecordService is the data service behind a list view. Its four calls are
// independent: any of them may fail without affecting the others.
type RecordService interface {
	FetchRecords(ctx context.Context, q Query) ([]types.Record, error)
	FetchFieldTypes(ctx context.Context, objectType string) (types.FieldTypeMap, error)
	FetchPicklistValues(ctx context.Context, objectType string) ([]types.PicklistField, error)
	DeleteRecords(ctx context.Context, objectType string, ids []string) error
}

// Navigator opens record pages in the host.
type Navigator interface {
	GoToRecordEditPage(recordID, objectType string)
}

// Severity of a user notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a message shown to the user.
type Notification struct {
	Title    string
	Message  string
	Severity Severity
}

// Notifier displays notifications to the user.
type Notifier interface {
	Notify(n Notification)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Dependencies bundles the collaborators a Controller talks to.
// Service is required; a nil Navigator or Notifier drops the request and a
// nil Confirmer declines every destructive action.
type Dependencies struct {
	Service   RecordService
	Navigator Navigator
	Notifier  Notifier
	Confirmer Confirmer
}

type nopNavigator struct{}

func (nopNavigator) GoToRecordEditPage(string, string) {}

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) {}

type declineConfirmer struct{}

func (declineConfirmer) Confirm(string) bool { return false }
