package host

import (
	"context"

	"github.com/dbsmedya/golistview/internal/listview"
	"github.com/dbsmedya/golistview/internal/types"
)

type memoryService struct {
	deleted []string
}

func (m *memoryService) FetchRecords(context.Context, listview.Query) ([]types.Record, error) {
	return nil, nil
}

func (m *memoryService) FetchFieldTypes(context.Context, string) (types.FieldTypeMap, error) {
	return types.FieldTypeMap{}, nil
}

func (m *memoryService) FetchPicklistValues(context.Context, string) ([]types.PicklistField, error) {
	return nil, nil
}

func (m *memoryService) DeleteRecords(_ context.Context, _ string, ids []string) error {
	m.deleted = append(m.deleted, ids...)
	return nil
}
