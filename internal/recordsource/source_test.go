package recordsource

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/golistview/internal/config"
	"github.com/dbsmedya/golistview/internal/listview"
	"github.com/dbsmedya/golistview/internal/logger"
	"github.com/dbsmedya/golistview/internal/sqlutil"
	"github.com/dbsmedya/golistview/internal/types"
)

// ============================================================================
// Test Helpers
// ============================================================================

func contactView() *config.ViewConfig {
	return &config.ViewConfig{
		ObjectType:        "Contact",
		RelationshipField: "AccountId",
		Fields:            []string{"Name", "Email", "Account.Name"},
		Relations: []config.Relation{
			{Name: "Account", Table: "Account", ForeignKey: "AccountId"},
			{Name: "Owner", Table: "User", ForeignKey: "OwnerId", PrimaryKey: "UserId"},
		},
		Picklists: map[string][]string{"LeadSource": {"Web", "Phone"}},
	}
}

func newTestSource(t *testing.T, driver string) (*Source, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	src, err := New(db, driver, "crm", contactView(), 2, logger.NewNop())
	require.NoError(t, err)
	return src, mock
}

func contactQuery(fields ...string) listview.Query {
	return listview.Query{
		ParentID:          "001A",
		ObjectType:        "Contact",
		Fields:            fields,
		RelationshipField: "AccountId",
	}
}

// ============================================================================
// New Tests
// ============================================================================

func TestNew_Validation(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = New(nil, "mysql", "", contactView(), 10, nil)
	assert.Error(t, err)

	_, err = New(db, "mysql", "", nil, 10, nil)
	assert.Error(t, err)

	_, err = New(db, "postgres", "", contactView(), 10, nil)
	assert.ErrorContains(t, err, "unsupported driver")

	src, err := New(db, "", "", contactView(), 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "mysql", src.driver)
	assert.Equal(t, 500, src.BatchSize())
}

// ============================================================================
// Query Building Tests
// ============================================================================

func TestBuildSelect(t *testing.T) {
	src, _ := newTestSource(t, "mysql")

	query, args, err := src.BuildSelect(contactQuery("Name", "Email", "Account.Name", "Owner.Name", "Account.Industry"))
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT `Contact`.`Id` AS `Id`, `Contact`.`Name` AS `Name`, `Contact`.`Email` AS `Email`, "+
			"`Account`.`Name` AS `Account.Name`, `Owner`.`Name` AS `Owner.Name`, `Account`.`Industry` AS `Account.Industry` "+
			"FROM `Contact` "+
			"LEFT JOIN `Account` AS `Account` ON `Account`.`Id` = `Contact`.`AccountId` "+
			"LEFT JOIN `User` AS `Owner` ON `Owner`.`UserId` = `Contact`.`OwnerId` "+
			"WHERE `Contact`.`AccountId` = ? ORDER BY `Contact`.`Id`",
		query)
	assert.Equal(t, []interface{}{"001A"}, args)
}

func TestBuildSelect_SkipsUnresolvableFields(t *testing.T) {
	src, _ := newTestSource(t, "mysql")

	query, _, err := src.BuildSelect(contactQuery("Id", "Name", "name", "Case.Subject", "Account.Owner.Name"))
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT `Contact`.`Id` AS `Id`, `Contact`.`Name` AS `Name` FROM `Contact` "+
			"WHERE `Contact`.`AccountId` = ? ORDER BY `Contact`.`Id`",
		query)
}

func TestBuildSelect_FallsBackToViewRelationshipField(t *testing.T) {
	src, _ := newTestSource(t, "mysql")

	q := contactQuery("Name")
	q.RelationshipField = ""
	query, _, err := src.BuildSelect(q)
	require.NoError(t, err)
	assert.Contains(t, query, "WHERE `Contact`.`AccountId` = ?")
}

func TestBuildSelect_RejectsInvalidIdentifiers(t *testing.T) {
	src, _ := newTestSource(t, "mysql")

	for _, field := range []string{"Name; DROP TABLE Contact", "Account.Na`me", ""} {
		_, _, err := src.BuildSelect(contactQuery(field))
		var invalid *sqlutil.InvalidIdentifierError
		assert.ErrorAs(t, err, &invalid, field)
	}

	q := contactQuery("Name")
	q.RelationshipField = "Account Id"
	_, _, err := src.BuildSelect(q)
	assert.Error(t, err)
}

// ============================================================================
// FetchRecords Tests
// ============================================================================

func TestFetchRecords(t *testing.T) {
	src, mock := newTestSource(t, "mysql")
	q := contactQuery("Name", "Account.Name")
	query, _, err := src.BuildSelect(q)
	require.NoError(t, err)

	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(query).
		WithArgs("001A").
		WillReturnRows(sqlmock.NewRows([]string{"Id", "Name", "Account.Name"}).
			AddRow([]byte("003A"), []byte("Ada"), []byte("Acme")).
			AddRow("003B", "Alan", nil).
			AddRow("003C", created, "Initech"))

	records, err := src.FetchRecords(t.Context(), q)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, types.Record{"Id": "003A", "Name": "Ada", "Account": types.Record{"Name": "Acme"}}, records[0])
	assert.Equal(t, types.Record{"Id": "003B", "Name": "Alan", "Account": types.Record{"Name": nil}}, records[1])
	assert.Equal(t, created, records[2]["Name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchRecords_FlattenThroughListView(t *testing.T) {
	src, mock := newTestSource(t, "mysql")
	q := contactQuery("Name", "Account.Name")
	query, _, err := src.BuildSelect(q)
	require.NoError(t, err)

	mock.ExpectQuery(query).
		WithArgs("001A").
		WillReturnRows(sqlmock.NewRows([]string{"Id", "Name", "Account.Name"}).
			AddRow("003A", "Ada", "Acme").
			AddRow("003B", "Alan", nil))

	raw, err := src.FetchRecords(t.Context(), q)
	require.NoError(t, err)

	flat := listview.FlattenRecords(raw, q.Fields, "Contact", "Id", config.DefaultURLTemplate)
	assert.Equal(t, "Acme", flat[0]["Account_Name"])
	assert.Equal(t, listview.NotAvailable, flat[1]["Account_Name"])
}

func TestFetchRecords_QueryError(t *testing.T) {
	src, mock := newTestSource(t, "mysql")
	q := contactQuery("Name")
	query, _, err := src.BuildSelect(q)
	require.NoError(t, err)

	mock.ExpectQuery(query).WithArgs("001A").WillReturnError(errors.New("connection reset"))

	_, err = src.FetchRecords(t.Context(), q)
	assert.ErrorContains(t, err, "connection reset")
}

func TestFetchRecords_WrongObject(t *testing.T) {
	src, _ := newTestSource(t, "mysql")
	q := contactQuery("Name")
	q.ObjectType = "Opportunity"

	_, err := src.FetchRecords(t.Context(), q)
	assert.ErrorContains(t, err, "Opportunity")
}

func TestFetchRecords_Empty(t *testing.T) {
	src, mock := newTestSource(t, "mysql")
	q := contactQuery("Name")
	query, _, err := src.BuildSelect(q)
	require.NoError(t, err)

	mock.ExpectQuery(query).WithArgs("001A").WillReturnRows(sqlmock.NewRows([]string{"Id", "Name"}))

	records, err := src.FetchRecords(t.Context(), q)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestBuildRecord(t *testing.T) {
	rec := buildRecord(
		[]string{"Id", "Account.Name", "Account.Industry", "Owner.Name"},
		[]interface{}{"1", []byte("Acme"), "Tech", nil},
	)
	assert.Equal(t, types.Record{
		"Id":      "1",
		"Account": types.Record{"Name": "Acme", "Industry": "Tech"},
		"Owner":   types.Record{"Name": nil},
	}, rec)
}

func TestBuildRecord_PlainColumnKeepsRelationName(t *testing.T) {
	for _, names := range [][]string{
		{"Id", "Account", "Account.Name"},
		{"Id", "Account.Name", "Account"},
	} {
		values := []interface{}{"1", "001A", "Acme"}
		if names[1] == "Account.Name" {
			values = []interface{}{"1", "Acme", "001A"}
		}
		rec := buildRecord(names, values)
		assert.Equal(t, types.Record{"Id": "1", "Account": "001A"}, rec, names)
	}
}
