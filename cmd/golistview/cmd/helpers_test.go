package cmd

import (
	"bytes"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

// ============================================================================
// Test Helpers
// ============================================================================

// crmFixture is a SQLite database with one account holding twelve contacts
// (the first seven Open) and a second account holding one.
type crmFixture struct {
	dbPath     string
	configPath string
}

func newCRMFixture(t *testing.T, extraViews string) *crmFixture {
	t.Helper()
	dir := t.TempDir()
	f := &crmFixture{
		dbPath:     filepath.Join(dir, "crm.db"),
		configPath: filepath.Join(dir, "golistview.yaml"),
	}

	db, err := sql.Open("sqlite3", f.dbPath)
	require.NoError(t, err)
	defer db.Close()

	stmts := []string{
		"CREATE TABLE Account (Id TEXT PRIMARY KEY, Name TEXT)",
		"CREATE TABLE Contact (Id TEXT PRIMARY KEY, Name TEXT, Email TEXT, Status TEXT, AccountId TEXT)",
		"INSERT INTO Account VALUES ('001A', 'Acme'), ('001B', 'Globex')",
		"INSERT INTO Contact VALUES ('003B01', 'Other Person', NULL, 'Open', '001B')",
	}
	for i := 1; i <= 12; i++ {
		status := "Closed"
		if i <= 7 {
			status = "Open"
		}
		stmts = append(stmts, fmt.Sprintf(
			"INSERT INTO Contact VALUES ('003A%02d', 'Contact %02d', 'c%02d@acme.test', '%s', '001A')",
			i, i, i, status))
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}

	config := fmt.Sprintf(`source:
  driver: sqlite3
  path: %s

display:
  page_size: 5
  color: false

logging:
  level: error
  output: %s

views:
  account_contacts:
    object_type: Contact
    record_id: "001A"
    relationship_field: AccountId
    fields: Name, Status, Account.Name
    relations:
      - name: Account
        table: Account
        foreign_key: AccountId
    picklists:
      Status: [Open, Closed]
%s`, f.dbPath, filepath.Join(dir, "golistview.log"), extraViews)
	require.NoError(t, os.WriteFile(f.configPath, []byte(config), 0644))

	original := cfgFile
	cfgFile = f.configPath
	t.Cleanup(func() { cfgFile = original })

	return f
}

// contactIDs lists the contact ids of an account.
func (f *crmFixture) contactIDs(t *testing.T, accountID string) []string {
	t.Helper()
	db, err := sql.Open("sqlite3", f.dbPath)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query("SELECT Id FROM Contact WHERE AccountId = ? ORDER BY Id", accountID)
	require.NoError(t, err)
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		require.NoError(t, rows.Scan(&id))
		ids = append(ids, id)
	}
	require.NoError(t, rows.Err())
	return ids
}

// runCommand runs a command's RunE with the given stdin and captures output.
func runCommand(cmd *cobra.Command, stdin string) (string, error) {
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetIn(strings.NewReader(stdin))
	defer func() {
		cmd.SetOut(nil)
		cmd.SetErr(nil)
		cmd.SetIn(nil)
	}()

	err := cmd.RunE(cmd, nil)
	return buf.String(), err
}
