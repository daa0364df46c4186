package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunListViews(t *testing.T) {
	newCRMFixture(t, `  open_cases:
    object_type: Case
    relationship_field: AccountId
    fields: Subject, Status
    page_size: 20
`)

	out, err := runCommand(listViewsCmd, "")
	require.NoError(t, err)

	assert.Contains(t, out, "Views defined in")
	assert.Contains(t, out, "account_contacts")
	assert.Contains(t, out, "open_cases")
	assert.Contains(t, out, "Total: 2 view(s)")
}

func TestRunListViews_MissingConfig(t *testing.T) {
	original := cfgFile
	defer func() { cfgFile = original }()
	cfgFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := runCommand(listViewsCmd, "")
	assert.Error(t, err)
}

func TestRunListViews_NoViews(t *testing.T) {
	original := cfgFile
	defer func() { cfgFile = original }()
	cfgFile = filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("display:\n  page_size: 5\n"), 0644))

	out, err := runCommand(listViewsCmd, "")
	require.NoError(t, err)
	assert.Contains(t, out, "No views defined")
}
