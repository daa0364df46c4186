package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetBrowseFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { browseView, browseParent = "", "" })
}

func TestRunBrowse_FilterSelectDelete(t *testing.T) {
	f := newCRMFixture(t, "")
	resetBrowseFlags(t)
	browseView = "account_contacts"

	out, err := runCommand(browseCmd, "filter Status equals Closed\nselect 1 2\ndelete\ny\nquit\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Contact (5) [standard:contact]")
	assert.Contains(t, out, "2 selected")
	assert.Contains(t, out, "Success: Record(s) deleted successfully")
	assert.Contains(t, out, "Contact (3) [standard:contact]")

	ids := f.contactIDs(t, "001A")
	assert.Len(t, ids, 10)
	assert.NotContains(t, ids, "003A08")
	assert.NotContains(t, ids, "003A09")
}

func TestRunBrowse_Paging(t *testing.T) {
	newCRMFixture(t, "")
	resetBrowseFlags(t)
	browseView = "account_contacts"

	out, err := runCommand(browseCmd, "next\nnext\nnext\nprev\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Page 2 of 3")
	assert.Contains(t, out, "Page 3 of 3")
	assert.Contains(t, out, "Contact 12")
}

func TestRunBrowse_Commands(t *testing.T) {
	newCRMFixture(t, "")
	resetBrowseFlags(t)
	browseView = "account_contacts"

	input := "fields\noperators\nvalues Status\nvalues Name\nbogus\nedit 1\nhelp\nunfilter Nothing\nq\n"
	out, err := runCommand(browseCmd, input)
	require.NoError(t, err)

	assert.Contains(t, out, "Filter fields")
	assert.Contains(t, out, "notContains")
	assert.Contains(t, out, "Values of Status")
	assert.Contains(t, out, "Closed")
	assert.Contains(t, out, `"Name" is not a picklist field`)
	assert.Contains(t, out, `unknown command "bogus"`)
	assert.Contains(t, out, "Edit Contact 003A01: /lightning/r/Contact/003A01/edit")
	assert.Contains(t, out, "select none")
	assert.Contains(t, out, `no filter labelled "Nothing"`)
}

func TestRunBrowse_RemoveDeclined(t *testing.T) {
	f := newCRMFixture(t, "")
	resetBrowseFlags(t)
	browseView = "account_contacts"

	_, err := runCommand(browseCmd, "remove 1\nno\nremove 9\n")
	require.NoError(t, err)
	assert.Len(t, f.contactIDs(t, "001A"), 12)
}
