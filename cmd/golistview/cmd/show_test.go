package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetShowFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		showView, showParent, showFilters, showPage = "", "", nil, 1
	})
}

func TestRunShow_FirstPage(t *testing.T) {
	newCRMFixture(t, "")
	resetShowFlags(t)
	showView = "account_contacts"
	showPage = 1

	out, err := runCommand(showCmd, "")
	require.NoError(t, err)

	assert.Contains(t, out, "Contact (12) [standard:contact]")
	assert.Contains(t, out, "Contact 01")
	assert.Contains(t, out, "Contact 05")
	assert.NotContains(t, out, "Contact 06")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "Page 1 of 3")
}

func TestRunShow_FilterAndPage(t *testing.T) {
	newCRMFixture(t, "")
	resetShowFlags(t)
	showView = "account_contacts"
	showFilters = []string{"Status equals Open"}
	showPage = 2

	out, err := runCommand(showCmd, "")
	require.NoError(t, err)

	assert.Contains(t, out, "Contact (7) [standard:contact]")
	assert.Contains(t, out, "[Status equals open]")
	assert.Contains(t, out, "Contact 06")
	assert.Contains(t, out, "Contact 07")
	assert.NotContains(t, out, "Contact 05")
	assert.Contains(t, out, "Page 2 of 2")
}

func TestRunShow_PageBeyondLast(t *testing.T) {
	newCRMFixture(t, "")
	resetShowFlags(t)
	showView = "account_contacts"
	showPage = 99

	out, err := runCommand(showCmd, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Page 3 of 3")
	assert.Contains(t, out, "Contact 12")
}

func TestRunShow_ParentOverride(t *testing.T) {
	newCRMFixture(t, "")
	resetShowFlags(t)
	showView = "account_contacts"
	showParent = "001B"

	out, err := runCommand(showCmd, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Contact (1) [standard:contact]")
	assert.Contains(t, out, "Other Person")
	assert.Contains(t, out, "Globex")
}

func TestRunShow_InvalidFilter(t *testing.T) {
	newCRMFixture(t, "")
	resetShowFlags(t)
	showView = "account_contacts"
	showFilters = []string{"Status"}

	_, err := runCommand(showCmd, "")
	assert.Error(t, err)
}

func TestRunShow_UnknownView(t *testing.T) {
	newCRMFixture(t, "")
	resetShowFlags(t)
	showView = "nonexistent"

	_, err := runCommand(showCmd, "")
	assert.Error(t, err)
}
