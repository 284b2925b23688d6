package accounts

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgerkit/internal/model"
)

func TestRoundTrip(t *testing.T) {
	accounts := []model.Account{
		{ID: "cash", Code: "1111", Name: "Cash", Type: model.AccountTypeAsset, Description: "Cash on hand"},
		{ID: "fx_loss", Code: "500001", Name: "Exchange Loss, realised", Type: model.AccountTypeExpense},
	}

	var buf bytes.Buffer
	err := WriteAccounts(&buf, accounts)
	require.NoError(t, err)

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, accounts[0].ID, got[0].ID)
	assert.Equal(t, accounts[0].Code, got[0].Code)
	assert.Equal(t, accounts[0].Name, got[0].Name)
	assert.Equal(t, accounts[0].Type, got[0].Type)
	assert.Equal(t, accounts[0].Description, got[0].Description)

	assert.Equal(t, accounts[1].Name, got[1].Name)
	assert.Equal(t, model.AccountCode("500001"), got[1].Code)
}

func TestParentID(t *testing.T) {
	accounts := []model.Account{
		{ID: "bank", Code: "1112", Name: "Bank", Type: model.AccountTypeAsset},
		{ID: "bank-usd", Code: "111201", Name: "Bank USD", Type: model.AccountTypeAsset, ParentID: "bank"},
	}

	var buf bytes.Buffer
	err := WriteAccounts(&buf, accounts)
	require.NoError(t, err)

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Empty(t, got[0].ParentID)
	assert.Equal(t, model.AccountID("bank"), got[1].ParentID)
}

func TestUnmarshalAccount_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		record []string
	}{
		{"short row", []string{"cash", "1111"}},
		{"empty id", []string{"", "1111", "Cash", "asset", "", ""}},
		{"bad type", []string{"cash", "1111", "Cash", "assets", "", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalAccount(tt.record)
			assert.Error(t, err)
		})
	}
}

func TestDefaultChart(t *testing.T) {
	chart := DefaultChart()
	require.NotEmpty(t, chart)

	codes := make(map[model.AccountCode]bool)
	for _, acct := range chart {
		codes[acct.Code] = true
		assert.NotEmpty(t, acct.Name, "account %s missing name", acct.ID)
		assert.NotEmpty(t, acct.Type, "account %s missing type", acct.ID)
	}

	// Every posting role has an account.
	for _, role := range model.Roles() {
		assert.True(t, codes[role.Code()], "no account for role %s", role)
	}
}

func TestReadTestdata(t *testing.T) {
	f, err := os.Open("../../testdata/chart-of-accounts.csv")
	require.NoError(t, err)
	defer f.Close()

	accounts, err := ReadAccounts(f)
	require.NoError(t, err)
	require.Len(t, accounts, len(DefaultChart()), "testdata mirrors the default chart")

	types := make(map[model.AccountType]bool)
	for _, acct := range accounts {
		types[acct.Type] = true
	}
	assert.True(t, types[model.AccountTypeAsset])
	assert.True(t, types[model.AccountTypeLiability])
	assert.True(t, types[model.AccountTypeEquity])
	assert.True(t, types[model.AccountTypeRevenue])
	assert.True(t, types[model.AccountTypeExpense])
}

func TestDefaultChartRoundTrip(t *testing.T) {
	chart := DefaultChart()

	var buf bytes.Buffer
	err := WriteAccounts(&buf, chart)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "account_id,account_code,"))

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	assert.Equal(t, chart, got)
}
