package accounts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgerkit/internal/model"
)

func TestNewService(t *testing.T) {
	chart := DefaultChart()
	svc := NewService(chart)

	assert.Len(t, svc.All(), len(chart))
}

func TestGetExists(t *testing.T) {
	svc := NewService(DefaultChart())

	acct, ok := svc.Get("cash")
	assert.True(t, ok)
	assert.Equal(t, "Cash", acct.Name)
	assert.Equal(t, "Cash", svc.Name("cash"))

	_, ok = svc.Get("nope")
	assert.False(t, ok)
	assert.Empty(t, svc.Name("nope"))

	assert.True(t, svc.Exists("inventory"))
	assert.False(t, svc.Exists("nope"))

	acct, ok = svc.ByCode(model.CodeFXGain)
	require.True(t, ok)
	assert.Equal(t, model.AccountID("fx_gain"), acct.ID)
}

func TestByType(t *testing.T) {
	svc := NewService(DefaultChart())

	assets := svc.ByType(model.AccountTypeAsset)
	assert.Len(t, assets, 4)
	for _, a := range assets {
		assert.Equal(t, model.AccountTypeAsset, a.Type)
	}

	assert.Len(t, svc.ByType(model.AccountTypeExpense), 3)
}

func TestRoleAccounts(t *testing.T) {
	roles := NewService(DefaultChart()).RoleAccounts()
	assert.Len(t, roles, len(model.Roles()))
	assert.Equal(t, model.AccountID("payables"), roles[model.RolePayables])

	partial := NewService([]model.Account{
		{ID: "till", Code: model.CodeCash, Name: "Till", Type: model.AccountTypeAsset},
	}).RoleAccounts()
	assert.Equal(t, model.AccountID("till"), partial[model.RoleCash])
	_, ok := partial[model.RoleBank]
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	svc := NewService(DefaultChart())

	tests := []struct {
		ref  string
		want model.AccountID
	}{
		{"bank", "bank"},
		{"2110", "payables"},
		{"cost of goods sold", "cogs"},
	}
	for _, tt := range tests {
		got, err := svc.Resolve(tt.ref)
		require.NoError(t, err, tt.ref)
		assert.Equal(t, tt.want, got.ID)
	}

	_, err := svc.Resolve("invntory")
	require.ErrorIs(t, err, ErrUnknownAccount)
	assert.Contains(t, err.Error(), "did you mean inventory (Inventory)")

	_, err = svc.Resolve("zzzzzzzzzzzz")
	require.ErrorIs(t, err, ErrUnknownAccount)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestSuggest(t *testing.T) {
	svc := NewService(DefaultChart())

	got := svc.Suggest("Cahs", 2)
	require.NotEmpty(t, got)
	assert.Equal(t, model.AccountID("cash"), got[0].ID)
	assert.LessOrEqual(t, len(got), 2)
}

func TestLoadFromTestdata(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "accounts"), 0o755))

	src, err := os.ReadFile("../../testdata/chart-of-accounts.csv")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(Path(dir), src, 0o644))

	svc, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, svc.All(), 12)
	assert.True(t, svc.Exists("fx_loss"))
}

func TestSaveRoundTrip(t *testing.T) {
	chart := DefaultChart()
	svc := NewService(chart)

	dir := t.TempDir()
	err := svc.Save(dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "accounts", "chart-of-accounts.csv"))
	require.NoError(t, err)

	svc2, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, svc2.All(), len(chart))

	for _, orig := range chart {
		got, ok := svc2.Get(orig.ID)
		require.True(t, ok, "account %s should exist", orig.ID)
		assert.Equal(t, orig.Name, got.Name)
		assert.Equal(t, orig.Code, got.Code)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}
