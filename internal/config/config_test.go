package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgerkit/internal/model"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Test Biz", "usd")
	cfg.Accounts = map[model.Role]model.AccountID{model.RoleCash: "till"}
	cfg.Rates.Strict = true

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Business.Name, got.Business.Name)
	assert.Equal(t, "USD", got.Currency.Base)
	assert.Equal(t, cfg.Currency.Locale, got.Currency.Locale)
	assert.Equal(t, cfg.Currency.Currencies, got.Currency.Currencies)
	assert.Equal(t, cfg.Fiscal.YearStart, got.Fiscal.YearStart)
	assert.Equal(t, cfg.Rates, got.Rates)
	assert.Equal(t, cfg.Log, got.Log)
	assert.Equal(t, cfg.Git, got.Git)
	assert.Equal(t, model.AccountID("till"), got.Accounts[model.RoleCash])
}

func TestDefaults(t *testing.T) {
	cfg := Default("My Company", "")

	assert.Equal(t, "My Company", cfg.Business.Name)
	assert.Equal(t, model.DefaultBaseCurrency, cfg.Currency.Base)
	assert.Equal(t, "en-US", cfg.Currency.Locale)
	assert.Equal(t, "01-01", cfg.Fiscal.YearStart)
	assert.Equal(t, "rates/exchange-rates.csv", cfg.Rates.File)
	assert.False(t, cfg.Rates.Strict)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Accounts)
	assert.False(t, cfg.Git.AutoCommit)
	assert.Equal(t, "ledgerkit", cfg.Git.AuthorName)

	usd, ok := cfg.LookupCurrency("usd")
	require.True(t, ok)
	assert.Equal(t, model.SymbolBefore, usd.SymbolPosition)
	_, ok = cfg.LookupCurrency("GBP")
	assert.False(t, ok)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_DefaultsBaseCurrency(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("business:\n  name: Bare\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultBaseCurrency, cfg.Currency.Base)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Test Biz", "SAR")
	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test Biz")
	assert.Contains(t, contents, "base: SAR")
	assert.Contains(t, contents, "year_start: 01-01")
	assert.Contains(t, contents, "symbol_position: before")
	assert.Contains(t, contents, "strict: false")
}

func TestLoadEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LEDGERKIT_LOCALE=de-DE\nLEDGERKIT_STRICT_RATES=true\n"), 0o644))
	t.Setenv(EnvBaseCurrency, "usd")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLocale, "")
	t.Setenv(EnvStrictRates, "")
	// godotenv does not override variables that are already set, even if empty.
	require.NoError(t, os.Unsetenv(EnvLocale))
	require.NoError(t, os.Unsetenv(EnvStrictRates))

	cfg := Default("Biz", "SAR")
	require.NoError(t, LoadEnv(cfg, envFile))

	assert.Equal(t, "USD", cfg.Currency.Base)
	assert.Equal(t, "de-DE", cfg.Currency.Locale)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Rates.Strict)
}

func TestLoadEnv_MissingFileAndBadBool(t *testing.T) {
	cfg := Default("Biz", "SAR")
	t.Setenv(EnvStrictRates, "")
	require.NoError(t, LoadEnv(cfg, filepath.Join(t.TempDir(), ".env")))
	assert.Equal(t, "SAR", cfg.Currency.Base)

	t.Setenv(EnvStrictRates, "maybe")
	assert.Error(t, LoadEnv(cfg, ""))
}
