package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/ledgerkit/internal/model"
)

// FileName is the config file at the root of a ledger directory.
const FileName = "ledgerkit.yaml"

// Environment overrides applied by LoadEnv.
const (
	EnvBaseCurrency = "LEDGERKIT_BASE_CURRENCY"
	EnvLocale       = "LEDGERKIT_LOCALE"
	EnvLogLevel     = "LEDGERKIT_LOG_LEVEL"
	EnvStrictRates  = "LEDGERKIT_STRICT_RATES"
)

// Config represents the top-level ledgerkit.yaml configuration.
type Config struct {
	Business BusinessConfig                 `yaml:"business"`
	Fiscal   FiscalConfig                   `yaml:"fiscal"`
	Currency CurrencyConfig                 `yaml:"currency"`
	Rates    RatesConfig                    `yaml:"rates"`
	Accounts map[model.Role]model.AccountID `yaml:"accounts,omitempty"`
	Log      LogConfig                      `yaml:"log"`
	Git      GitConfig                      `yaml:"git"`
}

// BusinessConfig identifies the business entity.
type BusinessConfig struct {
	Name string `yaml:"name"`
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start"` // "MM-DD" format, e.g. "01-01"
}

// CurrencyConfig sets the reporting currency and the currencies in use.
type CurrencyConfig struct {
	Base       string           `yaml:"base"`
	Locale     string           `yaml:"locale"`
	Currencies []model.Currency `yaml:"currencies,omitempty"`
}

// RatesConfig points at the exchange-rate history.
type RatesConfig struct {
	File   string `yaml:"file"`
	Strict bool   `yaml:"strict"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// GitConfig controls committing the ledger after each posting run.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a ledgerkit.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Currency.Base == "" {
		cfg.Currency.Base = model.DefaultBaseCurrency
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default(businessName, baseCurrency string) *Config {
	if baseCurrency == "" {
		baseCurrency = model.DefaultBaseCurrency
	}
	return &Config{
		Business: BusinessConfig{Name: businessName},
		Fiscal:   FiscalConfig{YearStart: "01-01"},
		Currency: CurrencyConfig{
			Base:       strings.ToUpper(baseCurrency),
			Locale:     "en-US",
			Currencies: DefaultCurrencies(),
		},
		Rates: RatesConfig{File: "rates/exchange-rates.csv"},
		Log:   LogConfig{Level: "info", Format: "console"},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "ledgerkit",
			AuthorEmail: "ledgerkit@localhost",
		},
	}
}

// DefaultCurrencies returns the currencies a new ledger knows about.
func DefaultCurrencies() []model.Currency {
	return []model.Currency{
		{Code: "SAR", Name: "Saudi Riyal", Symbol: "ر.س", DecimalPlaces: 2, SymbolPosition: model.SymbolAfter},
		{Code: "YER", Name: "Yemeni Rial", Symbol: "﷼", DecimalPlaces: 0, SymbolPosition: model.SymbolAfter},
		{Code: "OMR", Name: "Omani Rial", Symbol: "ر.ع", DecimalPlaces: 3, SymbolPosition: model.SymbolAfter},
		{Code: "USD", Name: "US Dollar", Symbol: "$", DecimalPlaces: 2, SymbolPosition: model.SymbolBefore},
	}
}

// LookupCurrency returns the definition for code.
func (c *Config) LookupCurrency(code string) (model.Currency, bool) {
	for _, cur := range c.Currency.Currencies {
		if strings.EqualFold(cur.Code, code) {
			return cur, true
		}
	}
	return model.Currency{}, false
}

// LoadEnv loads envFile (if it exists) into the process environment and
// applies the LEDGERKIT_* overrides to cfg. Variables already set in the
// environment win over the file.
func LoadEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("loading %s: %w", envFile, err)
			}
		}
	}

	if v := os.Getenv(EnvBaseCurrency); v != "" {
		cfg.Currency.Base = strings.ToUpper(v)
	}
	if v := os.Getenv(EnvLocale); v != "" {
		cfg.Currency.Locale = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvStrictRates); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvStrictRates, v, err)
		}
		cfg.Rates.Strict = strict
	}
	return nil
}
