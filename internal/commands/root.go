package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/ledgerkit/internal/accounts"
	"github.com/cleared-dev/ledgerkit/internal/buildinfo"
	"github.com/cleared-dev/ledgerkit/internal/config"
	"github.com/cleared-dev/ledgerkit/internal/fx"
	"github.com/cleared-dev/ledgerkit/internal/journal"
	"github.com/cleared-dev/ledgerkit/internal/logging"
	"github.com/cleared-dev/ledgerkit/internal/model"
)

// app carries the state shared by every subcommand once the root command
// has parsed its persistent flags.
type app struct {
	repo     string
	logLevel string
	verbose  bool

	cfg *config.Config
	log *zap.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{log: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:     "ledgerkit",
		Short:   "Double-entry bookkeeping for small trading businesses",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.repo, "repo", ".", "ledger directory")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "shorthand for --log-level debug")

	rootCmd.AddCommand(
		newInitCommand(),
		newJournalCommand(a),
		newReportCommand(a),
		newFXCommand(a),
		newTaxCommand(a),
	)

	return rootCmd
}

// setup loads the ledger config (or defaults when the directory has none),
// applies .env and environment overrides, and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	abs, err := filepath.Abs(a.repo)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	a.repo = abs

	cfg, err := config.Load(filepath.Join(a.repo, config.FileName))
	switch {
	case errors.Is(err, os.ErrNotExist):
		cfg = config.Default("", "")
	case err != nil:
		return err
	}
	if err := config.LoadEnv(cfg, filepath.Join(a.repo, ".env")); err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Log.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	if a.verbose {
		level = "debug"
	}
	log, err := logging.New(cmd.ErrOrStderr(), level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

// chart loads the chart of accounts, falling back to the default chart when
// the ledger has none yet.
func (a *app) chart() (*accounts.Service, error) {
	svc, err := accounts.Load(a.repo)
	if errors.Is(err, os.ErrNotExist) {
		a.log.Debug("no chart of accounts, using default", zap.String("repo", a.repo))
		return accounts.NewService(accounts.DefaultChart()), nil
	}
	if err != nil {
		return nil, err
	}
	a.log.Debug("loaded chart of accounts", zap.Int("accounts", len(svc.All())))
	return svc, nil
}

// roles derives posting roles from the chart, then applies config overrides.
func (a *app) roles(chart *accounts.Service) journal.RoleAccounts {
	roles := chart.RoleAccounts()
	for role, id := range a.cfg.Accounts {
		roles[role] = id
	}
	return roles
}

// path resolves p against the ledger directory unless it is absolute.
func (a *app) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.repo, p)
}

// converter loads the rate table named by ratesFile (or the configured one).
func (a *app) converter(ratesFile string) (*fx.Converter, error) {
	if ratesFile == "" {
		ratesFile = a.cfg.Rates.File
	}
	path := a.path(ratesFile)
	table, err := fx.LoadTable(path)
	if err != nil {
		return nil, err
	}
	a.log.Debug("loaded exchange rates", zap.String("file", path), zap.Int("records", table.Len()))
	return fx.NewConverter(table, fx.WithStrict(a.cfg.Rates.Strict), fx.WithLogger(a.log)), nil
}

// currency returns the display definition for code, or a bare one.
func (a *app) currency(code string) model.Currency {
	if cur, ok := a.cfg.LookupCurrency(code); ok {
		return cur
	}
	return model.Currency{Code: code, Symbol: code, DecimalPlaces: 2, SymbolPosition: model.SymbolAfter}
}
