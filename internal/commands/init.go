package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgerkit/internal/accounts"
	"github.com/cleared-dev/ledgerkit/internal/config"
	"github.com/cleared-dev/ledgerkit/internal/fx"
	"github.com/cleared-dev/ledgerkit/internal/gitops"
)

func newInitCommand() *cobra.Command {
	var name string
	var baseCurrency string
	var useGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, name, baseCurrency, useGit, cmd); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized ledger %q at %s\n", name, absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&baseCurrency, "base-currency", "SAR", "reporting currency")
	cmd.Flags().BoolVar(&useGit, "git", false, "initialize a git repository and commit the skeleton")

	return cmd
}

func runInit(dir, name, baseCurrency string, useGit bool, cmd *cobra.Command) error {
	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
		return fmt.Errorf("%s already contains %s", dir, config.FileName)
	}

	dirs := []string{"accounts", "events", "journal", "rates", "import", "logs"}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(name, baseCurrency)
	cfg.Git.AutoCommit = useGit
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	svc := accounts.NewService(accounts.DefaultChart())
	if err := svc.Save(dir); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	rates, err := os.Create(filepath.Join(dir, cfg.Rates.File))
	if err != nil {
		return fmt.Errorf("creating rates file: %w", err)
	}
	if err := fx.WriteRates(rates, nil); err != nil {
		rates.Close()
		return fmt.Errorf("writing rates file: %w", err)
	}
	if err := rates.Close(); err != nil {
		return fmt.Errorf("closing rates file: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(".env\n"), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if !useGit {
		return nil
	}

	ctx := cmd.Context()
	if err := gitops.Init(ctx, dir); err != nil {
		return err
	}
	hash, err := gitops.CommitAll(ctx, dir, "init: "+name, gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail})
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Committed skeleton (%s)\n", hash)
	return nil
}
