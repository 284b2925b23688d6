package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/ledgerkit/internal/events"
	"github.com/cleared-dev/ledgerkit/internal/gitops"
	"github.com/cleared-dev/ledgerkit/internal/id"
	"github.com/cleared-dev/ledgerkit/internal/journal"
	"github.com/cleared-dev/ledgerkit/internal/model"
	"github.com/cleared-dev/ledgerkit/internal/postinglog"
)

// defaultJournal is the journal file under a ledger directory.
const defaultJournal = "journal/journal.csv"

func newJournalCommand(a *app) *cobra.Command {
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Build and check journal entries",
	}
	journalCmd.AddCommand(newJournalBuildCommand(a), newJournalValidateCommand(a))
	return journalCmd
}

func newJournalBuildCommand(a *app) *cobra.Command {
	var out string
	var draft bool
	var commit bool

	cmd := &cobra.Command{
		Use:   "build <events.yaml>",
		Short: "Turn business events into journal entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = defaultJournal
			}
			return a.runJournalBuild(cmd, args[0], a.path(out), draft, commit)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "journal CSV to append to (default "+defaultJournal+")")
	cmd.Flags().BoolVar(&draft, "draft", false, "leave entries as drafts instead of posting them")
	cmd.Flags().BoolVar(&commit, "commit", false, "commit the ledger directory afterwards (implied by git.auto_commit)")

	return cmd
}

func (a *app) runJournalBuild(cmd *cobra.Command, eventsPath, out string, draft, commit bool) error {
	chart, err := a.chart()
	if err != nil {
		return err
	}
	evs, err := events.Load(eventsPath, chart)
	if err != nil {
		return err
	}
	a.log.Debug("loaded events", zap.String("file", eventsPath), zap.Int("events", len(evs)))

	existing, err := readJournal(out)
	if err != nil {
		return err
	}
	refs := make([]string, len(existing))
	for i, e := range existing {
		refs[i] = e.Reference
	}
	seq := id.NewSequencer(refs)

	poster := journal.Poster{Accounts: a.roles(chart), BaseCurrency: a.cfg.Currency.Base}
	var built []model.JournalEntry
	var logged []postinglog.Entry
	now := time.Now()
	lines := 0

	for i, ev := range evs {
		res, err := poster.Build(ev)
		if err != nil {
			return fmt.Errorf("event %d (%s): %w", i+1, ev.Kind(), err)
		}
		if res.Empty() {
			a.log.Debug("event produced no lines", zap.Int("event", i+1), zap.String("kind", string(ev.Kind())))
			continue
		}

		entry := journal.FromResult(ev.EventDate(), seq.Next(ev.EventDate()), res)
		if !draft {
			if entry, err = journal.Post(entry); err != nil {
				return fmt.Errorf("event %d (%s): %w", i+1, ev.Kind(), err)
			}
		}
		a.log.Debug("built entry",
			zap.String("reference", entry.Reference),
			zap.String("description", entry.Description),
			zap.Int("lines", len(entry.Lines)),
		)
		built = append(built, entry)
		lines += len(entry.Lines)
		logged = append(logged, postinglog.Entry{
			Timestamp: now,
			Action:    postinglog.ActionPost,
			Source:    filepath.Base(eventsPath),
			Reference: entry.Reference,
			EntryID:   entry.ID,
			Total:     res.TotalDebit,
		})
	}

	if err := writeJournal(out, append(existing, built...)); err != nil {
		return err
	}
	if !draft {
		if err := postinglog.Append(a.repo, logged); err != nil {
			a.log.Warn("failed to write posting log", zap.Error(err))
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Built %d entries (%d lines) into %s\n", len(built), lines, out)

	if !(commit || a.cfg.Git.AutoCommit) || len(built) == 0 {
		return nil
	}
	if !gitops.IsRepo(a.repo) {
		a.log.Warn("ledger is not a git repository, skipping commit", zap.String("repo", a.repo))
		return nil
	}
	msg := fmt.Sprintf("post: %s (%d entries)", filepath.Base(eventsPath), len(built))
	hash, err := gitops.CommitAll(cmd.Context(), a.repo, msg, gitops.Author{Name: a.cfg.Git.AuthorName, Email: a.cfg.Git.AuthorEmail})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Committed %s\n", hash)
	return nil
}

func newJournalValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [journal.csv...]",
		Short: "Check every entry in a journal for balance and line errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{a.path(defaultJournal)}
			}
			bad := 0
			for _, path := range args {
				entries, err := readJournal(path)
				if err != nil {
					return err
				}
				for _, e := range entries {
					for _, verr := range journal.ValidateLines(e.Lines) {
						bad++
						fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", path, e.Reference, verr.Error())
					}
				}
			}
			if bad > 0 {
				return fmt.Errorf("%d problems found", bad)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All entries balanced")
			return nil
		},
	}
}

// readJournal reads a journal CSV. A missing file is an empty journal.
func readJournal(path string) ([]model.JournalEntry, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	entries, err := journal.ReadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}
	return entries, nil
}

func writeJournal(path string, entries []model.JournalEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating journal dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating journal: %w", err)
	}
	if err := journal.WriteEntries(f, entries); err != nil {
		f.Close()
		return fmt.Errorf("writing journal: %w", err)
	}
	return f.Close()
}
