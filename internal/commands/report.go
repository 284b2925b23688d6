package commands

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/ledgerkit/internal/accounts"
	"github.com/cleared-dev/ledgerkit/internal/importer"
	"github.com/cleared-dev/ledgerkit/internal/journal"
	"github.com/cleared-dev/ledgerkit/internal/ledger"
	"github.com/cleared-dev/ledgerkit/internal/model"
	"github.com/cleared-dev/ledgerkit/internal/statements"
)

// sources selects what feeds a report besides posted journal entries.
type sources struct {
	legacy  []string
	format  string
	imports bool
	opening string
	rates   string
}

func (s *sources) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&s.legacy, "legacy", nil, "legacy transaction CSV to include (repeatable)")
	cmd.Flags().StringVar(&s.format, "legacy-format", "split", "format of legacy CSVs (split, signed)")
	cmd.Flags().BoolVar(&s.imports, "imports", false, "include every CSV under import/")
	cmd.Flags().StringVar(&s.opening, "opening", "", "opening balances CSV (split format)")
	cmd.Flags().StringVar(&s.rates, "rates", "", "exchange rates CSV (default from config)")
}

func newReportCommand(a *app) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Trial balance and financial statements",
	}
	reportCmd.AddCommand(
		newTrialBalanceCommand(a),
		newStatementsCommand(a),
		newRunningBalanceCommand(a),
	)
	return reportCmd
}

// transactions gathers posted journal lines and legacy records, all valued
// in the base currency.
func (a *app) transactions(journals []string, src sources, chart *accounts.Service) ([]ledger.Transaction, error) {
	if len(journals) == 0 {
		journals = []string{a.path(defaultJournal)}
	}

	var parts [][]ledger.Transaction
	for _, path := range journals {
		entries, err := readJournal(path)
		if err != nil {
			return nil, err
		}
		lines := journal.PostedLines(entries)
		a.log.Debug("read journal", zap.String("file", path), zap.Int("entries", len(entries)), zap.Int("posted_lines", len(lines)))
		parts = append(parts, ledger.FromLines(lines, chart.Name))
	}

	files := src.legacy
	if src.imports {
		found, err := importer.Scan(a.repo)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			files = append(files, f.Path)
		}
	}
	if len(files) > 0 {
		legacy, err := a.legacy(files, src)
		if err != nil {
			return nil, err
		}
		parts = append(parts, legacy)
	}

	return ledger.Concat(parts...), nil
}

func (a *app) legacy(files []string, src sources) ([]ledger.Transaction, error) {
	conv, err := a.converter(src.rates)
	if err != nil {
		return nil, err
	}
	reg := importer.DefaultRegistry()

	var out []ledger.Transaction
	for _, path := range files {
		recs, err := reg.ParseFile(a.path(path), src.format)
		if err != nil {
			return nil, err
		}
		txs, err := ledger.FromLegacy(recs, a.cfg.Currency.Base, conv)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		a.log.Debug("read legacy records", zap.String("file", path), zap.Int("records", len(recs)))
		out = append(out, txs...)
	}
	return out, nil
}

// trialBalance builds the trial balance, applying opening balances if asked.
func (a *app) trialBalance(journals []string, src sources) ([]ledger.Row, *accounts.Service, error) {
	chart, err := a.chart()
	if err != nil {
		return nil, nil, err
	}
	txs, err := a.transactions(journals, src, chart)
	if err != nil {
		return nil, nil, err
	}
	rows := ledger.TrialBalance(txs)

	if src.opening != "" {
		opening, err := a.legacy([]string{src.opening}, sources{format: "split", rates: src.rates})
		if err != nil {
			return nil, nil, err
		}
		openings := make([]ledger.Opening, len(opening))
		for i, tx := range opening {
			openings[i] = ledger.Opening(tx)
		}
		rows = ledger.WithOpening(rows, openings)
	}
	return rows, chart, nil
}

func newTrialBalanceCommand(a *app) *cobra.Command {
	var src sources

	cmd := &cobra.Command{
		Use:   "trial-balance [journal.csv...]",
		Short: "Print the trial balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, _, err := a.trialBalance(args, src)
			if err != nil {
				return err
			}

			p := printer{w: cmd.OutOrStdout(), locale: a.cfg.Currency.Locale}
			p.title(fmt.Sprintf("Trial balance (%s)", a.cfg.Currency.Base))

			table := make([][]string, 0, len(rows)+1)
			for _, r := range rows {
				table = append(table, []string{
					string(r.AccountCode), r.AccountName,
					p.blank(r.OpeningDebit), p.blank(r.OpeningCredit),
					p.blank(r.MovementDebit), p.blank(r.MovementCredit),
					p.blank(r.ClosingDebit), p.blank(r.ClosingCredit),
				})
			}
			sum := ledger.Totals(rows)
			table = append(table, []string{"", "Total", "", "", "", "", p.amount(sum.TotalDebit), p.amount(sum.TotalCredit)})
			p.table([]string{"Code", "Account", "Opening Dr", "Opening Cr", "Movement Dr", "Movement Cr", "Closing Dr", "Closing Cr"}, table, 2)

			p.pairs([][2]string{
				{"Difference", p.amount(sum.Difference)},
				{"Status", p.status(sum.Balanced, "balanced", "NOT balanced")},
			})
			return nil
		},
	}
	src.register(cmd)
	return cmd
}

// decimalFlag is a pflag.Value holding an exact decimal.
type decimalFlag struct{ d *decimal.Decimal }

func (f decimalFlag) String() string {
	if f.d == nil {
		return "0"
	}
	return f.d.String()
}

func (f decimalFlag) Set(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	*f.d = d
	return nil
}

func (decimalFlag) Type() string { return "decimal" }

func newStatementsCommand(a *app) *cobra.Command {
	var src sources
	var openingInv, closingInv, otherIncome decimal.Decimal
	var previous []string

	cmd := &cobra.Command{
		Use:   "statements [journal.csv...]",
		Short: "Print the trading account, profit and loss, income statement and balance sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, chart, err := a.trialBalance(args, src)
			if err != nil {
				return err
			}
			roles := a.roles(chart)

			if !cmd.Flags().Changed("closing-inventory") {
				closingInv = balanceOf(rows, roles[model.RoleInventory])
			}
			rep := buildStatements(rows, chart.All(), roles, openingInv, closingInv, otherIncome)

			p := printer{w: cmd.OutOrStdout(), locale: a.cfg.Currency.Locale}
			rep.print(p)

			if len(previous) == 0 {
				return nil
			}
			prevRows, _, err := a.trialBalance(previous, sources{rates: src.rates})
			if err != nil {
				return err
			}
			prev := buildStatements(prevRows, chart.All(), roles, decimal.Zero, balanceOf(prevRows, roles[model.RoleInventory]), decimal.Zero)
			printComparison(p, rep, prev)
			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().Var(decimalFlag{&openingInv}, "opening-inventory", "inventory value at the start of the period")
	cmd.Flags().Var(decimalFlag{&closingInv}, "closing-inventory", "inventory value at the end of the period (default: inventory account balance)")
	cmd.Flags().Var(decimalFlag{&otherIncome}, "other-income", "income outside trading, added to exchange gains")
	cmd.Flags().StringArrayVar(&previous, "previous", nil, "journal CSV of the previous period to compare against (repeatable)")
	return cmd
}

// balanceOf returns the debit-side closing balance of one account.
func balanceOf(rows []ledger.Row, id model.AccountID) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		if r.AccountID == id {
			total = total.Add(r.Balance())
		}
	}
	return total
}

// movementDebit returns the debit movement of one account.
func movementDebit(rows []ledger.Row, id model.AccountID) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		if r.AccountID == id {
			total = total.Add(r.MovementDebit)
		}
	}
	return total
}

type statementSet struct {
	trading  statements.Trading
	pl       statements.PL
	income   statements.Income
	position statements.Position
	summary  statements.Summary
	ratios   statements.FinancialRatios
}

// buildStatements derives every statement from one trial balance. Purchases
// are the debit movement of the inventory account; the COGS account is left
// out of operating expenses because the trading account already covers it.
func buildStatements(rows []ledger.Row, chart []model.Account, roles journal.RoleAccounts, openingInv, closingInv, otherIncome decimal.Decimal) statementSet {
	items := statements.ItemsFromTrialBalance(rows, chart)
	is := statements.IncomeStatement(items)
	bs := statements.BalanceSheet(items)

	sales := decimal.Zero
	expenses := decimal.Zero
	other := otherIncome
	for _, it := range items {
		switch {
		case it.Account.ID == roles[model.RoleSalesRevenue]:
			sales = sales.Add(statements.AccountBalance(it))
		case it.Account.ID == roles[model.RoleFXGain]:
			other = other.Add(statements.AccountBalance(it))
		case it.Account.Type == model.AccountTypeExpense && it.Account.ID != roles[model.RoleCOGS]:
			expenses = expenses.Add(statements.AccountBalance(it))
		}
	}
	purchases := movementDebit(rows, roles[model.RoleInventory])

	trading := statements.TradingAccount(sales, purchases, openingInv, closingInv)
	return statementSet{
		trading:  trading,
		pl:       statements.ProfitAndLoss(trading.GrossProfit, expenses, other),
		income:   is,
		position: bs,
		summary:  statements.AccountsSummary(is.TotalRevenue, expenses, purchases, bs.TotalAssets, bs.TotalLiabilities),
		ratios:   statements.Ratios(bs, is),
	}
}

func (s statementSet) print(p printer) {
	p.title("Trading account")
	p.pairs([][2]string{
		{"Sales", p.amount(s.trading.Sales)},
		{"Opening inventory", p.amount(s.trading.OpeningInventory)},
		{"Purchases", p.amount(s.trading.Purchases)},
		{"Closing inventory", p.amount(s.trading.ClosingInventory)},
		{"Cost of goods sold", p.amount(s.trading.COGS)},
		{"Gross profit", p.amount(s.trading.GrossProfit)},
	})

	p.title("Profit and loss")
	p.pairs([][2]string{
		{"Gross profit", p.amount(s.pl.GrossProfit)},
		{"Other income", p.amount(s.pl.OtherIncome)},
		{"Expenses", p.amount(s.pl.Expenses)},
		{"Net profit", p.amount(s.pl.NetProfit)},
	})

	p.title("Income statement")
	rows := make([][]string, 0, len(s.income.Revenues)+len(s.income.Expenses))
	for _, it := range s.income.Revenues {
		rows = append(rows, []string{string(it.Account.Code), it.Account.Name, p.amount(it.Net().Abs())})
	}
	for _, it := range s.income.Expenses {
		rows = append(rows, []string{string(it.Account.Code), it.Account.Name, p.amount(it.Net().Abs())})
	}
	p.table([]string{"Code", "Account", "Amount"}, rows, 2)
	p.pairs([][2]string{
		{"Total revenue", p.amount(s.income.TotalRevenue)},
		{"Total expenses", p.amount(s.income.TotalExpenses)},
		{"Net income", p.amount(s.income.NetIncome) + " " + p.status(s.income.Profit, "profit", "loss")},
		{"Net margin", statements.ProfitabilityRatio(s.income.NetIncome, s.income.TotalRevenue).StringFixed(2) + "%"},
	})

	p.title("Balance sheet")
	p.pairs([][2]string{
		{"Assets", p.amount(s.position.TotalAssets)},
		{"Liabilities", p.amount(s.position.TotalLiabilities)},
		{"Equity", p.amount(s.position.TotalEquity)},
		{"Liabilities + equity", p.amount(s.position.TotalLiabilitiesAndEquity)},
		{"Status", p.status(s.position.Balanced, "balanced", "unbalanced (period result not closed)")},
	})

	p.title("Summary")
	p.pairs([][2]string{
		{"Net income (purchases expensed)", p.amount(s.summary.NetIncome)},
		{"Equity (assets - liabilities)", p.amount(s.summary.TotalEquity)},
		{"Current ratio", s.ratios.Current.String()},
		{"Quick ratio", s.ratios.Quick.String()},
		{"Debt to equity", s.ratios.DebtToEquity.String()},
		{"Profit margin", s.ratios.ProfitMargin.String() + "%"},
		{"Return on equity", s.ratios.ROE.String() + "%"},
	})
}

func printComparison(p printer, cur, prev statementSet) {
	p.title("Compared with previous period")
	lines := []struct {
		label       string
		current, pv decimal.Decimal
	}{
		{"Revenue", cur.income.TotalRevenue, prev.income.TotalRevenue},
		{"Expenses", cur.income.TotalExpenses, prev.income.TotalExpenses},
		{"Net income", cur.income.NetIncome, prev.income.NetIncome},
		{"Gross profit", cur.trading.GrossProfit, prev.trading.GrossProfit},
	}
	rows := make([][]string, len(lines))
	for i, l := range lines {
		c := statements.ComparePeriods(l.current, l.pv)
		rows[i] = []string{l.label, string(c.Trend), p.amount(c.Previous), p.amount(c.Current), p.amount(c.Change), c.ChangePercent.StringFixed(2) + "%"}
	}
	p.table([]string{"Line", "Trend", "Previous", "Current", "Change", "Change %"}, rows, 2)
}

func newRunningBalanceCommand(a *app) *cobra.Command {
	var src sources
	var opening decimal.Decimal

	cmd := &cobra.Command{
		Use:   "running-balance <account> [journal.csv...]",
		Short: "Print an account's balance after each movement",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, err := a.chart()
			if err != nil {
				return err
			}
			acct, err := chart.Resolve(args[0])
			if err != nil {
				return err
			}
			txs, err := a.transactions(args[1:], src, chart)
			if err != nil {
				return err
			}
			moves := ledger.Movements(txs, acct.ID)

			p := printer{w: cmd.OutOrStdout(), locale: a.cfg.Currency.Locale}
			p.title(fmt.Sprintf("%s %s (%s)", acct.Code, acct.Name, a.cfg.Currency.Base))

			rows := make([][]string, 0, len(moves))
			i := 0
			for bal := range ledger.RunningBalance(moves, opening) {
				rows = append(rows, []string{strconv.Itoa(i + 1), p.blank(moves[i].Debit), p.blank(moves[i].Credit), p.amount(bal)})
				i++
			}
			p.table([]string{"#", "Debit", "Credit", "Balance"}, rows, 1)
			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().Var(decimalFlag{&opening}, "opening-balance", "balance before the first movement (debit positive)")
	return cmd
}
