package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgerkit/internal/fx"
	"github.com/cleared-dev/ledgerkit/internal/model"
)

const dateFormat = "2006-01-02"

func newFXCommand(a *app) *cobra.Command {
	fxCmd := &cobra.Command{
		Use:   "fx",
		Short: "Look up exchange rates and convert amounts",
	}
	fxCmd.AddCommand(
		newFXRateCommand(a),
		newFXHistoryCommand(a),
		newFXConvertCommand(a),
	)
	return fxCmd
}

// parseAsOf returns nil for an empty date, meaning the latest rate.
func parseAsOf(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return nil, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return &t, nil
}

func newFXRateCommand(a *app) *cobra.Command {
	var asOf, rates string

	cmd := &cobra.Command{
		Use:   "rate FROM TO",
		Short: "Print the rate converting one unit of FROM into TO",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := strings.ToUpper(args[0]), strings.ToUpper(args[1])
			date, err := parseAsOf(asOf)
			if err != nil {
				return err
			}
			conv, err := a.converter(rates)
			if err != nil {
				return err
			}
			rate, err := conv.Rate(from, to, date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "1 %s = %s %s\n", from, rate.Round(6).String(), to)
			return nil
		},
	}
	cmd.Flags().StringVar(&asOf, "date", "", "use the latest rate on or before this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&rates, "rates", "", "exchange rates CSV (default from config)")
	return cmd
}

func newFXHistoryCommand(a *app) *cobra.Command {
	var rates string
	var limit int

	cmd := &cobra.Command{
		Use:   "history FROM TO",
		Short: "List recorded rates for a currency pair, newest first",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := strings.ToUpper(args[0]), strings.ToUpper(args[1])
			if rates == "" {
				rates = a.cfg.Rates.File
			}
			table, err := fx.LoadTable(a.path(rates))
			if err != nil {
				return err
			}

			p := printer{w: cmd.OutOrStdout(), locale: a.cfg.Currency.Locale}
			recs := table.History(from, to, limit)
			if len(recs) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No rates recorded for %s/%s\n", from, to)
				return nil
			}
			rows := make([][]string, len(recs))
			for i, r := range recs {
				rows[i] = []string{r.Date.Format(dateFormat), r.From, r.To, r.Source, r.Rate.String()}
			}
			p.title(fmt.Sprintf("%s/%s", from, to))
			p.table([]string{"Date", "From", "To", "Source", "Rate"}, rows, 4)
			return nil
		},
	}
	cmd.Flags().StringVar(&rates, "rates", "", "exchange rates CSV (default from config)")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum records to list (0 = all)")
	return cmd
}

func newFXConvertCommand(a *app) *cobra.Command {
	var asOf, rates string

	cmd := &cobra.Command{
		Use:   "convert AMOUNT FROM TO",
		Short: "Convert an amount between currencies",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", args[0], err)
			}
			from, to := strings.ToUpper(args[1]), strings.ToUpper(args[2])
			date, err := parseAsOf(asOf)
			if err != nil {
				return err
			}
			conv, err := a.converter(rates)
			if err != nil {
				return err
			}
			got, err := conv.ConvertMoney(model.NewMoney(amount, from), to, date)
			if err != nil {
				return err
			}

			locale := a.cfg.Currency.Locale
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n",
				fx.FormatMoney(model.NewMoney(amount, from), a.currency(from), locale),
				fx.FormatMoney(got, a.currency(to), locale))
			return nil
		},
	}
	cmd.Flags().StringVar(&asOf, "date", "", "use the latest rate on or before this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&rates, "rates", "", "exchange rates CSV (default from config)")
	return cmd
}
