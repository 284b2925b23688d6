package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgerkit/internal/tax"
)

func newTaxCommand(a *app) *cobra.Command {
	rate := decimal.NewFromInt(15)
	var inclusive bool

	cmd := &cobra.Command{
		Use:   "tax AMOUNT",
		Short: "Split an amount into net, tax and gross",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", args[0], err)
			}
			if rate.IsNegative() {
				return fmt.Errorf("tax rate %s is negative", rate)
			}

			net, due, gross := amount, tax.Tax(amount, rate), tax.TotalWithTax(amount, rate)
			if inclusive {
				net = tax.AmountBeforeTax(amount, rate)
				due, gross = amount.Sub(net), amount
			}

			p := printer{w: cmd.OutOrStdout(), locale: a.cfg.Currency.Locale}
			p.pairs([][2]string{
				{"Net", p.amount(net)},
				{fmt.Sprintf("Tax (%s%%)", rate), p.amount(due)},
				{"Gross", p.amount(gross)},
			})
			return nil
		},
	}
	cmd.Flags().Var(decimalFlag{&rate}, "rate", "tax rate in percent")
	cmd.Flags().BoolVar(&inclusive, "inclusive", false, "AMOUNT already includes tax")
	return cmd
}
