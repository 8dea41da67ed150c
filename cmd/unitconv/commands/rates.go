package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"unitconv.dev/internal/conversion"
)

func ratesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "Print the exchange rates used for currency conversion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot := opts.rateSource(cmd.Context()).Current()

			all := snapshot.Rates()
			for _, unit := range conversion.CurrencyUnits() {
				fmt.Fprintf(opts.stdout, "%s %s\n", unit.Code(), conversion.FormatFixed(all[unit], 4))
			}

			if updated, ok := snapshot.UpdatedAt(); ok {
				fmt.Fprintf(opts.stdout, "updated: %s\n", updated.Format(conversion.UpdatedLayout))
			} else {
				fmt.Fprintln(opts.stdout, "source: fallback rates")
			}
			return nil
		},
	}
}
