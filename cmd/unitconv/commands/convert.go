package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"unitconv.dev/internal/conversion"
)

func convertCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <domain> <value> <from> <to>",
		Short: "Convert a value between two units of one domain",
		Long: `Convert a value between two units of one domain and print a summary line.

Use "--" before negative values, e.g.
  unitconv convert temperature -- -40 celsius fahrenheit`,
		Example: `  unitconv convert length 1 mile kilometer
  unitconv convert currency 100 usd eur --live`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := conversion.Request{
				Domain: args[0],
				Value:  args[1],
				From:   args[2],
				To:     args[3],
			}

			var source conversion.RateSource
			if d, err := conversion.ParseDomain(req.Domain); err == nil && d == conversion.DomainCurrency {
				source = opts.rateSource(cmd.Context())
			}

			result, err := conversion.NewConverter(source).Convert(req)
			if err != nil {
				return err
			}
			if result.Empty() {
				return nil
			}

			_, err = fmt.Fprintln(opts.stdout, result.Summary)
			return err
		},
	}
}
