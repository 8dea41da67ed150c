package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"unitconv.dev/internal/conversion"
)

func unitsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "units [domain]",
		Short: "List supported units",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			domains := conversion.Domains()
			if len(args) == 1 {
				d, err := conversion.ParseDomain(args[0])
				if err != nil {
					return err
				}
				domains = []conversion.Domain{d}
			}

			tw := tabwriter.NewWriter(opts.stdout, 0, 4, 2, ' ', 0)
			for _, d := range domains {
				units, err := conversion.Units(d)
				if err != nil {
					return err
				}
				for _, u := range units {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", d, u.ID, u.Display)
				}
			}
			return tw.Flush()
		},
	}
}
