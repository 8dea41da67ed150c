package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"unitconv.dev/internal/conversion"
	"unitconv.dev/internal/logging"
	"unitconv.dev/internal/rates"
)

// options are shared by every subcommand.
type options struct {
	live     bool
	ratesURL string
	timeout  time.Duration
	verbose  bool

	stdout io.Writer
	stderr io.Writer
}

// Execute runs the CLI and returns the process exit status.
func Execute() int {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "unitconv",
		Short:         "Convert lengths, temperatures and currencies",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().BoolVar(&opts.live, "live", false, "fetch current exchange rates before converting")
	root.PersistentFlags().StringVar(&opts.ratesURL, "rates-url", rates.DefaultURL, "exchange rate endpoint used with --live")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", rates.DefaultTimeout, "timeout for the exchange rate fetch")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log exchange rate refreshes to stderr")

	root.AddCommand(convertCmd(opts), unitsCmd(opts), ratesCmd(opts))
	return root
}

// rateSource returns the fallback rates, or with --live the result of one refresh. A failed
// refresh is reported on stderr and the fallback rates are used.
func (o *options) rateSource(ctx context.Context) conversion.RateSource {
	if !o.live {
		return conversion.StaticRates(conversion.FallbackRates())
	}

	level := slog.LevelError + 4
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewConsoleLogger(o.stderr, level)

	cfg := rates.Config{URL: o.ratesURL, Timeout: o.timeout}
	manager := rates.NewManager(cfg, nil, rates.WithLogger(logger))

	ctx, cancel := context.WithTimeout(ctx, manager.Config().Timeout)
	defer cancel()
	if err := manager.Refresh(ctx); err != nil {
		fmt.Fprintf(o.stderr, "warning: exchange rates unavailable, using fallback rates: %v\n", err)
	}
	return manager
}
