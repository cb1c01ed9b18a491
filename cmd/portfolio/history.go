package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"portfoliotracker/internal/config"
	"portfoliotracker/types"
)

// historyCmd holds the flags for the 'history' subcommand.
type historyCmd struct {
	cfg    *config.Config
	run    runFlags
	output string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the daily equity series" }
func (*historyCmd) Usage() string {
	return `portfolio history [-trades <file>] [-start <date>] [-end <date>] [-o <file>]

  Replays the trade ledger and prints the portfolio-level series: equity,
  market value and cumulative profit for every business day. With -o the
  series is written to a CSV file instead.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	c.run.cfg = c.cfg
	c.run.register(f)
	f.StringVar(&c.output, "o", "", "write the series to this CSV file instead of stdout")
}

func (c *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	result, err := c.run.reconstruct(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reconstructing portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.output != "" {
		if err := writeSeriesCSVFile(c.output, result.history.Series); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting series: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	cur := result.portfolio.Currency()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Date\tTotal Equity\tMarket Value\tRealised\tUnrealised\tTotal PnL\t")
	for _, point := range result.history.Series {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			point.Date.Format(types.DateFormat),
			formatMoney(point.TotalEquity, cur),
			formatMoney(point.TotalMarketValue, cur),
			formatMoney(point.TotalRealisedPnl, cur),
			formatMoney(point.TotalUnrealisedPnl, cur),
			formatMoney(point.TotalPnl, cur),
		)
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
