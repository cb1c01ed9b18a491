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

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	cfg *config.Config
	run runFlags
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display per-instrument holdings at the end date" }
func (*holdingsCmd) Usage() string {
	return `portfolio holdings [-trades <file>] [-start <date>] [-end <date>]

  Replays the trade ledger and prints one row per instrument still priced on
  the last business day, plus the cash and equity totals.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	c.run.cfg = c.cfg
	c.run.register(f)
}

func (c *holdingsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	result, err := c.run.reconstruct(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reconstructing portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	cur := result.portfolio.Currency()
	if rows := result.history.Holdings; len(rows) > 0 {
		fmt.Printf("Holdings as of %s\n\n", rows[0].HoldingDate.Format(types.DateFormat))
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Symbol\tQuantity\tPrice\tMarket Value\tAvg Price\tTotal Cost\tUnrealised\tRealised\tTotal PnL\t")
	for _, row := range result.history.Holdings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			row.Symbol,
			row.Quantity,
			row.MarketPrice,
			formatMoney(row.MarketValue, cur),
			row.AvgPrice,
			formatMoney(row.TotalCost, cur),
			formatMoney(row.UnrealisedPnl, cur),
			formatMoney(row.RealisedPnl, cur),
			formatMoney(row.TotalPnl, cur),
		)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Cash\t%s\t\n", formatMoney(result.portfolio.Cash(), cur))
	fmt.Fprintf(w, "Net flows\t%s\t\n", formatMoney(result.portfolio.NetFlows(), cur))
	fmt.Fprintf(w, "Total equity\t%s\t\n", formatMoney(result.portfolio.TotalEquity(), cur))
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
