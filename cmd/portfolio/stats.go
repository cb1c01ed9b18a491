package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"portfoliotracker/internal/config"
	"portfoliotracker/internal/engine"
	"portfoliotracker/internal/marketdata"
	"portfoliotracker/internal/stats"
)

// statsCmd holds the flags for the 'stats' subcommand.
type statsCmd struct {
	cfg       *config.Config
	run       runFlags
	benchmark string
	riskFree  string
}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "display performance and risk statistics" }
func (*statsCmd) Usage() string {
	return `portfolio stats [-trades <file>] [-benchmark <name>] [-riskfree <rate>]

  Replays the trade ledger, joins the daily returns against a benchmark index
  and prints the performance, risk and relative statistics.

  Supported benchmarks: ` + strings.Join(marketdata.BenchmarkNames(), ", ") + `
`
}

func (c *statsCmd) SetFlags(f *flag.FlagSet) {
	c.run.cfg = c.cfg
	c.run.register(f)
	f.StringVar(&c.benchmark, "benchmark", c.cfg.Benchmark, "benchmark index name")
	f.StringVar(&c.riskFree, "riskfree", "0", "annual risk-free rate as a fraction, e.g. 0.04")
}

func (c *statsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol, err := marketdata.BenchmarkSymbol(c.benchmark)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving benchmark: %v\n", err)
		return subcommands.ExitUsageError
	}
	riskFree, err := decimal.NewFromString(c.riskFree)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing risk-free rate: %v\n", err)
		return subcommands.ExitUsageError
	}

	result, err := c.run.reconstruct(ctx, symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reconstructing portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	frame, err := engine.BuildReturnsFrame(result.history.Series, result.prices.Series(symbol))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building returns frame: %v\n", err)
		return subcommands.ExitFailure
	}
	portfolio := engine.PortfolioReturns(frame)
	benchmark := engine.BenchmarkReturns(frame)
	periods := stats.TradingDaysPerYear

	alpha, beta := stats.AlphaBeta(portfolio, benchmark, periods)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "Cumulative return\t%s\t\n", formatPercent(stats.Compound(portfolio)))
	fmt.Fprintf(w, "CAGR\t%s\t\n", formatPercent(stats.CAGR(portfolio, periods)))
	fmt.Fprintf(w, "Expected daily return\t%s\t\n", formatPercent(stats.ExpectedReturn(portfolio)))
	fmt.Fprintf(w, "Volatility (ann.)\t%s\t\n", formatPercent(stats.Volatility(portfolio, periods)))
	fmt.Fprintf(w, "Sharpe\t%s\t\n", stats.Sharpe(portfolio, riskFree, periods).StringFixed(2))
	fmt.Fprintf(w, "Sortino\t%s\t\n", stats.Sortino(portfolio, riskFree, periods).StringFixed(2))
	fmt.Fprintf(w, "Omega\t%s\t\n", stats.Omega(portfolio, riskFree, periods).StringFixed(2))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Max drawdown\t%s\t\n", formatPercent(stats.MaxDrawdown(portfolio)))
	fmt.Fprintf(w, "Avg drawdown\t%s\t\n", formatPercent(stats.AvgDrawdown(portfolio)))
	fmt.Fprintf(w, "Longest drawdown\t%d days\t\n", stats.LongestDrawdown(portfolio))
	fmt.Fprintf(w, "Calmar\t%s\t\n", stats.Calmar(portfolio, periods).StringFixed(2))
	fmt.Fprintf(w, "Recovery factor\t%s\t\n", stats.RecoveryFactor(portfolio).StringFixed(2))
	fmt.Fprintf(w, "VaR (95%%)\t%s\t\n", formatPercent(stats.ValueAtRisk(portfolio)))
	fmt.Fprintf(w, "CVaR (95%%)\t%s\t\n", formatPercent(stats.CVaR(portfolio)))
	fmt.Fprintf(w, "Risk of ruin\t%s\t\n", formatPercent(stats.RiskOfRuin(portfolio)))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Kelly criterion\t%s\t\n", formatPercent(stats.Kelly(portfolio)))
	fmt.Fprintf(w, "Payoff ratio\t%s\t\n", stats.PayoffRatio(portfolio).StringFixed(2))
	fmt.Fprintf(w, "Profit factor\t%s\t\n", stats.ProfitFactor(portfolio).StringFixed(2))
	fmt.Fprintf(w, "Tail ratio\t%s\t\n", stats.TailRatio(portfolio).StringFixed(2))
	fmt.Fprintf(w, "Skewness\t%s\t\n", stats.Skewness(portfolio).StringFixed(2))
	fmt.Fprintf(w, "Kurtosis\t%s\t\n", stats.Kurtosis(portfolio).StringFixed(2))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Benchmark (%s)\t%s\t\n", c.benchmark, formatPercent(stats.Compound(benchmark)))
	fmt.Fprintf(w, "Alpha (ann.)\t%s\t\n", formatPercent(alpha))
	fmt.Fprintf(w, "Beta\t%s\t\n", beta.StringFixed(2))
	fmt.Fprintf(w, "Information ratio\t%s\t\n", stats.InformationRatio(portfolio, benchmark, periods).StringFixed(2))
	fmt.Fprintf(w, "Treynor ratio\t%s\t\n", stats.TreynorRatio(portfolio, benchmark, riskFree, periods).StringFixed(2))
	fmt.Fprintf(w, "R-squared\t%s\t\n", stats.RSquared(portfolio, benchmark).StringFixed(2))
	fmt.Fprintf(w, "Up capture\t%s\t\n", formatPercent(stats.UpCapture(portfolio, benchmark)))
	fmt.Fprintf(w, "Down capture\t%s\t\n", formatPercent(stats.DownCapture(portfolio, benchmark)))
	fmt.Fprintf(w, "Batting average\t%s\t\n", formatPercent(stats.BattingAverage(portfolio, benchmark)))
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
