package engine

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"portfoliotracker/types"
)

var BenchmarkUnavailableErr = errors.New("benchmark series unavailable")

// BuildReturnsFrame joins the portfolio equity series with a benchmark price
// series into the frame the statistics layer consumes.
//
// Portfolio returns are the percent change of total equity with the first
// value pinned to zero, so cumulative-product chains have an anchor instead
// of an undefined head. The benchmark is joined on date with forward fill
// across non-overlapping calendars and differenced the same way.
func BuildReturnsFrame(series []types.EquityPoint, benchmark []types.PricePoint) ([]types.ReturnPoint, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("empty equity series")
	}
	if len(benchmark) == 0 {
		return nil, BenchmarkUnavailableErr
	}

	frame := make([]types.ReturnPoint, 0, len(series))
	prevEquity := decimal.Zero
	prevLevel := decimal.Zero
	bi := 0
	for i, pt := range series {
		// Forward fill: the latest benchmark close on or before this date.
		// Days before the first benchmark point carry its level backward and
		// contribute a zero benchmark return.
		for bi < len(benchmark) && !benchmark[bi].Date.After(pt.Date) {
			prevLevel = benchmark[bi].Price
			bi++
		}
		level := prevLevel
		if level.IsZero() {
			level = benchmark[0].Price
		}

		row := types.ReturnPoint{
			Date:            pt.Date,
			TotalEquity:     pt.TotalEquity,
			BenchmarkLevel:  level,
			PortfolioReturn: pctChange(prevEquity, pt.TotalEquity, i == 0),
		}
		if i > 0 {
			row.BenchmarkReturn = pctChange(frame[i-1].BenchmarkLevel, level, false)
		}
		frame = append(frame, row)
		prevEquity = pt.TotalEquity
	}
	return frame, nil
}

// PortfolioReturns extracts the daily portfolio return column.
func PortfolioReturns(frame []types.ReturnPoint) []decimal.Decimal {
	out := make([]decimal.Decimal, len(frame))
	for i, row := range frame {
		out[i] = row.PortfolioReturn
	}
	return out
}

// BenchmarkReturns extracts the daily benchmark return column.
func BenchmarkReturns(frame []types.ReturnPoint) []decimal.Decimal {
	out := make([]decimal.Decimal, len(frame))
	for i, row := range frame {
		out[i] = row.BenchmarkReturn
	}
	return out
}

func pctChange(prev, cur decimal.Decimal, first bool) decimal.Decimal {
	if first || prev.IsZero() {
		return decimal.Zero
	}
	return cur.Sub(prev).Div(prev)
}
