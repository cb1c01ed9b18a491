package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"portfoliotracker/types"
)

// writeSeriesCSVFile writes the daily equity series to a CSV file at the
// given path.
func writeSeriesCSVFile(path string, series []types.EquityPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create series file: %w", err)
	}
	defer f.Close()

	return writeSeriesCSV(f, series)
}

// writeSeriesCSV writes the equity series to any io.Writer as CSV.
// You can pass os.Stdout for debugging, or a file.
func writeSeriesCSV(w io.Writer, series []types.EquityPoint) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"date",
		"total_equity",
		"total_market_value",
		"total_realised_pnl",
		"total_unrealised_pnl",
		"total_pnl",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, point := range series {
		record := []string{
			point.Date.Format(types.DateFormat),
			point.TotalEquity.String(),
			point.TotalMarketValue.String(),
			point.TotalRealisedPnl.String(),
			point.TotalUnrealisedPnl.String(),
			point.TotalPnl.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
