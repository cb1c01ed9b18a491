package stats

import (
	"github.com/shopspring/decimal"
)

// DrawdownSeries is the running drawdown from the cumulative-return peak,
// zero at new highs and negative inside a drawdown.
func DrawdownSeries(returns []decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(returns))
	level := 1.0
	peak := 1.0
	for i, r := range toFloats(returns) {
		level *= 1.0 + r
		if level > peak {
			peak = level
		}
		out[i] = decimal.NewFromFloat(level/peak - 1.0)
	}
	return out
}

// MaxDrawdown is the deepest point of the drawdown series, as a negative
// fraction of the peak.
func MaxDrawdown(returns []decimal.Decimal) decimal.Decimal {
	worst := decimal.Zero
	for _, dd := range DrawdownSeries(returns) {
		if dd.LessThan(worst) {
			worst = dd
		}
	}
	return worst
}

// AvgDrawdown is the mean depth of the distinct drawdown episodes.
func AvgDrawdown(returns []decimal.Decimal) decimal.Decimal {
	var depths []decimal.Decimal
	cur := decimal.Zero
	inDrawdown := false
	for _, dd := range DrawdownSeries(returns) {
		if dd.IsNegative() {
			inDrawdown = true
			if dd.LessThan(cur) {
				cur = dd
			}
			continue
		}
		if inDrawdown {
			depths = append(depths, cur)
			cur = decimal.Zero
			inDrawdown = false
		}
	}
	if inDrawdown {
		depths = append(depths, cur)
	}
	if len(depths) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, d := range depths {
		sum = sum.Add(d)
	}
	return sum.Div(decimal.NewFromInt(int64(len(depths))))
}

// LongestDrawdown is the length, in periods, of the longest stretch spent
// below a previous peak.
func LongestDrawdown(returns []decimal.Decimal) int {
	longest, current := 0, 0
	for _, dd := range DrawdownSeries(returns) {
		if dd.IsNegative() {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	return longest
}
