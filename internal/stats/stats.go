// Package stats is a catalogue of pure statistic functions over a daily
// returns series. Inputs and outputs are decimals to match the accounting
// layer; the math itself runs in float64, which is plenty for ratio-level
// statistics.
package stats

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// TradingDaysPerYear is the default annualization factor for daily series.
const TradingDaysPerYear = 252

// Compound is the total compounded (cumulative) return of the series.
func Compound(returns []decimal.Decimal) decimal.Decimal {
	if len(returns) == 0 {
		return decimal.Zero
	}
	prod := 1.0
	for _, r := range toFloats(returns) {
		prod *= 1.0 + r
	}
	return decimal.NewFromFloat(prod - 1.0)
}

// CAGR is the compounded annual growth rate implied by the series.
func CAGR(returns []decimal.Decimal, periodsPerYear int) decimal.Decimal {
	if len(returns) < 2 || periodsPerYear <= 0 {
		return decimal.Zero
	}
	total := 1.0 + Compound(returns).InexactFloat64()
	if total <= 0 {
		return decimal.Zero
	}
	years := float64(len(returns)) / float64(periodsPerYear)
	return decimal.NewFromFloat(math.Pow(total, 1.0/years) - 1.0)
}

// ExpectedReturn is the geometric mean per-period return.
func ExpectedReturn(returns []decimal.Decimal) decimal.Decimal {
	if len(returns) == 0 {
		return decimal.Zero
	}
	total := 1.0 + Compound(returns).InexactFloat64()
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(math.Pow(total, 1.0/float64(len(returns))) - 1.0)
}

// ExpectedReturnAggregated compounds the per-period expectation up to a
// longer horizon, e.g. 21 for monthly or 252 for yearly from daily data.
func ExpectedReturnAggregated(returns []decimal.Decimal, periods int) decimal.Decimal {
	if periods <= 0 {
		return decimal.Zero
	}
	per := ExpectedReturn(returns).InexactFloat64()
	return decimal.NewFromFloat(math.Pow(1.0+per, float64(periods)) - 1.0)
}

// Volatility is the annualized sample standard deviation of returns.
func Volatility(returns []decimal.Decimal, periodsPerYear int) decimal.Decimal {
	if len(returns) < 2 {
		return decimal.Zero
	}
	std := sampleStd(toFloats(returns))
	return decimal.NewFromFloat(std * math.Sqrt(float64(periodsPerYear)))
}

// Sharpe is the annualized Sharpe ratio against an annual risk-free rate.
func Sharpe(returns []decimal.Decimal, annualRiskFree decimal.Decimal, periodsPerYear int) decimal.Decimal {
	if len(returns) < 2 {
		return decimal.Zero
	}
	excess := excessReturns(returns, annualRiskFree, periodsPerYear)
	std := sampleStd(excess)
	if std == 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(mean(excess) / std * math.Sqrt(float64(periodsPerYear)))
}

// Sortino is Sharpe with downside deviation in the denominator.
func Sortino(returns []decimal.Decimal, annualRiskFree decimal.Decimal, periodsPerYear int) decimal.Decimal {
	if len(returns) < 2 {
		return decimal.Zero
	}
	excess := excessReturns(returns, annualRiskFree, periodsPerYear)
	var downSq float64
	for _, x := range excess {
		if x < 0 {
			downSq += x * x
		}
	}
	downside := math.Sqrt(downSq / float64(len(excess)))
	if downside == 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(mean(excess) / downside * math.Sqrt(float64(periodsPerYear)))
}

// Omega is the probability-weighted ratio of gains to losses against a
// per-year required return threshold.
func Omega(returns []decimal.Decimal, requiredReturn decimal.Decimal, periodsPerYear int) decimal.Decimal {
	if len(returns) < 2 {
		return decimal.Zero
	}
	req := requiredReturn.InexactFloat64()
	if req <= -1 {
		return decimal.Zero
	}
	threshold := req
	if periodsPerYear > 1 {
		threshold = math.Pow(1.0+req, 1.0/float64(periodsPerYear)) - 1.0
	}

	var numer, denom float64
	for _, r := range toFloats(returns) {
		diff := r - threshold
		if diff > 0 {
			numer += diff
		} else {
			denom -= diff
		}
	}
	if denom == 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(numer / denom)
}

// Kelly is the Kelly criterion: the fraction of capital a repeated bet with
// this win rate and payoff would stake.
func Kelly(returns []decimal.Decimal) decimal.Decimal {
	winRate, payoff := winRateAndPayoff(toFloats(returns))
	if payoff == 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(((payoff+1)*winRate - 1) / payoff)
}

// PayoffRatio is average win over average loss.
func PayoffRatio(returns []decimal.Decimal) decimal.Decimal {
	_, payoff := winRateAndPayoff(toFloats(returns))
	return decimal.NewFromFloat(payoff)
}

// ProfitFactor is the sum of gains over the sum of losses.
func ProfitFactor(returns []decimal.Decimal) decimal.Decimal {
	var wins, losses float64
	for _, r := range toFloats(returns) {
		if r > 0 {
			wins += r
		} else {
			losses -= r
		}
	}
	if losses == 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(wins / losses)
}

// TailRatio compares the magnitude of the right tail to the left tail at the
// 95th/5th percentiles.
func TailRatio(returns []decimal.Decimal) decimal.Decimal {
	if len(returns) < 2 {
		return decimal.Zero
	}
	xs := toFloats(returns)
	right := quantile(xs, 0.95)
	left := quantile(xs, 0.05)
	if left == 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(math.Abs(right) / math.Abs(left))
}

// ValueAtRisk is the historical 5th-percentile daily return.
func ValueAtRisk(returns []decimal.Decimal) decimal.Decimal {
	if len(returns) < 2 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(quantile(toFloats(returns), 0.05))
}

// CVaR is the mean of the returns at or below the VaR cutoff.
func CVaR(returns []decimal.Decimal) decimal.Decimal {
	if len(returns) < 2 {
		return decimal.Zero
	}
	xs := toFloats(returns)
	cutoff := quantile(xs, 0.05)
	var sum float64
	var n int
	for _, x := range xs {
		if x <= cutoff {
			sum += x
			n++
		}
	}
	if n == 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(sum / float64(n))
}

// RiskOfRuin estimates the chance of losing the whole stake from the win
// rate, compounded over the number of observed periods.
func RiskOfRuin(returns []decimal.Decimal) decimal.Decimal {
	if len(returns) == 0 {
		return decimal.Zero
	}
	winRate, _ := winRateAndPayoff(toFloats(returns))
	if winRate == 0 {
		return decimal.NewFromInt(1)
	}
	base := (1 - winRate) / (1 + winRate)
	return decimal.NewFromFloat(math.Pow(base, float64(len(returns))))
}

// Skewness is the sample skewness of the return distribution.
func Skewness(returns []decimal.Decimal) decimal.Decimal {
	if len(returns) < 3 {
		return decimal.Zero
	}
	xs := toFloats(returns)
	m := mean(xs)
	std := sampleStd(xs)
	if std == 0 {
		return decimal.Zero
	}
	n := float64(len(xs))
	var sum float64
	for _, x := range xs {
		sum += math.Pow((x-m)/std, 3)
	}
	return decimal.NewFromFloat(n / ((n - 1) * (n - 2)) * sum)
}

// Kurtosis is the excess kurtosis of the return distribution.
func Kurtosis(returns []decimal.Decimal) decimal.Decimal {
	if len(returns) < 4 {
		return decimal.Zero
	}
	xs := toFloats(returns)
	m := mean(xs)
	std := sampleStd(xs)
	if std == 0 {
		return decimal.Zero
	}
	n := float64(len(xs))
	var sum float64
	for _, x := range xs {
		sum += math.Pow((x-m)/std, 4)
	}
	adj := n * (n + 1) / ((n - 1) * (n - 2) * (n - 3))
	return decimal.NewFromFloat(adj*sum - 3*(n-1)*(n-1)/((n-2)*(n-3)))
}

// Calmar is CAGR over the magnitude of the maximum drawdown.
func Calmar(returns []decimal.Decimal, periodsPerYear int) decimal.Decimal {
	dd := MaxDrawdown(returns).InexactFloat64()
	if dd == 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(CAGR(returns, periodsPerYear).InexactFloat64() / math.Abs(dd))
}

// RecoveryFactor is total compounded return over the magnitude of the
// maximum drawdown.
func RecoveryFactor(returns []decimal.Decimal) decimal.Decimal {
	dd := MaxDrawdown(returns).InexactFloat64()
	if dd == 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(Compound(returns).InexactFloat64() / math.Abs(dd))
}

func toFloats(returns []decimal.Decimal) []float64 {
	out := make([]float64, len(returns))
	for i, r := range returns {
		out[i] = r.InexactFloat64()
	}
	return out
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func sampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	var varianceSum float64
	for _, x := range xs {
		diff := x - m
		varianceSum += diff * diff
	}
	return math.Sqrt(varianceSum / float64(len(xs)-1))
}

// excessReturns converts an annual risk-free rate to per-period and
// subtracts it from every return.
func excessReturns(returns []decimal.Decimal, annualRiskFree decimal.Decimal, periodsPerYear int) []float64 {
	rfPeriod := math.Pow(1.0+annualRiskFree.InexactFloat64(), 1.0/float64(periodsPerYear)) - 1.0
	xs := toFloats(returns)
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = x - rfPeriod
	}
	return out
}

func winRateAndPayoff(xs []float64) (winRate, payoff float64) {
	var wins, losses float64
	var winCount, lossCount, nonZero int
	for _, x := range xs {
		switch {
		case x > 0:
			wins += x
			winCount++
			nonZero++
		case x < 0:
			losses -= x
			lossCount++
			nonZero++
		}
	}
	if nonZero == 0 || lossCount == 0 || winCount == 0 {
		return 0, 0
	}
	winRate = float64(winCount) / float64(nonZero)
	payoff = (wins / float64(winCount)) / (losses / float64(lossCount))
	return winRate, payoff
}

// quantile is the linear-interpolated empirical quantile.
func quantile(xs []float64, q float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
