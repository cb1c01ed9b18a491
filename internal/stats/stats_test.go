package stats

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 1e-9

func rets(values ...float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromFloat(v)
	}
	return out
}

func TestCompound(t *testing.T) {
	assert.True(t, Compound(nil).IsZero())
	assert.InDelta(t, 0.21, Compound(rets(0.1, 0.1)).InexactFloat64(), delta)
	assert.InDelta(t, -0.19, Compound(rets(0.1, -0.1, -0.1, 0.0)).InexactFloat64(), delta)
}

func TestCAGROverExactlyOneYear(t *testing.T) {
	series := make([]decimal.Decimal, TradingDaysPerYear)
	for i := range series {
		series[i] = decimal.NewFromFloat(0.001)
	}
	// One year of data: CAGR equals the total compounded return.
	require.InDelta(t,
		Compound(series).InexactFloat64(),
		CAGR(series, TradingDaysPerYear).InexactFloat64(),
		delta)
}

func TestExpectedReturn(t *testing.T) {
	// Geometric mean of two periods compounding to 0.21 is exactly 0.1.
	assert.InDelta(t, 0.1, ExpectedReturn(rets(0.1, 0.1)).InexactFloat64(), delta)
	assert.InDelta(t, 0.21, ExpectedReturnAggregated(rets(0.1, 0.1), 2).InexactFloat64(), delta)
}

func TestVolatilityAndSharpe(t *testing.T) {
	series := rets(0.01, 0.02, 0.03)
	assert.InDelta(t, 0.01*math.Sqrt(252), Volatility(series, 252).InexactFloat64(), delta)
	assert.InDelta(t, 0.02/0.01*math.Sqrt(252), Sharpe(series, decimal.Zero, 252).InexactFloat64(), delta)
	assert.True(t, Sharpe(rets(0.01), decimal.Zero, 252).IsZero(), "need at least two periods")
}

func TestSortinoNoDownside(t *testing.T) {
	assert.True(t, Sortino(rets(0.01, 0.02), decimal.Zero, 252).IsZero())
	assert.True(t, Sortino(rets(0.02, -0.01), decimal.Zero, 252).GreaterThan(decimal.Zero))
}

func TestOmega(t *testing.T) {
	assert.InDelta(t, 1.0, Omega(rets(0.01, -0.01), decimal.Zero, 252).InexactFloat64(), delta)
	assert.InDelta(t, 2.0, Omega(rets(0.02, -0.01), decimal.Zero, 252).InexactFloat64(), delta)
}

func TestWinLossRatios(t *testing.T) {
	series := rets(0.02, -0.01)
	assert.InDelta(t, 2.0, PayoffRatio(series).InexactFloat64(), delta)
	assert.InDelta(t, 2.0, ProfitFactor(series).InexactFloat64(), delta)
	assert.InDelta(t, 0.25, Kelly(series).InexactFloat64(), delta)
	assert.InDelta(t, 1.0, TailRatio(rets(-0.01, 0.01)).InexactFloat64(), delta)
	assert.InDelta(t, math.Pow(1.0/3.0, 2), RiskOfRuin(rets(0.01, -0.01)).InexactFloat64(), delta)
}

func TestValueAtRisk(t *testing.T) {
	series := rets(-0.02, 0.0, 0.01, 0.03)
	assert.InDelta(t, -0.017, ValueAtRisk(series).InexactFloat64(), delta)
	assert.InDelta(t, -0.02, CVaR(series).InexactFloat64(), delta)
}

func TestMoments(t *testing.T) {
	assert.InDelta(t, 0.0, Skewness(rets(-0.01, 0.0, 0.01)).InexactFloat64(), delta)
	assert.True(t, Skewness(rets(0.0, 0.0, 0.1)).GreaterThan(decimal.Zero))
	assert.True(t, Kurtosis(rets(0.01, 0.01)).IsZero(), "need at least four periods")
}

func TestDrawdowns(t *testing.T) {
	series := rets(0.1, -0.5, 0.2)

	dd := DrawdownSeries(series)
	require.Len(t, dd, 3)
	assert.True(t, dd[0].IsZero(), "new high is not a drawdown")
	assert.InDelta(t, -0.5, dd[1].InexactFloat64(), delta)
	assert.InDelta(t, -0.4, dd[2].InexactFloat64(), delta)

	assert.InDelta(t, -0.5, MaxDrawdown(series).InexactFloat64(), delta)
	assert.InDelta(t, -0.5, AvgDrawdown(series).InexactFloat64(), delta)
	assert.Equal(t, 2, LongestDrawdown(series))
}

func TestCalmarAndRecovery(t *testing.T) {
	flat := rets(0.0, 0.0)
	assert.True(t, Calmar(flat, 252).IsZero(), "no drawdown, ratio undefined")
	assert.True(t, RecoveryFactor(flat).IsZero())

	series := rets(0.1, -0.5, 0.2)
	assert.InDelta(t,
		Compound(series).InexactFloat64()/0.5,
		RecoveryFactor(series).InexactFloat64(),
		delta)
}

func TestRelativeToSelf(t *testing.T) {
	series := rets(0.01, -0.02, 0.03, 0.01)

	alpha, beta := AlphaBeta(series, series, 252)
	assert.InDelta(t, 1.0, beta.InexactFloat64(), delta)
	assert.InDelta(t, 0.0, alpha.InexactFloat64(), delta)

	assert.InDelta(t, 1.0, RSquared(series, series).InexactFloat64(), delta)
	assert.InDelta(t, 1.0, UpCapture(series, series).InexactFloat64(), delta)
	assert.InDelta(t, 1.0, DownCapture(series, series).InexactFloat64(), delta)
	assert.True(t, InformationRatio(series, series, 252).IsZero(), "no active return")
	assert.True(t, BattingAverage(series, series).IsZero(), "ties never beat")
}

func TestRelativeAgainstBenchmark(t *testing.T) {
	ptf := rets(0.02, -0.01, 0.03, 0.00)
	bmk := rets(0.01, -0.02, 0.02, 0.01)

	_, beta := AlphaBeta(ptf, bmk, 252)
	assert.True(t, beta.GreaterThan(decimal.Zero))
	assert.InDelta(t, 0.75, BattingAverage(ptf, bmk).InexactFloat64(), delta)
}
