package stats

import (
	"math"

	"github.com/shopspring/decimal"
)

// AlphaBeta regresses portfolio returns on benchmark returns. Beta is the
// slope, alpha the annualized intercept.
func AlphaBeta(portfolio, benchmark []decimal.Decimal, periodsPerYear int) (alpha, beta decimal.Decimal) {
	n := min(len(portfolio), len(benchmark))
	if n < 2 {
		return decimal.Zero, decimal.Zero
	}
	ptf := toFloats(portfolio[:n])
	bmk := toFloats(benchmark[:n])

	mp, mb := mean(ptf), mean(bmk)
	var cov, varB float64
	for i := 0; i < n; i++ {
		cov += (ptf[i] - mp) * (bmk[i] - mb)
		varB += (bmk[i] - mb) * (bmk[i] - mb)
	}
	if varB == 0 {
		return decimal.Zero, decimal.Zero
	}
	b := cov / varB
	a := (mp - b*mb) * float64(periodsPerYear)
	return decimal.NewFromFloat(a), decimal.NewFromFloat(b)
}

// InformationRatio is the annualized mean active return over its deviation.
func InformationRatio(portfolio, benchmark []decimal.Decimal, periodsPerYear int) decimal.Decimal {
	n := min(len(portfolio), len(benchmark))
	if n < 2 {
		return decimal.Zero
	}
	active := make([]float64, n)
	ptf := toFloats(portfolio[:n])
	bmk := toFloats(benchmark[:n])
	for i := 0; i < n; i++ {
		active[i] = ptf[i] - bmk[i]
	}
	std := sampleStd(active)
	if std == 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(mean(active) / std * math.Sqrt(float64(periodsPerYear)))
}

// TreynorRatio is the annualized excess return per unit of beta.
func TreynorRatio(portfolio, benchmark []decimal.Decimal, annualRiskFree decimal.Decimal, periodsPerYear int) decimal.Decimal {
	_, beta := AlphaBeta(portfolio, benchmark, periodsPerYear)
	b := beta.InexactFloat64()
	if b == 0 {
		return decimal.Zero
	}
	excess := mean(excessReturns(portfolio, annualRiskFree, periodsPerYear)) * float64(periodsPerYear)
	return decimal.NewFromFloat(excess / b)
}

// RSquared is the squared correlation between portfolio and benchmark.
func RSquared(portfolio, benchmark []decimal.Decimal) decimal.Decimal {
	n := min(len(portfolio), len(benchmark))
	if n < 2 {
		return decimal.Zero
	}
	ptf := toFloats(portfolio[:n])
	bmk := toFloats(benchmark[:n])
	mp, mb := mean(ptf), mean(bmk)
	var cov, varP, varB float64
	for i := 0; i < n; i++ {
		cov += (ptf[i] - mp) * (bmk[i] - mb)
		varP += (ptf[i] - mp) * (ptf[i] - mp)
		varB += (bmk[i] - mb) * (bmk[i] - mb)
	}
	if varP == 0 || varB == 0 {
		return decimal.Zero
	}
	corr := cov / math.Sqrt(varP*varB)
	return decimal.NewFromFloat(corr * corr)
}

// UpCapture is the ratio of compounded portfolio return to compounded
// benchmark return over the periods the benchmark was up.
func UpCapture(portfolio, benchmark []decimal.Decimal) decimal.Decimal {
	return capture(portfolio, benchmark, true)
}

// DownCapture is the same over the periods the benchmark was down.
func DownCapture(portfolio, benchmark []decimal.Decimal) decimal.Decimal {
	return capture(portfolio, benchmark, false)
}

func capture(portfolio, benchmark []decimal.Decimal, up bool) decimal.Decimal {
	n := min(len(portfolio), len(benchmark))
	ptf := toFloats(portfolio[:n])
	bmk := toFloats(benchmark[:n])

	prodP, prodB := 1.0, 1.0
	matched := 0
	for i := 0; i < n; i++ {
		if (up && bmk[i] > 0) || (!up && bmk[i] < 0) {
			prodP *= 1.0 + ptf[i]
			prodB *= 1.0 + bmk[i]
			matched++
		}
	}
	if matched == 0 || prodB == 1.0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat((prodP - 1.0) / (prodB - 1.0))
}

// BattingAverage is the fraction of periods the portfolio beat the
// benchmark.
func BattingAverage(portfolio, benchmark []decimal.Decimal) decimal.Decimal {
	n := min(len(portfolio), len(benchmark))
	if n == 0 {
		return decimal.Zero
	}
	ptf := toFloats(portfolio[:n])
	bmk := toFloats(benchmark[:n])
	beat := 0
	for i := 0; i < n; i++ {
		if ptf[i] > bmk[i] {
			beat++
		}
	}
	return decimal.NewFromFloat(float64(beat) / float64(n))
}
