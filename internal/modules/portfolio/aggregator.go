package portfolio

import (
	"github.com/aristath/folio/pkg/formulas"
)

// Summarize totals a set of computed positions.
// An empty set yields a zero Summary.
func Summarize(positions []Position) Summary {
	if len(positions) == 0 {
		return Summary{}
	}

	var totalValue, totalCost, totalGainLoss float64
	for _, pos := range positions {
		totalValue += pos.totalValue
		totalCost += pos.totalCost
		totalGainLoss += pos.gainLoss
	}

	overallReturn := 0.0
	if totalCost > 0 {
		overallReturn = totalGainLoss / totalCost * 100
	}

	return Summary{
		TotalValue:    formulas.Round2(totalValue),
		TotalCost:     formulas.Round2(totalCost),
		TotalGainLoss: formulas.Round2(totalGainLoss),
		OverallReturn: formulas.Round2(overallReturn),
		NumPositions:  len(positions),
	}
}

// Risk computes return statistics over the positions' return percentages.
//
// Volatility is the sample standard deviation of returns. The Sharpe ratio
// is the simplified mean/std quotient with no risk-free rate; see
// formulas.SimpleSharpe. Both are zero for fewer than two positions.
// Statistics are computed at full precision and rounded on output.
func Risk(positions []Position) RiskMetrics {
	if len(positions) == 0 {
		return RiskMetrics{}
	}

	returns := make([]float64, len(positions))
	metrics := RiskMetrics{}
	for i, pos := range positions {
		returns[i] = pos.returnPct
		switch {
		case pos.returnPct > 0:
			metrics.PositivePositions++
		case pos.returnPct < 0:
			metrics.NegativePositions++
		}
	}

	metrics.Volatility = formulas.Round2(formulas.StdDev(returns))
	metrics.SharpeRatio = formulas.Round2(formulas.SimpleSharpe(returns))
	metrics.MaxGain = formulas.Round2(formulas.Max(returns))
	metrics.MaxLoss = formulas.Round2(formulas.Min(returns))
	metrics.AvgReturn = formulas.Round2(formulas.Mean(returns))

	return metrics
}
