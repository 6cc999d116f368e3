// Package formulas provides the numeric helpers shared by the portfolio calculators.
package formulas

import (
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation (n-1 denominator).
// Fewer than two observations have no spread and return 0.
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Max returns the largest value, or 0 for an empty slice
func Max(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return floats.Max(data)
}

// Min returns the smallest value, or 0 for an empty slice
func Min(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return floats.Min(data)
}

// SimpleSharpe is mean(returns) / std(returns).
//
// This is not the textbook Sharpe ratio: no risk-free rate is subtracted and
// nothing is annualized. The dashboard shows exactly this quotient, so it must
// stay unadjusted. Zero spread yields 0.
func SimpleSharpe(returns []float64) float64 {
	std := StdDev(returns)
	if std == 0 {
		return 0
	}
	return Mean(returns) / std
}

// PercentChange returns (to - from) / from * 100, or 0 when from is 0
func PercentChange(from, to float64) float64 {
	if from == 0 {
		return 0
	}
	return (to - from) / from * 100
}

// Round2 rounds a value to two decimal places, half away from zero.
// The float is converted through its shortest decimal representation so that
// values like 1.005 round the way they are displayed.
func Round2(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}
