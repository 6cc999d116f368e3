package formulas

import (
	"math"

	"github.com/markcheno/go-talib"
)

// SMASeries calculates a simple moving average aligned with the input series.
// Positions without a full window are nil so they encode as JSON null.
func SMASeries(values []float64, period int) []*float64 {
	result := make([]*float64, len(values))
	if period <= 0 || len(values) < period {
		return result
	}

	if period == 1 {
		for i := range values {
			v := Round2(values[i])
			result[i] = &v
		}
		return result
	}

	sma := talib.Sma(values, period)
	for i := period - 1; i < len(sma) && i < len(values); i++ {
		if math.IsNaN(sma[i]) {
			continue
		}
		v := Round2(sma[i])
		result[i] = &v
	}

	return result
}
