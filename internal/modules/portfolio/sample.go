package portfolio

import (
	"math/rand"

	"github.com/aristath/folio/pkg/formulas"
)

// SampleTickers are the holdings used for demo portfolios
var SampleTickers = []string{"AAPL", "GOOGL", "MSFT", "AMZN", "TSLA"}

// GenerateSampleInputs draws one demo position per sample ticker.
// Shares fall in [10, 100), purchase prices in [100, 500) and current
// prices between 80% and 130% of the purchase price.
func GenerateSampleInputs(rng *rand.Rand) []PositionInput {
	inputs := make([]PositionInput, 0, len(SampleTickers))
	for _, ticker := range SampleTickers {
		shares := 10 + rng.Intn(90)
		purchase := uniform(rng, 100, 500)
		current := purchase * uniform(rng, 0.8, 1.3)

		inputs = append(inputs, PositionInput{
			Ticker:        ticker,
			Shares:        float64(shares),
			PurchasePrice: formulas.Round2(purchase),
			CurrentPrice:  formulas.Round2(current),
		})
	}
	return inputs
}

func uniform(rng *rand.Rand, low, high float64) float64 {
	return low + rng.Float64()*(high-low)
}
