package portfolio

import (
	"math"
	"testing"

	"github.com/aristath/folio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_AAPLScenario(t *testing.T) {
	pos, err := Compute(PositionInput{Ticker: "aapl", Shares: 10, PurchasePrice: 100, CurrentPrice: 150})
	require.NoError(t, err)

	assert.Equal(t, "AAPL", pos.Ticker())
	assert.Equal(t, int64(10), pos.Shares())
	assert.Equal(t, 100.0, pos.PurchasePrice())
	assert.Equal(t, 150.0, pos.CurrentPrice())
	assert.Equal(t, 1500.0, pos.TotalValue())
	assert.Equal(t, 1000.0, pos.TotalCost())
	assert.Equal(t, 500.0, pos.GainLoss())
	assert.Equal(t, 50.0, pos.ReturnPct())
}

func TestCompute_Loss(t *testing.T) {
	pos, err := Compute(PositionInput{Ticker: "MSFT", Shares: 5, PurchasePrice: 200, CurrentPrice: 180})
	require.NoError(t, err)

	assert.Equal(t, 900.0, pos.TotalValue())
	assert.Equal(t, 1000.0, pos.TotalCost())
	assert.Equal(t, -100.0, pos.GainLoss())
	assert.Equal(t, -10.0, pos.ReturnPct())
}

func TestCompute_ZeroPurchasePrice(t *testing.T) {
	for _, current := range []float64{0, 1, 150, 99999.99} {
		pos, err := Compute(PositionInput{Ticker: "FREE", Shares: 3, PurchasePrice: 0, CurrentPrice: current})
		require.NoError(t, err)
		assert.Equal(t, 0.0, pos.ReturnPct(), "current price %v", current)
		assert.Equal(t, 0.0, pos.TotalCost())
	}
}

func TestCompute_IsDeterministic(t *testing.T) {
	input := PositionInput{Ticker: "GOOGL", Shares: 37, PurchasePrice: 123.456, CurrentPrice: 131.789}

	first, err := Compute(input)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Compute(input)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCompute_DerivedFieldsAreConsistent(t *testing.T) {
	inputs := []PositionInput{
		{Ticker: "A", Shares: 13, PurchasePrice: 33.333, CurrentPrice: 41.117},
		{Ticker: "B", Shares: 97, PurchasePrice: 499.99, CurrentPrice: 400.01},
		{Ticker: "C", Shares: 1, PurchasePrice: 0.01, CurrentPrice: 0.02},
		{Ticker: "D", Shares: 12345, PurchasePrice: 1.005, CurrentPrice: 2.675},
	}

	for _, input := range inputs {
		pos, err := Compute(input)
		require.NoError(t, err)

		assert.InDelta(t, pos.GainLoss(), pos.TotalValue()-pos.TotalCost(), 0.01, input.Ticker)
		assert.InDelta(t, float64(pos.Shares())*pos.CurrentPrice(), pos.TotalValue(), 0.0051, input.Ticker)

		recomputed, err := Compute(pos.Input())
		require.NoError(t, err)
		assert.Equal(t, pos, recomputed, "a position must re-derive to itself")
	}
}

func TestCompute_RoundsToCents(t *testing.T) {
	pos, err := Compute(PositionInput{Ticker: "X", Shares: 3, PurchasePrice: 10, CurrentPrice: 13.33333})
	require.NoError(t, err)

	assert.Equal(t, 13.33, pos.CurrentPrice())
	assert.Equal(t, 39.99, pos.TotalValue())
	assert.Equal(t, 9.99, pos.GainLoss())
	assert.Equal(t, 33.3, pos.ReturnPct())
}

func TestCompute_TruncatesShares(t *testing.T) {
	pos, err := Compute(PositionInput{Ticker: "X", Shares: 10.9, PurchasePrice: 1, CurrentPrice: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(10), pos.Shares())
	assert.Equal(t, 20.0, pos.TotalValue())
}

func TestCompute_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input PositionInput
		field string
	}{
		{"empty ticker", PositionInput{Ticker: "", Shares: 1, PurchasePrice: 1, CurrentPrice: 1}, "ticker"},
		{"blank ticker", PositionInput{Ticker: "   ", Shares: 1, PurchasePrice: 1, CurrentPrice: 1}, "ticker"},
		{"nan shares", PositionInput{Ticker: "X", Shares: math.NaN(), PurchasePrice: 1, CurrentPrice: 1}, "shares"},
		{"inf purchase", PositionInput{Ticker: "X", Shares: 1, PurchasePrice: math.Inf(1), CurrentPrice: 1}, "purchase_price"},
		{"inf current", PositionInput{Ticker: "X", Shares: 1, PurchasePrice: 1, CurrentPrice: math.Inf(-1)}, "current_price"},
		{"huge shares", PositionInput{Ticker: "X", Shares: 1e20, PurchasePrice: 1, CurrentPrice: 1}, "shares"},
		{"huge purchase", PositionInput{Ticker: "X", Shares: 10, PurchasePrice: 1e308, CurrentPrice: 1}, "purchase_price"},
		{"huge current", PositionInput{Ticker: "X", Shares: 10, PurchasePrice: 1, CurrentPrice: 1e308}, "current_price"},
		{"value overflows", PositionInput{Ticker: "X", Shares: 1e18, PurchasePrice: 1, CurrentPrice: 1e6}, "total_value"},
		{"cost overflows", PositionInput{Ticker: "X", Shares: 1e18, PurchasePrice: 1e6, CurrentPrice: 0}, "total_cost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.input)
			require.Error(t, err)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestCompute_AcceptsAmountsAtTheBound(t *testing.T) {
	pos, err := Compute(PositionInput{Ticker: "BIG", Shares: 1e6, PurchasePrice: 1e9, CurrentPrice: 1e9})
	require.NoError(t, err)
	assert.Equal(t, MaxAmount, pos.TotalValue())
	assert.Equal(t, 0.0, pos.GainLoss())

	summary := Summarize([]Position{pos, pos, pos})
	assert.False(t, math.IsInf(summary.TotalValue, 0))
	assert.Equal(t, 3*MaxAmount, summary.TotalValue)
}

func TestCalculator_NegativeValues(t *testing.T) {
	input := PositionInput{Ticker: "NEG", Shares: -5, PurchasePrice: 10, CurrentPrice: 12}

	t.Run("permissive by default", func(t *testing.T) {
		pos, err := Calculator{}.Compute(input)
		require.NoError(t, err)
		assert.Equal(t, int64(-5), pos.Shares())
		assert.Equal(t, -60.0, pos.TotalValue())
		assert.Equal(t, -10.0, pos.GainLoss())
	})

	t.Run("rejected when strict", func(t *testing.T) {
		strict := Calculator{RejectNegative: true}

		_, err := strict.Compute(input)
		assert.True(t, domain.IsValidation(err))

		_, err = strict.Compute(PositionInput{Ticker: "NEG", Shares: 1, PurchasePrice: -1, CurrentPrice: 1})
		assert.True(t, domain.IsValidation(err))

		_, err = strict.Compute(PositionInput{Ticker: "OK", Shares: 0, PurchasePrice: 0, CurrentPrice: 0})
		assert.NoError(t, err)
	})
}

func TestParseInput(t *testing.T) {
	t.Run("numbers", func(t *testing.T) {
		input, err := ParseInput([]byte(`{"ticker":"aapl","shares":10,"purchase_price":100.5,"current_price":150}`))
		require.NoError(t, err)
		assert.Equal(t, PositionInput{Ticker: "aapl", Shares: 10, PurchasePrice: 100.5, CurrentPrice: 150}, input)
	})

	t.Run("numeric strings", func(t *testing.T) {
		input, err := ParseInput([]byte(`{"ticker":"MSFT","shares":"5","purchase_price":" 200.00 ","current_price":"1e2"}`))
		require.NoError(t, err)
		assert.Equal(t, 5.0, input.Shares)
		assert.Equal(t, 200.0, input.PurchasePrice)
		assert.Equal(t, 100.0, input.CurrentPrice)
	})

	t.Run("extra fields ignored", func(t *testing.T) {
		_, err := ParseInput([]byte(`{"ticker":"X","shares":1,"purchase_price":1,"current_price":1,"note":"hi"}`))
		assert.NoError(t, err)
	})

	errorCases := []struct {
		name  string
		body  string
		field string
	}{
		{"not json", `not json`, ""},
		{"array body", `[1,2]`, ""},
		{"null body", `null`, ""},
		{"missing ticker", `{"shares":1,"purchase_price":1,"current_price":1}`, "ticker"},
		{"numeric ticker", `{"ticker":5,"shares":1,"purchase_price":1,"current_price":1}`, "ticker"},
		{"null ticker", `{"ticker":null,"shares":1,"purchase_price":1,"current_price":1}`, "ticker"},
		{"missing shares", `{"ticker":"X","purchase_price":1,"current_price":1}`, "shares"},
		{"text shares", `{"ticker":"X","shares":"ten","purchase_price":1,"current_price":1}`, "shares"},
		{"bool price", `{"ticker":"X","shares":1,"purchase_price":true,"current_price":1}`, "purchase_price"},
		{"null price", `{"ticker":"X","shares":1,"purchase_price":1,"current_price":null}`, "current_price"},
		{"nan string", `{"ticker":"X","shares":1,"purchase_price":"NaN","current_price":1}`, "purchase_price"},
		{"missing current", `{"ticker":"X","shares":1,"purchase_price":1}`, "current_price"},
	}

	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInput([]byte(tt.body))
			require.Error(t, err)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.NotEmpty(t, verr.Error())
		})
	}
}
