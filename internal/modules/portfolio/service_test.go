package portfolio

import (
	"math/rand"
	"testing"

	"github.com/aristath/folio/internal/domain"
	"github.com/aristath/folio/internal/events"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEmitter struct {
	emitted []events.EventData
}

func (r *recordingEmitter) EmitTyped(module string, data events.EventData) {
	r.emitted = append(r.emitted, data)
}

func (r *recordingEmitter) types() []events.EventType {
	out := make([]events.EventType, len(r.emitted))
	for i, d := range r.emitted {
		out[i] = d.EventType()
	}
	return out
}

func newTestService(t *testing.T) (*PortfolioService, *recordingEmitter) {
	t.Helper()
	emitter := &recordingEmitter{}
	svc := NewPortfolioService(NewStore(), Calculator{}, emitter, rand.New(rand.NewSource(42)), zerolog.Nop())
	return svc, emitter
}

func TestPortfolioService_AddAndSummarize(t *testing.T) {
	svc, emitter := newTestService(t)

	_, err := svc.AddPosition(PositionInput{Ticker: "AAPL", Shares: 10, PurchasePrice: 100, CurrentPrice: 150})
	require.NoError(t, err)
	_, err = svc.AddPosition(PositionInput{Ticker: "MSFT", Shares: 5, PurchasePrice: 200, CurrentPrice: 180})
	require.NoError(t, err)

	positions, summary := svc.GetPortfolio()
	assert.Len(t, positions, 2)
	assert.Equal(t, 400.0, summary.TotalGainLoss)
	assert.Equal(t, 20.0, summary.OverallReturn)
	assert.Equal(t, summary, svc.GetSummary())
	assert.Equal(t, 2, svc.Count())

	assert.Equal(t, []events.EventType{events.PositionAdded, events.PositionAdded}, emitter.types())
}

func TestPortfolioService_AddInvalidDoesNotWrite(t *testing.T) {
	svc, emitter := newTestService(t)

	_, err := svc.AddPosition(PositionInput{Ticker: " ", Shares: 1, PurchasePrice: 1, CurrentPrice: 1})
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, 0, svc.Count())
	assert.Empty(t, emitter.emitted)
}

func TestPortfolioService_UpdatePosition(t *testing.T) {
	svc, emitter := newTestService(t)
	_, err := svc.AddPosition(PositionInput{Ticker: "AAPL", Shares: 10, PurchasePrice: 100, CurrentPrice: 150})
	require.NoError(t, err)

	pos, err := svc.UpdatePosition("aapl", PositionInput{Ticker: "AAPL", Shares: 20, PurchasePrice: 100, CurrentPrice: 110})
	require.NoError(t, err)
	assert.Equal(t, 2200.0, pos.TotalValue())
	assert.Equal(t, 10.0, pos.ReturnPct())

	positions, _ := svc.GetPortfolio()
	require.Len(t, positions, 1)
	assert.Equal(t, pos, positions[0])

	require.Len(t, emitter.emitted, 2)
	changed := emitter.emitted[1].(*events.PositionChangedData)
	assert.Equal(t, events.PositionUpdated, changed.EventType())
	assert.Equal(t, "AAPL", changed.PreviousTicker)
}

func TestPortfolioService_UpdateMissing(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.AddPosition(PositionInput{Ticker: "AAPL", Shares: 10, PurchasePrice: 100, CurrentPrice: 150})
	require.NoError(t, err)
	before, _ := svc.GetPortfolio()

	_, err = svc.UpdatePosition("NVDA", PositionInput{Ticker: "NVDA", Shares: 1, PurchasePrice: 1, CurrentPrice: 1})
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, "Position not found", err.Error())

	// Lookup wins over validation
	_, err = svc.UpdatePosition("NVDA", PositionInput{})
	assert.True(t, domain.IsNotFound(err))

	after, _ := svc.GetPortfolio()
	assert.Equal(t, before, after)
}

func TestPortfolioService_UpdateInvalidKeepsOld(t *testing.T) {
	svc, _ := newTestService(t)
	original, err := svc.AddPosition(PositionInput{Ticker: "AAPL", Shares: 10, PurchasePrice: 100, CurrentPrice: 150})
	require.NoError(t, err)

	_, err = svc.UpdatePosition("AAPL", PositionInput{Ticker: "", Shares: 1, PurchasePrice: 1, CurrentPrice: 1})
	assert.True(t, domain.IsValidation(err))

	positions, _ := svc.GetPortfolio()
	assert.Equal(t, []Position{original}, positions)
}

func TestPortfolioService_DeleteIsIdempotent(t *testing.T) {
	svc, emitter := newTestService(t)
	_, err := svc.AddPosition(PositionInput{Ticker: "AAPL", Shares: 10, PurchasePrice: 100, CurrentPrice: 150})
	require.NoError(t, err)

	assert.Equal(t, 0, svc.DeletePosition("NVDA"))
	assert.Equal(t, 1, svc.Count())
	assert.Len(t, emitter.emitted, 1, "no event for a no-op delete")

	assert.Equal(t, 1, svc.DeletePosition("aapl"))
	assert.Equal(t, 0, svc.DeletePosition("aapl"))
	assert.Equal(t, 0, svc.Count())
}

func TestPortfolioService_Clear(t *testing.T) {
	svc, emitter := newTestService(t)
	_, _ = svc.AddPosition(PositionInput{Ticker: "AAPL", Shares: 1, PurchasePrice: 1, CurrentPrice: 1})
	_, _ = svc.AddPosition(PositionInput{Ticker: "MSFT", Shares: 1, PurchasePrice: 1, CurrentPrice: 1})

	assert.Equal(t, 2, svc.ClearPortfolio())
	assert.Equal(t, 0, svc.Count())
	assert.Equal(t, Summary{}, svc.GetSummary())
	assert.Equal(t, RiskMetrics{}, svc.GetRiskMetrics())
	assert.Equal(t, events.PortfolioCleared, emitter.types()[2])
}

func TestPortfolioService_ExportImport(t *testing.T) {
	svc, emitter := newTestService(t)
	_, _ = svc.AddPosition(PositionInput{Ticker: "aapl", Shares: 10, PurchasePrice: 100, CurrentPrice: 150})
	_, _ = svc.AddPosition(PositionInput{Ticker: "MSFT", Shares: 5, PurchasePrice: 200, CurrentPrice: 180})

	exported := svc.Export()
	require.Len(t, exported, 2)
	assert.Equal(t, PositionInput{Ticker: "AAPL", Shares: 10, PurchasePrice: 100, CurrentPrice: 150}, exported[0])

	before, beforeSummary := svc.GetPortfolio()
	svc.ClearPortfolio()

	imported, err := svc.Import(exported, "json")
	require.NoError(t, err)
	assert.Equal(t, before, imported)

	_, afterSummary := svc.GetPortfolio()
	assert.Equal(t, beforeSummary, afterSummary)
	assert.Equal(t, events.PortfolioImported, emitter.types()[len(emitter.emitted)-1])
}

func TestPortfolioService_ImportIsAllOrNothing(t *testing.T) {
	svc, _ := newTestService(t)
	_, _ = svc.AddPosition(PositionInput{Ticker: "KEEP", Shares: 1, PurchasePrice: 1, CurrentPrice: 1})

	_, err := svc.Import([]PositionInput{
		{Ticker: "GOOD", Shares: 1, PurchasePrice: 1, CurrentPrice: 1},
		{Ticker: "", Shares: 1, PurchasePrice: 1, CurrentPrice: 1},
	}, "json")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "position 2")

	positions, _ := svc.GetPortfolio()
	assert.Equal(t, []string{"KEEP"}, tickers(positions))
}

func TestPortfolioService_LoadSample(t *testing.T) {
	svc, _ := newTestService(t)
	_, _ = svc.AddPosition(PositionInput{Ticker: "OLD", Shares: 1, PurchasePrice: 1, CurrentPrice: 1})

	positions, err := svc.LoadSample()
	require.NoError(t, err)
	assert.Equal(t, SampleTickers, tickers(positions))

	stored, summary := svc.GetPortfolio()
	assert.Equal(t, positions, stored)
	assert.Equal(t, len(SampleTickers), summary.NumPositions)
}

func TestPortfolioService_StrictCalculator(t *testing.T) {
	svc := NewPortfolioService(NewStore(), Calculator{RejectNegative: true}, nil, nil, zerolog.Nop())

	_, err := svc.AddPosition(PositionInput{Ticker: "NEG", Shares: -1, PurchasePrice: 1, CurrentPrice: 1})
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, 0, svc.Count())
}
