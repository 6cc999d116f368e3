package portfolio

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/aristath/folio/internal/events"
	"github.com/rs/zerolog"
)

const moduleName = "portfolio"

// EventEmitter publishes portfolio change notifications
type EventEmitter interface {
	EmitTyped(module string, data events.EventData)
}

// PortfolioService orchestrates the position store, the calculator and the
// aggregator. Handlers talk to it instead of to the store directly so every
// mutation is validated, recomputed and announced the same way.
type PortfolioService struct {
	store   *Store
	calc    Calculator
	emitter EventEmitter

	rngMu sync.Mutex
	rng   *rand.Rand

	log zerolog.Logger
}

// NewPortfolioService creates a new portfolio service.
// emitter and rng may be nil; a nil rng is seeded from the clock.
func NewPortfolioService(
	store *Store,
	calc Calculator,
	emitter EventEmitter,
	rng *rand.Rand,
	log zerolog.Logger,
) *PortfolioService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &PortfolioService{
		store:   store,
		calc:    calc,
		emitter: emitter,
		rng:     rng,
		log:     log.With().Str("service", "portfolio").Logger(),
	}
}

// GetPortfolio returns the stored positions and their summary
func (s *PortfolioService) GetPortfolio() ([]Position, Summary) {
	positions := s.store.List()
	return positions, Summarize(positions)
}

// GetSummary returns the portfolio summary
func (s *PortfolioService) GetSummary() Summary {
	return Summarize(s.store.List())
}

// GetRiskMetrics returns return statistics over the stored positions
func (s *PortfolioService) GetRiskMetrics() RiskMetrics {
	return Risk(s.store.List())
}

// Count returns the number of stored positions
func (s *PortfolioService) Count() int {
	return s.store.Len()
}

// HasPosition reports whether any stored position matches ticker
func (s *PortfolioService) HasPosition(ticker string) bool {
	_, ok := s.store.Find(ticker)
	return ok
}

// AddPosition computes and appends a position
func (s *PortfolioService) AddPosition(input PositionInput) (Position, error) {
	pos, err := s.calc.Compute(input)
	if err != nil {
		return Position{}, err
	}

	s.store.Add(pos)
	s.log.Info().
		Str("ticker", pos.ticker).
		Int64("shares", pos.shares).
		Float64("total_value", pos.totalValue).
		Msg("Position added")

	s.emit(&events.PositionChangedData{
		Ticker:     pos.ticker,
		Shares:     pos.shares,
		TotalValue: pos.totalValue,
		ReturnPct:  pos.returnPct,
	})
	return pos, nil
}

// UpdatePosition replaces the first position matching ticker with one
// recomputed from input. The lookup happens first, so an unknown ticker is
// reported as not found even when input is invalid.
func (s *PortfolioService) UpdatePosition(ticker string, input PositionInput) (Position, error) {
	var previous string
	pos, err := s.store.Update(ticker, func(current Position) (Position, error) {
		previous = current.ticker
		return s.calc.Compute(input)
	})
	if err != nil {
		return Position{}, err
	}

	s.log.Info().
		Str("ticker", pos.ticker).
		Str("previous_ticker", previous).
		Msg("Position updated")

	s.emit(&events.PositionChangedData{
		Ticker:         pos.ticker,
		PreviousTicker: previous,
		Shares:         pos.shares,
		TotalValue:     pos.totalValue,
		ReturnPct:      pos.returnPct,
	})
	return pos, nil
}

// DeletePosition removes every position matching ticker.
// Deleting an unknown ticker is not an error.
func (s *PortfolioService) DeletePosition(ticker string) int {
	removed := s.store.Delete(ticker)
	if removed == 0 {
		return 0
	}

	s.log.Info().Str("ticker", ticker).Int("removed", removed).Msg("Position deleted")
	s.emit(&events.PositionDeletedData{Ticker: ticker, Removed: removed})
	return removed
}

// ClearPortfolio removes all positions and returns how many were removed
func (s *PortfolioService) ClearPortfolio() int {
	removed := s.store.Clear()

	s.log.Info().Int("removed", removed).Msg("Portfolio cleared")
	s.emit(&events.PortfolioClearedData{Removed: removed})
	return removed
}

// Export returns the raw inputs of every stored position in order
func (s *PortfolioService) Export() []PositionInput {
	positions := s.store.List()
	inputs := make([]PositionInput, len(positions))
	for i, pos := range positions {
		inputs[i] = pos.Input()
	}
	return inputs
}

// Import replaces the portfolio with positions computed from inputs.
// Every entry is validated before the store changes; one bad entry rejects
// the whole document.
func (s *PortfolioService) Import(inputs []PositionInput, source string) ([]Position, error) {
	positions, err := s.computeAll(inputs)
	if err != nil {
		return nil, err
	}

	s.store.ReplaceAll(positions)
	s.log.Info().Str("source", source).Int("positions", len(positions)).Msg("Portfolio imported")
	s.emit(&events.PortfolioImportedData{Source: source, Positions: len(positions)})
	return positions, nil
}

// LoadSample replaces the portfolio with randomly generated demo positions
func (s *PortfolioService) LoadSample() ([]Position, error) {
	s.rngMu.Lock()
	inputs := GenerateSampleInputs(s.rng)
	s.rngMu.Unlock()

	return s.Import(inputs, "sample")
}

func (s *PortfolioService) computeAll(inputs []PositionInput) ([]Position, error) {
	positions := make([]Position, 0, len(inputs))
	for i, input := range inputs {
		pos, err := s.calc.Compute(input)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i+1, err)
		}
		positions = append(positions, pos)
	}
	return positions, nil
}

func (s *PortfolioService) emit(data events.EventData) {
	if s.emitter == nil {
		return
	}
	s.emitter.EmitTyped(moduleName, data)
}
