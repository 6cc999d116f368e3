// Package historical generates illustrative price histories for the dashboard
// charts. The series are random walks, not market data.
package historical

import (
	"math/rand"
	"sync"
	"time"

	"github.com/aristath/folio/pkg/formulas"
)

const dateLayout = "2006-01-02"

// Series is a daily price history, oldest first
type Series struct {
	Dates  []string   `json:"dates"`
	Prices []float64  `json:"prices"`
	SMA    []*float64 `json:"sma,omitempty"`
}

// Generator produces random-walk price series.
// It is safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	rng     *rand.Rand
	now     func() time.Time
	maxDays int
}

// NewGenerator creates a generator. A nil rng is seeded from the clock and a
// nil now defaults to time.Now. maxDays <= 0 disables clamping.
func NewGenerator(rng *rand.Rand, now func() time.Time, maxDays int) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{rng: rng, now: now, maxDays: maxDays}
}

// Generate returns one price per calendar day for the days ending yesterday.
// The starting price is drawn from [100, 500) and each day moves it by up to
// five percent either way. days <= 0 yields empty slices.
func (g *Generator) Generate(ticker string, days int) Series {
	if g.maxDays > 0 && days > g.maxDays {
		days = g.maxDays
	}
	if days <= 0 {
		return Series{Dates: []string{}, Prices: []float64{}}
	}

	today := g.now()
	dates := make([]string, 0, days)
	for offset := days; offset > 0; offset-- {
		dates = append(dates, today.AddDate(0, 0, -offset).Format(dateLayout))
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	price := 100 + g.rng.Float64()*400
	prices := make([]float64, 0, days)
	for range dates {
		price *= 1 + (g.rng.Float64()*0.1 - 0.05)
		prices = append(prices, formulas.Round2(price))
	}

	return Series{Dates: dates, Prices: prices}
}

// WithSMA attaches a simple moving average of the prices over period days
func (s Series) WithSMA(period int) Series {
	s.SMA = formulas.SMASeries(s.Prices, period)
	return s
}
