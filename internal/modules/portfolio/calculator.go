package portfolio

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/aristath/folio/internal/domain"
	"github.com/aristath/folio/pkg/formulas"
)

// MaxAmount bounds the magnitude of prices and of every derived money value.
// Keeping single positions under it means portfolio totals and return
// statistics stay finite and encodable.
const MaxAmount = 1e15

// Calculator turns raw position input into a computed Position.
// The zero value accepts negative shares and prices, matching what the
// dashboard has always been able to submit.
type Calculator struct {
	// RejectNegative makes Compute fail on negative shares or prices
	RejectNegative bool
}

// Compute computes a position with the permissive default calculator
func Compute(input PositionInput) (Position, error) {
	return Calculator{}.Compute(input)
}

// Compute derives every field of a Position from the four raw inputs.
//
// Shares are truncated toward zero and prices rounded to cents before the
// derived values are computed, so a position always re-derives to itself.
// A zero purchase price yields a zero return rather than a division by zero.
func (c Calculator) Compute(input PositionInput) (Position, error) {
	ticker := strings.ToUpper(strings.TrimSpace(input.Ticker))
	if ticker == "" {
		return Position{}, domain.NewValidationError("ticker", "must not be empty")
	}

	if err := c.checkNumber("shares", input.Shares); err != nil {
		return Position{}, err
	}
	if err := c.checkNumber("purchase_price", input.PurchasePrice); err != nil {
		return Position{}, err
	}
	if err := c.checkNumber("current_price", input.CurrentPrice); err != nil {
		return Position{}, err
	}

	shares := int64(input.Shares)
	purchase := formulas.Round2(input.PurchasePrice)
	current := formulas.Round2(input.CurrentPrice)
	count := float64(shares)

	pos := Position{
		ticker:        ticker,
		shares:        shares,
		purchasePrice: purchase,
		currentPrice:  current,
		totalValue:    formulas.Round2(count * current),
		totalCost:     formulas.Round2(count * purchase),
		gainLoss:      formulas.Round2((current - purchase) * count),
		returnPct:     formulas.Round2(formulas.PercentChange(purchase, current)),
	}
	if err := checkDerived(pos); err != nil {
		return Position{}, err
	}
	return pos, nil
}

func checkDerived(pos Position) error {
	derived := []struct {
		field string
		value float64
	}{
		{"total_value", pos.totalValue},
		{"total_cost", pos.totalCost},
		{"gain_loss", pos.gainLoss},
	}
	for _, d := range derived {
		if math.IsNaN(d.value) || math.IsInf(d.value, 0) || math.Abs(d.value) > MaxAmount {
			return domain.NewValidationError(d.field, "is out of range")
		}
	}
	if math.IsNaN(pos.returnPct) || math.IsInf(pos.returnPct, 0) {
		return domain.NewValidationError("return_pct", "is out of range")
	}
	return nil
}

func (c Calculator) checkNumber(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.NewValidationError(field, "must be a finite number")
	}
	if field == "shares" && math.Abs(v) >= math.MaxInt64 {
		return domain.NewValidationError(field, "is out of range")
	}
	if field != "shares" && math.Abs(v) > MaxAmount {
		return domain.NewValidationError(field, "is out of range")
	}
	if c.RejectNegative && v < 0 {
		return domain.NewValidationError(field, "must not be negative")
	}
	return nil
}

// ParseInput validates a JSON request body into a PositionInput.
//
// All four fields are required. Numeric fields accept JSON numbers or
// strings holding a number, since dashboard forms post their values as text.
func ParseInput(raw []byte) (PositionInput, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return PositionInput{}, &domain.ValidationError{Message: "request body must be a JSON object"}
	}

	var input PositionInput
	var err error

	if input.Ticker, err = parseTicker(fields); err != nil {
		return PositionInput{}, err
	}
	if input.Shares, err = parseNumber(fields, "shares"); err != nil {
		return PositionInput{}, err
	}
	if input.PurchasePrice, err = parseNumber(fields, "purchase_price"); err != nil {
		return PositionInput{}, err
	}
	if input.CurrentPrice, err = parseNumber(fields, "current_price"); err != nil {
		return PositionInput{}, err
	}

	return input, nil
}

func parseTicker(fields map[string]json.RawMessage) (string, error) {
	raw, ok := fields["ticker"]
	if !ok {
		return "", domain.NewValidationError("ticker", "field is required")
	}

	var ticker string
	if err := json.Unmarshal(raw, &ticker); err != nil || isNull(raw) {
		return "", domain.NewValidationError("ticker", "must be a string")
	}
	return ticker, nil
}

func parseNumber(fields map[string]json.RawMessage, field string) (float64, error) {
	raw, ok := fields[field]
	if !ok {
		return 0, domain.NewValidationError(field, "field is required")
	}

	var value interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&value); err != nil {
		return 0, domain.NewValidationError(field, "must be a number")
	}

	var text string
	switch v := value.(type) {
	case json.Number:
		text = v.String()
	case string:
		text = strings.TrimSpace(v)
	default:
		return 0, domain.NewValidationError(field, "must be a number")
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, domain.NewValidationError(field, "could not convert %q to a number", text)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, domain.NewValidationError(field, "must be a finite number")
	}
	return f, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
