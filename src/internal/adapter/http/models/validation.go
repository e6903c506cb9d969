package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Numeric inputs are money, rates or percentages. Anything longer, finer or
// larger than these bounds is rejected before it reaches decimal arithmetic.
const (
	maxDecimalLength   = 32
	maxDecimalExponent = 12
	minDecimalExponent = -12
)

var (
	maxDecimalValue = decimal.New(1, maxDecimalExponent)

	errNotNumeric = errors.New("must be numeric")
	errOutOfRange = errors.New("is out of range")
)

// parseBounded parses value and rejects numbers outside the bounds above. The
// exponent is checked before any comparison so a value like 1e5000000 is
// never expanded.
func parseBounded(value string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(value)
	if len(raw) > maxDecimalLength {
		return decimal.Zero, errOutOfRange
	}
	parsed, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errNotNumeric
	}
	if exp := parsed.Exponent(); exp > maxDecimalExponent || exp < minDecimalExponent {
		return decimal.Zero, errOutOfRange
	}
	if parsed.Abs().GreaterThan(maxDecimalValue) {
		return decimal.Zero, errOutOfRange
	}
	return parsed, nil
}

type validationErrors []string

func (v *validationErrors) add(msg string) {
	*v = append(*v, msg)
}

func (v validationErrors) err() error {
	if len(v) == 0 {
		return nil
	}
	return errors.New(strings.Join(v, "; "))
}

// checkCurrency appends an error when value is not a 3 letter code. Empty is
// only an error when required.
func (v *validationErrors) checkCurrency(field, value string, required bool) {
	ccy := strings.TrimSpace(value)
	if ccy == "" {
		if required {
			v.add(field + " is required")
		}
		return
	}
	if len(ccy) != 3 {
		v.add(field + " must be 3 characters")
	}
}

// checkAmount parses value and appends an error when it is missing, not
// numeric, or not above zero.
func (v *validationErrors) checkAmount(field, value string) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		v.add(field + " is required")
		return
	}
	parsed, err := parseBounded(raw)
	if err != nil {
		v.add(field + " " + err.Error())
		return
	}
	if parsed.LessThanOrEqual(decimal.Zero) {
		v.add(field + " must be greater than zero")
	}
}

// checkOptionalDecimal validates a numeric field that may be left empty.
func (v *validationErrors) checkOptionalDecimal(field, value string, allowNegative bool) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return
	}
	parsed, err := parseBounded(raw)
	if err != nil {
		v.add(field + " " + err.Error())
		return
	}
	if !allowNegative && parsed.IsNegative() {
		v.add(field + " cannot be negative")
	}
}

// ParseDecimal returns zero for an empty, malformed or out of range value.
// Callers validate first.
func ParseDecimal(value string) decimal.Decimal {
	parsed, err := parseBounded(value)
	if err != nil {
		return decimal.Zero
	}
	return parsed
}

func NormalizeCurrency(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
