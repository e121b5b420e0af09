// Package currency normalizes monetary amounts to and from the engine's base
// currency (USD) via a fixed rate table. Rates are static snapshots, not a
// live feed; callers that need fresher rates swap the table at construction.
package currency

import (
	"errors"
	"fmt"

	"github.com/camayank/StartupValuator-sub000/pkg/models"
)

// ErrUnsupportedCurrency is returned for any code missing from the rate table.
// There is deliberately no silent fallback to USD.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// usdPerUnit holds how many USD one unit of each currency buys.
var usdPerUnit = map[models.Currency]float64{
	models.CurrencyUSD: 1.0,
	models.CurrencyEUR: 1.09,
	models.CurrencyGBP: 1.27,
	models.CurrencyJPY: 0.0067,
	models.CurrencyINR: 0.012,
	models.CurrencyCAD: 0.74,
	models.CurrencyAUD: 0.66,
	models.CurrencySGD: 0.75,
}

// Normalizer converts amounts between a request currency and USD.
type Normalizer struct {
	rates map[models.Currency]float64
}

// NewNormalizer returns a Normalizer over the built-in rate table.
func NewNormalizer() *Normalizer {
	return &Normalizer{rates: usdPerUnit}
}

// NewNormalizerWithRates returns a Normalizer over a caller-supplied table.
// The table must map USD to 1.
func NewNormalizerWithRates(rates map[models.Currency]float64) *Normalizer {
	return &Normalizer{rates: rates}
}

// ToBase converts an amount in the given currency to USD.
func (n *Normalizer) ToBase(amount float64, c models.Currency) (float64, error) {
	rate, ok := n.rates[c]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, c)
	}
	return amount * rate, nil
}

// FromBase converts a USD amount back to the given currency.
// Round-trip through ToBase is exact up to floating-point rounding.
func (n *Normalizer) FromBase(amountUSD float64, c models.Currency) (float64, error) {
	rate, ok := n.rates[c]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, c)
	}
	return amountUSD / rate, nil
}

// Supported reports whether the currency is present in the rate table.
func (n *Normalizer) Supported(c models.Currency) bool {
	_, ok := n.rates[c]
	return ok
}
