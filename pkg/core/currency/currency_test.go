package currency

import (
	"errors"
	"math"
	"testing"

	"github.com/camayank/StartupValuator-sub000/pkg/models"
)

func TestRoundTrip(t *testing.T) {
	n := NewNormalizer()
	amounts := []float64{0, 1, 999.99, 1_000_000, 3.14159e9}
	currencies := []models.Currency{
		models.CurrencyUSD, models.CurrencyEUR, models.CurrencyGBP,
		models.CurrencyJPY, models.CurrencyINR, models.CurrencyCAD,
		models.CurrencyAUD, models.CurrencySGD,
	}

	for _, c := range currencies {
		for _, x := range amounts {
			base, err := n.ToBase(x, c)
			if err != nil {
				t.Fatalf("ToBase(%v, %s): unexpected error: %v", x, c, err)
			}
			back, err := n.FromBase(base, c)
			if err != nil {
				t.Fatalf("FromBase(%v, %s): unexpected error: %v", base, c, err)
			}
			if x == 0 {
				if back != 0 {
					t.Errorf("round trip of 0 in %s gave %v", c, back)
				}
				continue
			}
			relErr := math.Abs(back-x) / x
			if relErr > 1e-6 {
				t.Errorf("round trip %v in %s: got %v (rel err %g)", x, c, back, relErr)
			}
		}
	}
}

func TestUSDIsIdentity(t *testing.T) {
	n := NewNormalizer()
	base, err := n.ToBase(1234.5, models.CurrencyUSD)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base != 1234.5 {
		t.Errorf("expected USD to be identity, got %v", base)
	}
}

func TestUnsupportedCurrency(t *testing.T) {
	n := NewNormalizer()
	_, err := n.ToBase(100, models.Currency("XYZ"))
	if err == nil {
		t.Fatal("expected error for unsupported currency, got nil")
	}
	if !errors.Is(err, ErrUnsupportedCurrency) {
		t.Errorf("expected ErrUnsupportedCurrency, got %v", err)
	}

	_, err = n.FromBase(100, models.Currency("XYZ"))
	if !errors.Is(err, ErrUnsupportedCurrency) {
		t.Errorf("FromBase: expected ErrUnsupportedCurrency, got %v", err)
	}
}
