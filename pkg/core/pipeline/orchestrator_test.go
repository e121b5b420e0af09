package pipeline

import (
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/camayank/StartupValuator-sub000/pkg/core/currency"
	"github.com/camayank/StartupValuator-sub000/pkg/core/insight"
	"github.com/camayank/StartupValuator-sub000/pkg/core/valuation"
	"github.com/camayank/StartupValuator-sub000/pkg/models"
)

func floatPtr(v float64) *float64 { return &v }

func growthTechProfile() *models.BusinessProfile {
	return &models.BusinessProfile{
		Sector:          models.SectorTechnology,
		Stage:           models.StageGrowth,
		Region:          models.RegionNorthAmerica,
		Currency:        models.CurrencyUSD,
		Revenue:         1_000_000,
		GrowthRate:      floatPtr(40),
		OperatingMargin: floatPtr(25),
	}
}

type fixedInsightSource struct {
	factor float64
	err    error
}

func (s fixedInsightSource) GetExternalValuationInsight(_ context.Context, _ *models.BusinessProfile) (*insight.Insight, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &insight.Insight{AdjustmentFactor: s.factor}, nil
}

func methodValue(t *testing.T, r *valuation.Result, m valuation.Method) float64 {
	t.Helper()
	for _, mr := range r.Methods {
		if mr.Method == m {
			return mr.Value
		}
	}
	t.Fatalf("method %s missing from result", m)
	return 0
}

func TestComputeValuationGrowthTech(t *testing.T) {
	o := New(WithInsightSource(fixedInsightSource{factor: 3.0}, time.Second))
	result, err := o.ComputeValuation(context.Background(), growthTechProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Methods) != 4 {
		t.Fatalf("expected all four methods, got %d", len(result.Methods))
	}

	dcf := methodValue(t, result, valuation.MethodDCF)
	comps := methodValue(t, result, valuation.MethodComparables)
	if dcf <= comps {
		t.Errorf("high-growth profile must value DCF above comparables: %v vs %v", dcf, comps)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, m := range result.Methods {
		lo = math.Min(lo, m.Value)
		hi = math.Max(hi, m.Value)
	}
	if result.FinalValue < lo || result.FinalValue > hi {
		t.Errorf("blended value %v outside method envelope [%v, %v]", result.FinalValue, lo, hi)
	}

	if math.Abs(result.Weights.Sum()-1.0) > 1e-9 {
		t.Errorf("weights must sum to 1, got %.12f", result.Weights.Sum())
	}
	if result.Confidence < 50 || result.Confidence > 100 {
		t.Errorf("confidence %d outside [50,100]", result.Confidence)
	}
	if result.Scenarios.Worst.Value > result.Scenarios.Base.Value ||
		result.Scenarios.Base.Value > result.Scenarios.Best.Value {
		t.Errorf("scenario ordering violated: %+v", result.Scenarios)
	}
	if len(result.Sensitivity) != 3 {
		t.Errorf("expected growth/margin/discount sweeps, got %d", len(result.Sensitivity))
	}
}

func TestComputeValuationPreRevenue(t *testing.T) {
	p := &models.BusinessProfile{
		Sector:   models.SectorTechnology,
		Stage:    models.StagePreRevenue,
		Region:   models.RegionNorthAmerica,
		Currency: models.CurrencyUSD,
		Revenue:  0,
	}

	o := New()
	result, err := o.ComputeValuation(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v := methodValue(t, result, valuation.MethodComparables); v <= 0 {
		t.Errorf("pre-revenue comparables must be non-zero, got %v", v)
	}
	if v := methodValue(t, result, valuation.MethodRiskAdjusted); v <= 0 {
		t.Errorf("pre-revenue risk-adjusted must be non-zero, got %v", v)
	}
	dcf := methodValue(t, result, valuation.MethodDCF)
	if math.IsNaN(dcf) || math.IsInf(dcf, 0) {
		t.Errorf("zero-revenue DCF must stay finite, got %v", dcf)
	}
	if result.FinalValue <= 0 {
		t.Errorf("pre-revenue final value must be positive, got %v", result.FinalValue)
	}
}

func TestComputeValuationInsightFailureDegrades(t *testing.T) {
	o := New(WithInsightSource(fixedInsightSource{err: errors.New("upstream 503")}, time.Second))
	result, err := o.ComputeValuation(context.Background(), growthTechProfile())
	if err != nil {
		t.Fatalf("collaborator failure must not abort the computation: %v", err)
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "degraded") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a degradation warning, got %v", result.Warnings)
	}

	if _, ok := result.Weights[valuation.MethodInsightAdjusted]; ok {
		t.Error("degraded insight method must carry no weight")
	}
	if len(result.Weights) != 3 {
		t.Errorf("expected three weighted methods, got %d", len(result.Weights))
	}
	if math.Abs(result.Weights.Sum()-1.0) > 1e-9 {
		t.Errorf("renormalized weights must sum to 1, got %.12f", result.Weights.Sum())
	}
}

func TestComputeValuationIsIdempotent(t *testing.T) {
	o := New(WithInsightSource(fixedInsightSource{factor: 2.5}, time.Second))

	first, err := o.ComputeValuation(context.Background(), growthTechProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := o.ComputeValuation(context.Background(), growthTechProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must produce identical results")
	}
}

func TestComputeValuationCurrencyRoundTrip(t *testing.T) {
	usd := growthTechProfile()

	eur := growthTechProfile()
	eur.Currency = models.CurrencyEUR

	o := New(WithInsightSource(fixedInsightSource{factor: 2.0}, time.Second))
	usdResult, err := o.ComputeValuation(context.Background(), usd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	eurResult, err := o.ComputeValuation(context.Background(), eur)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if eurResult.Currency != "EUR" {
		t.Errorf("result currency must echo the request, got %s", eurResult.Currency)
	}
	// Every method is linear in revenue, so normalize/de-normalize cancels and
	// the numeric figure matches the USD case in the request currency.
	if math.Abs(eurResult.FinalValue-usdResult.FinalValue) > 1e-6*usdResult.FinalValue {
		t.Errorf("de-normalization must round-trip: EUR %v vs USD %v", eurResult.FinalValue, usdResult.FinalValue)
	}
}

func TestComputeValuationUnsupportedCurrency(t *testing.T) {
	p := growthTechProfile()
	p.Currency = models.Currency("XYZ")

	_, err := New().ComputeValuation(context.Background(), p)
	if !errors.Is(err, currency.ErrUnsupportedCurrency) {
		t.Errorf("expected ErrUnsupportedCurrency, got %v", err)
	}
}

func TestComputeValuationValidationError(t *testing.T) {
	p := growthTechProfile()
	p.Revenue = -5

	_, err := New().ComputeValuation(context.Background(), p)
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if verr.Field != "revenue" {
		t.Errorf("expected the revenue field to be flagged, got %q", verr.Field)
	}
}
