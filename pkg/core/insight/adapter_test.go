package insight

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/camayank/StartupValuator-sub000/pkg/core/valuation"
	"github.com/camayank/StartupValuator-sub000/pkg/models"
)

type stubSource struct {
	insight *Insight
	err     error
	delay   time.Duration
}

func (s *stubSource) GetExternalValuationInsight(ctx context.Context, _ *models.BusinessProfile) (*Insight, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.insight, s.err
}

func profile() *models.BusinessProfile {
	return &models.BusinessProfile{
		Sector:   models.SectorTechnology,
		Stage:    models.StageGrowth,
		Region:   models.RegionNorthAmerica,
		Currency: models.CurrencyUSD,
		Revenue:  1_000_000,
	}
}

func TestEvaluateHealthySource(t *testing.T) {
	src := &stubSource{insight: &Insight{
		AdjustmentFactor: 2.5,
		Factors:          map[string]float64{"team": 0.4, "market": 0.6},
	}}
	a := NewAdapter(src, time.Second)

	result, warning := a.Evaluate(context.Background(), profile(), 1_000_000)
	if warning != "" {
		t.Errorf("healthy source must not warn, got %q", warning)
	}
	if result.Degraded {
		t.Error("healthy source must not be degraded")
	}
	if result.Method != valuation.MethodInsightAdjusted {
		t.Errorf("wrong method tag: %s", result.Method)
	}
	if result.Value != 2_500_000 {
		t.Errorf("value must be factor x revenue, got %v", result.Value)
	}
}

func TestEvaluateNilSourceDegrades(t *testing.T) {
	a := NewAdapter(nil, 0)
	result, warning := a.Evaluate(context.Background(), profile(), 1_000_000)

	if !result.Degraded {
		t.Fatal("nil source must yield a degraded result")
	}
	if result.Value != 1_000_000 {
		t.Errorf("degraded result must be neutral (factor 1), got %v", result.Value)
	}
	if !strings.Contains(warning, "degraded") {
		t.Errorf("expected degradation warning, got %q", warning)
	}
}

func TestEvaluateFailingSourceDegrades(t *testing.T) {
	a := NewAdapter(&stubSource{err: errors.New("rate limited")}, time.Second)
	result, warning := a.Evaluate(context.Background(), profile(), 1_000_000)

	if !result.Degraded || result.Value != 1_000_000 {
		t.Fatalf("failure must degrade to neutral, got %+v", result)
	}
	if !strings.Contains(warning, "rate limited") {
		t.Errorf("warning should carry the cause, got %q", warning)
	}
}

func TestEvaluateMalformedFactorDegrades(t *testing.T) {
	for _, factor := range []float64{0, -2.5} {
		a := NewAdapter(&stubSource{insight: &Insight{AdjustmentFactor: factor}}, time.Second)
		result, warning := a.Evaluate(context.Background(), profile(), 1_000_000)
		if !result.Degraded {
			t.Errorf("factor %v must degrade the method", factor)
		}
		if warning == "" {
			t.Errorf("factor %v must produce a warning", factor)
		}
	}
}

func TestEvaluateTimesOut(t *testing.T) {
	src := &stubSource{
		insight: &Insight{AdjustmentFactor: 2},
		delay:   200 * time.Millisecond,
	}
	a := NewAdapter(src, 10*time.Millisecond)

	start := time.Now()
	result, warning := a.Evaluate(context.Background(), profile(), 1_000_000)
	if elapsed := time.Since(start); elapsed > 150*time.Millisecond {
		t.Errorf("timeout must bound the call, took %v", elapsed)
	}
	if !result.Degraded || warning == "" {
		t.Error("timed-out call must degrade with a warning")
	}
}
