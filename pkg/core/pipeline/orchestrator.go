// Package pipeline sequences a full valuation computation:
// normalize -> assumptions -> per-method valuation -> weighting -> blend ->
// sentiment adjustment -> scenarios/sensitivity -> confidence -> de-normalize.
// Fatal errors abort with no partial result; collaborator degradation is
// recorded as warnings on the successful result.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/camayank/StartupValuator-sub000/pkg/core/benchmark"
	"github.com/camayank/StartupValuator-sub000/pkg/core/cache"
	"github.com/camayank/StartupValuator-sub000/pkg/core/currency"
	"github.com/camayank/StartupValuator-sub000/pkg/core/insight"
	"github.com/camayank/StartupValuator-sub000/pkg/core/sentiment"
	"github.com/camayank/StartupValuator-sub000/pkg/core/valuation"
	"github.com/camayank/StartupValuator-sub000/pkg/models"
)

const (
	sentimentTimeout = 10 * time.Second
	lookupCacheTTL   = 45 * time.Minute
)

// Orchestrator owns the dependency set of a valuation computation. It is safe
// for concurrent use; each ComputeValuation call is independent.
type Orchestrator struct {
	normalizer     *currency.Normalizer
	bench          *benchmark.Engine
	insightAdapter *insight.Adapter
	sentimentProv  sentiment.Provider
	riskProvider   valuation.RiskFactorProvider
	dcfParams      valuation.DCFParams

	sentimentCache *cache.TTLCache
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithOverrideSource wires the external benchmark source.
func WithOverrideSource(src benchmark.OverrideSource) Option {
	return func(o *Orchestrator) { o.bench = benchmark.NewEngine(src) }
}

// WithInsightSource wires the AI-insight collaborator with a bounded timeout.
func WithInsightSource(src insight.Source, timeout time.Duration) Option {
	return func(o *Orchestrator) { o.insightAdapter = insight.NewAdapter(src, timeout) }
}

// WithSentimentProvider wires the market-sentiment collaborator.
func WithSentimentProvider(p sentiment.Provider) Option {
	return func(o *Orchestrator) { o.sentimentProv = p }
}

// WithRiskFactorProvider swaps the qualitative risk scoring model.
func WithRiskFactorProvider(p valuation.RiskFactorProvider) Option {
	return func(o *Orchestrator) { o.riskProvider = p }
}

// WithDCFParams overrides the projection knobs.
func WithDCFParams(p valuation.DCFParams) Option {
	return func(o *Orchestrator) { o.dcfParams = p }
}

// WithRates overrides the currency rate table.
func WithRates(rates map[models.Currency]float64) Option {
	return func(o *Orchestrator) { o.normalizer = currency.NewNormalizerWithRates(rates) }
}

// New returns an Orchestrator with neutral defaults: no external benchmark
// source, a permanently degraded insight method, and neutral sentiment.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		normalizer:     currency.NewNormalizer(),
		bench:          benchmark.NewEngine(nil),
		insightAdapter: insight.NewAdapter(nil, 0),
		sentimentProv:  sentiment.StaticProvider{},
		riskProvider:   valuation.QualitativeRiskProvider{},
		dcfParams:      valuation.DefaultDCFParams(),
		sentimentCache: cache.New(lookupCacheTTL),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ComputeValuation runs the full pipeline for one profile.
func (o *Orchestrator) ComputeValuation(ctx context.Context, profile *models.BusinessProfile) (*valuation.Result, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	revenueUSD, err := o.normalizer.ToBase(profile.Revenue, profile.Currency)
	if err != nil {
		return nil, err
	}

	assumptions, warnings, err := o.bench.Derive(ctx, profile)
	if err != nil {
		return nil, err
	}

	sent, sentWarning := o.lookupSentiment(ctx, profile)
	if sentWarning != "" {
		warnings = append(warnings, sentWarning)
	}

	// The three deterministic methods run concurrently with the network-bound
	// insight call; everything joins before weighting. On cancellation all
	// partial results are discarded.
	var (
		dcfDetail     *valuation.DCFDetail
		compsDetail   *valuation.CompsDetail
		riskDetail    *valuation.RiskDetail
		insightResult valuation.MethodResult
		insightWarn   string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var derr error
		dcfDetail, derr = valuation.CalculateDCF(revenueUSD, assumptions, o.dcfParams)
		if derr != nil {
			return derr
		}
		compsDetail = valuation.CalculateComparables(revenueUSD, profile, assumptions)
		riskDetail = valuation.CalculateRiskAdjusted(revenueUSD, profile, assumptions, sent, o.riskProvider)
		return gctx.Err()
	})
	g.Go(func() error {
		insightResult, insightWarn = o.insightAdapter.Evaluate(gctx, profile, revenueUSD)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if insightWarn != "" {
		warnings = append(warnings, insightWarn)
	}

	methods := []valuation.MethodResult{
		{Method: valuation.MethodDCF, Value: dcfDetail.Value, Detail: dcfDetail},
		{Method: valuation.MethodComparables, Value: compsDetail.Value, Detail: compsDetail},
		{Method: valuation.MethodRiskAdjusted, Value: riskDetail.Value, Detail: riskDetail},
		insightResult,
	}

	degraded := map[valuation.Method]bool{}
	for _, m := range methods {
		if m.Degraded {
			degraded[m.Method] = true
		}
	}

	weights, err := valuation.DeriveWeights(profile.Stage, profile.Sector, degraded)
	if err != nil {
		return nil, err
	}

	blended := valuation.Blend(methods, weights)

	// Market-sentiment adjustment on the blend, bounded so the final value
	// stays inside the envelope of the method outputs.
	blended *= 0.9 + 0.2*sent.OverallScore
	blended = clampToMethodEnvelope(blended, methods)

	scenarios := valuation.BuildScenarios(blended)
	sensitivity := valuation.BuildSensitivity(o.sensitivityRecompute(
		revenueUSD, profile, assumptions, methods, weights, sent))

	confidence := valuation.ConfidenceScore(profile, assumptions)

	result := &valuation.Result{
		Currency:    string(profile.Currency),
		Methods:     methods,
		Weights:     weights,
		Confidence:  confidence,
		Assumptions: assumptions,
		Warnings:    warnings,
	}

	// De-normalize every top-level monetary figure back to the request
	// currency. Method detail payloads deliberately stay in USD.
	if result.FinalValue, err = o.normalizer.FromBase(blended, profile.Currency); err != nil {
		return nil, err
	}
	for i := range result.Methods {
		if result.Methods[i].Value, err = o.normalizer.FromBase(result.Methods[i].Value, profile.Currency); err != nil {
			return nil, err
		}
	}
	if scenarios, err = o.denormalizeScenarios(scenarios, profile.Currency); err != nil {
		return nil, err
	}
	result.Scenarios = scenarios
	if result.Sensitivity, err = o.denormalizeSensitivity(sensitivity, profile.Currency); err != nil {
		return nil, err
	}

	return result, nil
}

// lookupSentiment fetches (and caches) market sentiment, degrading to the
// neutral score on any provider failure.
func (o *Orchestrator) lookupSentiment(ctx context.Context, p *models.BusinessProfile) (*sentiment.Score, string) {
	key := cache.Key(string(p.Sector), string(p.Stage), string(p.Region))
	v, err := o.sentimentCache.GetOrCompute(key, func() (interface{}, error) {
		sctx, cancel := context.WithTimeout(ctx, sentimentTimeout)
		defer cancel()
		return o.sentimentProv.GetMarketSentiment(sctx, p.Sector, p.Stage, p.Region)
	})
	if err != nil {
		return sentiment.Neutral(), fmt.Sprintf("market sentiment unavailable (%v); using neutral sentiment", err)
	}
	score, ok := v.(*sentiment.Score)
	if !ok || score == nil {
		return sentiment.Neutral(), "market sentiment provider returned a malformed score; using neutral sentiment"
	}
	return score, ""
}

// sensitivityRecompute rebuilds the blended value with one assumption
// shifted. The insight method's value and the weight vector are held
// constant; only the deterministic methods react to the shift.
func (o *Orchestrator) sensitivityRecompute(
	revenueUSD float64,
	profile *models.BusinessProfile,
	base *benchmark.FinancialAssumptions,
	methods []valuation.MethodResult,
	weights valuation.WeightVector,
	sent *sentiment.Score,
) valuation.RecomputeFunc {
	insightValue := 0.0
	for _, m := range methods {
		if m.Method == valuation.MethodInsightAdjusted {
			insightValue = m.Value
		}
	}

	return func(factor string, delta float64) (float64, error) {
		adjusted := *base
		switch factor {
		case valuation.FactorGrowth:
			adjusted.GrowthRate = base.GrowthRate * (1 + delta)
			// Keep the terminal-growth derivation consistent with the shift.
			if half := adjusted.GrowthRate / 2; half < adjusted.TerminalGrowthRate {
				adjusted.TerminalGrowthRate = half
			}
		case valuation.FactorMargin:
			adjusted.OperatingMargin = base.OperatingMargin * (1 + delta)
		case valuation.FactorDiscount:
			adjusted.DiscountRate = base.DiscountRate + delta
		default:
			return 0, fmt.Errorf("unknown sensitivity factor %q", factor)
		}

		dcf, err := valuation.CalculateDCF(revenueUSD, &adjusted, o.dcfParams)
		if err != nil {
			return 0, err
		}
		comps := valuation.CalculateComparables(revenueUSD, profile, &adjusted)
		risk := valuation.CalculateRiskAdjusted(revenueUSD, profile, &adjusted, sent, o.riskProvider)

		blended := dcf.Value*weights[valuation.MethodDCF] +
			comps.Value*weights[valuation.MethodComparables] +
			risk.Value*weights[valuation.MethodRiskAdjusted] +
			insightValue*weights[valuation.MethodInsightAdjusted]
		return blended * (0.9 + 0.2*sent.OverallScore), nil
	}
}

func (o *Orchestrator) denormalizeScenarios(s valuation.ScenarioSet, c models.Currency) (valuation.ScenarioSet, error) {
	var err error
	if s.Worst.Value, err = o.normalizer.FromBase(s.Worst.Value, c); err != nil {
		return s, err
	}
	if s.Base.Value, err = o.normalizer.FromBase(s.Base.Value, c); err != nil {
		return s, err
	}
	if s.Best.Value, err = o.normalizer.FromBase(s.Best.Value, c); err != nil {
		return s, err
	}
	if s.ExpectedValue, err = o.normalizer.FromBase(s.ExpectedValue, c); err != nil {
		return s, err
	}
	return s, nil
}

func (o *Orchestrator) denormalizeSensitivity(table []valuation.FactorSensitivity, c models.Currency) ([]valuation.FactorSensitivity, error) {
	for i := range table {
		for j := range table[i].Points {
			v, err := o.normalizer.FromBase(table[i].Points[j].Value, c)
			if err != nil {
				return nil, err
			}
			table[i].Points[j].Value = v
		}
	}
	return table, nil
}

// clampToMethodEnvelope keeps the adjusted blend inside [min, max] of the
// individual method outputs.
func clampToMethodEnvelope(blended float64, methods []valuation.MethodResult) float64 {
	if len(methods) == 0 {
		return blended
	}
	lo, hi := methods[0].Value, methods[0].Value
	for _, m := range methods[1:] {
		if m.Value < lo {
			lo = m.Value
		}
		if m.Value > hi {
			hi = m.Value
		}
	}
	if blended < lo {
		return lo
	}
	if blended > hi {
		return hi
	}
	return blended
}
