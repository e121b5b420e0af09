// Package valuation implements the per-method valuators, the weighting policy
// that blends them, and the scenario/sensitivity/confidence analysis on top of
// the blended value. Everything here is a pure function over immutable inputs;
// all monetary values are in USD until the orchestrator de-normalizes them.
package valuation

import (
	"fmt"
	"math"

	"github.com/camayank/StartupValuator-sub000/pkg/core/benchmark"
)

// Method identifies one valuation methodology.
type Method string

const (
	MethodDCF             Method = "dcf"
	MethodComparables     Method = "comparables"
	MethodRiskAdjusted    Method = "risk_adjusted"
	MethodInsightAdjusted Method = "insight_adjusted"
)

// AllMethods lists the methods in canonical order.
func AllMethods() []Method {
	return []Method{MethodDCF, MethodComparables, MethodRiskAdjusted, MethodInsightAdjusted}
}

// MethodResult is one method's output: a monetary value plus the
// method-specific detail payload for auditability.
type MethodResult struct {
	Method   Method      `json:"method"`
	Value    float64     `json:"value"`
	Degraded bool        `json:"degraded,omitempty"`
	Detail   interface{} `json:"detail,omitempty"`
}

// weightEpsilon is the tolerance on the sum-to-one invariant.
const weightEpsilon = 1e-9

// WeightVector assigns one non-negative weight per active method.
// Invariant: weights sum to 1 within weightEpsilon.
type WeightVector map[Method]float64

// Sum returns the total weight.
func (w WeightVector) Sum() float64 {
	total := 0.0
	for _, v := range w {
		total += v
	}
	return total
}

// Validate checks non-negativity and the sum-to-one invariant.
func (w WeightVector) Validate() error {
	for m, v := range w {
		if v < 0 {
			return fmt.Errorf("negative weight %.6f for method %s", v, m)
		}
	}
	if math.Abs(w.Sum()-1.0) > weightEpsilon {
		return fmt.Errorf("weights sum to %.12f, must sum to 1", w.Sum())
	}
	return nil
}

// normalize rescales the vector in place so it sums to 1.
func (w WeightVector) normalize() {
	total := w.Sum()
	if total <= 0 {
		return
	}
	for m := range w {
		w[m] /= total
	}
}

// AssumptionDeltas records the multipliers applied to the base assumptions to
// produce a scenario.
type AssumptionDeltas struct {
	GrowthMultiplier   float64 `json:"growth_multiplier"`
	MarginMultiplier   float64 `json:"margin_multiplier"`
	DiscountMultiplier float64 `json:"discount_multiplier"`
}

// ScenarioOutcome is one point of the three-point scenario approximation.
type ScenarioOutcome struct {
	Name        string           `json:"name"`
	Value       float64          `json:"value"`
	Probability float64          `json:"probability"`
	Deltas      AssumptionDeltas `json:"deltas"`
}

// ScenarioSet holds the worst/base/best outcomes. Invariants: probabilities
// sum to 1 and Worst.Value <= Base.Value <= Best.Value.
type ScenarioSet struct {
	Worst         ScenarioOutcome `json:"worst"`
	Base          ScenarioOutcome `json:"base"`
	Best          ScenarioOutcome `json:"best"`
	ExpectedValue float64         `json:"expected_value"`
}

// SensitivityPoint maps one input delta to the resulting blended value.
type SensitivityPoint struct {
	Delta float64 `json:"delta"`
	Value float64 `json:"value"`
}

// FactorSensitivity is the single-factor sweep for one assumption.
type FactorSensitivity struct {
	Factor string             `json:"factor"`
	Points []SensitivityPoint `json:"points"`
}

// Result is the complete outcome of one valuation computation. Top-level
// monetary fields are in the request currency; Detail payloads inside
// MethodResult stay in USD. Result is deliberately free of identifiers and
// timestamps: identical inputs yield bit-identical results, and persistence
// metadata lives on the store record instead.
type Result struct {
	FinalValue float64 `json:"final_value"`
	Currency   string  `json:"currency"`

	Methods     []MethodResult      `json:"methods"`
	Weights     WeightVector        `json:"weights"`
	Scenarios   ScenarioSet         `json:"scenarios"`
	Sensitivity []FactorSensitivity `json:"sensitivity"`
	Confidence  int                 `json:"confidence"`

	Assumptions *benchmark.FinancialAssumptions `json:"assumptions"`
	Warnings    []string                        `json:"warnings,omitempty"`
}
