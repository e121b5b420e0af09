// Package insight wraps the externally computed valuation adjustment as an
// optional fourth method. The collaborator may fail, time out, or return
// malformed data; the adapter degrades to a neutral result instead of
// propagating an error.
package insight

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/camayank/StartupValuator-sub000/pkg/core/valuation"
	"github.com/camayank/StartupValuator-sub000/pkg/models"
)

// Insight is the collaborator payload: a positive multiplicative adjustment
// on revenue plus the per-factor weights behind it.
type Insight struct {
	AdjustmentFactor float64            `json:"adjustment_factor"`
	Factors          map[string]float64 `json:"factors,omitempty"`
	Commentary       []string           `json:"commentary,omitempty"`
}

// Source is the AI-insight collaborator contract.
type Source interface {
	GetExternalValuationInsight(ctx context.Context, p *models.BusinessProfile) (*Insight, error)
}

// defaultTimeout bounds the collaborator call so it cannot stall the engine.
const defaultTimeout = 15 * time.Second

// Adapter evaluates the insight-adjusted method with a bounded timeout.
type Adapter struct {
	source  Source
	timeout time.Duration
}

// NewAdapter wraps a Source. A nil source yields a permanently degraded
// (neutral) method. timeout <= 0 selects the default.
func NewAdapter(source Source, timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Adapter{source: source, timeout: timeout}
}

// Evaluate computes adjustmentFactor x revenue. On any failure it returns the
// neutral result (factor 1), flags the method degraded, and reports a warning
// string for the caller to record; the warning is empty on success.
func (a *Adapter) Evaluate(ctx context.Context, p *models.BusinessProfile, revenueUSD float64) (valuation.MethodResult, string) {
	neutral := valuation.MethodResult{
		Method:   valuation.MethodInsightAdjusted,
		Value:    revenueUSD,
		Degraded: true,
		Detail:   &Insight{AdjustmentFactor: 1},
	}

	if a.source == nil {
		return neutral, "insight collaborator not configured; insight-adjusted method degraded to neutral"
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	ins, err := a.source.GetExternalValuationInsight(ctx, p)
	if err != nil {
		return neutral, fmt.Sprintf("insight collaborator failed (%v); insight-adjusted method degraded to neutral", err)
	}
	if ins == nil || ins.AdjustmentFactor <= 0 || math.IsNaN(ins.AdjustmentFactor) || math.IsInf(ins.AdjustmentFactor, 0) {
		return neutral, "insight collaborator returned a malformed adjustment factor; insight-adjusted method degraded to neutral"
	}

	return valuation.MethodResult{
		Method: valuation.MethodInsightAdjusted,
		Value:  ins.AdjustmentFactor * revenueUSD,
		Detail: ins,
	}, ""
}
