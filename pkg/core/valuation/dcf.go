package valuation

import (
	"errors"
	"fmt"
	"math"

	"github.com/camayank/StartupValuator-sub000/pkg/core/benchmark"
)

// ErrTerminalValueDivergence is returned when discount rate <= terminal
// growth: the Gordon Growth capitalization has no finite value there.
var ErrTerminalValueDivergence = errors.New("terminal value divergence")

// DCFParams are the structural knobs of the cash-flow projection.
// Capex and working-capital delta are modeled as fixed fractions of revenue.
type DCFParams struct {
	HorizonYears         int
	CapexPctRevenue      float64
	WorkingCapPctRevenue float64
}

// DefaultDCFParams returns the standard 5-year configuration.
func DefaultDCFParams() DCFParams {
	return DCFParams{
		HorizonYears:         5,
		CapexPctRevenue:      0.05,
		WorkingCapPctRevenue: 0.02,
	}
}

// DCFYear is one projected year, kept in full for auditability.
type DCFYear struct {
	Year            int     `json:"year"`
	Revenue         float64 `json:"revenue"`
	OperatingProfit float64 `json:"operating_profit"`
	FreeCashFlow    float64 `json:"free_cash_flow"`
	DiscountFactor  float64 `json:"discount_factor"`
	PresentValue    float64 `json:"present_value"`
}

// DCFDetail is the method-specific breakdown of a DCF valuation.
type DCFDetail struct {
	Years         []DCFYear `json:"years"`
	PVExplicit    float64   `json:"pv_explicit"`
	TerminalValue float64   `json:"terminal_value"`
	PVTerminal    float64   `json:"pv_terminal"`
	Value         float64   `json:"value"`
}

// CalculateDCF projects free cash flow over the explicit horizon and adds a
// Gordon Growth terminal value. Revenue compounds at the assumption growth
// rate; FCF = revenue*margin*(1-tax) - (capex + working capital delta).
func CalculateDCF(revenueUSD float64, a *benchmark.FinancialAssumptions, params DCFParams) (*DCFDetail, error) {
	if a.DiscountRate <= a.TerminalGrowthRate {
		return nil, fmt.Errorf("%w: discount rate %.4f <= terminal growth %.4f",
			ErrTerminalValueDivergence, a.DiscountRate, a.TerminalGrowthRate)
	}
	horizon := params.HorizonYears
	if horizon <= 0 {
		horizon = 5
	}

	detail := &DCFDetail{Years: make([]DCFYear, 0, horizon)}
	revenue := revenueUSD
	var finalFCF float64

	for year := 1; year <= horizon; year++ {
		revenue *= 1 + a.GrowthRate
		if revenue < 0 {
			// Growth of -100% floors revenue at zero; below that is impossible.
			revenue = 0
		}
		operatingProfit := revenue * a.OperatingMargin
		fcf := operatingProfit*(1-a.TaxRate) - revenue*(params.CapexPctRevenue+params.WorkingCapPctRevenue)
		discountFactor := math.Pow(1+a.DiscountRate, float64(year))
		pv := fcf / discountFactor

		detail.Years = append(detail.Years, DCFYear{
			Year:            year,
			Revenue:         revenue,
			OperatingProfit: operatingProfit,
			FreeCashFlow:    fcf,
			DiscountFactor:  discountFactor,
			PresentValue:    pv,
		})
		detail.PVExplicit += pv
		finalFCF = fcf
	}

	// Terminal value: final FCF grown one more period, capitalized and
	// discounted back over the explicit horizon.
	terminalFCF := finalFCF * (1 + a.TerminalGrowthRate)
	detail.TerminalValue = terminalFCF / (a.DiscountRate - a.TerminalGrowthRate)
	detail.PVTerminal = detail.TerminalValue / math.Pow(1+a.DiscountRate, float64(horizon))

	detail.Value = detail.PVExplicit + detail.PVTerminal
	if detail.Value < 0 {
		// A persistently cash-burning projection values the explicit plan at
		// zero rather than a negative enterprise value.
		detail.Value = 0
	}
	return detail, nil
}
