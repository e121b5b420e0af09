package valuation

import (
	"errors"
	"math"
	"testing"

	"github.com/camayank/StartupValuator-sub000/pkg/core/benchmark"
)

func growthAssumptions() *benchmark.FinancialAssumptions {
	return &benchmark.FinancialAssumptions{
		DiscountRate:       0.15575,
		GrowthRate:         0.40,
		TerminalGrowthRate: 0.035,
		OperatingMargin:    0.25,
		RevenueMultiple:    3.5,
		EBITDAMultiple:     10,
		EBITMultiple:       12,
		TaxRate:            0.21,
	}
}

func TestCalculateDCFGrowthCase(t *testing.T) {
	detail, err := CalculateDCF(1_000_000, growthAssumptions(), DefaultDCFParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(detail.Years) != 5 {
		t.Fatalf("expected 5 projected years, got %d", len(detail.Years))
	}
	for i, y := range detail.Years {
		if y.Year != i+1 {
			t.Errorf("year %d mislabeled as %d", i+1, y.Year)
		}
		if i > 0 && y.Revenue <= detail.Years[i-1].Revenue {
			t.Errorf("revenue must compound at 40%% growth, year %d: %v <= %v", y.Year, y.Revenue, detail.Years[i-1].Revenue)
		}
		if y.FreeCashFlow <= 0 {
			t.Errorf("profitable projection should have positive FCF in year %d, got %v", y.Year, y.FreeCashFlow)
		}
	}

	// Year 1: revenue 1.4M, operating profit 350k, FCF 350k*0.79 - 1.4M*0.07.
	wantFCF1 := 350_000*0.79 - 1_400_000*0.07
	if math.Abs(detail.Years[0].FreeCashFlow-wantFCF1) > 1 {
		t.Errorf("year-1 FCF: got %v, want %v", detail.Years[0].FreeCashFlow, wantFCF1)
	}

	if detail.TerminalValue <= 0 || detail.PVTerminal >= detail.TerminalValue {
		t.Errorf("terminal value must be positive and discounted: TV=%v PV=%v", detail.TerminalValue, detail.PVTerminal)
	}
	sum := detail.PVExplicit + detail.PVTerminal
	if math.Abs(detail.Value-sum) > 1e-6 {
		t.Errorf("value %v must equal PV explicit + PV terminal %v", detail.Value, sum)
	}
}

func TestCalculateDCFTerminalValueDivergence(t *testing.T) {
	a := growthAssumptions()
	a.DiscountRate = 0.10
	a.TerminalGrowthRate = 0.12

	_, err := CalculateDCF(1_000_000, a, DefaultDCFParams())
	if !errors.Is(err, ErrTerminalValueDivergence) {
		t.Fatalf("expected ErrTerminalValueDivergence, got %v", err)
	}
}

func TestCalculateDCFZeroRevenue(t *testing.T) {
	detail, err := CalculateDCF(0, growthAssumptions(), DefaultDCFParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, y := range detail.Years {
		if y.Revenue != 0 || math.IsNaN(y.Revenue) {
			t.Errorf("year %d revenue must stay at a finite 0, got %v", y.Year, y.Revenue)
		}
	}
	if detail.Value != 0 {
		t.Errorf("zero-revenue DCF must be 0, got %v", detail.Value)
	}
}

func TestCalculateDCFCashBurnerFloorsAtZero(t *testing.T) {
	a := growthAssumptions()
	a.OperatingMargin = -0.30

	detail, err := CalculateDCF(1_000_000, a, DefaultDCFParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Value != 0 {
		t.Errorf("persistently negative cash flows must floor the value at 0, got %v", detail.Value)
	}
	if detail.Years[0].FreeCashFlow >= 0 {
		t.Errorf("the per-year audit trail must still show the burn, got FCF %v", detail.Years[0].FreeCashFlow)
	}
}
