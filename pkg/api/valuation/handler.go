package valuation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/camayank/StartupValuator-sub000/pkg/core/benchmark"
	"github.com/camayank/StartupValuator-sub000/pkg/core/currency"
	"github.com/camayank/StartupValuator-sub000/pkg/core/pipeline"
	"github.com/camayank/StartupValuator-sub000/pkg/core/store"
	coreval "github.com/camayank/StartupValuator-sub000/pkg/core/valuation"
	"github.com/camayank/StartupValuator-sub000/pkg/models"
)

var orchestrator *pipeline.Orchestrator
var repo store.ValuationRepository

// InitHandler wires the compute pipeline and an optional persistence layer.
// A nil repository disables history; computations still succeed.
func InitHandler(o *pipeline.Orchestrator, r store.ValuationRepository) {
	orchestrator = o
	repo = r
}

type ComputeResponse struct {
	ID     string          `json:"id,omitempty"`
	Result *coreval.Result `json:"result"`
}

func HandleComputeValuation(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var profile models.BusinessProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	fmt.Printf("[VALUATION] Request: sector=%s stage=%s region=%s currency=%s revenue=%.0f\n",
		profile.Sector, profile.Stage, profile.Region, profile.Currency, profile.Revenue)

	result, err := orchestrator.ComputeValuation(r.Context(), &profile)
	if err != nil {
		writeComputeError(w, err)
		return
	}
	fmt.Printf("[VALUATION] Final value %.0f %s (confidence %d, %d warnings)\n",
		result.FinalValue, result.Currency, result.Confidence, len(result.Warnings))

	resp := ComputeResponse{Result: result}
	if repo != nil {
		rec := store.NewRecord(&profile, result)
		if err := repo.Save(r.Context(), rec); err != nil {
			fmt.Printf("[WARNING] Failed to persist valuation: %v\n", err)
		} else {
			resp.ID = rec.ID.String()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleGetValuation serves a previously persisted valuation by ID.
func HandleGetValuation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if repo == nil {
		http.Error(w, "valuation history is not configured", http.StatusNotFound)
		return
	}

	id, err := store.ParseRecordID(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "invalid or missing id", http.StatusBadRequest)
		return
	}
	rec, err := repo.Load(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}

// writeComputeError maps pipeline failures onto HTTP status codes: malformed
// input is the caller's fault, assumption/currency failures are unprocessable,
// anything else is ours.
func writeComputeError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, currency.ErrUnsupportedCurrency),
		errors.Is(err, benchmark.ErrInvalidAssumptions):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		fmt.Printf("[ERROR] Valuation failed: %v\n", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
