package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	configapi "github.com/camayank/StartupValuator-sub000/pkg/api/config"
	valuationapi "github.com/camayank/StartupValuator-sub000/pkg/api/valuation"
	"github.com/camayank/StartupValuator-sub000/pkg/core/benchmark"
	"github.com/camayank/StartupValuator-sub000/pkg/core/insight"
	"github.com/camayank/StartupValuator-sub000/pkg/core/llm"
	"github.com/camayank/StartupValuator-sub000/pkg/core/pipeline"
	"github.com/camayank/StartupValuator-sub000/pkg/core/sentiment"
	"github.com/camayank/StartupValuator-sub000/pkg/core/store"
)

const insightTimeout = 15 * time.Second

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize LLM manager from config
	configData, _ := os.ReadFile("config/models.yaml")
	var llmCfg llm.Config
	yaml.Unmarshal(configData, &llmCfg)
	llmMgr := llm.NewManager(llmCfg)

	opts := []pipeline.Option{
		pipeline.WithInsightSource(
			insight.NewLLMSource(llmMgr.GetProvider("insight"), llmMgr.ModelFor("insight")),
			insightTimeout),
		pipeline.WithSentimentProvider(
			sentiment.NewLLMProvider(llmMgr.GetProvider("sentiment"), llmMgr.ModelFor("sentiment"))),
	}

	// Optional benchmark overrides (curated or scraped via the import tool)
	if src, err := benchmark.LoadOverrideFile("config/benchmarks.yaml"); err != nil {
		fmt.Printf("[WARNING] Failed to load benchmark overrides: %v\n", err)
	} else if src != nil {
		fmt.Println("[BENCHMARK] Loaded overrides from config/benchmarks.yaml")
		opts = append(opts, pipeline.WithOverrideSource(src))
	}

	orchestrator := pipeline.New(opts...)

	// Optional persistence layer
	var repo store.ValuationRepository
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(context.Background()); err != nil {
			fmt.Printf("[WARNING] Database unavailable, history disabled: %v\n", err)
		} else {
			defer store.Close()
			repo = store.NewPostgresRepo(store.GetPool())
			fmt.Println("[STORE] Valuation history enabled")
		}
	}

	// Config endpoints
	configHandler := configapi.NewHandler(llmMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	// Valuation endpoints
	valuationapi.InitHandler(orchestrator, repo)
	http.HandleFunc("/api/valuation/compute", valuationapi.HandleComputeValuation)
	http.HandleFunc("/api/valuation/get", valuationapi.HandleGetValuation)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")
	fmt.Println("  - POST /api/valuation/compute")
	fmt.Println("  - GET  /api/valuation/get?id=<uuid>")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
