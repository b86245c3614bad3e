package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"decisionscan/pkg/api/artifacts"
	"decisionscan/pkg/api/scan"
	"decisionscan/pkg/core/artifact"
	"decisionscan/pkg/core/capture"
	"decisionscan/pkg/core/decision"
	"decisionscan/pkg/core/features"
	"decisionscan/pkg/core/llm"
	"decisionscan/pkg/core/memory"
	"decisionscan/pkg/core/pipeline"
	"decisionscan/pkg/core/prompt"
	"decisionscan/pkg/core/report"
	"decisionscan/pkg/core/store"
	"decisionscan/pkg/models"
)

// serviceConfig mirrors config/models.yaml.
type serviceConfig struct {
	LLM struct {
		Provider       string `yaml:"provider"`
		Model          string `yaml:"model"`
		ReportTimeoutS int    `yaml:"report_timeout_s"`
	} `yaml:"llm"`
}

// visionFeaturizer adapts the vision feature path to the pipeline seam.
type visionFeaturizer struct {
	provider llm.VisionProvider
}

func (v visionFeaturizer) FromImage(ctx context.Context, image []byte) (*models.PageFeatures, error) {
	return features.FromImage(ctx, v.provider, image)
}

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize Prompt Library
	// Determine resources path (relative to executable or working directory)
	resourcesPath := "resources"
	if _, err := os.Stat(resourcesPath); os.IsNotExist(err) {
		// Try from executable directory
		exePath, _ := os.Executable()
		resourcesPath = filepath.Join(filepath.Dir(exePath), "resources")
	}
	if err := prompt.LoadFromDirectory(resourcesPath); err != nil {
		fmt.Printf("[WARNING] Failed to load prompt library: %v\n", err)
		fmt.Println("  Falling back to hardcoded prompts")
	} else {
		fmt.Printf("[PROMPT] Loaded %d prompts from %s\n", prompt.Get().Count(), resourcesPath)
	}

	// Model configuration
	var cfg serviceConfig
	if data, err := os.ReadFile("config/models.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			fmt.Printf("[WARNING] config/models.yaml unreadable: %v\n", err)
		}
	}

	// LLM provider. Without an API key the service still runs: the report
	// falls back to deterministic prose and image mode is disabled.
	var provider *llm.GeminiProvider
	if os.Getenv("GEMINI_API_KEY") != "" {
		provider = &llm.GeminiProvider{Model: cfg.LLM.Model}
		fmt.Printf("[LLM] Gemini provider active (model=%s)\n", cfg.LLM.Model)
	} else {
		fmt.Println("[LLM] GEMINI_API_KEY not set; running with deterministic fallbacks only")
	}

	// Artifact store
	artifactStore, err := artifact.New(os.Getenv("ARTIFACT_DIR"), os.Getenv("PUBLIC_BASE_URL"))
	if err != nil {
		fmt.Printf("[FATAL] Artifact store: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("[STORE] Artifacts at %s\n", artifactStore.Dir())

	// Capture stack: warm browser engine, renderer, TTL cache
	engine := capture.NewEngine()
	renderer := capture.NewBrowserRenderer(capture.DefaultRenderConfig(), engine, artifactStore)
	captureService := capture.NewService(capture.ServiceConfig{
		CacheTTL: time.Duration(envInt("CAPTURE_CACHE_TTL_S", 1800)) * time.Second,
	}, renderer)

	// Memory layer: Postgres when DATABASE_URL is set, in-process ring
	// otherwise
	ringSize := envInt("MEMORY_RING_SIZE", memory.DefaultRingSize)
	var memStore memory.Store = memory.NewRing(ringSize)
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(context.Background()); err != nil {
			fmt.Printf("[WARNING] Database unavailable, using in-process memory: %v\n", err)
		} else {
			memStore = memory.NewPGStore(ringSize)
		}
	}
	advisor := memory.NewAdvisor(memStore)

	// Pipeline
	var imaging pipeline.ImageFeaturizer
	if provider != nil {
		imaging = visionFeaturizer{provider: provider}
	}
	var reportProvider llm.Provider
	if provider != nil {
		reportProvider = provider
	}
	orchestrator := pipeline.NewOrchestrator(
		pipeline.Config{RequestBudget: time.Duration(envInt("REQUEST_BUDGET_MS", 120000)) * time.Millisecond},
		captureService,
		imaging,
		advisor,
		decision.NewEngine(advisor),
		report.NewComposer(reportProvider, time.Duration(cfg.LLM.ReportTimeoutS)*time.Second),
	)

	// Scan endpoints
	scan.InitHandler(orchestrator)
	http.HandleFunc("/api/decision-scan", scan.HandleDecisionScan)

	// Legacy route aliases kept for existing clients
	http.HandleFunc("/api/brain/decision-engine-url", scan.HandleDecisionScan)
	http.HandleFunc("/api/brain/decision-engine-image", scan.HandleDecisionScan)
	http.HandleFunc("/api/proxy/decision-scan", scan.HandleDecisionScan)

	// Artifact endpoints
	artifacts.InitHandler(artifactStore)
	http.HandleFunc("/api/artifacts/", artifacts.HandleArtifact)

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","pipeline_version":%q}`, pipeline.PipelineVersion)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("API server starting on :%s...\n", port)
	fmt.Println("  - POST /api/decision-scan")
	fmt.Println("  - GET  /api/artifacts/{filename}")
	fmt.Println("  - GET  /api/artifacts/_health")
	fmt.Println("  - GET  /health")

	srv := &http.Server{Addr: ":" + port}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("[FATAL] Server failed to start: %v\n", err)
			os.Exit(1)
		}
	}()

	// Block until shutdown, then release the browser and database pool.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	fmt.Println("[SHUTDOWN] Stopping...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	engine.Shutdown()
	store.Close()
}

func envInt(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
