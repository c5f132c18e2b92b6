package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"bithumb-ai-trader/internal/advisor"
	"bithumb-ai-trader/internal/advisor/advisorobs"
	"bithumb-ai-trader/internal/chart"
	"bithumb-ai-trader/internal/config"
	"bithumb-ai-trader/internal/engine"
	"bithumb-ai-trader/internal/engine/engineobs"
	"bithumb-ai-trader/internal/exchange/binance"
	"bithumb-ai-trader/internal/exchange/bithumb"
	"bithumb-ai-trader/internal/exchange/exchangeobs"
	"bithumb-ai-trader/internal/feargreed"
	"bithumb-ai-trader/internal/interfaces"
	"bithumb-ai-trader/internal/logger"
	"bithumb-ai-trader/internal/news"
	"bithumb-ai-trader/internal/summary"
	"bithumb-ai-trader/internal/summary/summaryobs"
	"bithumb-ai-trader/internal/trace"
	"bithumb-ai-trader/internal/tradelog"
	"bithumb-ai-trader/internal/transcript"
)

// geminiEndpoint is Gemini's OpenAI-compatible chat-completions surface.
const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/openai/"

// initializeSystem initializes environment, logger and tracer
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	// Initialize logger
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize tracer
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	// Initialize daily summarizer with observability
	initializeSummary()

	return nil
}

// initializeSummary wraps the default daily summarizer with observability
func initializeSummary() {
	summary.SetDefaultSummarizer(summaryobs.Wrap(summary.NewSummarizer()))
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// compressOldLogs compresses old tradelog files if retention is configured
func compressOldLogs(ctx context.Context) {
	if v := os.Getenv("TRADER_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		if err := tradelog.CompressOlder(n); err != nil {
			logger.Warn(ctx, "Failed to compress old logs", "error", err)
		}
	}
}

// initializeExchange initializes the configured exchange with observability
func initializeExchange(ctx context.Context, cfg *config.Config) interfaces.Exchange {
	var ex interfaces.Exchange
	switch cfg.Exchange {
	case "BINANCE":
		ex = binance.New(binance.Params{
			Mode:      cfg.Mode,
			APIKey:    os.Getenv("BINANCE_API_KEY"),
			SecretKey: os.Getenv("BINANCE_SECRET_KEY"),
			Base:      cfg.BaseCurrency,
			Quote:     cfg.QuoteCurrency,
		})
	default:
		ex = bithumb.New(bithumb.Params{
			Mode:      cfg.Mode,
			AccessKey: os.Getenv("BITHUMB_ACCESS_KEY"),
			SecretKey: os.Getenv("BITHUMB_SECRET_KEY"),
			Pair:      cfg.Pair,
			Base:      cfg.BaseCurrency,
			Quote:     cfg.QuoteCurrency,
		})
	}

	if cfg.Mode == "DRY_RUN" {
		logger.Warn(ctx, "Running in DRY_RUN mode - orders will be simulated")
	}

	// Wrap with observability middleware
	return exchangeobs.Wrap(ex)
}

// initializeAdvisor initializes the LLM advisor with observability
func initializeAdvisor(ctx context.Context, cfg *config.Config) (interfaces.Advisor, error) {
	var (
		adv interfaces.Advisor
		err error
	)

	switch cfg.LLM.Provider {
	case "OPENAI":
		adv, err = advisor.NewChatAdvisor(advisor.Params{
			APIKey:      os.Getenv("OPENAI_API_KEY"),
			Model:       cfg.LLM.Model,
			Endpoint:    cfg.LLM.Endpoint,
			MaxTokens:   cfg.LLM.MaxTokens,
			Temperature: cfg.LLM.Temperature,
			System:      cfg.LLM.System,
		})
	case "GEMINI":
		endpoint := cfg.LLM.Endpoint
		if endpoint == "" {
			endpoint = geminiEndpoint
		}
		adv, err = advisor.NewChatAdvisor(advisor.Params{
			APIKey:      os.Getenv("GEMINI_API_KEY"),
			Model:       cfg.LLM.Model,
			Endpoint:    endpoint,
			MaxTokens:   cfg.LLM.MaxTokens,
			Temperature: cfg.LLM.Temperature,
			System:      cfg.LLM.System,
		})
	default:
		adv = advisor.NewNoopAdvisor()
		logger.Warn(ctx, "No LLM provider configured - using Noop advisor (always hold)")
	}
	if err != nil {
		return nil, err
	}

	// Wrap with observability middleware
	return advisorobs.Wrap(adv), nil
}

// initializeProviders wires the optional context sources per config
func initializeProviders(ctx context.Context, cfg *config.Config) engine.Providers {
	var prov engine.Providers

	if cfg.Context.FearGreed.Enabled {
		prov.FearGreed = feargreed.New(cfg.Context.FearGreed.URL)
	}
	if cfg.Context.News.Enabled {
		prov.News = news.NewScraper(cfg.BaseCurrency, 15*time.Second)
	}
	if cfg.Context.Chart.Enabled {
		if cfg.Context.Chart.URL == "" {
			logger.Warn(ctx, "Chart context enabled but no capture URL configured - disabling")
		} else {
			prov.Chart = chart.New(cfg.Context.Chart.URL)
		}
	}
	if cfg.Context.Transcript.Enabled {
		if cfg.Context.Transcript.URL == "" {
			logger.Warn(ctx, "Transcript context enabled but no source URL configured - disabling")
		} else {
			prov.Transcript = transcript.New(cfg.Context.Transcript.URL, cfg.Context.Transcript.MaxChars)
		}
	}

	return prov
}

// initializeEngine initializes the decision engine with observability
func initializeEngine(cfg *config.Config, ex interfaces.Exchange, adv interfaces.Advisor, prov engine.Providers) interfaces.Engine {
	eng := engine.New(cfg, ex, adv, prov)

	// Wrap with observability middleware
	return engineobs.Wrap(eng)
}
