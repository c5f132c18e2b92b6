package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bithumb-ai-trader/internal/logger"
	"bithumb-ai-trader/internal/summary"
	"bithumb-ai-trader/internal/trace"
)

func main() {
	if err := initializeSystem(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfig(ctx)
	if err != nil {
		log.Fatal(err)
	}

	compressOldLogs(ctx)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	ex := initializeExchange(ctx, cfg)
	adv, err := initializeAdvisor(ctx, cfg)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to initialize advisor", err)
		log.Fatal(err)
	}
	prov := initializeProviders(ctx, cfg)
	eng := initializeEngine(cfg, ex, adv, prov)

	pollInterval := time.Duration(cfg.PollSeconds) * time.Second
	backoffInterval := time.Duration(cfg.ErrorBackoffSeconds) * time.Second

	logger.Info(ctx, "Bot started",
		"pair", cfg.Pair,
		"exchange", cfg.Exchange,
		"mode", cfg.Mode,
		"provider", cfg.LLM.Provider,
		"poll_seconds", cfg.PollSeconds,
	)

	// A failed cycle retries sooner than the normal poll interval; a cycle
	// is never retried within itself.
	timer := time.NewTimer(0)
	defer timer.Stop()
	summaryTick := time.NewTicker(60 * time.Second)
	defer summaryTick.Stop()

	for {
		select {
		case <-timer.C:
			result, err := eng.RunCycle(ctx)
			if err != nil {
				timer.Reset(backoffInterval)
				continue
			}
			if result != nil {
				b, _ := json.Marshal(result)
				fmt.Println(string(b))
			}
			timer.Reset(pollInterval)
		case <-summaryTick.C:
			if ok, _ := summary.ShouldRunNow(); ok {
				if p, err := summary.SummarizeYesterday(); err == nil && p != "" {
					logger.Info(ctx, "Daily summary CSV written", "path", p)
				}
			}
		case <-sigc:
			logger.Info(ctx, "Shutting down...")
			if p, err := summary.SummarizeDay(time.Now()); err == nil && p != "" {
				logger.Info(ctx, "Daily summary CSV written", "path", p)
			}
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			_ = trace.Shutdown(shutdownCtx)
			shutdownCancel()
			return
		case <-ctx.Done():
			return
		}
	}
}
