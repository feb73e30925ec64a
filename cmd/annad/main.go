// Anna - local Arch Linux assistant daemon. Runs the translator → probe →
// specialist → review pipeline behind a small HTTP API.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/jjgarcianorway/anna/pkg/api"
	"github.com/jjgarcianorway/anna/pkg/config"
	"github.com/jjgarcianorway/anna/pkg/knowledge"
	"github.com/jjgarcianorway/anna/pkg/llm"
	"github.com/jjgarcianorway/anna/pkg/orchestrator"
	"github.com/jjgarcianorway/anna/pkg/probe"
	"github.com/jjgarcianorway/anna/pkg/specialist"
	"github.com/jjgarcianorway/anna/pkg/translator"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	configDir := getEnv("ANNA_CONFIG_DIR", "/etc/anna")

	logger := slog.With("component", "annad")
	logger.Info("starting Anna", "config_dir", configDir)

	ctx := context.Background()

	cfg, err := config.Initialize(ctx, configDir)
	if err != nil {
		logger.Error("failed to initialize configuration", "error", err)
		os.Exit(1)
	}

	var client llm.Client
	if apiKey := os.Getenv(cfg.LLM.APIKeyEnv); apiKey != "" {
		client = llm.NewAnthropicClient(apiKey, anthropic.Model(cfg.LLM.Model))
		logger.Info("LLM provider configured", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)
	} else {
		logger.Warn("LLM API key not set, running with deterministic fallbacks only", "api_key_env", cfg.LLM.APIKeyEnv)
	}

	tr := translator.New(client, time.Duration(cfg.Review.TranslatorMs)*time.Millisecond)
	sp := specialist.New(client, time.Duration(cfg.Review.SpecialistMs)*time.Millisecond)
	exec := probe.NewExecutor(probe.NewShellRunner(), probe.Budget{
		PerProbe:       cfg.Probe.PerProbe(),
		Total:          cfg.Probe.Total(),
		Concurrency:    cfg.Probe.Concurrency,
		OutputCapBytes: cfg.Probe.OutputCapBytes,
	})

	orchCfg := orchestrator.Config{
		TranslatorMs:        cfg.Review.TranslatorMs,
		PerProbeMs:          cfg.Probe.PerProbeMs,
		TotalProbeMs:        cfg.Probe.TotalMs,
		SpecialistMs:        cfg.Review.SpecialistMs,
		SeniorMs:            cfg.Review.SeniorMs,
		ProbeConcurrency:    cfg.Probe.Concurrency,
		ProbeOutputCapBytes: cfg.Probe.OutputCapBytes,
		JuniorRoundsMax:     cfg.Review.JuniorRoundsMax,
		SeniorRoundsMax:     cfg.Review.SeniorRoundsMax,
		JuniorThreshold:     cfg.Review.JuniorThreshold,
		AcceptScore:         cfg.Thresholds.AcceptScore,
		MinGrounding:        cfg.Thresholds.MinGrounding,
		FallbackAcceptScore: cfg.Thresholds.FallbackAcceptScore,
	}
	orch := orchestrator.New(tr, exec, sp, knowledge.ArchPack, orchCfg)

	server := api.NewServer(orch)

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.Server.ListenAddr)
		if err := server.Start(cfg.Server.ListenAddr); err != nil {
			logger.Warn("HTTP server stopped", "error", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during shutdown", "error", err)
	}
}
