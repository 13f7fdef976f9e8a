package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"nickguard/internal/adapters/discord"
	httpadapter "nickguard/internal/adapters/http"
	"nickguard/internal/adapters/llm"
	"nickguard/internal/config"
	"nickguard/internal/logging"
	"nickguard/internal/ports"
	"nickguard/internal/services/arbiter"
	"nickguard/internal/services/nickname"
	"nickguard/internal/services/roster"
	"nickguard/internal/services/steamlink"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "err", err)
		os.Exit(1)
	}
	log := logging.New(os.Stdout, logging.ParseLevel(cfg.LogLevel), cfg.IsDevelopment())
	slog.SetDefault(log)

	policy := nickname.DefaultPolicy()
	policy.FallbackName = cfg.NickFallbackName
	validator, err := nickname.New(policy)
	if err != nil {
		log.Error("invalid nickname policy", "err", err)
		os.Exit(1)
	}

	var arb ports.Arbiter
	if providers := cfg.Providers(); len(providers) > 0 {
		arb = newArbiter(cfg, providers, log)
	} else {
		log.Warn("no LLM provider key set, semantic checks disabled")
	}

	engine := nickname.NewEngine(validator, arb, nickname.EngineOptions{AlwaysArbitrate: cfg.AlwaysUseLLM}, log)
	audits := roster.New(engine, roster.Options{Workers: cfg.SweepWorkers}, log)
	steam := steamlink.New(0)

	var renamer ports.MemberRenamer
	if cfg.DiscordToken != "" {
		renamer = discord.NewRenamer(cfg.DiscordToken, log)
	} else {
		log.Warn("DISCORD_TOKEN not set, rename endpoint disabled")
	}

	srv := httpadapter.New(engine, audits, steam, renamer, log)
	r := chi.NewRouter()
	r.Mount("/", srv.Routes())

	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()
	log.Info("listening", "addr", cfg.ListenAddr, "env", cfg.Env)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
		// Long enough for an in-flight arbiter call to finish.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.LLMTimeout+2*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			log.Error("shutdown error", "err", err)
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "err", err)
			os.Exit(1)
		}
	}
}

func newArbiter(cfg config.Config, providers []config.NamedProvider, log *slog.Logger) *arbiter.Arbiter {
	chain := make([]llm.Provider, 0, len(providers))
	names := make([]string, 0, len(providers))
	for _, p := range providers {
		chain = append(chain, llm.Provider{
			Name: p.Name,
			Client: llm.New(llm.Config{
				Name:    p.Name,
				BaseURL: p.BaseURL,
				APIKey:  p.APIKey,
				Model:   p.Model,
			}),
			Breaker: llm.NewCircuitBreaker(llm.BreakerConfig{Name: p.Name}),
		})
		names = append(names, p.Name)
	}
	client := llm.NewCache(llm.NewFallback(log, chain...), cfg.AICacheTTL)
	log.Info("arbiter enabled", "providers", names, "always", cfg.AlwaysUseLLM)

	return arbiter.New(client, arbiter.NewRateLimiter(cfg.LLMMinDelay), arbiter.Options{
		Timeout:     cfg.LLMTimeout,
		MaxAttempts: cfg.LLMMaxAttempts,
		BackoffBase: cfg.LLMBackoffBase,
		BackoffCap:  4 * cfg.LLMBackoffBase,
	}, log)
}
