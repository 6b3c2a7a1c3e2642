package main

import (
	"context"
	"log/slog"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/catalog"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/config"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/decision"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/engine"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/events"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/llm"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/orchestrator"
)

// runtime holds the wired components shared by the serve and process
// commands.
type runtime struct {
	cfg       *config.Config
	logger    *slog.Logger
	bus       *events.DefaultBus
	snap      *catalog.Snapshot
	validator *engine.Validator
	planner   *engine.Planner
	assigner  *engine.Assigner
	recorder  *decision.Recorder
	provider  llm.Provider
	logSink   *events.LogSink
}

func buildRuntime(cfg *config.Config) (*runtime, error) {
	logger := newLogger(cfg.Logging)

	snap, err := catalog.NewLoader(cfg.Core.DataDir).Load()
	if err != nil {
		return nil, err
	}

	bus := events.NewBus()
	sink := events.NewLogSink(context.Background(), bus, logger)

	rt := &runtime{
		cfg:       cfg,
		logger:    logger,
		bus:       bus,
		snap:      snap,
		validator: engine.NewValidator(bus),
		planner:   engine.NewPlanner(),
		assigner:  engine.NewAssigner(),
		recorder:  decision.NewRecorder(bus),
		logSink:   sink,
	}

	if cfg.LLM.Enabled() {
		provider, err := llm.NewProvider(cfg.LLM.ProviderConfig())
		if err != nil {
			return nil, err
		}
		rt.provider = llm.Instrument(provider, bus)
		logger.Info("model provider wired",
			"provider", provider.Name(),
			"model", cfg.LLM.Model,
		)
	} else {
		logger.Info("model provider disabled")
	}

	logger.Info("catalog loaded",
		"data_dir", cfg.Core.DataDir,
		"requests", len(snap.Requests),
		"artists", len(snap.Artists),
		"presets", len(snap.Presets),
		"rules", len(snap.Rules),
	)
	return rt, nil
}

func (rt *runtime) close() {
	rt.logSink.Stop()
	_ = rt.bus.Close()
}

// newOrchestrator assembles the orchestrator per the policy and store
// sections. The returned cleanup closes the durable store if one was opened.
func (rt *runtime) newOrchestrator() (*orchestrator.Orchestrator, func(), error) {
	opts := []orchestrator.Option{
		orchestrator.WithMaxSteps(rt.cfg.Policy.MaxSteps),
	}

	if rt.cfg.Policy.Mode == "policy" && rt.provider != nil {
		opts = append(opts, orchestrator.WithStrategyFactory(func() orchestrator.Strategy {
			return orchestrator.NewPolicyStrategy(rt.provider, rt.bus, rt.logger, rt.cfg.LLM.Timeout)
		}))
	}
	if rt.provider != nil {
		opts = append(opts, orchestrator.WithEnhancer(
			orchestrator.NewEnhancer(rt.provider, rt.logger, rt.cfg.LLM.Timeout)))
	}

	cleanup := func() {}
	if rt.cfg.Store.Path != "" {
		store, err := decision.OpenStore(rt.cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, orchestrator.WithStore(store))
		cleanup = func() { _ = store.Close() }
	}

	o := orchestrator.New(rt.snap, rt.validator, rt.planner, rt.assigner, rt.recorder, rt.bus, rt.logger, opts...)
	return o, cleanup, nil
}
