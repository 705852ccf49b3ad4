package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gyaneshwarpardhi/trafficlab/internal/config"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	days := flag.Int("days", config.DefaultDays, "Number of days to simulate")
	seed := flag.Int64("seed", 42, "Random seed")
	input := flag.String("in", "", "Load page views from this CSV instead of generating")
	output := flag.String("out", "", "Save the page views to this CSV")
	filterExpr := flag.String("filter", "", `Segment filter, e.g. device == "Mobile" AND source != "Direct"`)
	chartsPath := flag.String("charts", "", "Write HTML charts to this path")
	metricsPath := flag.String("metrics-file", "", "Write Prometheus metrics textfile to this path")
	asJSON := flag.Bool("json", false, "Print reports as JSON")
	watch := flag.Bool("watch", false, "Re-run whenever the config file changes")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// ── Load config ──────────────────────────────────────────────────────────
	loader, err := config.NewLoader(*cfgPath, logger)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	// Flags set on the command line win over the config file.
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	override := func(c *config.Config) *config.Config {
		cfg := *c
		if set["days"] {
			cfg.Generator.Days = *days
		}
		if set["seed"] {
			cfg.Generator.Seed = *seed
		}
		if set["out"] {
			cfg.Output.DataFile = *output
		}
		if set["filter"] {
			cfg.Filter = *filterExpr
		}
		if set["charts"] {
			cfg.Output.ChartsFile = *chartsPath
		}
		if set["metrics-file"] {
			cfg.Output.MetricsFile = *metricsPath
		}
		if set["json"] {
			cfg.Output.JSON = *asJSON
		}
		return &cfg
	}

	cfg := override(loader.Config())
	if err := config.Validate(cfg); err != nil {
		slog.Error("config validation failed", "err", err)
		os.Exit(1)
	}

	p := &pipeline{input: *input, now: time.Now, out: os.Stdout, logger: logger}
	if err := p.run(cfg); err != nil {
		slog.Error("run failed", "err", err)
		os.Exit(1)
	}
	if !*watch {
		return
	}

	// ── Re-run on config change ───────────────────────────────────────────────
	loader.OnChange(func(newCfg *config.Config) {
		cfg := override(newCfg)
		if err := config.Validate(cfg); err != nil {
			slog.Warn("re-run skipped: config invalid", "err", err)
			return
		}
		slog.Info("config changed, re-running")
		if err := p.run(cfg); err != nil {
			slog.Error("run failed", "err", err)
		}
	})
	stopWatch, err := loader.Watch()
	if err != nil {
		slog.Error("config watcher unavailable", "err", err)
		os.Exit(1)
	}
	defer stopWatch()
	slog.Info("watching config", "path", *cfgPath)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down…")
}
