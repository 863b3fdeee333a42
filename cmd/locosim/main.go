package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/milk9111/thumbstick/logger"
	"github.com/milk9111/thumbstick/prefabs"
	"golang.org/x/time/rate"
)

func main() {
	ticks := flag.Int("ticks", 600, "number of ticks to simulate")
	hz := flag.Float64("hz", 60, "tick rate")
	script := flag.String("script", "circle", "input script in prefabs/scripts/ (basename, .tengo optional)")
	fast := flag.Bool("fast", false, "do not pace ticks to wall-clock time")
	controller := flag.String("controller", "", "controller prefab (default "+prefabs.ControllerFile+")")
	arena := flag.String("arena", "", "arena prefab (default "+prefabs.ArenaFile+")")
	prefabDir := flag.String("prefabs", prefabs.Dir, "directory checked for prefab overrides before the embedded copies")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn or error")
	logFormat := flag.String("log-format", "console", "log format: console, text or json")
	flag.Parse()

	if err := logger.Init(logger.Config{Level: *logLevel, Format: *logFormat}); err != nil {
		slog.Error("Failed to init logger", "error", err)
		os.Exit(2)
	}
	log := logger.L()
	prefabs.Dir = *prefabDir

	ctrlSpec, err := prefabs.LoadControllerSpec(*controller)
	if err != nil {
		log.Error("Failed to load controller", "error", err)
		os.Exit(1)
	}
	arenaSpec, err := prefabs.LoadArenaSpec(*arena)
	if err != nil {
		log.Error("Failed to load arena", "error", err)
		os.Exit(1)
	}
	src, err := prefabs.LoadScript(*script)
	if err != nil {
		log.Error("Failed to load script", "error", err)
		os.Exit(1)
	}

	s, err := newSim(simOptions{
		Hz:         *hz,
		Script:     src,
		Controller: ctrlSpec,
		Arena:      arenaSpec,
		Logger:     log,
	})
	if err != nil {
		log.Error("Failed to build simulation", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var limiter *rate.Limiter
	if !*fast {
		limiter = rate.NewLimiter(rate.Limit(*hz), 1)
	}

	log.Info("locosim: running", "ticks", *ticks, "hz", *hz, "script", *script, "paced", limiter != nil)
	sum := s.run(ctx, *ticks, limiter)
	log.Info("locosim: done",
		"ticks", sum.Ticks,
		"cancelled", sum.Cancelled,
		"start", sum.Start,
		"end", sum.End,
		"travelled", sum.Travelled,
		"takeoffs", sum.Takeoffs,
		"landings", sum.Landings,
		"display_changes", sum.Displays,
	)
}
