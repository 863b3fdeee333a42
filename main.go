package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/thumbstick/input"
	"github.com/milk9111/thumbstick/logger"
	"github.com/milk9111/thumbstick/prefabs"
)

func main() {
	inputMode := flag.String("input", "stick", "input adapter: stick, touch, keyboard or script")
	script := flag.String("script", "circle", "input script in prefabs/scripts/ (basename, .tengo optional)")
	controller := flag.String("controller", "", "controller prefab (default "+prefabs.ControllerFile+")")
	arena := flag.String("arena", "", "arena prefab (default "+prefabs.ArenaFile+")")
	prefabDir := flag.String("prefabs", prefabs.Dir, "directory checked for prefab overrides before the embedded copies")
	watch := flag.Bool("watch", false, "reload the controller prefab when it changes on disk")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn or error")
	logFormat := flag.String("log-format", "console", "log format: console, text or json")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if err := logger.Init(logger.Config{Level: *logLevel, Format: *logFormat}); err != nil {
		slog.Error("Failed to init logger", "error", err)
		os.Exit(2)
	}
	log := logger.L()

	mode, err := input.ParseMode(*inputMode)
	if err != nil {
		log.Error("Invalid input mode", "error", err)
		os.Exit(2)
	}
	prefabs.Dir = *prefabDir

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("thumbstick")

	game, err := NewGame(GameOptions{
		Mode:       mode,
		Controller: *controller,
		Arena:      *arena,
		Script:     *script,
		Watch:      *watch,
		Logger:     log,
	})
	if err != nil {
		log.Error("Failed to start", "error", err)
		os.Exit(1)
	}

	err = ebiten.RunGame(game)
	if cerr := game.Close(); cerr != nil {
		log.Warn("Failed to stop prefab watcher", "error", cerr)
	}
	if err != nil {
		log.Error("Game stopped", "error", err)
		os.Exit(1)
	}
}
