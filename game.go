package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/thumbstick/ecs"
	"github.com/milk9111/thumbstick/ecs/component"
	"github.com/milk9111/thumbstick/ecs/entity"
	"github.com/milk9111/thumbstick/ecs/system"
	"github.com/milk9111/thumbstick/input"
	"github.com/milk9111/thumbstick/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type GameOptions struct {
	Mode       input.Mode
	Controller string
	Arena      string
	Script     string
	Watch      bool
	Logger     *slog.Logger
}

type Game struct {
	frames int
	mode   input.Mode
	ended  bool

	world   *ecs.World
	player  ecs.Entity
	view    topDownView
	wall    color.Color
	watcher *prefabs.Watcher
	log     *slog.Logger
}

func NewGame(opts GameOptions) (*Game, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	arena, err := prefabs.LoadArenaSpec(opts.Arena)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	spec, err := prefabs.LoadControllerSpec(opts.Controller)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	w := ecs.NewWorld()
	arenaEntity, err := entity.NewArena(w, arena)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	playerOpts := entity.PlayerOptions{Spec: spec, Mode: opts.Mode, Logger: log}
	if opts.Mode == input.ModeScript {
		src, err := prefabs.LoadScript(opts.Script)
		if err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
		playerOpts.Script = src
		playerOpts.ScriptStep = 1 / float64(ebiten.TPS())
	}
	player, err := entity.NewPlayer(w, playerOpts)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	system.Install(w, &ebitenPoller{}, spec.Camera.RunThreshold, log)

	g := &Game{
		mode:   opts.Mode,
		world:  w,
		player: player,
		wall:   defaultWallColor,
		log:    log,
	}
	if arena.WallColor != nil {
		g.wall = arena.WallColor.Color
	}
	if bounds, ok := ecs.Get(w, arenaEntity, component.ArenaBoundsComponent.Kind()); ok {
		g.view = newTopDownView(*bounds, baseWidth, baseHeight)
	}

	if opts.Watch {
		watcher, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Warn("game: prefab watch disabled", "dir", prefabs.Dir, "err", err)
		} else {
			g.watcher = watcher
			log.Info("game: watching prefabs", "dir", prefabs.Dir)
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	g.frames++

	g.applyPrefabChanges()
	g.world.Update(1 / float64(ebiten.TPS()))

	for _, evt := range g.world.Events().Drain() {
		switch evt.Type {
		case ecs.EventSessionEnded:
			g.ended = true
			g.log.Info("game: session ended", "entity", evt.Entity)
		case ecs.EventDisplayChanged:
			g.log.Debug("game: display", "entity", evt.Entity, "change", evt.Data)
		default:
			g.log.Debug("game: event", "type", evt.Type, "entity", evt.Entity)
		}
	}
	return nil
}

// applyPrefabChanges turns edits of the controller prefab into reload
// requests. Other files are only reported.
func (g *Game) applyPrefabChanges() {
	if g.watcher == nil {
		return
	}
	for _, path := range g.watcher.Drain() {
		if !prefabs.IsControllerFile(path) {
			g.log.Info("game: prefab changed, restart to apply", "file", path)
			continue
		}
		spec, err := prefabs.LoadControllerSpec(filepath.Base(path))
		if err != nil {
			g.log.Error("game: reload controller", "file", path, "err", err)
			continue
		}
		cfg, err := spec.Config()
		if err != nil {
			g.log.Error("game: reload controller", "file", path, "err", err)
			continue
		}
		n := system.RequestReload(g.world, cfg, path)
		g.log.Info("game: controller reload queued", "file", path, "entities", n)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	drawArena(screen, g.world, g.view, g.wall)
	drawPlayer(screen, g.world, g.player, g.view)
	if in, ok := ecs.Get(g.world, g.player, component.InputComponent.Kind()); ok && in.Mode == input.ModeTouch {
		drawTouchZones(screen, in)
	}
	drawStatus(screen, g.world, g.player, g)
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
