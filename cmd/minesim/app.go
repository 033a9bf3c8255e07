package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/lixenwraith/minesim/asset"
	"github.com/lixenwraith/minesim/audio"
	"github.com/lixenwraith/minesim/config"
	"github.com/lixenwraith/minesim/content"
	"github.com/lixenwraith/minesim/engine"
	"github.com/lixenwraith/minesim/network"
	"github.com/lixenwraith/minesim/status"
	"github.com/lixenwraith/minesim/system"
	"github.com/lixenwraith/minesim/vmath"
)

// app owns the simulation and the optional subsystems observing it
type app struct {
	cfg    config.Config
	sim    *system.Simulation
	status *status.Registry

	// Optional, nil when disabled or failed to start
	sound       *audio.SoundManager
	broadcaster *network.Broadcaster
	serveDone   chan struct{}
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	sim, stats, err := buildSimulation(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded world: %d entities, %d backgrounds, %d skipped lines", stats.Entities, stats.Backgrounds, stats.Skipped)

	a := &app{
		cfg:    cfg,
		sim:    sim,
		status: sim.Status(),
	}

	if cfg.Audio.Enabled {
		a.startAudio()
	}
	if cfg.Network.Listen != "" {
		a.startNetwork(ctx)
	}
	return a, nil
}

// buildSimulation creates the world and populates it from the configured source
func buildSimulation(ctx context.Context, cfg config.Config) (*system.Simulation, content.Stats, error) {
	images, err := loadImages(cfg.World.Images)
	if err != nil {
		return nil, content.Stats{}, err
	}

	bg := engine.Background{ID: cfg.World.Background, Frames: images.Frames(cfg.World.Background)}
	world := engine.NewWorld(cfg.World.Rows, cfg.World.Cols, bg)
	sim := system.New(world, system.Config{
		Seed:   cfg.Simulation.Seed,
		Images: images,
	})

	var src content.Source = content.FileSource{Path: cfg.World.File}
	if cfg.Database.DSN != "" {
		db, err := content.OpenPostgres(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, content.Stats{}, err
		}
		defer db.Close()
		src = content.PostgresSource{DB: db, World: cfg.Database.World}
	}

	loader := content.NewLoader(sim)
	loader.Strict = cfg.World.Strict
	stats, err := loader.Load(ctx, src)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to load world: %w", err)
	}
	return sim, stats, nil
}

// loadImages reads the image list, falling back to built-in frames when the file is absent
func loadImages(path string) (*asset.Store, error) {
	if path == "" {
		return asset.Default(), nil
	}
	images, err := asset.LoadListFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("Image list %s not found, using built-in images", path)
		return asset.Default(), nil
	}
	return images, err
}

func (a *app) startAudio() {
	acfg := audio.DefaultAudioConfig()
	acfg.MasterVolume = a.cfg.Audio.Volume
	sm := audio.NewSoundManager(acfg)
	if err := sm.Initialize(); err != nil {
		// Non-fatal, simulation runs without sound
		log.Printf("Audio initialization failed: %v", err)
		return
	}
	a.sim.Router().Register(sm)
	a.sound = sm
}

func (a *app) startNetwork(ctx context.Context) {
	ncfg := network.DefaultConfig()
	ncfg.Address = a.cfg.Network.Listen
	ncfg.Interval = a.cfg.Network.Interval.Duration

	runID, err := network.NewRunID(time.Now(), vmath.NewFastRand(uint64(time.Now().UnixNano())))
	if err != nil {
		log.Printf("Run id generation failed: %v", err)
		return
	}
	b := network.NewBroadcaster(ncfg, runID, a.status)
	a.broadcaster = b
	a.serveDone = make(chan struct{})

	go func() {
		defer close(a.serveDone)
		if err := b.ListenAndServe(ctx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, network.ErrClosed) {
			// Non-fatal, simulation runs without spectators
			log.Printf("Spectator server stopped: %v", err)
		}
	}()
	log.Printf("Run %s", runID)
}

func (a *app) close() {
	if a.broadcaster != nil {
		a.broadcaster.Close()
		<-a.serveDone
	}
	if a.sound != nil {
		a.sound.Cleanup()
	}
}

// afterStep runs the per-step observers: invariant check and spectator publish
func (a *app) afterStep() error {
	if a.cfg.Simulation.Check {
		if err := a.sim.World().CheckInvariants(); err != nil {
			return fmt.Errorf("invariant violated at %v: %w", a.sim.Now(), err)
		}
	}
	if a.broadcaster != nil && a.broadcaster.PeerCount() > 0 {
		a.broadcaster.Publish(a.sim.Snapshot())
	}
	return nil
}

// runHeadless advances the simulation without a terminal
// With a duration it fast-forwards to that virtual time; otherwise it paces against the wall clock until ctx ends
func (a *app) runHeadless(ctx context.Context) error {
	step := a.cfg.Simulation.Step.Duration
	defer func() {
		log.Printf("Stopped at %v: %d entities, %s", a.sim.Now(), a.sim.World().EntityCount(), a.status)
	}()

	if end := a.cfg.Simulation.Duration.Duration; end > 0 {
		for a.sim.Now() < end {
			if err := ctx.Err(); err != nil {
				return err
			}
			a.sim.Drain(min(a.sim.Now()+step, end))
			if err := a.afterStep(); err != nil {
				return err
			}
		}
		return nil
	}

	ticker := time.NewTicker(step)
	defer ticker.Stop()
	clk := newClock(a.cfg.Simulation.Speed, time.Now())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			a.sim.Advance(clk.tick(now))
			if err := a.afterStep(); err != nil {
				return err
			}
		}
	}
}

// importWorld copies a world file into the configured database
func importWorld(ctx context.Context, cfg config.Config, path string) error {
	if cfg.Database.DSN == "" {
		return errors.New("no database dsn configured")
	}
	lines, err := content.FileSource{Path: path}.Lines(ctx)
	if err != nil {
		return err
	}

	var db *sql.DB
	if db, err = content.OpenPostgres(ctx, cfg.Database.DSN); err != nil {
		return err
	}
	defer db.Close()

	if err := content.ImportLines(ctx, db, cfg.Database.World, lines); err != nil {
		return err
	}
	log.Printf("Imported %d lines from %s into world %q", len(lines), path, cfg.Database.World)
	return nil
}
