package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/minesim/render"
)

// runTerminal drives the simulation and draws it until quit or ctx ends
// The simulation, rendering and key handling all run on this goroutine
func (a *app) runTerminal(ctx context.Context) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nMINESIM CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	return a.loop(ctx, screen)
}

func (a *app) loop(ctx context.Context, screen tcell.Screen) error {
	renderer := render.NewTerminalRenderer(screen, a.cfg.Render.StatusLine)
	clk := newClock(a.cfg.Simulation.Speed, time.Now())

	eventChan := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-quit:
				return
			}
		}
	}()

	simTicker := time.NewTicker(a.cfg.Simulation.Step.Duration)
	defer simTicker.Stop()
	frameTicker := time.NewTicker(a.cfg.Render.Frame.Duration)
	defer frameTicker.Stop()

	draw := func() {
		renderer.RenderFrame(a.sim.World(), render.Status{
			Time:     a.sim.Now(),
			Speed:    clk.speed,
			Paused:   clk.paused,
			Entities: a.sim.World().EntityCount(),
			Pending:  a.sim.Scheduler().Len(),
			Metrics:  a.status.String(),
		})
	}
	draw()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-eventChan:
			if !handleEvent(ev, clk, screen) {
				return nil
			}
			draw()
		case now := <-simTicker.C:
			a.sim.Advance(clk.tick(now))
			if err := a.afterStep(); err != nil {
				return err
			}
		case <-frameTicker.C:
			draw()
		}
	}
}

// handleEvent applies one terminal event; returns false to quit
func handleEvent(ev tcell.Event, clk *clock, screen tcell.Screen) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				clk.togglePause()
			case '+', '=':
				clk.faster()
			case '-':
				clk.slower()
			}
		}
	case *tcell.EventResize:
		screen.Sync()
	}
	return true
}
