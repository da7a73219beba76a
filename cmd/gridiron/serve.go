package main

import (
	"context"
	"fmt"
	"time"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/gridironlabs/gridiron/cmd/gridiron/shared"
	"github.com/gridironlabs/gridiron/internal/broadcast"
	"github.com/gridironlabs/gridiron/internal/game"
	"github.com/gridironlabs/gridiron/internal/league"
	"github.com/gridironlabs/gridiron/internal/sim"
)

// ServeCmd plays a single game in real time and streams play-by-play events
// to websocket subscribers at /watch.
type ServeCmd struct {
	Addr    string `kong:"default=':8080',help='Listen address for the websocket feed'"`
	Config  string `kong:"default='gridiron.hcl',help='Path to HCL configuration file'"`
	Seed    int64  `kong:"default='1',help='RNG seed for the game'"`
	Home    string `kong:"help='Home team abbreviation (overrides config)'"`
	Away    string `kong:"help='Away team abbreviation (overrides config)'"`
	DelayMs int    `kong:"default='2000',help='Pause between plays in milliseconds'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := sim.LoadFileConfig(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if c.Home != "" {
		cfg.Sim.Home = c.Home
	}
	if c.Away != "" {
		cfg.Sim.Away = c.Away
	}

	level := cfg.Sim.LogLevel
	if c.Debug {
		level = "debug"
	}
	logger := shared.SetupLogger(level)

	registry := league.Default()
	if cfg.Sim.TeamsFile != "" {
		registry, err = league.Load(cfg.Sim.TeamsFile)
		if err != nil {
			return fmt.Errorf("loading teams: %w", err)
		}
	}
	home, away, err := registry.Pair(cfg.Sim.Home, cfg.Sim.Away)
	if err != nil {
		return err
	}

	ctx := shared.SetupSignalHandler(logger)
	g, ctx := errgroup.WithContext(ctx)

	feed := broadcast.NewServer(logger)
	g.Go(func() error {
		return feed.Run(ctx, c.Addr)
	})

	bus := game.NewEventBus()
	bus.Subscribe(feed)
	bus.Subscribe(&pacer{
		ctx:   ctx,
		clock: quartz.NewReal(),
		delay: time.Duration(c.DelayMs) * time.Millisecond,
	})

	simulator := sim.New(sim.Config{
		Games:          1,
		Seed:           c.Seed,
		QuarterSeconds: cfg.Sim.QuarterSeconds,
		Home:           home,
		Away:           away,
		Tendencies:     *cfg.Tendencies,
		Logger:         logger,
	})

	g.Go(func() error {
		logger.Info("kickoff", "home", home.Abbr, "away", away.Abbr, "seed", c.Seed)
		result, err := simulator.PlayGame(c.Seed, bus)
		if err != nil {
			return err
		}
		logger.Info("final score",
			"home", fmt.Sprintf("%s %d", home.Abbr, result.HomeScore),
			"away", fmt.Sprintf("%s %d", away.Abbr, result.AwayScore),
			"plays", result.Plays)
		return context.Canceled
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// pacer slows the engine to broadcast speed by blocking the event bus for a
// fixed delay after each committed play.
type pacer struct {
	ctx   context.Context
	clock quartz.Clock
	delay time.Duration
}

func (p *pacer) OnEvent(event game.GameEvent) {
	if event.EventType() != game.EventTypePlayApplied {
		return
	}
	timer := p.clock.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-p.ctx.Done():
	}
}
