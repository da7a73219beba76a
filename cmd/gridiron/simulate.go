package main

import (
	"fmt"

	"github.com/gridironlabs/gridiron/cmd/gridiron/shared"
	"github.com/gridironlabs/gridiron/internal/league"
	"github.com/gridironlabs/gridiron/internal/sim"
)

// SimulateCmd runs a batch of seeded games and prints aggregate statistics.
type SimulateCmd struct {
	Config string `kong:"default='gridiron.hcl',help='Path to HCL configuration file'"`
	Games  int    `kong:"help='Number of games to simulate (overrides config)'"`
	Seed   *int64 `kong:"help='Base RNG seed (overrides config)'"`
	Home   string `kong:"help='Home team abbreviation (overrides config)'"`
	Away   string `kong:"help='Away team abbreviation (overrides config)'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	cfg, err := sim.LoadFileConfig(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if c.Games > 0 {
		cfg.Sim.Games = c.Games
	}
	if c.Seed != nil {
		cfg.Sim.Seed = *c.Seed
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

	logger.Info("starting simulation",
		"games", cfg.Sim.Games,
		"seed", cfg.Sim.Seed,
		"home", home.Abbr,
		"away", away.Abbr,
		"quarter_seconds", cfg.Sim.QuarterSeconds)

	simulator := sim.New(sim.Config{
		Games:          cfg.Sim.Games,
		Seed:           cfg.Sim.Seed,
		QuarterSeconds: cfg.Sim.QuarterSeconds,
		Home:           home,
		Away:           away,
		Tendencies:     *cfg.Tendencies,
		Logger:         logger,
	})

	stats, err := simulator.Run()
	if err != nil {
		return err
	}
	fmt.Println(stats.Summary())
	return nil
}
