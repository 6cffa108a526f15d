package main

import (
	"context"
	"os"
	"time"

	"github.com/lox/whiteelephant/internal/simulator"
)

type SimulateCmd struct {
	GameFlags `embed:""`

	Games   int `kong:"default='1000',help='Number of games to play'"`
	Workers int `kong:"help='Parallel workers (0 = GOMAXPROCS)'"`
}

func (c *SimulateCmd) Run(ctx context.Context, g *Globals) error {
	logger := g.logger()
	cfg, seed, err := c.resolve()
	if err != nil {
		return err
	}

	start := time.Now()
	sim := simulator.New(simulator.Config{
		Games:   c.Games,
		Seed:    seed,
		Workers: c.Workers,
		Game:    cfg,
		Logger:  logger,
	})
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("Simulation complete", "games", stats.Games, "seed", seed, "duration", time.Since(start))

	simulator.PrintSummary(os.Stdout, stats)
	return nil
}
