package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/whiteelephant/internal/display"
	"github.com/lox/whiteelephant/internal/game"
	"github.com/lox/whiteelephant/internal/randutil"
	"github.com/lox/whiteelephant/internal/replay"
	"github.com/lox/whiteelephant/internal/report"
	"github.com/lox/whiteelephant/internal/tui"
)

type ReplayCmd struct {
	GameFlags `embed:""`

	History  string        `kong:"type='existingfile',help='history.yaml written by play --out'"`
	Interval time.Duration `kong:"default='800ms',help='Auto-play delay between snapshots'"`
	Headless bool          `kong:"help='Print every snapshot on a timer instead of opening the viewer'"`
}

func (c *ReplayCmd) Run(ctx context.Context, g *Globals) error {
	logger := g.logger()
	history, names, err := c.load()
	if err != nil {
		return err
	}
	logger.Debug("Loaded history", "snapshots", history.Len())

	if !c.Headless {
		return tui.Run(tui.NewModel(history, tui.Options{
			GiftNames: names,
			Interval:  c.Interval,
			Logger:    logger,
		}))
	}

	cursor := replay.NewCursor(history)
	if first, ok := cursor.Current(); ok {
		printSnapshot(0, first)
	}
	player := replay.NewAutoPlayer(cursor, quartz.NewReal(), logger)
	if err := player.Start(ctx, c.Interval, printSnapshot); err != nil {
		return err
	}
	return player.Wait()
}

// load reads an archived history, or replays a fresh game from the flags.
func (c *ReplayCmd) load() (game.History, []string, error) {
	if c.History != "" {
		a, err := report.LoadHistory(c.History)
		if err != nil {
			return game.History{}, nil, err
		}
		names := make([]string, len(a.Gifts))
		for i, g := range a.Gifts {
			names[i] = g.Name
		}
		return a.History(), names, nil
	}

	cfg, seed, err := c.resolve()
	if err != nil {
		return game.History{}, nil, err
	}
	eng, _, err := game.RunFullSimulation(cfg, randutil.Float64(seed), nil)
	if err != nil {
		return game.History{}, nil, err
	}
	var names []string
	for _, g := range eng.Gifts() {
		names = append(names, g.Name)
	}
	return eng.History(), names, nil
}

func printSnapshot(index int, state game.GameState) {
	cells := make([]string, len(state.Gifts))
	for i, g := range state.Gifts {
		cells[i] = fmt.Sprintf("G%d=%s", g.ID, display.Cell(g))
	}
	action := state.Action
	if action == "" {
		action = "(end of game)"
	}
	fmt.Printf("%3d  %-40s %s\n", index, action, strings.Join(cells, " "))
}
