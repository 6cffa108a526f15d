package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/whiteelephant/internal/display"
	"github.com/lox/whiteelephant/internal/game"
	"github.com/lox/whiteelephant/internal/randutil"
	"github.com/lox/whiteelephant/internal/report"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

type PlayCmd struct {
	GameFlags `embed:""`

	Matrix bool   `kong:"help='Print the position matrix after the log'"`
	Out    string `kong:"type='path',help='Directory to write game_log.txt and history.yaml'"`
}

func (c *PlayCmd) Run(g *Globals) error {
	logger := g.logger()
	cfg, seed, err := c.resolve()
	if err != nil {
		return err
	}
	logger.Info("Playing game", "seed", seed, "players", cfg.Players, "lockThreshold", cfg.LockThreshold)

	eng, result, runErr := game.RunFullSimulation(cfg, randutil.Float64(seed), logger)
	if eng == nil {
		return runErr
	}

	fmt.Println(titleStyle.Render(" 🎁 White Elephant Gift Exchange 🎁 "))
	fmt.Printf("seed %d\n\n", seed)
	fmt.Print(display.Transcript(eng.Transcript()))
	fmt.Println()
	if c.Matrix {
		fmt.Println(display.Matrix(eng.History()))
		fmt.Println()
	}
	fmt.Print(display.Stats(result))

	if c.Out != "" {
		paths, err := report.SaveAll(c.Out, eng, seed)
		if err != nil {
			return err
		}
		for _, p := range paths {
			logger.Info("Wrote file", "path", p)
		}
	}
	return runErr
}
