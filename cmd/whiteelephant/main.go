package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/whiteelephant/internal/display"
)

// version is set by ldflags during build
var version = "dev"

// Globals are shared by every subcommand
type Globals struct {
	LogLevel string `kong:"default='warn',enum='debug,info,warn,error',help='Log level (debug|info|warn|error)'"`
	NoColor  bool   `kong:"help='Disable colored output'"`
}

func (g *Globals) logger() *log.Logger {
	level, err := log.ParseLevel(g.LogLevel)
	if err != nil {
		level = log.WarnLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
}

type CLI struct {
	Globals

	Play     PlayCmd     `cmd:"" default:"withargs" help:"Play one gift exchange and print the log"`
	Simulate SimulateCmd `cmd:"" help:"Play many games and report aggregate statistics"`
	Replay   ReplayCmd   `cmd:"" help:"Step through a finished game"`
	Version  VersionCmd  `cmd:"" help:"Show version"`
}

// VersionCmd prints the build version
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println("whiteelephant", version)
	return nil
}

func main() {
	var cli CLI
	parser := kong.Parse(&cli,
		kong.Name("whiteelephant"),
		kong.Description("White elephant gift exchange simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	display.SetColor(!cli.NoColor)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	parser.BindTo(ctx, (*context.Context)(nil))
	err := parser.Run(&cli.Globals)
	parser.FatalIfErrorf(err)
}
