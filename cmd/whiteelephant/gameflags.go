package main

import (
	"time"

	"github.com/lox/whiteelephant/internal/config"
	"github.com/lox/whiteelephant/internal/game"
	"github.com/lox/whiteelephant/internal/registry"
)

// GameFlags select and override the game configuration
type GameFlags struct {
	Config        string `kong:"type='path',help='HCL game config file'"`
	Seed          int64  `kong:"help='Seed for deterministic play (0 = file seed, else random)'"`
	Players       int    `kong:"help='Number of players (0 = from config)'"`
	LockThreshold int    `kong:"help='Steals before a gift locks (0 = from config)'"`
	Classic       bool   `kong:"help='Use the eight classic gifts'"`
}

// resolve loads the config file, applies the flag overrides and picks the
// seed. The returned config has been validated.
func (f *GameFlags) resolve() (game.Config, int64, error) {
	file := config.Default()
	if f.Config != "" {
		var err error
		if file, err = config.Load(f.Config); err != nil {
			return game.Config{}, 0, err
		}
	}

	cfg := file.GameConfig()
	if f.Classic {
		cfg.Gifts = registry.ClassicGifts()
		cfg.Players = len(cfg.Gifts)
	}
	if f.Players != 0 {
		cfg.Players = f.Players
	}
	if f.LockThreshold != 0 {
		cfg.LockThreshold = f.LockThreshold
	}
	if err := cfg.Validate(); err != nil {
		return game.Config{}, 0, err
	}

	seed := f.Seed
	if seed == 0 {
		seed = file.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return cfg, seed, nil
}
