// Package config loads game configuration from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/whiteelephant/internal/game"
	"github.com/lox/whiteelephant/internal/registry"
)

// File represents a complete game configuration file. Players and
// LockThreshold are nil when the attribute is absent; an explicit value,
// including zero, is passed through to validation.
type File struct {
	Players       *int           `hcl:"players,optional"`
	LockThreshold *int           `hcl:"lock_threshold,optional"`
	Seed          int64          `hcl:"seed,optional"`
	Strategy      *StrategyBlock `hcl:"strategy,block"`
	Gifts         []GiftBlock    `hcl:"gift,block"`
}

// StrategyBlock overrides the steal heuristic. Pointer fields distinguish
// "not set" from an explicit zero.
type StrategyBlock struct {
	HighValueThreshold   *int     `hcl:"high_value_threshold,optional"`
	MediumValueThreshold *int     `hcl:"medium_value_threshold,optional"`
	HighStealChance      *float64 `hcl:"high_steal_chance,optional"`
	MediumStealChance    *float64 `hcl:"medium_steal_chance,optional"`
	LowStealChance       *float64 `hcl:"low_steal_chance,optional"`
}

// GiftBlock defines one labelled gift
type GiftBlock struct {
	Name  string `hcl:"name,label"`
	Value int    `hcl:"value"`
}

// Default returns the configuration used when no file is present
func Default() *File {
	return &File{}
}

// Load reads a configuration file. A missing file yields the defaults.
func Load(filename string) (*File, error) {
	src, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source. Defaults for unset attributes are applied by
// GameConfig.
func Parse(src []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg File
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	return &cfg, nil
}

// GameConfig converts the file into engine input
func (f *File) GameConfig() game.Config {
	cfg := game.Config{
		Players:       game.DefaultPlayers,
		LockThreshold: game.DefaultLockThreshold,
		Strategy:      game.DefaultStrategy(),
	}
	switch {
	case f.Players != nil:
		cfg.Players = *f.Players
	case len(f.Gifts) > 0:
		cfg.Players = len(f.Gifts)
	}
	if f.LockThreshold != nil {
		cfg.LockThreshold = *f.LockThreshold
	}

	if s := f.Strategy; s != nil {
		if s.HighValueThreshold != nil {
			cfg.Strategy.HighValueThreshold = *s.HighValueThreshold
		}
		if s.MediumValueThreshold != nil {
			cfg.Strategy.MediumValueThreshold = *s.MediumValueThreshold
		}
		if s.HighStealChance != nil {
			cfg.Strategy.HighStealChance = *s.HighStealChance
		}
		if s.MediumStealChance != nil {
			cfg.Strategy.MediumStealChance = *s.MediumStealChance
		}
		if s.LowStealChance != nil {
			cfg.Strategy.LowStealChance = *s.LowStealChance
		}
	}

	for _, g := range f.Gifts {
		cfg.Gifts = append(cfg.Gifts, registry.GiftSpec{Name: g.Name, Value: g.Value})
	}
	return cfg
}

// Validate validates the configuration file
func (f *File) Validate() error {
	return f.GameConfig().Validate()
}
