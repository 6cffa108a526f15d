package game

import (
	"errors"
	"fmt"

	"github.com/lox/whiteelephant/internal/registry"
)

const (
	DefaultPlayers              = 8
	DefaultLockThreshold        = 3
	DefaultHighValueThreshold   = 75
	DefaultMediumValueThreshold = 65
	DefaultHighStealChance      = 0.8
	DefaultMediumStealChance    = 0.6
	DefaultLowStealChance       = 0.3
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid game config")

// Strategy holds the steal heuristic knobs. The chance applied depends on
// the value of the best stealable gift.
type Strategy struct {
	HighValueThreshold   int
	MediumValueThreshold int
	HighStealChance      float64
	MediumStealChance    float64
	LowStealChance       float64
}

// DefaultStrategy returns 75/65 value thresholds with 0.8/0.6/0.3 chances.
func DefaultStrategy() Strategy {
	return Strategy{
		HighValueThreshold:   DefaultHighValueThreshold,
		MediumValueThreshold: DefaultMediumValueThreshold,
		HighStealChance:      DefaultHighStealChance,
		MediumStealChance:    DefaultMediumStealChance,
		LowStealChance:       DefaultLowStealChance,
	}
}

// Config is the immutable input to a game. There is always exactly one gift
// per player; Gifts is either empty (synthesize) or Players long.
type Config struct {
	Players       int
	LockThreshold int
	Strategy      Strategy
	Gifts         []registry.GiftSpec
}

// DefaultConfig returns an eight player game with synthesized gifts.
func DefaultConfig() Config {
	return Config{
		Players:       DefaultPlayers,
		LockThreshold: DefaultLockThreshold,
		Strategy:      DefaultStrategy(),
	}
}

// Validate fails fast on anything the engine cannot run with.
func (c Config) Validate() error {
	if c.Players < 1 {
		return fmt.Errorf("%w: players must be at least 1, got %d", ErrInvalidConfig, c.Players)
	}
	if c.LockThreshold < 1 {
		return fmt.Errorf("%w: lock threshold must be at least 1, got %d", ErrInvalidConfig, c.LockThreshold)
	}
	if len(c.Gifts) != 0 && len(c.Gifts) != c.Players {
		return fmt.Errorf("%w: %d gifts listed for %d players", ErrInvalidConfig, len(c.Gifts), c.Players)
	}
	for i, g := range c.Gifts {
		if g.Name == "" {
			return fmt.Errorf("%w: gift %d has no name", ErrInvalidConfig, i+1)
		}
		if g.Value <= 0 {
			return fmt.Errorf("%w: gift %q value must be positive, got %d", ErrInvalidConfig, g.Name, g.Value)
		}
	}
	return c.Strategy.Validate()
}

// Validate checks thresholds are non-negative and chances are probabilities.
func (s Strategy) Validate() error {
	if s.HighValueThreshold < 0 || s.MediumValueThreshold < 0 {
		return fmt.Errorf("%w: value thresholds cannot be negative", ErrInvalidConfig)
	}
	chances := []struct {
		name  string
		value float64
	}{
		{"high steal chance", s.HighStealChance},
		{"medium steal chance", s.MediumStealChance},
		{"low steal chance", s.LowStealChance},
	}
	for _, c := range chances {
		if c.value < 0 || c.value > 1 {
			return fmt.Errorf("%w: %s must be within [0,1], got %v", ErrInvalidConfig, c.name, c.value)
		}
	}
	return nil
}
