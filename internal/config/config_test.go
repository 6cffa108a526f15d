package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/whiteelephant/internal/game"
	"github.com/lox/whiteelephant/internal/registry"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, game.DefaultConfig(), cfg.GameConfig())
	assert.NoError(t, cfg.Validate())
}

func TestParse(t *testing.T) {
	t.Run("full file", func(t *testing.T) {
		src := `
players        = 3
lock_threshold = 2
seed           = 99

strategy {
  high_value_threshold   = 80
  medium_value_threshold = 60
  high_steal_chance      = 1.0
  medium_steal_chance    = 0.5
  low_steal_chance       = 0
}

gift "Bluetooth Speaker" { value = 85 }
gift "Luxury Candle Set" { value = 60 }
gift "Novelty Socks" { value = 12 }
`
		cfg, err := Parse([]byte(src), "party.hcl")
		require.NoError(t, err)
		assert.Equal(t, int64(99), cfg.Seed)

		gc := cfg.GameConfig()
		assert.Equal(t, 3, gc.Players)
		assert.Equal(t, 2, gc.LockThreshold)
		assert.Equal(t, game.Strategy{
			HighValueThreshold:   80,
			MediumValueThreshold: 60,
			HighStealChance:      1.0,
			MediumStealChance:    0.5,
			LowStealChance:       0,
		}, gc.Strategy)
		assert.Equal(t, []registry.GiftSpec{
			{Name: "Bluetooth Speaker", Value: 85},
			{Name: "Luxury Candle Set", Value: 60},
			{Name: "Novelty Socks", Value: 12},
		}, gc.Gifts)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("partial strategy keeps defaults", func(t *testing.T) {
		cfg, err := Parse([]byte("strategy {\n  low_steal_chance = 0\n}\n"), "partial.hcl")
		require.NoError(t, err)

		gc := cfg.GameConfig()
		assert.Equal(t, game.DefaultPlayers, gc.Players)
		assert.Equal(t, game.DefaultLockThreshold, gc.LockThreshold)
		assert.Equal(t, 0.0, gc.Strategy.LowStealChance)
		assert.Equal(t, game.DefaultHighStealChance, gc.Strategy.HighStealChance)
		assert.Empty(t, gc.Gifts)
	})

	t.Run("player count follows the gift list", func(t *testing.T) {
		cfg, err := Parse([]byte(`gift "A" { value = 5 }
gift "B" { value = 7 }`), "gifts.hcl")
		require.NoError(t, err)
		assert.Nil(t, cfg.Players)
		assert.Equal(t, 2, cfg.GameConfig().Players)
	})

	t.Run("explicit zero counts fail validation", func(t *testing.T) {
		tests := []struct {
			name string
			src  string
		}{
			{"zero players", "players = 0\n"},
			{"zero lock threshold", "lock_threshold = 0\n"},
			{"negative players", "players = -2\n"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				cfg, err := Parse([]byte(tt.src), "zero.hcl")
				require.NoError(t, err)
				assert.ErrorIs(t, cfg.Validate(), game.ErrInvalidConfig)
			})
		}
	})

	t.Run("mismatched gift list fails validation", func(t *testing.T) {
		cfg, err := Parse([]byte(`players = 4
gift "A" { value = 5 }`), "bad.hcl")
		require.NoError(t, err)
		assert.ErrorIs(t, cfg.Validate(), game.ErrInvalidConfig)
	})

	t.Run("out of range chance fails validation", func(t *testing.T) {
		cfg, err := Parse([]byte("strategy {\n  high_steal_chance = 1.5\n}\n"), "bad.hcl")
		require.NoError(t, err)
		assert.ErrorIs(t, cfg.Validate(), game.ErrInvalidConfig)
	})

	t.Run("syntax errors are reported", func(t *testing.T) {
		_, err := Parse([]byte("players = = 3"), "broken.hcl")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse HCL file")
	})

	t.Run("unknown attributes are rejected", func(t *testing.T) {
		_, err := Parse([]byte("timer_swaps = true"), "unknown.hcl")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode HCL")
	})
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.hcl")
	require.NoError(t, os.WriteFile(path, []byte("players = 5\nlock_threshold = 1\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	gc := cfg.GameConfig()
	assert.Equal(t, 5, gc.Players)
	assert.Equal(t, 1, gc.LockThreshold)
}
