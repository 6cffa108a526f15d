package game

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/whiteelephant/internal/randutil"
	"github.com/lox/whiteelephant/internal/registry"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// greedyConfig steals any gift worth 50 or more and never steals below that.
func greedyConfig(lock int, gifts ...registry.GiftSpec) Config {
	return Config{
		Players:       len(gifts),
		LockThreshold: lock,
		Strategy: Strategy{
			HighValueThreshold:   50,
			MediumValueThreshold: DefaultMediumValueThreshold,
			HighStealChance:      1.0,
			MediumStealChance:    0,
			LowStealChance:       0,
		},
		Gifts: gifts,
	}
}

func TestTwoPlayerSteal(t *testing.T) {
	cfg := greedyConfig(3,
		registry.GiftSpec{Name: "Espresso Machine", Value: 90},
		registry.GiftSpec{Name: "Novelty Socks", Value: 10},
	)
	eng, result, err := RunFullSimulation(cfg, randutil.Sequence(0), quietLogger())
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.True(t, result.Completed)
	assert.Empty(t, result.PlayersWithoutGifts)
	assert.Empty(t, result.UnopenedGifts)
	assert.Equal(t, 1, result.Stats.TotalSteals)
	assert.Equal(t, 0, result.Stats.LockedGifts)
	assert.Equal(t, "G1 (1x)", result.Stats.MostStolen.String())

	require.Len(t, result.Holdings, 2)
	assert.Equal(t, 2, result.Holdings[0].Gift.ID, "P1 ends with the socks")
	assert.Equal(t, 1, result.Holdings[1].Gift.ID, "P2 ends with the espresso machine")

	assert.Equal(t, []string{
		"=== P1's Turn ===",
		"  P1 unwraps G1: Espresso Machine",
		"=== P2's Turn ===",
		"  P2 steals G1: Espresso Machine from P1",
		"  P1 unwraps G2: Novelty Socks",
	}, eng.Transcript())

	h := eng.History()
	require.Equal(t, 8, h.Len())
	assert.Equal(t, 7, result.Stats.TotalActions)

	actions := make([]string, 0, h.Len())
	for _, s := range h.All() {
		actions = append(actions, s.Action)
	}
	assert.Equal(t, []string{
		"Initial State - All Gifts Wrapped",
		"P1 Turn",
		"P1 unwraps G1: Espresso Machine",
		"P2 Turn",
		"P2 steals G1: Espresso Machine from P1",
		"P1 unwraps G2: Novelty Socks",
		"Final State",
		"",
	}, actions)

	steal, _ := h.At(4)
	require.NotNil(t, steal.StealTransition)
	assert.Equal(t, StealTransition{From: "P1", To: "P2"}, *steal.StealTransition)
	assert.Equal(t, 1, steal.ChangedGiftID)
	g1, _ := steal.Gift(1)
	assert.Equal(t, GiftState{ID: 1, Owner: "P2", Steals: 1, Opened: true}, g1)
	g2, _ := steal.Gift(2)
	assert.False(t, g2.Opened)

	boundary, _ := h.At(3)
	assert.True(t, boundary.IsTurnStart)
	assert.Zero(t, boundary.ChangedGiftID)
	assert.Nil(t, boundary.StealTransition)

	final, _ := h.Last()
	assert.Equal(t, "", final.Action)
	assert.False(t, final.IsTurnStart)
}

func TestLowValueFirstGiftIsNotStolen(t *testing.T) {
	cfg := greedyConfig(3,
		registry.GiftSpec{Name: "Espresso Machine", Value: 90},
		registry.GiftSpec{Name: "Novelty Socks", Value: 10},
	)
	// P1 draws the last pool slot, so the socks come out first.
	_, result, err := RunFullSimulation(cfg, randutil.Sequence(0.99, 0.5, 0), quietLogger())
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 0, result.Stats.TotalSteals)
	assert.Equal(t, "None", result.Stats.MostStolen.String())
	assert.Equal(t, 2, result.Holdings[0].Gift.ID)
	assert.Equal(t, 1, result.Holdings[1].Gift.ID)
}

func TestLockOnFirstSteal(t *testing.T) {
	cfg := greedyConfig(1,
		registry.GiftSpec{Name: "A", Value: 90},
		registry.GiftSpec{Name: "B", Value: 80},
		registry.GiftSpec{Name: "C", Value: 10},
	)
	eng, result, err := RunFullSimulation(cfg, randutil.Sequence(0), quietLogger())
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Equal(t, 2, result.Stats.TotalSteals)
	assert.Equal(t, 2, result.Stats.LockedGifts)
	assert.Equal(t, "G1 (1x)", result.Stats.MostStolen.String(), "ties go to the lowest id")

	held := map[registry.Player]int{}
	for _, h := range result.Holdings {
		held[h.Player] = h.Gift.ID
	}
	assert.Equal(t, map[registry.Player]int{"P1": 3, "P2": 1, "P3": 2}, held)

	transcript := strings.Join(eng.Transcript(), "\n")
	assert.Contains(t, transcript, "    G1 is now LOCKED (1 steals)")
	assert.Contains(t, transcript, "    G2 is now LOCKED (1 steals)")

	// After each locking steal the victim unwraps rather than chasing the
	// locked gift.
	turns := eng.Turns()
	require.Len(t, turns, 3)
	assert.Equal(t, []string{
		"  P3 steals G2: B from P1",
		"    G2 is now LOCKED (1 steals)",
		"  P1 unwraps G3: C",
	}, turns[2].Actions)
	assert.Equal(t, 2, turns[2].FinalGiftID)
}

func TestStealChain(t *testing.T) {
	cfg := greedyConfig(3,
		registry.GiftSpec{Name: "A", Value: 90},
		registry.GiftSpec{Name: "B", Value: 80},
		registry.GiftSpec{Name: "C", Value: 10},
	)
	eng, result, err := RunFullSimulation(cfg, randutil.Sequence(0), quietLogger())
	require.NoError(t, err)
	require.True(t, result.Valid)

	turns := eng.Turns()
	require.Len(t, turns, 3)
	assert.Equal(t, []string{
		"  P3 steals G1: A from P2",
		"  P2 steals G2: B from P1",
		"  P1 steals G1: A from P3",
		"    G1 is now LOCKED (3 steals)",
		"  P3 steals G2: B from P2",
		"  P2 unwraps G3: C",
	}, turns[2].Actions)
	assert.Equal(t, 4, turns[2].Steals)
	assert.Equal(t, 4, result.Stats.LongestChain)

	assert.Equal(t, 5, result.Stats.TotalSteals)
	assert.Equal(t, 1, result.Stats.LockedGifts)
	assert.Equal(t, "G1 (3x)", result.Stats.MostStolen.String())
	assert.Equal(t, 14, eng.History().Len())
}

func TestSinglePlayer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Players = 1
	eng, result, err := RunFullSimulation(cfg, randutil.Float64(1), quietLogger())
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 5, eng.History().Len())
	assert.Equal(t, 0, result.Stats.TotalSteals)
}

func TestGameProperties(t *testing.T) {
	for seed := int64(1); seed <= 200; seed++ {
		cfg := DefaultConfig()
		cfg.Players = 1 + int(seed%12)
		cfg.LockThreshold = 1 + int(seed%4)

		eng, result, err := RunFullSimulation(cfg, randutil.Float64(seed), quietLogger())
		require.NoError(t, err, "seed %d", seed)
		checkGameProperties(t, seed, eng, result)
	}
}

func checkGameProperties(t *testing.T, seed int64, eng *Engine, result *Result) {
	t.Helper()
	cfg := eng.Config()

	require.True(t, result.Valid, "seed %d", seed)
	seen := map[int]bool{}
	for _, h := range result.Holdings {
		require.True(t, h.Has, "seed %d: %s has no gift", seed, h.Player)
		require.False(t, seen[h.Gift.ID], "seed %d: G%d held twice", seed, h.Gift.ID)
		seen[h.Gift.ID] = true
	}
	assert.Len(t, seen, cfg.Players)

	// Every gift is unwrapped exactly once.
	unwraps := map[int]int{}
	for _, line := range eng.Transcript() {
		if strings.Contains(line, " unwraps G") {
			id, err := unwrapID(line)
			require.NoError(t, err)
			unwraps[id]++
		}
	}
	for id := 1; id <= cfg.Players; id++ {
		assert.Equal(t, 1, unwraps[id], "seed %d: G%d unwrap count", seed, id)
	}

	states := eng.History().All()
	expected := 1 + 2
	for _, turn := range eng.Turns() {
		expected += 2 + turn.Steals
	}
	require.Len(t, states, expected, "seed %d", seed)

	for i := 1; i < len(states); i++ {
		prev, cur := states[i-1], states[i]
		for j, g := range cur.Gifts {
			p := prev.Gifts[j]
			assert.GreaterOrEqual(t, g.Steals, p.Steals, "seed %d: steal count fell", seed)
			if p.Locked {
				assert.True(t, g.Locked, "seed %d: lock reverted", seed)
			}
			assert.Equal(t, g.Steals >= cfg.LockThreshold, g.Locked, "seed %d: lock/steal mismatch", seed)
		}

		// The victim of a non-locking steal never takes the same gift back
		// on the very next action.
		if i+1 < len(states) && cur.StealTransition != nil {
			gift, _ := cur.Gift(cur.ChangedGiftID)
			next := states[i+1]
			if !gift.Locked && next.StealTransition != nil && next.StealTransition.To == cur.StealTransition.From {
				assert.NotEqual(t, cur.ChangedGiftID, next.ChangedGiftID, "seed %d: immediate steal-back", seed)
			}
		}
	}
}

func TestStrategyDecide(t *testing.T) {
	noDraw := func() float64 {
		t.Fatal("random source consulted")
		return 0
	}
	opened := []registry.Gift{
		{ID: 1, Value: 60},
		{ID: 2, Value: 80},
		{ID: 3, Value: 80},
		{ID: 4, Value: 95, Locked: true},
	}

	t.Run("nothing opened means unwrap", func(t *testing.T) {
		_, ok := DefaultStrategy().Decide(Decision{Wrapped: 3}, noDraw)
		assert.False(t, ok)
	})

	t.Run("locked and just-stolen gifts are skipped", func(t *testing.T) {
		only := []registry.Gift{{ID: 1, Value: 99}, {ID: 2, Value: 99, Locked: true}}
		_, ok := DefaultStrategy().Decide(Decision{Wrapped: 1, Opened: only, JustStolen: 1}, noDraw)
		assert.False(t, ok)
	})

	t.Run("empty pool forces a steal of the best gift", func(t *testing.T) {
		g, ok := DefaultStrategy().Decide(Decision{Wrapped: 0, Opened: opened}, noDraw)
		require.True(t, ok)
		assert.Equal(t, 2, g.ID, "ties resolve to the first opened")
	})

	t.Run("just stolen gift is excluded by identity", func(t *testing.T) {
		g, ok := DefaultStrategy().Decide(Decision{Wrapped: 0, Opened: opened, JustStolen: 2}, noDraw)
		require.True(t, ok)
		assert.Equal(t, 3, g.ID, "same value, different gift")
	})

	tiers := []struct {
		name  string
		value int
		hit   float64
		miss  float64
	}{
		{"high value", 80, 0.79, 0.81},
		{"medium value", 70, 0.59, 0.61},
		{"low value", 40, 0.29, 0.31},
	}
	for _, tc := range tiers {
		t.Run(tc.name, func(t *testing.T) {
			gifts := []registry.Gift{{ID: 1, Value: tc.value}}
			_, ok := DefaultStrategy().Decide(Decision{Wrapped: 1, Opened: gifts}, randutil.Sequence(tc.hit))
			assert.True(t, ok)
			_, ok = DefaultStrategy().Decide(Decision{Wrapped: 1, Opened: gifts}, randutil.Sequence(tc.miss))
			assert.False(t, ok)
		})
	}
}

func TestResetAndHistoryIsolation(t *testing.T) {
	eng, err := New(DefaultConfig(), randutil.Float64(9), quietLogger())
	require.NoError(t, err)
	require.Equal(t, 1, eng.History().Len())

	_, err = eng.Run()
	require.NoError(t, err)
	first := eng.History()
	firstLen := first.Len()

	snap, _ := first.At(2)
	snap.Gifts[0].Steals = 1000
	again, _ := first.At(2)
	assert.NotEqual(t, 1000, again.Gifts[0].Steals, "At hands out copies")

	require.NoError(t, eng.Reset(DefaultConfig()))
	assert.Equal(t, 1, eng.History().Len())
	initial, _ := eng.History().At(0)
	assert.Equal(t, "Initial State - All Gifts Wrapped", initial.Action)
	for _, g := range initial.Gifts {
		assert.Empty(t, g.Owner)
		assert.False(t, g.Opened)
	}
	assert.Empty(t, eng.Transcript())
	assert.Equal(t, firstLen, first.Len(), "earlier history is untouched by reset")

	_, err = eng.Run()
	require.NoError(t, err)
	assert.Equal(t, firstLen, first.Len(), "earlier history is untouched by a rerun")
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New(DefaultConfig(), nil, quietLogger())
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.Gifts = registry.ClassicGifts()[:3]
	_, err = New(cfg, randutil.Float64(1), quietLogger())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestStealWithoutOwnerIsAnInvariantFailure(t *testing.T) {
	eng, err := New(greedyConfig(3,
		registry.GiftSpec{Name: "A", Value: 90},
		registry.GiftSpec{Name: "B", Value: 10},
	), randutil.Sequence(0), quietLogger())
	require.NoError(t, err)

	summary := &TurnSummary{}
	_, err = eng.steal("P1", registry.Gift{ID: 1, Name: "A"}, summary)
	require.Error(t, err)

	var inv *InvariantError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, 1, inv.GiftID)
	assert.ErrorIs(t, err, ErrInvariant)
	assert.ErrorIs(t, err, registry.ErrUnowned)
	assert.Equal(t, []string{"  Error: Could not find victim for A"}, eng.Transcript())
}
