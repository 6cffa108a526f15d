package game

import (
	"fmt"
	"slices"

	"github.com/lox/whiteelephant/internal/registry"
)

// MostStolen names the gift with the highest steal count.
type MostStolen struct {
	GiftID int
	Steals int
}

// String renders "G3 (2x)", or "None" when nothing was stolen.
func (m *MostStolen) String() string {
	if m == nil {
		return "None"
	}
	return fmt.Sprintf("G%d (%dx)", m.GiftID, m.Steals)
}

// Stats aggregates one finished game.
type Stats struct {
	TotalActions int // snapshots after the initial state
	TotalSteals  int
	LockedGifts  int
	MostStolen   *MostStolen // nil when no steal happened
	LongestChain int         // most steals within a single turn
}

// Holding pairs a player with the gift they end up with.
type Holding struct {
	Player registry.Player
	Gift   registry.Gift
	Has    bool
}

// Result is the terminal summary of a game. Valid requires every player to
// hold a gift and every gift to have been unwrapped.
type Result struct {
	Valid               bool
	Completed           bool
	PlayersWithoutGifts []registry.Player
	UnopenedGifts       []registry.Gift
	Stats               Stats
	Holdings            []Holding
	Gifts               []registry.Gift
}

// Analyze validates the current table and computes the game statistics.
func (e *Engine) Analyze() *Result {
	gifts := e.reg.Gifts()
	result := &Result{
		Completed:           e.completed,
		PlayersWithoutGifts: []registry.Player{},
		UnopenedGifts:       []registry.Gift{},
		Gifts:               gifts,
	}

	for _, p := range e.reg.Players() {
		h := Holding{Player: p}
		if id, ok := e.reg.HeldBy(p); ok {
			h.Gift, _ = e.reg.GiftByID(id)
			h.Has = true
		} else {
			result.PlayersWithoutGifts = append(result.PlayersWithoutGifts, p)
		}
		result.Holdings = append(result.Holdings, h)
	}

	wrapped := e.reg.Available()
	var most *MostStolen
	for _, g := range gifts {
		if slices.Contains(wrapped, g.ID) {
			result.UnopenedGifts = append(result.UnopenedGifts, g)
		}
		result.Stats.TotalSteals += g.Steals
		if g.Locked {
			result.Stats.LockedGifts++
		}
		if g.Steals > 0 && (most == nil || g.Steals > most.Steals) {
			most = &MostStolen{GiftID: g.ID, Steals: g.Steals}
		}
	}
	result.Stats.MostStolen = most
	result.Stats.TotalActions = len(e.states) - 1
	for _, t := range e.turns {
		result.Stats.LongestChain = max(result.Stats.LongestChain, t.Steals)
	}

	result.Valid = len(result.PlayersWithoutGifts) == 0 && len(result.UnopenedGifts) == 0
	return result
}
