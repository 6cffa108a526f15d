package game

import "github.com/lox/whiteelephant/internal/registry"

// Decision is the view of the table a player decides from.
type Decision struct {
	Player registry.Player
	// Wrapped is how many gifts remain in the wrapped pool.
	Wrapped int
	// Opened lists every opened gift in unwrap order.
	Opened []registry.Gift
	// JustStolen is the id of the gift just taken from Player, or 0.
	JustStolen int
}

// Decide returns the gift to steal, or false to unwrap instead. The random
// source is consulted only when both stealing and unwrapping are possible.
func (s Strategy) Decide(d Decision, rnd func() float64) (registry.Gift, bool) {
	if len(d.Opened) == 0 {
		return registry.Gift{}, false
	}

	best, ok := bestStealable(d.Opened, d.JustStolen)
	if !ok {
		return registry.Gift{}, false
	}

	// Nothing left to unwrap: the player has to steal.
	if d.Wrapped == 0 {
		return best, true
	}

	if rnd() < s.chanceFor(best.Value) {
		return best, true
	}
	return registry.Gift{}, false
}

func (s Strategy) chanceFor(value int) float64 {
	switch {
	case value >= s.HighValueThreshold:
		return s.HighStealChance
	case value >= s.MediumValueThreshold:
		return s.MediumStealChance
	default:
		return s.LowStealChance
	}
}

// bestStealable picks the highest value gift that is unlocked and is not
// the one just stolen. Ties go to the earliest opened.
func bestStealable(opened []registry.Gift, justStolen int) (registry.Gift, bool) {
	var best registry.Gift
	found := false
	for _, g := range opened {
		if g.Locked || (justStolen != 0 && g.ID == justStolen) {
			continue
		}
		if !found || g.Value > best.Value {
			best = g
			found = true
		}
	}
	return best, found
}
