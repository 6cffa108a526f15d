// Package registry holds the canonical mutable state of one gift exchange:
// the seated players, the gift table, who holds what, and the pool of gifts
// still wrapped. Gifts and players live in id-indexed tables; callers only
// ever see value copies.
package registry

import (
	"fmt"
	"slices"
)

// StealOutcome reports what a steal changed.
type StealOutcome struct {
	Gift        Gift
	Victim      Player
	NewlyLocked bool
}

// Registry is not safe for concurrent use. One engine owns one registry.
type Registry struct {
	gifts     []Gift   // gifts[id-1]
	players   []Player // turn order
	owner     []int    // owner[id-1] = player index + 1, 0 when unowned
	holding   []int    // holding[playerIndex] = gift id, 0 when empty-handed
	available []int    // wrapped gift ids
}

// New returns a registry initialised by Reset.
func New(players int, specs []GiftSpec, rnd func() float64) (*Registry, error) {
	r := &Registry{}
	if err := r.Reset(players, specs, rnd); err != nil {
		return nil, err
	}
	return r, nil
}

// Reset seats players P1..Pn and lays out n wrapped gifts. An empty specs
// list synthesizes gifts from the name pool; otherwise it must hold exactly
// one entry per player.
func (r *Registry) Reset(players int, specs []GiftSpec, rnd func() float64) error {
	if players < 1 {
		return fmt.Errorf("registry needs at least one player, got %d", players)
	}
	if len(specs) == 0 {
		specs = SynthesizeGifts(players, rnd)
	} else if len(specs) != players {
		return fmt.Errorf("%w: %d gifts for %d players", ErrGiftCount, len(specs), players)
	}

	r.gifts = make([]Gift, players)
	r.players = make([]Player, players)
	r.owner = make([]int, players)
	r.holding = make([]int, players)
	r.available = make([]int, players)
	for i := 0; i < players; i++ {
		r.gifts[i] = Gift{ID: i + 1, Name: specs[i].Name, Value: specs[i].Value}
		r.players[i] = PlayerLabel(i + 1)
		r.available[i] = i + 1
	}
	return nil
}

// Size returns the number of seats, which is also the number of gifts.
func (r *Registry) Size() int {
	return len(r.gifts)
}

// Players returns the seated players in turn order.
func (r *Registry) Players() []Player {
	return slices.Clone(r.players)
}

// Gifts returns copies of every gift in id order.
func (r *Registry) Gifts() []Gift {
	return slices.Clone(r.gifts)
}

// Available returns the wrapped gift ids in pool order.
func (r *Registry) Available() []int {
	return slices.Clone(r.available)
}

// AvailableCount is len(Available()) without the copy.
func (r *Registry) AvailableCount() int {
	return len(r.available)
}

// GiftByID returns a copy of the gift with the given id.
func (r *Registry) GiftByID(id int) (Gift, error) {
	if id < 1 || id > len(r.gifts) {
		return Gift{}, &NotFoundError{ID: id}
	}
	return r.gifts[id-1], nil
}

// OwnerOf returns the player currently holding gift id.
func (r *Registry) OwnerOf(id int) (Player, bool) {
	if id < 1 || id > len(r.owner) || r.owner[id-1] == 0 {
		return "", false
	}
	return r.players[r.owner[id-1]-1], true
}

// HeldBy returns the id of the gift p holds.
func (r *Registry) HeldBy(p Player) (int, bool) {
	idx := r.playerIndex(p)
	if idx < 0 || r.holding[idx] == 0 {
		return 0, false
	}
	return r.holding[idx], true
}

// Opened reports whether gift id has left the wrapped pool.
func (r *Registry) Opened(id int) bool {
	if id < 1 || id > len(r.gifts) {
		return false
	}
	return !slices.Contains(r.available, id)
}

// Unwrap removes the gift at poolIndex from the wrapped pool and hands it
// to p, who must be empty-handed.
func (r *Registry) Unwrap(p Player, poolIndex int) (Gift, error) {
	idx := r.playerIndex(p)
	if idx < 0 {
		return Gift{}, fmt.Errorf("%w: %s", ErrUnknownPlayer, p)
	}
	if poolIndex < 0 || poolIndex >= len(r.available) {
		return Gift{}, fmt.Errorf("%w: %d of %d", ErrPoolIndex, poolIndex, len(r.available))
	}
	if r.holding[idx] != 0 {
		return Gift{}, fmt.Errorf("%w: %s holds G%d", ErrAlreadyHolding, p, r.holding[idx])
	}

	id := r.available[poolIndex]
	r.available = slices.Delete(r.available, poolIndex, poolIndex+1)
	r.owner[id-1] = idx + 1
	r.holding[idx] = id
	return r.gifts[id-1], nil
}

// Steal moves gift id from its current owner to thief, bumps its steal
// count, and locks it once the count reaches lockThreshold. A lock is never
// undone.
func (r *Registry) Steal(thief Player, id, lockThreshold int) (StealOutcome, error) {
	if id < 1 || id > len(r.gifts) {
		return StealOutcome{}, &NotFoundError{ID: id}
	}
	thiefIdx := r.playerIndex(thief)
	if thiefIdx < 0 {
		return StealOutcome{}, fmt.Errorf("%w: %s", ErrUnknownPlayer, thief)
	}
	g := &r.gifts[id-1]
	if g.Locked {
		return StealOutcome{}, fmt.Errorf("%w: %s", ErrLocked, g.Label())
	}
	victimIdx := r.owner[id-1] - 1
	if victimIdx < 0 {
		return StealOutcome{}, fmt.Errorf("%w: %s", ErrUnowned, g.Label())
	}
	if r.holding[thiefIdx] != 0 {
		return StealOutcome{}, fmt.Errorf("%w: %s holds G%d", ErrAlreadyHolding, thief, r.holding[thiefIdx])
	}

	g.Steals++
	newlyLocked := false
	if g.Steals >= lockThreshold {
		g.Locked = true
		newlyLocked = true
	}

	r.holding[victimIdx] = 0
	r.holding[thiefIdx] = id
	r.owner[id-1] = thiefIdx + 1

	return StealOutcome{
		Gift:        *g,
		Victim:      r.players[victimIdx],
		NewlyLocked: newlyLocked,
	}, nil
}

func (r *Registry) playerIndex(p Player) int {
	for i, candidate := range r.players {
		if candidate == p {
			return i
		}
	}
	return -1
}
