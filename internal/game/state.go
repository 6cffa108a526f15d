package game

import (
	"slices"

	"github.com/lox/whiteelephant/internal/registry"
)

// StealTransition records who lost a gift to whom.
type StealTransition struct {
	From registry.Player `yaml:"from"`
	To   registry.Player `yaml:"to"`
}

// GiftState is one gift's position in a snapshot.
type GiftState struct {
	ID     int             `yaml:"id"`
	Owner  registry.Player `yaml:"owner,omitempty"`
	Steals int             `yaml:"steals"`
	Locked bool            `yaml:"locked"`
	Opened bool            `yaml:"opened"`
}

// GameState is the snapshot captured after one atomic action. Turn-start
// and final-boundary snapshots carry IsTurnStart and change no gift.
type GameState struct {
	Action          string           `yaml:"action"`
	IsTurnStart     bool             `yaml:"is_turn_start"`
	ChangedGiftID   int              `yaml:"changed_gift_id,omitempty"`
	StealTransition *StealTransition `yaml:"steal_transition,omitempty"`
	Gifts           []GiftState      `yaml:"gifts"`
}

// Gift returns the state of gift id in this snapshot.
func (s GameState) Gift(id int) (GiftState, bool) {
	if id < 1 || id > len(s.Gifts) {
		return GiftState{}, false
	}
	return s.Gifts[id-1], true
}

// OwnerOf returns the gift id p holds in this snapshot.
func (s GameState) OwnerOf(p registry.Player) (int, bool) {
	for _, g := range s.Gifts {
		if g.Owner == p {
			return g.ID, true
		}
	}
	return 0, false
}

func (s GameState) clone() GameState {
	out := s
	out.Gifts = slices.Clone(s.Gifts)
	if s.StealTransition != nil {
		t := *s.StealTransition
		out.StealTransition = &t
	}
	return out
}

// History is an ordered, append-only snapshot log. Every accessor hands out
// copies, so a History can be shared with any number of readers.
type History struct {
	states []GameState
}

// NewHistory builds a History from previously captured states, for example
// a log loaded back from disk.
func NewHistory(states []GameState) History {
	h := History{states: make([]GameState, len(states))}
	for i, s := range states {
		h.states[i] = s.clone()
	}
	return h
}

// Len returns the number of snapshots.
func (h History) Len() int {
	return len(h.states)
}

// At returns snapshot i.
func (h History) At(i int) (GameState, bool) {
	if i < 0 || i >= len(h.states) {
		return GameState{}, false
	}
	return h.states[i].clone(), true
}

// All returns every snapshot in capture order.
func (h History) All() []GameState {
	out := make([]GameState, len(h.states))
	for i, s := range h.states {
		out[i] = s.clone()
	}
	return out
}

// Last returns the final snapshot.
func (h History) Last() (GameState, bool) {
	return h.At(len(h.states) - 1)
}
