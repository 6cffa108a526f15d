package registry

import (
	"errors"
	"fmt"
)

// Player is a seat label such as "P1". Labels follow turn order.
type Player string

// PlayerLabel returns the label for the nth player (1-based).
func PlayerLabel(n int) Player {
	return Player(fmt.Sprintf("P%d", n))
}

// GiftSpec describes a gift before the game starts.
type GiftSpec struct {
	Name  string `yaml:"name"`
	Value int    `yaml:"value"`
}

// Gift is a value copy of one registry entry. Mutating it has no effect on
// the registry it came from.
type Gift struct {
	ID     int
	Name   string
	Value  int
	Steals int
	Locked bool
}

// Label returns the short form used in transcripts, e.g. "G3".
func (g Gift) Label() string {
	return fmt.Sprintf("G%d", g.ID)
}

// String returns "G3: Board Game Collection".
func (g Gift) String() string {
	return fmt.Sprintf("%s: %s", g.Label(), g.Name)
}

// NotFoundError is returned when a gift id falls outside 1..N.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("gift %d not found", e.ID)
}

var (
	// ErrUnowned means a steal targeted a gift nobody holds.
	ErrUnowned = errors.New("gift has no owner")
	// ErrAlreadyHolding means a player was handed a second gift.
	ErrAlreadyHolding = errors.New("player already holds a gift")
	// ErrLocked means a steal targeted a locked gift.
	ErrLocked = errors.New("gift is locked")
	// ErrUnknownPlayer means a player label is not seated in this game.
	ErrUnknownPlayer = errors.New("unknown player")
	// ErrPoolIndex means an unwrap picked a position outside the wrapped pool.
	ErrPoolIndex = errors.New("wrapped pool index out of range")
	// ErrGiftCount means an explicit gift list does not match the player count.
	ErrGiftCount = errors.New("gift list length does not match player count")
)

// namePool feeds synthesized gift lists. Names repeat with a numeric suffix
// once the pool runs out.
var namePool = []string{
	"Bluetooth Speaker",
	"Luxury Candle Set",
	"Board Game Collection",
	"Electric Wine Opener",
	"Cozy Throw Blanket",
	"Gourmet Coffee Set",
	"Portable Phone Charger",
	"Kitchen Gadget Bundle",
	"Wireless Earbuds",
	"Hot Sauce Sampler",
	"Desk Plant",
	"Puzzle Box",
	"Scented Bath Bombs",
	"Mini Projector",
	"Cast Iron Skillet",
	"Novelty Socks",
}

// ClassicGifts returns the fixed eight-gift office party catalogue.
func ClassicGifts() []GiftSpec {
	return []GiftSpec{
		{Name: "Bluetooth Speaker", Value: 85},
		{Name: "Luxury Candle Set", Value: 60},
		{Name: "Board Game Collection", Value: 75},
		{Name: "Electric Wine Opener", Value: 50},
		{Name: "Cozy Throw Blanket", Value: 70},
		{Name: "Gourmet Coffee Set", Value: 55},
		{Name: "Portable Phone Charger", Value: 90},
		{Name: "Kitchen Gadget Bundle", Value: 65},
	}
}

// SynthesizeGifts builds n gifts from the name pool with values drawn
// uniformly from [50,99].
func SynthesizeGifts(n int, rnd func() float64) []GiftSpec {
	specs := make([]GiftSpec, n)
	for i := range specs {
		name := namePool[i%len(namePool)]
		if cycle := i / len(namePool); cycle > 0 {
			name = fmt.Sprintf("%s %d", name, cycle+1)
		}
		value := 50 + int(rnd()*50)
		if value > 99 {
			value = 99
		}
		specs[i] = GiftSpec{Name: name, Value: value}
	}
	return specs
}
