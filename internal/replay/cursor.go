// Package replay steps through a finished game's snapshot log. It only ever
// reads a game.History; the engine that produced it is never touched.
package replay

import (
	"fmt"

	"github.com/lox/whiteelephant/internal/game"
)

// Cursor is an external read position over a History. It starts on the
// first snapshot.
type Cursor struct {
	history game.History
	index   int
}

// NewCursor positions a cursor on the first snapshot of h.
func NewCursor(h game.History) *Cursor {
	return &Cursor{history: h}
}

// Len returns the number of snapshots in the log.
func (c *Cursor) Len() int {
	return c.history.Len()
}

// Index returns the current position.
func (c *Cursor) Index() int {
	return c.index
}

// Current returns the snapshot under the cursor.
func (c *Cursor) Current() (game.GameState, bool) {
	return c.history.At(c.index)
}

// Done reports whether the cursor is on the last snapshot.
func (c *Cursor) Done() bool {
	return c.index >= c.history.Len()-1
}

// Step advances one snapshot. It returns false, without moving, at the end.
func (c *Cursor) Step() bool {
	if c.Done() {
		return false
	}
	c.index++
	return true
}

// Seek jumps straight to snapshot i.
func (c *Cursor) Seek(i int) error {
	if i < 0 || i >= c.history.Len() {
		return fmt.Errorf("replay index %d out of range [0,%d)", i, c.history.Len())
	}
	c.index = i
	return nil
}

// Rewind returns to the first snapshot.
func (c *Cursor) Rewind() {
	c.index = 0
}

// Visited returns every snapshot from the start up to and including the
// cursor, which is what a step-through table shows.
func (c *Cursor) Visited() []game.GameState {
	all := c.history.All()
	if len(all) == 0 {
		return nil
	}
	return all[:c.index+1]
}
