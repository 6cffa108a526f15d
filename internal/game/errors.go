package game

import (
	"errors"
	"fmt"

	"github.com/lox/whiteelephant/internal/registry"
)

// ErrInvariant marks a broken internal-consistency rule. The algorithm makes
// these unreachable, so seeing one means a bug.
var ErrInvariant = errors.New("internal consistency failure")

// InvariantError records which action broke and why.
type InvariantError struct {
	Player registry.Player
	GiftID int
	Reason string
	Err    error
}

func (e *InvariantError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrInvariant, e.Reason)
	if e.GiftID != 0 {
		msg = fmt.Sprintf("%s (player %s, gift G%d)", msg, e.Player, e.GiftID)
	} else if e.Player != "" {
		msg = fmt.Sprintf("%s (player %s)", msg, e.Player)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both ErrInvariant and the registry error underneath.
func (e *InvariantError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvariant}
	}
	return []error{ErrInvariant, e.Err}
}
