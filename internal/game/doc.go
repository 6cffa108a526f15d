// Package game implements the turn-resolution engine of a white elephant
// gift exchange.
//
// Each player takes one turn in seat order. On a turn the active player
// either unwraps a random wrapped gift, which ends the turn, or steals the
// most valuable opened gift that is still stealable. A steal hands the turn
// to the victim, who decides again, so one turn can run a chain of steals
// before someone finally unwraps. A gift stolen LockThreshold times is
// locked and never moves again.
//
// # Basic Usage
//
//	eng, err := game.New(game.DefaultConfig(), randutil.Float64(42), logger)
//	if err != nil {
//	    return err
//	}
//	result, err := eng.Run()
//
// # Replay
//
// The engine captures a GameState after every atomic action. History
// exposes that log read-only; nothing handed out by the engine aliases its
// live state, so a finished log can be traversed while the engine is reset
// and run again.
//
// # Deterministic Testing
//
// All randomness flows through a single func() float64 supplied to New.
// Pass randutil.Sequence to pin every draw, or randutil.Float64(seed) for a
// reproducible game.
package game
