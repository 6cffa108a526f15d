package game

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/whiteelephant/internal/registry"
)

const initialAction = "Initial State - All Gifts Wrapped"

// TurnSummary describes one seat's turn once its chain has resolved.
type TurnSummary struct {
	Turn        int
	Player      registry.Player
	Actions     []string
	Steals      int
	FinalGiftID int
}

// Engine drives one game at a time. It is single-threaded: Run executes
// every turn to completion without blocking.
type Engine struct {
	cfg    Config
	rnd    func() float64
	logger *log.Logger

	reg        *registry.Registry
	opened     []int // unwrap order
	states     []GameState
	transcript []string
	turns      []TurnSummary
	completed  bool
}

// New validates cfg and returns an engine holding its initial snapshot.
func New(cfg Config, rnd func() float64, logger *log.Logger) (*Engine, error) {
	if rnd == nil {
		return nil, errors.New("game engine needs a random source")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	e := &Engine{
		rnd:    rnd,
		logger: logger.WithPrefix("engine"),
		reg:    &registry.Registry{},
	}
	if err := e.Reset(cfg); err != nil {
		return nil, err
	}
	return e, nil
}

// RunFullSimulation builds an engine for cfg, plays the whole game and
// returns both so the caller can read the history.
func RunFullSimulation(cfg Config, rnd func() float64, logger *log.Logger) (*Engine, *Result, error) {
	e, err := New(cfg, rnd, logger)
	if err != nil {
		return nil, nil, err
	}
	result, err := e.Run()
	return e, result, err
}

// Config returns the configuration of the current game.
func (e *Engine) Config() Config {
	return e.cfg
}

// Reset reinitialises all state for cfg and captures a fresh initial
// snapshot without playing any turns.
func (e *Engine) Reset(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := e.reg.Reset(cfg.Players, cfg.Gifts, e.rnd); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	e.cfg = cfg
	e.opened = nil
	e.states = nil
	e.transcript = nil
	e.turns = nil
	e.completed = false
	e.capture(initialAction, false, 0, nil)
	return nil
}

// Run plays one turn per seat and returns the analysis of the terminal
// state. An engine that has already played is reset first. An invariant
// failure stops the game early; the partial Result is still returned
// alongside the *InvariantError.
func (e *Engine) Run() (*Result, error) {
	if len(e.states) > 1 {
		if err := e.Reset(e.cfg); err != nil {
			return nil, err
		}
	}
	e.logger.Debug("Starting game", "players", e.cfg.Players, "lockThreshold", e.cfg.LockThreshold)

	for i := 0; i < e.reg.Size(); i++ {
		if _, err := e.executeTurn(i); err != nil {
			e.logger.Error("Game aborted", "turn", i+1, "error", err)
			return e.Analyze(), err
		}
	}

	e.capture("Final State", true, 0, nil)
	e.capture("", false, 0, nil)
	e.completed = true

	result := e.Analyze()
	e.logger.Debug("Game complete",
		"valid", result.Valid,
		"actions", result.Stats.TotalActions,
		"steals", result.Stats.TotalSteals,
		"locked", result.Stats.LockedGifts)
	return result, nil
}

// History returns the snapshot log captured so far.
func (e *Engine) History() History {
	return History{states: e.states[:len(e.states):len(e.states)]}
}

// Transcript returns the human-readable log lines. Turn headers are flush
// left, actions are indented two spaces and lock notices four.
func (e *Engine) Transcript() []string {
	out := make([]string, len(e.transcript))
	copy(out, e.transcript)
	return out
}

// Turns returns one summary per completed turn.
func (e *Engine) Turns() []TurnSummary {
	out := make([]TurnSummary, len(e.turns))
	for i, t := range e.turns {
		out[i] = t
		out[i].Actions = append([]string(nil), t.Actions...)
	}
	return out
}

// Gifts returns copies of the current gift table.
func (e *Engine) Gifts() []registry.Gift {
	return e.reg.Gifts()
}

// StealDecision runs the heuristic for player against the live table.
func (e *Engine) StealDecision(player registry.Player, justStolen int) (registry.Gift, bool) {
	return e.cfg.Strategy.Decide(e.decision(player, justStolen), e.rnd)
}

func (e *Engine) decision(player registry.Player, justStolen int) Decision {
	opened := make([]registry.Gift, 0, len(e.opened))
	for _, id := range e.opened {
		g, err := e.reg.GiftByID(id)
		if err != nil {
			continue
		}
		opened = append(opened, g)
	}
	return Decision{
		Player:     player,
		Wrapped:    e.reg.AvailableCount(),
		Opened:     opened,
		JustStolen: justStolen,
	}
}

func (e *Engine) executeTurn(index int) (TurnSummary, error) {
	owner := registry.PlayerLabel(index + 1)
	summary := TurnSummary{Turn: index + 1, Player: owner}

	e.transcript = append(e.transcript, fmt.Sprintf("=== %s's Turn ===", owner))
	e.capture(fmt.Sprintf("%s Turn", owner), true, 0, nil)

	active := owner
	justStolen := 0
	for {
		target, steal := e.StealDecision(active, justStolen)
		if !steal {
			if err := e.unwrap(active, &summary); err != nil {
				return summary, err
			}
			break
		}

		out, err := e.steal(active, target, &summary)
		if err != nil {
			return summary, err
		}
		summary.Steals++

		// The victim decides next. They may not take back the gift they
		// just lost unless it locked, in which case nobody can.
		active = out.Victim
		justStolen = out.Gift.ID
		if out.Gift.Locked {
			justStolen = 0
		}
	}

	summary.FinalGiftID, _ = e.reg.HeldBy(owner)
	e.turns = append(e.turns, summary)
	return summary, nil
}

func (e *Engine) unwrap(player registry.Player, summary *TurnSummary) error {
	wrapped := e.reg.AvailableCount()
	if wrapped == 0 {
		return &InvariantError{Player: player, Reason: "no wrapped gift left to unwrap"}
	}
	pick := int(e.rnd() * float64(wrapped))
	if pick >= wrapped {
		pick = wrapped - 1
	}

	g, err := e.reg.Unwrap(player, pick)
	if err != nil {
		return &InvariantError{Player: player, Reason: "unwrap failed", Err: err}
	}
	e.opened = append(e.opened, g.ID)

	action := fmt.Sprintf("%s unwraps %s", player, g)
	e.note(summary, "  "+action)
	e.capture(action, false, g.ID, nil)
	e.logger.Debug("Unwrap", "player", player, "gift", g.Label(), "value", g.Value)
	return nil
}

func (e *Engine) steal(thief registry.Player, target registry.Gift, summary *TurnSummary) (registry.StealOutcome, error) {
	out, err := e.reg.Steal(thief, target.ID, e.cfg.LockThreshold)
	if err != nil {
		if errors.Is(err, registry.ErrUnowned) {
			e.note(summary, fmt.Sprintf("  Error: Could not find victim for %s", target.Name))
			return out, &InvariantError{Player: thief, GiftID: target.ID, Reason: "steal target has no owner", Err: err}
		}
		return out, &InvariantError{Player: thief, GiftID: target.ID, Reason: "steal failed", Err: err}
	}

	action := fmt.Sprintf("%s steals %s from %s", thief, out.Gift, out.Victim)
	e.note(summary, "  "+action)
	e.capture(action, false, out.Gift.ID, &StealTransition{From: out.Victim, To: thief})
	e.logger.Debug("Steal", "player", thief, "gift", out.Gift.Label(), "victim", out.Victim, "steals", out.Gift.Steals)

	if out.NewlyLocked {
		e.note(summary, fmt.Sprintf("    %s is now LOCKED (%d steals)", out.Gift.Label(), e.cfg.LockThreshold))
		e.logger.Debug("Lock", "gift", out.Gift.Label())
	}
	return out, nil
}

func (e *Engine) note(summary *TurnSummary, line string) {
	e.transcript = append(e.transcript, line)
	summary.Actions = append(summary.Actions, line)
}

func (e *Engine) capture(action string, isTurnStart bool, changedGiftID int, transition *StealTransition) {
	gifts := e.reg.Gifts()
	state := GameState{
		Action:          action,
		IsTurnStart:     isTurnStart,
		ChangedGiftID:   changedGiftID,
		StealTransition: transition,
		Gifts:           make([]GiftState, len(gifts)),
	}
	for i, g := range gifts {
		owner, _ := e.reg.OwnerOf(g.ID)
		state.Gifts[i] = GiftState{
			ID:     g.ID,
			Owner:  owner,
			Steals: g.Steals,
			Locked: g.Locked,
			Opened: owner != "" || g.Steals > 0,
		}
	}
	e.states = append(e.states, state)
}
