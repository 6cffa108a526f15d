package replay

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/whiteelephant/internal/game"
)

// ErrPlaying is returned by Start while a previous run is still ticking.
var ErrPlaying = errors.New("auto-play already running")

var errFinished = errors.New("replay finished")

// StepFunc observes each snapshot the auto-player moves onto.
type StepFunc func(index int, state game.GameState)

// AutoPlayer advances a Cursor on a fixed interval until the log ends or
// it is stopped. While it runs the cursor must only be read through the
// AutoPlayer.
type AutoPlayer struct {
	clock  quartz.Clock
	logger *log.Logger

	mu      sync.Mutex
	cursor  *Cursor
	running bool
	cancel  context.CancelFunc
	waiter  quartz.Waiter
}

// NewAutoPlayer wraps cursor. Pass quartz.NewReal() outside tests.
func NewAutoPlayer(cursor *Cursor, clock quartz.Clock, logger *log.Logger) *AutoPlayer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &AutoPlayer{
		clock:  clock,
		logger: logger.WithPrefix("replay"),
		cursor: cursor,
	}
}

// Start begins stepping once per interval and returns immediately.
func (a *AutoPlayer) Start(ctx context.Context, interval time.Duration, onStep StepFunc) error {
	if interval <= 0 {
		return errors.New("auto-play interval must be positive")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running {
		return ErrPlaying
	}
	if a.cursor.Done() {
		a.logger.Debug("Nothing left to replay", "index", a.cursor.Index())
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	a.running = true
	a.cancel = cancel
	a.waiter = a.clock.TickerFunc(ctx, interval, func() error {
		return a.tick(onStep)
	}, "replay")
	a.logger.Debug("Auto-play started", "interval", interval, "index", a.cursor.Index())
	return nil
}

func (a *AutoPlayer) tick(onStep StepFunc) error {
	a.mu.Lock()
	if !a.running || !a.cursor.Step() {
		a.running = false
		a.mu.Unlock()
		return errFinished
	}
	index := a.cursor.Index()
	state, _ := a.cursor.Current()
	done := a.cursor.Done()
	if done {
		a.running = false
	}
	a.mu.Unlock()

	if onStep != nil {
		onStep(index, state)
	}
	if done {
		return errFinished
	}
	return nil
}

// Stop halts auto-play at the current index. It is safe to call when not
// running.
func (a *AutoPlayer) Stop() {
	a.mu.Lock()
	cancel := a.cancel
	if a.running {
		a.logger.Debug("Auto-play stopped", "index", a.cursor.Index())
	}
	a.running = false
	a.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Wait blocks until auto-play ends. Reaching the end of the log or being
// stopped is not an error.
func (a *AutoPlayer) Wait() error {
	a.mu.Lock()
	w, cancel := a.waiter, a.cancel
	a.mu.Unlock()
	if w == nil {
		return nil
	}
	err := w.Wait()
	cancel()
	if errors.Is(err, errFinished) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Running reports whether the ticker is still stepping.
func (a *AutoPlayer) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// Index returns the cursor position.
func (a *AutoPlayer) Index() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cursor.Index()
}
