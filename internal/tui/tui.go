// Package tui is an interactive step-through viewer for a finished game.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/whiteelephant/internal/display"
	"github.com/lox/whiteelephant/internal/game"
	"github.com/lox/whiteelephant/internal/replay"
)

// DefaultInterval is the auto-play delay between snapshots.
const DefaultInterval = 800 * time.Millisecond

var (
	titleStyle = display.HeaderStyle.Padding(0, 1)

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	statusStyle = display.InfoStyle.Italic(true)
)

// Options configures a viewer.
type Options struct {
	// GiftNames maps gift id-1 to a display name. Missing names fall back
	// to the gift label.
	GiftNames []string
	Interval  time.Duration
	Logger    *log.Logger
}

type tickMsg struct {
	gen int
}

// Model is the bubbletea model for the replay viewer. It only reads the
// History handed to it.
type Model struct {
	cursor   *replay.Cursor
	names    []string
	interval time.Duration
	logger   *log.Logger

	keys     keyMap
	help     help.Model
	viewport viewport.Model

	auto     bool
	gen      int
	width    int
	height   int
	quitting bool
}

// NewModel builds a viewer positioned on the first snapshot of h.
func NewModel(h game.History, opts Options) *Model {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	m := &Model{
		cursor:   replay.NewCursor(h),
		names:    opts.GiftNames,
		interval: opts.Interval,
		logger:   opts.Logger.WithPrefix("tui"),
		keys:     defaultKeys(),
		help:     help.New(),
		viewport: viewport.New(80, 12),
	}
	m.refresh()
	return m
}

// Run starts the viewer full screen and blocks until the user quits.
func Run(m *Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// Index returns the snapshot currently shown.
func (m *Model) Index() int {
	return m.cursor.Index()
}

// AutoPlaying reports whether auto-play is on.
func (m *Model) AutoPlaying() bool {
	return m.auto
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height/2)
		m.refresh()
		return m, nil

	case tickMsg:
		if !m.auto || msg.gen != m.gen {
			return m, nil
		}
		if !m.step() {
			m.auto = false
			return m, nil
		}
		return m, m.tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Step):
			m.auto = false
			m.step()
			return m, nil
		case key.Matches(msg, m.keys.Auto):
			return m, m.toggleAuto()
		case key.Matches(msg, m.keys.Rewind):
			m.auto = false
			m.cursor.Rewind()
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	state, ok := m.cursor.Current()
	if !ok {
		return "No snapshots to replay.\n"
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("White Elephant Replay"))
	fmt.Fprintf(&sb, "  step %d/%d", m.cursor.Index()+1, m.cursor.Len())
	if m.auto {
		sb.WriteString(statusStyle.Render("  ▶ auto"))
	}
	sb.WriteString("\n\n")

	action := state.Action
	if action == "" {
		action = "(end of game)"
	}
	sb.WriteString(display.TurnStyle.Render(action))
	sb.WriteString("\n")
	sb.WriteString(boardStyle.Render(m.board(state)))
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m *Model) board(state game.GameState) string {
	lines := make([]string, 0, len(state.Gifts))
	for _, g := range state.Gifts {
		line := fmt.Sprintf("G%-2d %-24s %s", g.ID, m.giftName(g.ID), display.Cell(g))
		if g.ID == state.ChangedGiftID {
			if state.StealTransition != nil {
				line = display.StealStyle.Render(line + "  ← " + string(state.StealTransition.From))
			} else {
				line = display.ChangedStyle.Render(line)
			}
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) giftName(id int) string {
	if id >= 1 && id <= len(m.names) && m.names[id-1] != "" {
		return m.names[id-1]
	}
	return fmt.Sprintf("Gift %d", id)
}

func (m *Model) step() bool {
	moved := m.cursor.Step()
	if moved {
		m.refresh()
	}
	return moved
}

func (m *Model) toggleAuto() tea.Cmd {
	if m.auto {
		m.auto = false
		return nil
	}
	if m.cursor.Done() {
		return nil
	}
	m.auto = true
	m.gen++
	m.logger.Debug("Auto-play started", "index", m.cursor.Index(), "interval", m.interval)
	return m.tick()
}

// tick schedules the next auto-play step on tea.Tick so every cursor move
// happens inside Update. A tick carrying a stale gen is dropped.
func (m *Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// refresh redraws the visited part of the position matrix.
func (m *Model) refresh() {
	m.viewport.SetContent(display.Matrix(game.NewHistory(m.cursor.Visited())))
	m.viewport.GotoBottom()
}
