package display

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/whiteelephant/internal/game"
)

// Wrapped marks a gift nobody has opened yet.
const Wrapped = "·"

const maxActionWidth = 44

// Transcript styles each log line by what it reports.
func Transcript(lines []string) string {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(styleLine(line).Render(line))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func styleLine(line string) lipgloss.Style {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "==="):
		return TurnStyle
	case strings.HasPrefix(trimmed, "Error:"):
		return ErrorStyle
	case strings.Contains(trimmed, "is now LOCKED"):
		return LockStyle
	case strings.Contains(trimmed, " steals "):
		return StealStyle
	default:
		return UnwrapStyle
	}
}

// Cell renders one gift's position: owner, steal count and a lock marker,
// or Wrapped when the gift is still unopened.
func Cell(g game.GiftState) string {
	if !g.Opened {
		return Wrapped
	}
	cell := string(g.Owner)
	if cell == "" {
		cell = "?"
	}
	if g.Steals > 0 {
		cell += " " + strconv.Itoa(g.Steals) + "x"
	}
	if g.Locked {
		cell += " L"
	}
	return cell
}

// Matrix draws the whole history as a table: one row per snapshot and one
// column per gift. The gift changed by each action is highlighted.
func Matrix(history game.History) string {
	states := history.All()
	if len(states) == 0 {
		return ""
	}

	headers := []string{"#", "Action"}
	for _, g := range states[0].Gifts {
		headers = append(headers, fmt.Sprintf("G%d", g.ID))
	}

	rows := make([][]string, 0, len(states))
	for i, s := range states {
		row := []string{strconv.Itoa(i), truncate(s.Action, maxActionWidth)}
		for _, g := range s.Gifts {
			row = append(row, Cell(g))
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(InfoStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return base.Inherit(HeaderStyle)
			}
			if row < 0 || row >= len(states) {
				return base
			}
			s := states[row]
			if s.IsTurnStart {
				return base.Inherit(TurnStyle)
			}
			if col >= 2 && s.ChangedGiftID == col-1 {
				if s.StealTransition != nil {
					return base.Inherit(StealStyle).Reverse(true)
				}
				return base.Inherit(ChangedStyle)
			}
			return base
		})

	return t.Render()
}

// Stats renders the validation verdict and game statistics.
func Stats(result *game.Result) string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render(" GAME SUMMARY "))
	sb.WriteByte('\n')

	if result.Valid {
		sb.WriteString(SuccessStyle.Render("✓ Every player holds a gift and every gift was opened"))
	} else {
		for _, p := range result.PlayersWithoutGifts {
			sb.WriteString(ErrorStyle.Render(fmt.Sprintf("✗ %s has no gift", p)))
			sb.WriteByte('\n')
		}
		for _, g := range result.UnopenedGifts {
			sb.WriteString(ErrorStyle.Render(fmt.Sprintf("✗ %s was never opened", g.Label())))
			sb.WriteByte('\n')
		}
	}
	sb.WriteByte('\n')

	st := result.Stats
	fmt.Fprintf(&sb, "Total actions:  %d\n", st.TotalActions)
	fmt.Fprintf(&sb, "Total steals:   %d\n", st.TotalSteals)
	fmt.Fprintf(&sb, "Locked gifts:   %d\n", st.LockedGifts)
	fmt.Fprintf(&sb, "Most stolen:    %s\n", st.MostStolen)
	fmt.Fprintf(&sb, "Longest chain:  %d\n", st.LongestChain)

	sb.WriteByte('\n')
	for _, h := range result.Holdings {
		if !h.Has {
			fmt.Fprintf(&sb, "%s: %s\n", h.Player, InfoStyle.Render("no gift"))
			continue
		}
		line := fmt.Sprintf("%s: %s (value %d)", h.Player, h.Gift, h.Gift.Value)
		if h.Gift.Locked {
			line += " " + LockStyle.Render("LOCKED")
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
