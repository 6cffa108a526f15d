// Package report writes finished games to disk: the plain-text game log and
// a YAML archive of the snapshot history that the replay viewer can load.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lox/whiteelephant/internal/fileutil"
	"github.com/lox/whiteelephant/internal/game"
)

const (
	// GameLogFile is the default name of the text log inside an output directory.
	GameLogFile = "game_log.txt"
	// HistoryFile is the default name of the YAML archive.
	HistoryFile = "history.yaml"

	title = "WHITE ELEPHANT GIFT EXCHANGE - COMPLETE GAME LOG"
)

var rule = strings.Repeat("=", 60)

// WriteGameLog renders the transcript followed by the final holdings and the
// status of every gift.
func WriteGameLog(w io.Writer, transcript []string, result *game.Result) error {
	if result == nil {
		return fmt.Errorf("game log needs a result")
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s\n%s\n\n", title, rule)
	for _, line := range transcript {
		fmt.Fprintln(bw, line)
	}

	fmt.Fprintf(bw, "\n%s\nFINAL RESULTS\n%s\n", rule, rule)
	for _, h := range result.Holdings {
		if !h.Has {
			fmt.Fprintf(bw, "%s: No gift\n", h.Player)
			continue
		}
		locked := ""
		if h.Gift.Locked {
			locked = " [LOCKED]"
		}
		fmt.Fprintf(bw, "%s: %s (value: %d, stolen %d times)%s\n",
			h.Player, h.Gift.Name, h.Gift.Value, h.Gift.Steals, locked)
	}

	owners := make(map[int]string, len(result.Holdings))
	for _, h := range result.Holdings {
		if h.Has {
			owners[h.Gift.ID] = string(h.Player)
		}
	}

	fmt.Fprintf(bw, "\n%s\nGIFT STATUS\n%s\n", rule, rule)
	for _, g := range result.Gifts {
		owner, held := owners[g.ID]
		if !held {
			owner = "None"
		}
		opened := "Never opened"
		if held || g.Steals > 0 {
			opened = "Opened"
		}
		status := "Available"
		if g.Locked {
			status = "LOCKED"
		}
		fmt.Fprintf(bw, "Gift #%d: %s (value: %d) - %s, %s, Owner: %s, Stolen: %d times\n",
			g.ID, g.Name, g.Value, opened, status, owner, g.Steals)
	}

	return bw.Flush()
}

// SaveGameLog writes the game log for eng to filename atomically.
func SaveGameLog(filename string, eng *game.Engine) error {
	return fileutil.WriteAtomic(filename, 0o644, func(w io.Writer) error {
		return WriteGameLog(w, eng.Transcript(), eng.Analyze())
	})
}

// SaveAll writes both the game log and the history archive into dir,
// creating it if needed, and returns the paths written.
func SaveAll(dir string, eng *game.Engine, seed int64) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	logPath := filepath.Join(dir, GameLogFile)
	if err := SaveGameLog(logPath, eng); err != nil {
		return nil, err
	}
	historyPath := filepath.Join(dir, HistoryFile)
	if err := SaveHistory(historyPath, NewArchive(eng, seed)); err != nil {
		return nil, err
	}
	return []string{logPath, historyPath}, nil
}
