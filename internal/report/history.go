package report

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lox/whiteelephant/internal/fileutil"
	"github.com/lox/whiteelephant/internal/game"
	"github.com/lox/whiteelephant/internal/registry"
)

// ErrBadArchive reports a history file that cannot be replayed.
var ErrBadArchive = errors.New("invalid history archive")

// CatalogueEntry is the static description of one gift.
type CatalogueEntry struct {
	ID    int    `yaml:"id"`
	Name  string `yaml:"name"`
	Value int    `yaml:"value"`
}

// Archive is everything the replay viewer needs to redraw a finished game.
// It is an export of the log only; nothing in it can resume play.
type Archive struct {
	Seed          int64             `yaml:"seed"`
	LockThreshold int               `yaml:"lock_threshold"`
	Players       []registry.Player `yaml:"players"`
	Gifts         []CatalogueEntry  `yaml:"gifts"`
	Transcript    []string          `yaml:"transcript"`
	States        []game.GameState  `yaml:"states"`
}

// NewArchive captures the current history of eng.
func NewArchive(eng *game.Engine, seed int64) Archive {
	cfg := eng.Config()
	a := Archive{
		Seed:          seed,
		LockThreshold: cfg.LockThreshold,
		Transcript:    eng.Transcript(),
		States:        eng.History().All(),
	}
	for i := range cfg.Players {
		a.Players = append(a.Players, registry.PlayerLabel(i+1))
	}
	for _, g := range eng.Gifts() {
		a.Gifts = append(a.Gifts, CatalogueEntry{ID: g.ID, Name: g.Name, Value: g.Value})
	}
	return a
}

// History returns the archived snapshots as a read-only History.
func (a Archive) History() game.History {
	return game.NewHistory(a.States)
}

// GiftName looks up a gift's name in the catalogue.
func (a Archive) GiftName(id int) string {
	if id < 1 || id > len(a.Gifts) {
		return ""
	}
	return a.Gifts[id-1].Name
}

// Validate checks that every snapshot describes the catalogued gifts.
func (a Archive) Validate() error {
	if len(a.States) == 0 {
		return fmt.Errorf("%w: no snapshots", ErrBadArchive)
	}
	if len(a.Gifts) == 0 {
		return fmt.Errorf("%w: empty gift catalogue", ErrBadArchive)
	}
	for i, g := range a.Gifts {
		if g.ID != i+1 {
			return fmt.Errorf("%w: gift %d has id %d", ErrBadArchive, i+1, g.ID)
		}
	}
	for i, s := range a.States {
		if len(s.Gifts) != len(a.Gifts) {
			return fmt.Errorf("%w: snapshot %d has %d gifts, catalogue has %d",
				ErrBadArchive, i, len(s.Gifts), len(a.Gifts))
		}
	}
	return nil
}

// EncodeHistory writes a as YAML.
func EncodeHistory(w io.Writer, a Archive) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	return enc.Close()
}

// DecodeHistory reads and validates an archive.
func DecodeHistory(r io.Reader) (Archive, error) {
	var a Archive
	if err := yaml.NewDecoder(r).Decode(&a); err != nil {
		return Archive{}, fmt.Errorf("%w: %w", ErrBadArchive, err)
	}
	if err := a.Validate(); err != nil {
		return Archive{}, err
	}
	return a, nil
}

// SaveHistory writes a to filename atomically.
func SaveHistory(filename string, a Archive) error {
	return fileutil.WriteAtomic(filename, 0o644, func(w io.Writer) error {
		return EncodeHistory(w, a)
	})
}

// LoadHistory reads an archive written by SaveHistory.
func LoadHistory(filename string) (Archive, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Archive{}, fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()
	return DecodeHistory(f)
}
