package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/whiteelephant/internal/game"
	"github.com/lox/whiteelephant/internal/randutil"
	"github.com/lox/whiteelephant/internal/statistics"
)

// Config holds configuration for running a batch of games
type Config struct {
	Games   int
	Seed    int64
	Workers int
	Game    game.Config
	Logger  *log.Logger
}

// Simulator plays many independent gift exchanges
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	return &Simulator{config: config, logger: logger.WithPrefix("simulator")}
}

// Run plays every game and returns the aggregate. Game i is seeded with
// Seed+i and results are folded in game order, so the output does not
// depend on the worker count.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", s.config.Games)
	}
	if err := s.config.Game.Validate(); err != nil {
		return nil, err
	}

	s.logger.Debug("Starting batch", "games", s.config.Games, "workers", s.config.Workers, "seed", s.config.Seed)

	results := make([]statistics.GameResult, s.config.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := 0; i < s.config.Games; i++ {
		seed := s.config.Seed + int64(i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := s.playGame(seed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// playGame runs a single exchange with its own RNG
func (s *Simulator) playGame(seed int64) (statistics.GameResult, error) {
	eng, result, err := game.RunFullSimulation(s.config.Game, randutil.Float64(seed), s.logger)
	if err != nil {
		return statistics.GameResult{}, err
	}

	seatValues := make([]int, len(result.Holdings))
	for i, h := range result.Holdings {
		seatValues[i] = h.Gift.Value
	}

	return statistics.GameResult{
		Seed:         seed,
		Valid:        result.Valid,
		Steals:       result.Stats.TotalSteals,
		LockedGifts:  result.Stats.LockedGifts,
		Actions:      eng.History().Len() - 1,
		LongestChain: result.Stats.LongestChain,
		SeatValues:   seatValues,
	}, nil
}

// RunSimulation is a convenience function for running a batch with basic parameters
func RunSimulation(ctx context.Context, games int, seed int64, cfg game.Config, logger *log.Logger) (*statistics.Statistics, error) {
	return New(Config{
		Games:  games,
		Seed:   seed,
		Game:   cfg,
		Logger: logger,
	}).Run(ctx)
}

// PrintSummary writes a plain-text summary of batch results
func PrintSummary(w io.Writer, stats *statistics.Statistics) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== BATCH RESULTS ===\n")
	fmt.Fprintf(w, "Games played: %d (%d valid)\n", stats.Games, stats.ValidGames)

	fmt.Fprintf(w, "\n=== STEALS PER GAME ===\n")
	fmt.Fprintf(w, "Mean: %.3f\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.1f\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.3f\n", stats.StdDev())
	fmt.Fprintf(w, "95%% CI: [%.3f, %.3f]\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.1f, P25=%.1f, P75=%.1f, P95=%.1f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))
	fmt.Fprintf(w, "Games without a steal: %d (%.1f%%)\n",
		stats.ZeroStealGames, float64(stats.ZeroStealGames)/float64(stats.Games)*100)

	fmt.Fprintf(w, "\n=== LOCKS AND CHAINS ===\n")
	fmt.Fprintf(w, "Locked gifts per game: %.3f\n", stats.MeanLocked())
	fmt.Fprintf(w, "Actions per game: %.2f\n", stats.MeanActions())
	fmt.Fprintf(w, "Longest chain: %d steals (seed %d)\n", stats.LongestChain, stats.LongestChainSeed)

	fmt.Fprintf(w, "\n=== FINAL VALUE BY SEAT ===\n")
	for seat := 1; seat <= len(stats.Seats); seat++ {
		fmt.Fprintf(w, "P%d: %.2f\n", seat, stats.SeatMean(seat))
	}
}
