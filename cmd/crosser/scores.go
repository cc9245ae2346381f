package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/rasta-crosser/internal/config"
	"github.com/vovakirdan/rasta-crosser/internal/platform/tui"
	"github.com/vovakirdan/rasta-crosser/internal/storage"
)

var (
	flagScoresCity  string
	flagScoresLimit int
	flagScoresClear bool
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display the best runs for each city in the configuration.

Examples:
  crosser scores
  crosser scores --city dhaka --limit 20
  crosser scores --tui
  crosser scores --city dhaka --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresCity, "city", "", "Only show this city id")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show per city")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the history of --city")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse the history interactively")
}

func runScores(cmd *cobra.Command, _ []string) error {
	if flagScoresClear && flagScoresCity == "" {
		return fmt.Errorf("--clear needs --city")
	}

	cfg, err := config.Load(cmd.Context(), flagConfig)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(flagScoresCity); err != nil {
			return err
		}
		fmt.Printf("Cleared the run history of %s.\n", flagScoresCity)
		return nil
	}

	cities := cfg.Cities
	if flagScoresCity != "" {
		cities = nil
		for _, c := range cfg.Cities {
			if c.ID == flagScoresCity {
				cities = append(cities, c)
			}
		}
		if len(cities) == 0 {
			// Runs may outlive the city in the config
			cities = []config.CityConfig{{ID: flagScoresCity, Name: flagScoresCity}}
		}
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, cities, width, height)
	}

	for i, city := range cities {
		if i > 0 {
			fmt.Println()
		}
		if err := printCity(store, city); err != nil {
			return err
		}
	}
	return nil
}

func printCity(store *storage.Store, city config.CityConfig) error {
	runs, err := store.TopRuns(city.ID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", city.Name)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'crosser play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-5s  %-6s  %-6s  %-12s  %s\n", "Rank", "Score", "Hops", "Time", "Mode", "Player", "Date")
	fmt.Printf("  %-4s  %-6s  %-5s  %-6s  %-6s  %-12s  %s\n", "----", "-----", "----", "----", "----", "------", "----")
	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-6d  %-5d  %-6s  %-6s  %-12s  %s\n",
			i+1, r.Score, r.Hops, fmt.Sprintf("%.0fs", r.Duration.Seconds()), r.Difficulty, player,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.CityStats(city.ID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d  Runs: %d  Average: %.1f  Total hops: %d\n",
		stats.HighScore, stats.RunsCount, stats.AvgScore, stats.TotalHops)
	return nil
}
