// crosser is a lane-crossing arcade game for the terminal.
//
// Usage:
//
//	crosser play             - Play in this terminal
//	crosser serve            - Start SSH server for remote play
//	crosser scores           - Show the run history
//	crosser config           - Print or validate the effective configuration
//	crosser attract          - Run a headless autopilot game
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.crosser/runs.db)
//	--config <src>        - Game config file path or http(s) URL
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log <file>          - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/rasta-crosser/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "crosser",
	Short: "Rasta Crosser - hop across city traffic in your terminal",
	Long: `Rasta Crosser is a grid-based lane-crossing arcade game.
Hop up through the traffic lanes, dodge the CNGs and buses, and score
a point for every row you climb.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  scores   - View the run history
  config   - Print or validate the game configuration
  attract  - Run a headless autopilot demo

Examples:
  crosser play
  crosser play --difficulty hard
  crosser serve --ssh :2222 --ws :8080
  crosser scores --city dhaka`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.crosser/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Game config file path or http(s) URL")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "normal", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(attractCmd)
}

// difficultyPreset validates the --difficulty flag.
func difficultyPreset() (config.DifficultyPreset, error) {
	p := config.DifficultyPreset(flagDifficulty)
	switch p {
	case config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
}

// newLogger writes to --log when set, otherwise to fallback.
// The returned closer must be called on exit.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	w := fallback
	closer := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if os.Getenv("CROSSER_DEBUG") != "" {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closer, nil
}
