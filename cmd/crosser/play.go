package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/rasta-crosser/internal/core"
	"github.com/vovakirdan/rasta-crosser/internal/platform/tui"
	"github.com/vovakirdan/rasta-crosser/internal/storage"
	"github.com/vovakirdan/rasta-crosser/internal/transport/websocket"
)

var (
	flagQuick  bool
	flagPlayWS string
	flagPlayer string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  Up/W        - Hop forward
  Left/A      - Step left
  Right/D     - Step right
  Space/P     - Pause
  R           - Restart
  B/Esc       - Back to menu (paused or game over)
  Ctrl+S      - Save a screenshot
  Q/Ctrl+C    - Quit

Mouse: click to hop, drag left or right quickly to step sideways.

Difficulty options:
  easy   - Fewer vehicles, gentler speed-up per city
  normal - The configured curve
  hard   - More vehicles, steeper speed-up per city
  fixed  - No per-city scaling

Examples:
  crosser play
  crosser play --quick --difficulty hard
  crosser play --config ./my-crosser.yaml
  crosser play --ws :8080   # let others watch at ws://host:8080/ws/<session>`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagQuick, "quick", false, "Skip the menu and start playing")
	playCmd.Flags().StringVar(&flagPlayWS, "ws", "", "Serve a spectator feed on this address (host:port)")
	playCmd.Flags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Name recorded with saved runs")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	preset, err := difficultyPreset()
	if err != nil {
		return err
	}

	// The alt screen owns stdout, so logs go nowhere unless --log is set
	logger, closeLog, err := newLogger("crosser", io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	opts := tui.Options{
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		ConfigSource: flagConfig,
		Difficulty:   preset,
		SkipMenu:     flagQuick,
		Store:        store,
		Logger:       logger,
		Player:       flagPlayer,
	}

	if flagPlayWS != "" {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		hub := websocket.NewHub(logger)
		go hub.Run(ctx)

		srv := &http.Server{Addr: flagPlayWS, Handler: hub.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("spectator feed stopped", "err", err)
			}
		}()
		defer srv.Close()
		opts.Hub = hub
	}

	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
