package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/rasta-crosser/internal/config"
	"github.com/vovakirdan/rasta-crosser/internal/games/crosser"
	"github.com/vovakirdan/rasta-crosser/internal/transport/websocket"
)

var (
	flagAttractFrames int
	flagAttractWS     string
)

var attractCmd = &cobra.Command{
	Use:   "attract",
	Short: "Run a headless autopilot game",
	Long: `Run the engine without a terminal UI, driven by the built-in
autopilot and a wall-clock timer. Useful as a soak test and, with --ws,
as a spectator demo feed.

Examples:
  crosser attract --frames 3600
  crosser attract --ws :8080   # watch at ws://localhost:8080/ws/<session>`,
	Args: cobra.NoArgs,
	RunE: runAttract,
}

func init() {
	attractCmd.Flags().IntVar(&flagAttractFrames, "frames", 0, "Stop after this many frames (0 = until interrupted)")
	attractCmd.Flags().StringVar(&flagAttractWS, "ws", "", "Publish the game on this address (host:port)")
}

// attractStats is updated from the frame goroutine.
type attractStats struct {
	mu     sync.Mutex
	frames int
	games  int
	best   int
	over   bool
}

func runAttract(cmd *cobra.Command, _ []string) error {
	preset, err := difficultyPreset()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("crosser-attract", os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx, flagConfig)
	if err != nil {
		return err
	}
	config.ApplyPreset(cfg, preset)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	engine, err := crosser.New(cfg, crosser.WithSeed(seed), crosser.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := engine.Initialize(ctx); err != nil {
		return err
	}

	sessionID := uuid.NewString()
	if flagAttractWS != "" {
		hub := websocket.NewHub(logger)
		go hub.Run(ctx)
		engine.SetObserver(hub.Observer(sessionID))

		srv := &http.Server{Addr: flagAttractWS, Handler: hub.Handler(), ReadHeaderTimeout: 10 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("spectator feed stopped", "err", err)
			}
		}()
		defer srv.Close()
		logger.Info("publishing", "address", flagAttractWS, "session", sessionID)
	}

	pilot := crosser.NewAutopilot(cfg)
	stats := &attractStats{}
	done := make(chan struct{})
	var once sync.Once

	step := func(dt float64) {
		engine.HandleInput(pilot.Next(engine.Snapshot()))
		engine.Update(dt)

		snap := engine.Snapshot()
		stats.mu.Lock()
		defer stats.mu.Unlock()
		stats.frames++
		if snap.Score > stats.best {
			stats.best = snap.Score
		}
		if snap.Status == crosser.StatusGameOver && !stats.over {
			stats.games++
		}
		stats.over = snap.Status == crosser.StatusGameOver
		if flagAttractFrames > 0 && stats.frames >= flagAttractFrames {
			once.Do(func() { close(done) })
		}
	}

	fps := flagFPS
	if fps <= 0 {
		fps = 60
	}
	loop := crosser.NewLoop(step, nil, crosser.TimerRequester{Interval: time.Second / time.Duration(fps)})
	loop.Start()

	select {
	case <-ctx.Done():
	case <-done:
	}
	loop.Stop()

	stats.mu.Lock()
	defer stats.mu.Unlock()
	fmt.Printf("frames: %d  finished games: %d  best score: %d\n", stats.frames, stats.games, stats.best)
	return nil
}
