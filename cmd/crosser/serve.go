package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rasta-crosser/internal/platform/tui"
	"github.com/vovakirdan/rasta-crosser/internal/storage"
	"github.com/vovakirdan/rasta-crosser/internal/transport/websocket"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeWS     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the crosser SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a menu.
Runs are stored per-server (all users share the same leaderboard).

With --ws, every session's game state is also published as JSON over
WebSocket: GET /sessions lists watched sessions and GET /ws/<session>
streams one message per frame.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.crosser/host_key

Examples:
  crosser serve                           # Listen on :23234 with auto-generated key
  crosser serve --ssh :2222               # Listen on port 2222
  crosser serve --ws :8080                # Also publish a spectator feed
  crosser serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeWS, "ws", "", "Spectator feed address (host:port); disabled when empty")
}

func runServe(cmd *cobra.Command, _ []string) error {
	preset, err := difficultyPreset()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("crosser-ssh", os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.ConfigSource = flagConfig
	cfg.Difficulty = preset
	cfg.TickRate = flagFPS
	cfg.Store = store
	cfg.Logger = logger

	if flagServeWS != "" {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		hub := websocket.NewHub(logger.WithPrefix("crosser-ws"))
		go hub.Run(ctx)

		httpSrv := &http.Server{
			Addr:              flagServeWS,
			Handler:           hub.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("starting spectator feed", "address", flagServeWS)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("spectator feed stopped", "err", err)
			}
		}()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			httpSrv.Shutdown(shutdownCtx)
		}()
		cfg.Hub = hub
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Starting crosser SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
