package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-runner/internal/platform/tui"
	"github.com/vovakirdan/neon-runner/internal/transport/spectate"
)

var (
	flagSSHAddr       string
	flagHostKey       string
	flagIdleTimeout   int
	flagServeSpectate string
	flagServeRecord   string
	flagAllowRemote   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a game picker menu.
Scores are stored per-server (all users share the same leaderboard);
settings are remembered per SSH user.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.neonrunner/host_key

Spectating:
  --spectate starts a websocket feed of every session's live stats at
  ws://<addr>/ws, with the session list at http://<addr>/sessions.
  Only loopback clients are accepted unless --allow-remote is set.

Examples:
  neonrunner serve                           # Listen on :23234 with auto-generated key
  neonrunner serve --ssh :2222               # Listen on port 2222
  neonrunner serve --host-key ./my_host_key  # Use specific host key
  neonrunner serve --spectate 127.0.0.1:8090 # Publish live sessions

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeSpectate, "spectate", "", "Spectator feed address (host:port)")
	serveCmd.Flags().BoolVar(&flagAllowRemote, "allow-remote", false, "Accept spectators from non-loopback addresses")
	serveCmd.Flags().StringVar(&flagServeRecord, "record", "", "Record every run to this directory")
}

func runServe(_ *cobra.Command, _ []string) {
	settings, err := resolveSettings(nil)
	if err == nil {
		err = configureGames(settings)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.RecordDir = flagServeRecord
	if flagFPS > 0 {
		cfg.FPS = flagFPS
	}
	cfg.Logger = logger.WithPrefix("neon-ssh")

	var spectator *spectate.Server
	if flagServeSpectate != "" {
		cfg.Hub = spectate.NewHub(logger.WithPrefix("spectate"), flagAllowRemote)
		spectator = spectate.NewServer(flagServeSpectate, cfg.Hub, logger.WithPrefix("spectate"))
		go func() {
			if err := spectator.ListenAndServe(); err != nil {
				logger.Error("spectator server error", "error", err)
			}
		}()
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Neon Runner SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	if spectator != nil {
		fmt.Printf("Spectate at: ws://%s/ws\n", spectator.Addr())
	}
	fmt.Println("Press Ctrl+C to stop")

	err = server.ListenAndServe()
	if spectator != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		spectator.Shutdown(ctx) //nolint:errcheck // shutting down
		cancel()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
