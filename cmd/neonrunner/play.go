package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-runner/internal/eventlog"
	"github.com/vovakirdan/neon-runner/internal/games/neon"
	"github.com/vovakirdan/neon-runner/internal/platform/tui"
	"github.com/vovakirdan/neon-runner/internal/registry"
	"github.com/vovakirdan/neon-runner/internal/storage"
	"github.com/vovakirdan/neon-runner/internal/transport/spectate"
)

var (
	flagRecordDir string
	flagSound     bool
	flagVolume    float64
	flagSpectate  string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start a run of the specified game (default: neon).

Controls:
  A/D, Left/Right  - Steer (hold)
  Mouse drag       - Steer towards the pointer
  P                - Pause / resume
  O                - Settings overlay (difficulty, sound, effects)
  R                - Restart (after game over)
  B/Esc            - Leave (after game over)
  Q/Ctrl+C         - Quit

Games:
  neon          - Enemies that reach the squad drain it while close
  neon_classic  - Enemies drain the squad only while weapons are down

Examples:
  neonrunner play
  neonrunner play neon_classic --difficulty unfair
  neonrunner play --record ~/.neonrunner/runs
  neonrunner play --spectate 127.0.0.1:8090
  neonrunner play --config ./my-neon.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagRecordDir, "record", "", "Record every run to this directory")
		c.Flags().BoolVar(&flagSound, "sound", true, "Play sound cues through an external PCM player")
		c.Flags().Float64Var(&flagVolume, "volume", 0.6, "Sound volume 0..1")
		c.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a live spectator feed on this address")
	}
}

// session holds the collaborators shared by play and menu.
type session struct {
	store   *storage.Store
	opts    tui.Options
	cleanup []func()
}

func (s *session) close() {
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		s.cleanup[i]()
	}
}

// newSession opens storage, resolves settings and starts the optional
// audio, spectator and logging sinks.
func newSession(ctx context.Context) (*session, error) {
	s := &session{store: openStore()}
	if s.store != nil {
		store := s.store
		s.cleanup = append(s.cleanup, func() { store.Close() }) //nolint:errcheck // exiting
	}

	settings, err := resolveSettings(s.store)
	if err != nil {
		s.close()
		return nil, err
	}
	if err := configureGames(settings); err != nil {
		s.close()
		return nil, err
	}

	s.opts = tui.Options{
		Store:     s.store,
		Profile:   storage.DefaultProfile,
		FPS:       flagFPS,
		RecordDir: flagRecordDir,
		Logger:    logger,
		Settings:  &settings,
		Sinks:     []neon.Sink{eventlog.New(logger)},
	}

	if flagSound {
		mixer, stop := startAudio(ctx)
		if mixer != nil {
			s.opts.Sinks = append(s.opts.Sinks, mixer)
		}
		s.cleanup = append(s.cleanup, stop)
	}

	if flagSpectate != "" {
		hub := spectate.NewHub(logger, false)
		srv := spectate.NewServer(flagSpectate, hub, logger)
		go func() {
			if err := srv.ListenAndServe(); err != nil {
				logger.Error("spectator server error", "error", err)
			}
		}()
		s.opts.Sinks = append(s.opts.Sinks, hub.Session("local"))
		s.cleanup = append(s.cleanup, func() {
			hub.End("local")
			srv.Shutdown(context.Background()) //nolint:errcheck // exiting
		})
		logger.Info("spectator feed", "url", "ws://"+flagSpectate+"/ws")
	}
	return s, nil
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "neon"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'neonrunner list' to see available games.")
		os.Exit(1)
	}

	sess, err := newSession(cmd.Context())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		sess.close()
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	runErr := tui.Run(game, sess.store, runtimeConfig(), sess.opts)

	// Close collaborators before a potential exit
	sess.close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
