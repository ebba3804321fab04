package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-runner/internal/platform/tui"
	"github.com/vovakirdan/neon-runner/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a game picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a game and left/right to change the
difficulty, which is remembered between sessions. After a run ends,
B or Esc returns to the menu.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right      - Change difficulty
  Enter/Space     - Play
  Tab             - Scoreboard
  Q               - Quit

Examples:
  neonrunner menu
  neonrunner menu --fps 30
  neonrunner menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) {
	sess, err := newSession(cmd.Context())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer sess.close()

	cfg := runtimeConfig()
	settings := *sess.opts.Settings

	for {
		menuResult, err := tui.RunMenu(sess.store, cfg, settings, sess.opts.Profile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Keep size changes and the chosen difficulty
		cfg = menuResult.Config
		settings = menuResult.Settings

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(sess.store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		if menuResult.GameID == "" {
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Fresh seed per game unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		opts := sess.opts
		opts.Settings = &settings

		if err := tui.Run(game, sess.store, cfg, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Changes made in the settings overlay carry over to the menu.
		if sess.store != nil {
			if stored, ok, err := sess.store.LoadSettings(opts.Profile); err == nil && ok {
				settings = stored
			}
		}
	}
}
