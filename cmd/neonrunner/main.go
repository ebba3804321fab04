// neonrunner is a lane-based survival shooter for the terminal.
//
// Usage:
//
//	neonrunner list               - List available games
//	neonrunner play [game]        - Play a game (default: neon)
//	neonrunner menu               - Start menu to pick games interactively
//	neonrunner serve              - Start SSH server for remote play
//	neonrunner scores <game>      - Show high scores and recent runs
//	neonrunner sim                - Run the engine headless
//	neonrunner config print|check - Show or validate tuning files
//	neonrunner inspect <file>     - Summarize a recorded run
//
// Global flags:
//
//	--fps <rate>          - Render rate (default: 60)
//	--seed <value>        - RNG seed for reproducible runs
//	--db <path>           - Database path (default: ~/.neonrunner/scores.db)
//	--config <path>       - Custom tuning YAML
//	--difficulty <tier>   - easy, normal, hard, unfair, emotional, singularity, omega
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/neon-runner/internal/games/neon"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "neonrunner",
	Short: "Neon Runner - a lane shooter in your terminal",
	Long: `Neon Runner is a lane-based survival shooter. Steer your squad through
gates that grow or shrink it, blast the hordes, and survive the bosses.

Available commands:
  list     - Show all available games
  play     - Play a game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores and run history
  sim      - Run the engine headless
  config   - Print or validate tuning files
  inspect  - Summarize a recorded run

Examples:
  neonrunner play
  neonrunner play neon_classic --difficulty hard
  neonrunner menu
  neonrunner serve --ssh :2222 --spectate 127.0.0.1:8090
  neonrunner sim --ticks 36000 --steer sweep`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if flagLogLevel == "" {
			// Servers report sessions; interactive play keeps stderr quiet.
			flagLogLevel = "warn"
			if cmd.Name() == "serve" {
				flagLogLevel = "info"
			}
		}
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		logger.SetLevel(level)
		return nil
	},
}

// logger reports on stderr, which the alternate screen leaves untouched.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "neonrunner",
})

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Render rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.neonrunner/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty tier (overrides the saved setting)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default warn, info for serve)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(inspectCmd)
}
