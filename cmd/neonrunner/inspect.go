package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-runner/internal/recorder"
)

var (
	flagInspectJSON  bool
	flagInspectEvents bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <recording>",
	Short: "Summarize a recorded run",
	Long: `Read a run recording (` + recorder.Extension + `) and print its header,
final stats and event counts.

Examples:
  neonrunner inspect ~/.neonrunner/runs/1b4e28ba-2fa1-11d2-883f-0016d3cca427.jsonl.zst
  neonrunner inspect run.jsonl.zst --events`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&flagInspectJSON, "json", false, "Print the summary as JSON")
	inspectCmd.Flags().BoolVar(&flagInspectEvents, "events", false, "List every recorded event")
}

func runInspect(_ *cobra.Command, args []string) error {
	rec, err := recorder.ReadFile(args[0])
	if err != nil {
		return err
	}
	sum := rec.Summarize()

	if flagInspectJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	}

	h := sum.Header
	fmt.Printf("Run        %s\n", h.RunID)
	fmt.Printf("Game       %s (%s)\n", h.GameID, h.Difficulty)
	fmt.Printf("Seed       %d\n", h.Seed)
	fmt.Printf("Started    %s\n", h.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Frames     %d\n", sum.Frames)
	if sum.Ended {
		fmt.Printf("Ended      tick %d\n", sum.EndTick)
	} else {
		fmt.Println("Ended      no (recording stopped mid-run)")
	}
	fmt.Println()
	fmt.Printf("Score      %d\n", sum.Final.Score)
	fmt.Printf("Wave       %d\n", sum.Final.Wave)
	fmt.Printf("Distance   %.0fm\n", sum.Final.Distance/10)
	fmt.Printf("Peak squad %d\n", sum.PeakCount)

	if len(sum.Events) > 0 {
		fmt.Println()
		fmt.Println("Events")
		kinds := make([]string, 0, len(sum.Events))
		counts := make(map[string]int, len(sum.Events))
		for k, n := range sum.Events {
			kinds = append(kinds, k.String())
			counts[k.String()] = n
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			fmt.Printf("  %-14s %d\n", k, counts[k])
		}
	}

	if flagInspectEvents {
		fmt.Println()
		for _, ev := range rec.Events {
			fmt.Printf("  %6d  %-14s  value=%-8.4g  %s\n", ev.Tick, ev.Kind, ev.Value, ev.Detail)
		}
	}
	return nil
}
