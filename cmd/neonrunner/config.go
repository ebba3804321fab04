package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-runner/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or validate tuning files",
	Long: `Work with the engine tuning YAML.

The tuning is searched in this order:
  --config <path>
  ~/.neonrunner/configs/neon.yaml
  ./configs/neon.yaml
  built-in defaults`,
}

var configPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the effective tuning as YAML",
	Long: `Print the tuning the engine would use, after the search order and
defaults are applied. Redirect it to a file to start a custom tuning.

Examples:
  neonrunner config print > ~/.neonrunner/configs/neon.yaml
  neonrunner config print --config ./my-neon.yaml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.LoadNeon(flagConfig)
		if err != nil {
			return err
		}
		data, err := config.MarshalNeon(cfg)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate tuning files against the schema",
	Long: `Validate one or more tuning files. Each file is checked against the
schema and then for value ranges.

Examples:
  neonrunner config check ./my-neon.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err == nil {
				_, err = config.ParseNeon(data)
			}
			if err != nil {
				failed++
				fmt.Printf("FAIL  %s: %v\n", path, err)
				continue
			}
			fmt.Printf("ok    %s\n", path)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files invalid", failed, len(args))
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPrintCmd)
	configCmd.AddCommand(configCheckCmd)
}
