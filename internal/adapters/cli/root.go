package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath   string
	scenarioPath string
	resumePath   string
	fromDatabase bool
	advanceBy    float64
	verbose      bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "marsecon",
		Short: "Settlement goods valuation and trade deals",
		Long: `marsecon runs the goods economy of a set of Mars settlements.

Every settlement keeps a market ledger of value points, demand and supply.
The engine revalues goods on a fixed cadence, refreshes buy and sell
shortlists, finds the most profitable trading partner for a rover and
settles the difference in inter-settlement credit.

A run starts from a YAML scenario (--scenario) or from a generated one,
optionally resumed from a snapshot (--resume) or the database (--from-db).

Examples:
  marsecon simulate --millisols 2000 --snapshot run.zst
  marsecon market show s01 --advance 600
  marsecon deal find s01 --mission trade --advance 600
  marsecon deal execute s01 --resume run.zst
  marsecon credit show --resume run.zst
  marsecon scenario generate --seed 7 --settlements 6 --out mars.yaml
  marsecon serve --tick 1s`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ./marsecon.yaml, ./configs, /etc/marsecon)")
	rootCmd.PersistentFlags().StringVar(&scenarioPath, "scenario", "",
		"Path to a YAML scenario (overrides scenario.path)")
	rootCmd.PersistentFlags().StringVar(&resumePath, "resume", "",
		"Resume from a compressed snapshot")
	rootCmd.PersistentFlags().BoolVar(&fromDatabase, "from-db", false,
		"Resume from the state saved in the database")
	rootCmd.PersistentFlags().Float64Var(&advanceBy, "advance", 0,
		"Millisols to simulate before running the command")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewSimulateCommand())
	rootCmd.AddCommand(NewMarketCommand())
	rootCmd.AddCommand(NewDealCommand())
	rootCmd.AddCommand(NewCreditCommand())
	rootCmd.AddCommand(NewScenarioCommand())
	rootCmd.AddCommand(NewSnapshotCommand())
	rootCmd.AddCommand(NewServeCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
