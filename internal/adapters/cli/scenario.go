package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mars-sim/mars-sim-sub053/internal/adapters/scenario"
)

// NewScenarioCommand creates the scenario command with subcommands
func NewScenarioCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Generate and validate scenarios",
		Long: `A scenario lists the settlements of a run with their location,
population, stock and vehicles, and optionally a custom goods catalog.

Examples:
  marsecon scenario generate --seed 7 --settlements 6 --out mars.yaml
  marsecon scenario validate mars.yaml`,
	}

	cmd.AddCommand(newScenarioGenerateCommand())
	cmd.AddCommand(newScenarioValidateCommand())

	return cmd
}

func newScenarioGenerateCommand() *cobra.Command {
	var (
		seed        int64
		settlements int
		out         string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a scenario from a seed",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := scenario.Generate(seed, settlements)
			if err != nil {
				return err
			}
			data, err := scenario.Marshal(doc)
			if err != nil {
				return err
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write scenario: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scenario %q with %d settlements written to %s\n", doc.Name, len(doc.Settlements), out)
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 1, "Generator seed")
	cmd.Flags().IntVar(&settlements, "settlements", 4, "Number of settlements")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default: stdout)")

	return cmd
}

func newScenarioValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a scenario against its schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := scenario.NewLoader()
			if err != nil {
				return err
			}
			doc, err := loader.LoadFile(args[0])
			if err != nil {
				return err
			}
			if _, err := doc.BuildCatalog(); err != nil {
				return fmt.Errorf("invalid catalog: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d settlements, valid\n", args[0], len(doc.Settlements))
			return nil
		},
	}
}
