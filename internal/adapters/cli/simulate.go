package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mars-sim/mars-sim-sub053/internal/adapters/persistence"
	"github.com/mars-sim/mars-sim-sub053/internal/adapters/snapshot"
	economyCmd "github.com/mars-sim/mars-sim-sub053/internal/application/economy/commands"
)

// NewSimulateCommand creates the simulate command
func NewSimulateCommand() *cobra.Command {
	var (
		millisols    float64
		snapshotPath string
		save         bool
		history      bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Advance the economy and report what happened",
		Long: `Advance the simulation clock, running every valuation and shortlist
refresh that falls due.

The resulting state can be written to a compressed snapshot and saved to
the database. With --history every value change is recorded in the
value_history table.

Examples:
  marsecon simulate --millisols 1000
  marsecon simulate --millisols 5000 --snapshot run.zst --save
  marsecon simulate --resume run.zst --millisols 500 --history`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if history {
				db, err := a.database()
				if err != nil {
					return err
				}
				a.engine.SetValueHistory(persistence.NewGormValueHistoryRepository(db))
			}

			resp, err := a.mediator.Send(ctx, &economyCmd.AdvanceTimeCommand{Millisols: millisols})
			if err != nil {
				return err
			}
			report := resp.(*economyCmd.AdvanceTimeResponse).Report
			a.recordTick(report)

			out := cmd.OutOrStdout()
			printHeader(out, fmt.Sprintf("Simulated %s to %s", report.From, report.To))
			w := newTable(cmd)
			fmt.Fprintf(w, "Valuation ticks:\t%d\n", report.Valuations)
			fmt.Fprintf(w, "Shortlist refreshes:\t%d\n", report.Refreshes)
			fmt.Fprintf(w, "Value changes:\t%d\n", report.Changes)
			fmt.Fprintf(w, "Warnings:\t%d\n", len(report.Warnings))
			w.Flush()
			for _, warning := range report.Warnings {
				fmt.Fprintf(out, "  ! %s\n", warning)
			}

			if snapshotPath == "" {
				snapshotPath = a.cfg.Scenario.Snapshot
			}
			snap := a.engine.Snapshot()
			if snapshotPath != "" {
				if err := snapshot.Write(snapshotPath, snap); err != nil {
					return err
				}
				fmt.Fprintf(out, "Snapshot written to %s\n", snapshotPath)
			}
			if save {
				store, err := a.store()
				if err != nil {
					return err
				}
				if err := store.Save(ctx, snap); err != nil {
					return err
				}
				fmt.Fprintln(out, "State saved to database")
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&millisols, "millisols", 1000, "Millisols to simulate")
	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Write a compressed snapshot to this path")
	cmd.Flags().BoolVar(&save, "save", false, "Save the resulting state to the database")
	cmd.Flags().BoolVar(&history, "history", false, "Record value changes in the database")

	return cmd
}
