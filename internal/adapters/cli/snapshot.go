package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mars-sim/mars-sim-sub053/internal/adapters/snapshot"
)

// NewSnapshotCommand creates the snapshot command with subcommands
func NewSnapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Inspect snapshot files",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "info <file>",
		Short: "Show a snapshot's header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			header, err := snapshot.ReadHeader(args[0])
			if err != nil {
				return err
			}
			w := newTable(cmd)
			fmt.Fprintf(w, "Version:\t%d\n", header.Version)
			fmt.Fprintf(w, "Time:\t%s\n", header.At)
			fmt.Fprintf(w, "Settlements:\t%d (%s)\n", len(header.Settlements), listOrDash(header.Settlements))
			return w.Flush()
		},
	})

	return cmd
}
