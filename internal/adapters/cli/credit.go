package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	economyQuery "github.com/mars-sim/mars-sim-sub053/internal/application/economy/queries"
)

// NewCreditCommand creates the credit command with subcommands
func NewCreditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credit",
		Short: "View inter-settlement credit",
	}

	cmd.AddCommand(newCreditShowCommand())

	return cmd
}

func newCreditShowCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show credit balances",
		Long: `Show what settlements owe each other. A positive amount is credit the
first settlement holds with the second.

Examples:
  marsecon credit show --resume run.zst
  marsecon credit show --from s01
  marsecon credit show --from s01 --to s02`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if to != "" && from == "" {
				return fmt.Errorf("--to requires --from")
			}

			a, ctx, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			resp, err := a.mediator.Send(ctx, &economyQuery.GetCreditQuery{From: from, To: to})
			if err != nil {
				return err
			}
			balances := resp.(*economyQuery.GetCreditResponse).Balances

			out := cmd.OutOrStdout()
			if len(balances) == 0 {
				fmt.Fprintln(out, "No credit balances")
				return nil
			}
			w := newTable(cmd)
			fmt.Fprintln(w, "FROM\tTO\tAMOUNT")
			for _, b := range balances {
				fmt.Fprintf(w, "%s\t%s\t%.2f\n", b.From, b.To, b.Amount)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Only balances held by this settlement")
	cmd.Flags().StringVar(&to, "to", "", "Only the balance toward this settlement")

	return cmd
}
