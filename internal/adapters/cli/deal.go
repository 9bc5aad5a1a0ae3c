package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	economyCmd "github.com/mars-sim/mars-sim-sub053/internal/application/economy/commands"
	economyQuery "github.com/mars-sim/mars-sim-sub053/internal/application/economy/queries"
)

// NewDealCommand creates the deal command with subcommands
func NewDealCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deal",
		Short: "Find and execute trade deals",
		Long: `Find the most profitable trading partner of a settlement for one of its
rovers, or carry that deal out.

Examples:
  marsecon deal find s01 --mission trade --advance 600
  marsecon deal find s01 --mission delivery --vehicle "cargo rover"
  marsecon deal execute s01 --resume run.zst`,
	}

	// Add subcommands
	cmd.AddCommand(newDealFindCommand())
	cmd.AddCommand(newDealExecuteCommand())

	return cmd
}

// newDealFindCommand creates the deal find subcommand
func newDealFindCommand() *cobra.Command {
	var (
		mission string
		vehicle string
	)

	cmd := &cobra.Command{
		Use:   "find <settlement>",
		Short: "Find the best deal of a settlement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			resp, err := a.mediator.Send(ctx, &economyQuery.FindDealQuery{
				SettlementID: args[0],
				MissionType:  mission,
				Vehicle:      vehicle,
			})
			if err != nil {
				return fmt.Errorf("failed to find deal: %w", err)
			}
			deal := resp.(*economyQuery.FindDealResponse)

			out := cmd.OutOrStdout()
			printHeader(out, fmt.Sprintf("Best %s deal for %s", mission, deal.Seller))
			w := newTable(cmd)
			fmt.Fprintf(w, "Deal:\t%s\n", deal.DealID)
			fmt.Fprintf(w, "Buyer:\t%s\n", deal.Buyer)
			fmt.Fprintf(w, "Profit:\t%.2f VP\n", deal.Profit)
			fmt.Fprintf(w, "  Selling revenue:\t%.2f VP\n", deal.SellingRevenue)
			fmt.Fprintf(w, "  Buying revenue:\t%.2f VP\n", deal.BuyingRevenue)
			fmt.Fprintf(w, "  Trade cost:\t%.2f VP\n", deal.TradeCost)
			fmt.Fprintf(w, "Computed at:\t%s\n", deal.CreatedAt)
			fmt.Fprintf(w, "Sell load:\t%s\n", listOrDash(deal.SellLoad))
			fmt.Fprintf(w, "Buy load:\t%s\n", listOrDash(deal.BuyLoad))
			w.Flush()

			if len(deal.Skipped) > 0 {
				fmt.Fprintf(out, "\nSkipped %d goods:\n", len(deal.Skipped))
				for _, s := range deal.Skipped {
					fmt.Fprintf(out, "  - %s\n", s)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mission, "mission", "TRADE", "Mission type: TRADE or DELIVERY")
	cmd.Flags().StringVar(&vehicle, "vehicle", "", "Vehicle to load (default: the settlement's first idle rover)")

	return cmd
}

// newDealExecuteCommand creates the deal execute subcommand
func newDealExecuteCommand() *cobra.Command {
	var (
		mission string
		vehicle string
	)

	cmd := &cobra.Command{
		Use:   "execute <settlement>",
		Short: "Carry out the best deal of a settlement",
		Long: `Plan a mission for the settlement's best deal, deliver the sell load,
negotiate the exchange and settle the difference in credit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			resp, err := a.mediator.Send(ctx, &economyCmd.ExecuteDealCommand{
				SettlementID: args[0],
				MissionType:  mission,
				Vehicle:      vehicle,
			})
			if err != nil {
				return err
			}
			exec := resp.(*economyCmd.ExecuteDealResponse)

			out := cmd.OutOrStdout()
			printHeader(out, fmt.Sprintf("Executed deal %s", exec.DealID))
			w := newTable(cmd)
			fmt.Fprintf(w, "Mission:\t%s\n", exec.MissionID)
			fmt.Fprintf(w, "Buyer:\t%s\n", exec.Buyer)
			fmt.Fprintf(w, "Sold:\t%s\n", listOrDash(exec.Sold))
			fmt.Fprintf(w, "Bought:\t%s\n", listOrDash(exec.Bought))
			fmt.Fprintf(w, "Return offer:\t%s\n", listOrDash(exec.ReturnOffer))
			fmt.Fprintf(w, "Credit:\t%.2f VP\n", exec.Credit)
			w.Flush()
			for _, warning := range exec.Warnings {
				fmt.Fprintf(out, "  ! %s\n", warning)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mission, "mission", "TRADE", "Mission type: TRADE or DELIVERY")
	cmd.Flags().StringVar(&vehicle, "vehicle", "", "Vehicle to load (default: the settlement's first idle rover)")

	return cmd
}
