package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mars-sim/mars-sim-sub053/internal/adapters/persistence"
	"github.com/mars-sim/mars-sim-sub053/internal/application/economy"
	economyQuery "github.com/mars-sim/mars-sim-sub053/internal/application/economy/queries"
)

// NewMarketCommand creates the market command with subcommands
func NewMarketCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "market",
		Short: "View settlement markets",
		Long: `Inspect a settlement's market ledger: value points, demand, supply,
prices and the current buy and sell shortlists.

Examples:
  marsecon market show s01 --advance 600
  marsecon market show s01 --top 10 --resume run.zst
  marsecon market history s01 water --limit 20`,
	}

	// Add subcommands
	cmd.AddCommand(newMarketShowCommand())
	cmd.AddCommand(newMarketHistoryCommand())

	return cmd
}

// newMarketShowCommand creates the market show subcommand
func newMarketShowCommand() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "show <settlement>",
		Short: "Show a settlement's goods and shortlists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			resp, err := a.mediator.Send(ctx, &economyQuery.GetMarketQuery{SettlementID: args[0]})
			if err != nil {
				return fmt.Errorf("failed to get market: %w", err)
			}
			view := resp.(*economyQuery.GetMarketResponse).Market

			out := cmd.OutOrStdout()
			printHeader(out, fmt.Sprintf("Market of %s at %s", view.SettlementID, view.At))
			fmt.Fprintf(out, "Shortlists refreshed: %s\n\n", view.RefreshedAt)

			rows := topGoods(view.Goods, top)
			w := newTable(cmd)
			fmt.Fprintln(w, "GOOD\tCATEGORY\tVALUE\tDEMAND\tSUPPLY\tPRICE\tHELD")
			for _, g := range rows {
				fmt.Fprintf(w, "%s\t%s\t%.3f\t%.2f\t%.2f\t%.2f\t%.1f\n",
					g.Name, g.Category, g.Value, g.Demand, g.Supply, g.Price, g.Held)
			}
			w.Flush()

			printShortlist(cmd, "Buying", view.Buy)
			printShortlist(cmd, "Selling", view.Sell)
			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 20, "Show only the most valuable goods (0 for all)")

	return cmd
}

// topGoods orders goods by descending value and keeps the first n
func topGoods(goods []economy.GoodView, n int) []economy.GoodView {
	rows := append([]economy.GoodView(nil), goods...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Value > rows[j].Value })
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

func printShortlist(cmd *cobra.Command, title string, rows []economy.ShortlistRow) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s (%d):\n", title, len(rows))
	if len(rows) == 0 {
		fmt.Fprintln(out, "  (none)")
		return
	}
	w := newTable(cmd)
	fmt.Fprintln(w, "  GOOD\tQUANTITY\tPRICE")
	for _, r := range rows {
		fmt.Fprintf(w, "  %s\t%d\t%.2f\n", r.Name, r.Quantity, r.Price)
	}
	w.Flush()
}

// newMarketHistoryCommand creates the market history subcommand
func newMarketHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history <settlement> <good>",
		Short: "Show recorded value changes of a good",
		Long: `Show the value changes recorded by 'simulate --history', newest first.

Example:
  marsecon market history s01 water --limit 20`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			good, err := a.engine.Catalog().LookupByName(args[1])
			if err != nil {
				return err
			}
			db, err := a.database()
			if err != nil {
				return err
			}
			records, err := persistence.NewGormValueHistoryRepository(db).Recent(ctx, args[0], good.ID(), limit)
			if err != nil {
				return fmt.Errorf("failed to read value history: %w", err)
			}

			out := cmd.OutOrStdout()
			printHeader(out, fmt.Sprintf("%s at %s", good.Name(), args[0]))
			if len(records) == 0 {
				fmt.Fprintln(out, "No value changes recorded")
				return nil
			}
			w := newTable(cmd)
			fmt.Fprintln(w, "AT\tOLD\tNEW\tCHANGE\tDEMAND\tSUPPLY")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%+.1f%%\t%.2f\t%.2f\n",
					r.RecordedAt(), r.OldValue(), r.NewValue(), r.ChangePercent(), r.Demand(), r.Supply())
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of records")

	return cmd
}
