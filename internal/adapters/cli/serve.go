package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mars-sim/mars-sim-sub053/internal/adapters/feed"
	"github.com/mars-sim/mars-sim-sub053/internal/adapters/metrics"
	"github.com/mars-sim/mars-sim-sub053/internal/adapters/snapshot"
	"github.com/mars-sim/mars-sim-sub053/internal/application/common"
	economyCmd "github.com/mars-sim/mars-sim-sub053/internal/application/economy/commands"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var (
		tick time.Duration
		step float64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the economy continuously",
		Long: `Run the economy against the wall clock: every --tick the simulation
advances by --step millisols. Value changes, shortlist refreshes, deals
and credit changes are streamed to websocket clients on the feed address
and exposed as Prometheus metrics when enabled.

On shutdown the state is written to the configured snapshot.

Examples:
  marsecon serve --tick 1s
  marsecon serve --tick 200ms --step 10 --resume run.zst`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			if step <= 0 {
				step = a.cfg.Economy.ValuationInterval
			}
			logger := common.LoggerFromContext(ctx)

			g, ctx := errgroup.WithContext(ctx)
			if a.cfg.Feed.Enabled {
				hub := feed.NewHub(a.cfg.Feed.MessagesPerSecond, a.cfg.Feed.Burst)
				detach := hub.Attach(a.engine, a.engine.Catalog())
				defer detach()
				g.Go(func() error { return feed.Serve(ctx, a.cfg.Feed.Address, hub) })
				logger.Log("INFO", "event feed listening", map[string]interface{}{
					"address": a.cfg.Feed.Address,
					"path":    feed.Path,
				})
			}
			if a.cfg.Metrics.Enabled {
				g.Go(func() error { return metrics.Serve(ctx, a.cfg.Metrics.Addr(), a.cfg.Metrics.Path) })
				logger.Log("INFO", "metrics endpoint listening", map[string]interface{}{
					"endpoint": a.cfg.Metrics.Endpoint(),
				})
			}
			g.Go(func() error { return a.runTicker(ctx, tick, step) })

			if err := g.Wait(); err != nil && err != context.Canceled {
				return err
			}

			if path := a.cfg.Scenario.Snapshot; path != "" {
				if err := snapshot.Write(path, a.engine.Snapshot()); err != nil {
					return err
				}
				logger.Log("INFO", "snapshot written", map[string]interface{}{"path": path})
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&tick, "tick", time.Second, "Wall-clock interval between steps")
	cmd.Flags().Float64Var(&step, "step", 0, "Millisols per step (default: economy.valuation_interval)")

	return cmd
}

// runTicker advances the engine one step per tick until ctx is done
func (a *app) runTicker(ctx context.Context, tick time.Duration, step float64) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			resp, err := a.mediator.Send(ctx, &economyCmd.AdvanceTimeCommand{Millisols: step})
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			a.recordTick(resp.(*economyCmd.AdvanceTimeResponse).Report)
		}
	}
}
