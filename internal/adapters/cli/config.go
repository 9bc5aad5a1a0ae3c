package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mars-sim/mars-sim-sub053/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect marsecon configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (MARSECON_* prefix, DATABASE_URL)
2. Config file (marsecon.yaml)
3. Default values

Example:
  marsecon config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			w := newTable(cmd)
			fmt.Fprintln(w, "Database:")
			fmt.Fprintf(w, "  Type:\t%s\n", cfg.Store.Driver)
			switch {
			case cfg.Store.URL != "":
				fmt.Fprintf(w, "  URL:\t%s\n", maskPassword(cfg.Store.URL))
			case cfg.Store.Driver == "sqlite":
				path := cfg.Store.Path
				if cfg.Store.InMemory() {
					path = "(in memory)"
				}
				fmt.Fprintf(w, "  Path:\t%s\n", path)
			default:
				fmt.Fprintf(w, "  Host:\t%s:%d\n", cfg.Store.Host, cfg.Store.Port)
				fmt.Fprintf(w, "  Database:\t%s\n", cfg.Store.Name)
				fmt.Fprintf(w, "  User:\t%s\n", cfg.Store.User)
			}
			fmt.Fprintf(w, "  Max Connections:\t%d\n", cfg.Store.Pool.MaxOpen)

			fmt.Fprintln(w, "Economy:")
			fmt.Fprintf(w, "  Valuation Interval:\t%.0f millisols\n", cfg.Economy.ValuationInterval)
			fmt.Fprintf(w, "  List Validity:\t%.0f millisols (offset %.0f)\n", cfg.Economy.ListValidity, cfg.Economy.ListOffset)
			fmt.Fprintf(w, "  Trade Modifier:\t%g\n", cfg.Economy.TradeModifier)
			fmt.Fprintf(w, "  Persist Credit:\t%t\n", cfg.Economy.CreditPersistAmounts)

			fmt.Fprintln(w, "Scenario:")
			if cfg.Scenario.Path != "" {
				fmt.Fprintf(w, "  Path:\t%s\n", cfg.Scenario.Path)
			} else {
				fmt.Fprintf(w, "  Generated:\t%d settlements, seed %d\n", cfg.Scenario.Settlements, cfg.Scenario.Seed)
			}
			if cfg.Scenario.Snapshot != "" {
				fmt.Fprintf(w, "  Snapshot:\t%s\n", cfg.Scenario.Snapshot)
			}

			fmt.Fprintln(w, "Feed:")
			fmt.Fprintf(w, "  Enabled:\t%t\n", cfg.Feed.Enabled)
			fmt.Fprintf(w, "  Address:\t%s\n", cfg.Feed.Address)
			fmt.Fprintf(w, "  Rate Limit:\t%g msg/s (burst: %d)\n", cfg.Feed.MessagesPerSecond, cfg.Feed.Burst)

			fmt.Fprintln(w, "Metrics:")
			fmt.Fprintf(w, "  Enabled:\t%t\n", cfg.Metrics.Enabled)
			fmt.Fprintf(w, "  Endpoint:\t%s\n", cfg.Metrics.Endpoint())

			fmt.Fprintln(w, "Logging:")
			fmt.Fprintf(w, "  Level:\t%s\n", cfg.Logging.Level)
			fmt.Fprintf(w, "  Format:\t%s\n", cfg.Logging.Format)
			fmt.Fprintf(w, "  Output:\t%s\n", cfg.Logging.Output)

			return w.Flush()
		},
	}
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
