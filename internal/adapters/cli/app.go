package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/mars-sim/mars-sim-sub053/internal/adapters/metrics"
	"github.com/mars-sim/mars-sim-sub053/internal/adapters/persistence"
	"github.com/mars-sim/mars-sim-sub053/internal/adapters/scenario"
	"github.com/mars-sim/mars-sim-sub053/internal/adapters/snapshot"
	"github.com/mars-sim/mars-sim-sub053/internal/application/common"
	"github.com/mars-sim/mars-sim-sub053/internal/application/economy"
	economyCmd "github.com/mars-sim/mars-sim-sub053/internal/application/economy/commands"
	economyQuery "github.com/mars-sim/mars-sim-sub053/internal/application/economy/queries"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/credit"
	"github.com/mars-sim/mars-sim-sub053/internal/infrastructure/config"
	"github.com/mars-sim/mars-sim-sub053/internal/infrastructure/database"
	"github.com/mars-sim/mars-sim-sub053/internal/infrastructure/logging"
)

// app is everything one command invocation runs against
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	closers   []io.Closer
	engine    *economy.Engine
	mediator  common.Mediator
	collector *metrics.EconomyMetricsCollector
	db        *gorm.DB
}

// newApp loads the config, builds the engine from the scenario, resumes
// saved state when asked and wires the mediator. The returned context
// carries the logger.
func newApp(cmd *cobra.Command) (*app, context.Context, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if scenarioPath != "" {
		cfg.Scenario.Path = scenarioPath
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, closer, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	a := &app{cfg: cfg, logger: logger, closers: []io.Closer{closer}}
	ctx := common.WithLogger(cmd.Context(), logging.NewSlogLogger(logger))

	if err := a.buildEngine(ctx); err != nil {
		a.Close()
		return nil, nil, err
	}
	if err := a.wireMediator(); err != nil {
		a.Close()
		return nil, nil, err
	}

	if advanceBy > 0 {
		resp, err := a.mediator.Send(ctx, &economyCmd.AdvanceTimeCommand{Millisols: advanceBy})
		if err != nil {
			a.Close()
			return nil, nil, err
		}
		a.recordTick(resp.(*economyCmd.AdvanceTimeResponse).Report)
	}
	return a, ctx, nil
}

func (a *app) buildEngine(ctx context.Context) error {
	doc, err := loadScenario(a.cfg.Scenario)
	if err != nil {
		return err
	}
	catalog, err := doc.BuildCatalog()
	if err != nil {
		return fmt.Errorf("failed to build catalog: %w", err)
	}
	a.engine, err = economy.NewEngine(catalog, doc.StartTime(), doc.Settlements, economyConfig(a.cfg.Economy))
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}

	if resumePath != "" {
		snap, err := snapshot.Read(resumePath)
		if err != nil {
			return err
		}
		if err := a.engine.Restore(snap); err != nil {
			return fmt.Errorf("failed to restore snapshot: %w", err)
		}
	}
	if fromDatabase {
		store, err := a.store()
		if err != nil {
			return err
		}
		snap, err := store.Load(ctx, a.engine.SettlementIDs(), a.engine.Now())
		if err != nil {
			return err
		}
		if err := a.engine.Restore(snap); err != nil {
			return fmt.Errorf("failed to restore saved state: %w", err)
		}
	}
	return nil
}

func (a *app) wireMediator() error {
	a.mediator = common.NewMediator()
	a.mediator.Use(common.LoggingMiddleware())

	if a.cfg.Metrics.Enabled {
		metrics.InitRegistry()
		requests := metrics.NewRequestMetricsCollector()
		if err := requests.Register(); err != nil {
			return fmt.Errorf("failed to register request metrics: %w", err)
		}
		a.mediator.Use(metrics.PrometheusMiddleware(requests))

		a.collector = metrics.NewEconomyMetricsCollector(a.engine.Catalog())
		if err := a.collector.Register(); err != nil {
			return fmt.Errorf("failed to register economy metrics: %w", err)
		}
		a.collector.Attach(a.engine)
	}

	handlers := []struct {
		register func(common.Mediator, common.RequestHandler) error
		handler  common.RequestHandler
	}{
		{common.RegisterHandler[*economyCmd.AdvanceTimeCommand], economyCmd.NewAdvanceTimeHandler(a.engine)},
		{common.RegisterHandler[*economyCmd.ExecuteDealCommand], economyCmd.NewExecuteDealHandler(a.engine)},
		{common.RegisterHandler[*economyQuery.FindDealQuery], economyQuery.NewFindDealHandler(a.engine)},
		{common.RegisterHandler[*economyQuery.GetMarketQuery], economyQuery.NewGetMarketHandler(a.engine)},
		{common.RegisterHandler[*economyQuery.GetCreditQuery], economyQuery.NewGetCreditHandler(a.engine)},
	}
	for _, h := range handlers {
		if err := h.register(a.mediator, h.handler); err != nil {
			return fmt.Errorf("failed to register handler: %w", err)
		}
	}
	return nil
}

// database opens and migrates the configured database once
func (a *app) database() (*gorm.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := database.NewConnection(&a.cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	a.db = db
	return db, nil
}

func (a *app) store() (*economy.Store, error) {
	db, err := a.database()
	if err != nil {
		return nil, err
	}
	return economy.NewStore(
		persistence.NewGormLedgerRepository(db),
		persistence.NewGormCreditRepository(db),
		persistence.NewGormCostRepository(db),
	), nil
}

func (a *app) recordTick(report economy.TickReport) {
	if a.collector != nil {
		a.collector.RecordTick(report)
	}
}

// Close releases the database and the log output
func (a *app) Close() {
	if a.db != nil {
		_ = database.Close(a.db)
	}
	for _, c := range a.closers {
		_ = c.Close()
	}
}

func loadScenario(cfg config.ScenarioConfig) (*scenario.Document, error) {
	if cfg.Path == "" {
		return scenario.Generate(cfg.Seed, cfg.Settlements)
	}
	loader, err := scenario.NewLoader()
	if err != nil {
		return nil, err
	}
	return loader.LoadFile(cfg.Path)
}

func economyConfig(c config.EconomyConfig) economy.Config {
	return economy.Config{
		ValuationInterval: c.ValuationInterval,
		ListValidity:      c.ListValidity,
		ListOffset:        c.ListOffset,
		TradeModifier:     c.TradeModifier,
		Commerce:          c.Commerce,
		Credit:            credit.Policy{PersistAmounts: c.CreditPersistAmounts},
	}
}
