package config

import (
	"time"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/commerce"
)

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "sqlite"
	}
	if cfg.Store.Driver == "sqlite" && cfg.Store.Path == "" {
		cfg.Store.Path = "marsecon.db"
	}
	if cfg.Store.Host == "" {
		cfg.Store.Host = "localhost"
	}
	if cfg.Store.Port == 0 {
		cfg.Store.Port = 5432
	}
	if cfg.Store.User == "" {
		cfg.Store.User = "marsecon"
	}
	if cfg.Store.Name == "" {
		cfg.Store.Name = "marsecon"
	}
	if cfg.Store.SSLMode == "" {
		cfg.Store.SSLMode = "disable"
	}
	if cfg.Store.Pool.MaxOpen == 0 {
		cfg.Store.Pool.MaxOpen = 10
	}
	if cfg.Store.Pool.MaxIdle == 0 {
		cfg.Store.Pool.MaxIdle = 2
	}
	if cfg.Store.Pool.MaxLifetime == 0 {
		cfg.Store.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Feed defaults
	if cfg.Feed.Address == "" {
		cfg.Feed.Address = "localhost:8081"
	}
	if cfg.Feed.MessagesPerSecond == 0 {
		cfg.Feed.MessagesPerSecond = 50
	}
	if cfg.Feed.Burst == 0 {
		cfg.Feed.Burst = 100
	}

	// Economy defaults
	if cfg.Economy.ValuationInterval == 0 {
		cfg.Economy.ValuationInterval = 50
	}
	if cfg.Economy.ListValidity == 0 {
		cfg.Economy.ListValidity = 500
	}
	if cfg.Economy.ListOffset == 0 {
		cfg.Economy.ListOffset = 10
	}
	if cfg.Economy.TradeModifier == 0 {
		cfg.Economy.TradeModifier = 1
	}
	def := commerce.DefaultConfig()
	c := &cfg.Economy.Commerce
	if c.SellCreditLimit == 0 {
		c.SellCreditLimit = def.SellCreditLimit
	}
	if c.MissionBaseMass == 0 {
		c.MissionBaseMass = def.MissionBaseMass
	}
	if c.MinLifeSupport == 0 {
		c.MinLifeSupport = def.MinLifeSupport
	}
	if c.MinRepairParts == 0 {
		c.MinRepairParts = def.MinRepairParts
	}
	if c.MinEquipment == 0 {
		c.MinEquipment = def.MinEquipment
	}
	if c.EVASuitMargin == 0 {
		c.EVASuitMargin = def.EVASuitMargin
	}
	if c.RangeFraction == 0 {
		c.RangeFraction = def.RangeFraction
	}
	if c.DealFrequency == 0 {
		c.DealFrequency = def.DealFrequency
	}

	// Scenario defaults
	if cfg.Scenario.Settlements == 0 {
		cfg.Scenario.Settlements = 4
	}
	if cfg.Scenario.Seed == 0 {
		cfg.Scenario.Seed = 1
	}
}
