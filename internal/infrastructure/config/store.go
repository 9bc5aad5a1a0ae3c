package config

import (
	"fmt"
	"time"
)

// StoreConfig selects where settlement ledgers, credit balances, value
// history and deal records are kept between runs. SQLite is the default;
// Postgres lets several engines share one economy.
type StoreConfig struct {
	Driver string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`

	// URL overrides the Postgres fields below when set
	URL string `mapstructure:"url"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	// Path is the SQLite file; empty or ":memory:" keeps the economy in memory
	Path string `mapstructure:"path"`

	Pool StorePool `mapstructure:"pool"`
}

// StorePool bounds the Postgres connections one engine holds
type StorePool struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}

// InMemory reports whether saved economy state is lost when the process exits
func (s StoreConfig) InMemory() bool {
	return s.Driver == "sqlite" && (s.Path == "" || s.Path == ":memory:")
}

// DSN returns the data source string for the configured driver
func (s StoreConfig) DSN() string {
	switch s.Driver {
	case "postgres":
		if s.URL != "" {
			return s.URL
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			s.Host, s.Port, s.User, s.Password, s.Name, s.SSLMode)
	case "sqlite":
		if s.InMemory() {
			return ":memory:"
		}
		return s.Path
	}
	return ""
}
