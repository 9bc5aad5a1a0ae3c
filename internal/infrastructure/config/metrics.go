package config

import (
	"fmt"
	"net"
	"strconv"
)

// MetricsConfig exposes request timings and per-settlement economy gauges
// (good values, credit balances, best-deal profit) to Prometheus
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Host defaults to localhost so gauges stay off the network unless asked
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`
	Path string `mapstructure:"path" validate:"omitempty,startswith=/"`
}

// Addr is the listen address of the scrape server
func (m MetricsConfig) Addr() string {
	return net.JoinHostPort(m.Host, strconv.Itoa(m.Port))
}

// Endpoint is the full scrape URL
func (m MetricsConfig) Endpoint() string {
	return fmt.Sprintf("http://%s%s", m.Addr(), m.Path)
}
