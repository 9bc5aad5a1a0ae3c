package config

// FeedConfig holds the websocket event feed configuration
type FeedConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Address the feed listens on, host:port
	Address string `mapstructure:"address" validate:"required"`

	// MessagesPerSecond throttles each client connection
	MessagesPerSecond float64 `mapstructure:"messages_per_second" validate:"gt=0"`

	// Burst is the number of messages a client may receive at once
	Burst int `mapstructure:"burst" validate:"min=1"`
}
