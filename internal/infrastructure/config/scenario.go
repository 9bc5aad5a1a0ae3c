package config

// ScenarioConfig selects the settlements a run starts with
type ScenarioConfig struct {
	// Path to a YAML scenario; empty generates one
	Path string `mapstructure:"path"`

	// Seed drives scenario generation
	Seed int64 `mapstructure:"seed"`

	// Settlements is the number of settlements to generate
	Settlements int `mapstructure:"settlements" validate:"min=2,max=64"`

	// Snapshot is the compressed snapshot file written after a run
	Snapshot string `mapstructure:"snapshot"`
}
