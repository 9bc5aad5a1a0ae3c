package settlement

import "github.com/mars-sim/mars-sim-sub053/internal/domain/market"

// Profile is the declarative description of a settlement at the start of a run.
// Goods are referenced by catalog name.
type Profile struct {
	ID          string                           `yaml:"id" json:"id" validate:"required"`
	Name        string                           `yaml:"name,omitempty" json:"name,omitempty"`
	Phi         float64                          `yaml:"phi" json:"phi" validate:"gte=0,lte=3.141592653589793"`
	Theta       float64                          `yaml:"theta" json:"theta"`
	Objective   string                           `yaml:"objective,omitempty" json:"objective,omitempty"`
	Citizens    int                              `yaml:"citizens" json:"citizens" validate:"gte=0"`
	Jobs        map[string]int                   `yaml:"jobs,omitempty" json:"jobs,omitempty"`
	Tech        map[string]int                   `yaml:"tech,omitempty" json:"tech,omitempty"`
	PowerValue  float64                          `yaml:"power_value" json:"power_value" validate:"gte=0"`
	WaterRation float64                          `yaml:"water_ration" json:"water_ration" validate:"gte=0"`
	Resources   map[string]float64               `yaml:"resources,omitempty" json:"resources,omitempty"`
	Items       map[string]int                   `yaml:"items,omitempty" json:"items,omitempty"`
	InUse       map[string]int                   `yaml:"in_use,omitempty" json:"in_use,omitempty"`
	Vehicles    map[string]int                   `yaml:"vehicles,omitempty" json:"vehicles,omitempty"`
	Maintenance map[string]int                   `yaml:"maintenance,omitempty" json:"maintenance,omitempty"`
	Essentials  map[string]market.EssentialLimit `yaml:"essentials,omitempty" json:"essentials,omitempty" validate:"dive"`
	Disabled    []string                         `yaml:"disabled_missions,omitempty" json:"disabled_missions,omitempty"`
}
