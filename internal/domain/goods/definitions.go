package goods

import "fmt"

// ResourceDefinition describes one amount resource
type ResourceDefinition struct {
	Name        string   `yaml:"name" json:"name" validate:"required"`
	Type        GoodType `yaml:"type" json:"type" validate:"required"`
	Phase       Phase    `yaml:"phase" json:"phase" validate:"required,oneof=GAS LIQUID SOLID"`
	LifeSupport bool     `yaml:"life_support" json:"life_support"`
	Edible      bool     `yaml:"edible" json:"edible"`
}

// PartDefinition describes one item resource (part)
type PartDefinition struct {
	Name string   `yaml:"name" json:"name" validate:"required"`
	Type GoodType `yaml:"type" json:"type" validate:"required"`
	Mass float64  `yaml:"mass" json:"mass" validate:"gt=0"`
}

// EquipmentDefinition describes an equipment type. EVA suits become
// CategoryEquipment goods; every other equipment type is a container.
type EquipmentDefinition struct {
	Name     string  `yaml:"name" json:"name" validate:"required"`
	Mass     float64 `yaml:"mass" json:"mass" validate:"gt=0"`
	Capacity float64 `yaml:"capacity" json:"capacity" validate:"gte=0"`
	Holds    Phase   `yaml:"holds" json:"holds"`
	EVASuit  bool    `yaml:"eva_suit" json:"eva_suit"`
}

// BinDefinition describes a storage bin
type BinDefinition struct {
	Name     string  `yaml:"name" json:"name" validate:"required"`
	Mass     float64 `yaml:"mass" json:"mass" validate:"gt=0"`
	Capacity float64 `yaml:"capacity" json:"capacity" validate:"gt=0"`
}

// VehicleDefinition is the static spec of a vehicle type
type VehicleDefinition struct {
	Name          string  `yaml:"name" json:"name" validate:"required"`
	Mass          float64 `yaml:"mass" json:"mass" validate:"gt=0"`
	CargoCapacity float64 `yaml:"cargo_capacity" json:"cargo_capacity" validate:"gte=0"`
	BaseSpeed     float64 `yaml:"base_speed" json:"base_speed" validate:"gt=0"`
	FuelResource  string  `yaml:"fuel_resource" json:"fuel_resource" validate:"required"`
	FuelEconomy   float64 `yaml:"fuel_economy" json:"fuel_economy" validate:"gt=0"`
	FuelCapacity  float64 `yaml:"fuel_capacity" json:"fuel_capacity" validate:"gt=0"`
	CrewCapacity  int     `yaml:"crew_capacity" json:"crew_capacity" validate:"gte=0"`
}

// Range returns the full-tank range in km
func (v VehicleDefinition) Range() float64 {
	return v.FuelCapacity * v.FuelEconomy
}

// IsCrewed reports whether the vehicle carries people
func (v VehicleDefinition) IsCrewed() bool {
	return v.CrewCapacity > 0
}

// RobotDefinition describes a robot type
type RobotDefinition struct {
	Name string  `yaml:"name" json:"name" validate:"required"`
	Mass float64 `yaml:"mass" json:"mass" validate:"gt=0"`
}

// Definitions enumerates everything the catalog turns into goods
type Definitions struct {
	Resources []ResourceDefinition  `yaml:"resources" json:"resources" validate:"dive"`
	Parts     []PartDefinition      `yaml:"parts" json:"parts" validate:"dive"`
	Equipment []EquipmentDefinition `yaml:"equipment" json:"equipment" validate:"dive"`
	Bins      []BinDefinition       `yaml:"bins" json:"bins" validate:"dive"`
	Vehicles  []VehicleDefinition   `yaml:"vehicles" json:"vehicles" validate:"dive"`
	Robots    []RobotDefinition     `yaml:"robots" json:"robots" validate:"dive"`
}

// Validate checks the invariants struct tags cannot express
func (d Definitions) Validate() error {
	seen := make(map[string]bool)
	add := func(name string) error {
		key := normalizeName(name)
		if key == "" {
			return fmt.Errorf("%w: empty name", ErrInvalidDefinition)
		}
		if seen[key] {
			return fmt.Errorf("%w: %s", ErrDuplicateGood, name)
		}
		seen[key] = true
		return nil
	}

	for _, r := range d.Resources {
		if err := add(r.Name); err != nil {
			return err
		}
		if !r.Type.IsValid() {
			return fmt.Errorf("%w: resource %s has type %q", ErrInvalidDefinition, r.Name, r.Type)
		}
		if !r.Phase.IsValid() {
			return fmt.Errorf("%w: resource %s has phase %q", ErrInvalidDefinition, r.Name, r.Phase)
		}
	}
	for _, p := range d.Parts {
		if err := add(p.Name); err != nil {
			return err
		}
		if !p.Type.IsValid() {
			return fmt.Errorf("%w: part %s has type %q", ErrInvalidDefinition, p.Name, p.Type)
		}
		if p.Mass <= 0 {
			return fmt.Errorf("%w: part %s must have positive mass", ErrInvalidDefinition, p.Name)
		}
	}
	for _, e := range d.Equipment {
		if err := add(e.Name); err != nil {
			return err
		}
		if !e.EVASuit && !e.Holds.IsValid() {
			return fmt.Errorf("%w: container %s has phase %q", ErrInvalidDefinition, e.Name, e.Holds)
		}
	}
	for _, b := range d.Bins {
		if err := add(b.Name); err != nil {
			return err
		}
	}
	for _, v := range d.Vehicles {
		if err := add(v.Name); err != nil {
			return err
		}
		if v.FuelEconomy <= 0 || v.BaseSpeed <= 0 {
			return fmt.Errorf("%w: vehicle %s needs positive speed and fuel economy", ErrInvalidDefinition, v.Name)
		}
	}
	for _, r := range d.Robots {
		if err := add(r.Name); err != nil {
			return err
		}
	}
	return nil
}
