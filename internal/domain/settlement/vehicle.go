package settlement

import (
	"fmt"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/commerce"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
)

// Vehicle is one dispatched vehicle: its spec, the fuel in its tank and
// the parts its crew may need for repairs on the road.
type Vehicle struct {
	spec        goods.VehicleDefinition
	fuel        float64
	repairParts []int
}

// NewVehicle creates a vehicle holding fuel kg, capped at the tank capacity
func NewVehicle(spec goods.VehicleDefinition, fuel float64, repairParts []int) (*Vehicle, error) {
	if fuel < 0 {
		return nil, fmt.Errorf("vehicle %s: fuel cannot be negative", spec.Name)
	}
	return &Vehicle{
		spec:        spec,
		fuel:        min(fuel, spec.FuelCapacity),
		repairParts: append([]int(nil), repairParts...),
	}, nil
}

func (v *Vehicle) Spec() goods.VehicleDefinition { return v.spec }
func (v *Vehicle) Fuel() float64                 { return v.fuel }

// RepairParts returns a copy of the vehicle's repair parts
func (v *Vehicle) RepairParts() []int {
	return append([]int(nil), v.repairParts...)
}

// Range returns the km the fuel in the tank covers. Every mission type
// burns fuel at the spec's economy.
func (v *Vehicle) Range(commerce.MissionType) float64 {
	return v.fuel * v.spec.FuelEconomy
}

// FuelPercentage returns the tank level as a percentage of capacity
func (v *Vehicle) FuelPercentage() float64 {
	if v.spec.FuelCapacity == 0 {
		return 0
	}
	return v.fuel / v.spec.FuelCapacity * 100
}

// Refuel draws fuel from the settlement's stores until the tank is full or
// the store is empty. Returns the kg transferred.
func (v *Vehicle) Refuel(s *Settlement) (float64, error) {
	fuel, err := s.lookup(v.spec.FuelResource, goods.CategoryAmountResource)
	if err != nil {
		return 0, err
	}
	kg := min(v.spec.FuelCapacity-v.fuel, s.AmountStored(fuel.ID()))
	if kg <= 0 {
		return 0, nil
	}
	if err := s.inventory.Retrieve(fuel.ID(), kg); err != nil {
		return 0, err
	}
	v.fuel += kg
	return kg, nil
}

// Consume burns the fuel needed for distance km, never below an empty tank
func (v *Vehicle) Consume(distance float64) {
	v.fuel = max(0, v.fuel-distance/v.spec.FuelEconomy)
}

// CanTravel reports whether the tank covers distance with a safety margin
func (v *Vehicle) CanTravel(distance, safetyMargin float64) bool {
	return v.Range(commerce.MissionTrade) >= distance*(1+safetyMargin)
}

func (v *Vehicle) String() string {
	return fmt.Sprintf("%s(fuel %.1f/%.1f)", v.spec.Name, v.fuel, v.spec.FuelCapacity)
}
