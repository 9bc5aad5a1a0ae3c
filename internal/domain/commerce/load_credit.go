package commerce

import (
	"math"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/market"
)

// Per-person consumption in kg per sol and the margins a crewed trip carries
const (
	oxygenPerSol      = 0.84
	waterPerSol       = 3.0
	foodPerSol        = 0.62
	oxygenMargin      = 1.5
	waterMargin       = 1.5
	foodMargin        = 1.5
	lifeSupportMargin = 1.5
	maxTradeCrew      = 2

	// millisolsPerHour converts km/h into km per millisol (one sol is 88775.244 s)
	millisolsPerHour = 3600 / 88.775244
)

// DetermineLoadCredit prices a load at a settlement unit by unit. Each unit
// is valued at the settlement's marginal value with supply walked forward
// (buy) or backward (sell, never below zero), times the good's production
// cost. Amount resources are walked in container-fulls of their standard
// container, with a final partial unit for any remainder.
func (f *Finder) DetermineLoadCredit(load Load, s Settlement, buy bool) (float64, error) {
	ledger := s.Market()
	result := 0.0

	for _, id := range load.IDs() {
		g, err := f.catalog.Lookup(id)
		if err != nil {
			return 0, err
		}
		n := load[id]
		cost := g.CostOutput()
		supply := market.NumberHeld(s, g)

		units := []float64{}
		if g.Category() == goods.CategoryAmountResource {
			container, err := f.catalog.ContainerForResource(g)
			if err != nil {
				return 0, err
			}
			units = containerUnits(float64(n), container.Capacity())
		} else {
			for i := 0; i < n; i++ {
				units = append(units, 1)
			}
		}

		for x, multiplier := range units {
			amount := supply + float64(x)
			if !buy {
				amount = math.Max(0, supply-float64(x))
			}
			result += ledger.GoodValueWithSupply(id, amount) * multiplier * cost
		}
	}

	return result, nil
}

// containerUnits splits kg into full containers plus a partial remainder
func containerUnits(kg, capacity float64) []float64 {
	if kg <= 0 {
		return nil
	}
	if capacity <= 0 {
		return []float64{kg}
	}
	full := int(kg / capacity)
	units := make([]float64, 0, full+1)
	for i := 0; i < full; i++ {
		units = append(units, capacity)
	}
	if rest := kg - float64(full)*capacity; rest > 0 {
		units = append(units, rest)
	}
	return units
}

// MissionCost prices the fuel for a trip of distance km and, for a crewed
// vehicle, the oxygen, water and food its crew consumes on the way, all at
// the starting settlement's sell-side value.
func (f *Finder) MissionCost(start Settlement, vehicle Vehicle, distance float64) (float64, error) {
	spec := vehicle.Spec()
	needed := Load{}

	fuel, err := f.catalog.LookupByName(spec.FuelResource)
	if err != nil {
		return 0, err
	}
	needed[fuel.ID()] += int(distance / spec.FuelEconomy)

	if spec.IsCrewed() {
		crew := float64(min(spec.CrewCapacity, maxTradeCrew))
		kmPerMillisol := (spec.BaseSpeed / 2) / millisolsPerHour
		tripSols := (distance/kmPerMillisol + 1000) / 1000
		perPerson := tripSols * crew * lifeSupportMargin

		for _, r := range []struct {
			name   string
			amount float64
		}{
			{goods.Oxygen, oxygenPerSol * oxygenMargin * perPerson},
			{goods.Water, waterPerSol * waterMargin * perPerson},
			{goods.Food, foodPerSol * foodMargin * perPerson},
		} {
			g, err := f.catalog.LookupByName(r.name)
			if err != nil {
				return 0, err
			}
			needed[g.ID()] += int(r.amount)
		}
	}

	return f.DetermineLoadCredit(needed, start, false)
}
