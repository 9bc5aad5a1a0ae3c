package market

import (
	"math"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
)

// Per-person daily consumption rates (kg/sol)
const (
	oxygenConsumptionRate = 0.84
	waterConsumptionRate  = 3.0
	waterUsageRate        = 6.0
	foodConsumptionRate   = 0.62
)

const (
	lifeSupportFactor      = 0.005
	hoursPerMillisol       = 0.0247
	manufacturingInput     = 2.0
	foodProductionInput    = 0.1
	maxProcessingDemand    = 3000.0
	baseMineralDemand      = 0.25
	iceValueModifier       = 0.1
	waterValueModifier     = 0.2
	methanolValueModifier  = 0.05
	methaneValueModifier   = 0.07
	hydrogenValueModifier  = 0.0001
	co2ValueModifier       = 0.0075
	sandValueModifier      = 0.03
	rockValueModifier      = 0.02
	mineralValueModifier   = 0.02
	oreValueModifier       = 0.05
	regolithValueModifier  = 2.0
	soilValueModifier      = 0.05
	oxygenValueModifier    = 8.0
	foodValueModifier      = 0.1
	firstResourceWeight    = 0.5
	steadyResourceRetained = 0.97
	steadyResourceWeight   = 0.005
)

// refreshResource recomputes the demand and supply of an amount resource
func refreshResource(l *Ledger, site Site, g *goods.Good) {
	id := g.ID()

	projected := math.Min(HighestProjectedValue,
		l.iceDemand(g)+
			l.lifeSupportDemand(site, g)+
			l.potableWaterDemand(site, g)+
			l.vehicleFuelDemand(site, g)+
			l.resourceManufacturingDemand(site, g)+
			l.resourceFoodProductionDemand(site, g)+
			l.mineralDemand(g))

	flattened := projected * resourceFlatten(g) * wasteModifier(g)
	trade := l.DetermineTradeDemand(site, g)

	d := l.detail[id]
	d.projected = projected
	d.trade = trade

	l.blend(id,
		func(float64) float64 {
			return firstResourceWeight*flattened + firstResourceWeight*trade
		},
		func(prev float64) float64 {
			return steadyResourceRetained*prev + steadyResourceWeight*flattened + steadyResourceWeight*trade
		})

	l.SetSupply(id, squareRootSupply(site.AmountStored(id)))
}

// demandNamed returns the current demand of a good by name, 0 if absent
func (l *Ledger) demandNamed(name string) float64 {
	g, err := l.env.Catalog.LookupByName(name)
	if err != nil {
		return 0
	}
	return l.demand[g.ID()]
}

func (l *Ledger) iceDemand(g *goods.Good) float64 {
	if nameKey(g) != goods.Ice {
		return 0
	}
	ice := 1 + l.demand[g.ID()]
	water := 1 + l.demandNamed(goods.Water)
	return (0.5*water + 0.5*ice) / ice * iceValueModifier
}

func (l *Ledger) lifeSupportDemand(site Site, g *goods.Good) float64 {
	if !g.IsLifeSupport() {
		return 0
	}

	var perPerson float64
	switch nameKey(g) {
	case goods.Oxygen:
		perPerson = oxygenConsumptionRate * oxygenValueModifier
	case goods.Water:
		perPerson = waterConsumptionRate * waterValueModifier
	case goods.Food:
		perPerson = foodConsumptionRate * foodValueModifier
	case goods.Methane:
		perPerson = waterConsumptionRate * methaneValueModifier
	case goods.CarbonDioxide:
		perPerson = co2ValueModifier
	case goods.Hydrogen:
		perPerson = waterConsumptionRate * hydrogenValueModifier
	}

	return float64(site.Citizens()) * perPerson * l.CommerceFactor(CommerceTrade) * lifeSupportFactor
}

func (l *Ledger) potableWaterDemand(site Site, g *goods.Good) float64 {
	if nameKey(g) != goods.Water {
		return 0
	}
	return float64(site.Citizens()) * waterUsageRate * waterValueModifier *
		l.CommerceFactor(CommerceTrade) * (1 + site.WaterRationLevel())
}

func (l *Ledger) vehicleFuelDemand(site Site, g *goods.Good) float64 {
	transport := l.CommerceFactor(CommerceTransport)

	var demand float64
	switch nameKey(g) {
	case goods.Methanol:
		demand = site.FuelCapacity(g.ID()) * transport * methanolValueModifier
	case goods.Methane:
		demand = site.FuelCapacity(g.ID()) * transport * methaneValueModifier / 5
	case goods.Hydrogen:
		demand = transport * hydrogenValueModifier / 10
	}
	return demand / 5
}

func (l *Ledger) resourceManufacturingDemand(site Site, g *goods.Good) float64 {
	tech := site.TechLevel(goods.ProcessManufacturing)
	if tech < 0 {
		return 0
	}

	demand := 0.0
	for _, p := range l.env.Catalog.Processes().UpToTech(goods.ProcessManufacturing, tech) {
		in, ok := p.InputNamed(g.Name())
		if !ok || in.Kind != goods.ItemAmountResource {
			continue
		}
		value := l.processInputValue(site, p, false)
		if cType, ok := resourceCommerceType(site.Objective(), g); ok {
			value *= l.CommerceFactor(cType)
		}
		value *= manufacturingInput
		if total := p.TotalInputAmount(); total > 0 {
			demand += value / total / 1000
		}
	}
	return math.Min(maxProcessingDemand, demand/100)
}

func (l *Ledger) resourceFoodProductionDemand(site Site, g *goods.Good) float64 {
	tech := site.TechLevel(goods.ProcessFoodProduction)
	if tech < 0 {
		return 0
	}

	demand := 0.0
	for _, p := range l.env.Catalog.Processes().UpToTech(goods.ProcessFoodProduction, tech) {
		in, ok := p.InputNamed(g.Name())
		if !ok || in.Kind != goods.ItemAmountResource {
			continue
		}
		value := l.processInputValue(site, p, false) *
			l.CommerceFactor(CommerceTrade) * l.CommerceFactor(CommerceCrop) * foodProductionInput
		if total := p.TotalInputAmount(); total > 0 {
			demand += value / total
		}
	}
	return math.Min(maxProcessingDemand, demand)
}

// processInputValue is the value of a process's outputs at this settlement
// minus the value of the power it draws. With skipInputs, outputs that are
// also inputs are left out.
func (l *Ledger) processInputValue(site Site, p goods.Process, skipInputs bool) float64 {
	outputs := 0.0
	for _, o := range p.Outputs {
		if skipInputs {
			if in, ok := p.InputNamed(o.Name); ok && in.Kind == o.Kind && in.Amount == o.Amount {
				continue
			}
		}
		g, err := l.env.Catalog.LookupByName(o.Name)
		if err != nil {
			continue
		}
		outputs += l.values[g.ID()] * o.Amount
	}
	power := p.Power * hoursPerMillisol * site.PowerValue()
	return outputs - power
}

// mineralDemand is the baseline geological demand. Sand, rock, mineral and
// ore demand are dragged along by regolith demand.
func (l *Ledger) mineralDemand(g *goods.Good) float64 {
	base := baseMineralDemand
	own := l.demand[g.ID()]

	switch name := nameKey(g); {
	case name == goods.Soil:
		return base * soilValueModifier
	case name == goods.Sand:
		return base * (0.2*l.demandNamed(goods.Regolith) + 0.7*own) / (1 + own) * sandValueModifier
	case name == goods.Regolith:
		return base * own * regolithValueModifier
	}

	switch g.Type() {
	case goods.GoodTypeRock:
		return base * (0.2*l.demandNamed(goods.Sand) + 0.7*own) / (1 + own) * rockValueModifier
	case goods.GoodTypeMineral:
		return base * (0.2*l.demandNamed(goods.Regolith) + 0.9*own) / (1 + own) * mineralValueModifier
	case goods.GoodTypeOre:
		return base * (0.3*l.demandNamed(goods.Regolith) + 0.6*own) / (1 + own) * oreValueModifier
	}
	return base
}

// resourceCommerceType picks the commerce factor weighting an amount
// resource consumed by manufacturing, given the settlement objective
func resourceCommerceType(o Objective, g *goods.Good) (CommerceType, bool) {
	t := g.Type()
	switch o {
	case ObjectiveBuildersHaven:
		switch t {
		case goods.GoodTypeRegolith, goods.GoodTypeMineral, goods.GoodTypeOre, goods.GoodTypeUtility:
			return CommerceBuilding, true
		}
	case ObjectiveCropFarm:
		switch t {
		case goods.GoodTypeCrop, goods.GoodTypeDerived, goods.GoodTypeSoyBased:
			return CommerceCrop, true
		}
	case ObjectiveManufacturingDepot:
		return CommerceManufacturing, true
	case ObjectiveResearchCampus:
		switch t {
		case goods.GoodTypeMedical, goods.GoodTypeOrganism, goods.GoodTypeChemical, goods.GoodTypeRock:
			return CommerceResearch, true
		}
	case ObjectiveTradeCenter:
		return CommerceTrade, true
	case ObjectiveTransportationHub:
		if nameKey(g) == goods.Methanol {
			return CommerceTransport, true
		}
	}
	return "", false
}

// partCommerceType picks the commerce factor weighting a part consumed by manufacturing
func partCommerceType(o Objective, g *goods.Good) (CommerceType, bool) {
	t := g.Type()
	switch o {
	case ObjectiveBuildersHaven:
		switch t {
		case goods.GoodTypeUtility, goods.GoodTypeTool, goods.GoodTypeRaw, goods.GoodTypeConstruction,
			goods.GoodTypeElectrical, goods.GoodTypeMetallic, goods.GoodTypeAttachment:
			return CommerceBuilding, true
		}
	case ObjectiveCropFarm:
		if t == goods.GoodTypeKitchen {
			return CommerceCrop, true
		}
	case ObjectiveManufacturingDepot:
		return CommerceManufacturing, true
	case ObjectiveResearchCampus:
		switch t {
		case goods.GoodTypeInstrument, goods.GoodTypeElectrical, goods.GoodTypeElectronic:
			return CommerceResearch, true
		}
	case ObjectiveTradeCenter:
		if t == goods.GoodTypeVehiclePart {
			return CommerceTrade, true
		}
	case ObjectiveTransportationHub:
		if t == goods.GoodTypeVehiclePart {
			return CommerceTransport, true
		}
	case ObjectiveTourism:
		switch t {
		case goods.GoodTypeEVA, goods.GoodTypeVehiclePart, goods.GoodTypeGemstone:
			return CommerceTourism, true
		}
	}
	return "", false
}
