package market

import "github.com/mars-sim/mars-sim-sub053/internal/domain/goods"

const (
	firstAverageWeight   = 0.5
	firstProjectedWeight = 0.25
	steadyUnitWeight     = 0.003
	citizensPerRobot     = 4.0
)

func refreshVehicle(l *Ledger, site Site, g *goods.Good) {
	cargo := 0.0
	if v, ok := g.Vehicle(); ok {
		cargo = v.CargoCapacity
	}
	crews := 1 + float64(site.JobCount(JobTrader)+site.JobCount(JobPilot))
	projected := crews * l.CommerceFactor(CommerceTransport) * (1 + cargo/1000)

	_, idle := site.VehicleCount(g.ID())
	l.refreshUnit(site, g, projected, float64(idle))
}

func refreshRobot(l *Ledger, site Site, g *goods.Good) {
	projected := float64(site.Citizens()) / citizensPerRobot
	l.refreshUnit(site, g, projected, float64(site.ItemCount(g.ID())))
}

// refreshUnit blends projected demand, the good's own cost as an average
// demand, and trade demand discounted by the current supply
func (l *Ledger) refreshUnit(site Site, g *goods.Good, projected, held float64) {
	id := g.ID()
	average := g.CostOutput()
	trade := l.DetermineTradeDemand(site, g) / (l.supply[id] + 1)

	d := l.detail[id]
	d.projected = projected
	d.trade = trade

	l.blend(id,
		func(float64) float64 {
			return firstAverageWeight*average + firstProjectedWeight*projected + firstProjectedWeight*trade
		},
		func(prev float64) float64 {
			return steadyResourceRetained*prev + steadyUnitWeight*(average+projected+trade)
		})

	l.SetSupply(id, squareRootSupply(held))
}
