package market

import (
	"math"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
)

const maxContainerDemand = 1000.0

// Containers whose use scales with field geology work
var fieldContainers = map[string]bool{
	goods.GasCanister: true,
	goods.Barrel:      true,
	goods.Bag:         true,
	goods.SpecimenBox: true,
}

var containerWeights = map[string]float64{
	goods.SpecimenBox: 1.2,
}

func refreshEVASuit(l *Ledger, site Site, g *goods.Good) {
	projected := 1 + l.evaSuitMod + 2*float64(site.Citizens())
	l.refreshEquipment(site, g, projected)
}

func refreshContainer(l *Ledger, site Site, g *goods.Good) {
	projected := 1.0
	if g.Capacity() > 0 {
		projected += l.storedOfPhase(site, g.Holds()) / g.Capacity()
	}
	projected = math.Min(maxContainerDemand, projected*usageRatio(site, g))

	key := nameKey(g)
	if fieldContainers[key] {
		projected *= (1 + float64(site.JobCount(JobAreologist))) / 3
	}
	if w, ok := containerWeights[key]; ok {
		projected *= w
	}
	l.refreshEquipment(site, g, projected)
}

func refreshBin(l *Ledger, site Site, g *goods.Good) {
	projected := 1.0
	if g.Capacity() > 0 {
		projected += l.storedOfPhase(site, goods.PhaseSolid) / g.Capacity()
	}
	projected = math.Min(maxContainerDemand, projected*usageRatio(site, g))
	l.refreshEquipment(site, g, projected)
}

// refreshEquipment blends a projected equipment demand with trade demand
// and sets supply from the units held
func (l *Ledger) refreshEquipment(site Site, g *goods.Good, projected float64) {
	id := g.ID()
	trade := l.DetermineTradeDemand(site, g)

	d := l.detail[id]
	d.projected = projected
	d.trade = trade

	l.blend(id,
		func(float64) float64 {
			return firstResourceWeight*projected + firstResourceWeight*trade
		},
		func(prev float64) float64 {
			return steadyResourceRetained*prev + steadyResourceWeight*projected + steadyResourceWeight*trade
		})

	l.SetSupply(id, squareRootSupply(float64(site.ItemCount(id))))
}

// storedOfPhase sums the stored kg of every amount resource of a phase
func (l *Ledger) storedOfPhase(site Site, phase goods.Phase) float64 {
	total := 0.0
	for _, r := range l.env.Catalog.ByCategory(goods.CategoryAmountResource) {
		if r.Phase() == phase {
			total += site.AmountStored(r.ID())
		}
	}
	return total
}

func usageRatio(site Site, g *goods.Good) float64 {
	return (1 + float64(site.InUseCount(g.ID()))) / (1 + float64(site.ItemCount(g.ID())))
}
