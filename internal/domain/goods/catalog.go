package goods

import (
	"fmt"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

// ID ranges per definition family. IDs are assigned in definition order.
const (
	ResourceIDBase  = 1
	PartIDBase      = 1000
	EquipmentIDBase = 2000
	VehicleIDBase   = 3000
	RobotIDBase     = 4000

	idRangeWidth = 999
)

// Catalog is the per-run registry of every tradeable good.
// It is immutable once built, apart from the memoized cost and the
// shared inter-market value carried on each Good.
type Catalog struct {
	goods      []*Good
	byID       map[int]*Good
	byName     map[string]*Good
	containers map[Phase]*Good
	model      *CostModel
	processes  ProcessTable
}

// NewCatalog builds one Good per resource, part, equipment type, bin,
// vehicle spec and robot type, then computes every good's cost once.
func NewCatalog(defs Definitions, processes ProcessTable) (*Catalog, error) {
	if err := defs.Validate(); err != nil {
		return nil, err
	}

	c := &Catalog{
		byID:       make(map[int]*Good),
		byName:     make(map[string]*Good),
		containers: make(map[Phase]*Good),
		processes:  processes,
	}

	for i, r := range defs.Resources {
		c.add(&Good{
			id:          ResourceIDBase + i,
			name:        r.Name,
			category:    CategoryAmountResource,
			goodType:    r.Type,
			mass:        1,
			phase:       r.Phase,
			lifeSupport: r.LifeSupport,
			edible:      r.Edible,
		})
	}

	for i, p := range defs.Parts {
		c.add(&Good{
			id:       PartIDBase + i,
			name:     p.Name,
			category: CategoryItemResource,
			goodType: p.Type,
			mass:     p.Mass,
		})
	}

	next := EquipmentIDBase
	for _, e := range defs.Equipment {
		g := &Good{
			id:       next,
			name:     e.Name,
			mass:     e.Mass,
			capacity: e.Capacity,
		}
		if e.EVASuit {
			g.category = CategoryEquipment
			g.goodType = GoodTypeEVA
		} else {
			g.category = CategoryContainer
			g.goodType = GoodTypeContainer
			g.holds = e.Holds
			if _, taken := c.containers[e.Holds]; !taken {
				c.containers[e.Holds] = g
			}
		}
		c.add(g)
		next++
	}
	for _, b := range defs.Bins {
		c.add(&Good{
			id:       next,
			name:     b.Name,
			category: CategoryBin,
			goodType: GoodTypeBin,
			mass:     b.Mass,
			capacity: b.Capacity,
		})
		next++
	}

	for i := range defs.Vehicles {
		v := defs.Vehicles[i]
		c.add(&Good{
			id:       VehicleIDBase + i,
			name:     v.Name,
			category: CategoryVehicle,
			goodType: GoodTypeVehicle,
			mass:     v.Mass,
			vehicle:  &v,
		})
	}

	for i, r := range defs.Robots {
		c.add(&Good{
			id:       RobotIDBase + i,
			name:     r.Name,
			category: CategoryRobot,
			goodType: GoodTypeRobot,
			mass:     r.Mass,
		})
	}

	if err := c.checkRanges(defs); err != nil {
		return nil, err
	}
	if err := c.checkReferences(defs); err != nil {
		return nil, err
	}

	c.model = NewCostModel(processes, c.partMass)
	for _, g := range c.goods {
		c.model.ComputeCost(g)
	}

	return c, nil
}

func (c *Catalog) add(g *Good) {
	c.goods = append(c.goods, g)
	c.byID[g.id] = g
	c.byName[normalizeName(g.name)] = g
}

func (c *Catalog) checkRanges(defs Definitions) error {
	families := []struct {
		name  string
		count int
	}{
		{"resources", len(defs.Resources)},
		{"parts", len(defs.Parts)},
		{"equipment", len(defs.Equipment) + len(defs.Bins)},
		{"vehicles", len(defs.Vehicles)},
		{"robots", len(defs.Robots)},
	}
	for _, f := range families {
		if f.count > idRangeWidth {
			return fmt.Errorf("%w: %d %s exceed the id range", ErrInvalidDefinition, f.count, f.name)
		}
	}
	return nil
}

func (c *Catalog) checkReferences(defs Definitions) error {
	for _, v := range defs.Vehicles {
		fuel, ok := c.byName[normalizeName(v.FuelResource)]
		if !ok || fuel.category != CategoryAmountResource {
			return fmt.Errorf("%w: vehicle %s burns unknown resource %q", ErrInvalidDefinition, v.Name, v.FuelResource)
		}
	}

	if all, ok := c.processes.(interface{ All() []Process }); ok {
		for _, p := range all.All() {
			for _, item := range append(append([]ProcessItem{}, p.Inputs...), p.Outputs...) {
				if _, known := c.byName[normalizeName(item.Name)]; !known {
					return &ErrUnknownProcessItem{Process: p.Name, Item: item.Name}
				}
			}
		}
	}
	return nil
}

func (c *Catalog) partMass(name string) (float64, bool) {
	g, ok := c.byName[normalizeName(name)]
	if !ok || g.category != CategoryItemResource {
		return 0, false
	}
	return g.mass, true
}

// Lookup returns the good with the given ID
func (c *Catalog) Lookup(id int) (*Good, error) {
	g, ok := c.byID[id]
	if !ok {
		return nil, shared.NewNotFoundError("good", id)
	}
	return g, nil
}

// LookupByName returns the good with the given name, case-insensitively
func (c *Catalog) LookupByName(name string) (*Good, error) {
	g, ok := c.byName[normalizeName(name)]
	if !ok {
		return nil, shared.NewNotFoundError("good", name)
	}
	return g, nil
}

// Has reports whether a good with the given name exists
func (c *Catalog) Has(name string) bool {
	_, ok := c.byName[normalizeName(name)]
	return ok
}

// All returns every good in catalog order
func (c *Catalog) All() []*Good {
	result := make([]*Good, len(c.goods))
	copy(result, c.goods)
	return result
}

// Len returns the number of goods
func (c *Catalog) Len() int {
	return len(c.goods)
}

// ByCategory returns the goods of one category in catalog order
func (c *Catalog) ByCategory(category Category) []*Good {
	var result []*Good
	for _, g := range c.goods {
		if g.category == category {
			result = append(result, g)
		}
	}
	return result
}

// ContainerFor returns the standard container for a phase:
// gas canister for gases, barrel for liquids, bag for solids.
func (c *Catalog) ContainerFor(phase Phase) (*Good, error) {
	g, ok := c.containers[phase]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoContainer, phase)
	}
	return g, nil
}

// ContainerForResource returns the standard container of an amount resource
func (c *Catalog) ContainerForResource(resource *Good) (*Good, error) {
	if resource.category != CategoryAmountResource {
		return nil, fmt.Errorf("%w: %s is not an amount resource", ErrNoContainer, resource.name)
	}
	return c.ContainerFor(resource.phase)
}

// CostModel returns the model that priced this catalog
func (c *Catalog) CostModel() *CostModel {
	return c.model
}

// Processes returns the production process data the catalog was built with
func (c *Catalog) Processes() ProcessTable {
	return c.processes
}

// TradeExcluded returns the goods that never enter a buy or sell list:
// every vehicle plus the fixed set of bulk and waste resources.
func (c *Catalog) TradeExcluded() map[int]bool {
	excluded := make(map[int]bool)
	for _, g := range c.ByCategory(CategoryVehicle) {
		excluded[g.id] = true
	}
	for _, name := range TradeExcludedResources {
		if g, ok := c.byName[name]; ok {
			excluded[g.id] = true
		}
	}
	return excluded
}
