package settlement

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/commerce"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/market"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

// Settlement is a Mars base: its population, facilities, stores and market.
// It satisfies market.Site, market.Peer and commerce.Settlement.
type Settlement struct {
	id        string
	name      string
	coords    shared.Coordinates
	objective market.Objective
	citizens  int
	jobs      map[market.Job]int
	tech      map[goods.ProcessKind]int
	power     float64
	ration    float64

	catalog     *goods.Catalog
	inventory   *Inventory
	maintenance map[int]int
	disabled    map[commerce.MissionType]bool
	ledger      *market.Ledger
}

// New builds a settlement from its profile, creating its market ledger in env
func New(p Profile, env *market.Environment) (*Settlement, error) {
	if p.ID == "" {
		return nil, shared.NewValidationError("id", "cannot be empty")
	}
	coords, err := shared.NewCoordinates(p.Phi, p.Theta)
	if err != nil {
		return nil, fmt.Errorf("settlement %s: %w", p.ID, err)
	}
	objective, err := market.ParseObjective(p.Objective)
	if err != nil {
		return nil, fmt.Errorf("settlement %s: %w", p.ID, err)
	}
	ledger, err := market.NewLedger(p.ID, env)
	if err != nil {
		return nil, err
	}

	s := &Settlement{
		id:          p.ID,
		name:        p.Name,
		coords:      coords,
		objective:   objective,
		citizens:    p.Citizens,
		jobs:        make(map[market.Job]int),
		tech:        make(map[goods.ProcessKind]int),
		power:       p.PowerValue,
		ration:      p.WaterRation,
		catalog:     env.Catalog,
		inventory:   NewInventory(),
		maintenance: make(map[int]int),
		disabled:    make(map[commerce.MissionType]bool),
		ledger:      ledger,
	}
	if s.name == "" {
		s.name = p.ID
	}
	for job, n := range p.Jobs {
		s.jobs[market.Job(strings.ToUpper(job))] = n
	}
	for kind, level := range p.Tech {
		s.tech[goods.ProcessKind(strings.ToUpper(kind))] = level
	}
	for _, m := range p.Disabled {
		t, err := commerce.ParseMissionType(strings.ToUpper(m))
		if err != nil {
			return nil, fmt.Errorf("settlement %s: %w", p.ID, err)
		}
		s.disabled[t] = true
	}

	if err := s.stock(p); err != nil {
		return nil, fmt.Errorf("settlement %s: %w", p.ID, err)
	}
	return s, nil
}

func (s *Settlement) stock(p Profile) error {
	for name, kg := range p.Resources {
		g, err := s.lookup(name, goods.CategoryAmountResource)
		if err != nil {
			return err
		}
		s.inventory.Store(g.ID(), kg)
	}
	for name, n := range p.Items {
		g, err := s.catalog.LookupByName(name)
		if err != nil {
			return err
		}
		switch g.Category() {
		case goods.CategoryAmountResource, goods.CategoryVehicle:
			return shared.NewValidationError("items", fmt.Sprintf("%s is not a countable item", name))
		}
		s.inventory.AddItems(g.ID(), n)
	}
	for name, n := range p.InUse {
		g, err := s.catalog.LookupByName(name)
		if err != nil {
			return err
		}
		s.inventory.SetInUse(g.ID(), n)
	}
	for name, n := range p.Vehicles {
		g, err := s.lookup(name, goods.CategoryVehicle)
		if err != nil {
			return err
		}
		s.inventory.AddVehicles(g.ID(), n)
	}
	for name, n := range p.Maintenance {
		g, err := s.lookup(name, goods.CategoryItemResource)
		if err != nil {
			return err
		}
		s.maintenance[g.ID()] = n
	}

	if len(p.Essentials) > 0 {
		limits := make(map[int]market.EssentialLimit, len(p.Essentials))
		for name, lim := range p.Essentials {
			g, err := s.lookup(name, goods.CategoryAmountResource)
			if err != nil {
				return err
			}
			limits[g.ID()] = lim
		}
		s.ledger.SetEssentialLimits(limits)
	}
	return nil
}

func (s *Settlement) lookup(name string, want goods.Category) (*goods.Good, error) {
	g, err := s.catalog.LookupByName(name)
	if err != nil {
		return nil, err
	}
	if g.Category() != want {
		return nil, shared.NewValidationError(name, fmt.Sprintf("expected %s, got %s", want, g.Category()))
	}
	return g, nil
}

func (s *Settlement) ID() string                      { return s.id }
func (s *Settlement) Name() string                    { return s.name }
func (s *Settlement) Coordinates() shared.Coordinates { return s.coords }
func (s *Settlement) Objective() market.Objective     { return s.objective }
func (s *Settlement) Citizens() int                   { return s.citizens }
func (s *Settlement) JobCount(job market.Job) int     { return s.jobs[job] }
func (s *Settlement) PowerValue() float64             { return s.power }
func (s *Settlement) WaterRationLevel() float64       { return s.ration }
func (s *Settlement) Market() *market.Ledger          { return s.ledger }
func (s *Settlement) Inventory() *Inventory           { return s.inventory }

func (s *Settlement) AmountStored(id int) float64    { return s.inventory.AmountStored(id) }
func (s *Settlement) ItemCount(id int) int           { return s.inventory.ItemCount(id) }
func (s *Settlement) InUseCount(id int) int          { return s.inventory.InUseCount(id) }
func (s *Settlement) VehicleCount(id int) (int, int) { return s.inventory.VehicleCount(id) }
func (s *Settlement) MaintenanceDemand(id int) int   { return s.maintenance[id] }

// TechLevel returns the highest tech level for a process kind, or -1 if none
func (s *Settlement) TechLevel(kind goods.ProcessKind) int {
	if level, ok := s.tech[kind]; ok {
		return level
	}
	return -1
}

// FuelCapacity sums the tank capacity of every vehicle burning the resource
func (s *Settlement) FuelCapacity(resourceID int) float64 {
	fuel, err := s.catalog.Lookup(resourceID)
	if err != nil {
		return 0
	}
	total := 0.0
	for _, g := range s.catalog.ByCategory(goods.CategoryVehicle) {
		spec, ok := g.Vehicle()
		if !ok || !strings.EqualFold(spec.FuelResource, fuel.Name()) {
			continue
		}
		n, _ := s.inventory.VehicleCount(g.ID())
		total += float64(n) * spec.FuelCapacity
	}
	return total
}

// MissionEnabled reports whether the settlement accepts missions of a type
func (s *Settlement) MissionEnabled(t commerce.MissionType) bool {
	return !s.disabled[t]
}

// SetMissionEnabled toggles a mission type
func (s *Settlement) SetMissionEnabled(t commerce.MissionType, enabled bool) {
	if enabled {
		delete(s.disabled, t)
		return
	}
	s.disabled[t] = true
}

// SetCitizens changes the resident population
func (s *Settlement) SetCitizens(n int) {
	s.citizens = max(0, n)
}

// SetMaintenanceDemand records how many of a part are pending for maintenance
func (s *Settlement) SetMaintenanceDemand(partID, n int) {
	if n <= 0 {
		delete(s.maintenance, partID)
		return
	}
	s.maintenance[partID] = n
}

// IdleVehicles returns the vehicle goods with at least one idle unit, by ID
func (s *Settlement) IdleVehicles() []*goods.Good {
	var out []*goods.Good
	for _, g := range s.catalog.ByCategory(goods.CategoryVehicle) {
		if _, idle := s.inventory.VehicleCount(g.ID()); idle > 0 {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
