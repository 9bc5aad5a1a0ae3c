package commerce_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/commerce"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/credit"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/market"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

// stubSettlement is an in-memory commerce.Settlement
type stubSettlement struct {
	id       string
	coords   shared.Coordinates
	citizens int
	amounts  map[int]float64
	items    map[int]int
	inUse    map[int]int
	vehicles map[int][2]int
	disabled map[commerce.MissionType]bool
	ledger   *market.Ledger
}

func (s *stubSettlement) ID() string                                 { return s.id }
func (s *stubSettlement) Coordinates() shared.Coordinates            { return s.coords }
func (s *stubSettlement) Objective() market.Objective                { return market.ObjectiveNone }
func (s *stubSettlement) Citizens() int                              { return s.citizens }
func (s *stubSettlement) JobCount(market.Job) int                    { return 0 }
func (s *stubSettlement) TechLevel(goods.ProcessKind) int            { return -1 }
func (s *stubSettlement) FuelCapacity(int) float64                   { return 0 }
func (s *stubSettlement) PowerValue() float64                        { return 0 }
func (s *stubSettlement) WaterRationLevel() float64                  { return 0 }
func (s *stubSettlement) MaintenanceDemand(int) int                  { return 0 }
func (s *stubSettlement) AmountStored(id int) float64                { return s.amounts[id] }
func (s *stubSettlement) ItemCount(id int) int                       { return s.items[id] }
func (s *stubSettlement) InUseCount(id int) int                      { return s.inUse[id] }
func (s *stubSettlement) Market() *market.Ledger                     { return s.ledger }
func (s *stubSettlement) VehicleCount(id int) (int, int)             { return s.vehicles[id][0], s.vehicles[id][1] }
func (s *stubSettlement) MissionEnabled(t commerce.MissionType) bool { return !s.disabled[t] }

// stubVehicle carries a fixed spec with full range for every mission
type stubVehicle struct {
	spec   goods.VehicleDefinition
	repair []int
}

func (v stubVehicle) Spec() goods.VehicleDefinition      { return v.spec }
func (v stubVehicle) Range(commerce.MissionType) float64 { return v.spec.Range() }
func (v stubVehicle) RepairParts() []int                 { return v.repair }

// world is the settlement registry, mission board and credit book of a test run
type world struct {
	catalog  *goods.Catalog
	clock    *shared.MockClock
	env      *market.Environment
	sites    []*stubSettlement
	missions []commerce.Mission
	credit   *credit.Manager
	finder   *commerce.Finder
}

func newWorld(t *testing.T, persistCredit bool, ids ...string) *world {
	t.Helper()
	catalog, err := goods.NewStandardCatalog()
	require.NoError(t, err)
	return newWorldWithCatalog(t, catalog, persistCredit, ids...)
}

func newWorldWithCatalog(t *testing.T, catalog *goods.Catalog, persistCredit bool, ids ...string) *world {
	t.Helper()
	var err error
	w := &world{catalog: catalog, clock: &shared.MockClock{}}
	w.env = &market.Environment{Catalog: catalog, Clock: w.clock, Peers: w}
	w.credit = credit.NewManager(w.clock, credit.Policy{PersistAmounts: persistCredit}, ids)

	for _, id := range ids {
		ledger, err := market.NewLedger(id, w.env)
		require.NoError(t, err)
		w.sites = append(w.sites, &stubSettlement{
			id:       id,
			amounts:  map[int]float64{},
			items:    map[int]int{},
			inUse:    map[int]int{},
			vehicles: map[int][2]int{},
			disabled: map[commerce.MissionType]bool{},
			ledger:   ledger,
		})
	}

	w.finder, err = commerce.NewFinder(catalog, w.clock, w, w, w.credit, commerce.DefaultConfig())
	require.NoError(t, err)
	return w
}

func (w *world) Settlements() []commerce.Settlement {
	out := make([]commerce.Settlement, 0, len(w.sites))
	for _, s := range w.sites {
		out = append(out, s)
	}
	return out
}

func (w *world) Peers(selfID string) []market.Peer {
	var out []market.Peer
	for _, s := range w.sites {
		if s.id != selfID {
			out = append(out, s)
		}
	}
	return out
}

func (w *world) Missions() []commerce.Mission {
	return w.missions
}

func (w *world) site(id string) *stubSettlement {
	for _, s := range w.sites {
		if s.id == id {
			return s
		}
	}
	return nil
}

func (w *world) good(t *testing.T, name string) *goods.Good {
	t.Helper()
	g, err := w.catalog.LookupByName(name)
	require.NoError(t, err)
	return g
}

func (w *world) vehicle(t *testing.T, name string) stubVehicle {
	t.Helper()
	spec, ok := w.good(t, name).Vehicle()
	require.True(t, ok)
	return stubVehicle{spec: spec}
}

// hauler is an uncrewed carrier with room for a large load
func hauler() stubVehicle {
	return stubVehicle{spec: goods.VehicleDefinition{
		Name:          "test hauler",
		Mass:          1000,
		CargoCapacity: 8000,
		BaseSpeed:     50,
		FuelResource:  goods.Methanol,
		FuelEconomy:   5,
		FuelCapacity:  1000,
	}}
}

// tick runs a valuation tick and a shortlist refresh on every settlement
func (w *world) tick() {
	for _, s := range w.sites {
		s.ledger.UpdateGoodValues(s)
	}
	for _, s := range w.sites {
		s.ledger.RefreshShortlists(s)
	}
}
