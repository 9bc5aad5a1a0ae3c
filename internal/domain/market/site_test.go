package market_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/market"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

// stubSite is an in-memory market.Site and market.Peer
type stubSite struct {
	id          string
	coords      shared.Coordinates
	objective   market.Objective
	citizens    int
	jobs        map[market.Job]int
	tech        map[goods.ProcessKind]int
	amounts     map[int]float64
	items       map[int]int
	inUse       map[int]int
	vehicles    map[int][2]int
	fuel        map[int]float64
	power       float64
	ration      float64
	maintenance map[int]int
	ledger      *market.Ledger
}

func newStubSite(id string) *stubSite {
	return &stubSite{
		id:          id,
		jobs:        map[market.Job]int{},
		tech:        map[goods.ProcessKind]int{},
		amounts:     map[int]float64{},
		items:       map[int]int{},
		inUse:       map[int]int{},
		vehicles:    map[int][2]int{},
		fuel:        map[int]float64{},
		maintenance: map[int]int{},
	}
}

func (s *stubSite) ID() string                      { return s.id }
func (s *stubSite) Coordinates() shared.Coordinates { return s.coords }
func (s *stubSite) Objective() market.Objective     { return s.objective }
func (s *stubSite) Citizens() int                   { return s.citizens }
func (s *stubSite) JobCount(job market.Job) int     { return s.jobs[job] }
func (s *stubSite) AmountStored(id int) float64     { return s.amounts[id] }
func (s *stubSite) ItemCount(id int) int            { return s.items[id] }
func (s *stubSite) InUseCount(id int) int           { return s.inUse[id] }
func (s *stubSite) FuelCapacity(id int) float64     { return s.fuel[id] }
func (s *stubSite) PowerValue() float64             { return s.power }
func (s *stubSite) WaterRationLevel() float64       { return s.ration }
func (s *stubSite) MaintenanceDemand(id int) int    { return s.maintenance[id] }
func (s *stubSite) Market() *market.Ledger          { return s.ledger }
func (s *stubSite) VehicleCount(id int) (int, int)  { return s.vehicles[id][0], s.vehicles[id][1] }

func (s *stubSite) TechLevel(kind goods.ProcessKind) int {
	if level, ok := s.tech[kind]; ok {
		return level
	}
	return -1
}

type stubDirectory struct {
	sites []*stubSite
}

func (d *stubDirectory) Peers(selfID string) []market.Peer {
	var peers []market.Peer
	for _, s := range d.sites {
		if s.id != selfID {
			peers = append(peers, s)
		}
	}
	return peers
}

type fixture struct {
	catalog   *goods.Catalog
	clock     *shared.MockClock
	directory *stubDirectory
	env       *market.Environment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalog, err := goods.NewStandardCatalog()
	require.NoError(t, err)

	f := &fixture{
		catalog:   catalog,
		clock:     &shared.MockClock{},
		directory: &stubDirectory{},
	}
	f.env = &market.Environment{Catalog: catalog, Clock: f.clock, Peers: f.directory}
	return f
}

// addSite registers a settlement with its own ledger
func (f *fixture) addSite(t *testing.T, id string) *stubSite {
	t.Helper()
	site := newStubSite(id)
	ledger, err := market.NewLedger(id, f.env)
	require.NoError(t, err)
	site.ledger = ledger
	f.directory.sites = append(f.directory.sites, site)
	return site
}

func (f *fixture) good(t *testing.T, name string) *goods.Good {
	t.Helper()
	g, err := f.catalog.LookupByName(name)
	require.NoError(t, err)
	return g
}
