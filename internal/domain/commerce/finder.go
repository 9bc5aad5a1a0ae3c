package commerce

import (
	"errors"
	"fmt"
	"math"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/market"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

// Config holds the trading thresholds of the deal finder
type Config struct {
	// SellCreditLimit is the balance beyond which a settlement stops buying or selling
	SellCreditLimit float64 `mapstructure:"sell_credit_limit" validate:"gt=0"`

	// MissionBaseMass is the cargo mass reserved for mission equipment
	MissionBaseMass float64 `mapstructure:"mission_base_mass" validate:"gte=0"`

	// MinLifeSupport is the kg of each life-support resource a seller keeps
	MinLifeSupport float64 `mapstructure:"min_life_support" validate:"gte=0"`

	// MinRepairParts is the stock a seller keeps of parts the vehicle may need repaired
	MinRepairParts float64 `mapstructure:"min_repair_parts" validate:"gte=0"`

	// MinEquipment is the stock a seller keeps of each equipment type other than EVA suits
	MinEquipment float64 `mapstructure:"min_equipment" validate:"gte=0"`

	// EVASuitMargin is how many EVA suits beyond the crew a seller keeps
	EVASuitMargin int `mapstructure:"eva_suit_margin" validate:"gte=0"`

	// RangeFraction is the share of a vehicle's range a partner may be away
	RangeFraction float64 `mapstructure:"range_fraction" validate:"gt=0,lte=1"`

	// DealFrequency is how many millisols a cached deal stays valid
	DealFrequency float64 `mapstructure:"deal_frequency" validate:"gt=0"`
}

// DefaultConfig returns the standard trading thresholds
func DefaultConfig() Config {
	return Config{
		SellCreditLimit: 10_000_000,
		MissionBaseMass: 2_000,
		MinLifeSupport:  100,
		MinRepairParts:  150,
		MinEquipment:    10,
		EVASuitMargin:   2,
		RangeFraction:   0.8,
		DealFrequency:   1_000,
	}
}

type cacheKey struct {
	settlement string
	mission    MissionType
}

// Finder searches the settlements of a run for the most profitable trade
// partner and sizes the loads to carry.
//
// A Finder is not safe for concurrent use; callers serialize access together
// with the ledgers it reads.
type Finder struct {
	catalog     *goods.Catalog
	clock       shared.Clock
	settlements Directory
	missions    MissionDirectory
	credit      CreditBook
	cfg         Config

	cache map[cacheKey]*Deal

	listeners        []subscription
	nextSubscription int
}

// NewFinder creates a deal finder over the settlements of a run
func NewFinder(
	catalog *goods.Catalog,
	clock shared.Clock,
	settlements Directory,
	missions MissionDirectory,
	credit CreditBook,
	cfg Config,
) (*Finder, error) {
	if catalog == nil || clock == nil || settlements == nil || credit == nil {
		return nil, shared.NewConfigurationError("commerce", "finder needs a catalog, clock, settlement directory and credit book")
	}
	return &Finder{
		catalog:     catalog,
		clock:       clock,
		settlements: settlements,
		missions:    missions,
		credit:      credit,
		cfg:         cfg,
		cache:       make(map[cacheKey]*Deal),
	}, nil
}

// Config returns the finder's thresholds
func (f *Finder) Config() Config {
	return f.cfg
}

// Watch drops a settlement's cached deals whenever its shortlists are refreshed.
// It returns a function that stops watching.
func (f *Finder) Watch(s Settlement) func() {
	id := s.ID()
	return s.Market().Subscribe(func(e market.Event) {
		if e.Type == market.EventShortlistsRefreshed {
			f.Invalidate(id)
		}
	})
}

// Invalidate drops every cached deal of a settlement
func (f *Finder) Invalidate(settlementID string) {
	for key := range f.cache {
		if key.settlement == settlementID {
			delete(f.cache, key)
		}
	}
}

// CachedDeal returns the cached deal of a settlement and mission type, if any
func (f *Finder) CachedDeal(settlementID string, t MissionType) (*Deal, bool) {
	d, ok := f.cache[cacheKey{settlement: settlementID, mission: t}]
	return d, ok
}

// GetDeal returns the cached deal while it is at most DealFrequency old and
// searches for a new best deal otherwise.
func (f *Finder) GetDeal(start Settlement, t MissionType, vehicle Vehicle) (*Deal, error) {
	key := cacheKey{settlement: start.ID(), mission: t}
	if d, ok := f.cache[key]; ok {
		if f.clock.Elapsed(d.CreatedAt(), f.clock.Now()) <= f.cfg.DealFrequency {
			return d, nil
		}
	}

	d, err := f.BestDeal(start, t, vehicle)
	if err != nil {
		delete(f.cache, key)
		return nil, err
	}
	f.cache[key] = d
	return d, nil
}

// BestDeal evaluates every candidate settlement and returns the deal with
// the highest estimated profit. The result is published to listeners but
// not cached; use GetDeal for cached lookups.
//
// Returns ErrNoDeal, joined with any candidate failures, when no settlement qualifies.
func (f *Finder) BestDeal(start Settlement, t MissionType, vehicle Vehicle) (*Deal, error) {
	var best *Deal
	var errs []error
	for _, trading := range f.settlements.Settlements() {
		d, err := f.PotentialDeal(start, t, trading, vehicle)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if d != nil && d.Better(best) {
			best = d
		}
	}

	if best == nil {
		return nil, errors.Join(append([]error{fmt.Errorf("%w for %s from %s", ErrNoDeal, t, start.ID())}, errs...)...)
	}
	f.publish(DealComputed{Deal: best, At: best.CreatedAt()})
	return best, nil
}

// PotentialDeal estimates the deal between two settlements.
//
// A settlement is a candidate when it is not the starting settlement, accepts
// the mission type, has no commerce mission underway with the starting
// settlement in either direction, and lies within RangeFraction of the
// vehicle's range. A nil deal with a nil error means the pair is not a candidate.
func (f *Finder) PotentialDeal(start Settlement, t MissionType, trading Settlement, vehicle Vehicle) (*Deal, error) {
	if trading.ID() == start.ID() || !trading.MissionEnabled(t) {
		return nil, nil
	}
	if f.HasCurrentCommerceMission(start.ID(), trading.ID()) {
		return nil, nil
	}
	distance := start.Coordinates().DistanceTo(trading.Coordinates())
	if distance > vehicle.Range(t)*f.cfg.RangeFraction {
		return nil, nil
	}

	buy := f.DesiredBuyLoad(start, vehicle, trading)
	sell := f.BestSellLoad(start, vehicle, trading)

	estimate, err := f.EstimatedProfit(start, vehicle, trading, buy.Load, sell.Load)
	if err != nil {
		return nil, fmt.Errorf("deal %s -> %s: %w", start.ID(), trading.ID(), err)
	}
	return newDeal(start.ID(), trading.ID(), t, estimate, f.clock.Now(), buy, sell), nil
}

// HasCurrentCommerceMission reports whether an active trade or delivery
// mission links the two settlements in either direction
func (f *Finder) HasCurrentCommerceMission(a, b string) bool {
	if f.missions == nil {
		return false
	}
	for _, m := range f.missions.Missions() {
		if m.IsCommerce() && m.IsActive() && m.Links(a, b) {
			return true
		}
	}
	return false
}

// ProfitEstimate splits an estimated deal profit into its parts
type ProfitEstimate struct {
	SellingRevenue float64
	BuyingRevenue  float64
	TradeCost      float64
}

// Profit is selling revenue plus buying revenue minus trade cost
func (p ProfitEstimate) Profit() float64 {
	return p.SellingRevenue + p.BuyingRevenue - p.TradeCost
}

// EstimatedProfit returns the value gained by selling sell at the trading
// settlement and buying buy from it, minus the round-trip mission cost.
//
// Formula:
//
//	selling = sell@remote - sell@home
//	buying  = buy@home - buy@remote
//	profit  = selling + buying - missionCost
func (f *Finder) EstimatedProfit(start Settlement, vehicle Vehicle, trading Settlement, buy, sell Load) (ProfitEstimate, error) {
	sellRemote, err := f.DetermineLoadCredit(sell, trading, true)
	if err != nil {
		return ProfitEstimate{}, err
	}
	sellHome, err := f.DetermineLoadCredit(sell, start, false)
	if err != nil {
		return ProfitEstimate{}, err
	}
	buyHome, err := f.DetermineLoadCredit(buy, start, true)
	if err != nil {
		return ProfitEstimate{}, err
	}
	buyRemote, err := f.DetermineLoadCredit(buy, trading, false)
	if err != nil {
		return ProfitEstimate{}, err
	}

	distance := start.Coordinates().DistanceTo(trading.Coordinates()) * 2
	cost, err := f.MissionCost(start, vehicle, distance)
	if err != nil {
		return ProfitEstimate{}, err
	}
	return ProfitEstimate{
		SellingRevenue: sellRemote - sellHome,
		BuyingRevenue:  buyHome - buyRemote,
		TradeCost:      cost,
	}, nil
}
