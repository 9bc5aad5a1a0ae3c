package market

import (
	"fmt"
	"math"
	"sort"
)

// CheckResources caps the demand raise of one essential-resource review
const CheckResources = 30.0

// EssentialLimit is the per-person reserve and the demand ceiling of a resource
// the settlement must never run short of
type EssentialLimit struct {
	Reserve int `yaml:"reserve" json:"reserve" validate:"gte=0"`
	Max     int `yaml:"max" json:"max" validate:"gt=0"`
}

// SetEssentialLimits replaces the essential resources of the settlement
func (l *Ledger) SetEssentialLimits(limits map[int]EssentialLimit) {
	l.essentials = make(map[int]EssentialLimit, len(limits))
	for id, lim := range limits {
		l.essentials[id] = lim
	}
}

// ResourceReviewDue returns how many essential resources await review this tick
func (l *Ledger) ResourceReviewDue() int {
	return len(l.unreviewed())
}

// ReserveResourceReview claims the next unreviewed essential resource,
// lowest ID first. It returns false once every resource has been reviewed.
func (l *Ledger) ReserveResourceReview() (int, bool) {
	pending := l.unreviewed()
	if len(pending) == 0 {
		return 0, false
	}
	l.reviewed[pending[0]] = true
	return pending[0], true
}

func (l *Ledger) unreviewed() []int {
	var ids []int
	for id := range l.essentials {
		if !l.reviewed[id] {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// CheckResourceDemand compares an essential resource's stock and supply
// against the population's reserve and raises its demand when short.
// Each raise is limited to elapsed × CheckResources. It reports whether
// the demand changed.
func (l *Ledger) CheckResourceDemand(site Site, id int, elapsed float64) (bool, error) {
	limits, ok := l.essentials[id]
	if !ok {
		return false, fmt.Errorf("%w: %d", ErrNotEssential, id)
	}

	reserve := float64(limits.Reserve)
	ceiling := float64(limits.Max)
	pop := float64(site.Citizens())

	demand := math.Max(1, math.Min(ceiling, l.demand[id]))
	supply := l.supply[id]
	stored := site.AmountStored(id)

	var needed float64
	switch {
	case stored+supply*pop > (reserve*2+demand)*pop:
		return false, nil
	case stored+supply*pop > (reserve+demand)*pop:
		needed = (reserve+demand-supply)*pop - stored
	default:
		needed = (reserve+demand-0.5*supply)*pop - 0.5*stored
	}
	needed = math.Max(0, math.Min(ceiling, needed))

	if needed-demand <= CheckResources {
		return false, nil
	}
	l.SetDemand(id, demand+elapsed*CheckResources)
	return true, nil
}
