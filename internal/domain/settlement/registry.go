package settlement

import (
	"fmt"
	"sort"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/commerce"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/market"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

// Registry holds every settlement of a run. It resolves peers for market
// trade demand and trading partners for the deal finder.
type Registry struct {
	byID  map[string]*Settlement
	order []string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Settlement)}
}

// Add registers a settlement
func (r *Registry) Add(s *Settlement) error {
	if _, exists := r.byID[s.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSettlement, s.ID())
	}
	r.byID[s.ID()] = s
	r.order = append(r.order, s.ID())
	sort.Strings(r.order)
	return nil
}

// Get returns a settlement by ID
func (r *Registry) Get(id string) (*Settlement, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, shared.NewNotFoundError("settlement", id)
	}
	return s, nil
}

// All returns every settlement ordered by ID
func (r *Registry) All() []*Settlement {
	out := make([]*Settlement, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// IDs returns every settlement ID in order
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

func (r *Registry) Len() int { return len(r.order) }

// Peers implements market.PeerDirectory
func (r *Registry) Peers(selfID string) []market.Peer {
	peers := make([]market.Peer, 0, len(r.order))
	for _, id := range r.order {
		if id != selfID {
			peers = append(peers, r.byID[id])
		}
	}
	return peers
}

// Settlements implements commerce.Directory
func (r *Registry) Settlements() []commerce.Settlement {
	out := make([]commerce.Settlement, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}
