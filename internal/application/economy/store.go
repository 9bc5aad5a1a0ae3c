package economy

import (
	"context"
	"errors"
	"fmt"

	"github.com/mars-sim/mars-sim-sub053/internal/application/common"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/credit"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/market"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

// Store saves and loads snapshots through the domain repositories
type Store struct {
	ledgers market.LedgerRepository
	credit  credit.Repository
	costs   goods.CostRepository
}

// NewStore creates a store over the three state repositories
func NewStore(ledgers market.LedgerRepository, balances credit.Repository, costs goods.CostRepository) *Store {
	return &Store{ledgers: ledgers, credit: balances, costs: costs}
}

// Save writes every part of the snapshot
func (s *Store) Save(ctx context.Context, snap Snapshot) error {
	logger := common.LoggerFromContext(ctx)

	for _, state := range snap.Ledgers {
		if err := s.ledgers.Save(ctx, state); err != nil {
			return err
		}
	}
	if err := s.credit.SaveBalances(ctx, snap.Balances); err != nil {
		return err
	}
	if err := s.costs.SaveCosts(ctx, snap.Costs); err != nil {
		return err
	}

	logger.Log("INFO", "economy state saved", map[string]interface{}{
		"at":          snap.At.String(),
		"settlements": len(snap.Ledgers),
		"balances":    len(snap.Balances),
	})
	return nil
}

// Load reads the stored state of the listed settlements as a snapshot at
// time at. Settlements without a stored ledger are left out.
func (s *Store) Load(ctx context.Context, settlementIDs []string, at shared.SimTime) (Snapshot, error) {
	snap := Snapshot{At: at}

	for _, id := range settlementIDs {
		state, err := s.ledgers.Load(ctx, id)
		if errors.Is(err, shared.ErrNotFound) {
			continue
		}
		if err != nil {
			return Snapshot{}, err
		}
		snap.Ledgers = append(snap.Ledgers, state)
	}

	balances, err := s.credit.LoadBalances(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	known := make(map[string]bool, len(settlementIDs))
	for _, id := range settlementIDs {
		known[id] = true
	}
	for _, b := range balances {
		if known[b.From] && known[b.To] {
			snap.Balances = append(snap.Balances, b)
		}
	}

	costs, err := s.costs.LoadCosts(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load costs: %w", err)
	}
	snap.Costs = costs
	return snap, nil
}
