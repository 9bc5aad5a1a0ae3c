package credit

import (
	"sort"
	"sync"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

// Policy controls what SetCredit stores
type Policy struct {
	// PersistAmounts stores the requested balance. When false the entry is
	// zeroed and the requested balance is only broadcast to listeners.
	PersistAmounts bool
}

// Manager tracks the credit every settlement holds with every other one.
// Each direction is its own entry: writing a's balance toward b never
// touches b's balance toward a.
//
// Manager is safe for concurrent use. Listeners are delivered from a snapshot
// of the listener list, so a listener may subscribe or unsubscribe while running.
type Manager struct {
	mu        sync.RWMutex
	clock     shared.Clock
	policy    Policy
	ledgers   map[string]*Ledger
	listeners []subscription
	nextID    int
}

// NewManager creates a manager with a ledger for each settlement
func NewManager(clock shared.Clock, policy Policy, settlements []string) *Manager {
	m := &Manager{
		clock:   clock,
		policy:  policy,
		ledgers: make(map[string]*Ledger, len(settlements)),
	}
	for _, id := range settlements {
		m.ledgers[id] = NewLedger(id, settlements)
	}
	return m
}

// AddSettlement registers a settlement created after the manager and gives
// every existing ledger a zero entry toward it
func (m *Manager) AddSettlement(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.ledgers[id]; ok {
		return
	}
	known := make([]string, 0, len(m.ledgers))
	for other, l := range m.ledgers {
		l.addCounterpart(id)
		known = append(known, other)
	}
	m.ledgers[id] = NewLedger(id, known)
}

// Settlements returns every registered settlement, sorted
func (m *Manager) Settlements() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.ledgers))
	for id := range m.ledgers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// GetCredit returns a's signed balance toward b, 0 for a pair never set
func (m *Manager) GetCredit(a, b string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if l, ok := m.ledgers[a]; ok {
		return l.Balance(b)
	}
	return 0
}

// SetCredit records the balance a holds toward b and notifies listeners
// with the requested amount. What gets stored depends on the policy; b's
// entry toward a is left as it is.
func (m *Manager) SetCredit(a, b string, amount float64) error {
	if a == b {
		return ErrSelfCredit
	}

	m.mu.Lock()
	la, ok := m.ledgers[a]
	if !ok {
		m.mu.Unlock()
		return &ErrUnknownSettlement{ID: a}
	}
	if _, ok := m.ledgers[b]; !ok {
		m.mu.Unlock()
		return &ErrUnknownSettlement{ID: b}
	}

	stored := 0.0
	if m.policy.PersistAmounts {
		stored = amount
	}
	la.set(b, stored)

	listeners := m.listeners
	m.mu.Unlock()

	e := Event{From: a, To: b, Amount: amount, At: m.clock.Now()}
	for _, s := range listeners {
		s.fn(e)
	}
	return nil
}

// Ledger returns the ledger of one settlement
func (m *Manager) Ledger(id string) (*Ledger, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.ledgers[id]
	if !ok {
		return nil, &ErrUnknownSettlement{ID: id}
	}
	return l, nil
}

// Subscribe registers a listener and returns a function that removes it.
// Listeners run synchronously in registration order.
func (m *Manager) Subscribe(fn Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID
	next := make([]subscription, len(m.listeners), len(m.listeners)+1)
	copy(next, m.listeners)
	m.listeners = append(next, subscription{id: id, fn: fn})

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		remaining := make([]subscription, 0, len(m.listeners))
		for _, s := range m.listeners {
			if s.id != id {
				remaining = append(remaining, s)
			}
		}
		m.listeners = remaining
	}
}

// Balances returns every directed entry, ordered by settlement pair
func (m *Manager) Balances() []Balance {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Balance
	for owner, l := range m.ledgers {
		for _, to := range l.Counterparts() {
			out = append(out, Balance{From: owner, To: to, Amount: l.Balance(to)})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// Restore loads stored balances, registering any settlement not yet known.
// Each row sets exactly the directed entry it names. Restored amounts are
// kept regardless of policy.
func (m *Manager) Restore(balances []Balance) error {
	for _, b := range balances {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	for _, b := range balances {
		m.AddSettlement(b.From)
		m.AddSettlement(b.To)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range balances {
		m.ledgers[b.From].set(b.To, b.Amount)
	}
	return nil
}
