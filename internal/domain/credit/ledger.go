package credit

import "sort"

// Ledger is one settlement's signed balances toward every other settlement.
// A positive balance means the counterpart owes this settlement.
type Ledger struct {
	owner    string
	balances map[string]float64
}

// NewLedger seeds a zero balance toward every known settlement except the owner
func NewLedger(owner string, known []string) *Ledger {
	l := &Ledger{
		owner:    owner,
		balances: make(map[string]float64, len(known)),
	}
	for _, id := range known {
		l.addCounterpart(id)
	}
	return l
}

// Owner returns the settlement this ledger belongs to
func (l *Ledger) Owner() string {
	return l.owner
}

// Balance returns the balance toward a counterpart, 0 if never recorded
func (l *Ledger) Balance(counterpart string) float64 {
	return l.balances[counterpart]
}

// Knows reports whether the counterpart has an entry
func (l *Ledger) Knows(counterpart string) bool {
	_, ok := l.balances[counterpart]
	return ok
}

// Counterparts returns every settlement with an entry, sorted
func (l *Ledger) Counterparts() []string {
	ids := make([]string, 0, len(l.balances))
	for id := range l.balances {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (l *Ledger) addCounterpart(id string) {
	if id == l.owner {
		return
	}
	if _, ok := l.balances[id]; !ok {
		l.balances[id] = 0
	}
}

func (l *Ledger) set(counterpart string, amount float64) {
	l.balances[counterpart] = amount
}
