package market

import "github.com/mars-sim/mars-sim-sub053/internal/domain/shared"

// EventType identifies a ledger notification
type EventType string

const (
	// EventValueChanged fires when a good's stored value point changes
	EventValueChanged EventType = "GOODS_VALUE"

	// EventShortlistsRefreshed fires after the buy and sell lists are recalculated
	EventShortlistsRefreshed EventType = "SHORTLISTS_REFRESHED"
)

// Event is a synchronous ledger notification
type Event struct {
	Type         EventType
	SettlementID string
	GoodID       int
	OldValue     float64
	NewValue     float64
	At           shared.SimTime
}

// Listener receives ledger events
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Subscribe registers a listener and returns a function that removes it.
// Listeners run synchronously in registration order.
func (l *Ledger) Subscribe(fn Listener) func() {
	l.nextSubscription++
	id := l.nextSubscription

	// copy on write so a listener may subscribe or unsubscribe during delivery
	next := make([]subscription, len(l.listeners), len(l.listeners)+1)
	copy(next, l.listeners)
	l.listeners = append(next, subscription{id: id, fn: fn})

	return func() {
		remaining := make([]subscription, 0, len(l.listeners))
		for _, s := range l.listeners {
			if s.id != id {
				remaining = append(remaining, s)
			}
		}
		l.listeners = remaining
	}
}

func (l *Ledger) publish(e Event) {
	for _, s := range l.listeners {
		s.fn(e)
	}
}
