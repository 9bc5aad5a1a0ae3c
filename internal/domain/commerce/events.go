package commerce

import "github.com/mars-sim/mars-sim-sub053/internal/domain/shared"

// DealComputed is published whenever a new best deal is found
type DealComputed struct {
	Deal *Deal
	At   shared.SimTime
}

// Listener receives DealComputed notifications
type Listener func(DealComputed)

type subscription struct {
	id int
	fn Listener
}

// Subscribe registers a listener and returns a function that removes it
func (f *Finder) Subscribe(fn Listener) func() {
	f.nextSubscription++
	id := f.nextSubscription

	next := make([]subscription, len(f.listeners), len(f.listeners)+1)
	copy(next, f.listeners)
	f.listeners = append(next, subscription{id: id, fn: fn})

	return func() {
		remaining := make([]subscription, 0, len(f.listeners))
		for _, s := range f.listeners {
			if s.id != id {
				remaining = append(remaining, s)
			}
		}
		f.listeners = remaining
	}
}

func (f *Finder) publish(e DealComputed) {
	for _, s := range f.listeners {
		s.fn(e)
	}
}
