package credit

import "github.com/mars-sim/mars-sim-sub053/internal/domain/shared"

// Event reports a requested change to the credit between two settlements.
// Amount is the balance From asked to hold toward To, whether or not it was stored.
type Event struct {
	From   string
	To     string
	Amount float64
	At     shared.SimTime
}

// Listener receives credit events
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}
