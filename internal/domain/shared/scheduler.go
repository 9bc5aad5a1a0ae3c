package shared

import "fmt"

// Scheduler registers recurring callbacks on the logical timeline
type Scheduler interface {
	// Every runs fn first at start+offset and then every interval millisols
	Every(name string, offset, interval float64, fn func(now SimTime)) error
}

type recurringTask struct {
	name     string
	interval float64
	next     SimTime
	fn       func(now SimTime)
}

// TickScheduler is a single-threaded Scheduler. Callbacks fire from RunDue,
// which the simulation loop calls after advancing its clock.
type TickScheduler struct {
	clock Clock
	tasks []*recurringTask
}

// NewTickScheduler creates a scheduler reading time from clock
func NewTickScheduler(clock Clock) *TickScheduler {
	return &TickScheduler{clock: clock}
}

// Every implements Scheduler
func (s *TickScheduler) Every(name string, offset, interval float64, fn func(now SimTime)) error {
	if name == "" {
		return NewValidationError("name", "cannot be empty")
	}
	if interval <= 0 {
		return NewValidationError("interval", fmt.Sprintf("must be positive, got %f", interval))
	}
	if offset < 0 {
		return NewValidationError("offset", fmt.Sprintf("must be non-negative, got %f", offset))
	}
	if fn == nil {
		return NewValidationError("fn", "cannot be nil")
	}

	s.tasks = append(s.tasks, &recurringTask{
		name:     name,
		interval: interval,
		next:     s.clock.Now().Add(offset),
		fn:       fn,
	})
	return nil
}

// RunDue fires every callback whose next run time has been reached, in
// registration order, catching up on missed intervals. Returns the number of firings.
func (s *TickScheduler) RunDue() int {
	now := s.clock.Now()
	fired := 0
	for _, task := range s.tasks {
		for task.next <= now {
			task.fn(now)
			task.next = task.next.Add(task.interval)
			fired++
		}
	}
	return fired
}

// NextRun returns when the named task fires next
func (s *TickScheduler) NextRun(name string) (SimTime, bool) {
	for _, task := range s.tasks {
		if task.name == name {
			return task.next, true
		}
	}
	return 0, false
}

// NextDue returns the earliest time any task fires next
func (s *TickScheduler) NextDue() (SimTime, bool) {
	if len(s.tasks) == 0 {
		return 0, false
	}
	next := s.tasks[0].next
	for _, task := range s.tasks[1:] {
		if task.next < next {
			next = task.next
		}
	}
	return next, true
}

// SkipTo moves every task past now without firing it
func (s *TickScheduler) SkipTo(now SimTime) {
	for _, task := range s.tasks {
		for task.next <= now {
			task.next = task.next.Add(task.interval)
		}
	}
}
