package shared

import "fmt"

// MillisolsPerSol is the number of logical time units in one Martian day.
const MillisolsPerSol = 1000.0

// SimTime is a point on the simulation's logical timeline, measured in millisols
// since the start of the run. It never reads the wall clock.
type SimTime float64

// Sol returns the (1-based) mission sol containing t
func (t SimTime) Sol() int {
	return int(float64(t)/MillisolsPerSol) + 1
}

// Add returns t advanced by d millisols
func (t SimTime) Add(d float64) SimTime {
	return t + SimTime(d)
}

func (t SimTime) String() string {
	return fmt.Sprintf("sol %d @ %07.3f", t.Sol(), float64(t)-float64(t.Sol()-1)*MillisolsPerSol)
}

// Clock is an abstraction for logical time, allowing time to be driven explicitly in tests
type Clock interface {
	Now() SimTime
	Elapsed(from, to SimTime) float64
}

// MasterClock is the simulation's clock. It only moves when the tick loop advances it.
type MasterClock struct {
	current SimTime
}

// NewMasterClock creates a MasterClock starting at the given time
func NewMasterClock(start SimTime) *MasterClock {
	return &MasterClock{current: start}
}

// Now returns the current logical time
func (c *MasterClock) Now() SimTime {
	return c.current
}

// Elapsed returns the millisols between two timestamps
func (c *MasterClock) Elapsed(from, to SimTime) float64 {
	return float64(to - from)
}

// Advance moves the clock forward by d millisols and returns the new time
func (c *MasterClock) Advance(d float64) SimTime {
	if d > 0 {
		c.current = c.current.Add(d)
	}
	return c.current
}

// AdvanceTo moves the clock forward to t. Earlier times leave it unchanged.
func (c *MasterClock) AdvanceTo(t SimTime) SimTime {
	if t > c.current {
		c.current = t
	}
	return c.current
}

// MockClock implements Clock with a controllable time for testing
type MockClock struct {
	CurrentTime SimTime
}

// Now returns the mock's current time
func (m *MockClock) Now() SimTime {
	return m.CurrentTime
}

// Elapsed returns the millisols between two timestamps
func (m *MockClock) Elapsed(from, to SimTime) float64 {
	return float64(to - from)
}

// Advance moves the mock clock forward by the given number of millisols
func (m *MockClock) Advance(d float64) {
	m.CurrentTime = m.CurrentTime.Add(d)
}

// SetTime sets the mock clock to a specific time
func (m *MockClock) SetTime(t SimTime) {
	m.CurrentTime = t
}

// NewMockClock creates a MockClock starting at the given time
func NewMockClock(start SimTime) *MockClock {
	return &MockClock{CurrentTime: start}
}
