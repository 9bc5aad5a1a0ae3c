package settlement

// Inventory holds a settlement's stores: kg of amount resources, unit
// counts of everything countable and the total/idle split of vehicles.
type Inventory struct {
	amounts  map[int]float64
	items    map[int]int
	inUse    map[int]int
	vehicles map[int]int
	idle     map[int]int
}

// NewInventory creates an empty inventory
func NewInventory() *Inventory {
	return &Inventory{
		amounts:  make(map[int]float64),
		items:    make(map[int]int),
		inUse:    make(map[int]int),
		vehicles: make(map[int]int),
		idle:     make(map[int]int),
	}
}

func (i *Inventory) AmountStored(id int) float64 { return i.amounts[id] }
func (i *Inventory) ItemCount(id int) int        { return i.items[id] }
func (i *Inventory) InUseCount(id int) int       { return i.inUse[id] }

// VehicleCount returns the total and idle number of vehicles of a spec
func (i *Inventory) VehicleCount(id int) (int, int) {
	return i.vehicles[id], i.idle[id]
}

// Store adds kg of an amount resource
func (i *Inventory) Store(id int, kg float64) {
	if kg > 0 {
		i.amounts[id] += kg
	}
}

// Retrieve removes kg of an amount resource
func (i *Inventory) Retrieve(id int, kg float64) error {
	if kg > i.amounts[id] {
		return &StockError{GoodID: id, Requested: kg, Held: i.amounts[id]}
	}
	i.amounts[id] -= kg
	return nil
}

// AddItems adds units of a countable good
func (i *Inventory) AddItems(id, n int) {
	if n > 0 {
		i.items[id] += n
	}
}

// RemoveItems removes units that are not in use
func (i *Inventory) RemoveItems(id, n int) error {
	free := i.items[id] - i.inUse[id]
	if n > free {
		return &StockError{GoodID: id, Requested: float64(n), Held: float64(free)}
	}
	i.items[id] -= n
	return nil
}

// SetInUse marks how many units of a good are in use, capped at the units held
func (i *Inventory) SetInUse(id, n int) {
	i.inUse[id] = max(0, min(n, i.items[id]))
}

// AddVehicles parks n idle vehicles of a spec
func (i *Inventory) AddVehicles(id, n int) {
	if n > 0 {
		i.vehicles[id] += n
		i.idle[id] += n
	}
}

// RemoveVehicles takes n idle vehicles of a spec away
func (i *Inventory) RemoveVehicles(id, n int) error {
	if n > i.idle[id] {
		return &StockError{GoodID: id, Requested: float64(n), Held: float64(i.idle[id])}
	}
	i.vehicles[id] -= n
	i.idle[id] -= n
	return nil
}

// Dispatch marks an idle vehicle as out on a mission
func (i *Inventory) Dispatch(id int) error {
	if i.idle[id] == 0 {
		return &StockError{GoodID: id, Requested: 1}
	}
	i.idle[id]--
	return nil
}

// Return brings a dispatched vehicle back to idle
func (i *Inventory) Return(id int) {
	if i.idle[id] < i.vehicles[id] {
		i.idle[id]++
	}
}
