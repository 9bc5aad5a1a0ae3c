package goods

import "fmt"

// ItemKind is the kind of a process input or output
type ItemKind string

const (
	ItemAmountResource ItemKind = "AMOUNT_RESOURCE"
	ItemPart           ItemKind = "PART"
	ItemEquipment      ItemKind = "EQUIPMENT"
	ItemBin            ItemKind = "BIN"
	ItemVehicle        ItemKind = "VEHICLE"
)

// ProcessKind separates manufacturing from food production
type ProcessKind string

const (
	ProcessManufacturing  ProcessKind = "MANUFACTURING"
	ProcessFoodProduction ProcessKind = "FOOD_PRODUCTION"
)

// ProcessItem is one input or output line of a process
type ProcessItem struct {
	Name   string   `yaml:"name" json:"name" validate:"required"`
	Kind   ItemKind `yaml:"kind" json:"kind" validate:"required"`
	Amount float64  `yaml:"amount" json:"amount" validate:"gt=0"`
}

// Process is a declarative production recipe
type Process struct {
	Name        string        `yaml:"name" json:"name" validate:"required"`
	Kind        ProcessKind   `yaml:"kind" json:"kind" validate:"required,oneof=MANUFACTURING FOOD_PRODUCTION"`
	Inputs      []ProcessItem `yaml:"inputs" json:"inputs" validate:"dive"`
	Outputs     []ProcessItem `yaml:"outputs" json:"outputs" validate:"min=1,dive"`
	WorkTime    float64       `yaml:"work_time" json:"work_time" validate:"gte=0"`
	ProcessTime float64       `yaml:"process_time" json:"process_time" validate:"gte=0"`
	Power       float64       `yaml:"power" json:"power" validate:"gte=0"`
	Skill       int           `yaml:"skill" json:"skill" validate:"gte=0"`
	Tech        int           `yaml:"tech" json:"tech" validate:"gte=0"`
}

// OutputsNamed returns the outputs whose name matches, case-insensitively
func (p Process) OutputsNamed(name string) []ProcessItem {
	key := normalizeName(name)
	var items []ProcessItem
	for _, o := range p.Outputs {
		if normalizeName(o.Name) == key {
			items = append(items, o)
		}
	}
	return items
}

// InputNamed returns the input line for a good, if the process consumes it
func (p Process) InputNamed(name string) (ProcessItem, bool) {
	key := normalizeName(name)
	for _, in := range p.Inputs {
		if normalizeName(in.Name) == key {
			return in, true
		}
	}
	return ProcessItem{}, false
}

// TotalInputAmount sums the amounts of every input line
func (p Process) TotalInputAmount() float64 {
	total := 0.0
	for _, in := range p.Inputs {
		total += in.Amount
	}
	return total
}

// ProcessTable is the read side of the production-process data
type ProcessTable interface {
	// Producing returns the processes of a kind that list name among their outputs
	Producing(kind ProcessKind, name string) []Process

	// UpToTech returns the processes of a kind runnable at or below a tech level
	UpToTech(kind ProcessKind, tech int) []Process
}

// StaticProcessTable is an immutable in-memory ProcessTable
type StaticProcessTable struct {
	processes []Process
	producers map[ProcessKind]map[string][]Process
}

// NewStaticProcessTable indexes the given processes by output name
func NewStaticProcessTable(processes []Process) (*StaticProcessTable, error) {
	t := &StaticProcessTable{
		processes: make([]Process, 0, len(processes)),
		producers: map[ProcessKind]map[string][]Process{
			ProcessManufacturing:  {},
			ProcessFoodProduction: {},
		},
	}

	for _, p := range processes {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: empty name", ErrInvalidProcess)
		}
		byName, ok := t.producers[p.Kind]
		if !ok {
			return nil, fmt.Errorf("%w: %s has kind %q", ErrInvalidProcess, p.Name, p.Kind)
		}
		if len(p.Outputs) == 0 {
			return nil, fmt.Errorf("%w: %s has no outputs", ErrInvalidProcess, p.Name)
		}

		t.processes = append(t.processes, p)
		seen := make(map[string]bool)
		for _, o := range p.Outputs {
			key := normalizeName(o.Name)
			if seen[key] {
				continue
			}
			seen[key] = true
			byName[key] = append(byName[key], p)
		}
	}
	return t, nil
}

// Producing implements ProcessTable
func (t *StaticProcessTable) Producing(kind ProcessKind, name string) []Process {
	return t.producers[kind][normalizeName(name)]
}

// UpToTech implements ProcessTable
func (t *StaticProcessTable) UpToTech(kind ProcessKind, tech int) []Process {
	var result []Process
	for _, p := range t.processes {
		if p.Kind == kind && p.Tech <= tech {
			result = append(result, p)
		}
	}
	return result
}

// All returns every process in definition order
func (t *StaticProcessTable) All() []Process {
	result := make([]Process, len(t.processes))
	copy(result, t.processes)
	return result
}
