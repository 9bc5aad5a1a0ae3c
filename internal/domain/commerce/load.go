package commerce

import (
	"sort"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
)

// Load maps good IDs to quantities: kg for amount resources, units otherwise
type Load map[int]int

// Clone returns an independent copy
func (l Load) Clone() Load {
	out := make(Load, len(l))
	for id, n := range l {
		out[id] = n
	}
	return out
}

// IDs returns the goods in the load, sorted
func (l Load) IDs() []int {
	ids := make([]int, 0, len(l))
	for id := range l {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Mass returns the cargo mass of the load in kg. Vehicles drive themselves
// and weigh nothing; amount resources weigh their kg, everything else its
// unit mass times the count.
func (l Load) Mass(catalog *goods.Catalog) (float64, error) {
	total := 0.0
	for id, n := range l {
		g, err := catalog.Lookup(id)
		if err != nil {
			return 0, err
		}
		switch g.Category() {
		case goods.CategoryVehicle:
		case goods.CategoryAmountResource:
			total += float64(n)
		default:
			total += g.MassPerItem() * float64(n)
		}
	}
	return total, nil
}

// LoadResult is a built load plus the goods that failed evaluation on the way
type LoadResult struct {
	Load     Load
	Failures []Evaluation
}
