package settlement

import (
	"errors"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/commerce"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
)

// Transfer moves a load from one settlement's stores to another's. Nothing
// moves unless the source holds the whole load.
func Transfer(catalog *goods.Catalog, from, to *Settlement, load commerce.Load) error {
	var errs []error
	for _, id := range load.IDs() {
		g, err := catalog.Lookup(id)
		if err != nil {
			return err
		}
		n := load[id]
		var held float64
		switch g.Category() {
		case goods.CategoryAmountResource:
			held = from.inventory.AmountStored(id)
		case goods.CategoryVehicle:
			_, idle := from.inventory.VehicleCount(id)
			held = float64(idle)
		default:
			held = float64(from.inventory.ItemCount(id) - from.inventory.InUseCount(id))
		}
		if float64(n) > held {
			errs = append(errs, &StockError{GoodID: id, Requested: float64(n), Held: held})
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	for _, id := range load.IDs() {
		g, _ := catalog.Lookup(id)
		n := load[id]
		switch g.Category() {
		case goods.CategoryAmountResource:
			_ = from.inventory.Retrieve(id, float64(n))
			to.inventory.Store(id, float64(n))
		case goods.CategoryVehicle:
			_ = from.inventory.RemoveVehicles(id, n)
			to.inventory.AddVehicles(id, n)
		default:
			_ = from.inventory.RemoveItems(id, n)
			to.inventory.AddItems(id, n)
		}
	}
	return nil
}
