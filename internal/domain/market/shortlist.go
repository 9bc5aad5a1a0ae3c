package market

import (
	"sort"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

// ListValidity is the shortlist refresh cadence in millisols
const ListValidity shared.SimTime = 500

const (
	buyMarkup      = 1.1
	listShare      = 0.1
	minBuyBudget   = 50.0
	minBuyQuantity = 10
)

// ShoppingItem is a shortlist entry: how many units, at what unit price
type ShoppingItem struct {
	Quantity int
	Price    float64
}

// RefreshShortlists recalculates the buy list, then the sell list, and
// notifies listeners so dependent caches can be dropped.
func (l *Ledger) RefreshShortlists(site Site) {
	l.CalculateBuyList(site)
	l.CalculateSellList(site)
	l.listsRefresh = l.env.Clock.Now()

	l.publish(Event{
		Type:         EventShortlistsRefreshed,
		SettlementID: l.settlementID,
		At:           l.listsRefresh,
	})
}

// CalculateBuyList lists every tradeable good whose demand exceeds its
// supply, priced with a 10% markup. The quantity is a tenth of what the
// settlement holds, or enough to spend 50 VP (at least 10) when it holds
// too little.
func (l *Ledger) CalculateBuyList(site Site) map[int]ShoppingItem {
	buy := make(map[int]ShoppingItem)
	for _, g := range l.env.Catalog.All() {
		id := g.ID()
		if l.tradeExcluded[id] {
			continue
		}
		if l.demand[id] <= l.supply[id] {
			continue
		}

		price := l.Price(site, g) * buyMarkup
		quantity := int(NumberHeld(site, g) * listShare)
		if quantity == 0 {
			quantity = minBuyQuantity
			if price > 0 {
				if n := int(minBuyBudget / price); n > quantity {
					quantity = n
				}
			}
		}
		buy[id] = ShoppingItem{Quantity: quantity, Price: price}
	}

	l.buyList = buy
	return copyItems(buy)
}

// CalculateSellList lists every tradeable good not on the buy list that has
// a positive price and enough stock to part with a tenth of it.
func (l *Ledger) CalculateSellList(site Site) map[int]ShoppingItem {
	sell := make(map[int]ShoppingItem)
	for _, g := range l.env.Catalog.All() {
		id := g.ID()
		if l.tradeExcluded[id] {
			continue
		}
		if _, buying := l.buyList[id]; buying {
			continue
		}

		price := l.Price(site, g)
		if price <= 0 {
			continue
		}
		if quantity := int(NumberHeld(site, g) * listShare); quantity > 0 {
			sell[id] = ShoppingItem{Quantity: quantity, Price: price}
		}
	}

	l.sellList = sell
	return copyItems(sell)
}

// BuyList returns a copy of the current buy list
func (l *Ledger) BuyList() map[int]ShoppingItem {
	return copyItems(l.buyList)
}

// SellList returns a copy of the current sell list
func (l *Ledger) SellList() map[int]ShoppingItem {
	return copyItems(l.sellList)
}

// ShortlistsRefreshedAt returns when the shortlists were last recalculated
func (l *Ledger) ShortlistsRefreshedAt() shared.SimTime {
	return l.listsRefresh
}

// IsTradeExcluded reports whether a good never appears on a shortlist
func (l *Ledger) IsTradeExcluded(id int) bool {
	return l.tradeExcluded[id]
}

// PricePerItem returns the current price of one unit of a good
func (l *Ledger) PricePerItem(site Holdings, id int) (float64, error) {
	g, err := l.env.Catalog.Lookup(id)
	if err != nil {
		return 0, err
	}
	return l.Price(site, g), nil
}

// ShortlistEntry is one row of a sorted shortlist view
type ShortlistEntry struct {
	Good *goods.Good
	ShoppingItem
}

// SortedList orders a shortlist by descending total value (price times quantity)
func (l *Ledger) SortedList(items map[int]ShoppingItem) []ShortlistEntry {
	entries := make([]ShortlistEntry, 0, len(items))
	for id, item := range items {
		g, err := l.env.Catalog.Lookup(id)
		if err != nil {
			continue
		}
		entries = append(entries, ShortlistEntry{Good: g, ShoppingItem: item})
	}
	sort.Slice(entries, func(i, j int) bool {
		vi := entries[i].Price * float64(entries[i].Quantity)
		vj := entries[j].Price * float64(entries[j].Quantity)
		if vi != vj {
			return vi > vj
		}
		return entries[i].Good.ID() < entries[j].Good.ID()
	})
	return entries
}

func copyItems(src map[int]ShoppingItem) map[int]ShoppingItem {
	dst := make(map[int]ShoppingItem, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
