package economy

import (
	"github.com/mars-sim/mars-sim-sub053/internal/domain/commerce"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/credit"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/market"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

// TickReport summarizes one Advance call
type TickReport struct {
	From       shared.SimTime
	To         shared.SimTime
	Valuations int
	Refreshes  int
	Changes    int
	Warnings   []string
}

// GoodView is one good's row in a market view
type GoodView struct {
	ID       int
	Name     string
	Category goods.Category
	Value    float64
	Demand   float64
	Supply   float64
	Price    float64
	Held     float64
}

// ShortlistRow is one entry of a buy or sell list
type ShortlistRow struct {
	GoodID   int
	Name     string
	Quantity int
	Price    float64
}

// MarketView is a read-only copy of one settlement's ledger
type MarketView struct {
	SettlementID string
	At           shared.SimTime
	RefreshedAt  shared.SimTime
	Goods        []GoodView
	Buy          []ShortlistRow
	Sell         []ShortlistRow
}

// Execution is the outcome of carrying out a deal
type Execution struct {
	Deal        *commerce.Deal
	MissionID   string
	Sold        commerce.Load
	Bought      commerce.Load
	ReturnOffer commerce.Load
	Credit      float64
	Warnings    []string
}

// Snapshot is the persisted state of a run
type Snapshot struct {
	At       shared.SimTime        `json:"at"`
	Ledgers  []*market.LedgerState `json:"ledgers"`
	Balances []credit.Balance      `json:"balances"`
	Costs    []goods.CostState     `json:"costs"`
}

func shortlistRows(entries []market.ShortlistEntry) []ShortlistRow {
	rows := make([]ShortlistRow, len(entries))
	for i, e := range entries {
		rows[i] = ShortlistRow{GoodID: e.Good.ID(), Name: e.Good.Name(), Quantity: e.Quantity, Price: e.Price}
	}
	return rows
}
