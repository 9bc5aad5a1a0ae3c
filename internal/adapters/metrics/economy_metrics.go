package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mars-sim/mars-sim-sub053/internal/application/economy"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/commerce"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/credit"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/goods"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/market"
)

// EventSource is the part of the engine the collector listens to
type EventSource interface {
	SubscribeMarket(fn market.Listener) func()
	SubscribeCredit(fn credit.Listener) func()
	SubscribeDeals(fn commerce.Listener) func()
}

// EconomyMetricsCollector turns engine events into Prometheus series
type EconomyMetricsCollector struct {
	catalog *goods.Catalog

	// Valuation
	goodValue         *prometheus.GaugeVec
	valueChangesTotal *prometheus.CounterVec
	refreshesTotal    *prometheus.CounterVec

	// Deals
	dealsTotal *prometheus.CounterVec
	dealProfit *prometheus.GaugeVec

	// Credit
	creditBalance *prometheus.GaugeVec

	// Ticks
	simTime         prometheus.Gauge
	valuationsTotal prometheus.Counter
}

// NewEconomyMetricsCollector creates a collector; catalog resolves good names for labels
func NewEconomyMetricsCollector(catalog *goods.Catalog) *EconomyMetricsCollector {
	return &EconomyMetricsCollector{
		catalog: catalog,

		goodValue: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "good_value_points",
				Help:      "Current value point of a good at a settlement",
			},
			[]string{"settlement", "good"},
		),

		valueChangesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "value_changes_total",
				Help:      "Number of stored value point changes per settlement",
			},
			[]string{"settlement"},
		),

		refreshesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "shortlist_refreshes_total",
				Help:      "Number of buy and sell list recalculations per settlement",
			},
			[]string{"settlement"},
		),

		dealsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "deals_computed_total",
				Help:      "Number of best deals computed by start settlement and mission type",
			},
			[]string{"settlement", "mission"},
		),

		dealProfit: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "deal_profit_value_points",
				Help:      "Profit of the latest best deal by start settlement and mission type",
			},
			[]string{"settlement", "mission", "buyer"},
		),

		creditBalance: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "credit_balance",
				Help:      "Latest requested credit balance from one settlement toward another",
			},
			[]string{"from", "to"},
		),

		simTime: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sim_time_millisols",
				Help:      "Simulation time reached by the last advance",
			},
		),

		valuationsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "valuation_ticks_total",
				Help:      "Number of valuation ticks run",
			},
		),
	}
}

// Register registers all economy metrics with the Prometheus registry
func (c *EconomyMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.goodValue,
		c.valueChangesTotal,
		c.refreshesTotal,
		c.dealsTotal,
		c.dealProfit,
		c.creditBalance,
		c.simTime,
		c.valuationsTotal,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// Attach subscribes the collector to src and returns a function that detaches it
func (c *EconomyMetricsCollector) Attach(src EventSource) func() {
	stops := []func(){
		src.SubscribeMarket(c.RecordMarketEvent),
		src.SubscribeCredit(c.RecordCreditEvent),
		src.SubscribeDeals(c.RecordDeal),
	}
	return func() {
		for _, stop := range stops {
			stop()
		}
	}
}

// RecordMarketEvent records a value change or shortlist refresh
func (c *EconomyMetricsCollector) RecordMarketEvent(e market.Event) {
	switch e.Type {
	case market.EventValueChanged:
		c.goodValue.WithLabelValues(e.SettlementID, c.goodName(e.GoodID)).Set(e.NewValue)
		c.valueChangesTotal.WithLabelValues(e.SettlementID).Inc()
	case market.EventShortlistsRefreshed:
		c.refreshesTotal.WithLabelValues(e.SettlementID).Inc()
	}
}

// RecordCreditEvent records the requested balance between two settlements
func (c *EconomyMetricsCollector) RecordCreditEvent(e credit.Event) {
	c.creditBalance.WithLabelValues(e.From, e.To).Set(e.Amount)
}

// RecordDeal records a newly computed best deal
func (c *EconomyMetricsCollector) RecordDeal(e commerce.DealComputed) {
	if e.Deal == nil {
		return
	}
	mission := string(e.Deal.Mission())
	c.dealsTotal.WithLabelValues(e.Deal.Seller(), mission).Inc()
	c.dealProfit.WithLabelValues(e.Deal.Seller(), mission, e.Deal.Buyer()).Set(e.Deal.Profit())
}

// RecordTick records the outcome of one advance
func (c *EconomyMetricsCollector) RecordTick(report economy.TickReport) {
	c.simTime.Set(float64(report.To))
	c.valuationsTotal.Add(float64(report.Valuations))
}

func (c *EconomyMetricsCollector) goodName(id int) string {
	if c.catalog != nil {
		if g, err := c.catalog.Lookup(id); err == nil {
			return g.Name()
		}
	}
	return strconv.Itoa(id)
}
