package steps

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"github.com/mars-sim/mars-sim-sub053/internal/domain/credit"
	"github.com/mars-sim/mars-sim-sub053/internal/domain/shared"
)

type creditContext struct {
	manager *credit.Manager
	events  []credit.Event
	err     error
}

func (c *creditContext) reset() {
	c.manager = nil
	c.events = nil
	c.err = nil
}

// InitializeCreditScenario registers the credit ledger steps
func InitializeCreditScenario(sc *godog.ScenarioContext) {
	c := &creditContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		c.reset()
		return ctx, nil
	})

	sc.Step(`^a credit manager for "([^"]*)" that persists amounts$`, c.aManagerThatPersists)
	sc.Step(`^a credit manager for "([^"]*)" that only broadcasts amounts$`, c.aManagerThatBroadcasts)
	sc.Step(`^"([^"]*)" sets its credit toward "([^"]*)" to (-?[\d.]+)$`, c.setsCredit)
	sc.Step(`^the balances are restored from:$`, c.balancesAreRestored)
	sc.Step(`^the credit of "([^"]*)" toward "([^"]*)" should be (-?[\d.]+)$`, c.creditShouldBe)
	sc.Step(`^(\d+) credit changes? should have been broadcast$`, c.changesBroadcast)
	sc.Step(`^the last broadcast amount should be (-?[\d.]+)$`, c.lastBroadcastAmount)
	sc.Step(`^the credit request should fail$`, c.requestShouldFail)
}

func (c *creditContext) newManager(list string, persist bool) {
	var ids []string
	for _, id := range strings.Split(list, ",") {
		ids = append(ids, strings.TrimSpace(id))
	}
	c.manager = credit.NewManager(&shared.MockClock{}, credit.Policy{PersistAmounts: persist}, ids)
	c.manager.Subscribe(func(e credit.Event) { c.events = append(c.events, e) })
}

func (c *creditContext) aManagerThatPersists(list string) error {
	c.newManager(list, true)
	return nil
}

func (c *creditContext) aManagerThatBroadcasts(list string) error {
	c.newManager(list, false)
	return nil
}

func (c *creditContext) setsCredit(a, b string, amount float64) error {
	c.err = c.manager.SetCredit(a, b, amount)
	return nil
}

func (c *creditContext) balancesAreRestored(table *godog.Table) error {
	var balances []credit.Balance
	for _, row := range table.Rows[1:] {
		amount, err := strconv.ParseFloat(getCellValue(table, row, "amount"), 64)
		if err != nil {
			return err
		}
		balances = append(balances, credit.Balance{
			From:   getCellValue(table, row, "from"),
			To:     getCellValue(table, row, "to"),
			Amount: amount,
		})
	}
	return c.manager.Restore(balances)
}

func (c *creditContext) creditShouldBe(a, b string, want float64) error {
	if got := c.manager.GetCredit(a, b); math.Abs(got-want) > 1e-9 {
		return fmt.Errorf("expected credit of %s toward %s to be %g, got %g", a, b, want, got)
	}
	return nil
}

func (c *creditContext) changesBroadcast(n int) error {
	if len(c.events) != n {
		return fmt.Errorf("expected %d credit changes, got %d", n, len(c.events))
	}
	return nil
}

func (c *creditContext) lastBroadcastAmount(want float64) error {
	if len(c.events) == 0 {
		return fmt.Errorf("no credit change was broadcast")
	}
	if got := c.events[len(c.events)-1].Amount; got != want {
		return fmt.Errorf("expected broadcast amount %g, got %g", want, got)
	}
	return nil
}

func (c *creditContext) requestShouldFail() error {
	if c.err == nil {
		return fmt.Errorf("expected the credit request to fail")
	}
	return nil
}
