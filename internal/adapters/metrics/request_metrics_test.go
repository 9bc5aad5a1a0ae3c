package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mars-sim/mars-sim-sub053/internal/application/common"
)

type pingQuery struct{}

type resetLedgerCommand struct{}

type pingHandler struct{}

func (pingHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	return "pong", nil
}

type failingHandler struct{}

func (failingHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	return nil, errors.New("ledger locked")
}

func TestPrometheusMiddleware_RecordsRequests(t *testing.T) {
	// Arrange
	withRegistry(t)
	collector := NewRequestMetricsCollector()
	require.NoError(t, collector.Register())
	mediator := common.NewMediator()
	mediator.Use(PrometheusMiddleware(collector))
	require.NoError(t, common.RegisterHandler[*pingQuery](mediator, pingHandler{}))
	require.NoError(t, common.RegisterHandler[*resetLedgerCommand](mediator, failingHandler{}))

	// Act
	resp, err := mediator.Send(context.Background(), &pingQuery{})
	_, cmdErr := mediator.Send(context.Background(), &resetLedgerCommand{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pong", resp)
	assert.Error(t, cmdErr)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.total.WithLabelValues("pingQuery", KindQuery, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.total.WithLabelValues("resetLedgerCommand", KindCommand, "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(collector.duration))
}

func TestRequestKind(t *testing.T) {
	assert.Equal(t, KindCommand, requestKind("AdvanceTimeCommand"))
	assert.Equal(t, KindCommand, requestKind("ExecuteDealCommand"))
	assert.Equal(t, KindQuery, requestKind("FindDealQuery"))
}
