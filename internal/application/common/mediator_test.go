package common_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mars-sim/mars-sim-sub053/internal/application/common"
)

type pingQuery struct{ Name string }

type pingHandler struct{}

func (pingHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	q := request.(*pingQuery)
	if q.Name == "" {
		return nil, errors.New("empty name")
	}
	return "pong " + q.Name, nil
}

type capture struct{ entries []string }

func (c *capture) Log(level, message string, metadata map[string]interface{}) {
	c.entries = append(c.entries, level+" "+message)
}

func TestMediator_DispatchesThroughMiddlewareInOrder(t *testing.T) {
	// Arrange
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingQuery](m, pingHandler{}))
	var order []string
	for _, name := range []string{"outer", "inner"} {
		name := name
		m.Use(func(ctx context.Context, r common.Request, next common.HandlerFunc) (common.Response, error) {
			order = append(order, name)
			return next(ctx, r)
		})
	}

	// Act
	resp, err := m.Send(context.Background(), &pingQuery{Name: "mars"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pong mars", resp)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestMediator_RejectsUnknownAndDuplicateHandlers(t *testing.T) {
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingQuery](m, pingHandler{}))

	assert.Error(t, common.RegisterHandler[*pingQuery](m, pingHandler{}))
	_, err := m.Send(context.Background(), &struct{}{})
	assert.Error(t, err)
	_, err = m.Send(context.Background(), nil)
	assert.Error(t, err)
}

func TestLoggingMiddleware_LogsFailures(t *testing.T) {
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingQuery](m, pingHandler{}))
	m.Use(common.LoggingMiddleware())
	logger := &capture{}
	ctx := common.WithLogger(context.Background(), logger)

	_, err := m.Send(ctx, &pingQuery{})
	require.Error(t, err)
	_, err = m.Send(ctx, &pingQuery{Name: "ok"})
	require.NoError(t, err)

	assert.Equal(t, []string{"WARN request failed"}, logger.entries)
}
