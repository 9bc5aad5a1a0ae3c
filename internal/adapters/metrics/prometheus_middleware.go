package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/mars-sim/mars-sim-sub053/internal/application/common"
)

// PrometheusMiddleware creates a middleware that records request metrics
//
// Request names are taken from the request type without its package,
// so "*commands.AdvanceTimeCommand" is recorded as "AdvanceTimeCommand".
func PrometheusMiddleware(collector *RequestMetricsCollector) common.Middleware {
	return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		commandName := extractCommandName(request)
		start := time.Now()

		response, err := next(ctx, request)

		collector.Observe(commandName, time.Since(start).Seconds(), err)

		return response, err
	}
}

// extractCommandName extracts a clean command name from the request using reflection
func extractCommandName(request common.Request) string {
	if request == nil {
		return "UnknownCommand"
	}

	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(fullName, "."); i >= 0 {
		return fullName[i+1:]
	}
	return fullName
}
