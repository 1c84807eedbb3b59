package executor

import (
	"context"
	"io"
	"time"

	"github.com/estafette/estafette-ci-buildstate/pkg/api"
	"github.com/go-kit/kit/metrics"
)

// NewMetricsClient returns a new instance of a metrics Client.
func NewMetricsClient(c Client, requestCount metrics.Counter, requestLatency metrics.Histogram) Client {
	return &metricsClient{c, requestCount, requestLatency}
}

type metricsClient struct {
	Client         Client
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
}

func (c *metricsClient) Run(ctx context.Context, target Target, command string) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "Run", begin) }(time.Now())

	return c.Client.Run(ctx, target, command)
}

func (c *metricsClient) SetHandler(stream Stream, handler LineHandler) {
	c.Client.SetHandler(stream, handler)
}

func (c *metricsClient) Decorate(name string, decorator Decorator) bool {
	return c.Client.Decorate(name, decorator)
}

func (c *metricsClient) HandleOutput(ctx context.Context, stream Stream, target Target, reader io.Reader) (err error) {
	return c.Client.HandleOutput(ctx, stream, target, reader)
}
