package executor

import (
	"context"
	"io"

	"github.com/estafette/estafette-ci-buildstate/pkg/api"
	"github.com/opentracing/opentracing-go"
)

// NewTracingClient returns a new instance of a tracing Client.
func NewTracingClient(c Client) Client {
	return &tracingClient{c, "executor"}
}

type tracingClient struct {
	Client Client
	prefix string
}

func (c *tracingClient) Run(ctx context.Context, target Target, command string) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "Run"))
	defer func() { api.FinishSpanWithError(span, err) }()
	span.SetTag("host", target.Host)

	return c.Client.Run(ctx, target, command)
}

func (c *tracingClient) SetHandler(stream Stream, handler LineHandler) {
	c.Client.SetHandler(stream, handler)
}

func (c *tracingClient) Decorate(name string, decorator Decorator) bool {
	return c.Client.Decorate(name, decorator)
}

func (c *tracingClient) HandleOutput(ctx context.Context, stream Stream, target Target, reader io.Reader) (err error) {
	return c.Client.HandleOutput(ctx, stream, target, reader)
}
