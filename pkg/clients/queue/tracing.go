package queue

import (
	"context"

	"github.com/estafette/estafette-ci-buildstate/pkg/api"
	"github.com/opentracing/opentracing-go"
)

// NewTracingClient returns a new instance of a tracing Client.
func NewTracingClient(c Client) Client {
	return &tracingClient{c, "queue"}
}

type tracingClient struct {
	Client Client
	prefix string
}

func (c *tracingClient) Connect(ctx context.Context) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "Connect"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.Connect(ctx)
}

func (c *tracingClient) Close(ctx context.Context) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "Close"))
	defer api.FinishSpan(span)

	c.Client.Close(ctx)
}

func (c *tracingClient) PublishBuildEvent(ctx context.Context, event BuildEvent) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "PublishBuildEvent"))
	defer func() { api.FinishSpanWithError(span, err) }()
	span.SetTag("build-id", event.ID)

	return c.Client.PublishBuildEvent(ctx, event)
}
