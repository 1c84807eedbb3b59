package queue

import (
	"context"

	"github.com/estafette/estafette-ci-buildstate/pkg/api"
)

// NewLoggingClient returns a new instance of a logging Client.
func NewLoggingClient(c Client) Client {
	return &loggingClient{c, "queue"}
}

type loggingClient struct {
	Client Client
	prefix string
}

func (c *loggingClient) Connect(ctx context.Context) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "Connect", err) }()

	return c.Client.Connect(ctx)
}

func (c *loggingClient) Close(ctx context.Context) {
	c.Client.Close(ctx)
}

func (c *loggingClient) PublishBuildEvent(ctx context.Context, event BuildEvent) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "PublishBuildEvent", err) }()

	return c.Client.PublishBuildEvent(ctx, event)
}
