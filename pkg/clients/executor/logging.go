package executor

import (
	"context"
	"io"

	"github.com/estafette/estafette-ci-buildstate/pkg/api"
)

// NewLoggingClient returns a new instance of a logging Client.
func NewLoggingClient(c Client) Client {
	return &loggingClient{c, "executor"}
}

type loggingClient struct {
	Client Client
	prefix string
}

func (c *loggingClient) Run(ctx context.Context, target Target, command string) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "Run", err) }()

	return c.Client.Run(ctx, target, command)
}

func (c *loggingClient) SetHandler(stream Stream, handler LineHandler) {
	c.Client.SetHandler(stream, handler)
}

func (c *loggingClient) Decorate(name string, decorator Decorator) bool {
	return c.Client.Decorate(name, decorator)
}

func (c *loggingClient) HandleOutput(ctx context.Context, stream Stream, target Target, reader io.Reader) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "HandleOutput", err) }()

	return c.Client.HandleOutput(ctx, stream, target, reader)
}
