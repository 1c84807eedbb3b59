package queue

import (
	"context"
	"strings"

	"github.com/estafette/estafette-ci-buildstate/pkg/api"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// Client publishes build change notifications to nats
//
//go:generate mockgen -package=queue -destination ./mock.go -source=client.go
type Client interface {
	Connect(ctx context.Context) (err error)
	Close(ctx context.Context)
	PublishBuildEvent(ctx context.Context, event BuildEvent) (err error)
}

// NewClient returns a new queue.Client; when the queue is disabled in config it doesn't publish anything
func NewClient(config *api.QueueConfig) Client {
	return &client{
		config: config,
	}
}

type client struct {
	config                *api.QueueConfig
	natsConnection        *nats.Conn
	natsEncodedConnection *nats.EncodedConn
}

func (c *client) Connect(ctx context.Context) (err error) {
	if !c.config.Enabled {
		log.Debug().Msg("Queue is disabled, not connecting to nats")
		return nil
	}

	c.natsConnection, err = nats.Connect(strings.Join(c.config.Hosts, ","), nats.Name("estafette-ci-buildstate"))
	if err != nil {
		return
	}

	c.natsEncodedConnection, err = nats.NewEncodedConn(c.natsConnection, nats.JSON_ENCODER)
	if err != nil {
		return
	}

	return nil
}

func (c *client) Close(ctx context.Context) {
	if c.natsEncodedConnection != nil {
		c.natsEncodedConnection.Close()
	}
	if c.natsConnection != nil {
		c.natsConnection.Close()
	}
}

func (c *client) PublishBuildEvent(ctx context.Context, event BuildEvent) (err error) {
	if !c.config.Enabled || c.natsEncodedConnection == nil {
		return nil
	}

	return c.natsEncodedConnection.Publish(c.config.SubjectBuild, &event)
}
