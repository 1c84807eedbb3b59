package queue

import (
	"context"
	"testing"

	"github.com/estafette/estafette-ci-buildstate/pkg/api"
	"github.com/stretchr/testify/assert"
)

func TestPublishBuildEvent(t *testing.T) {

	t.Run("IsNoOpWhenQueueIsDisabled", func(t *testing.T) {

		config := &api.QueueConfig{}
		config.SetDefaults()
		client := NewClient(config)
		ctx := context.Background()
		assert.Nil(t, client.Connect(ctx))
		defer client.Close(ctx)

		// act
		err := client.PublishBuildEvent(ctx, BuildEvent{Operation: "insert", ID: "b-1"})

		assert.Nil(t, err)
	})
}
