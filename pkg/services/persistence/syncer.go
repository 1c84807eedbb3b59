// Package persistence mirrors committed build snapshots into the document store.
package persistence

import (
	"context"
	"time"

	"github.com/estafette/estafette-ci-buildstate/pkg/api"
	"github.com/estafette/estafette-ci-buildstate/pkg/build"
	"github.com/estafette/estafette-ci-buildstate/pkg/clients/database"
	"github.com/estafette/estafette-ci-buildstate/pkg/clients/queue"
	"github.com/rs/zerolog/log"
)

// ExcludedKeys hold process local values that are never written to the store
var ExcludedKeys = []string{build.KeyActions, build.KeyActionResults}

// NewSyncer returns a build.Syncer writing to the builds collection
func NewSyncer(config *api.APIConfig, databaseClient database.Client, queueClient queue.Client) build.Syncer {
	return &syncer{
		databaseClient: databaseClient,
		queueClient:    queueClient,
		collection:     config.Database.BuildsCollection,
	}
}

type syncer struct {
	databaseClient database.Client
	queueClient    queue.Client
	collection     string
}

func (s *syncer) Insert(ctx context.Context, b build.Build) (err error) {
	return s.write(ctx, "insert", b, s.databaseClient.InsertDocument)
}

func (s *syncer) Update(ctx context.Context, b build.Build) (err error) {
	return s.write(ctx, "update", b, s.databaseClient.UpsertDocument)
}

func (s *syncer) write(ctx context.Context, operation string, b build.Build, store func(ctx context.Context, collection, id string, document map[string]interface{}) error) error {
	id := b.ID()
	if id == "" {
		return &build.PreconditionError{Operation: operation, Reason: "build has no " + build.KeyID}
	}

	if err := store(ctx, s.collection, id, Document(b)); err != nil {
		return &build.PersistenceError{Operation: operation, ID: id, Err: err}
	}

	s.publish(ctx, operation, b)

	return nil
}

// publishing is best effort, the document is stored already
func (s *syncer) publish(ctx context.Context, operation string, b build.Build) {
	if s.queueClient == nil {
		return
	}

	buildNum, _ := b.BuildNum()
	_, finished := b.StopTime()

	err := s.queueClient.PublishBuildEvent(ctx, queue.BuildEvent{
		Operation: operation,
		ID:        b.ID(),
		ProjectID: b.ProjectID(),
		BuildNum:  buildNum,
		Continue:  b.Continue(),
		Finished:  finished,
		At:        time.Now().UTC(),
	})
	if err != nil {
		log.Warn().Err(err).Msgf("Failed publishing %v event for build %v", operation, b.ID())
	}
}

// Document returns the part of b that's written to the store
func Document(b build.Build) map[string]interface{} {
	document := map[string]interface{}(b.Clone())
	for _, key := range ExcludedKeys {
		delete(document, key)
	}
	return document
}
