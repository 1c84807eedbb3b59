package persistence

import (
	"context"

	"github.com/estafette/estafette-ci-buildstate/pkg/api"
	"github.com/estafette/estafette-ci-buildstate/pkg/build"
)

// NewLoggingSyncer returns a new instance of a logging build.Syncer.
func NewLoggingSyncer(s build.Syncer) build.Syncer {
	return &loggingSyncer{s, "persistence"}
}

type loggingSyncer struct {
	Syncer build.Syncer
	prefix string
}

func (s *loggingSyncer) Insert(ctx context.Context, b build.Build) (err error) {
	defer func() { api.HandleLogError(s.prefix, "Syncer", "Insert", err) }()

	return s.Syncer.Insert(ctx, b)
}

func (s *loggingSyncer) Update(ctx context.Context, b build.Build) (err error) {
	defer func() { api.HandleLogError(s.prefix, "Syncer", "Update", err) }()

	return s.Syncer.Update(ctx, b)
}
