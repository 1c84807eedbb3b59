package persistence

import (
	"context"

	"github.com/estafette/estafette-ci-buildstate/pkg/api"
	"github.com/estafette/estafette-ci-buildstate/pkg/build"
	"github.com/opentracing/opentracing-go"
)

// NewTracingSyncer returns a new instance of a tracing build.Syncer.
func NewTracingSyncer(s build.Syncer) build.Syncer {
	return &tracingSyncer{s, "persistence"}
}

type tracingSyncer struct {
	Syncer build.Syncer
	prefix string
}

func (s *tracingSyncer) Insert(ctx context.Context, b build.Build) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "Insert"))
	defer func() { api.FinishSpanWithError(span, err) }()
	span.SetTag("build-id", b.ID())

	return s.Syncer.Insert(ctx, b)
}

func (s *tracingSyncer) Update(ctx context.Context, b build.Build) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "Update"))
	defer func() { api.FinishSpanWithError(span, err) }()
	span.SetTag("build-id", b.ID())

	return s.Syncer.Update(ctx, b)
}
