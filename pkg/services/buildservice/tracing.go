package buildservice

import (
	"context"
	"time"

	"github.com/estafette/estafette-ci-buildstate/pkg/api"
	"github.com/estafette/estafette-ci-buildstate/pkg/build"
	"github.com/opentracing/opentracing-go"
)

// NewTracingService returns a new instance of a tracing Service.
func NewTracingService(s Service) Service {
	return &tracingService{s, "buildservice"}
}

type tracingService struct {
	Service Service
	prefix  string
}

func (s *tracingService) Create(ctx context.Context, params build.CreateParams) (aggregate *build.Aggregate, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "Create"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.Create(ctx, params)
}

func (s *tracingService) Get(ctx context.Context, id string) (aggregate *build.Aggregate, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "Get"))
	defer func() { api.FinishSpanWithError(span, err) }()
	span.SetTag("build-id", id)

	return s.Service.Get(ctx, id)
}

func (s *tracingService) Load(ctx context.Context, id string) (snapshot build.Build, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "Load"))
	defer func() { api.FinishSpanWithError(span, err) }()
	span.SetTag("build-id", id)

	return s.Service.Load(ctx, id)
}

func (s *tracingService) AssignNode(ctx context.Context, id string, node map[string]interface{}) (snapshot build.Build, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "AssignNode"))
	defer func() { api.FinishSpanWithError(span, err) }()
	span.SetTag("build-id", id)

	return s.Service.AssignNode(ctx, id, node)
}

func (s *tracingService) RecordActionResult(ctx context.Context, id string, result build.ActionResult) (snapshot build.Build, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "RecordActionResult"))
	defer func() { api.FinishSpanWithError(span, err) }()
	span.SetTag("build-id", id)

	return s.Service.RecordActionResult(ctx, id, result)
}

func (s *tracingService) RunAction(ctx context.Context, id string, action build.Action) (result build.ActionResult, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "RunAction"))
	defer func() { api.FinishSpanWithError(span, err) }()
	span.SetTag("build-id", id)

	return s.Service.RunAction(ctx, id, action)
}

func (s *tracingService) Finish(ctx context.Context, id string, at time.Time) (snapshot build.Build, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "Finish"))
	defer func() { api.FinishSpanWithError(span, err) }()
	span.SetTag("build-id", id)

	return s.Service.Finish(ctx, id, at)
}

func (s *tracingService) Forget(ctx context.Context, id string) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "Forget"))
	defer func() { api.FinishSpanWithError(span, err) }()
	span.SetTag("build-id", id)

	return s.Service.Forget(ctx, id)
}

func (s *tracingService) FlushAll(ctx context.Context) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(s.prefix, "FlushAll"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return s.Service.FlushAll(ctx)
}
