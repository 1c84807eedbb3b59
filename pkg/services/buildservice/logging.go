package buildservice

import (
	"context"
	"time"

	"github.com/estafette/estafette-ci-buildstate/pkg/api"
	"github.com/estafette/estafette-ci-buildstate/pkg/build"
)

// NewLoggingService returns a new instance of a logging Service.
func NewLoggingService(s Service) Service {
	return &loggingService{s, "buildservice"}
}

type loggingService struct {
	Service Service
	prefix  string
}

func (s *loggingService) Create(ctx context.Context, params build.CreateParams) (aggregate *build.Aggregate, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "Create", err) }()

	return s.Service.Create(ctx, params)
}

func (s *loggingService) Get(ctx context.Context, id string) (aggregate *build.Aggregate, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "Get", err, ErrBuildNotFound) }()

	return s.Service.Get(ctx, id)
}

func (s *loggingService) Load(ctx context.Context, id string) (snapshot build.Build, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "Load", err, ErrBuildNotFound) }()

	return s.Service.Load(ctx, id)
}

func (s *loggingService) AssignNode(ctx context.Context, id string, node map[string]interface{}) (snapshot build.Build, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "AssignNode", err) }()

	return s.Service.AssignNode(ctx, id, node)
}

func (s *loggingService) RecordActionResult(ctx context.Context, id string, result build.ActionResult) (snapshot build.Build, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "RecordActionResult", err) }()

	return s.Service.RecordActionResult(ctx, id, result)
}

func (s *loggingService) RunAction(ctx context.Context, id string, action build.Action) (result build.ActionResult, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "RunAction", err) }()

	return s.Service.RunAction(ctx, id, action)
}

func (s *loggingService) Finish(ctx context.Context, id string, at time.Time) (snapshot build.Build, err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "Finish", err) }()

	return s.Service.Finish(ctx, id, at)
}

func (s *loggingService) Forget(ctx context.Context, id string) (err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "Forget", err) }()

	return s.Service.Forget(ctx, id)
}

func (s *loggingService) FlushAll(ctx context.Context) (err error) {
	defer func() { api.HandleLogError(s.prefix, "Service", "FlushAll", err) }()

	return s.Service.FlushAll(ctx)
}
