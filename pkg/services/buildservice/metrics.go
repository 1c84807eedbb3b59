package buildservice

import (
	"context"
	"time"

	"github.com/estafette/estafette-ci-buildstate/pkg/api"
	"github.com/estafette/estafette-ci-buildstate/pkg/build"
	"github.com/go-kit/kit/metrics"
)

// NewMetricsService returns a new instance of a metrics Service.
func NewMetricsService(s Service, requestCount metrics.Counter, requestLatency metrics.Histogram) Service {
	return &metricsService{s, requestCount, requestLatency}
}

type metricsService struct {
	Service        Service
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
}

func (s *metricsService) Create(ctx context.Context, params build.CreateParams) (aggregate *build.Aggregate, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(s.requestCount, s.requestLatency, "Create", begin) }(time.Now())

	return s.Service.Create(ctx, params)
}

func (s *metricsService) Get(ctx context.Context, id string) (aggregate *build.Aggregate, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(s.requestCount, s.requestLatency, "Get", begin) }(time.Now())

	return s.Service.Get(ctx, id)
}

func (s *metricsService) Load(ctx context.Context, id string) (snapshot build.Build, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(s.requestCount, s.requestLatency, "Load", begin) }(time.Now())

	return s.Service.Load(ctx, id)
}

func (s *metricsService) AssignNode(ctx context.Context, id string, node map[string]interface{}) (snapshot build.Build, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(s.requestCount, s.requestLatency, "AssignNode", begin) }(time.Now())

	return s.Service.AssignNode(ctx, id, node)
}

func (s *metricsService) RecordActionResult(ctx context.Context, id string, result build.ActionResult) (snapshot build.Build, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(s.requestCount, s.requestLatency, "RecordActionResult", begin) }(time.Now())

	return s.Service.RecordActionResult(ctx, id, result)
}

func (s *metricsService) RunAction(ctx context.Context, id string, action build.Action) (result build.ActionResult, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(s.requestCount, s.requestLatency, "RunAction", begin) }(time.Now())

	return s.Service.RunAction(ctx, id, action)
}

func (s *metricsService) Finish(ctx context.Context, id string, at time.Time) (snapshot build.Build, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(s.requestCount, s.requestLatency, "Finish", begin) }(time.Now())

	return s.Service.Finish(ctx, id, at)
}

func (s *metricsService) Forget(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(s.requestCount, s.requestLatency, "Forget", begin) }(time.Now())

	return s.Service.Forget(ctx, id)
}

func (s *metricsService) FlushAll(ctx context.Context) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(s.requestCount, s.requestLatency, "FlushAll", begin) }(time.Now())

	return s.Service.FlushAll(ctx)
}
