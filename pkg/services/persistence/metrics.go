package persistence

import (
	"context"
	"time"

	"github.com/estafette/estafette-ci-buildstate/pkg/api"
	"github.com/estafette/estafette-ci-buildstate/pkg/build"
	"github.com/go-kit/kit/metrics"
)

// NewMetricsSyncer returns a new instance of a metrics build.Syncer.
func NewMetricsSyncer(s build.Syncer, requestCount metrics.Counter, requestLatency metrics.Histogram) build.Syncer {
	return &metricsSyncer{s, requestCount, requestLatency}
}

type metricsSyncer struct {
	Syncer         build.Syncer
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
}

func (s *metricsSyncer) Insert(ctx context.Context, b build.Build) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(s.requestCount, s.requestLatency, "Insert", begin) }(time.Now())

	return s.Syncer.Insert(ctx, b)
}

func (s *metricsSyncer) Update(ctx context.Context, b build.Build) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(s.requestCount, s.requestLatency, "Update", begin) }(time.Now())

	return s.Syncer.Update(ctx, b)
}
