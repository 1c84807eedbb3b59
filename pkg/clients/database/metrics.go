package database

import (
	"context"
	"time"

	"github.com/estafette/estafette-ci-buildstate/pkg/api"
	"github.com/go-kit/kit/metrics"
)

// NewMetricsClient returns a new instance of a metrics Client.
func NewMetricsClient(c Client, requestCount metrics.Counter, requestLatency metrics.Histogram) Client {
	return &metricsClient{c, requestCount, requestLatency}
}

type metricsClient struct {
	Client         Client
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
}

func (c *metricsClient) Connect(ctx context.Context) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "Connect", begin) }(time.Now())

	return c.Client.Connect(ctx)
}

func (c *metricsClient) ConnectWithDriverAndSource(ctx context.Context, driverName, dataSourceName string) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "ConnectWithDriverAndSource", begin) }(time.Now())

	return c.Client.ConnectWithDriverAndSource(ctx, driverName, dataSourceName)
}

func (c *metricsClient) AwaitDatabaseReadiness(ctx context.Context) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "AwaitDatabaseReadiness", begin) }(time.Now())

	return c.Client.AwaitDatabaseReadiness(ctx)
}

func (c *metricsClient) EnsureSchema(ctx context.Context) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "EnsureSchema", begin) }(time.Now())

	return c.Client.EnsureSchema(ctx)
}

func (c *metricsClient) InsertProject(ctx context.Context, project Project) (p *Project, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "InsertProject", begin) }(time.Now())

	return c.Client.InsertProject(ctx, project)
}

func (c *metricsClient) GetProjectByVCSURL(ctx context.Context, vcsURL string) (project *Project, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "GetProjectByVCSURL", begin) }(time.Now())

	return c.Client.GetProjectByVCSURL(ctx, vcsURL)
}

func (c *metricsClient) GetNextBuildNumber(ctx context.Context, projectID string) (buildNum int, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "GetNextBuildNumber", begin) }(time.Now())

	return c.Client.GetNextBuildNumber(ctx, projectID)
}

func (c *metricsClient) InsertDocument(ctx context.Context, collection, id string, document map[string]interface{}) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "InsertDocument", begin) }(time.Now())

	return c.Client.InsertDocument(ctx, collection, id, document)
}

func (c *metricsClient) UpsertDocument(ctx context.Context, collection, id string, document map[string]interface{}) (err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "UpsertDocument", begin) }(time.Now())

	return c.Client.UpsertDocument(ctx, collection, id, document)
}

func (c *metricsClient) FindOneDocument(ctx context.Context, collection string, filter map[string]interface{}) (document map[string]interface{}, err error) {
	defer func(begin time.Time) { api.UpdateMetrics(c.requestCount, c.requestLatency, "FindOneDocument", begin) }(time.Now())

	return c.Client.FindOneDocument(ctx, collection, filter)
}
