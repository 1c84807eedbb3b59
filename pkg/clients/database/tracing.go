package database

import (
	"context"

	"github.com/estafette/estafette-ci-buildstate/pkg/api"
	"github.com/opentracing/opentracing-go"
)

// NewTracingClient returns a new instance of a tracing Client.
func NewTracingClient(c Client) Client {
	return &tracingClient{c, "database"}
}

type tracingClient struct {
	Client Client
	prefix string
}

func (c *tracingClient) Connect(ctx context.Context) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "Connect"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.Connect(ctx)
}

func (c *tracingClient) ConnectWithDriverAndSource(ctx context.Context, driverName, dataSourceName string) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "ConnectWithDriverAndSource"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.ConnectWithDriverAndSource(ctx, driverName, dataSourceName)
}

func (c *tracingClient) AwaitDatabaseReadiness(ctx context.Context) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "AwaitDatabaseReadiness"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.AwaitDatabaseReadiness(ctx)
}

func (c *tracingClient) EnsureSchema(ctx context.Context) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "EnsureSchema"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.EnsureSchema(ctx)
}

func (c *tracingClient) InsertProject(ctx context.Context, project Project) (p *Project, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "InsertProject"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.InsertProject(ctx, project)
}

func (c *tracingClient) GetProjectByVCSURL(ctx context.Context, vcsURL string) (project *Project, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetProjectByVCSURL"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetProjectByVCSURL(ctx, vcsURL)
}

func (c *tracingClient) GetNextBuildNumber(ctx context.Context, projectID string) (buildNum int, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "GetNextBuildNumber"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.GetNextBuildNumber(ctx, projectID)
}

func (c *tracingClient) InsertDocument(ctx context.Context, collection, id string, document map[string]interface{}) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "InsertDocument"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.InsertDocument(ctx, collection, id, document)
}

func (c *tracingClient) UpsertDocument(ctx context.Context, collection, id string, document map[string]interface{}) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "UpsertDocument"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.UpsertDocument(ctx, collection, id, document)
}

func (c *tracingClient) FindOneDocument(ctx context.Context, collection string, filter map[string]interface{}) (document map[string]interface{}, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "FindOneDocument"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.FindOneDocument(ctx, collection, filter)
}
