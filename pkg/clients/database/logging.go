package database

import (
	"context"

	"github.com/estafette/estafette-ci-buildstate/pkg/api"
)

// NewLoggingClient returns a new instance of a logging Client.
func NewLoggingClient(c Client) Client {
	return &loggingClient{c, "database"}
}

type loggingClient struct {
	Client Client
	prefix string
}

func (c *loggingClient) Connect(ctx context.Context) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "Connect", err) }()

	return c.Client.Connect(ctx)
}

func (c *loggingClient) ConnectWithDriverAndSource(ctx context.Context, driverName, dataSourceName string) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "ConnectWithDriverAndSource", err) }()

	return c.Client.ConnectWithDriverAndSource(ctx, driverName, dataSourceName)
}

func (c *loggingClient) AwaitDatabaseReadiness(ctx context.Context) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "AwaitDatabaseReadiness", err) }()

	return c.Client.AwaitDatabaseReadiness(ctx)
}

func (c *loggingClient) EnsureSchema(ctx context.Context) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "EnsureSchema", err) }()

	return c.Client.EnsureSchema(ctx)
}

func (c *loggingClient) InsertProject(ctx context.Context, project Project) (p *Project, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "InsertProject", err) }()

	return c.Client.InsertProject(ctx, project)
}

func (c *loggingClient) GetProjectByVCSURL(ctx context.Context, vcsURL string) (project *Project, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetProjectByVCSURL", err, ErrProjectNotFound) }()

	return c.Client.GetProjectByVCSURL(ctx, vcsURL)
}

func (c *loggingClient) GetNextBuildNumber(ctx context.Context, projectID string) (buildNum int, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "GetNextBuildNumber", err) }()

	return c.Client.GetNextBuildNumber(ctx, projectID)
}

func (c *loggingClient) InsertDocument(ctx context.Context, collection, id string, document map[string]interface{}) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "InsertDocument", err, ErrDocumentExists) }()

	return c.Client.InsertDocument(ctx, collection, id, document)
}

func (c *loggingClient) UpsertDocument(ctx context.Context, collection, id string, document map[string]interface{}) (err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "UpsertDocument", err) }()

	return c.Client.UpsertDocument(ctx, collection, id, document)
}

func (c *loggingClient) FindOneDocument(ctx context.Context, collection string, filter map[string]interface{}) (document map[string]interface{}, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "FindOneDocument", err, ErrDocumentNotFound) }()

	return c.Client.FindOneDocument(ctx, collection, filter)
}
