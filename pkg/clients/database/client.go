package database

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/estafette/estafette-ci-buildstate/pkg/api"
	"github.com/estafette/estafette-ci-buildstate/pkg/clients/database/queries"
	foundation "github.com/estafette/estafette-foundation"
	"github.com/google/uuid"
	"github.com/lib/pq" // use postgres client library to connect to cockroachdb
	"github.com/rs/zerolog/log"
)

var (
	// ErrProjectNotFound is returned if a query for a project returns no results
	ErrProjectNotFound = errors.New("the project can't be found")

	// ErrDocumentNotFound is returned if a query for a document returns no results
	ErrDocumentNotFound = errors.New("the document can't be found")

	// ErrDocumentExists is returned when inserting a document with an id that's already taken
	ErrDocumentExists = errors.New("a document with this id already exists")
)

// IDKey is the document key that maps to the id column of a document
const IDKey = "_id"

const uniqueViolation = "23505"

// Client is the interface for communicating with the database
//
//go:generate mockgen -package=database -destination ./mock.go -source=client.go
type Client interface {
	Connect(ctx context.Context) (err error)
	ConnectWithDriverAndSource(ctx context.Context, driverName, dataSourceName string) (err error)
	AwaitDatabaseReadiness(ctx context.Context) (err error)
	EnsureSchema(ctx context.Context) (err error)

	InsertProject(ctx context.Context, project Project) (p *Project, err error)
	GetProjectByVCSURL(ctx context.Context, vcsURL string) (project *Project, err error)
	GetNextBuildNumber(ctx context.Context, projectID string) (buildNum int, err error)

	InsertDocument(ctx context.Context, collection, id string, document map[string]interface{}) (err error)
	UpsertDocument(ctx context.Context, collection, id string, document map[string]interface{}) (err error)
	FindOneDocument(ctx context.Context, collection string, filter map[string]interface{}) (document map[string]interface{}, err error)
}

// NewClient returns a new database.Client
func NewClient(config *api.APIConfig) Client {
	return &client{
		databaseDriver: "postgres",
		config:         config,
	}
}

type client struct {
	databaseDriver     string
	config             *api.APIConfig
	databaseConnection *sql.DB
}

// Connect sets up a connection with CockroachDB
func (c *client) Connect(ctx context.Context) (err error) {

	log.Debug().Msgf("Connecting to database %v on host %v...", c.config.Database.DatabaseName, c.config.Database.Host)

	userAndPassword := c.config.Database.User
	if c.config.Database.Password != "" {
		userAndPassword += ":" + c.config.Database.Password
	}

	dataSourceName := ""
	if c.config.Database.Insecure {
		dataSourceName = fmt.Sprintf("postgresql://%v@%v:%v/%v?sslmode=disable", userAndPassword, c.config.Database.Host, c.config.Database.Port, c.config.Database.DatabaseName)
	} else {
		dataSourceName = fmt.Sprintf("postgresql://%v@%v:%v/%v?sslmode=%v&sslrootcert=%v&sslcert=%v&sslkey=%v", userAndPassword, c.config.Database.Host, c.config.Database.Port, c.config.Database.DatabaseName, c.config.Database.SslMode, c.config.Database.CertificateAuthorityPath, c.config.Database.CertificatePath, c.config.Database.CertificateKeyPath)
	}

	return c.ConnectWithDriverAndSource(ctx, c.databaseDriver, dataSourceName)
}

// ConnectWithDriverAndSource set up a connection with any database
func (c *client) ConnectWithDriverAndSource(_ context.Context, driverName, dataSourceName string) (err error) {

	log.Debug().Msgf("Opening database connection with driver %v...", driverName)
	c.databaseConnection, err = sql.Open(driverName, dataSourceName)
	if err != nil {
		return
	}

	if c.config.Database.MaxOpenConns > 0 {
		log.Debug().Msgf("Setting max open connections to database to %v...", c.config.Database.MaxOpenConns)
		c.databaseConnection.SetMaxOpenConns(c.config.Database.MaxOpenConns)
	}

	if c.config.Database.MaxIdleConns > 0 {
		log.Debug().Msgf("Setting max idle connections to database to %v...", c.config.Database.MaxIdleConns)
		c.databaseConnection.SetMaxIdleConns(c.config.Database.MaxIdleConns)
	}

	if c.config.Database.ConnMaxLifetimeMinutes > 0 {
		log.Debug().Msgf("Setting max lifetime for connections to database to %v minutes...", c.config.Database.ConnMaxLifetimeMinutes)
		c.databaseConnection.SetConnMaxLifetime(time.Duration(c.config.Database.ConnMaxLifetimeMinutes) * time.Minute)
	}

	return
}

func (c *client) AwaitDatabaseReadiness(ctx context.Context) (err error) {
	return foundation.Retry(func() error {
		log.Debug().Msg("Checking if database is ready...")
		return c.databaseConnection.PingContext(ctx)
	}, foundation.Attempts(12), foundation.DelayMillisecond(5000), foundation.Fixed())
}

// EnsureSchema creates the tables if they don't exist yet
func (c *client) EnsureSchema(ctx context.Context) (err error) {
	log.Debug().Msg("Ensuring database schema...")

	_, err = c.databaseConnection.ExecContext(ctx, queries.Schema)
	return
}

func (c *client) InsertProject(ctx context.Context, project Project) (p *Project, err error) {
	if project.VCSURL == "" {
		return nil, fmt.Errorf("InsertProject argument project.VCSURL is empty")
	}
	if project.ID == "" {
		project.ID = uuid.New().String()
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.
		Insert("projects").
		Columns("id", "name", "vcs_url").
		Values(project.ID, project.Name, project.VCSURL).
		Suffix("RETURNING inserted_at")

	var insertedAt time.Time
	if err = query.RunWith(c.databaseConnection).QueryRowContext(ctx).Scan(&insertedAt); err != nil {
		return nil, err
	}
	project.InsertedAt = &insertedAt

	return &project, nil
}

func (c *client) GetProjectByVCSURL(ctx context.Context, vcsURL string) (project *Project, err error) {
	if vcsURL == "" {
		return nil, fmt.Errorf("GetProjectByVCSURL argument vcsURL is empty")
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.
		Select("a.id, a.name, a.vcs_url, a.inserted_at").
		From("projects a").
		Where(sq.Eq{"a.vcs_url": vcsURL}).
		Limit(uint64(1))

	row := query.RunWith(c.databaseConnection).QueryRowContext(ctx)

	project = &Project{}
	var insertedAt *time.Time
	if err = row.Scan(&project.ID, &project.Name, &project.VCSURL, &insertedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	project.InsertedAt = insertedAt

	return project, nil
}

// GetNextBuildNumber returns the next build number for a project
func (c *client) GetNextBuildNumber(ctx context.Context, projectID string) (buildNum int, err error) {
	if projectID == "" {
		return 0, fmt.Errorf("GetNextBuildNumber argument projectID is empty")
	}

	// insert or increment if record for project already exists
	_, err = c.databaseConnection.ExecContext(ctx, queries.NextBuildNumber, projectID)
	if err != nil {
		return
	}

	// fetching auto_increment value, because RETURNING is not supported with UPSERT / INSERT ON CONFLICT (see issue https://github.com/cockroachdb/cockroach/issues/6637)
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.
		Select("a.auto_increment").
		From("build_numbers a").
		Where(sq.Eq{"a.project_id": projectID})

	err = query.RunWith(c.databaseConnection).QueryRowContext(ctx).Scan(&buildNum)

	return
}

func (c *client) InsertDocument(ctx context.Context, collection, id string, document map[string]interface{}) (err error) {
	query, err := insertDocumentQuery(collection, id, document)
	if err != nil {
		return
	}

	_, err = query.RunWith(c.databaseConnection).ExecContext(ctx)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %v in %v", ErrDocumentExists, id, collection)
		}
		return
	}

	return nil
}

func (c *client) UpsertDocument(ctx context.Context, collection, id string, document map[string]interface{}) (err error) {
	query, err := insertDocumentQuery(collection, id, document)
	if err != nil {
		return
	}

	query = query.Suffix("ON CONFLICT (collection, id) DO UPDATE SET document = excluded.document, updated_at = now()")

	_, err = query.RunWith(c.databaseConnection).ExecContext(ctx)

	return
}

func (c *client) FindOneDocument(ctx context.Context, collection string, filter map[string]interface{}) (document map[string]interface{}, err error) {
	query, err := findOneDocumentQuery(collection, filter)
	if err != nil {
		return
	}

	var id string
	var documentData []uint8

	if err = query.RunWith(c.databaseConnection).QueryRowContext(ctx).Scan(&id, &documentData); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	document, err = unmarshalDocument(documentData)
	if err != nil {
		return nil, err
	}
	document[IDKey] = id

	return document, nil
}

func insertDocumentQuery(collection, id string, document map[string]interface{}) (query sq.InsertBuilder, err error) {
	if collection == "" || id == "" {
		return query, fmt.Errorf("collection and id are required to store a document")
	}

	documentBytes, err := json.Marshal(document)
	if err != nil {
		return
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query = psql.
		Insert("documents").
		Columns("collection", "id", "document").
		Values(collection, id, string(documentBytes))

	return query, nil
}

// findOneDocumentQuery matches the filter's top level keys with jsonb containment; the id key matches the id column
func findOneDocumentQuery(collection string, filter map[string]interface{}) (query sq.SelectBuilder, err error) {
	if collection == "" {
		return query, fmt.Errorf("FindOneDocument argument collection is empty")
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query = psql.
		Select("a.id, a.document").
		From("documents a").
		Where(sq.Eq{"a.collection": collection})

	keys := make([]string, 0, len(filter))
	for key := range filter {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if key == IDKey {
			query = query.Where(sq.Eq{"a.id": fmt.Sprint(filter[key])})
			continue
		}
		containment, err := json.Marshal(map[string]interface{}{key: filter[key]})
		if err != nil {
			return query, err
		}
		query = query.Where("a.document @> ?::JSONB", string(containment))
	}

	return query.Limit(uint64(1)), nil
}

// unmarshalDocument keeps whole numbers integers instead of turning them into float64
func unmarshalDocument(data []byte) (document map[string]interface{}, err error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	document = map[string]interface{}{}
	if err = decoder.Decode(&document); err != nil {
		return nil, err
	}

	for key, value := range document {
		document[key] = normalizeNumbers(value)
	}

	return document, nil
}

func normalizeNumbers(value interface{}) interface{} {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case map[string]interface{}:
		for key, item := range v {
			v[key] = normalizeNumbers(item)
		}
		return v
	case []interface{}:
		for i, item := range v {
			v[i] = normalizeNumbers(item)
		}
		return v
	}
	return value
}
