package database

import (
	"context"
	"errors"
	"os"
	"strconv"
	"sync"
	"testing"

	"github.com/estafette/estafette-ci-buildstate/pkg/api"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFindOneDocumentQuery(t *testing.T) {

	t.Run("MatchesIDKeyOnIDColumnAndOtherKeysWithContainment", func(t *testing.T) {

		// act
		query, err := findOneDocumentQuery("builds", map[string]interface{}{"_id": "b-1", "build_num": 7})

		assert.Nil(t, err)
		sql, args, err := query.ToSql()
		assert.Nil(t, err)
		assert.Equal(t, "SELECT a.id, a.document FROM documents a WHERE a.collection = $1 AND a.id = $2 AND a.document @> $3::JSONB LIMIT 1", sql)
		assert.Equal(t, []interface{}{"builds", "b-1", `{"build_num":7}`}, args)
	})

	t.Run("ReturnsErrorForEmptyCollection", func(t *testing.T) {

		// act
		_, err := findOneDocumentQuery("", map[string]interface{}{"_id": "b-1"})

		assert.NotNil(t, err)
	})
}

func TestInsertDocumentQuery(t *testing.T) {

	t.Run("StoresDocumentAsJSON", func(t *testing.T) {

		// act
		query, err := insertDocumentQuery("builds", "b-1", map[string]interface{}{"vcs_url": "https://example.com/acme/widget"})

		assert.Nil(t, err)
		sql, args, err := query.ToSql()
		assert.Nil(t, err)
		assert.Equal(t, "INSERT INTO documents (collection,id,document) VALUES ($1,$2,$3)", sql)
		assert.Equal(t, []interface{}{"builds", "b-1", `{"vcs_url":"https://example.com/acme/widget"}`}, args)
	})

	t.Run("ReturnsErrorForEmptyID", func(t *testing.T) {

		// act
		_, err := insertDocumentQuery("builds", "", map[string]interface{}{})

		assert.NotNil(t, err)
	})
}

func TestUnmarshalDocument(t *testing.T) {

	t.Run("KeepsWholeNumbersIntegers", func(t *testing.T) {

		// act
		document, err := unmarshalDocument([]byte(`{"build_num":7,"ratio":0.5,"node":{"port":22},"list":[1,2.5]}`))

		assert.Nil(t, err)
		assert.Equal(t, int64(7), document["build_num"])
		assert.Equal(t, 0.5, document["ratio"])
		assert.Equal(t, int64(22), document["node"].(map[string]interface{})["port"])
		assert.Equal(t, []interface{}{int64(1), 2.5}, document["list"])
	})
}

func TestIntegrationGetNextBuildNumber(t *testing.T) {
	t.Run("ReturnsIncreasingNumbersForProject", func(t *testing.T) {

		if testing.Short() {
			t.Skip("skipping test in short mode.")
		}

		ctx := context.Background()
		databaseClient := getDatabaseClient(ctx, t)
		projectID := uuid.New().String()

		// act
		buildNum1, err1 := databaseClient.GetNextBuildNumber(ctx, projectID)
		buildNum2, err2 := databaseClient.GetNextBuildNumber(ctx, projectID)

		assert.Nil(t, err1)
		assert.Nil(t, err2)
		assert.Equal(t, 1, buildNum1)
		assert.Equal(t, 2, buildNum2)
	})

	t.Run("ReturnsUniqueNumbersForConcurrentCallers", func(t *testing.T) {

		if testing.Short() {
			t.Skip("skipping test in short mode.")
		}

		ctx := context.Background()
		databaseClient := getDatabaseClient(ctx, t)
		projectID := uuid.New().String()

		// act
		var mu sync.Mutex
		seen := map[int]bool{}
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				buildNum, err := databaseClient.GetNextBuildNumber(ctx, projectID)
				assert.Nil(t, err)
				mu.Lock()
				seen[buildNum] = true
				mu.Unlock()
			}()
		}
		wg.Wait()

		assert.Equal(t, 10, len(seen))
	})
}

func TestIntegrationGetProjectByVCSURL(t *testing.T) {
	t.Run("ReturnsInsertedProject", func(t *testing.T) {

		if testing.Short() {
			t.Skip("skipping test in short mode.")
		}

		ctx := context.Background()
		databaseClient := getDatabaseClient(ctx, t)
		vcsURL := "https://example.com/acme/" + uuid.New().String()
		insertedProject, err := databaseClient.InsertProject(ctx, Project{Name: "widget", VCSURL: vcsURL})
		assert.Nil(t, err)

		// act
		project, err := databaseClient.GetProjectByVCSURL(ctx, vcsURL)

		assert.Nil(t, err)
		assert.Equal(t, insertedProject.ID, project.ID)
		assert.Equal(t, "widget", project.Name)
	})

	t.Run("ReturnsErrProjectNotFoundForUnknownURL", func(t *testing.T) {

		if testing.Short() {
			t.Skip("skipping test in short mode.")
		}

		ctx := context.Background()
		databaseClient := getDatabaseClient(ctx, t)

		// act
		_, err := databaseClient.GetProjectByVCSURL(ctx, "https://example.com/acme/"+uuid.New().String())

		assert.True(t, errors.Is(err, ErrProjectNotFound))
	})
}

func TestIntegrationDocuments(t *testing.T) {
	t.Run("FindOneReturnsInsertedDocument", func(t *testing.T) {

		if testing.Short() {
			t.Skip("skipping test in short mode.")
		}

		ctx := context.Background()
		databaseClient := getDatabaseClient(ctx, t)
		id := uuid.New().String()
		err := databaseClient.InsertDocument(ctx, "builds", id, map[string]interface{}{"build_num": 7, "vcs_url": "https://example.com/acme/widget"})
		assert.Nil(t, err)

		// act
		document, err := databaseClient.FindOneDocument(ctx, "builds", map[string]interface{}{"_id": id})

		assert.Nil(t, err)
		assert.Equal(t, id, document["_id"])
		assert.Equal(t, int64(7), document["build_num"])
		assert.Equal(t, "https://example.com/acme/widget", document["vcs_url"])
	})

	t.Run("InsertReturnsErrDocumentExistsForDuplicateID", func(t *testing.T) {

		if testing.Short() {
			t.Skip("skipping test in short mode.")
		}

		ctx := context.Background()
		databaseClient := getDatabaseClient(ctx, t)
		id := uuid.New().String()
		err := databaseClient.InsertDocument(ctx, "builds", id, map[string]interface{}{"build_num": 1})
		assert.Nil(t, err)

		// act
		err = databaseClient.InsertDocument(ctx, "builds", id, map[string]interface{}{"build_num": 1})

		assert.True(t, errors.Is(err, ErrDocumentExists))
	})

	t.Run("UpsertReplacesDocument", func(t *testing.T) {

		if testing.Short() {
			t.Skip("skipping test in short mode.")
		}

		ctx := context.Background()
		databaseClient := getDatabaseClient(ctx, t)
		id := uuid.New().String()
		err := databaseClient.UpsertDocument(ctx, "builds", id, map[string]interface{}{"continue": true})
		assert.Nil(t, err)

		// act
		err = databaseClient.UpsertDocument(ctx, "builds", id, map[string]interface{}{"continue": false})

		assert.Nil(t, err)
		document, err := databaseClient.FindOneDocument(ctx, "builds", map[string]interface{}{"_id": id, "continue": false})
		assert.Nil(t, err)
		assert.Equal(t, false, document["continue"])
	})

	t.Run("FindOneReturnsErrDocumentNotFoundForUnknownID", func(t *testing.T) {

		if testing.Short() {
			t.Skip("skipping test in short mode.")
		}

		ctx := context.Background()
		databaseClient := getDatabaseClient(ctx, t)

		// act
		_, err := databaseClient.FindOneDocument(ctx, "builds", map[string]interface{}{"_id": uuid.New().String()})

		assert.True(t, errors.Is(err, ErrDocumentNotFound))
	})
}

var (
	dbTestClientMutex = &sync.Mutex{}
	dbTestClient      Client
)

func getDatabaseClient(ctx context.Context, t *testing.T) Client {

	dbTestClientMutex.Lock()
	defer dbTestClientMutex.Unlock()

	if dbTestClient != nil {
		return dbTestClient
	}

	databaseName := "defaultdb"
	if os.Getenv("DB_DATABASE") != "" {
		databaseName = os.Getenv("DB_DATABASE")
	}
	host := "estafette-ci-db-public"
	if os.Getenv("DB_HOST") != "" {
		host = os.Getenv("DB_HOST")
	}
	insecure := true
	if os.Getenv("DB_INSECURE") != "" {
		dbInsecure, err := strconv.ParseBool(os.Getenv("DB_INSECURE"))
		if err == nil {
			insecure = dbInsecure
		}
	}
	port := 26257
	if os.Getenv("DB_PORT") != "" {
		dbPort, err := strconv.Atoi(os.Getenv("DB_PORT"))
		if err == nil {
			port = dbPort
		}
	}
	user := "root"
	if os.Getenv("DB_USER") != "" {
		user = os.Getenv("DB_USER")
	}
	password := ""
	if os.Getenv("DB_PASSWORD") != "" {
		password = os.Getenv("DB_PASSWORD")
	}

	apiConfig := &api.APIConfig{
		Database: &api.DatabaseConfig{
			DatabaseName: databaseName,
			Host:         host,
			Insecure:     insecure,
			Port:         port,
			User:         user,
			Password:     password,
		},
	}

	apiConfig.SetDefaults()

	dbTestClient = NewClient(apiConfig)
	err := dbTestClient.Connect(ctx)
	assert.Nil(t, err)

	err = dbTestClient.AwaitDatabaseReadiness(ctx)
	assert.Nil(t, err)

	err = dbTestClient.EnsureSchema(ctx)
	assert.Nil(t, err)

	return dbTestClient
}
