package buildservice

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/estafette/estafette-ci-buildstate/pkg/api"
	"github.com/estafette/estafette-ci-buildstate/pkg/build"
	"github.com/estafette/estafette-ci-buildstate/pkg/buildlog"
	"github.com/estafette/estafette-ci-buildstate/pkg/clients/database"
	"github.com/estafette/estafette-ci-buildstate/pkg/clients/executor"
	gomock "github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func getConfig() *api.APIConfig {
	config := &api.APIConfig{}
	config.SetDefaults()
	return config
}

func expectProject(databaseClient *database.MockClient, buildNum int) {
	databaseClient.EXPECT().GetProjectByVCSURL(gomock.Any(), "https://example.com/acme/widget").Return(&database.Project{ID: "P1", Name: "widget", VCSURL: "https://example.com/acme/widget"}, nil)
	databaseClient.EXPECT().GetNextBuildNumber(gomock.Any(), "P1").Return(buildNum, nil)
}

func createBuild(t *testing.T, s Service, params build.CreateParams) *build.Aggregate {
	if params.VCSURL == "" {
		params.VCSURL = "https://example.com/acme/widget"
	}
	aggregate, err := s.Create(context.Background(), params)
	if err != nil {
		t.Fatal(err)
	}
	return aggregate
}

func TestCreate(t *testing.T) {

	t.Run("RegistersBuildAndAssignsGroup", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		databaseClient := database.NewMockClient(ctrl)
		syncer := build.NewMockSyncer(ctrl)
		expectProject(databaseClient, 7)
		syncer.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(1)
		syncer.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil).Times(1)
		s := NewService(getConfig(), databaseClient, syncer, nil)

		// act
		aggregate, err := s.Create(context.Background(), build.CreateParams{VCSURL: "https://example.com/acme/widget", VCSRevision: "0123456789abcdef"})

		assert.Nil(t, err)
		assert.Equal(t, "widget-0123456", aggregate.Read()[build.KeyGroup])
		registered, err := s.Get(context.Background(), aggregate.ID())
		assert.Nil(t, err)
		assert.Same(t, aggregate, registered)
	})

	t.Run("ReturnsProjectNotFoundForUnknownRepository", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		databaseClient := database.NewMockClient(ctrl)
		databaseClient.EXPECT().GetProjectByVCSURL(gomock.Any(), gomock.Any()).Return(nil, database.ErrProjectNotFound)
		s := NewService(getConfig(), databaseClient, nil, nil)

		// act
		aggregate, err := s.Create(context.Background(), build.CreateParams{VCSURL: "https://example.com/acme/unknown"})

		assert.True(t, errors.Is(err, build.ErrProjectNotFound))
		assert.Nil(t, aggregate)
	})

	t.Run("RegistersBuildEvenIfStoreFails", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		databaseClient := database.NewMockClient(ctrl)
		syncer := build.NewMockSyncer(ctrl)
		expectProject(databaseClient, 7)
		syncer.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("store is down")).Times(1)
		s := NewService(getConfig(), databaseClient, syncer, nil)

		// act
		aggregate, err := s.Create(context.Background(), build.CreateParams{VCSURL: "https://example.com/acme/widget", VCSRevision: "abc"})

		var persistenceErr *build.PersistenceError
		assert.True(t, errors.As(err, &persistenceErr))
		_, err = s.Get(context.Background(), aggregate.ID())
		assert.Nil(t, err)
	})
}

func TestGet(t *testing.T) {

	t.Run("ReturnsErrBuildNotFoundForUnknownID", func(t *testing.T) {

		s := NewService(getConfig(), nil, nil, nil)

		// act
		_, err := s.Get(context.Background(), "unknown")

		assert.True(t, errors.Is(err, ErrBuildNotFound))
	})
}

func TestLoad(t *testing.T) {

	t.Run("ReturnsStoredDocument", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		databaseClient := database.NewMockClient(ctrl)
		databaseClient.EXPECT().FindOneDocument(gomock.Any(), "builds", map[string]interface{}{"_id": "b-1"}).Return(map[string]interface{}{"_id": "b-1", "build_num": int64(7)}, nil)
		s := NewService(getConfig(), databaseClient, nil, nil)

		// act
		snapshot, err := s.Load(context.Background(), "b-1")

		assert.Nil(t, err)
		buildNum, ok := snapshot.BuildNum()
		assert.True(t, ok)
		assert.Equal(t, int64(7), buildNum)
	})

	t.Run("ReturnsErrBuildNotFoundForMissingDocument", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		databaseClient := database.NewMockClient(ctrl)
		databaseClient.EXPECT().FindOneDocument(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, database.ErrDocumentNotFound)
		s := NewService(getConfig(), databaseClient, nil, nil)

		// act
		_, err := s.Load(context.Background(), "b-1")

		assert.True(t, errors.Is(err, ErrBuildNotFound))
	})
}

func TestAssignNode(t *testing.T) {

	t.Run("RecordsNodeOnLiveBuild", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		databaseClient := database.NewMockClient(ctrl)
		expectProject(databaseClient, 7)
		s := NewService(getConfig(), databaseClient, nil, nil)
		aggregate := createBuild(t, s, build.CreateParams{})

		// act
		snapshot, err := s.AssignNode(context.Background(), aggregate.ID(), map[string]interface{}{"public_ip_addr": "10.0.0.2"})

		assert.Nil(t, err)
		assert.Equal(t, "10.0.0.2", snapshot.Node()["public_ip_addr"])
		assert.Equal(t, "10.0.0.2", aggregate.Node()["public_ip_addr"])
	})

	t.Run("ReturnsErrBuildNotFoundForUnknownID", func(t *testing.T) {

		s := NewService(getConfig(), nil, nil, nil)

		// act
		_, err := s.AssignNode(context.Background(), "unknown", map[string]interface{}{})

		assert.True(t, errors.Is(err, ErrBuildNotFound))
	})
}

func TestRecordActionResult(t *testing.T) {

	t.Run("FlipsContinueForFailedResult", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		databaseClient := database.NewMockClient(ctrl)
		expectProject(databaseClient, 7)
		s := NewService(getConfig(), databaseClient, nil, nil)
		aggregate := createBuild(t, s, build.CreateParams{})

		// act
		snapshot, err := s.RecordActionResult(context.Background(), aggregate.ID(), build.ActionResult{Name: "test", Success: false, ExitCode: 2})

		assert.Nil(t, err)
		assert.False(t, snapshot.Continue())
		assert.Equal(t, 1, len(snapshot.ActionResults()))
	})
}

func TestFinishAndForget(t *testing.T) {

	t.Run("ForgetFailsWhileRunning", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		databaseClient := database.NewMockClient(ctrl)
		expectProject(databaseClient, 7)
		s := NewService(getConfig(), databaseClient, nil, nil)
		aggregate := createBuild(t, s, build.CreateParams{})

		// act
		err := s.Forget(context.Background(), aggregate.ID())

		var preconditionErr *build.PreconditionError
		assert.True(t, errors.As(err, &preconditionErr))
	})

	t.Run("ForgetDropsFinishedBuild", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		databaseClient := database.NewMockClient(ctrl)
		expectProject(databaseClient, 7)
		s := NewService(getConfig(), databaseClient, nil, nil)
		aggregate := createBuild(t, s, build.CreateParams{})
		snapshot, err := s.Finish(context.Background(), aggregate.ID(), time.Now().UTC())
		assert.Nil(t, err)
		assert.True(t, aggregate.IsSuccessful())
		_, stopped := snapshot.StopTime()
		assert.True(t, stopped)

		// act
		err = s.Forget(context.Background(), aggregate.ID())

		assert.Nil(t, err)
		_, err = s.Get(context.Background(), aggregate.ID())
		assert.True(t, errors.Is(err, ErrBuildNotFound))
	})

	t.Run("ForgetDropsBuildLogDestination", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		databaseClient := database.NewMockClient(ctrl)
		expectProject(databaseClient, 8)
		s := NewService(getConfig(), databaseClient, nil, nil)
		aggregate := createBuild(t, s, build.CreateParams{})
		logName, err := aggregate.LogName(getConfig().BuildLog.Namespace)
		assert.Nil(t, err)
		err = buildlog.Run(context.Background(), logName, func(ctx context.Context) error {
			buildlog.Infof(ctx, "Running action %v", "test")
			return nil
		})
		assert.Nil(t, err)
		assert.True(t, buildlog.IsDestinationRegistered(logName))
		_, err = s.Finish(context.Background(), aggregate.ID(), time.Now().UTC())
		assert.Nil(t, err)

		// act
		err = s.Forget(context.Background(), aggregate.ID())

		assert.Nil(t, err)
		assert.Equal(t, "estafette.build.widget-8", logName)
		assert.False(t, buildlog.IsDestinationRegistered(logName))
	})
}

func TestRunAction(t *testing.T) {

	node := map[string]interface{}{"ip_addr": "10.0.0.1", "password": "secret"}

	t.Run("RunsCommandOnNodeAndRecordsSuccess", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		databaseClient := database.NewMockClient(ctrl)
		executorClient := executor.NewMockClient(ctrl)
		expectProject(databaseClient, 7)
		executorClient.EXPECT().Run(gomock.Any(), executor.Target{Host: "10.0.0.1", Port: 22, User: "ubuntu", Password: "secret"}, "make test").Return(nil).Times(1)
		s := NewService(getConfig(), databaseClient, nil, executorClient)
		aggregate := createBuild(t, s, build.CreateParams{Node: node})

		// act
		result, err := s.RunAction(context.Background(), aggregate.ID(), build.Action{Name: "test", Command: "make test"})

		assert.Nil(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "test", aggregate.Read().ActionResults()[0].Name)
		assert.True(t, aggregate.Read().Continue())
	})

	t.Run("RecordsNonZeroExitAsFailedResult", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		databaseClient := database.NewMockClient(ctrl)
		executorClient := executor.NewMockClient(ctrl)
		expectProject(databaseClient, 7)
		executorClient.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).Return(&executor.ExitError{Command: "make test", ExitCode: 2}).Times(1)
		s := NewService(getConfig(), databaseClient, nil, executorClient)
		aggregate := createBuild(t, s, build.CreateParams{Node: node})

		// act
		result, err := s.RunAction(context.Background(), aggregate.ID(), build.Action{Name: "test", Command: "make test"})

		assert.Nil(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, 2, result.ExitCode)
		assert.False(t, aggregate.Read().Continue())
	})

	t.Run("RefusesToRunAfterFailedAction", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		databaseClient := database.NewMockClient(ctrl)
		executorClient := executor.NewMockClient(ctrl)
		expectProject(databaseClient, 7)
		executorClient.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		s := NewService(getConfig(), databaseClient, nil, executorClient)
		continueBuild := false
		aggregate := createBuild(t, s, build.CreateParams{Node: node, Continue: &continueBuild})

		// act
		_, err := s.RunAction(context.Background(), aggregate.ID(), build.Action{Name: "test", Command: "make test"})

		var preconditionErr *build.PreconditionError
		assert.True(t, errors.As(err, &preconditionErr))
	})

	t.Run("ReturnsPreconditionErrorWithoutNode", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		databaseClient := database.NewMockClient(ctrl)
		expectProject(databaseClient, 7)
		s := NewService(getConfig(), databaseClient, nil, executor.NewMockClient(ctrl))
		aggregate := createBuild(t, s, build.CreateParams{})

		// act
		_, err := s.RunAction(context.Background(), aggregate.ID(), build.Action{Name: "test", Command: "make test"})

		var preconditionErr *build.PreconditionError
		assert.True(t, errors.As(err, &preconditionErr))
	})

	t.Run("RoutesInterceptedExecutorOutputToBuildLog", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		buffer := &lockedBuffer{}
		buildlog.RegisterDestination("estafette.build.widget-7", zerolog.New(buffer))
		defer buildlog.UnregisterDestination("estafette.build.widget-7")

		executorConfig := &api.ExecutorConfig{}
		executorConfig.SetDefaults()
		realExecutor := executor.NewClient(executorConfig)
		buildlog.InstallInterceptor(realExecutor)

		databaseClient := database.NewMockClient(ctrl)
		executorClient := executor.NewMockClient(ctrl)
		expectProject(databaseClient, 7)
		executorClient.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, target executor.Target, command string) error {
			return realExecutor.HandleOutput(ctx, executor.Stdout, target, strings.NewReader("ok  github.com/acme/widget\n"))
		}).Times(1)
		s := NewService(getConfig(), databaseClient, nil, executorClient)
		aggregate := createBuild(t, s, build.CreateParams{Node: node})

		// act
		_, err := s.RunAction(context.Background(), aggregate.ID(), build.Action{Name: "test", Command: "go test ./..."})

		assert.Nil(t, err)
		assert.Contains(t, buffer.String(), "ok  github.com/acme/widget")
		assert.Contains(t, buffer.String(), "Running action test")
	})
}

func TestFlushAll(t *testing.T) {

	t.Run("PersistsEveryLiveBuildAndReportsFailures", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		databaseClient := database.NewMockClient(ctrl)
		syncer := build.NewMockSyncer(ctrl)
		databaseClient.EXPECT().GetProjectByVCSURL(gomock.Any(), gomock.Any()).Return(&database.Project{ID: "P1", Name: "widget"}, nil).Times(3)
		buildNum := 0
		databaseClient.EXPECT().GetNextBuildNumber(gomock.Any(), "P1").DoAndReturn(func(ctx context.Context, projectID string) (int, error) {
			buildNum++
			return buildNum, nil
		}).Times(3)
		syncer.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(3)

		var mu sync.Mutex
		updated := map[string]bool{}
		syncer.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, b build.Build) error {
			mu.Lock()
			defer mu.Unlock()
			updated[b.ID()] = true
			if b[build.KeyBuildNum] == 2 {
				return errors.New("store is down")
			}
			return nil
		}).Times(3)

		s := NewService(getConfig(), databaseClient, syncer, nil)
		for i := 0; i < 3; i++ {
			createBuild(t, s, build.CreateParams{})
		}

		// act
		err := s.FlushAll(context.Background())

		var persistenceErr *build.PersistenceError
		assert.True(t, errors.As(err, &persistenceErr))
		assert.Equal(t, 3, len(updated))
	})

	t.Run("ReturnsNilWithoutLiveBuilds", func(t *testing.T) {

		s := NewService(getConfig(), nil, nil, nil)

		// act
		err := s.FlushAll(context.Background())

		assert.Nil(t, err)
	})
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
