package buildservice

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/estafette/estafette-ci-buildstate/pkg/api"
	"github.com/estafette/estafette-ci-buildstate/pkg/build"
	"github.com/estafette/estafette-ci-buildstate/pkg/buildlog"
	"github.com/estafette/estafette-ci-buildstate/pkg/clients/database"
	"github.com/estafette/estafette-ci-buildstate/pkg/clients/executor"
	"github.com/estafette/estafette-ci-buildstate/pkg/pool"
	"github.com/rs/zerolog/log"
)

var (
	// ErrBuildNotFound is returned for ids without live aggregate or stored document
	ErrBuildNotFound = errors.New("the build can't be found")
)

// Service keeps the live build aggregates of this process and runs their lifecycle
//
//go:generate mockgen -package=buildservice -destination ./mock.go -source=service.go
type Service interface {
	Create(ctx context.Context, params build.CreateParams) (aggregate *build.Aggregate, err error)
	Get(ctx context.Context, id string) (aggregate *build.Aggregate, err error)
	Load(ctx context.Context, id string) (snapshot build.Build, err error)
	AssignNode(ctx context.Context, id string, node map[string]interface{}) (snapshot build.Build, err error)
	RecordActionResult(ctx context.Context, id string, result build.ActionResult) (snapshot build.Build, err error)
	RunAction(ctx context.Context, id string, action build.Action) (result build.ActionResult, err error)
	Finish(ctx context.Context, id string, at time.Time) (snapshot build.Build, err error)
	Forget(ctx context.Context, id string) (err error)
	FlushAll(ctx context.Context) (err error)
}

// NewService returns a new buildservice.Service
func NewService(config *api.APIConfig, databaseClient database.Client, syncer build.Syncer, executorClient executor.Client) Service {
	return &service{
		config:         config,
		databaseClient: databaseClient,
		lookup:         NewProjectLookup(databaseClient),
		syncer:         syncer,
		executorClient: executorClient,
		rules:          build.DefaultRules,
		aggregates:     map[string]*build.Aggregate{},
		flushPoolSize:  5,
	}
}

type service struct {
	config         *api.APIConfig
	databaseClient database.Client
	lookup         build.ProjectLookup
	syncer         build.Syncer
	executorClient executor.Client
	rules          build.Rules
	flushPoolSize  int

	mu         sync.RWMutex
	aggregates map[string]*build.Aggregate
}

func (s *service) Create(ctx context.Context, params build.CreateParams) (aggregate *build.Aggregate, err error) {
	aggregate, err = build.Create(ctx, s.lookup, s.syncer, s.rules, params)
	if aggregate == nil {
		return nil, err
	}

	// the build exists in memory even if the store didn't get it
	s.register(aggregate)
	if err != nil {
		return aggregate, err
	}

	if aggregate.Read().VCSRevision() != "" {
		if _, err = aggregate.Mutate(ctx, build.AssignGroup()); err != nil {
			return aggregate, err
		}
	}

	log.Debug().Str("build", aggregate.ID()).Msg("Created build")

	return aggregate, nil
}

func (s *service) Get(ctx context.Context, id string) (*build.Aggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	aggregate, ok := s.aggregates[id]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrBuildNotFound, id)
	}
	return aggregate, nil
}

func (s *service) Load(ctx context.Context, id string) (snapshot build.Build, err error) {
	document, err := s.databaseClient.FindOneDocument(ctx, s.config.Database.BuildsCollection, map[string]interface{}{database.IDKey: id})
	if err != nil {
		if errors.Is(err, database.ErrDocumentNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrBuildNotFound, id)
		}
		return nil, err
	}

	return build.Build(document), nil
}

func (s *service) AssignNode(ctx context.Context, id string, node map[string]interface{}) (snapshot build.Build, err error) {
	return s.mutate(ctx, id, build.AssignNode(node))
}

func (s *service) RecordActionResult(ctx context.Context, id string, result build.ActionResult) (snapshot build.Build, err error) {
	return s.mutate(ctx, id, build.AppendActionResult(result))
}

func (s *service) RunAction(ctx context.Context, id string, action build.Action) (result build.ActionResult, err error) {
	aggregate, err := s.Get(ctx, id)
	if err != nil {
		return
	}

	current := aggregate.Read()
	if !current.Continue() {
		return result, &build.PreconditionError{Operation: "RunAction", Reason: "an earlier action failed"}
	}
	if aggregate.IsFinished() {
		return result, &build.PreconditionError{Operation: "RunAction", Reason: "the build is finished"}
	}

	target, err := executor.TargetFromNode(current.Node(), s.config.Executor)
	if err != nil {
		return result, &build.PreconditionError{Operation: "RunAction", Reason: err.Error()}
	}

	logName, err := aggregate.LogName(s.config.BuildLog.Namespace)
	if err != nil {
		return
	}

	result = build.ActionResult{Name: action.Name, StartTime: time.Now().UTC()}

	runErr := buildlog.Run(ctx, logName, func(ctx context.Context) error {
		buildlog.Infof(ctx, "Running action %v on %v", action.Name, target.Host)

		err := s.executorClient.Run(ctx, target, action.Command)
		if err != nil {
			buildlog.Errorf(ctx, "Action %v failed: %v", action.Name, err)
		} else {
			buildlog.Infof(ctx, "Action %v succeeded", action.Name)
		}
		return err
	})

	result.EndTime = time.Now().UTC()
	result.Success = runErr == nil

	var exitErr *executor.ExitError
	switch {
	case runErr == nil:
	case errors.As(runErr, &exitErr):
		result.ExitCode = exitErr.ExitCode
		// a non-zero exit is a failed action, not a failed call
		runErr = nil
	default:
		result.ExitCode = -1
	}

	if _, err = aggregate.Mutate(ctx, build.AppendActionResult(result)); err != nil {
		return result, err
	}

	return result, runErr
}

func (s *service) Finish(ctx context.Context, id string, at time.Time) (snapshot build.Build, err error) {
	return s.mutate(ctx, id, build.Stop(at))
}

// Forget drops a finished build from memory, its mirror stays in the store
func (s *service) Forget(ctx context.Context, id string) (err error) {
	aggregate, err := s.Get(ctx, id)
	if err != nil {
		return
	}
	if !aggregate.IsFinished() {
		return &build.PreconditionError{Operation: "Forget", Reason: "the build isn't finished"}
	}

	// the build log channel goes together with the build
	if logName, nameErr := aggregate.LogName(s.config.BuildLog.Namespace); nameErr == nil {
		buildlog.UnregisterDestination(logName)
	} else {
		log.Warn().Err(nameErr).Str("build", id).Msg("Failed resolving build log name, keeping its destination")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.aggregates, id)

	return nil
}

// FlushAll writes every live build to the store again, for instance before shutting down
func (s *service) FlushAll(ctx context.Context) (err error) {
	aggregates := s.live()
	if len(aggregates) == 0 {
		return nil
	}

	p, err := pool.NewPool(ctx, pool.DefaultConfig(s.flushPoolSize, func(ctx context.Context, aggregate *build.Aggregate) (string, error) {
		return aggregate.ID(), aggregate.Persist(ctx)
	}))
	if err != nil {
		return
	}

	// send from a separate goroutine so the results channel is drained while jobs queue up
	go func() {
		p.SendJobs(aggregates...)
		p.Close()
	}()

	flushed := 0
	for range p.Results() {
		flushed++
	}

	jobErrors := p.Errors()
	log.Info().Msgf("Flushed %v of %v builds", flushed, len(aggregates))

	errs := make([]error, 0, len(jobErrors))
	for _, jobErr := range jobErrors {
		errs = append(errs, fmt.Errorf("flushing build %v failed: %w", jobErr.Job.ID(), jobErr.Err))
	}

	return errors.Join(errs...)
}

func (s *service) mutate(ctx context.Context, id string, transform build.Transform) (snapshot build.Build, err error) {
	aggregate, err := s.Get(ctx, id)
	if err != nil {
		return
	}
	return aggregate.Mutate(ctx, transform)
}

func (s *service) register(aggregate *build.Aggregate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.aggregates[aggregate.ID()] = aggregate
}

func (s *service) live() []*build.Aggregate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	aggregates := make([]*build.Aggregate, 0, len(s.aggregates))
	for _, aggregate := range s.aggregates {
		aggregates = append(aggregates, aggregate)
	}
	return aggregates
}
