package build

import (
	"context"
	"reflect"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// Keys of the fields the build core reads or writes; any other key is carried along untouched
const (
	KeyID            = "_id"
	KeyProjectID     = "_project_id"
	KeyBuildNum      = "build_num"
	KeyVCSURL        = "vcs_url"
	KeyVCSRevision   = "vcs_revision"
	KeyType          = "type"
	KeyContinue      = "continue"
	KeyActions       = "actions"
	KeyActionResults = "action_results"
	KeyStopTime      = "stop_time"
	KeyNode          = "node"
	KeyGroup         = "group"
)

// TypeDeploy marks builds that deploy a specific revision
const TypeDeploy = "deploy"

// Build is a schema-tolerant record of a single pipeline execution
type Build map[string]interface{}

// Project is the project a build belongs to, as returned by the project lookup
type Project struct {
	ID     string
	Name   string
	VCSURL string
}

// Action is an executable step of the pipeline; it lives in memory only
type Action struct {
	Name    string `json:"name"`
	Command string `json:"command"`
}

// ActionResult is the outcome of running an action
type ActionResult struct {
	Name      string    `json:"name"`
	Success   bool      `json:"success"`
	ExitCode  int       `json:"exitCode"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// ProjectLookup resolves projects and hands out build numbers
//
//go:generate mockgen -package=build -destination ./mock.go -source=domain.go
type ProjectLookup interface {
	GetProjectByVCSURL(ctx context.Context, vcsURL string) (project *Project, err error)
	GetNextBuildNumber(ctx context.Context, project Project) (buildNum int, err error)
}

// Syncer mirrors committed build snapshots into the persistent store
type Syncer interface {
	Insert(ctx context.Context, build Build) (err error)
	Update(ctx context.Context, build Build) (err error)
}

// Clone returns a deep copy of the build that shares no maps, slices or pointers with the original
func (b Build) Clone() Build {
	if b == nil {
		return nil
	}
	clone := make(Build, len(b))
	if err := copier.CopyWithOption(&clone, b, copier.Option{DeepCopy: true}); err != nil {
		log.Warn().Err(err).Str("build", b.ID()).Msg("Deep copying build failed, falling back to copying it value by value")
		for key, value := range b {
			clone[key] = value
		}
	}
	for key, value := range clone {
		clone[key] = detachPointers(value)
	}
	return clone
}

// detachPointers replaces pointers held in interface values, which a deep copy hands over as is, with pointers to
// copies of what they point to
func detachPointers(value interface{}) interface{} {
	switch v := value.(type) {
	case nil:
		return nil
	case Build:
		for key, item := range v {
			v[key] = detachPointers(item)
		}
		return v
	case map[string]interface{}:
		for key, item := range v {
			v[key] = detachPointers(item)
		}
		return v
	case []interface{}:
		for i, item := range v {
			v[i] = detachPointers(item)
		}
		return v
	}

	pointer := reflect.ValueOf(value)
	if pointer.Kind() != reflect.Ptr || pointer.IsNil() {
		return value
	}
	copied := reflect.New(pointer.Type().Elem())
	if err := copier.CopyWithOption(copied.Interface(), value, copier.Option{DeepCopy: true}); err != nil {
		copied.Elem().Set(pointer.Elem())
	}
	return copied.Interface()
}

// ID returns the build identity or an empty string if it isn't assigned
func (b Build) ID() string {
	id, _ := b[KeyID].(string)
	return id
}

// ProjectID returns the id of the owning project
func (b Build) ProjectID() string {
	projectID, _ := b[KeyProjectID].(string)
	return projectID
}

// BuildNum returns the build number if it is an integer
func (b Build) BuildNum() (int64, bool) {
	return asInt(b[KeyBuildNum])
}

func (b Build) VCSURL() string {
	vcsURL, _ := b[KeyVCSURL].(string)
	return vcsURL
}

func (b Build) VCSRevision() string {
	revision, _ := b[KeyVCSRevision].(string)
	return revision
}

func (b Build) Type() string {
	buildType, _ := b[KeyType].(string)
	return buildType
}

// Continue reports whether later pipeline steps should still run; absent means true
func (b Build) Continue() bool {
	value, ok := b[KeyContinue]
	if !ok {
		return true
	}
	cont, isBool := value.(bool)
	return isBool && cont
}

// StopTime returns when the build finished
func (b Build) StopTime() (time.Time, bool) {
	switch v := b[KeyStopTime].(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v != nil {
			return *v, !v.IsZero()
		}
	}
	return time.Time{}, false
}

// ActionResults returns the results recorded so far, in execution order; entries of other types are skipped
func (b Build) ActionResults() []ActionResult {
	switch v := b[KeyActionResults].(type) {
	case []ActionResult:
		return append([]ActionResult{}, v...)
	case []interface{}:
		results := make([]ActionResult, 0, len(v))
		for _, item := range v {
			if result, ok := item.(ActionResult); ok {
				results = append(results, result)
			}
		}
		return results
	}
	return []ActionResult{}
}

// Actions returns the executable actions of the build
func (b Build) Actions() []Action {
	actions, _ := b[KeyActions].([]Action)
	return append([]Action{}, actions...)
}

// Node returns the execution target descriptor of the build
func (b Build) Node() map[string]interface{} {
	switch v := b[KeyNode].(type) {
	case map[string]interface{}:
		return map[string]interface{}(Build(v).Clone())
	case Build:
		return map[string]interface{}(v.Clone())
	}
	return nil
}

func asInt(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		if uint64(v) > 1<<63-1 {
			return 0, false
		}
		return int64(v), true
	case uint64:
		if v > 1<<63-1 {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}
