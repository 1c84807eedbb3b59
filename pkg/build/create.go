package build

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// CreateParams are the caller supplied fields of a new build
type CreateParams struct {
	// ID is generated when empty
	ID          string
	VCSURL      string
	VCSRevision string
	Type        string
	Actions     []Action
	Node        map[string]interface{}
	// Continue defaults to true
	Continue *bool
	// Fields are merged over the defaults and carried along opaquely
	Fields Build
}

// Create assembles, validates and stores a new build. The project is resolved from the vcs url and the build number is
// handed out by lookup; both are trusted to be unique. If the build is valid but can't be written to the store the
// aggregate is returned together with a *PersistenceError.
func Create(ctx context.Context, lookup ProjectLookup, syncer Syncer, rules Rules, params CreateParams) (*Aggregate, error) {
	if params.VCSURL == "" {
		return nil, &ValidationError{Messages: []string{"vcs_url is required"}}
	}

	project, err := lookup.GetProjectByVCSURL(ctx, params.VCSURL)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return nil, fmt.Errorf("%w: no project for %v", ErrProjectNotFound, params.VCSURL)
		}
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("%w: no project for %v", ErrProjectNotFound, params.VCSURL)
	}

	buildNum, err := lookup.GetNextBuildNumber(ctx, *project)
	if err != nil {
		return nil, err
	}

	initial := Build{
		KeyContinue:      true,
		KeyActionResults: []interface{}{},
	}
	for key, value := range params.Fields.Clone() {
		initial[key] = value
	}

	initial[KeyVCSURL] = params.VCSURL
	initial[KeyVCSRevision] = params.VCSRevision
	if params.Type != "" {
		initial[KeyType] = params.Type
	}
	if params.Actions != nil {
		initial[KeyActions] = append([]Action{}, params.Actions...)
	}
	if params.Node != nil {
		initial[KeyNode] = params.Node
	}
	if params.Continue != nil {
		initial[KeyContinue] = *params.Continue
	}

	id := params.ID
	if id == "" {
		id = uuid.New().String()
	}
	initial[KeyID] = id
	initial[KeyProjectID] = project.ID
	initial[KeyBuildNum] = buildNum

	aggregate, err := newAggregate(initial, rules, syncer)
	if err != nil {
		return nil, err
	}

	if err := aggregate.Persist(ctx); err != nil {
		return aggregate, err
	}

	return aggregate, nil
}
