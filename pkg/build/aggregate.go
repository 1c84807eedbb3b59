package build

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"
)

// Transform derives a candidate build from the current snapshot. The snapshot handed in is a private copy and may be
// modified and returned; returning an error aborts the mutation.
type Transform func(current Build) (Build, error)

// Aggregate is the single authoritative in-memory copy of one build. Every change is validated before it's committed
// and mirrored into the store after the commit.
type Aggregate struct {
	mu      sync.RWMutex
	state   Build
	version uint64

	rules  Rules
	syncer Syncer

	// serializes store writes, so a slow write of an older commit can't overwrite a newer one
	persistMu        sync.Mutex
	persistedVersion uint64
	insertAttempted  bool
}

func newAggregate(initial Build, rules Rules, syncer Syncer) (*Aggregate, error) {
	state := initial.Clone()
	normalize(state)
	if err := ValidateOrError(rules, state); err != nil {
		return nil, err
	}

	return &Aggregate{
		state:   state,
		version: 1,
		rules:   rules,
		syncer:  syncer,
	}, nil
}

// Read returns a snapshot of the last committed state
func (a *Aggregate) Read() Build {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.state.Clone()
}

// ID returns the immutable identity of the build
func (a *Aggregate) ID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.state.ID()
}

// Mutate applies transform to the current state and commits the result if it passes validation. A rejected candidate
// leaves the state untouched. After the commit the new state is written to the store; if that fails the commit stands
// and a *PersistenceError is returned together with the committed snapshot.
func (a *Aggregate) Mutate(ctx context.Context, transform Transform) (Build, error) {
	snapshot, version, err := a.commit(transform)
	if err != nil {
		return nil, err
	}

	return snapshot, a.persist(ctx, snapshot, version)
}

func (a *Aggregate) commit(transform Transform) (Build, uint64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	candidate, err := transform(a.state.Clone())
	if err != nil {
		return nil, 0, err
	}
	// the transform may keep a reference to what it returned
	candidate = candidate.Clone()
	normalize(candidate)

	messages := Validate(a.rules, candidate)
	messages = append(messages, immutableFieldChanges(a.state, candidate)...)
	if len(messages) > 0 {
		return nil, 0, &ValidationError{Messages: messages}
	}

	a.state = candidate
	a.version++

	return a.state.Clone(), a.version, nil
}

// Persist writes the current state to the store again, e.g. after an earlier write failed
func (a *Aggregate) Persist(ctx context.Context) error {
	a.mu.RLock()
	snapshot, version := a.state.Clone(), a.version
	a.mu.RUnlock()

	return a.persist(ctx, snapshot, version)
}

func (a *Aggregate) persist(ctx context.Context, snapshot Build, version uint64) error {
	if a.syncer == nil {
		return nil
	}

	a.persistMu.Lock()
	defer a.persistMu.Unlock()

	if version < a.persistedVersion {
		// a later commit has been written already
		return nil
	}

	// only the very first write inserts; retries after a failed insert upsert
	operation, write := "update", a.syncer.Update
	if !a.insertAttempted {
		operation, write = "insert", a.syncer.Insert
		a.insertAttempted = true
	}

	if err := write(ctx, snapshot); err != nil {
		var persistenceErr *PersistenceError
		var preconditionErr *PreconditionError
		if errors.As(err, &persistenceErr) || errors.As(err, &preconditionErr) {
			return err
		}
		return &PersistenceError{Operation: operation, ID: snapshot.ID(), Err: err}
	}

	a.persistedVersion = version
	return nil
}

// IsSuccessful returns true once the build has stopped without any failed action
func (a *Aggregate) IsSuccessful() bool {
	snapshot := a.Read()

	_, stopped := snapshot.StopTime()
	return stopped && snapshot.Continue()
}

// IsFinished returns true once stop_time is set
func (a *Aggregate) IsFinished() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	_, stopped := a.state.StopTime()
	return stopped
}

// Name returns <project-name>-<build_num>
func (a *Aggregate) Name() (string, error) {
	return Name(a.Read())
}

// CheckoutDir returns the build name made safe for use as a directory name
func (a *Aggregate) CheckoutDir() (string, error) {
	return CheckoutDir(a.Read())
}

// LogName returns the name of the log channel of this build
func (a *Aggregate) LogName(namespace string) (string, error) {
	return LogName(namespace, a.Read())
}

func immutableFieldChanges(current, candidate Build) (messages []string) {
	for _, key := range []string{KeyID, KeyProjectID, KeyBuildNum} {
		currentValue, currentSet := current[key]
		if !currentSet {
			continue
		}
		candidateValue, candidateSet := candidate[key]
		if !candidateSet {
			// reported by the required keys rule
			continue
		}
		if !sameValue(currentValue, candidateValue) {
			messages = append(messages, fmt.Sprintf("%v is immutable, can't change %v to %v", key, currentValue, candidateValue))
		}
	}
	return messages
}

// sameValue compares integers by value regardless of their width, anything else has to match in type and content
func sameValue(current, candidate interface{}) bool {
	currentInt, currentIsInt := asInt(current)
	candidateInt, candidateIsInt := asInt(candidate)
	if currentIsInt || candidateIsInt {
		return currentIsInt && candidateIsInt && currentInt == candidateInt
	}
	return reflect.DeepEqual(current, candidate)
}

// normalize stores stop_time as a time.Time value rather than a pointer somebody else may hold on to
func normalize(b Build) {
	stopTime, ok := b[KeyStopTime].(*time.Time)
	if !ok {
		return
	}
	if stopTime == nil {
		delete(b, KeyStopTime)
		return
	}
	b[KeyStopTime] = *stopTime
}

// Node returns the execution target descriptor of the build
func (a *Aggregate) Node() map[string]interface{} {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.state.Node()
}
