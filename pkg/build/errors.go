package build

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrProjectNotFound is returned when no project exists for the vcs url of a new build
	ErrProjectNotFound = errors.New("the project can't be found")
)

// ValidationError carries the messages of all rules a candidate build failed
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("build is invalid: %v", strings.Join(e.Messages, "; "))
}

// PreconditionError is returned when an operation is invoked on a build lacking required state
type PreconditionError struct {
	Operation string
	Reason    string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%v precondition failed: %v", e.Operation, e.Reason)
}

// PersistenceError is returned when a committed build couldn't be written to the store; the in-memory commit stands
type PersistenceError struct {
	Operation string
	ID        string
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%v of build %v failed: %v", e.Operation, e.ID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ParseError is returned when the vcs url of a build can't be parsed into a project name
type ParseError struct {
	VCSURL string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vcs url %q can't be parsed: %v", e.VCSURL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
