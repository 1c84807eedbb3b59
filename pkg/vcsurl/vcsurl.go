// Package vcsurl parses repository urls as recorded on builds into host, owner and project name.
package vcsurl

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/src-d/go-git.v4/plumbing/transport"
)

var (
	// ErrUnparseable is returned for urls that don't identify a remote repository
	ErrUnparseable = errors.New("the vcs url can't be parsed")
)

// Repository identifies a repository by host, owner and name
type Repository struct {
	Host    string
	Owner   string
	Project string
}

// FullName returns owner/project
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Project
}

// Parse supports http(s), ssh and scp-like (git@host:owner/repo.git) urls
func Parse(vcsURL string) (repository Repository, err error) {
	if strings.TrimSpace(vcsURL) == "" {
		return repository, fmt.Errorf("%w: url is empty", ErrUnparseable)
	}

	endpoint, err := transport.NewEndpoint(vcsURL)
	if err != nil {
		return repository, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	if endpoint.Protocol == "file" || endpoint.Host == "" {
		return repository, fmt.Errorf("%w: %v is not a remote repository", ErrUnparseable, vcsURL)
	}

	path := strings.Trim(endpoint.Path, "/")
	path = strings.TrimSuffix(path, ".git")

	separator := strings.LastIndex(path, "/")
	if separator <= 0 || separator == len(path)-1 {
		return repository, fmt.Errorf("%w: %v has no owner and project", ErrUnparseable, vcsURL)
	}

	return Repository{
		Host:    endpoint.Host,
		Owner:   path[:separator],
		Project: path[separator+1:],
	}, nil
}

// ProjectName returns the project part of the url
func ProjectName(vcsURL string) (string, error) {
	repository, err := Parse(vcsURL)
	if err != nil {
		return "", err
	}
	return repository.Project, nil
}
