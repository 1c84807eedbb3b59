package buildservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/estafette/estafette-ci-buildstate/pkg/build"
	"github.com/estafette/estafette-ci-buildstate/pkg/clients/database"
	"github.com/estafette/estafette-ci-buildstate/pkg/vcsurl"
)

// NewProjectLookup resolves projects and build numbers from the database
func NewProjectLookup(databaseClient database.Client) build.ProjectLookup {
	return &projectLookup{databaseClient: databaseClient}
}

type projectLookup struct {
	databaseClient database.Client
}

func (l *projectLookup) GetProjectByVCSURL(ctx context.Context, vcsURL string) (*build.Project, error) {
	project, err := l.databaseClient.GetProjectByVCSURL(ctx, vcsURL)
	if err != nil {
		if errors.Is(err, database.ErrProjectNotFound) {
			return nil, fmt.Errorf("%w: %v", build.ErrProjectNotFound, vcsURL)
		}
		return nil, err
	}

	name := project.Name
	if name == "" {
		name, _ = vcsurl.ProjectName(project.VCSURL)
	}

	return &build.Project{ID: project.ID, Name: name, VCSURL: project.VCSURL}, nil
}

func (l *projectLookup) GetNextBuildNumber(ctx context.Context, project build.Project) (int, error) {
	return l.databaseClient.GetNextBuildNumber(ctx, project.ID)
}
