package build

import (
	"fmt"
	"strings"

	"github.com/estafette/estafette-ci-buildstate/pkg/vcsurl"
)

// BuildName returns <project-name>-<build_num>
func BuildName(projectName string, buildNum int64) string {
	return fmt.Sprintf("%v-%v", projectName, buildNum)
}

// CheckoutDirName returns the build name with spaces replaced by hyphens
func CheckoutDirName(projectName string, buildNum int64) string {
	return strings.ReplaceAll(BuildName(projectName, buildNum), " ", "-")
}

// ProjectName derives the project name from the vcs url of the build
func ProjectName(b Build) (string, error) {
	projectName, err := vcsurl.ProjectName(b.VCSURL())
	if err != nil {
		return "", &ParseError{VCSURL: b.VCSURL(), Err: err}
	}
	if projectName == "" {
		return "", &ParseError{VCSURL: b.VCSURL(), Err: vcsurl.ErrUnparseable}
	}
	return projectName, nil
}

// Name returns the stable name of the build
func Name(b Build) (string, error) {
	projectName, err := ProjectName(b)
	if err != nil {
		return "", err
	}
	buildNum, ok := b.BuildNum()
	if !ok {
		return "", &PreconditionError{Operation: "Name", Reason: "build has no integer build_num"}
	}
	return BuildName(projectName, buildNum), nil
}

// CheckoutDir returns the name of the directory the build's repository is checked out in
func CheckoutDir(b Build) (string, error) {
	name, err := Name(b)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(name, " ", "-"), nil
}

// LogName returns <namespace>.<build-name>, the name of the log channel the build's output is routed to
func LogName(namespace string, b Build) (string, error) {
	name, err := Name(b)
	if err != nil {
		return "", err
	}
	if namespace == "" {
		return name, nil
	}
	return namespace + "." + name, nil
}

// GroupName returns <project-name>-<first 7 chars of the revision>, used to group builds of the same commit
func GroupName(b Build) (string, error) {
	projectName, err := ProjectName(b)
	if err != nil {
		return "", err
	}
	revision := b.VCSRevision()
	if revision == "" {
		return "", &PreconditionError{Operation: "GroupName", Reason: "build has no vcs_revision"}
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	return projectName + "-" + revision, nil
}
