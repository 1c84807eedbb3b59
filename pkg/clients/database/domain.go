package database

import "time"

// Project is a repository builds are run for
type Project struct {
	ID         string
	Name       string
	VCSURL     string
	InsertedAt *time.Time
}
