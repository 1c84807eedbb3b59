package queue

import "time"

// BuildEvent notifies subscribers that a build document has been written
type BuildEvent struct {
	Operation string    `json:"operation"`
	ID        string    `json:"id"`
	ProjectID string    `json:"projectID"`
	BuildNum  int64     `json:"buildNum"`
	Continue  bool      `json:"continue"`
	Finished  bool      `json:"finished"`
	At        time.Time `json:"at"`
}
