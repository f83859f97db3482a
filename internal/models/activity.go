package models

import "time"

// ActivityWindowDays is the fixed lookback for windowed activity metrics.
const ActivityWindowDays = 90

// ActivityWindow holds activity counts for the trailing 90-day window.
// It is computed against a Profile fetch and never persisted on its own.
type ActivityWindow struct {
	Commits            int `json:"commits"`
	PullRequests       int `json:"pullRequests"`
	Issues             int `json:"issues"`
	ActiveRepositories int `json:"activeRepositories"`
}

// Event is a flattened public-timeline event, reduced to the fields the
// activity calculator consumes.
type Event struct {
	Type      string
	RepoName  string
	Action    string
	Commits   int
	CreatedAt time.Time
}
