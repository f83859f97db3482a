package models

import "time"

// AggregateResult is the merged output of one profile analysis request.
// It is assembled only after every upstream call has settled, so callers
// never observe a half-merged result.
type AggregateResult struct {
	Profile      *Profile          `json:"profile"`
	Repos        []Repository      `json:"repos"`
	PullRequests PullRequestStats  `json:"pullRequests"`
	Activity     ActivityWindow    `json:"recentActivity"`
	Metadata     AggregateMetadata `json:"metadata"`
}

// AggregateMetadata carries fetch bookkeeping the caller can surface as a
// retry hint.
type AggregateMetadata struct {
	FetchedAt          time.Time  `json:"fetchedAt"`
	RateLimitRemaining int        `json:"rateLimitRemaining"`
	RateLimitReset     *time.Time `json:"rateLimitReset"`
}
