package models

// PullRequestStats aggregates the three independent PR search counts.
// Closed is derived, never fetched: the three searches run independently
// and can race against each other upstream, so the derivation is clamped
// at zero.
type PullRequestStats struct {
	Total  int `json:"total"`
	Merged int `json:"merged"`
	Open   int `json:"open"`
	Closed int `json:"closed"`
}

// NewPullRequestStats derives the closed count from the fetched three.
func NewPullRequestStats(total, merged, open int) PullRequestStats {
	closed := total - merged - open
	if closed < 0 {
		closed = 0
	}
	return PullRequestStats{
		Total:  total,
		Merged: merged,
		Open:   open,
		Closed: closed,
	}
}
