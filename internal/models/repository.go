package models

import "time"

// Repository is a normalized GitHub repository snapshot.
// The list exposed by the aggregation pipeline never contains forks and is
// ordered by stars descending, then updated time descending.
type Repository struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	FullName      string     `json:"fullName"`
	Description   *string    `json:"description"`
	URL           string     `json:"url"`
	Stars         int        `json:"stars"`
	Forks         int        `json:"forks"`
	Watchers      int        `json:"watchers"`
	Language      *string    `json:"language"`
	IsPrivate     bool       `json:"isPrivate"`
	IsArchived    bool       `json:"isArchived"`
	IsFork        bool       `json:"isFork"`
	CreatedAt     *time.Time `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt"`
	PushedAt      *time.Time `json:"pushedAt"`
	DefaultBranch *string    `json:"defaultBranch"`
	OpenIssues    int        `json:"openIssues"`
	License       *string    `json:"license"`
	Topics        []string   `json:"topics"`
	Homepage      *string    `json:"homepage"`
}

// Owner returns the owner part of the repository full name.
func (r *Repository) Owner() string {
	for i := 0; i < len(r.FullName); i++ {
		if r.FullName[i] == '/' {
			return r.FullName[:i]
		}
	}
	return ""
}
