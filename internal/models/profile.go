package models

import "time"

// Profile is an immutable snapshot of a GitHub user profile.
// A fetch either fully succeeds or is rejected; there are no partial updates.
type Profile struct {
	ID              int64      `json:"id"`
	Username        string     `json:"username"`
	Name            *string    `json:"name"`
	Bio             *string    `json:"bio"`
	AvatarURL       string     `json:"avatarUrl"`
	Company         *string    `json:"company"`
	Blog            *string    `json:"blog"`
	Location        *string    `json:"location"`
	Email           *string    `json:"email"`
	TwitterUsername *string    `json:"twitterUsername"`
	Followers       int        `json:"followers"`
	Following       int        `json:"following"`
	PublicRepos     int        `json:"publicRepos"`
	PublicGists     int        `json:"publicGists"`
	CreatedAt       *time.Time `json:"createdAt"`
	UpdatedAt       *time.Time `json:"updatedAt"`
	ProfileURL      string     `json:"profileUrl"`
}
