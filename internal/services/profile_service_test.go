package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gitprofile/insight/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileService(github *stubGitHub) *ProfileService {
	repos := NewRepoService(github, 100, 100)
	activity := NewActivityService(github, ActivitySourceEvents)
	return NewProfileService(github, repos, activity)
}

func TestAnalyzeMergesAllSources(t *testing.T) {
	now := time.Now()
	reset := now.Add(30 * time.Minute)
	github := &stubGitHub{
		profile: &models.Profile{ID: 1, Username: "someone", Followers: 10},
		rate:    models.RateInfo{Remaining: 4998, ResetAt: reset},
		repoPages: map[int][]models.Repository{
			1: {
				{ID: 1, Name: "a", Stars: 3},
				{ID: 2, Name: "b", IsFork: true},
			},
		},
		prCounts: map[string]int{
			"author:someone type:pr":           12,
			"author:someone type:pr is:merged": 8,
			"author:someone type:pr is:open":   1,
		},
		events: []models.Event{
			{Type: "PushEvent", RepoName: "someone/a", Commits: 5, CreatedAt: now.AddDate(0, 0, -2)},
		},
	}

	result, err := newProfileService(github).Analyze(context.Background(), "Someone")

	require.NoError(t, err)
	assert.Equal(t, "someone", result.Profile.Username)
	assert.Len(t, result.Repos, 1)
	assert.Equal(t, models.PullRequestStats{Total: 12, Merged: 8, Open: 1, Closed: 3}, result.PullRequests)
	assert.Equal(t, 5, result.Activity.Commits)
	assert.Equal(t, 4998, result.Metadata.RateLimitRemaining)
	require.NotNil(t, result.Metadata.RateLimitReset)
	assert.WithinDuration(t, reset, *result.Metadata.RateLimitReset, time.Second)
}

func TestAnalyzeInvalidUsername(t *testing.T) {
	service := newProfileService(&stubGitHub{})

	testCases := []string{"", "Has Space", strings.Repeat("a", 40), "bad_underscore"}
	for _, username := range testCases {
		_, err := service.Analyze(context.Background(), username)
		assert.ErrorIs(t, err, models.ErrInvalidUsername, "username %q", username)
	}
}

func TestAnalyzeProfileFailureIsFatal(t *testing.T) {
	testCases := []struct {
		name string
		err  error
	}{
		{"not found", models.ErrNotFound},
		{"forbidden", models.ErrForbidden},
		{"rate limited", &models.RateLimitedError{ResetAt: time.Now()}},
		{"transport", errors.New("connection reset")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			github := &stubGitHub{profileErr: tc.err}

			_, err := newProfileService(github).Analyze(context.Background(), "someone")

			// The classification must be preserved, not collapsed
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestAnalyzePRSearchFailureCountsAsZero(t *testing.T) {
	// The merged search is rate-limited while total and open succeed
	github := &stubGitHub{
		profile: &models.Profile{ID: 1, Username: "someone"},
		prCounts: map[string]int{
			"author:someone type:pr":         10,
			"author:someone type:pr is:open": 3,
		},
		prErrs: map[string]error{
			"author:someone type:pr is:merged": &models.RateLimitedError{ResetAt: time.Now()},
		},
	}

	result, err := newProfileService(github).Analyze(context.Background(), "someone")

	require.NoError(t, err)
	assert.Equal(t, models.PullRequestStats{Total: 10, Merged: 0, Open: 3, Closed: 7}, result.PullRequests)
}

func TestAnalyzeActivityFailureYieldsEmptyWindow(t *testing.T) {
	github := &stubGitHub{
		profile:   &models.Profile{ID: 1, Username: "someone"},
		eventsErr: models.ErrForbidden,
	}

	result, err := newProfileService(github).Analyze(context.Background(), "someone")

	require.NoError(t, err)
	assert.Equal(t, models.ActivityWindow{}, result.Activity)
}

func TestAnalyzeRepoFailureTruncates(t *testing.T) {
	github := &stubGitHub{
		profile: &models.Profile{ID: 1, Username: "someone"},
		repoPages: map[int][]models.Repository{
			1: makeRepos(100, 0),
		},
		repoPageErrs: map[int]error{
			2: &models.RateLimitedError{ResetAt: time.Now()},
		},
	}
	repos := NewRepoService(github, 250, 100)
	activity := NewActivityService(github, ActivitySourceEvents)
	service := NewProfileService(github, repos, activity)

	result, err := service.Analyze(context.Background(), "someone")

	require.NoError(t, err)
	assert.Len(t, result.Repos, 100)
}

func TestClosedCountNeverNegative(t *testing.T) {
	// Upstream races between the three searches can make merged+open
	// exceed total
	stats := models.NewPullRequestStats(5, 4, 3)
	assert.Equal(t, 0, stats.Closed)
}
