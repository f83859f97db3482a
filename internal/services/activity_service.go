package services

import (
	"context"
	"time"

	"github.com/gitprofile/insight/internal/models"
	"github.com/gitprofile/insight/pkg/logger"
)

// Activity source options. The event feed is capped at one page of 100
// events, so its counts are an estimate; the GraphQL contributions
// collection is exact. The two are not guaranteed to agree.
const (
	ActivitySourceEvents  = "events"
	ActivitySourceGraphQL = "graphql"
)

// ActivityService computes the trailing 90-day activity window from one of
// the two alternate sources.
type ActivityService struct {
	github GitHub
	source string
}

// NewActivityService creates a new ActivityService. An unrecognized source
// falls back to the event feed.
func NewActivityService(github GitHub, source string) *ActivityService {
	if source != ActivitySourceGraphQL {
		source = ActivitySourceEvents
	}
	return &ActivityService{github: github, source: source}
}

// Window computes the activity window for the user. A GraphQL failure
// degrades to the event-based estimate rather than failing the caller.
func (s *ActivityService) Window(ctx context.Context, username string, now time.Time) (models.ActivityWindow, error) {
	if s.source == ActivitySourceGraphQL {
		from := now.AddDate(0, 0, -models.ActivityWindowDays)
		window, err := s.github.ContributionTotals(ctx, username, from, now)
		if err == nil {
			return *window, nil
		}
		logger.WithError(err).WithField("username", username).
			Warn("contributions query failed, falling back to event feed")
	}

	events, err := s.github.ListPublicEvents(ctx, username)
	if err != nil {
		return models.ActivityWindow{}, err
	}
	return ReduceEvents(events, now), nil
}

// ReduceEvents folds an event feed into windowed counts. Events older than
// the 90-day window contribute nothing. The per-type rules:
//   - PushEvent adds its commit count and marks the repo as touched
//   - PullRequestEvent counts only "opened" and "closed" actions
//   - IssuesEvent counts only "opened"
//   - Create/Delete/Fork/Watch events only mark the repo as touched
func ReduceEvents(events []models.Event, now time.Time) models.ActivityWindow {
	cutoff := now.AddDate(0, 0, -models.ActivityWindowDays)
	touched := make(map[string]struct{})

	var window models.ActivityWindow
	for _, event := range events {
		if event.CreatedAt.Before(cutoff) {
			continue
		}

		switch event.Type {
		case "PushEvent":
			window.Commits += event.Commits
			if event.RepoName != "" {
				touched[event.RepoName] = struct{}{}
			}
		case "PullRequestEvent":
			if event.Action == "opened" || event.Action == "closed" {
				window.PullRequests++
			}
		case "IssuesEvent":
			if event.Action == "opened" {
				window.Issues++
			}
		case "CreateEvent", "DeleteEvent", "ForkEvent", "WatchEvent":
			if event.RepoName != "" {
				touched[event.RepoName] = struct{}{}
			}
		}
	}

	window.ActiveRepositories = len(touched)
	return window
}
