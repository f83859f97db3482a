package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gitprofile/insight/internal/models"
	"github.com/gitprofile/insight/pkg/logger"
)

// ProfileService orchestrates the concurrent collection of one user's
// GitHub footprint and owns the partial-failure policy: the profile fetch
// is the only fatal source, everything else degrades to zero or empty.
type ProfileService struct {
	github   GitHub
	repos    *RepoService
	activity *ActivityService
}

// NewProfileService creates a new ProfileService.
func NewProfileService(github GitHub, repos *RepoService, activity *ActivityService) *ProfileService {
	return &ProfileService{
		github:   github,
		repos:    repos,
		activity: activity,
	}
}

// Analyze fetches the profile, repositories, the three PR search counts and
// the activity window concurrently, waits for every call to settle, then
// merges. A profile failure fails the whole operation with its
// classification preserved; each other source is non-fatal.
func (s *ProfileService) Analyze(ctx context.Context, rawUsername string) (*models.AggregateResult, error) {
	username, err := models.NormalizeUsername(rawUsername)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	var (
		wg sync.WaitGroup

		profile    *models.Profile
		rate       models.RateInfo
		profileErr error

		repos []models.Repository

		totalPRs, mergedPRs, openPRs int

		activity    models.ActivityWindow
		activityErr error
	)

	wg.Add(6)

	go func() {
		defer wg.Done()
		profile, rate, profileErr = s.github.GetUser(ctx, username)
	}()

	go func() {
		defer wg.Done()
		repos = s.repos.FetchAll(ctx, username)
	}()

	go func() {
		defer wg.Done()
		activity, activityErr = s.activity.Window(ctx, username, now)
	}()

	go func() {
		defer wg.Done()
		totalPRs = s.countPRs(ctx, username, "")
	}()

	go func() {
		defer wg.Done()
		mergedPRs = s.countPRs(ctx, username, "is:merged")
	}()

	go func() {
		defer wg.Done()
		openPRs = s.countPRs(ctx, username, "is:open")
	}()

	wg.Wait()

	if profileErr != nil {
		return nil, profileErr
	}

	if activityErr != nil {
		logger.WithError(activityErr).WithField("username", username).
			Warn("activity source failed, returning empty window")
		activity = models.ActivityWindow{}
	}

	result := &models.AggregateResult{
		Profile:      profile,
		Repos:        s.repos.Normalize(repos),
		PullRequests: models.NewPullRequestStats(totalPRs, mergedPRs, openPRs),
		Activity:     activity,
		Metadata: models.AggregateMetadata{
			FetchedAt:          now,
			RateLimitRemaining: rate.Remaining,
		},
	}
	if !rate.ResetAt.IsZero() {
		reset := rate.ResetAt
		result.Metadata.RateLimitReset = &reset
	}

	return result, nil
}

// countPRs runs one PR search. A search failure is absorbed as a zero
// count: a separately exhausted search quota must not fail the aggregate.
func (s *ProfileService) countPRs(ctx context.Context, username, qualifier string) int {
	query := fmt.Sprintf("author:%s type:pr", username)
	if qualifier != "" {
		query += " " + qualifier
	}

	count, err := s.github.CountPRs(ctx, query)
	if err != nil {
		logger.WithError(err).WithFields(map[string]interface{}{
			"username": username,
			"query":    query,
		}).Warn("pull request search failed, counting as zero")
		return 0
	}
	return count
}
