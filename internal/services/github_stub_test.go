package services

import (
	"context"
	"time"

	"github.com/gitprofile/insight/internal/models"
)

// stubGitHub is a scriptable GitHub implementation for service tests.
type stubGitHub struct {
	profile    *models.Profile
	rate       models.RateInfo
	profileErr error

	repoPages    map[int][]models.Repository
	repoPageErrs map[int]error
	repoCalls    int

	prCounts map[string]int
	prErrs   map[string]error

	events    []models.Event
	eventsErr error

	languages    map[string]map[string]int
	languagesErr map[string]error

	contributions    *models.ActivityWindow
	contributionsErr error
}

func (s *stubGitHub) GetUser(ctx context.Context, username string) (*models.Profile, models.RateInfo, error) {
	if s.profileErr != nil {
		return nil, models.RateInfo{}, s.profileErr
	}
	return s.profile, s.rate, nil
}

func (s *stubGitHub) ListRepoPage(ctx context.Context, username string, page, perPage int) ([]models.Repository, error) {
	s.repoCalls++
	if err, ok := s.repoPageErrs[page]; ok {
		return nil, err
	}
	return s.repoPages[page], nil
}

func (s *stubGitHub) CountPRs(ctx context.Context, query string) (int, error) {
	if err, ok := s.prErrs[query]; ok {
		return 0, err
	}
	return s.prCounts[query], nil
}

func (s *stubGitHub) ListPublicEvents(ctx context.Context, username string) ([]models.Event, error) {
	if s.eventsErr != nil {
		return nil, s.eventsErr
	}
	return s.events, nil
}

func (s *stubGitHub) ListLanguages(ctx context.Context, owner, repo string) (map[string]int, error) {
	full := owner + "/" + repo
	if err, ok := s.languagesErr[full]; ok {
		return nil, err
	}
	return s.languages[full], nil
}

func (s *stubGitHub) ContributionTotals(ctx context.Context, username string, from, to time.Time) (*models.ActivityWindow, error) {
	if s.contributionsErr != nil {
		return nil, s.contributionsErr
	}
	return s.contributions, nil
}

// makeRepos builds n minimal repositories with sequential IDs.
func makeRepos(n int, offset int64) []models.Repository {
	repos := make([]models.Repository, n)
	for i := range repos {
		repos[i] = models.Repository{
			ID:       offset + int64(i),
			Name:     "repo",
			FullName: "someone/repo",
		}
	}
	return repos
}
