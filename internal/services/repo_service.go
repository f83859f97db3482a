package services

import (
	"context"
	"sort"

	"github.com/gitprofile/insight/internal/models"
	"github.com/gitprofile/insight/pkg/logger"
)

// RepoService pages through a user's repositories up to a hard cap and
// normalizes the result for the aggregate.
type RepoService struct {
	github       GitHub
	repoCap      int
	reposPerPage int
}

// NewRepoService creates a new RepoService. The cap bounds total work for
// pathological accounts with thousands of repositories.
func NewRepoService(github GitHub, repoCap, reposPerPage int) *RepoService {
	return &RepoService{
		github:       github,
		repoCap:      repoCap,
		reposPerPage: reposPerPage,
	}
}

// FetchAll retrieves up to the configured cap of the user's repositories.
// Any non-Ok page fetch stops pagination and returns what was accumulated
// so far; there is no partial-page retry.
func (s *RepoService) FetchAll(ctx context.Context, username string) []models.Repository {
	var repos []models.Repository

	page := 1
	for len(repos) < s.repoCap {
		pageRepos, err := s.github.ListRepoPage(ctx, username, page, s.reposPerPage)
		if err != nil {
			logger.WithError(err).WithField("username", username).
				Warn("repo pagination stopped early")
			break
		}

		repos = append(repos, pageRepos...)
		if len(pageRepos) < s.reposPerPage {
			break
		}
		page++
	}

	if len(repos) > s.repoCap {
		repos = repos[:s.repoCap]
	}

	return repos
}

// Normalize drops forks and orders by stars descending, then by update
// time descending. The exposed sequence never surfaces a fork.
func (s *RepoService) Normalize(repos []models.Repository) []models.Repository {
	normalized := make([]models.Repository, 0, len(repos))
	for _, repo := range repos {
		if repo.IsFork {
			continue
		}
		normalized = append(normalized, repo)
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		if normalized[i].Stars != normalized[j].Stars {
			return normalized[i].Stars > normalized[j].Stars
		}
		iUpdated := normalized[i].UpdatedAt
		jUpdated := normalized[j].UpdatedAt
		if iUpdated == nil || jUpdated == nil {
			return jUpdated == nil && iUpdated != nil
		}
		return iUpdated.After(*jUpdated)
	})

	return normalized
}
