package services

import (
	"context"
	"math"
	"sync"

	"github.com/gitprofile/insight/internal/models"
	"github.com/gitprofile/insight/pkg/logger"
)

// maxLanguageFetchers bounds the per-repository language fan-out.
const maxLanguageFetchers = 10

// TechStackService aggregates per-repository language byte counts into a
// percentage distribution.
type TechStackService struct {
	github GitHub
	repos  *RepoService
}

// NewTechStackService creates a new TechStackService.
func NewTechStackService(github GitHub, repos *RepoService) *TechStackService {
	return &TechStackService{github: github, repos: repos}
}

// Aggregate fetches language bytes for every non-archived, non-fork
// repository (bounded by the repo cap) and converts the byte totals into
// percentages summing to exactly 100. Per-repository failures are skipped.
func (s *TechStackService) Aggregate(ctx context.Context, rawUsername string) (map[string]int, error) {
	username, err := models.NormalizeUsername(rawUsername)
	if err != nil {
		return nil, err
	}

	repos := s.repos.Normalize(s.repos.FetchAll(ctx, username))

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		bytes = make(map[string]int64)
		sem   = make(chan struct{}, maxLanguageFetchers)
	)

	for _, repo := range repos {
		if repo.IsArchived {
			continue
		}

		wg.Add(1)
		go func(repo models.Repository) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			languages, err := s.github.ListLanguages(ctx, repo.Owner(), repo.Name)
			if err != nil {
				logger.WithError(err).WithField("repo", repo.FullName).
					Warn("language fetch failed, skipping repository")
				return
			}

			mu.Lock()
			for language, count := range languages {
				bytes[language] += int64(count)
			}
			mu.Unlock()
		}(repo)
	}

	wg.Wait()

	return ToPercentages(bytes), nil
}

// ToPercentages converts byte totals into integer percentages summing to
// exactly 100. Each bucket is rounded, then the residual is folded into the
// largest bucket since naive per-language rounding can sum to 99 or 101.
// An empty or all-zero mapping yields an empty result.
func ToPercentages(bytes map[string]int64) map[string]int {
	var total int64
	for _, count := range bytes {
		total += count
	}

	percentages := make(map[string]int)
	if total == 0 {
		return percentages
	}

	sum := 0
	largest := ""
	var largestBytes int64 = -1
	for language, count := range bytes {
		pct := int(math.Round(float64(count) / float64(total) * 100))
		percentages[language] = pct
		sum += pct
		if count > largestBytes {
			largestBytes = count
			largest = language
		}
	}

	if sum != 100 {
		percentages[largest] += 100 - sum
	}

	return percentages
}
