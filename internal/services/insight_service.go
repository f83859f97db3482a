package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gitprofile/insight/internal/models"
	"github.com/gitprofile/insight/internal/repositories"
	"github.com/gitprofile/insight/pkg/logger"
)

// ErrInvalidAggregate is returned when the caller posts an aggregate
// without the fields the prompt needs.
var ErrInvalidAggregate = errors.New("aggregate must include profile and repos")

// maxPromptRepos bounds how many repositories the prompt summarizes.
const maxPromptRepos = 10

// promptTemplate instructs the model to emit the fixed markdown contract
// the extractor parses. The heading names here and in the extractor must
// stay in sync.
const promptTemplate = `You are a Senior Open Source Maintainer, Tech Recruiter, and Career Mentor.
You are known for being brutally honest but highly practical.

Analyze a COMPLETE GitHub PROFILE (not a single repository).

Return MARKDOWN in the EXACT structure below.
Do NOT add extra headings.
Do NOT rename any section.
Do NOT include emojis.

---

## Overall Verdict
Give a concise, honest summary of this GitHub profile.
Mention:
- How this profile looks in a 30-second recruiter scan
- The biggest strength and biggest weakness
- Level: (Beginner / Junior / Intermediate / Strong / Hire-Ready)

## Health Scores (0-10)
Consistency:
Project Quality:
Open Source:
Documentation:
Personal Branding:
Hiring Readiness:

## What Is Missing
Use bullet points.

## 30-Day Improvement Plan
Week-by-week plan with exact GitHub actions.

## Recruiter Perspective
- Would you shortlist this profile today?
- For what role?
- ONE change that increases hiring chances most

---

GitHub Profile Data:
`

// InsightService turns an aggregate into a structured hiring-readiness
// assessment by prompting the model collaborator and extracting its
// response. The stored record is a server-side history; the pipeline never
// depends on it existing.
type InsightService struct {
	generator   ContentGenerator
	extractor   *InsightExtractor
	insightRepo *repositories.InsightRepository
}

// NewInsightService creates a new InsightService. The repository may be nil
// when persistence is disabled.
func NewInsightService(generator ContentGenerator, extractor *InsightExtractor, insightRepo *repositories.InsightRepository) *InsightService {
	return &InsightService{
		generator:   generator,
		extractor:   extractor,
		insightRepo: insightRepo,
	}
}

// Analyze prompts the model with the aggregate and extracts the structured
// result. A storage failure is logged but never fails the analysis.
func (s *InsightService) Analyze(ctx context.Context, aggregate *models.AggregateResult) (*models.Insight, error) {
	if aggregate == nil || aggregate.Profile == nil || aggregate.Repos == nil {
		return nil, ErrInvalidAggregate
	}

	prompt := BuildPrompt(aggregate)

	response, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	insight := s.extractor.Extract(response)

	if s.insightRepo != nil {
		if _, err := s.insightRepo.Upsert(aggregate.Profile.Username, &insight); err != nil {
			logger.WithError(err).WithField("username", aggregate.Profile.Username).
				Warn("failed to store insight")
		}
	}

	return &insight, nil
}

// BuildPrompt renders the fixed prompt template with the aggregate's
// profile, PR, activity and repository summaries.
func BuildPrompt(aggregate *models.AggregateResult) string {
	var builder strings.Builder
	builder.WriteString(promptTemplate)

	profile := aggregate.Profile
	fmt.Fprintf(&builder, "Username: %s\n", profile.Username)
	fmt.Fprintf(&builder, "Followers: %d\n", profile.Followers)
	fmt.Fprintf(&builder, "Following: %d\n", profile.Following)
	fmt.Fprintf(&builder, "Public Repos: %d\n", profile.PublicRepos)

	builder.WriteString("\nPull Requests:\n")
	fmt.Fprintf(&builder, "Open: %d\n", aggregate.PullRequests.Open)
	fmt.Fprintf(&builder, "Merged: %d\n", aggregate.PullRequests.Merged)

	builder.WriteString("\nRecent Activity:\n")
	fmt.Fprintf(&builder, "Commits: %d\n", aggregate.Activity.Commits)
	fmt.Fprintf(&builder, "Active Repos: %d\n", aggregate.Activity.ActiveRepositories)

	builder.WriteString("\nRepositories Summary:\n")
	repos := aggregate.Repos
	if len(repos) > maxPromptRepos {
		repos = repos[:maxPromptRepos]
	}
	for _, repo := range repos {
		description := "No description"
		if repo.Description != nil && *repo.Description != "" {
			description = *repo.Description
		}
		fmt.Fprintf(&builder, "- %s: %d stars, %d forks, %s\n", repo.Name, repo.Stars, repo.Forks, description)
	}

	return builder.String()
}
