package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gitprofile/insight/internal/models"
	"github.com/gitprofile/insight/pkg/config"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// GitHub is the upstream surface consumed by the aggregation services.
// Every method classifies failures into the models error taxonomy so each
// caller can apply its own failure policy.
type GitHub interface {
	GetUser(ctx context.Context, username string) (*models.Profile, models.RateInfo, error)
	ListRepoPage(ctx context.Context, username string, page, perPage int) ([]models.Repository, error)
	CountPRs(ctx context.Context, query string) (int, error)
	ListPublicEvents(ctx context.Context, username string) ([]models.Event, error)
	ListLanguages(ctx context.Context, owner, repo string) (map[string]int, error)
	ContributionTotals(ctx context.Context, username string, from, to time.Time) (*models.ActivityWindow, error)
}

// GitHubClient wraps the go-github client plus a raw HTTP client for the
// GraphQL endpoint. It never retries and never logs business data.
type GitHubClient struct {
	gh         *github.Client
	httpClient *http.Client
	graphqlURL string
	token      string
}

// NewGitHubClient builds an authenticated client from configuration.
// Without a token the client still works against public endpoints, at the
// unauthenticated quota.
func NewGitHubClient(cfg config.GitHubConfig) (*GitHubClient, error) {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	if cfg.Token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.Background(), src)
		httpClient.Timeout = 30 * time.Second
	}

	client := github.NewClient(httpClient)
	if cfg.BaseURL != "" && cfg.BaseURL != "https://api.github.com" {
		baseURL, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid github base url: %w", err)
		}
		client.BaseURL = baseURL
	}

	return &GitHubClient{
		gh:         client,
		httpClient: httpClient,
		graphqlURL: cfg.GraphQLURL,
		token:      cfg.Token,
	}, nil
}

// GetUser fetches a user profile snapshot together with the residual
// rate-limit quota observed on the call.
func (c *GitHubClient) GetUser(ctx context.Context, username string) (*models.Profile, models.RateInfo, error) {
	user, resp, err := c.gh.Users.Get(ctx, username)
	if err != nil {
		return nil, models.RateInfo{}, classifyError(err)
	}

	return convertUser(user), rateInfo(resp), nil
}

// ListRepoPage fetches one page of the user's repositories sorted by
// update time. Forks are included here; filtering is the fetcher's job.
func (c *GitHubClient) ListRepoPage(ctx context.Context, username string, page, perPage int) ([]models.Repository, error) {
	opts := &github.RepositoryListOptions{
		Sort: "updated",
		ListOptions: github.ListOptions{
			Page:    page,
			PerPage: perPage,
		},
	}

	repos, _, err := c.gh.Repositories.List(ctx, username, opts)
	if err != nil {
		return nil, classifyError(err)
	}

	converted := make([]models.Repository, 0, len(repos))
	for _, repo := range repos {
		converted = append(converted, convertRepository(repo))
	}
	return converted, nil
}

// CountPRs runs an issue search and returns only its total count.
func (c *GitHubClient) CountPRs(ctx context.Context, query string) (int, error) {
	opts := &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: 1},
	}

	result, _, err := c.gh.Search.Issues(ctx, query, opts)
	if err != nil {
		return 0, classifyError(err)
	}
	if result == nil || result.Total == nil {
		return 0, models.ErrMalformed
	}

	return result.GetTotal(), nil
}

// ListPublicEvents fetches the user's public event timeline (one page,
// which is all GitHub exposes at per_page 100).
func (c *GitHubClient) ListPublicEvents(ctx context.Context, username string) ([]models.Event, error) {
	opts := &github.ListOptions{PerPage: 100}

	events, _, err := c.gh.Activity.ListEventsPerformedByUser(ctx, username, true, opts)
	if err != nil {
		return nil, classifyError(err)
	}

	converted := make([]models.Event, 0, len(events))
	for _, event := range events {
		converted = append(converted, convertEvent(event))
	}
	return converted, nil
}

// ListLanguages fetches byte counts per language for one repository.
func (c *GitHubClient) ListLanguages(ctx context.Context, owner, repo string) (map[string]int, error) {
	languages, _, err := c.gh.Repositories.ListLanguages(ctx, owner, repo)
	if err != nil {
		return nil, classifyError(err)
	}
	return languages, nil
}

const contributionsQuery = `query($login: String!, $from: DateTime!, $to: DateTime!) {
  user(login: $login) {
    contributionsCollection(from: $from, to: $to) {
      totalCommitContributions
      totalPullRequestContributions
      totalIssueContributions
      commitContributionsByRepository(maxRepositories: 100) {
        repository { nameWithOwner }
      }
    }
  }
}`

// ContributionTotals queries the GraphQL contributions collection for the
// given window. Unlike the capped event feed this source is exact.
func (c *GitHubClient) ContributionTotals(ctx context.Context, username string, from, to time.Time) (*models.ActivityWindow, error) {
	payload := map[string]interface{}{
		"query": contributionsQuery,
		"variables": map[string]string{
			"login": username,
			"from":  from.UTC().Format(time.RFC3339),
			"to":    to.UTC().Format(time.RFC3339),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal graphql query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graphql request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, models.ErrForbidden
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("graphql status %d", resp.StatusCode)
	}

	var result struct {
		Data struct {
			User *struct {
				ContributionsCollection struct {
					TotalCommitContributions      int `json:"totalCommitContributions"`
					TotalPullRequestContributions int `json:"totalPullRequestContributions"`
					TotalIssueContributions       int `json:"totalIssueContributions"`
					CommitContributionsByRepository []struct {
						Repository struct {
							NameWithOwner string `json:"nameWithOwner"`
						} `json:"repository"`
					} `json:"commitContributionsByRepository"`
				} `json:"contributionsCollection"`
			} `json:"user"`
		} `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, models.ErrMalformed
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("graphql: %s", result.Errors[0].Message)
	}
	if result.Data.User == nil {
		return nil, models.ErrNotFound
	}

	collection := result.Data.User.ContributionsCollection
	return &models.ActivityWindow{
		Commits:            collection.TotalCommitContributions,
		PullRequests:       collection.TotalPullRequestContributions,
		Issues:             collection.TotalIssueContributions,
		ActiveRepositories: len(collection.CommitContributionsByRepository),
	}, nil
}

// classifyError maps go-github errors onto the models taxonomy. An HTTP 403
// with an exhausted quota surfaces as rate-limited; any other 403 is
// forbidden. A body that fails structured parsing is malformed regardless
// of status code.
func classifyError(err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &models.RateLimitedError{ResetAt: rateErr.Rate.Reset.Time}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &models.RateLimitedError{ResetAt: time.Now().Add(abuseErr.GetRetryAfter())}
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusNotFound:
			return models.ErrNotFound
		case http.StatusForbidden:
			return models.ErrForbidden
		}
		return fmt.Errorf("github status %d: %w", respErr.Response.StatusCode, err)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return models.ErrMalformed
	}

	return fmt.Errorf("github request: %w", err)
}

func rateInfo(resp *github.Response) models.RateInfo {
	if resp == nil {
		return models.RateInfo{}
	}
	return models.RateInfo{
		Remaining: resp.Rate.Remaining,
		ResetAt:   resp.Rate.Reset.Time,
	}
}

func convertUser(user *github.User) *models.Profile {
	return &models.Profile{
		ID:              user.GetID(),
		Username:        user.GetLogin(),
		Name:            user.Name,
		Bio:             user.Bio,
		AvatarURL:       user.GetAvatarURL(),
		Company:         user.Company,
		Blog:            user.Blog,
		Location:        user.Location,
		Email:           user.Email,
		TwitterUsername: user.TwitterUsername,
		Followers:       user.GetFollowers(),
		Following:       user.GetFollowing(),
		PublicRepos:     user.GetPublicRepos(),
		PublicGists:     user.GetPublicGists(),
		CreatedAt:       timestampPtr(user.CreatedAt),
		UpdatedAt:       timestampPtr(user.UpdatedAt),
		ProfileURL:      user.GetHTMLURL(),
	}
}

func convertRepository(repo *github.Repository) models.Repository {
	converted := models.Repository{
		ID:            repo.GetID(),
		Name:          repo.GetName(),
		FullName:      repo.GetFullName(),
		Description:   repo.Description,
		URL:           repo.GetHTMLURL(),
		Stars:         repo.GetStargazersCount(),
		Forks:         repo.GetForksCount(),
		Watchers:      repo.GetWatchersCount(),
		Language:      repo.Language,
		IsPrivate:     repo.GetPrivate(),
		IsArchived:    repo.GetArchived(),
		IsFork:        repo.GetFork(),
		CreatedAt:     timestampPtr(repo.CreatedAt),
		UpdatedAt:     timestampPtr(repo.UpdatedAt),
		PushedAt:      timestampPtr(repo.PushedAt),
		DefaultBranch: repo.DefaultBranch,
		OpenIssues:    repo.GetOpenIssuesCount(),
		Topics:        repo.Topics,
		Homepage:      repo.Homepage,
	}
	if license := repo.GetLicense(); license != nil {
		converted.License = license.Name
	}
	return converted
}

func convertEvent(event *github.Event) models.Event {
	converted := models.Event{
		Type:      event.GetType(),
		RepoName:  event.GetRepo().GetName(),
		CreatedAt: event.GetCreatedAt().Time,
	}

	payload, err := event.ParsePayload()
	if err != nil {
		return converted
	}

	switch p := payload.(type) {
	case *github.PushEvent:
		converted.Commits = len(p.Commits)
	case *github.PullRequestEvent:
		converted.Action = p.GetAction()
	case *github.IssuesEvent:
		converted.Action = p.GetAction()
	}

	return converted
}

func timestampPtr(ts *github.Timestamp) *time.Time {
	if ts == nil {
		return nil
	}
	t := ts.Time
	return &t
}
