package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gitprofile/insight/internal/models"
	"github.com/gitprofile/insight/internal/services"
	"github.com/stretchr/testify/assert"
)

// fakeGitHub scripts the upstream surface for handler tests.
type fakeGitHub struct {
	profile    *models.Profile
	rate       models.RateInfo
	profileErr error
}

func (f *fakeGitHub) GetUser(ctx context.Context, username string) (*models.Profile, models.RateInfo, error) {
	if f.profileErr != nil {
		return nil, models.RateInfo{}, f.profileErr
	}
	return f.profile, f.rate, nil
}

func (f *fakeGitHub) ListRepoPage(ctx context.Context, username string, page, perPage int) ([]models.Repository, error) {
	return nil, nil
}

func (f *fakeGitHub) CountPRs(ctx context.Context, query string) (int, error) {
	return 0, nil
}

func (f *fakeGitHub) ListPublicEvents(ctx context.Context, username string) ([]models.Event, error) {
	return nil, nil
}

func (f *fakeGitHub) ListLanguages(ctx context.Context, owner, repo string) (map[string]int, error) {
	return nil, nil
}

func (f *fakeGitHub) ContributionTotals(ctx context.Context, username string, from, to time.Time) (*models.ActivityWindow, error) {
	return &models.ActivityWindow{}, nil
}

func newProfileRouter(github services.GitHub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	repos := services.NewRepoService(github, 100, 100)
	activity := services.NewActivityService(github, services.ActivitySourceEvents)
	profileService := services.NewProfileService(github, repos, activity)

	router := gin.New()
	router.POST("/api/profile", NewProfileHandler(profileService).Analyze)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestProfileEndpointSuccess(t *testing.T) {
	router := newProfileRouter(&fakeGitHub{
		profile: &models.Profile{ID: 1, Username: "someone"},
		rate:    models.RateInfo{Remaining: 4321, ResetAt: time.Now().Add(time.Hour)},
	})

	recorder := postJSON(router, "/api/profile", `{"username": "Someone"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "4321", recorder.Header().Get("X-RateLimit-Remaining"))
	assert.Contains(t, recorder.Body.String(), `"username":"someone"`)
}

func TestProfileEndpointInvalidBody(t *testing.T) {
	router := newProfileRouter(&fakeGitHub{})

	recorder := postJSON(router, "/api/profile", `{not json`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestProfileEndpointInvalidUsername(t *testing.T) {
	router := newProfileRouter(&fakeGitHub{})

	recorder := postJSON(router, "/api/profile", `{"username": "no spaces allowed"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestProfileEndpointStatusMapping(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", models.ErrNotFound, http.StatusNotFound},
		{"forbidden", models.ErrForbidden, http.StatusForbidden},
		{"malformed", models.ErrMalformed, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := newProfileRouter(&fakeGitHub{profileErr: tc.err})

			recorder := postJSON(router, "/api/profile", `{"username": "someone"}`)

			assert.Equal(t, tc.expected, recorder.Code)
		})
	}
}

func TestProfileEndpointRateLimited(t *testing.T) {
	reset := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	router := newProfileRouter(&fakeGitHub{
		profileErr: &models.RateLimitedError{ResetAt: reset},
	})

	recorder := postJSON(router, "/api/profile", `{"username": "someone"}`)

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "2026-09-01T10:00:00Z")
}
