package services

import (
	"context"
	"errors"
	"testing"

	"github.com/gitprofile/insight/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPercentages(t *testing.T) {
	testCases := []struct {
		name     string
		bytes    map[string]int64
		expected map[string]int
	}{
		{
			name:     "simple split",
			bytes:    map[string]int64{"JavaScript": 300, "Go": 700},
			expected: map[string]int{"JavaScript": 30, "Go": 70},
		},
		{
			name:     "empty mapping",
			bytes:    map[string]int64{},
			expected: map[string]int{},
		},
		{
			name:     "zero bytes do not divide by zero",
			bytes:    map[string]int64{"Go": 0},
			expected: map[string]int{},
		},
		{
			name:     "single language",
			bytes:    map[string]int64{"Rust": 12345},
			expected: map[string]int{"Rust": 100},
		},
		{
			name:  "rounding residual lands on the largest bucket",
			bytes: map[string]int64{"Go": 334, "Python": 333, "Ruby": 333},
			// naive rounding gives 33+33+33 = 99
			expected: map[string]int{"Go": 34, "Python": 33, "Ruby": 33},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ToPercentages(tc.bytes))
		})
	}
}

func TestToPercentagesAlwaysSumsToHundred(t *testing.T) {
	inputs := []map[string]int64{
		{"a": 1, "b": 1, "c": 1},
		{"a": 997, "b": 2, "c": 1},
		{"a": 1, "b": 2, "c": 3, "d": 4, "e": 5, "f": 6, "g": 7},
		{"a": 123456789, "b": 987654321, "c": 55555},
	}

	for _, bytes := range inputs {
		percentages := ToPercentages(bytes)
		sum := 0
		for _, pct := range percentages {
			sum += pct
		}
		assert.Equal(t, 100, sum, "input %v", bytes)
	}
}

func TestAggregateSumsAcrossRepos(t *testing.T) {
	github := &stubGitHub{
		repoPages: map[int][]models.Repository{
			1: {
				{ID: 1, Name: "a", FullName: "someone/a"},
				{ID: 2, Name: "b", FullName: "someone/b"},
			},
		},
		languages: map[string]map[string]int{
			"someone/a": {"Go": 600, "JavaScript": 100},
			"someone/b": {"Go": 100, "JavaScript": 200},
		},
	}
	service := NewTechStackService(github, NewRepoService(github, 100, 100))

	techStack, err := service.Aggregate(context.Background(), "someone")

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Go": 70, "JavaScript": 30}, techStack)
}

func TestAggregateSkipsArchivedAndForks(t *testing.T) {
	github := &stubGitHub{
		repoPages: map[int][]models.Repository{
			1: {
				{ID: 1, Name: "active", FullName: "someone/active"},
				{ID: 2, Name: "old", FullName: "someone/old", IsArchived: true},
				{ID: 3, Name: "copy", FullName: "someone/copy", IsFork: true},
			},
		},
		languages: map[string]map[string]int{
			"someone/active": {"Go": 100},
			"someone/old":    {"Perl": 900},
			"someone/copy":   {"C": 900},
		},
	}
	service := NewTechStackService(github, NewRepoService(github, 100, 100))

	techStack, err := service.Aggregate(context.Background(), "someone")

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Go": 100}, techStack)
}

func TestAggregateSkipsFailedRepos(t *testing.T) {
	github := &stubGitHub{
		repoPages: map[int][]models.Repository{
			1: {
				{ID: 1, Name: "a", FullName: "someone/a"},
				{ID: 2, Name: "b", FullName: "someone/b"},
			},
		},
		languages: map[string]map[string]int{
			"someone/a": {"Go": 500},
		},
		languagesErr: map[string]error{
			"someone/b": errors.New("boom"),
		},
	}
	service := NewTechStackService(github, NewRepoService(github, 100, 100))

	techStack, err := service.Aggregate(context.Background(), "someone")

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Go": 100}, techStack)
}

func TestAggregateInvalidUsername(t *testing.T) {
	service := NewTechStackService(&stubGitHub{}, NewRepoService(&stubGitHub{}, 100, 100))

	_, err := service.Aggregate(context.Background(), "bad name")

	assert.ErrorIs(t, err, models.ErrInvalidUsername)
}
