package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gitprofile/insight/internal/models"
	"github.com/gitprofile/insight/pkg/logger"
)

// Section titles the model is instructed to emit. The extractor must not
// assume the model is obedient: headings may be missing, duplicated or
// reordered, and a missing section simply extracts as empty.
const (
	sectionVerdict   = "Overall Verdict"
	sectionScores    = "Health Scores"
	sectionMissing   = "What Is Missing"
	sectionPlan      = "30-Day Improvement Plan"
	sectionRecruiter = "Recruiter Perspective"
)

var (
	headingPattern = regexp.MustCompile(`(?m)^#{2,}\s+(.+?)\s*$`)
	levelPattern   = regexp.MustCompile(`(?i)\b(Beginner|Junior|Intermediate|Strong|Hire-Ready)\b`)

	canonicalLevels = map[string]models.InsightLevel{
		"beginner":     models.LevelBeginner,
		"junior":       models.LevelJunior,
		"intermediate": models.LevelIntermediate,
		"strong":       models.LevelStrong,
		"hire-ready":   models.LevelHireReady,
	}

	scoreLabels = []struct {
		label   string
		pattern *regexp.Regexp
	}{
		{"Consistency", scorePattern("Consistency")},
		{"Project Quality", scorePattern("Project Quality")},
		{"Open Source", scorePattern("Open Source")},
		{"Documentation", scorePattern("Documentation")},
		{"Personal Branding", scorePattern("Personal Branding")},
		{"Hiring Readiness", scorePattern("Hiring Readiness")},
	}
)

func scorePattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(label) + `\s*:\s*\**\s*(10|[0-9])\b`)
}

// InsightExtractor parses a free-text model response into named sections
// and a numeric score vector. Extraction is total: it never fails, and
// every shape mismatch falls back to a zero score or empty section.
type InsightExtractor struct{}

// NewInsightExtractor creates a new InsightExtractor.
func NewInsightExtractor() *InsightExtractor {
	return &InsightExtractor{}
}

// section holds one located heading and the text that follows it, up to the
// next heading or end of text.
type section struct {
	title   string
	content string
}

// Extract parses the model response. Re-running it on the same text yields
// the same result, and heading order does not affect the outcome (first
// match wins for duplicated headings).
func (e *InsightExtractor) Extract(text string) models.Insight {
	sections := scanSections(text)

	fallbacks := 0
	find := func(title string) string {
		for _, s := range sections {
			if strings.HasPrefix(strings.ToLower(s.title), strings.ToLower(title)) {
				return s.content
			}
		}
		fallbacks++
		return ""
	}

	verdict := find(sectionVerdict)
	scoresBlock := find(sectionScores)

	insight := models.Insight{
		Verdict: models.InsightVerdict{
			Level:   extractLevel(verdict),
			Summary: verdict,
		},
		Missing:   find(sectionMissing),
		Plan:      find(sectionPlan),
		Recruiter: find(sectionRecruiter),
		Raw:       text,
	}

	var scoreFallbacks int
	insight.Scores, scoreFallbacks = extractScores(scoresBlock)
	fallbacks += scoreFallbacks

	if insight.Verdict.Level == models.LevelUnknown {
		fallbacks++
	}

	// Fallbacks indicate the model drifted from the output contract.
	if fallbacks > 0 {
		logger.WithField("fallbacks", fallbacks).Warn("insight extraction used defaults")
	}

	return insight
}

// scanSections locates every markdown heading in order, then slices the
// content between consecutive headings. Two passes keep the extraction
// linear and heading-order-independent.
func scanSections(text string) []section {
	matches := headingPattern.FindAllStringSubmatchIndex(text, -1)

	sections := make([]section, 0, len(matches))
	for i, match := range matches {
		contentStart := match[1]
		contentEnd := len(text)
		if i+1 < len(matches) {
			contentEnd = matches[i+1][0]
		}

		sections = append(sections, section{
			title:   text[match[2]:match[3]],
			content: strings.TrimSpace(text[contentStart:contentEnd]),
		})
	}
	return sections
}

// extractScores pulls the six labeled 0-10 integers out of the scores
// block. A missing or unparsable score defaults to 0; scores are never
// inferred from surrounding prose.
func extractScores(block string) (models.InsightScores, int) {
	values := make([]int, len(scoreLabels))
	fallbacks := 0
	for i, label := range scoreLabels {
		match := label.pattern.FindStringSubmatch(block)
		if match == nil {
			fallbacks++
			continue
		}
		value, err := strconv.Atoi(match[1])
		if err != nil {
			fallbacks++
			continue
		}
		values[i] = value
	}

	return models.InsightScores{
		Consistency:     values[0],
		ProjectQuality:  values[1],
		OpenSource:      values[2],
		Documentation:   values[3],
		Branding:        values[4],
		HiringReadiness: values[5],
	}, fallbacks
}

// extractLevel finds the first level token in the verdict text.
func extractLevel(verdict string) models.InsightLevel {
	match := levelPattern.FindString(verdict)
	if match == "" {
		return models.LevelUnknown
	}
	if level, ok := canonicalLevels[strings.ToLower(match)]; ok {
		return level
	}
	return models.LevelUnknown
}
