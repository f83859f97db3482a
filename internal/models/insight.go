package models

import "time"

// InsightLevel is the overall hiring-readiness verdict extracted from the
// model response.
type InsightLevel string

const (
	LevelBeginner     InsightLevel = "Beginner"
	LevelJunior       InsightLevel = "Junior"
	LevelIntermediate InsightLevel = "Intermediate"
	LevelStrong       InsightLevel = "Strong"
	LevelHireReady    InsightLevel = "Hire-Ready"
	LevelUnknown      InsightLevel = "Unknown"
)

// InsightScores are the six 0-10 health scores from the model response.
// A score the model did not emit in the expected shape stays at zero.
type InsightScores struct {
	Consistency     int `json:"consistency"`
	ProjectQuality  int `json:"projectQuality"`
	OpenSource      int `json:"openSource"`
	Documentation   int `json:"documentation"`
	Branding        int `json:"branding"`
	HiringReadiness int `json:"hiringReadiness"`
}

// InsightVerdict pairs the extracted level with the verdict prose.
type InsightVerdict struct {
	Level   InsightLevel `json:"level"`
	Summary string       `json:"summary"`
}

// Insight is a structured hiring-readiness assessment extracted from one
// model response. It is created once per analysis and never mutated; a
// re-analysis produces a new Insight.
type Insight struct {
	Verdict   InsightVerdict `json:"verdict"`
	Scores    InsightScores  `json:"scores"`
	Missing   string         `json:"missing"`
	Plan      string         `json:"plan"`
	Recruiter string         `json:"recruiter"`
	Raw       string         `json:"raw"`
}

// InsightRecord is a stored Insight together with its subject and creation
// time, as persisted by the insight repository.
type InsightRecord struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Insight   Insight   `json:"insight"`
	CreatedAt time.Time `json:"created_at"`
}
