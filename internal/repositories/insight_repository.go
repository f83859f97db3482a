package repositories

import (
	"database/sql"
	"errors"
	"time"

	"github.com/gitprofile/insight/internal/models"
	"github.com/google/uuid"
)

type InsightRepository struct {
	db *sql.DB
}

func NewInsightRepository(db *sql.DB) *InsightRepository {
	return &InsightRepository{
		db: db,
	}
}

// Upsert stores the insight for a username, replacing any previous
// analysis. A re-analysis always produces a fresh record.
func (r *InsightRepository) Upsert(username string, insight *models.Insight) (*models.InsightRecord, error) {
	record := &models.InsightRecord{
		ID:        uuid.New().String(),
		Username:  username,
		Insight:   *insight,
		CreatedAt: time.Now(),
	}

	query := `
		INSERT INTO insights (id, username, level, summary, consistency, project_quality,
			open_source, documentation, branding, hiring_readiness, missing, plan, recruiter, raw, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET
			id = excluded.id,
			level = excluded.level,
			summary = excluded.summary,
			consistency = excluded.consistency,
			project_quality = excluded.project_quality,
			open_source = excluded.open_source,
			documentation = excluded.documentation,
			branding = excluded.branding,
			hiring_readiness = excluded.hiring_readiness,
			missing = excluded.missing,
			plan = excluded.plan,
			recruiter = excluded.recruiter,
			raw = excluded.raw,
			created_at = excluded.created_at
	`

	_, err := r.db.Exec(query,
		record.ID,
		record.Username,
		string(insight.Verdict.Level),
		insight.Verdict.Summary,
		insight.Scores.Consistency,
		insight.Scores.ProjectQuality,
		insight.Scores.OpenSource,
		insight.Scores.Documentation,
		insight.Scores.Branding,
		insight.Scores.HiringReadiness,
		insight.Missing,
		insight.Plan,
		insight.Recruiter,
		insight.Raw,
		record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return record, nil
}

// GetByUsername retrieves the stored insight for a username, or nil when
// none exists.
func (r *InsightRepository) GetByUsername(username string) (*models.InsightRecord, error) {
	query := `
		SELECT id, username, level, summary, consistency, project_quality,
			open_source, documentation, branding, hiring_readiness, missing, plan, recruiter, raw, created_at
		FROM insights WHERE username = ?
	`

	var record models.InsightRecord
	var level string
	err := r.db.QueryRow(query, username).Scan(
		&record.ID,
		&record.Username,
		&level,
		&record.Insight.Verdict.Summary,
		&record.Insight.Scores.Consistency,
		&record.Insight.Scores.ProjectQuality,
		&record.Insight.Scores.OpenSource,
		&record.Insight.Scores.Documentation,
		&record.Insight.Scores.Branding,
		&record.Insight.Scores.HiringReadiness,
		&record.Insight.Missing,
		&record.Insight.Plan,
		&record.Insight.Recruiter,
		&record.Insight.Raw,
		&record.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	record.Insight.Verdict.Level = models.InsightLevel(level)
	return &record, nil
}

// DeleteOlderThan removes insight records created before the cutoff and
// returns how many were deleted.
func (r *InsightRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM insights WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
