package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested analysis does not exist.
var ErrNotFound = errors.New("analysis not found")

// Repository handles database operations
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// SaveAnalysis persists an analysis record
func (r *Repository) SaveAnalysis(rec *AnalysisRecord) error {
	stmt, err := r.db.GetPreparedStatement("insert_analysis")
	if err != nil {
		return err
	}

	_, err = stmt.Exec(
		rec.ID, rec.TextDigest, rec.SentenceCount, rec.WordCount,
		nullableFloat(rec.Score), nullableInt(rec.Level),
		rec.Features, rec.IPAddress, rec.UserAgent, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	return nil
}

// GetAnalysis retrieves a stored analysis by ID
func (r *Repository) GetAnalysis(id string) (*AnalysisRecord, error) {
	stmt, err := r.db.GetPreparedStatement("get_analysis")
	if err != nil {
		return nil, err
	}

	rec, err := scanRecord(stmt.QueryRow(id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	return rec, nil
}

// RecentAnalyses returns the newest analyses, most recent first
func (r *Repository) RecentAnalyses(limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 20
	}

	stmt, err := r.db.GetPreparedStatement("recent_analyses")
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent analyses: %w", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		summaries = append(summaries, rec.Summarize())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}

	return summaries, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*AnalysisRecord, error) {
	var rec AnalysisRecord
	var score sql.NullFloat64
	var level sql.NullInt64
	var userAgent sql.NullString

	err := row.Scan(
		&rec.ID, &rec.TextDigest, &rec.SentenceCount, &rec.WordCount,
		&score, &level, &rec.Features, &rec.IPAddress, &userAgent, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if score.Valid {
		rec.Score = &score.Float64
	}
	if level.Valid {
		l := int(level.Int64)
		rec.Level = &l
	}
	rec.UserAgent = userAgent.String

	return &rec, nil
}

func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
