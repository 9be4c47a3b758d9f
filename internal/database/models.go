package database

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisRecord is a stored readability analysis. Score and Level are
// nil when the text yielded no scorable sentence.
type AnalysisRecord struct {
	ID            string    `json:"id" db:"id"`
	TextDigest    string    `json:"text_digest" db:"text_digest"`
	SentenceCount int       `json:"sentence_count" db:"sentence_count"`
	WordCount     int       `json:"word_count" db:"word_count"`
	Score         *float64  `json:"score" db:"score"`
	Level         *int      `json:"level" db:"level"`
	Features      string    `json:"-" db:"features"`
	IPAddress     string    `json:"-" db:"ip_address"`
	UserAgent     string    `json:"-" db:"user_agent"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// NewAnalysisRecord creates an analysis record with a generated ID
func NewAnalysisRecord(textDigest string, sentenceCount, wordCount int, score *float64, level *int, features, ipAddress, userAgent string) *AnalysisRecord {
	return &AnalysisRecord{
		ID:            uuid.New().String(),
		TextDigest:    textDigest,
		SentenceCount: sentenceCount,
		WordCount:     wordCount,
		Score:         score,
		Level:         level,
		Features:      features,
		IPAddress:     ipAddress,
		UserAgent:     userAgent,
		CreatedAt:     time.Now(),
	}
}

// Summary is the history view of a record, without the features blob
type Summary struct {
	ID            string    `json:"id"`
	TextDigest    string    `json:"text_digest"`
	SentenceCount int       `json:"sentence_count"`
	WordCount     int       `json:"word_count"`
	Score         *float64  `json:"score"`
	Level         *int      `json:"level"`
	CreatedAt     time.Time `json:"created_at"`
}

// Summarize strips the stored features blob and client fields
func (r *AnalysisRecord) Summarize() Summary {
	return Summary{
		ID:            r.ID,
		TextDigest:    r.TextDigest,
		SentenceCount: r.SentenceCount,
		WordCount:     r.WordCount,
		Score:         r.Score,
		Level:         r.Level,
		CreatedAt:     r.CreatedAt,
	}
}
