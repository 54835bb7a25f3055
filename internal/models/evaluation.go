package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type EvaluationStatus string

const (
	StatusCompleted EvaluationStatus = "completed"
	StatusFailed    EvaluationStatus = "failed"
)

// EvaluationRequest is one submission: the extracted résumé text and the pasted job description.
type EvaluationRequest struct {
	ResumeText     string
	JobDescription string
}

// EvaluationResult is the normalized model verdict. All three fields are always populated.
type EvaluationResult struct {
	MatchPercentage string   `json:"jd_match"`
	MissingKeywords []string `json:"missing_keywords"`
	ProfileSummary  string   `json:"profile_summary"`
}

// MissingKeywordsText renders the keyword list the way it is displayed.
func (r *EvaluationResult) MissingKeywordsText() string {
	return strings.Join(r.MissingKeywords, ", ")
}

// Evaluation is an optional history row. Résumé and job description text are never stored.
type Evaluation struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Status          EvaluationStatus `gorm:"not null" json:"status"`
	ErrorKind       *string          `gorm:"type:text" json:"error_kind,omitempty"`
	ErrorMessage    *string          `gorm:"type:text" json:"error_message,omitempty"`
	MatchPercentage *string          `gorm:"type:text" json:"jd_match,omitempty"`
	MissingKeywords []string         `gorm:"type:jsonb;serializer:json" json:"missing_keywords,omitempty"`
	ProfileSummary  *string          `gorm:"type:text" json:"profile_summary,omitempty"`
	ResumeChars     int              `json:"resume_chars"`
	JobDescChars    int              `json:"job_description_chars"`
	PageCount       int              `json:"page_count"`
	LatencyMs       int64            `json:"latency_ms"`
	CreatedAt       time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}
