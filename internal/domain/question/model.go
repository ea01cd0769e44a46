package question

import (
	"time"

	"github.com/google/uuid"

	"github.com/healthlens/healthlens/internal/domain/tag"
)

// Question is an analytics question raised by a department, together
// with the clinical concept tags extracted from its content.
type Question struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Title            string    `db:"title" json:"title"`
	Content          string    `db:"content" json:"content"`
	AnalysisSummary  string    `db:"analysis_summary" json:"analysis_summary"`
	SlicerDicerQuery *string   `db:"slicer_dicer_query" json:"slicer_dicer_query,omitempty"`
	ScreenshotPath   *string   `db:"screenshot_path" json:"screenshot_path,omitempty"`
	DepartmentID     uuid.UUID `db:"department_id" json:"department_id"`
	Tags             []tag.Tag `db:"-" json:"tags"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// RelatedQuestion is a derived similarity edge between two questions.
// Rows are regenerated wholesale on refresh, never edited in place.
// Rank records the ranker's position: rows of one refresh share a
// created_at, so it is the only stable read-back order for ties.
type RelatedQuestion struct {
	SourceQuestionID uuid.UUID `db:"source_question_id" json:"source_question_id"`
	TargetQuestionID uuid.UUID `db:"target_question_id" json:"target_question_id"`
	SimilarityScore  int       `db:"similarity_score" json:"similarity_score"`
	Rank             int       `db:"rank" json:"rank"`
	RelationshipType string    `db:"relationship_type" json:"relationship_type"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// Content pairs a question id with its text for similarity ranking.
type Content struct {
	ID      uuid.UUID
	Content string
}
