package question

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthlens/healthlens/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type questionRepoPG struct{ pool *pgxpool.Pool }

func NewQuestionRepoPG(pool *pgxpool.Pool) QuestionRepository {
	return &questionRepoPG{pool: pool}
}

func (r *questionRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const questionCols = `id, title, content, analysis_summary, slicer_dicer_query,
	screenshot_path, department_id, created_at, updated_at`

func (r *questionRepoPG) scanQuestion(row pgx.Row) (*Question, error) {
	var q Question
	err := row.Scan(&q.ID, &q.Title, &q.Content, &q.AnalysisSummary,
		&q.SlicerDicerQuery, &q.ScreenshotPath, &q.DepartmentID,
		&q.CreatedAt, &q.UpdatedAt)
	return &q, err
}

func (r *questionRepoPG) Create(ctx context.Context, q *Question, tagIDs []uuid.UUID) error {
	q.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO questions (id, title, content, analysis_summary, slicer_dicer_query, department_id)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		q.ID, q.Title, q.Content, q.AnalysisSummary, q.SlicerDicerQuery, q.DepartmentID)
	if err != nil {
		return err
	}
	return r.linkTags(ctx, q.ID, tagIDs)
}

func (r *questionRepoPG) linkTags(ctx context.Context, questionID uuid.UUID, tagIDs []uuid.UUID) error {
	for _, tagID := range tagIDs {
		_, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO question_tags (question_id, tag_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`,
			questionID, tagID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *questionRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Question, error) {
	return r.scanQuestion(r.conn(ctx).QueryRow(ctx,
		`SELECT `+questionCols+` FROM questions WHERE id = $1`, id))
}

func (r *questionRepoPG) Update(ctx context.Context, q *Question) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE questions
		SET title=$2, content=$3, analysis_summary=$4, slicer_dicer_query=$5,
		    department_id=$6, updated_at=NOW()
		WHERE id = $1`,
		q.ID, q.Title, q.Content, q.AnalysisSummary, q.SlicerDicerQuery, q.DepartmentID)
	return err
}

func (r *questionRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	return err
}

func (r *questionRepoPG) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Question, int, error) {
	where := ` WHERE 1=1`
	var args []interface{}
	if f.DepartmentID != nil {
		args = append(args, *f.DepartmentID)
		where += fmt.Sprintf(" AND q.department_id = $%d", len(args))
	}
	if f.TagID != nil {
		args = append(args, *f.TagID)
		where += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM question_tags qt
			WHERE qt.question_id = q.id AND qt.tag_id = $%d)`, len(args))
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM questions q`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT q.id, q.title, q.content, q.analysis_summary, q.slicer_dicer_query,
		       q.screenshot_path, q.department_id, q.created_at, q.updated_at
		FROM questions q`+where+fmt.Sprintf(`
		ORDER BY q.created_at DESC
		LIMIT $%d OFFSET $%d`, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Question
	for rows.Next() {
		q, err := r.scanQuestion(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, q)
	}
	return items, total, rows.Err()
}

func (r *questionRepoPG) ReplaceTagLinks(ctx context.Context, questionID uuid.UUID, tagIDs []uuid.UUID) error {
	if _, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM question_tags WHERE question_id = $1`, questionID); err != nil {
		return err
	}
	return r.linkTags(ctx, questionID, tagIDs)
}

func (r *questionRepoPG) SetScreenshotPath(ctx context.Context, id uuid.UUID, path string) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE questions SET screenshot_path=$2, updated_at=NOW()
		WHERE id = $1`, id, path)
	return err
}

func (r *questionRepoPG) ListContents(ctx context.Context) ([]Content, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT id, content FROM questions`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Content
	for rows.Next() {
		var c Content
		if err := rows.Scan(&c.ID, &c.Content); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (r *questionRepoPG) ReplaceRelated(ctx context.Context, sourceID uuid.UUID, relations []*RelatedQuestion) error {
	if _, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM related_questions WHERE source_question_id = $1`, sourceID); err != nil {
		return err
	}
	for _, rel := range relations {
		_, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO related_questions (source_question_id, target_question_id, similarity_score, rank, relationship_type)
			VALUES ($1, $2, $3, $4, $5)`,
			sourceID, rel.TargetQuestionID, rel.SimilarityScore, rel.Rank, rel.RelationshipType)
		if err != nil {
			return err
		}
	}
	return nil
}

// ListRelated returns rows in ranker order. Rows of one refresh share
// a created_at, so rank is the only column that reproduces it.
func (r *questionRepoPG) ListRelated(ctx context.Context, sourceID uuid.UUID) ([]*RelatedQuestion, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT source_question_id, target_question_id, similarity_score, rank, relationship_type, created_at
		FROM related_questions
		WHERE source_question_id = $1
		ORDER BY rank`, sourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*RelatedQuestion
	for rows.Next() {
		var rel RelatedQuestion
		if err := rows.Scan(&rel.SourceQuestionID, &rel.TargetQuestionID,
			&rel.SimilarityScore, &rel.Rank, &rel.RelationshipType, &rel.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &rel)
	}
	return items, rows.Err()
}
