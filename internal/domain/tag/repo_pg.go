package tag

import (
	"context"

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

type tagRepoPG struct{ pool *pgxpool.Pool }

func NewTagRepoPG(pool *pgxpool.Pool) TagRepository {
	return &tagRepoPG{pool: pool}
}

func (r *tagRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const tagCols = `id, name, concept_id, description, created_at, updated_at`

func (r *tagRepoPG) scanTag(row pgx.Row) (*Tag, error) {
	var t Tag
	err := row.Scan(&t.ID, &t.Name, &t.ConceptID, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

// Create is conflict tolerant on concept_id so a lost insert race does
// not abort the enclosing transaction.
func (r *tagRepoPG) Create(ctx context.Context, t *Tag) error {
	t.ID = uuid.New()
	ct, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO tags (id, name, concept_id, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (concept_id) DO NOTHING`,
		t.ID, t.Name, t.ConceptID, t.Description)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrConceptExists
	}
	return nil
}

func (r *tagRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Tag, error) {
	return r.scanTag(r.conn(ctx).QueryRow(ctx,
		`SELECT `+tagCols+` FROM tags WHERE id = $1`, id))
}

func (r *tagRepoPG) GetByConceptID(ctx context.Context, conceptID string) (*Tag, error) {
	return r.scanTag(r.conn(ctx).QueryRow(ctx,
		`SELECT `+tagCols+` FROM tags WHERE concept_id = $1`, conceptID))
}

func (r *tagRepoPG) List(ctx context.Context, limit, offset int) ([]*Tag, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM tags`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+tagCols+` FROM tags ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := r.collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *tagRepoPG) ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]*Tag, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT t.id, t.name, t.concept_id, t.description, t.created_at, t.updated_at
		FROM tags t
		JOIN question_tags qt ON qt.tag_id = t.id
		WHERE qt.question_id = $1
		ORDER BY t.name`, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *tagRepoPG) collect(rows pgx.Rows) ([]*Tag, error) {
	var items []*Tag
	for rows.Next() {
		t, err := r.scanTag(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}
