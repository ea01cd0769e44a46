package question

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows question listings. Nil fields match everything.
type ListFilter struct {
	DepartmentID *uuid.UUID
	TagID        *uuid.UUID
}

type QuestionRepository interface {
	Create(ctx context.Context, q *Question, tagIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Question, error)
	Update(ctx context.Context, q *Question) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f ListFilter, limit, offset int) ([]*Question, int, error)
	ReplaceTagLinks(ctx context.Context, questionID uuid.UUID, tagIDs []uuid.UUID) error
	SetScreenshotPath(ctx context.Context, id uuid.UUID, path string) error
	ListContents(ctx context.Context) ([]Content, error)
	ReplaceRelated(ctx context.Context, sourceID uuid.UUID, rows []*RelatedQuestion) error
	ListRelated(ctx context.Context, sourceID uuid.UUID) ([]*RelatedQuestion, error)
}
