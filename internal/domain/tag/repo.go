package tag

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrConceptExists reports that a row for the concept id is already
// present. Create returns it instead of surfacing a raw unique
// violation, which inside a transaction would poison every statement
// after it.
var ErrConceptExists = errors.New("concept id already registered")

type TagRepository interface {
	Create(ctx context.Context, t *Tag) error
	GetByID(ctx context.Context, id uuid.UUID) (*Tag, error)
	GetByConceptID(ctx context.Context, conceptID string) (*Tag, error)
	List(ctx context.Context, limit, offset int) ([]*Tag, int, error)
	ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]*Tag, error)
}
