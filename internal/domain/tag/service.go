package tag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("tag not found")
	ErrNameRequired = errors.New("tag name is required")
)

type Service struct {
	tags TagRepository
}

func NewService(tags TagRepository) *Service {
	return &Service{tags: tags}
}

func (s *Service) GetTag(ctx context.Context, id uuid.UUID) (*Tag, error) {
	t, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return t, nil
}

func (s *Service) ListTags(ctx context.Context, limit, offset int) ([]*Tag, int, error) {
	return s.tags.List(ctx, limit, offset)
}

func (s *Service) ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]*Tag, error) {
	return s.tags.ListByQuestion(ctx, questionID)
}

// LookupOrCreate resolves a concept to its tag row, inserting one when
// the concept has not been seen before. Two requests extracting the
// same new concept can race on the insert; Create tolerates the
// conflict, so the loser sees ErrConceptExists with the transaction
// still usable and re-reads the winner's row.
func (s *Service) LookupOrCreate(ctx context.Context, conceptID, name string, description *string) (*Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if existing, err := s.tags.GetByConceptID(ctx, conceptID); err == nil && existing != nil {
		return existing, nil
	}

	t := &Tag{Name: name, ConceptID: conceptID, Description: description}
	if err := s.tags.Create(ctx, t); err != nil {
		if errors.Is(err, ErrConceptExists) {
			return s.tags.GetByConceptID(ctx, conceptID)
		}
		return nil, fmt.Errorf("create tag %q: %w", conceptID, err)
	}
	return t, nil
}
