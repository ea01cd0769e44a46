package question

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/healthlens/healthlens/internal/domain/department"
	"github.com/healthlens/healthlens/internal/domain/tag"
	"github.com/healthlens/healthlens/internal/platform/blobstore"
	"github.com/healthlens/healthlens/internal/platform/db"
	"github.com/healthlens/healthlens/internal/platform/nlp"
)

var (
	ErrNotFound           = errors.New("question not found")
	ErrTitleRequired      = errors.New("title is required")
	ErrContentRequired    = errors.New("content is required")
	ErrSummaryRequired    = errors.New("analysis summary is required")
	ErrDepartmentRequired = errors.New("department_id is required")
	ErrDepartmentNotFound = errors.New("department not found")
)

// RelationSimilarContent is the only relationship type the ranker
// produces today.
const RelationSimilarContent = "similar_content"

// ServiceConfig wires the question service's collaborators.
type ServiceConfig struct {
	Questions   QuestionRepository
	Departments department.DepartmentRepository
	Tags        *tag.Service
	Extractor   nlp.Extractor
	Ranker      *nlp.Ranker
	Files       blobstore.Store
	RunTx       db.TxRunner

	// MinScore is the inclusive similarity threshold; MaxRelated caps
	// how many derived rows a refresh keeps.
	MinScore   float64
	MaxRelated int
}

type Service struct {
	cfg ServiceConfig
}

func NewService(cfg ServiceConfig) *Service {
	if cfg.MinScore <= 0 {
		cfg.MinScore = nlp.DefaultThreshold
	}
	if cfg.MaxRelated <= 0 {
		cfg.MaxRelated = 5
	}
	return &Service{cfg: cfg}
}

func (s *Service) validate(ctx context.Context, q *Question) error {
	q.Title = strings.TrimSpace(q.Title)
	q.Content = strings.TrimSpace(q.Content)
	q.AnalysisSummary = strings.TrimSpace(q.AnalysisSummary)

	switch {
	case q.Title == "":
		return ErrTitleRequired
	case q.Content == "":
		return ErrContentRequired
	case q.AnalysisSummary == "":
		return ErrSummaryRequired
	case q.DepartmentID == uuid.Nil:
		return ErrDepartmentRequired
	}
	if _, err := s.cfg.Departments.GetByID(ctx, q.DepartmentID); err != nil {
		return fmt.Errorf("%w: %s", ErrDepartmentNotFound, q.DepartmentID)
	}
	return nil
}

// tagQuestion resolves extracted concepts to tag rows and returns their
// ids. Must run inside the caller's transaction so a failed insert
// rolls back along with the question write.
func (s *Service) tagQuestion(ctx context.Context, concepts []nlp.Concept) ([]uuid.UUID, []tag.Tag, error) {
	ids := make([]uuid.UUID, 0, len(concepts))
	tags := make([]tag.Tag, 0, len(concepts))
	for _, c := range concepts {
		var desc *string
		if c.Description != "" {
			d := c.Description
			desc = &d
		}
		t, err := s.cfg.Tags.LookupOrCreate(ctx, c.ID, c.Name, desc)
		if err != nil {
			return nil, nil, err
		}
		ids = append(ids, t.ID)
		tags = append(tags, *t)
	}
	return ids, tags, nil
}

// CreateQuestion extracts concepts from the content, then persists the
// question, its tags, and the links in one transaction. Extraction
// stays outside the transaction: a slow or failing concept service must
// not hold a database transaction open.
func (s *Service) CreateQuestion(ctx context.Context, q *Question) error {
	if err := s.validate(ctx, q); err != nil {
		return err
	}

	concepts, err := s.cfg.Extractor.Extract(ctx, q.Content)
	if err != nil {
		return fmt.Errorf("extract concepts: %w", err)
	}

	return s.cfg.RunTx(ctx, func(txCtx context.Context) error {
		tagIDs, tags, err := s.tagQuestion(txCtx, concepts)
		if err != nil {
			return err
		}
		if err := s.cfg.Questions.Create(txCtx, q, tagIDs); err != nil {
			return err
		}
		q.Tags = tags
		return nil
	})
}

func (s *Service) GetQuestion(ctx context.Context, id uuid.UUID) (*Question, error) {
	q, err := s.cfg.Questions.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if err := s.loadTags(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *Service) loadTags(ctx context.Context, q *Question) error {
	tags, err := s.cfg.Tags.ListByQuestion(ctx, q.ID)
	if err != nil {
		return err
	}
	q.Tags = make([]tag.Tag, 0, len(tags))
	for _, t := range tags {
		q.Tags = append(q.Tags, *t)
	}
	return nil
}

// UpdateQuestion merges the provided fields into the stored question.
// Tags are re-extracted only when the content actually changed, so
// resubmitting identical content leaves the tag set untouched.
func (s *Service) UpdateQuestion(ctx context.Context, q *Question) error {
	existing, err := s.cfg.Questions.GetByID(ctx, q.ID)
	if err != nil {
		return ErrNotFound
	}

	contentChanged := false
	if t := strings.TrimSpace(q.Title); t != "" {
		existing.Title = t
	}
	if c := strings.TrimSpace(q.Content); c != "" && c != existing.Content {
		existing.Content = c
		contentChanged = true
	}
	if a := strings.TrimSpace(q.AnalysisSummary); a != "" {
		existing.AnalysisSummary = a
	}
	if q.SlicerDicerQuery != nil {
		existing.SlicerDicerQuery = q.SlicerDicerQuery
	}
	if q.DepartmentID != uuid.Nil && q.DepartmentID != existing.DepartmentID {
		if _, err := s.cfg.Departments.GetByID(ctx, q.DepartmentID); err != nil {
			return fmt.Errorf("%w: %s", ErrDepartmentNotFound, q.DepartmentID)
		}
		existing.DepartmentID = q.DepartmentID
	}

	var concepts []nlp.Concept
	if contentChanged {
		if concepts, err = s.cfg.Extractor.Extract(ctx, existing.Content); err != nil {
			return fmt.Errorf("extract concepts: %w", err)
		}
	}

	if err := s.cfg.RunTx(ctx, func(txCtx context.Context) error {
		if err := s.cfg.Questions.Update(txCtx, existing); err != nil {
			return err
		}
		if !contentChanged {
			return nil
		}
		tagIDs, _, err := s.tagQuestion(txCtx, concepts)
		if err != nil {
			return err
		}
		return s.cfg.Questions.ReplaceTagLinks(txCtx, existing.ID, tagIDs)
	}); err != nil {
		return err
	}

	if err := s.loadTags(ctx, existing); err != nil {
		return err
	}
	*q = *existing
	return nil
}

func (s *Service) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	if _, err := s.cfg.Questions.GetByID(ctx, id); err != nil {
		return ErrNotFound
	}
	return s.cfg.Questions.Delete(ctx, id)
}

func (s *Service) ListQuestions(ctx context.Context, f ListFilter, limit, offset int) ([]*Question, int, error) {
	items, total, err := s.cfg.Questions.List(ctx, f, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for _, q := range items {
		if err := s.loadTags(ctx, q); err != nil {
			return nil, 0, err
		}
	}
	return items, total, nil
}

// AttachScreenshot stores the uploaded file and records its path on the
// question, removing any previously attached file.
func (s *Service) AttachScreenshot(ctx context.Context, id uuid.UUID, filename string, content io.Reader) (string, error) {
	existing, err := s.cfg.Questions.GetByID(ctx, id)
	if err != nil {
		return "", ErrNotFound
	}

	path, err := s.cfg.Files.Store(ctx, filename, content)
	if err != nil {
		return "", err
	}
	if err := s.cfg.Questions.SetScreenshotPath(ctx, id, path); err != nil {
		return "", err
	}

	if existing.ScreenshotPath != nil {
		_ = s.cfg.Files.Delete(ctx, *existing.ScreenshotPath)
	}
	return path, nil
}

// RefreshRelated recomputes the question's similarity edges against
// every other question and swaps the stored rows for the fresh set in
// one transaction.
func (s *Service) RefreshRelated(ctx context.Context, id uuid.UUID) ([]*RelatedQuestion, error) {
	target, err := s.cfg.Questions.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	all, err := s.cfg.Questions.ListContents(ctx)
	if err != nil {
		return nil, err
	}
	candidates := make([]Content, 0, len(all))
	texts := make([]string, 0, len(all))
	for _, c := range all {
		if c.ID == id {
			continue
		}
		candidates = append(candidates, c)
		texts = append(texts, c.Content)
	}

	matches, err := s.cfg.Ranker.Rank(ctx, target.Content, texts, s.cfg.MinScore)
	if err != nil {
		return nil, fmt.Errorf("rank related questions: %w", err)
	}
	if len(matches) > s.cfg.MaxRelated {
		matches = matches[:s.cfg.MaxRelated]
	}

	rows := make([]*RelatedQuestion, 0, len(matches))
	for i, m := range matches {
		rows = append(rows, &RelatedQuestion{
			SourceQuestionID: id,
			TargetQuestionID: candidates[m.Index].ID,
			SimilarityScore:  int(math.Round(m.Score * 100)),
			Rank:             i,
			RelationshipType: RelationSimilarContent,
		})
	}

	if err := s.cfg.RunTx(ctx, func(txCtx context.Context) error {
		return s.cfg.Questions.ReplaceRelated(txCtx, id, rows)
	}); err != nil {
		return nil, err
	}
	// Re-read so the response carries the stored timestamps.
	return s.cfg.Questions.ListRelated(ctx, id)
}

// Related returns the stored similarity edges for a question.
func (s *Service) Related(ctx context.Context, id uuid.UUID) ([]*RelatedQuestion, error) {
	if _, err := s.cfg.Questions.GetByID(ctx, id); err != nil {
		return nil, ErrNotFound
	}
	return s.cfg.Questions.ListRelated(ctx, id)
}
