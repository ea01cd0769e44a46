package department

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("department not found")
	ErrNameTaken    = errors.New("department name already exists")
	ErrHasQuestions = errors.New("department still has questions")
	ErrNameRequired = errors.New("name is required")
)

type Service struct {
	departments DepartmentRepository
}

func NewService(departments DepartmentRepository) *Service {
	return &Service{departments: departments}
}

func (s *Service) CreateDepartment(ctx context.Context, d *Department) error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return ErrNameRequired
	}
	if existing, err := s.departments.GetByName(ctx, d.Name); err == nil && existing != nil {
		return fmt.Errorf("%w: %s", ErrNameTaken, d.Name)
	}
	return s.departments.Create(ctx, d)
}

func (s *Service) GetDepartment(ctx context.Context, id uuid.UUID) (*Department, error) {
	d, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return d, nil
}

func (s *Service) UpdateDepartment(ctx context.Context, d *Department) error {
	existing, err := s.departments.GetByID(ctx, d.ID)
	if err != nil {
		return ErrNotFound
	}

	if d.Name != "" && d.Name != existing.Name {
		if byName, err := s.departments.GetByName(ctx, d.Name); err == nil && byName != nil && byName.ID != d.ID {
			return fmt.Errorf("%w: %s", ErrNameTaken, d.Name)
		}
		existing.Name = d.Name
	}
	if d.Description != nil {
		existing.Description = d.Description
	}

	if err := s.departments.Update(ctx, existing); err != nil {
		return err
	}
	*d = *existing
	return nil
}

func (s *Service) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.departments.GetByID(ctx, id); err != nil {
		return ErrNotFound
	}
	count, err := s.departments.CountQuestions(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d attached", ErrHasQuestions, count)
	}
	return s.departments.Delete(ctx, id)
}

func (s *Service) ListDepartments(ctx context.Context, limit, offset int) ([]*Department, int, error) {
	return s.departments.List(ctx, limit, offset)
}
