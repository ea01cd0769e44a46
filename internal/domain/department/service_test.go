package department

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockDepartmentRepo struct {
	store         map[uuid.UUID]*Department
	questionCount map[uuid.UUID]int
}

func newMockDepartmentRepo() *mockDepartmentRepo {
	return &mockDepartmentRepo{
		store:         make(map[uuid.UUID]*Department),
		questionCount: make(map[uuid.UUID]int),
	}
}

func (m *mockDepartmentRepo) Create(_ context.Context, d *Department) error {
	d.ID = uuid.New()
	m.store[d.ID] = d
	return nil
}

func (m *mockDepartmentRepo) GetByID(_ context.Context, id uuid.UUID) (*Department, error) {
	d, ok := m.store[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return d, nil
}

func (m *mockDepartmentRepo) GetByName(_ context.Context, name string) (*Department, error) {
	for _, d := range m.store {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockDepartmentRepo) Update(_ context.Context, d *Department) error {
	if _, ok := m.store[d.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.store[d.ID] = d
	return nil
}

func (m *mockDepartmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.store, id)
	return nil
}

func (m *mockDepartmentRepo) List(_ context.Context, limit, offset int) ([]*Department, int, error) {
	var r []*Department
	for _, d := range m.store {
		r = append(r, d)
	}
	return r, len(r), nil
}

func (m *mockDepartmentRepo) CountQuestions(_ context.Context, id uuid.UUID) (int, error) {
	return m.questionCount[id], nil
}

func newTestService() (*Service, *mockDepartmentRepo) {
	repo := newMockDepartmentRepo()
	return NewService(repo), repo
}

// -- Service Tests --

func TestCreateDepartment_Success(t *testing.T) {
	svc, _ := newTestService()
	d := &Department{Name: "Cardiology"}
	if err := svc.CreateDepartment(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID == uuid.Nil {
		t.Error("expected ID to be set")
	}
}

func TestCreateDepartment_NameRequired(t *testing.T) {
	svc, _ := newTestService()
	err := svc.CreateDepartment(context.Background(), &Department{Name: "   "})
	if !errors.Is(err, ErrNameRequired) {
		t.Errorf("expected ErrNameRequired, got %v", err)
	}
}

func TestCreateDepartment_DuplicateName(t *testing.T) {
	svc, _ := newTestService()
	if err := svc.CreateDepartment(context.Background(), &Department{Name: "Oncology"}); err != nil {
		t.Fatal(err)
	}
	err := svc.CreateDepartment(context.Background(), &Department{Name: "Oncology"})
	if !errors.Is(err, ErrNameTaken) {
		t.Errorf("expected ErrNameTaken, got %v", err)
	}
}

func TestUpdateDepartment_NotFound(t *testing.T) {
	svc, _ := newTestService()
	err := svc.UpdateDepartment(context.Background(), &Department{ID: uuid.New(), Name: "X"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateDepartment_PartialFields(t *testing.T) {
	svc, _ := newTestService()
	d := &Department{Name: "Emergency"}
	if err := svc.CreateDepartment(context.Background(), d); err != nil {
		t.Fatal(err)
	}

	desc := "Emergency medicine"
	update := &Department{ID: d.ID, Description: &desc}
	if err := svc.UpdateDepartment(context.Background(), update); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if update.Name != "Emergency" {
		t.Errorf("expected name preserved, got %q", update.Name)
	}
	if update.Description == nil || *update.Description != desc {
		t.Error("expected description updated")
	}
}

func TestDeleteDepartment_WithQuestions(t *testing.T) {
	svc, repo := newTestService()
	d := &Department{Name: "Surgery"}
	if err := svc.CreateDepartment(context.Background(), d); err != nil {
		t.Fatal(err)
	}
	repo.questionCount[d.ID] = 3

	err := svc.DeleteDepartment(context.Background(), d.ID)
	if !errors.Is(err, ErrHasQuestions) {
		t.Errorf("expected ErrHasQuestions, got %v", err)
	}
}

func TestDeleteDepartment_Success(t *testing.T) {
	svc, repo := newTestService()
	d := &Department{Name: "Radiology"}
	if err := svc.CreateDepartment(context.Background(), d); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteDepartment(context.Background(), d.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.store[d.ID]; ok {
		t.Error("expected department removed")
	}
}
