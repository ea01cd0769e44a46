package tag

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func TestHandlerListTags(t *testing.T) {
	repo := newMockTagRepo()
	h := NewHandler(NewService(repo))
	e := echo.New()

	id := uuid.New()
	repo.store[id] = &Tag{ID: id, Name: "sepsis", ConceptID: "SNOMED_12345"}

	req := httptest.NewRequest(http.MethodGet, "/tags", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListTags(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "SNOMED_12345") {
		t.Error("expected concept id in response")
	}
}

func TestHandlerGetTag_NotFound(t *testing.T) {
	h := NewHandler(NewService(newMockTagRepo()))
	e := echo.New()

	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/tags/"+id.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	err := h.GetTag(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandlerGetTag_InvalidID(t *testing.T) {
	h := NewHandler(NewService(newMockTagRepo()))
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/tags/nope", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("nope")

	err := h.GetTag(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}
