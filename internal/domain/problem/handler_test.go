package problem

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/healthlens/healthlens/internal/platform/llm"
)

type mockGenerator struct {
	result string
	err    error
	last   llm.DraftRequest
}

func (m *mockGenerator) Draft(_ context.Context, req llm.DraftRequest) (string, error) {
	m.last = req
	if m.err != nil {
		return "", m.err
	}
	if req.Empty() {
		return "", llm.ErrNoFields
	}
	return m.result, nil
}

func doGenerate(t *testing.T, gen llm.Generator, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/problem-statements/generate", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, NewHandler(gen).Generate(c)
}

func TestGenerate_Success(t *testing.T) {
	gen := &mockGenerator{result: "Patients in the ICU experience delayed sepsis recognition."}
	rec, err := doGenerate(t, gen, `{"problem":"delayed sepsis recognition","location":"ICU"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "result") {
		t.Error("expected result key in response")
	}
	if gen.last.Location != "ICU" {
		t.Errorf("expected bound location, got %q", gen.last.Location)
	}
}

func TestGenerate_AllFieldsEmpty(t *testing.T) {
	_, err := doGenerate(t, &mockGenerator{}, `{}`)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestGenerate_UpstreamAuthFailure(t *testing.T) {
	gen := &mockGenerator{err: llm.ErrUpstreamAuth}
	_, err := doGenerate(t, gen, `{"problem":"x"}`)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestGenerate_UpstreamError(t *testing.T) {
	gen := &mockGenerator{err: context.DeadlineExceeded}
	_, err := doGenerate(t, gen, `{"problem":"x"}`)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %v", err)
	}
}
