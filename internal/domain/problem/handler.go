package problem

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthlens/healthlens/internal/platform/llm"
)

// Handler exposes problem statement drafting. There is no storage
// behind it, the generated text goes straight back to the caller.
type Handler struct {
	generator llm.Generator
}

func NewHandler(generator llm.Generator) *Handler {
	return &Handler{generator: generator}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/problem-statements/generate", h.Generate)
}

func (h *Handler) Generate(c echo.Context) error {
	var req llm.DraftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.generator.Draft(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrNoFields):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, llm.ErrUpstreamAuth):
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"result": result})
}
