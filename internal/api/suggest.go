package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Suggester produces a journal question prompt. Implementations must not fail;
// they fall back to a canned prompt instead.
type Suggester interface {
	SuggestQuestion(ctx context.Context) string
}

type SuggestHandler struct {
	suggester Suggester
}

func NewSuggestHandler(suggester Suggester) *SuggestHandler {
	return &SuggestHandler{suggester: suggester}
}

func (h *SuggestHandler) Suggest(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"question": h.suggester.SuggestQuestion(c.Request().Context()),
	})
}
