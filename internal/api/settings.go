package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	appctx "github.com/Roma7-7-7/recall-journal/internal/context"
	"github.com/Roma7-7-7/recall-journal/internal/dal"
)

type (
	themeRequest struct {
		Theme string `json:"theme" validate:"required,oneof=light dark"`
	}

	SettingsHandler struct {
		repo dal.SettingsRepository
		log  *slog.Logger
	}
)

func NewSettingsHandler(repo dal.SettingsRepository, log *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		repo: repo,
		log:  log,
	}
}

func (h *SettingsHandler) GetTheme(c echo.Context) error {
	userID := appctx.MustUserIDFromContext(c.Request().Context())

	theme, err := h.repo.GetTheme(c.Request().Context(), userID)
	if err != nil && !errors.Is(err, dal.ErrNotFound) {
		h.log.ErrorContext(c.Request().Context(), "failed to get theme", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	return c.JSON(http.StatusOK, echo.Map{"theme": theme})
}

func (h *SettingsHandler) PutTheme(c echo.Context) error {
	userID := appctx.MustUserIDFromContext(c.Request().Context())

	var req themeRequest
	if err := c.Bind(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, BadRequestError)
	}

	if err := c.Validate(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to validate request", "error", err)
		return err
	}

	if err := h.repo.SetTheme(c.Request().Context(), userID, req.Theme); err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to set theme", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	return c.JSON(http.StatusOK, echo.Map{"theme": req.Theme})
}
