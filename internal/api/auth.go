package api

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	appctx "github.com/Roma7-7-7/recall-journal/internal/context"
	"github.com/Roma7-7-7/recall-journal/internal/config"
)

type (
	AuthDependencies struct {
		JWTProcessor     *JWTProcessor
		CookiesProcessor *CookiesProcessor
		Users            []config.User
		Logger           *slog.Logger
	}

	AuthHandler struct {
		jwtProcessor     *JWTProcessor
		cookiesProcessor *CookiesProcessor
		users            map[string]string

		log *slog.Logger
	}

	loginRequest struct {
		Username string `json:"username" validate:"required,min=1"`
		Secret   string `json:"secret" validate:"required,min=1"`
	}

	statusResponse struct {
		Authenticated bool   `json:"authenticated"`
		UserID        string `json:"user_id,omitempty"`
	}
)

func NewAuthHandler(deps AuthDependencies) *AuthHandler {
	users := make(map[string]string, len(deps.Users))
	for _, u := range deps.Users {
		users[u.ID] = u.Secret
	}
	return &AuthHandler{
		jwtProcessor:     deps.JWTProcessor,
		cookiesProcessor: deps.CookiesProcessor,
		users:            users,

		log: deps.Logger,
	}
}

func (h *AuthHandler) Info(c echo.Context) error {
	userID := appctx.MustUserIDFromContext(c.Request().Context())
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": userID,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, BadRequestError)
	}

	if err := c.Validate(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to validate request", "error", err)
		return err
	}

	secret, ok := h.users[req.Username]
	if !ok || subtle.ConstantTimeCompare([]byte(secret), []byte(req.Secret)) != 1 {
		h.log.DebugContext(c.Request().Context(), "login rejected", "username", req.Username)
		return c.JSON(http.StatusUnauthorized, unauthorizedResponse)
	}

	token, err := h.jwtProcessor.ToAccessToken(req.Username)
	if err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to create access token", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}
	c.SetCookie(h.cookiesProcessor.NewAccessTokenCookie(token))

	return c.JSON(http.StatusOK, statusResponse{Authenticated: true, UserID: req.Username})
}

func (h *AuthHandler) Status(c echo.Context) error {
	var res statusResponse

	token, ok := h.cookiesProcessor.GetAccessToken(c)
	if !ok {
		return c.JSON(http.StatusOK, res)
	}

	userID, err := h.jwtProcessor.ParseAccessToken(token)
	if err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to parse access token", "error", err)
		return c.JSON(http.StatusOK, res)
	}

	res.Authenticated = true
	res.UserID = userID
	return c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) LogOut(c echo.Context) error {
	c.SetCookie(h.cookiesProcessor.ExpireAccessTokenCookie())
	return c.JSON(http.StatusOK, nil)
}
