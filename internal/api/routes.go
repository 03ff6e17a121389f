package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/Roma7-7-7/recall-journal/internal/config"
	"github.com/Roma7-7-7/recall-journal/internal/dal"
	"github.com/Roma7-7-7/recall-journal/internal/data"
	"github.com/Roma7-7-7/recall-journal/internal/journal"
)

type Dependencies struct {
	Repo      dal.Repository
	Service   *journal.Service
	Suggester Suggester
	Logger    *slog.Logger
}

func NewRouter(ctx context.Context, conf *config.API, deps Dependencies) http.Handler {
	e := echo.New()

	e.Use(middleware.RequestID())
	e.Use(loggingMiddleware(ctx, deps.Logger))
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(conf.HTTP.RateLimit))))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     conf.HTTP.CORS.AllowOrigins,
		AllowCredentials: true,
	}))
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: conf.HTTP.ProcessTimeout,
	}))
	e.Use(middleware.Secure())

	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = HTTPErrorHandler(deps.Logger)

	jwtProcessor := NewJWTProcessor(conf.HTTP.JWT, conf.HTTP.Cookie.AccessExpiresIn)
	cookiesProcessor := NewCookiesProcessor(conf.HTTP.Cookie)

	authMiddleware := AuthMiddleware(cookiesProcessor, jwtProcessor, deps.Logger)
	auth := NewAuthHandler(AuthDependencies{
		JWTProcessor:     jwtProcessor,
		CookiesProcessor: cookiesProcessor,
		Users:            conf.Users,
		Logger:           deps.Logger,
	})

	e.POST("/auth/login", auth.Login)
	e.GET("/auth/status", auth.Status)
	e.POST("/auth/logout", auth.LogOut)

	securedGroup := e.Group("", authMiddleware)
	securedGroup.GET("/auth/info", auth.Info)

	jrnl := NewJournalHandler(deps.Service, deps.Logger)
	securedGroup.GET("/journal/state", jrnl.State)
	securedGroup.POST("/journal/entries", jrnl.CreateEntry)
	securedGroup.POST("/journal/entries/:id/answer", jrnl.SubmitAnswer)
	securedGroup.POST("/journal/onboarding", jrnl.CompleteOnboarding)
	securedGroup.GET("/journal/achievements", jrnl.Achievements)
	securedGroup.POST("/journal/migrate", jrnl.Migrate(func(ctx context.Context, userID string, local data.LocalState) (bool, error) {
		return journal.Migrate(ctx, deps.Repo, userID, local)
	}))

	suggest := NewSuggestHandler(deps.Suggester)
	securedGroup.GET("/suggest", suggest.Suggest)

	settings := NewSettingsHandler(deps.Repo, deps.Logger)
	securedGroup.GET("/settings/theme", settings.GetTheme)
	securedGroup.PUT("/settings/theme", settings.PutTheme)

	return e
}

func loggingMiddleware(ctx context.Context, log *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogLatency:  true,
		HandleError: true, // forwards error to the global error handler, so it can decide appropriate status code
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error == nil {
				log.LogAttrs(ctx, slog.LevelInfo, "REQUEST",
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.Duration("latency", v.Latency),
				)
			} else {
				log.LogAttrs(ctx, slog.LevelError, "REQUEST_ERROR",
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.Duration("latency", v.Latency),
					slog.String("err", v.Error.Error()),
				)
			}
			return nil
		},
	})
}
