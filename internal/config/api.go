package config

import (
	"context"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type (
	DB struct {
		URL string `envconfig:"DB_URL" required:"true"`
	}

	CORS struct {
		AllowOrigins []string `envconfig:"ALLOW_ORIGINS" required:"true"`
	}

	JWT struct {
		Issuer   string   `envconfig:"ISSUER" default:"recall-journal-api"`
		Audience []string `envconfig:"AUDIENCE" required:"true"`
		Secret   string   `envconfig:"SECRET" default:""`
	}

	Cookie struct {
		Path            string        `envconfig:"CPATH" default:"/"` // not using PATH here because it may conflict with os.Path
		Domain          string        `envconfig:"DOMAIN" required:"true"`
		AccessExpiresIn time.Duration `envconfig:"ACCESS_EXPIRES_IN" default:"24h"`
	}

	HTTP struct {
		ProcessTimeout time.Duration `envconfig:"PROCESS_TIMEOUT" default:"10s"`
		RateLimit      float64       `envconfig:"RATE_LIMIT" default:"25"`
		CORS           CORS
		Cookie         Cookie
		JWT            JWT
	}

	Server struct {
		ReadHeaderTimeout time.Duration `envconfig:"READ_HEADER_TIMEOUT" default:"10s"`
		Addr              string        `envconfig:"ADDR" default:":8080"`
	}

	Suggest struct {
		GeminiAPIKey string `envconfig:"GEMINI_API_KEY" default:""`
	}

	API struct {
		Dev      bool   `envconfig:"DEV" default:"false"`
		Timezone string `envconfig:"TIMEZONE" default:"Local"`
		UsersRaw string `envconfig:"USERS" default:""`
		DB       DB
		HTTP     HTTP
		Server   Server
		Suggest  Suggest

		Users []User `ignored:"true"`
	}
)

func NewAPI(ctx context.Context) (*API, error) {
	res := &API{}
	if err := envconfig.Process("API", res); err != nil {
		return nil, fmt.Errorf("parse api environment: %w", err)
	}

	if !res.Dev {
		if err := setAPIProdConfig(ctx, res); err != nil {
			return nil, fmt.Errorf("set api prod config: %w", err)
		}
	}

	users, err := parseUsers(res.UsersRaw)
	if err != nil {
		return nil, err
	}
	res.Users = users

	return validateAPI(res)
}

func (c *API) TimeLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load location: %w", err)
	}
	return loc, nil
}

func validateAPI(conf *API) (*API, error) {
	if conf.HTTP.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if len(conf.Users) == 0 {
		return nil, fmt.Errorf("at least one user is required")
	}
	if _, err := conf.TimeLocation(); err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}

	return conf, nil
}

func setAPIProdConfig(ctx context.Context, target *API) error {
	parameters, err := FetchAWSParams(ctx,
		"/recall-journal/prod/jwt-secret",
		"/recall-journal/prod/users",
		"/recall-journal/prod/gemini-api-key",
	)
	if err != nil {
		return fmt.Errorf("get parameters: %w", err)
	}

	for name, value := range parameters {
		switch name {
		case "/recall-journal/prod/jwt-secret":
			target.HTTP.JWT.Secret = value
		case "/recall-journal/prod/users":
			target.UsersRaw = value
		case "/recall-journal/prod/gemini-api-key":
			target.Suggest.GeminiAPIKey = value
		}
	}

	return nil
}
