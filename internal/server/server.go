package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mid "github.com/vigil-mini/backend/internal/server/middleware"
	"github.com/vigil-mini/backend/internal/util"
	"github.com/vigil-mini/backend/pkg/graph"
	"github.com/vigil-mini/backend/pkg/lda"
	"github.com/vigil-mini/backend/pkg/logger"

	"github.com/go-playground/validator"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

// Options configures the HTTP layer independently of the environment.
type Options struct {
	AllowOrigins []string
}

// New builds the echo instance with middleware and routes registered.
func New(app *mid.App, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &CustomValidator{validator: validator.New()}

	origins := opts.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			id, err := gonanoid.New()
			if err != nil {
				return ""
			}
			return id
		},
	}))
	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			keyvals := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				logger.Error("[Server] Request failed", append(keyvals, "err", v.Error)...)
				return nil
			}
			logger.Info("[Server] Request", keyvals...)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	RegisterRoutes(e)

	return e
}

func Init() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	apiKey := util.GetEnv("LDA_API_KEY")
	if apiKey == "" {
		logger.Warn("LDA_API_KEY is not set, upstream requests will fail")
	}

	ldaClient, err := lda.NewClient(lda.NewClientParams{
		BaseURL: util.GetEnvString("LDA_BASE_URL", lda.DefaultBaseURL),
		APIKey:  apiKey,
		Timeout: util.GetEnvDuration("LDA_TIMEOUT", 30*time.Second),

		RequestsPerSecond:     util.GetEnvNumeric("LDA_RPS", 5),
		MaxConcurrentRequests: int64(util.GetEnvInt("LDA_PARALLEL_REQ", 3)),
		MaxRetries:            util.GetEnvInt("LDA_MAX_RETRIES", 1),
		RetryBackoff:          util.GetEnvDuration("LDA_RETRY_BACKOFF", 500*time.Millisecond),

		CacheTTL: util.GetEnvDuration("LDA_CACHE_TTL", 0),
	})
	if err != nil {
		logger.Fatal("Failed to create LDA client", "err", err)
	}

	app := &mid.App{
		LDA:      ldaClient,
		LabelMax: util.GetEnvInt("GRAPH_LABEL_MAX", graph.DefaultLabelMax),
	}
	e := New(app, Options{
		AllowOrigins: util.GetEnvList("CORS_ORIGINS", []string{"*"}),
	})

	go func() {
		port := util.GetEnvString("PORT", "8080")
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
