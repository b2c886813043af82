package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/vigil-mini/backend/pkg/common"
	"github.com/vigil-mini/backend/pkg/lda"
)

// FilingSource is the upstream filings API as seen by the handlers.
type FilingSource interface {
	ListFilings(ctx context.Context, pageSize int, params map[string]string) ([]common.Filing, error)
	Ping(ctx context.Context) (*lda.PingResult, error)
}

type App struct {
	LDA      FilingSource
	LabelMax int
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
