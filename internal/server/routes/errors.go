package routes

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vigil-mini/backend/pkg/lda"
	"github.com/vigil-mini/backend/pkg/logger"
)

// upstreamError maps a failed LDA call onto an API response.
func upstreamError(c echo.Context, err error) error {
	var statusErr *lda.StatusError

	switch {
	case errors.Is(err, lda.ErrMissingAPIKey):
		logger.Error("[LDA] No API key configured")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Missing LDA_API_KEY environment variable"})
	case errors.Is(err, lda.ErrTimeout):
		logger.Warn("[LDA] Upstream timed out", "err", err)
		return c.JSON(http.StatusGatewayTimeout, map[string]string{"error": "Senate LDA API timed out"})
	case errors.As(err, &statusErr):
		logger.Warn("[LDA] Upstream returned an error", "status", statusErr.StatusCode)
		return c.JSON(statusErr.StatusCode, map[string]string{"error": statusErr.Body})
	case errors.Is(err, context.Canceled):
		logger.Debug("[LDA] Request canceled by client")
		return c.NoContent(http.StatusServiceUnavailable)
	default:
		logger.Error("[LDA] Upstream request failed", "err", err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Failed to query Senate LDA API"})
	}
}
