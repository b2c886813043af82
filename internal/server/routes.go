package server

import (
	"github.com/vigil-mini/backend/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check routes
	e.GET("/", routes.GetRootHandler)
	e.GET("/health", routes.GetHealthHandler)

	apiRoutes := e.Group("/api")
	apiRoutes.GET("/health", routes.GetHealthHandler)

	// Upstream connectivity
	apiRoutes.GET("/lda/ping", routes.GetLDAPingHandler)

	// Graph routes
	apiRoutes.GET("/graph/sample", routes.GetSampleGraphHandler)
	apiRoutes.GET("/graph/entity", routes.GetEntityGraphHandler)
	apiRoutes.GET("/graph/topic", routes.GetTopicGraphHandler)
}
