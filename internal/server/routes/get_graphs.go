package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vigil-mini/backend/internal/server/middleware"
	"github.com/vigil-mini/backend/internal/server/util"
	"github.com/vigil-mini/backend/pkg/common"
	"github.com/vigil-mini/backend/pkg/graph"
	"github.com/vigil-mini/backend/pkg/logger"
)

const defaultGraphLimit = 50

type graphParams struct {
	Limit            int  `query:"limit" validate:"min=1,max=100"`
	IncludeLobbyists bool `query:"include_lobbyists"`
}

type searchParams struct {
	Q                string `query:"q" validate:"required"`
	Limit            int    `query:"limit" validate:"min=1,max=100"`
	IncludeLobbyists bool   `query:"include_lobbyists"`
}

// bindFilters binds and validates the optional LDA filters of a graph request
// and returns them as upstream query parameters.
func bindFilters(c echo.Context) (map[string]string, error) {
	filters := new(util.FilingFilters)
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, filters); err != nil {
		return nil, err
	}
	if err := c.Validate(filters); err != nil {
		return nil, err
	}
	return filters.ToQueryParams()
}

func bindQuery(c echo.Context, params any) error {
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, params); err != nil {
		return err
	}
	return c.Validate(params)
}

func respondWithGraph(c echo.Context, kind string, filings []common.Filing, includeLobbyists bool) error {
	app := c.(*middleware.AppContext).App

	g := graph.BuildWithOptions(filings, graph.Options{
		IncludeLobbyists: includeLobbyists,
		TrackAmounts:     true,
		LabelMax:         app.LabelMax,
	})

	logger.Debug("[Graph] Built", "kind", kind, "filings", g.FilingsMatched, "nodes", len(g.Nodes), "edges", len(g.Edges))
	return c.JSON(http.StatusOK, g)
}

// GetSampleGraphHandler builds a graph from the most recent filings matching
// the optional filters.
func GetSampleGraphHandler(c echo.Context) error {
	params := &graphParams{Limit: defaultGraphLimit, IncludeLobbyists: true}
	if err := bindQuery(c, params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	filters, err := bindFilters(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	filings, err := app.LDA.ListFilings(ctx, params.Limit, filters)
	if err != nil {
		return upstreamError(c, err)
	}

	return respondWithGraph(c, "sample", filings, params.IncludeLobbyists)
}

// GetEntityGraphHandler searches q across client, registrant and lobbyist
// names and builds a graph from the merged results.
func GetEntityGraphHandler(c echo.Context) error {
	params := &searchParams{Limit: defaultGraphLimit, IncludeLobbyists: true}
	if err := bindQuery(c, params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	filters, err := bindFilters(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	filings, err := util.SearchEntityFilings(ctx, app.LDA, params.Q, params.Limit, filters)
	if err != nil {
		return upstreamError(c, err)
	}

	return respondWithGraph(c, "entity", filings, params.IncludeLobbyists)
}

// GetTopicGraphHandler builds a graph from filings whose specific lobbying
// issues match q.
func GetTopicGraphHandler(c echo.Context) error {
	params := &searchParams{Limit: defaultGraphLimit, IncludeLobbyists: true}
	if err := bindQuery(c, params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	filters, err := bindFilters(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	filters["filing_specific_lobbying_issues"] = params.Q

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	filings, err := app.LDA.ListFilings(ctx, params.Limit, filters)
	if err != nil {
		return upstreamError(c, err)
	}

	return respondWithGraph(c, "topic", filings, params.IncludeLobbyists)
}
