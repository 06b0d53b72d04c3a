package http

import (
	"errors"
	"net/http"
	"strings"

	"golang-stock-dashboard/internal/dashboard/dto"
	"golang-stock-dashboard/internal/dashboard/service"
	"golang-stock-dashboard/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const defaultRecentLimit = 20

// DashboardHandler handles the JSON API.
type DashboardHandler struct {
	dashboardService service.DashboardService
	validate         *validator.Validate
	logger           *logger.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		validate:         validator.New(),
		logger:           logger,
	}
}

// RegisterRoutes registers the API routes to the Echo group.
func (h *DashboardHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/tickers/resolve", h.Resolve)
	g.GET("/dashboard", h.GetDashboard)
	g.GET("/searches/recent", h.GetRecentSearches)

	stocks := g.Group("/stocks/:ticker")
	stocks.GET("/profile", h.GetProfile)
	stocks.GET("/prices", h.GetPrices)
	stocks.GET("/income-statement", h.GetIncomeStatement)
	stocks.GET("/news", h.GetNews)
	stocks.GET("/sentiment", h.GetSentiment)
	stocks.GET("/bull-bear", h.GetBullBear)
}

// Resolve godoc
// @Summary Resolve free text to a ticker
// @Description Runs the fuzzy symbol search; falls back to the input when nothing matches
// @Tags tickers
// @Produce  json
// @Param   q  query    string true    "Company name or ticker"
// @Success 200 {object} dto.ResolveResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /tickers/resolve [get]
func (h *DashboardHandler) Resolve(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "query parameter q is required"})
	}

	ticker := h.dashboardService.Resolve(c.Request().Context(), q)
	return c.JSON(http.StatusOK, dto.ResolveResponse{Query: q, Ticker: ticker})
}

// GetDashboard godoc
// @Summary Aggregate the full dashboard
// @Description Resolves the query and fetches every section. Failed sections are reported in their status.
// @Tags dashboard
// @Produce  json
// @Param   q  query    string true    "Company name or ticker"
// @Success 200 {object} dto.Dashboard
// @Failure 400 {object} dto.ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	d, err := h.dashboardService.Aggregate(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "query parameter q is required"})
		}
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, d)
}

// GetProfile godoc
// @Summary Get the company profile
// @Tags stocks
// @Produce  json
// @Param   ticker  path    string true    "Ticker symbol"
// @Success 200 {object} dto.CompanyProfile
// @Router /stocks/{ticker}/profile [get]
func (h *DashboardHandler) GetProfile(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboardService.FetchProfile(c.Request().Context(), tickerParam(c)))
}

// GetPrices godoc
// @Summary Get five years of daily closes with moving averages
// @Tags stocks
// @Produce  json
// @Param   ticker  path    string true    "Ticker symbol"
// @Success 200 {object} dto.Section[dto.PriceSeries]
// @Router /stocks/{ticker}/prices [get]
func (h *DashboardHandler) GetPrices(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboardService.FetchPriceSeries(c.Request().Context(), tickerParam(c)))
}

// GetIncomeStatement godoc
// @Summary Get up to five annual income statements
// @Tags stocks
// @Produce  json
// @Param   ticker  path    string true    "Ticker symbol"
// @Success 200 {object} dto.Section[[]dto.IncomeStatementRow]
// @Router /stocks/{ticker}/income-statement [get]
func (h *DashboardHandler) GetIncomeStatement(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboardService.FetchIncomeStatement(c.Request().Context(), tickerParam(c)))
}

// GetNews godoc
// @Summary Get up to five headlines from the last 365 days
// @Tags stocks
// @Produce  json
// @Param   ticker  path    string true    "Ticker symbol"
// @Success 200 {object} dto.Section[[]dto.NewsItem]
// @Router /stocks/{ticker}/news [get]
func (h *DashboardHandler) GetNews(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboardService.FetchNews(c.Request().Context(), tickerParam(c)))
}

// GetSentiment godoc
// @Summary Get the provider news sentiment
// @Tags stocks
// @Produce  json
// @Param   ticker  path    string true    "Ticker symbol"
// @Success 200 {object} dto.Section[json.RawMessage]
// @Router /stocks/{ticker}/sentiment [get]
func (h *DashboardHandler) GetSentiment(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboardService.FetchSentiment(c.Request().Context(), tickerParam(c)))
}

// GetBullBear godoc
// @Summary Generate the bull and bear case narrative
// @Tags stocks
// @Produce  json
// @Param   ticker  path    string true    "Ticker symbol"
// @Success 200 {object} dto.Section[string]
// @Router /stocks/{ticker}/bull-bear [get]
func (h *DashboardHandler) GetBullBear(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboardService.GenerateBullBear(c.Request().Context(), tickerParam(c)))
}

// GetRecentSearches godoc
// @Summary List recent dashboard lookups
// @Tags searches
// @Produce  json
// @Param   limit  query    int false    "Number of records (1-100)"
// @Success 200 {array} dto.SearchRecordResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /searches/recent [get]
func (h *DashboardHandler) GetRecentSearches(c echo.Context) error {
	req := dto.RecentSearchesRequest{Limit: defaultRecentLimit}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid limit"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "limit must be between 1 and 100"})
	}

	records, err := h.dashboardService.RecentSearches(c.Request().Context(), req.Limit)
	if err != nil {
		h.logger.ErrorContext(c.Request().Context(), "Failed to load recent searches", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, records)
}

func tickerParam(c echo.Context) string {
	return strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
}
