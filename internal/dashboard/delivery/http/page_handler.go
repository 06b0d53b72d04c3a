package http

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strings"

	"golang-stock-dashboard/internal/dashboard/dto"
	"golang-stock-dashboard/internal/dashboard/service"
	"golang-stock-dashboard/pkg/common"
	"golang-stock-dashboard/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	chartWidth  = 640
	chartHeight = 180
)

// ChartView is one close-vs-MA chart drawn as two SVG polylines.
type ChartView struct {
	Window      int
	ClosePoints string
	MAPoints    string
	Count       int
	Last        dto.ChartPoint
	Width       int
	Height      int
}

// PageView is the data handed to the dashboard template.
type PageView struct {
	Query     string
	Error     string
	Dashboard *dto.Dashboard
	Profile   dto.ProfileView
	Charts    []ChartView
	Narrative template.HTML
	Sentiment string
}

// PageHandler renders the server-side HTML dashboard.
type PageHandler struct {
	dashboardService service.DashboardService
	logger           *logger.Logger
	tmpl             *template.Template
	markdown         goldmark.Markdown
}

// NewPageHandler parses the embedded templates.
func NewPageHandler(dashboardService service.DashboardService, log *logger.Logger) (*PageHandler, error) {
	tmpl, err := template.New("dashboard.html").Funcs(template.FuncMap{
		"amount": formatAmount,
		"na":     func() string { return common.NotAvailable },
	}).ParseFS(templateFS, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}
	return &PageHandler{
		dashboardService: dashboardService,
		logger:           log,
		tmpl:             tmpl,
		markdown:         goldmark.New(),
	}, nil
}

// RegisterRoutes registers the page routes.
func (h *PageHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/dashboard", h.Dashboard)
}

// Index renders the empty search form.
func (h *PageHandler) Index(c echo.Context) error {
	return h.render(c, http.StatusOK, PageView{})
}

// Dashboard aggregates the query and renders every section.
func (h *PageHandler) Dashboard(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	d, err := h.dashboardService.Aggregate(c.Request().Context(), q)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			return h.render(c, http.StatusBadRequest, PageView{Error: "Please enter a company name or ticker."})
		}
		return h.render(c, http.StatusInternalServerError, PageView{Query: q, Error: err.Error()})
	}

	view := PageView{
		Query:     q,
		Dashboard: d,
		Profile:   d.Profile.View(),
		Sentiment: string(d.Sentiment.Data),
	}
	if d.Prices.Status == dto.StatusOK {
		view.Charts = buildChartViews(d.Prices.Data.Charts)
	}
	if d.BullBear.Status == dto.StatusOK {
		view.Narrative = h.renderMarkdown(c, d.BullBear.Data)
	}
	return h.render(c, http.StatusOK, view)
}

func (h *PageHandler) render(c echo.Context, status int, view PageView) error {
	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, view); err != nil {
		h.logger.ErrorContext(c.Request().Context(), "Failed to render dashboard page", logger.ErrorField(err))
		return c.String(http.StatusInternalServerError, "failed to render page")
	}
	return c.HTMLBlob(status, buf.Bytes())
}

// renderMarkdown converts the narrative to HTML. Raw HTML in the source is dropped by goldmark's default renderer.
func (h *PageHandler) renderMarkdown(c echo.Context, md string) template.HTML {
	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(md), &buf); err != nil {
		h.logger.WarnContext(c.Request().Context(), "Failed to render narrative markdown", logger.ErrorField(err))
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

func buildChartViews(charts []dto.ChartSeries) []ChartView {
	views := make([]ChartView, 0, len(charts))
	for _, series := range charts {
		if len(series.Points) == 0 {
			continue
		}
		closes := make([]float64, len(series.Points))
		averages := make([]float64, len(series.Points))
		for i, p := range series.Points {
			closes[i] = p.Close
			averages[i] = p.MovingAverage
		}
		lo, hi := bounds(closes, averages)
		views = append(views, ChartView{
			Window:      series.Window,
			ClosePoints: polyline(closes, lo, hi),
			MAPoints:    polyline(averages, lo, hi),
			Count:       len(series.Points),
			Last:        series.Points[len(series.Points)-1],
			Width:       chartWidth,
			Height:      chartHeight,
		})
	}
	return views
}

func bounds(series ...[]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, values := range series {
		for _, v := range values {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}

// polyline scales values into the chart box; y grows downwards in SVG.
func polyline(values []float64, lo, hi float64) string {
	span := hi - lo
	if span == 0 {
		span = 1
	}
	step := 0.0
	if len(values) > 1 {
		step = float64(chartWidth) / float64(len(values)-1)
	}

	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(' ')
		}
		x := float64(i) * step
		y := float64(chartHeight) - (v-lo)/span*float64(chartHeight)
		sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
	}
	return sb.String()
}

// formatAmount renders large statement figures in billions or millions.
func formatAmount(d decimal.Decimal) string {
	billion := decimal.NewFromInt(1_000_000_000)
	million := decimal.NewFromInt(1_000_000)
	switch {
	case d.Abs().GreaterThanOrEqual(billion):
		return d.Div(billion).StringFixed(2) + "B"
	case d.Abs().GreaterThanOrEqual(million):
		return d.Div(million).StringFixed(2) + "M"
	}
	return d.StringFixed(0)
}
