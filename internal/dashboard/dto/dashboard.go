package dto

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"golang-stock-dashboard/pkg/common"

	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
)

// MovingAverageWindows are the trailing windows computed for every price series.
var MovingAverageWindows = []int{7, 28, 50, 100, 200}

// ChartWindows are the windows surfaced for charting.
var ChartWindows = []int{7, 50, 100, 200}

// CompanyProfile combines logo and descriptive metadata. Absent fields stay
// invalid so renderers can show a placeholder instead of dropping them.
type CompanyProfile struct {
	Ticker           string      `json:"ticker"`
	Name             null.String `json:"name"`
	Sector           null.String `json:"sector"`
	Industry         null.String `json:"industry"`
	CurrentPrice     null.Float  `json:"current_price"`
	FiftyTwoWeekHigh null.Float  `json:"fifty_two_week_high"`
	FiftyTwoWeekLow  null.Float  `json:"fifty_two_week_low"`
	LogoURL          null.String `json:"logo_url"`
	LogoStatus       Status      `json:"logo_status"`
	MetadataStatus   Status      `json:"metadata_status"`
}

// ProfileView is the display form of a CompanyProfile.
type ProfileView struct {
	Name             string `json:"name"`
	Sector           string `json:"sector"`
	Industry         string `json:"industry"`
	CurrentPrice     string `json:"current_price"`
	FiftyTwoWeekHigh string `json:"fifty_two_week_high"`
	FiftyTwoWeekLow  string `json:"fifty_two_week_low"`
	LogoURL          string `json:"logo_url"`
}

// View renders every field, substituting common.NotAvailable for absent ones.
// The name falls back to the ticker.
func (p CompanyProfile) View() ProfileView {
	name := p.Ticker
	if p.Name.Valid && p.Name.String != "" {
		name = p.Name.String
	}
	return ProfileView{
		Name:             name,
		Sector:           displayString(p.Sector),
		Industry:         displayString(p.Industry),
		CurrentPrice:     displayPrice(p.CurrentPrice),
		FiftyTwoWeekHigh: displayPrice(p.FiftyTwoWeekHigh),
		FiftyTwoWeekLow:  displayPrice(p.FiftyTwoWeekLow),
		LogoURL:          displayString(p.LogoURL),
	}
}

func displayString(v null.String) string {
	if !v.Valid || v.String == "" {
		return common.NotAvailable
	}
	return v.String
}

func displayPrice(v null.Float) string {
	if !v.Valid {
		return common.NotAvailable
	}
	return fmt.Sprintf("%.2f", v.Float64)
}

// PricePoint is one daily close with its trailing moving averages.
type PricePoint struct {
	Date  string     `json:"date"`
	Close float64    `json:"close"`
	MA7   null.Float `json:"ma_7"`
	MA28  null.Float `json:"ma_28"`
	MA50  null.Float `json:"ma_50"`
	MA100 null.Float `json:"ma_100"`
	MA200 null.Float `json:"ma_200"`
}

// MovingAverage returns the value for one of MovingAverageWindows.
func (p PricePoint) MovingAverage(window int) null.Float {
	switch window {
	case 7:
		return p.MA7
	case 28:
		return p.MA28
	case 50:
		return p.MA50
	case 100:
		return p.MA100
	case 200:
		return p.MA200
	}
	return null.Float{}
}

// SetMovingAverage stores the value for one of MovingAverageWindows.
func (p *PricePoint) SetMovingAverage(window int, v null.Float) {
	switch window {
	case 7:
		p.MA7 = v
	case 28:
		p.MA28 = v
	case 50:
		p.MA50 = v
	case 100:
		p.MA100 = v
	case 200:
		p.MA200 = v
	}
}

// ChartPoint pairs a close with one moving average; both are always present.
type ChartPoint struct {
	Date          string  `json:"date"`
	Close         float64 `json:"close"`
	MovingAverage float64 `json:"moving_average"`
}

// ChartSeries is the close-vs-MA series for one window.
type ChartSeries struct {
	Window int          `json:"window"`
	Points []ChartPoint `json:"points"`
}

// PriceSeries is the full daily history of a ticker, oldest first.
type PriceSeries struct {
	Ticker string        `json:"ticker"`
	Range  string        `json:"range"`
	Points []PricePoint  `json:"points"`
	Charts []ChartSeries `json:"charts"`
}

// IncomeStatementRow is one annual income statement.
type IncomeStatementRow struct {
	Date      string          `json:"date"`
	Revenue   decimal.Decimal `json:"revenue"`
	EBITDA    decimal.Decimal `json:"ebitda"`
	NetIncome decimal.Decimal `json:"net_income"`
}

// NewsItem is one headline.
type NewsItem struct {
	Headline    string     `json:"headline"`
	URL         string     `json:"url"`
	Source      string     `json:"source,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// Dashboard is the aggregated view of one query.
type Dashboard struct {
	Query           string                        `json:"query"`
	Ticker          string                        `json:"ticker"`
	GeneratedAt     time.Time                     `json:"generated_at"`
	Profile         CompanyProfile                `json:"profile"`
	Prices          Section[PriceSeries]          `json:"prices"`
	News            Section[[]NewsItem]           `json:"news"`
	Sentiment       Section[json.RawMessage]      `json:"sentiment"`
	IncomeStatement Section[[]IncomeStatementRow] `json:"income_statement"`
	BullBear        Section[string]               `json:"bull_bear"`
}

// Statuses maps every section name to its status.
func (d Dashboard) Statuses() map[string]Status {
	return map[string]Status{
		common.SectionProfile + ".logo":     d.Profile.LogoStatus,
		common.SectionProfile + ".metadata": d.Profile.MetadataStatus,
		common.SectionPrices:                d.Prices.Status,
		common.SectionNews:                  d.News.Status,
		common.SectionSentiment:             d.Sentiment.Status,
		common.SectionIncomeStatement:       d.IncomeStatement.Status,
		common.SectionBullBear:              d.BullBear.Status,
	}
}

// DegradedSections lists, sorted, the sections that failed. It is never nil.
func (d Dashboard) DegradedSections() []string {
	out := []string{}
	for name, status := range d.Statuses() {
		if status != StatusOK && status != StatusEmpty {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
