package service

import (
	"time"

	"golang-stock-dashboard/internal/dashboard/dto"
	"golang-stock-dashboard/pkg/common"

	"github.com/guregu/null/v6"
)

// buildPricePoints converts ascending bars into price points carrying every moving average.
// Bars without an exchange date are dated in loc.
func buildPricePoints(bars []dto.YahooBar, loc *time.Location) []dto.PricePoint {
	points := make([]dto.PricePoint, len(bars))
	closes := make([]float64, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close
		date := bar.Date
		if date == "" {
			date = time.Unix(bar.Timestamp, 0).In(loc).Format(common.DateLayout)
		}
		points[i] = dto.PricePoint{Date: date, Close: bar.Close}
	}

	for _, window := range dto.MovingAverageWindows {
		for i, v := range simpleMovingAverage(closes, window) {
			points[i].SetMovingAverage(window, v)
		}
	}
	return points
}

// simpleMovingAverage returns the trailing mean over window values. Positions before
// window-1 are left invalid.
func simpleMovingAverage(values []float64, window int) []null.Float {
	out := make([]null.Float, len(values))
	if window <= 0 {
		return out
	}

	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = null.FloatFrom(sum / float64(window))
		}
	}
	return out
}

// buildCharts pairs the close with each chart window, keeping only rows where both are present.
func buildCharts(points []dto.PricePoint) []dto.ChartSeries {
	charts := make([]dto.ChartSeries, 0, len(dto.ChartWindows))
	for _, window := range dto.ChartWindows {
		series := dto.ChartSeries{Window: window, Points: []dto.ChartPoint{}}
		for _, p := range points {
			ma := p.MovingAverage(window)
			if !ma.Valid {
				continue
			}
			series.Points = append(series.Points, dto.ChartPoint{
				Date:          p.Date,
				Close:         p.Close,
				MovingAverage: ma.Float64,
			})
		}
		charts = append(charts, series)
	}
	return charts
}
