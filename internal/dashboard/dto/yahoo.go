package dto

import "github.com/guregu/null/v6"

// YahooChartResponse is the response structure from the Yahoo Finance chart API.
// Close values are pointers because Yahoo reports null for non-trading bars.
type YahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol               string  `json:"symbol"`
				Currency             string  `json:"currency"`
				ExchangeTimezoneName string  `json:"exchangeTimezoneName"`
				RegularMarketPrice   float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *YahooError `json:"error"`
	} `json:"chart"`
}

// YahooError is the error object Yahoo embeds in otherwise successful responses.
type YahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// YahooQuoteSummary holds the metadata fields read from the quoteSummary API.
type YahooQuoteSummary struct {
	LongName         null.String
	Sector           null.String
	Industry         null.String
	CurrentPrice     null.Float
	FiftyTwoWeekHigh null.Float
	FiftyTwoWeekLow  null.Float
}

// YahooBar is one daily close. Date is the trading day in the exchange time zone,
// empty when the chart did not name one.
type YahooBar struct {
	Timestamp int64
	Date      string
	Close     float64
}
