package dto

import "github.com/shopspring/decimal"

// FMPSearchResult is one entry of the FMP /api/v3/search response.
type FMPSearchResult struct {
	Symbol            string `json:"symbol"`
	Name              string `json:"name"`
	Currency          string `json:"currency"`
	StockExchange     string `json:"stockExchange"`
	ExchangeShortName string `json:"exchangeShortName"`
}

// FMPIncomeStatement is one annual row of the FMP /api/v3/income-statement response.
type FMPIncomeStatement struct {
	Date         string          `json:"date"`
	Symbol       string          `json:"symbol"`
	Period       string          `json:"period"`
	CalendarYear string          `json:"calendarYear"`
	Revenue      decimal.Decimal `json:"revenue"`
	EBITDA       decimal.Decimal `json:"ebitda"`
	NetIncome    decimal.Decimal `json:"netIncome"`
}
